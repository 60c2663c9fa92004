// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package telemetry

import (
	"encoding/json"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/rtk_link/internal/rtk"
)

// Topics names the MQTT topics the publisher writes to. Satellites may be
// empty to disable satellite telemetry.
type Topics struct {
	Fix        string
	RTCM       string
	Survey     string
	Satellites string
}

// Publisher publishes RTK telemetry over MQTT. Everything is QoS 0
// fire-and-forget: publish errors are logged and dropped, never retried.
type Publisher struct {
	client mqtt.Client
	topics Topics
}

// Connect dials the broker and returns a connected client.
func Connect(broker, clientID string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	log.Printf("telemetry: connected to MQTT broker at %s", broker)
	return client, nil
}

// NewPublisher wraps an already-connected client.
func NewPublisher(client mqtt.Client, topics Topics) *Publisher {
	return &Publisher{client: client, topics: topics}
}

// PublishPosition publishes a fix as retained JSON, so late subscribers
// see the last known position.
func (p *Publisher) PublishPosition(fix rtk.NavFix) {
	payload, err := json.Marshal(fix)
	if err != nil {
		log.Printf("telemetry: fix marshal error: %v", err)
		return
	}

	token := p.client.Publish(p.topics.Fix, 0, true, payload)
	token.Wait()
	if token.Error() != nil {
		log.Printf("telemetry: fix publish error: %v", token.Error())
	}
}

// PublishCorrections publishes one raw RTCM payload. Not retained: a
// stale correction is worse than none.
func (p *Publisher) PublishCorrections(data []byte) {
	token := p.client.Publish(p.topics.RTCM, 0, false, data)
	token.Wait()
	if token.Error() != nil {
		log.Printf("telemetry: rtcm publish error: %v", token.Error())
	}
}

// PublishSurvey publishes the survey-in snapshot as retained JSON.
func (p *Publisher) PublishSurvey(s rtk.SurveyInStatus) {
	msg := struct {
		DurationS      uint32  `json:"duration_s"`
		MeanAccuracyMM float32 `json:"mean_accuracy_mm"`
		Valid          bool    `json:"valid"`
		Active         bool    `json:"active"`
	}{s.DurationS, s.MeanAccuracyMM, s.Valid(), s.Active()}

	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("telemetry: survey marshal error: %v", err)
		return
	}

	token := p.client.Publish(p.topics.Survey, 0, true, payload)
	token.Wait()
	if token.Error() != nil {
		log.Printf("telemetry: survey publish error: %v", token.Error())
	}
}

// PublishSatellites publishes the satellites-in-view count.
func (p *Publisher) PublishSatellites(count int) {
	payload, err := json.Marshal(struct {
		Count int `json:"count"`
	}{count})
	if err != nil {
		log.Printf("telemetry: satellites marshal error: %v", err)
		return
	}

	token := p.client.Publish(p.topics.Satellites, 0, true, payload)
	token.Wait()
	if token.Error() != nil {
		log.Printf("telemetry: satellites publish error: %v", token.Error())
	}
}
