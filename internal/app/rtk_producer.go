package app

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/relabs-tech/rtk_link/internal/config"
	"github.com/relabs-tech/rtk_link/internal/rtk"
	"github.com/relabs-tech/rtk_link/internal/serialport"
	"github.com/relabs-tech/rtk_link/internal/telemetry"
)

// RunRTKProducer connects the RTK receiver, drives the GNSS driver built
// by newDriver, and publishes fixes, survey-in progress and RTCM
// corrections to MQTT until SIGINT/SIGTERM.
func RunRTKProducer(newDriver rtk.DriverFactory) error {
	cfg := config.Get()

	// ---- 1) Connect to MQTT broker ----
	client, err := telemetry.Connect(cfg.MQTTBroker, cfg.MQTTClientIDProducer)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)

	pub := telemetry.NewPublisher(client, telemetry.Topics{
		Fix:        cfg.TopicFix,
		RTCM:       cfg.TopicRTCM,
		Survey:     cfg.TopicSurvey,
		Satellites: cfg.TopicSatellites,
	})

	sinks := rtk.Sinks{
		Positions:   pub,
		Corrections: pub,
		Surveys:     pub,
	}
	if cfg.TopicSatellites != "" {
		sinks.Satellites = pub
	}

	// ---- 2) Bring up the receiver link ----
	ch := serialport.New(cfg.RTKSerialPort, uint(cfg.RTKBaudRate))
	defer ch.Close()

	connCfg := rtk.ConnectionConfig{
		Port:            cfg.RTKSerialPort,
		Baud:            uint(cfg.RTKBaudRate),
		SurveyAccuracyM: cfg.SurveyAccuracyM,
		SurveyDurationS: cfg.SurveyDurationS,
	}
	ctrl := rtk.NewController(connCfg, ch, newDriver, sinks, logReporter)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if state := ctrl.Connect(); !state.Connected {
		// A missing receiver is not fatal to the process; stay up so the
		// broker sees us, and wait for an operator.
		log.Printf("producer: receiver on %s unavailable, idling until shutdown", cfg.RTKSerialPort)
		<-ctx.Done()
		return nil
	}

	// ---- 3) Receive until shutdown or link failure ----
	err = ctrl.Run(ctx)
	if errors.Is(err, rtk.ErrReceiveExhausted) {
		log.Printf("producer: session ended: %v", err)
		return nil
	}
	return err
}

// logReporter adapts core diagnostic events onto the log package.
func logReporter(ev rtk.Event) {
	if ev.Level == rtk.LevelDebug {
		// per-cycle chatter; uncomment when debugging the link
		// log.Printf("%s: %s", ev.Component, ev.Message)
		return
	}
	log.Printf("%s: %s", ev.Component, ev.Message)
}
