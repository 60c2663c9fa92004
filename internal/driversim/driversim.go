// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


// Package driversim is a stand-in GNSS driver for machines without a
// receiver attached. It exercises the full callback contract — serial
// reads and writes, survey-in progression, RTCM output — with canned
// data, so the link controller, sinks and web UI can be run end to end
// on a bench.
package driversim

import "github.com/relabs-tech/rtk_link/internal/rtk"

// Scenario parameterizes the simulated session.
type Scenario struct {
	Lat, Lon, Alt float64
	FixType       uint8
	Satellites    uint8

	// Survey-in completes after SurveyCycles receive cycles.
	SurveyCycles uint32

	// RTCM emitted once per cycle after the survey-in completes.
	RTCMFrame []byte
}

// DefaultScenario is a base station in Louvain-la-Neuve with a 3D fix and
// a survey-in that converges in 30 cycles.
func DefaultScenario() Scenario {
	return Scenario{
		Lat:          50.6686,
		Lon:          4.6118,
		Alt:          156.0,
		FixType:      3,
		Satellites:   11,
		SurveyCycles: 30,
		// Preamble-only RTCM3 frame, enough for sink plumbing.
		RTCMFrame: []byte{0xd3, 0x00, 0x00, 0x47, 0xea, 0x4b},
	}
}

// Driver implements rtk.Driver over a Scenario.
type Driver struct {
	scenario Scenario
	handle   func(rtk.CallbackEvent) int
	pos      *rtk.PositionReport
	sat      *rtk.SatelliteInfo

	cycles     uint32
	configured bool
}

// New matches the rtk.DriverFactory signature for a default scenario.
func New(handle func(rtk.CallbackEvent) int, pos *rtk.PositionReport, sat *rtk.SatelliteInfo, dynamicModel uint8) rtk.Driver {
	return NewWithScenario(DefaultScenario(), handle, pos, sat)
}

// NewWithScenario builds a simulated driver for a specific scenario.
func NewWithScenario(s Scenario, handle func(rtk.CallbackEvent) int, pos *rtk.PositionReport, sat *rtk.SatelliteInfo) *Driver {
	return &Driver{scenario: s, handle: handle, pos: pos, sat: sat}
}

// Configure pretends to negotiate with the receiver: it pushes a config
// command through the write callback and, when asked to probe, settles on
// 38400 baud via the baud callback.
func (d *Driver) Configure(baud uint, mode rtk.OutputMode) int {
	if mode != rtk.OutputModeRTCM {
		return -1
	}
	if baud == 0 {
		if d.handle(rtk.SetBaudRate{Baud: 38400}) == 0 {
			return -1
		}
	}
	cmd := []byte{0xb5, 0x62, 0x06, 0x8a} // CFG-VALSET header stand-in
	if d.handle(rtk.WriteRequest{Data: cmd}) != len(cmd) {
		return -1
	}
	d.configured = true
	return 0
}

// SetSurveyInSpecs accepts and ignores the specs; the scenario fixes the
// convergence time.
func (d *Driver) SetSurveyInSpecs(accuracy, duration uint32) {}

// Receive runs one simulated cycle: drain whatever the channel has, then
// report survey progress, position, and (after convergence) one RTCM
// frame. Returns the usual ready bitmask.
func (d *Driver) Receive(timeoutMS int) int {
	if !d.configured {
		return -1
	}

	var buf [64]byte
	d.handle(rtk.ReadRequest{Buf: buf[:]})

	d.cycles++
	done := d.cycles >= d.scenario.SurveyCycles
	status := rtk.SurveyInStatus{
		DurationS:      d.cycles,
		MeanAccuracyMM: 5000.0 / float32(d.cycles),
	}
	if done {
		status.Flags = 1 // valid
	} else {
		status.Flags = 2 // active
	}
	d.handle(rtk.SurveyStatus{Status: status})

	d.pos.Lat = d.scenario.Lat
	d.pos.Lon = d.scenario.Lon
	d.pos.Alt = d.scenario.Alt
	d.pos.FixType = d.scenario.FixType
	d.pos.SatellitesUsed = d.scenario.Satellites
	d.pos.EPH = 0.8
	d.pos.EPV = 1.4

	ret := rtk.GotPosition
	if d.sat != nil {
		d.sat.Count = d.scenario.Satellites
		ret |= rtk.GotSatellites
	}

	if done && len(d.scenario.RTCMFrame) > 0 {
		d.handle(rtk.CorrectionMessage{Data: d.scenario.RTCMFrame})
	}
	return ret
}
