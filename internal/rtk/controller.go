// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package rtk

import (
	"context"
	"errors"
)

// PositionSink consumes outbound position telemetry, fire-and-forget.
type PositionSink interface {
	PublishPosition(fix NavFix)
}

// SatelliteSink consumes satellite counts. Optional: leave it nil and the
// driver is never asked for satellite telemetry.
type SatelliteSink interface {
	PublishSatellites(count int)
}

// Sinks groups the outbound channels the controller publishes to.
// Positions and Corrections are required; Satellites and Surveys are
// optional.
type Sinks struct {
	Positions   PositionSink
	Corrections CorrectionSink
	Satellites  SatelliteSink
	Surveys     SurveySink
}

// ErrNotConnected means Run was called without a successful Connect.
var ErrNotConnected = errors.New("receiver not connected")

// Controller ties the link together: it owns the serial channel, the
// driver instance, the report buffers the driver writes into, and the
// survey tracker, for the lifetime of one receiver session.
type Controller struct {
	cfg       ConnectionConfig
	ch        SerialChannel
	newDriver DriverFactory
	sinks     Sinks
	report    Reporter

	conn    *ConnectionManager
	tracker *SurveyInTracker
	state   ConnectionState

	pos PositionReport
	sat SatelliteInfo
}

// NewController builds a controller. The driver factory is injected so the
// vendor decoder stays an external collaborator.
func NewController(cfg ConnectionConfig, ch SerialChannel, newDriver DriverFactory, sinks Sinks, report Reporter) *Controller {
	return &Controller{
		cfg:       cfg,
		ch:        ch,
		newDriver: newDriver,
		sinks:     sinks,
		report:    report,
		conn:      NewConnectionManager(ch, report),
		tracker:   &SurveyInTracker{},
	}
}

// Connect brings up the serial channel (§ConnectionManager policy) and
// zeroes the report buffers for the new session.
func (c *Controller) Connect() ConnectionState {
	c.pos = PositionReport{}
	c.sat = SatelliteInfo{}
	c.state = c.conn.Connect(c.cfg)
	return c.state
}

// Connected reports whether the last Connect cycle succeeded.
func (c *Controller) Connected() bool {
	return c.state.Connected
}

// Survey returns the latest survey-in snapshot.
func (c *Controller) Survey() SurveyInStatus {
	return c.tracker.Current()
}

// Run builds the driver, hands it the survey-in specs, and drives the
// receive loop until cancellation or exhaustion. The loop must never run
// without a connected channel.
func (c *Controller) Run(ctx context.Context) error {
	if !c.state.Connected {
		return ErrNotConnected
	}

	bridge := NewBridge(c.ch, c.tracker, c.sinks.Corrections, c.sinks.Surveys, c.report)

	var sat *SatelliteInfo
	var onSatellites func()
	if c.sinks.Satellites != nil {
		sat = &c.sat
		onSatellites = c.publishSatellites
	}

	drv := c.newDriver(bridge.Handle, &c.pos, sat, StationaryDynamicModel)
	// The driver's fixed-point convention: accuracy in 0.1 mm units.
	drv.SetSurveyInSpecs(uint32(c.cfg.SurveyAccuracyM*10000), uint32(c.cfg.SurveyDurationS))

	loop := NewReceiveLoop(drv, c.cfg.Baud, OutputModeRTCM, c.publishPosition, onSatellites, c.report)
	return loop.Run(ctx)
}

func (c *Controller) publishPosition() {
	fix := Translate(&c.pos)
	c.report.emit(LevelDebug, "controller", "fix: lat=%.7f lon=%.7f alt=%.2f status=%d sats=%d",
		fix.Latitude, fix.Longitude, fix.Altitude, fix.Status, fix.SatellitesUsed)
	c.sinks.Positions.PublishPosition(fix)
}

func (c *Controller) publishSatellites() {
	c.sinks.Satellites.PublishSatellites(int(c.sat.Count))
}
