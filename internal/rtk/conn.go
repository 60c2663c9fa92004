// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package rtk

import "time"

// ConnectionConfig is everything needed to bring up the link. Immutable
// after construction.
type ConnectionConfig struct {
	Port string
	// Baud 0 lets the driver probe the rate itself via SetBaudRate.
	Baud uint
	// Survey-in target accuracy in meters and minimum duration in seconds.
	SurveyAccuracyM float64
	SurveyDurationS float64
}

// ConnectionState reports the outcome of a connect cycle. Connected implies
// the channel was open and fully configured.
type ConnectionState struct {
	Open      bool
	Connected bool
}

const (
	connectAttempts = 5
	readTimeout     = 500 * time.Millisecond
)

// ConnectionManager owns the serial channel for the controller's lifetime
// and brings it from closed to configured.
type ConnectionManager struct {
	ch     SerialChannel
	report Reporter
}

// NewConnectionManager wraps ch. report may be nil.
func NewConnectionManager(ch SerialChannel, report Reporter) *ConnectionManager {
	return &ConnectionManager{ch: ch, report: report}
}

// Connect tries to open the channel at most 5 times. The first attempt that
// yields an open channel is configured (baud, 8-N-1, no flow control,
// 500 ms read timeout) and returned immediately with Connected set. A
// failed cycle is reported, not returned as an error: the caller decides
// whether a disconnected process keeps running.
func (m *ConnectionManager) Connect(cfg ConnectionConfig) ConnectionState {
	var state ConnectionState

	for tries := 0; tries < connectAttempts; tries++ {
		if err := m.ch.Open(); err != nil {
			m.report.emit(LevelWarn, "conn", "open %s: %v", cfg.Port, err)
		}

		if !m.ch.IsOpen() {
			state.Open = false
			state.Connected = false
			m.report.emit(LevelInfo, "conn", "serial port %s not open, attempt %d/%d", cfg.Port, tries+1, connectAttempts)
			continue
		}

		state.Open = true

		if cfg.Baud != 0 {
			if err := m.ch.SetBaud(cfg.Baud); err != nil {
				m.report.emit(LevelWarn, "conn", "set baud %d: %v", cfg.Baud, err)
			}
		}
		if err := m.ch.SetFrame8N1(); err != nil {
			m.report.emit(LevelWarn, "conn", "set 8-N-1 framing: %v", err)
		}
		if err := m.ch.SetFlowControlNone(); err != nil {
			m.report.emit(LevelWarn, "conn", "disable flow control: %v", err)
		}
		if err := m.ch.SetReadTimeout(readTimeout); err != nil {
			m.report.emit(LevelWarn, "conn", "set read timeout: %v", err)
		}

		state.Connected = true
		m.report.emit(LevelInfo, "conn", "connected to %s", cfg.Port)
		return state
	}

	m.report.emit(LevelError, "conn", "giving up on %s after %d attempts", cfg.Port, connectAttempts)
	return state
}
