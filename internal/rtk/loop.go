// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package rtk

import (
	"context"
	"errors"
)

// LoopState is the receive loop's lifecycle state. Stopped is terminal for
// a session; restarting requires a fresh connect cycle.
type LoopState int

const (
	StateConfiguring LoopState = iota
	StateRunning
	StateDraining
	StateStopped
)

const (
	receiveTimeoutMS = 100

	// Isolated decode errors (checksum failures, bus noise) are expected
	// and must not end the session; three consecutive failures without a
	// single successful decode is an unrecoverable link problem.
	maxConsecutiveFailures = 3
)

var (
	// ErrConfigureFailed means the driver's one-time configuration call
	// failed and the loop never ran.
	ErrConfigureFailed = errors.New("driver configuration failed")
	// ErrReceiveExhausted means the session ended after three consecutive
	// failed receive cycles.
	ErrReceiveExhausted = errors.New("receive failed repeatedly, giving up")
)

// ReceiveLoop drives the driver's receive cycle and dispatches ready
// reports. All retry policy here is at decode-cycle granularity; the
// connection manager owns connection-level retry.
type ReceiveLoop struct {
	drv    Driver
	baud   uint
	mode   OutputMode
	report Reporter

	onPosition   func()
	onSatellites func() // nil when satellite telemetry is disabled

	state    LoopState
	failures int
}

// NewReceiveLoop builds a loop over drv. onSatellites may be nil to skip
// satellite dispatch.
func NewReceiveLoop(drv Driver, baud uint, mode OutputMode, onPosition, onSatellites func(), report Reporter) *ReceiveLoop {
	return &ReceiveLoop{
		drv:          drv,
		baud:         baud,
		mode:         mode,
		onPosition:   onPosition,
		onSatellites: onSatellites,
		report:       report,
		state:        StateConfiguring,
	}
}

// State returns the loop's current lifecycle state.
func (l *ReceiveLoop) State() LoopState {
	return l.state
}

// Run configures the driver once, then receives until cancellation or
// exhaustion. Cancellation is polled at iteration boundaries, never inside
// a blocking read, so shutdown latency is bounded by the receive timeout
// plus the channel read timeout. Returns nil on cancellation,
// ErrConfigureFailed or ErrReceiveExhausted otherwise.
func (l *ReceiveLoop) Run(ctx context.Context) error {
	if l.drv.Configure(l.baud, l.mode) != 0 {
		l.state = StateStopped
		l.report.emit(LevelError, "loop", "driver configure failed")
		return ErrConfigureFailed
	}
	l.report.emit(LevelInfo, "loop", "driver configured")
	l.state = StateRunning
	l.failures = 0

	for {
		if ctx.Err() != nil {
			l.state = StateStopped
			l.report.emit(LevelInfo, "loop", "shutdown requested, stopping")
			return nil
		}

		ret := l.drv.Receive(receiveTimeoutMS)
		if ret <= 0 {
			l.failures++
			if l.failures >= maxConsecutiveFailures {
				l.state = StateStopped
				l.report.emit(LevelError, "loop", "%d consecutive receive failures", l.failures)
				return ErrReceiveExhausted
			}
			continue
		}

		l.failures = 0

		// A cancellation that lands mid-cycle still gets this cycle's
		// reports dispatched before the loop stops.
		if ctx.Err() != nil {
			l.state = StateDraining
		}

		if ret&GotPosition != 0 {
			l.onPosition()
		}
		if ret&GotSatellites != 0 && l.onSatellites != nil {
			l.onSatellites()
		}
	}
}
