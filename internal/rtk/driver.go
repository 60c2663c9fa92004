// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package rtk

// OutputMode selects what the receiver is asked to emit after configuration.
type OutputMode int

const (
	// OutputModeGPS requests position/velocity navigation output.
	OutputModeGPS OutputMode = iota
	// OutputModeRTCM puts the receiver into survey-in base-station mode and
	// requests RTCM correction output.
	OutputModeRTCM
)

// Receive returns a bitmask of what became ready during the cycle.
const (
	GotPosition   = 1 << 0
	GotSatellites = 1 << 1
)

// Driver is the vendor binary-protocol decoder. It owns no I/O of its own:
// all byte traffic and decoded results flow through the callback events it
// raises synchronously from within Receive.
//
// Configure is called once per session with the configured baud rate (0 lets
// the driver probe) and the desired output mode; 0 means success. Receive
// runs one decode cycle bounded by timeoutMS and returns a Got* bitmask on
// success, 0 when no new data arrived, or a negative value on a decode
// error (e.g. checksum failure).
type Driver interface {
	Configure(baud uint, mode OutputMode) int
	SetSurveyInSpecs(accuracy uint32, duration uint32)
	Receive(timeoutMS int) int
}

// DriverFactory builds a Driver bound to a callback handler and to the
// caller-owned report buffers. The driver writes into pos (and sat, when
// non-nil) in place during Receive and never retains either past a call.
// dynamicModel is the receiver platform model; base stations use
// StationaryDynamicModel.
type DriverFactory func(handle func(CallbackEvent) int, pos *PositionReport, sat *SatelliteInfo, dynamicModel uint8) Driver

// StationaryDynamicModel is the receiver dynamic platform model for a fixed
// base station.
const StationaryDynamicModel uint8 = 2

// CallbackEvent is one request or notification raised by the driver from
// within Receive. The concrete types below are the complete set the driver
// contract defines; each event is handled fully before the driver continues.
type CallbackEvent interface {
	callbackEvent()
}

// ReadRequest asks for up to len(Buf) bytes from the serial channel. The
// handler returns the count read, or 0 when no data arrived in time.
type ReadRequest struct {
	Buf []byte
}

// WriteRequest asks for Data to be written to the serial channel in full.
// The handler returns len(Data) on a complete write and -1 on a shortfall.
type WriteRequest struct {
	Data []byte
}

// SetBaudRate asks for the serial channel to be reconfigured to Baud.
type SetBaudRate struct {
	Baud uint
}

// SetClock carries the receiver's notion of UTC time in microseconds since
// the Unix epoch. Acknowledged but not acted on: the host clock is managed
// by ntpd/chrony, not by this process.
type SetClock struct {
	UnixMicros int64
}

// CorrectionMessage carries one RTCM correction payload. Data is only valid
// for the duration of the callback and must be copied before forwarding.
type CorrectionMessage struct {
	Data []byte
}

// SurveyStatus carries the latest survey-in progress snapshot.
type SurveyStatus struct {
	Status SurveyInStatus
}

// UnknownEvent stands in for a callback tag this build does not know about.
// Always a no-op; newer driver revisions may add tags we ignore.
type UnknownEvent struct {
	Tag int
}

func (ReadRequest) callbackEvent()       {}
func (WriteRequest) callbackEvent()      {}
func (SetBaudRate) callbackEvent()       {}
func (SetClock) callbackEvent()          {}
func (CorrectionMessage) callbackEvent() {}
func (SurveyStatus) callbackEvent()      {}
func (UnknownEvent) callbackEvent()      {}
