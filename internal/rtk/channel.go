package rtk

import "time"

// SerialChannel is the byte transport to the receiver. The real
// implementation lives in internal/serialport; tests substitute fakes.
//
// Read and Write are direct pass-throughs to the device. WaitReadable
// blocks until at least one byte is available or the configured read
// timeout elapses, returning false on timeout.
type SerialChannel interface {
	Open() error
	IsOpen() bool
	Close() error

	SetBaud(baud uint) error
	SetFrame8N1() error
	SetFlowControlNone() error
	SetReadTimeout(d time.Duration) error

	Available() int
	WaitReadable() bool
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
}
