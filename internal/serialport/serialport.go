// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package serialport

import (
	"fmt"
	"io"
	"time"

	serial "github.com/jacobsa/go-serial/serial"
)

// Channel is the real serial transport, backed by jacobsa go-serial. The
// library fixes all port parameters at open time, so parameter changes on
// an open port close and reopen it with the new options.
//
// go-serial has no available()/poll primitive either; WaitReadable is
// backed by a one-byte read bounded by the configured read timeout, parked
// in a peek buffer that the next Read drains first.
type Channel struct {
	opts serial.OpenOptions
	port io.ReadWriteCloser
	peek []byte // at most one byte read ahead by WaitReadable
}

// New prepares a channel for the given port. baud 0 starts at the
// receiver's factory default 9600; the driver renegotiates the real rate
// through SetBaud.
func New(portName string, baud uint) *Channel {
	if baud == 0 {
		baud = 9600
	}
	return &Channel{
		opts: serial.OpenOptions{
			PortName:              portName,
			BaudRate:              baud,
			DataBits:              8,
			StopBits:              1,
			ParityMode:            serial.PARITY_NONE,
			MinimumReadSize:       0,
			InterCharacterTimeout: 500,
		},
	}
}

// Open opens the port with the current options. Idempotent while open.
func (c *Channel) Open() error {
	if c.port != nil {
		return nil
	}
	port, err := serial.Open(c.opts)
	if err != nil {
		return fmt.Errorf("open %s: %w", c.opts.PortName, err)
	}
	c.port = port
	return nil
}

// IsOpen reports whether the port is currently open.
func (c *Channel) IsOpen() bool {
	return c.port != nil
}

// Close closes the port and drops any peeked byte.
func (c *Channel) Close() error {
	if c.port == nil {
		return nil
	}
	err := c.port.Close()
	c.port = nil
	c.peek = nil
	return err
}

// reopen applies option changes to an already-open port. A closed port
// just keeps the new options for the next Open.
func (c *Channel) reopen() error {
	if c.port == nil {
		return nil
	}
	if err := c.port.Close(); err != nil {
		c.port = nil
		return fmt.Errorf("close %s for reconfigure: %w", c.opts.PortName, err)
	}
	port, err := serial.Open(c.opts)
	if err != nil {
		c.port = nil
		return fmt.Errorf("reopen %s: %w", c.opts.PortName, err)
	}
	c.port = port
	return nil
}

// SetBaud switches the line rate.
func (c *Channel) SetBaud(baud uint) error {
	if c.opts.BaudRate == baud {
		return nil
	}
	c.opts.BaudRate = baud
	return c.reopen()
}

// SetFrame8N1 selects 8 data bits, no parity, one stop bit.
func (c *Channel) SetFrame8N1() error {
	if c.opts.DataBits == 8 && c.opts.StopBits == 1 && c.opts.ParityMode == serial.PARITY_NONE {
		return nil
	}
	c.opts.DataBits = 8
	c.opts.StopBits = 1
	c.opts.ParityMode = serial.PARITY_NONE
	return c.reopen()
}

// SetFlowControlNone disables hardware flow control.
func (c *Channel) SetFlowControlNone() error {
	if !c.opts.RTSCTSFlowControl {
		return nil
	}
	c.opts.RTSCTSFlowControl = false
	return c.reopen()
}

// SetReadTimeout bounds how long WaitReadable (and a read on an idle line)
// blocks for.
func (c *Channel) SetReadTimeout(d time.Duration) error {
	ms := uint(d / time.Millisecond)
	if c.opts.InterCharacterTimeout == ms {
		return nil
	}
	c.opts.InterCharacterTimeout = ms
	return c.reopen()
}

// Available returns the number of bytes readable without blocking. Only
// the peek buffer is knowable without a read.
func (c *Channel) Available() int {
	return len(c.peek)
}

// WaitReadable blocks until at least one byte is available or the read
// timeout elapses. The byte it may consume is kept for the next Read.
func (c *Channel) WaitReadable() bool {
	if len(c.peek) > 0 {
		return true
	}
	if c.port == nil {
		return false
	}
	var one [1]byte
	n, err := c.port.Read(one[:])
	if n > 0 {
		c.peek = append(c.peek, one[0])
		return true
	}
	if err != nil && err != io.EOF {
		return false
	}
	return false
}

// Read fills p with up to len(p) bytes, draining the peek buffer first.
// A call that drains the peek buffer returns immediately; the next call
// reads the device.
func (c *Channel) Read(p []byte) (int, error) {
	if len(c.peek) > 0 {
		n := copy(p, c.peek)
		c.peek = c.peek[n:]
		return n, nil
	}
	if c.port == nil {
		return 0, fmt.Errorf("read %s: port not open", c.opts.PortName)
	}
	return c.port.Read(p)
}

// Write writes p to the device.
func (c *Channel) Write(p []byte) (int, error) {
	if c.port == nil {
		return 0, fmt.Errorf("write %s: port not open", c.opts.PortName)
	}
	return c.port.Write(p)
}
