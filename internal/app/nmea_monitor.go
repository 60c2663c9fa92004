// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package app

import (
	"bufio"
	"log"
	"strings"

	nmea "github.com/adrianmo/go-nmea"
	serial "github.com/jacobsa/go-serial/serial"

	"github.com/relabs-tech/rtk_link/internal/config"
)

// RunNMEAMonitor tails the receiver's NMEA output and prints fixes. Fresh
// receivers ship talking NMEA before they are switched to the binary
// protocol, so this is the quickest wiring check on a new install.
func RunNMEAMonitor() error {
	cfg := config.Get()

	baud := uint(cfg.RTKBaudRate)
	if baud == 0 {
		baud = 9600 // NMEA factory default
	}

	serialOpts := serial.OpenOptions{
		PortName:              cfg.RTKSerialPort,
		BaudRate:              baud,
		DataBits:              8,
		StopBits:              1,
		MinimumReadSize:       1,
		ParityMode:            serial.PARITY_NONE,
		InterCharacterTimeout: 0,
	}

	port, err := serial.Open(serialOpts)
	if err != nil {
		return err
	}
	defer port.Close()
	log.Printf("nmeamon: serial port opened on %s at %d baud", serialOpts.PortName, serialOpts.BaudRate)

	reader := bufio.NewReader(port)

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			log.Printf("nmeamon: read error: %v", err)
			return err
		}

		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "$") {
			continue
		}

		sentence, err := nmea.Parse(line)
		if err != nil {
			// noisy receiver or partial sentence, keep going
			continue
		}

		switch sentence.DataType() {
		case nmea.TypeRMC:
			m := sentence.(nmea.RMC)
			log.Printf("nmeamon: RMC lat=%.6f lon=%.6f validity=%s", m.Latitude, m.Longitude, m.Validity)

		case nmea.TypeGGA:
			m := sentence.(nmea.GGA)
			log.Printf("nmeamon: GGA lat=%.6f lon=%.6f alt=%.1f sats=%d quality=%s",
				m.Latitude, m.Longitude, m.Altitude, m.NumSatellites, m.FixQuality)

		default:
			// other sentence types are not interesting for bring-up
		}
	}
}
