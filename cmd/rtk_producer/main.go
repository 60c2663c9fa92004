// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package main

import (
	"flag"
	"log"

	"github.com/relabs-tech/rtk_link/internal/app"
	"github.com/relabs-tech/rtk_link/internal/config"
	"github.com/relabs-tech/rtk_link/internal/driversim"
)

func main() {
	configPath := flag.String("config", "rtk.conf", "path to configuration file")
	flag.Parse()

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("fatal: %v", err)
	}

	log.Println("starting rtk-link producer (GNSS → MQTT)")

	// TODO: switch to the cgo GPSDriverUBX bridge once the wrapper lands;
	// until then the simulated driver is the only backend.
	if err := app.RunRTKProducer(driversim.New); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
