package main

import (
	"flag"
	"log"

	"github.com/relabs-tech/rtk_link/internal/app"
	"github.com/relabs-tech/rtk_link/internal/config"
)

func main() {
	configPath := flag.String("config", "rtk.conf", "path to configuration file")
	flag.Parse()

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("fatal: %v", err)
	}

	log.Println("starting NMEA bring-up monitor")

	if err := app.RunNMEAMonitor(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
