package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config holds all application configuration values.
type Config struct {
	// MQTT
	MQTTBroker           string
	MQTTClientIDProducer string
	MQTTClientIDWeb      string

	// Topics
	TopicFix        string
	TopicRTCM       string
	TopicSurvey     string
	TopicSatellites string // empty disables satellite telemetry

	// Receiver
	RTKSerialPort string
	RTKBaudRate   int // 0 lets the driver probe the rate

	// Survey-in
	SurveyAccuracyM float64 // target accuracy, meters
	SurveyDurationS float64 // minimum duration, seconds

	// Web Server
	WebServerPort int
}

// Package-level unexported variables for the singleton pattern: external
// code must use InitGlobal() to set and Get() to read, keeping access
// thread safe.
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// defaults returns a Config pre-filled with the values that may be omitted
// from the file.
func defaults() *Config {
	return &Config{
		MQTTClientIDProducer: "rtk-link-producer",
		MQTTClientIDWeb:      "rtk-link-web",
		TopicFix:             "rtk/fix",
		TopicRTCM:            "rtk/rtcm",
		TopicSurvey:          "rtk/survey",
		SurveyAccuracyM:      1.0,
		SurveyDurationS:      90.0,
		WebServerPort:        8080,
	}
}

// Load reads the configuration file and returns a Config struct.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := defaults()
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Validate required fields
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_PRODUCER":
		c.MQTTClientIDProducer = value
	case "MQTT_CLIENT_ID_WEB":
		c.MQTTClientIDWeb = value

	// Topics
	case "TOPIC_RTK_FIX":
		c.TopicFix = value
	case "TOPIC_RTK_RTCM":
		c.TopicRTCM = value
	case "TOPIC_RTK_SURVEY":
		c.TopicSurvey = value
	case "TOPIC_RTK_SATELLITES":
		c.TopicSatellites = value

	// Receiver
	case "RTK_SERIAL_PORT":
		c.RTKSerialPort = value
	case "RTK_BAUD_RATE":
		rate, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid RTK_BAUD_RATE %q: %w", value, err)
		}
		if rate < 0 {
			return fmt.Errorf("RTK_BAUD_RATE must be >= 0, got %d", rate)
		}
		c.RTKBaudRate = rate

	// Survey-in
	case "RTK_SURVEY_ACCURACY_M":
		acc, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid RTK_SURVEY_ACCURACY_M %q: %w", value, err)
		}
		if acc <= 0 {
			return fmt.Errorf("RTK_SURVEY_ACCURACY_M must be > 0, got %g", acc)
		}
		c.SurveyAccuracyM = acc
	case "RTK_SURVEY_DURATION_S":
		dur, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid RTK_SURVEY_DURATION_S %q: %w", value, err)
		}
		if dur <= 0 {
			return fmt.Errorf("RTK_SURVEY_DURATION_S must be > 0, got %g", dur)
		}
		c.SurveyDurationS = dur

	// Web Server
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		c.WebServerPort = port

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// validate checks that all required fields are set.
func (c *Config) validate() error {
	if c.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is required")
	}
	if c.RTKSerialPort == "" {
		return fmt.Errorf("RTK_SERIAL_PORT is required")
	}
	return nil
}

// InitGlobal initializes the global configuration from file. Uses
// sync.Once so this only runs once, even if called multiple times.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance. InitGlobal must be called
// first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
