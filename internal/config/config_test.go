package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rtk.conf")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
# RTK base station
MQTT_BROKER = tcp://localhost:1883
MQTT_CLIENT_ID_PRODUCER = base-producer
MQTT_CLIENT_ID_WEB = base-web

TOPIC_RTK_FIX = base/fix
TOPIC_RTK_RTCM = base/rtcm
TOPIC_RTK_SURVEY = base/survey
TOPIC_RTK_SATELLITES = base/sats

RTK_SERIAL_PORT = /dev/ttyACM0
RTK_BAUD_RATE = 38400
RTK_SURVEY_ACCURACY_M = 0.5
RTK_SURVEY_DURATION_S = 120
WEB_SERVER_PORT = 9090
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.MQTTBroker != "tcp://localhost:1883" {
		t.Errorf("broker = %q", cfg.MQTTBroker)
	}
	if cfg.MQTTClientIDProducer != "base-producer" || cfg.MQTTClientIDWeb != "base-web" {
		t.Errorf("client ids = %q, %q", cfg.MQTTClientIDProducer, cfg.MQTTClientIDWeb)
	}
	if cfg.TopicFix != "base/fix" || cfg.TopicRTCM != "base/rtcm" || cfg.TopicSurvey != "base/survey" || cfg.TopicSatellites != "base/sats" {
		t.Errorf("topics = %q %q %q %q", cfg.TopicFix, cfg.TopicRTCM, cfg.TopicSurvey, cfg.TopicSatellites)
	}
	if cfg.RTKSerialPort != "/dev/ttyACM0" || cfg.RTKBaudRate != 38400 {
		t.Errorf("serial = %q @ %d", cfg.RTKSerialPort, cfg.RTKBaudRate)
	}
	if cfg.SurveyAccuracyM != 0.5 || cfg.SurveyDurationS != 120 {
		t.Errorf("survey = %g m, %g s", cfg.SurveyAccuracyM, cfg.SurveyDurationS)
	}
	if cfg.WebServerPort != 9090 {
		t.Errorf("web port = %d", cfg.WebServerPort)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
MQTT_BROKER = tcp://localhost:1883
RTK_SERIAL_PORT = /dev/ttyACM0
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.TopicFix != "rtk/fix" || cfg.TopicRTCM != "rtk/rtcm" || cfg.TopicSurvey != "rtk/survey" {
		t.Errorf("default topics = %q %q %q", cfg.TopicFix, cfg.TopicRTCM, cfg.TopicSurvey)
	}
	if cfg.TopicSatellites != "" {
		t.Errorf("satellite telemetry enabled by default: %q", cfg.TopicSatellites)
	}
	if cfg.RTKBaudRate != 0 {
		t.Errorf("default baud = %d, want 0 (driver probes)", cfg.RTKBaudRate)
	}
	if cfg.SurveyAccuracyM != 1.0 || cfg.SurveyDurationS != 90.0 {
		t.Errorf("default survey = %g m, %g s", cfg.SurveyAccuracyM, cfg.SurveyDurationS)
	}
	if cfg.WebServerPort != 8080 {
		t.Errorf("default web port = %d", cfg.WebServerPort)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown key", "MQTT_BROKER=x\nRTK_SERIAL_PORT=/dev/ttyACM0\nBOGUS=1\n", "unknown config key"},
		{"missing broker", "RTK_SERIAL_PORT=/dev/ttyACM0\n", "MQTT_BROKER is required"},
		{"missing port", "MQTT_BROKER=tcp://localhost:1883\n", "RTK_SERIAL_PORT is required"},
		{"bad baud", "MQTT_BROKER=x\nRTK_SERIAL_PORT=y\nRTK_BAUD_RATE=fast\n", "invalid RTK_BAUD_RATE"},
		{"negative accuracy", "MQTT_BROKER=x\nRTK_SERIAL_PORT=y\nRTK_SURVEY_ACCURACY_M=-1\n", "must be > 0"},
		{"malformed line", "MQTT_BROKER=x\nRTK_SERIAL_PORT=y\nnonsense\n", "invalid config line"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
