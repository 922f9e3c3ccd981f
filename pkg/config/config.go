// Package config loads the compass daemon configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root of the YAML file.
type Config struct {
	Port    PortConfig    `yaml:"port"`
	Device  DeviceConfig  `yaml:"device"`
	Sampler SamplerConfig `yaml:"sampler"`
	MQTT    MQTTConfig    `yaml:"mqtt"`
	Fault   FaultConfig   `yaml:"fault"`
}

// PortConfig selects the link, see port.Open for address forms.
type PortConfig struct {
	Address  string `yaml:"address"`
	BaudRate int    `yaml:"baud_rate"`
}

// DeviceConfig sets module identity and protocol timing.
type DeviceConfig struct {
	DeviceID         uint8 `yaml:"device_id"`
	Address          uint8 `yaml:"address"`
	MaxFlagAttempts  int   `yaml:"max_flag_attempts"` // 0 = unbounded
	SendTimeoutMs    int   `yaml:"send_timeout_ms"`
	FlagTimeoutMs    int   `yaml:"flag_timeout_ms"`
	PayloadTimeoutMs int   `yaml:"payload_timeout_ms"`
}

// SamplerConfig defines what is read and how often.
type SamplerConfig struct {
	IntervalMs int      `yaml:"interval_ms"`
	Quantities []string `yaml:"quantities"`
}

// MQTTConfig defines where readings are published.
// Topics are <type>/<id>/... under the URL path prefix.
type MQTTConfig struct {
	URL  string `yaml:"url"`
	Type string `yaml:"type"`
	ID   string `yaml:"id"` // empty = machine id
}

// FaultConfig selects the fault policy: log, halt or led.
type FaultConfig struct {
	Policy     string `yaml:"policy"`
	LEDPath    string `yaml:"led_path"`
	BlinkForMs int    `yaml:"blink_for_ms"`
}

// Fault policies.
const (
	FaultLog  = "log"
	FaultHalt = "halt"
	FaultLED  = "led"
)

// Default returns the configuration used for unset fields.
func Default() *Config {
	return &Config{
		Port: PortConfig{
			Address:  "/dev/ttyUSB0",
			BaudRate: 9600,
		},
		Device: DeviceConfig{
			DeviceID:         0x77,
			SendTimeoutMs:    500,
			FlagTimeoutMs:    500,
			PayloadTimeoutMs: 1000,
		},
		Sampler: SamplerConfig{
			IntervalMs: 200,
			Quantities: []string{"pitch", "roll", "azimuth"},
		},
		MQTT: MQTTConfig{
			URL:  "mqtt://localhost:1883/robo/",
			Type: "lec315",
		},
		Fault: FaultConfig{
			Policy: FaultLog,
		},
	}
}

// Load reads a YAML file over the defaults and applies
// environment overrides. An empty path loads defaults only.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not open config file: %w", err)
		}
		defer f.Close()
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("could not parse config file: %w", err)
		}
	}
	ApplyEnv(cfg)
	return cfg, nil
}

// ApplyEnv overrides fields from COMPASS_* environment variables.
func ApplyEnv(cfg *Config) {
	if val := os.Getenv("COMPASS_PORT"); val != "" {
		cfg.Port.Address = val
	}
	if val := os.Getenv("COMPASS_MQTT_URL"); val != "" {
		cfg.MQTT.URL = val
	}
	if val := os.Getenv("COMPASS_ID"); val != "" {
		cfg.MQTT.ID = val
	}
}
