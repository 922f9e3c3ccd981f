package config

import (
	"fmt"

	"github.com/robotalks/compass.go/pkg/l0/lec315"
	"github.com/robotalks/compass.go/pkg/l1/sampler"
)

// Validate checks configuration correctness.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg.Port.Address == "" {
		return fmt.Errorf("port.address required")
	}
	if cfg.Port.BaudRate != 0 {
		if _, ok := lec315.BaudRateCode(cfg.Port.BaudRate); !ok {
			return fmt.Errorf("port.baud_rate %d not supported by the module", cfg.Port.BaudRate)
		}
	}

	d := cfg.Device
	if d.MaxFlagAttempts < 0 {
		return fmt.Errorf("device.max_flag_attempts must be >= 0")
	}
	for name, ms := range map[string]int{
		"send_timeout_ms":    d.SendTimeoutMs,
		"flag_timeout_ms":    d.FlagTimeoutMs,
		"payload_timeout_ms": d.PayloadTimeoutMs,
	} {
		if ms <= 0 {
			return fmt.Errorf("device.%s must be > 0", name)
		}
	}

	if cfg.Sampler.IntervalMs <= 0 {
		return fmt.Errorf("sampler.interval_ms must be > 0")
	}
	if len(cfg.Sampler.Quantities) == 0 {
		return fmt.Errorf("sampler.quantities: at least one quantity required")
	}
	seen := make(map[string]bool)
	for _, q := range cfg.Sampler.Quantities {
		if !sampler.IsQuantity(q) {
			return fmt.Errorf("sampler.quantities: unknown quantity %q", q)
		}
		if seen[q] {
			return fmt.Errorf("sampler.quantities: %q listed twice", q)
		}
		seen[q] = true
	}

	if cfg.MQTT.URL != "" && cfg.MQTT.Type == "" {
		return fmt.Errorf("mqtt.type required when mqtt.url is set")
	}

	switch cfg.Fault.Policy {
	case FaultLog, FaultHalt:
	case FaultLED:
		if cfg.Fault.LEDPath == "" {
			return fmt.Errorf("fault.led_path required for policy %q", FaultLED)
		}
	default:
		return fmt.Errorf("fault.policy: unknown policy %q", cfg.Fault.Policy)
	}
	return nil
}
