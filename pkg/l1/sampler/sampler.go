// Package sampler reads a compass on a fixed interval.
package sampler

import (
	"errors"
	"time"

	"github.com/robotalks/compass.go/pkg/l0/lec315"
	"github.com/robotalks/compass.go/pkg/l1/msgs"
)

// Source abstracts the compass operations needed by the sampler.
type Source interface {
	ReadValue(lec315.ReadCommand) (float64, error)
	Angles() (lec315.Angles, error)
}

// Quantity names accepted by the sampler.
const (
	Pitch       = "pitch"
	Roll        = "roll"
	Azimuth     = "azimuth"
	Declination = "declination"
	Angles      = "angles" // pitch, roll, azimuth in one exchange
)

var quantityCommands = map[string]lec315.ReadCommand{
	Pitch:       lec315.ReadPitch,
	Roll:        lec315.ReadRoll,
	Azimuth:     lec315.ReadAzimuth,
	Declination: lec315.ReadMagneticDecl,
}

// IsQuantity reports whether name can be sampled.
func IsQuantity(name string) bool {
	_, ok := quantityCommands[name]
	return ok || name == Angles
}

// Config is the runtime config of a sampler.
type Config struct {
	Interval   time.Duration
	Quantities []string
}

// Sampler is a clock-driven reader.
type Sampler struct {
	cfg Config
	src Source
}

// New creates a sampler with immutable config.
func New(cfg Config, src Source) (*Sampler, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("sampler: interval must be > 0")
	}
	if len(cfg.Quantities) == 0 {
		return nil, errors.New("sampler: at least one quantity required")
	}
	for _, q := range cfg.Quantities {
		if !IsQuantity(q) {
			return nil, errors.New("sampler: unknown quantity " + q)
		}
	}
	return &Sampler{cfg: cfg, src: src}, nil
}

// SampleOnce performs exactly one sample.
// All-or-nothing: any failure aborts the sample.
func (s *Sampler) SampleOnce() msgs.Reading {
	r := msgs.Reading{At: time.Now()}
	values := make(map[string]float64, len(s.cfg.Quantities))
	for _, q := range s.cfg.Quantities {
		if q == Angles {
			a, err := s.src.Angles()
			if err != nil {
				r.Err = err
				return r
			}
			values[Pitch], values[Roll], values[Azimuth] = a.Pitch, a.Roll, a.Azimuth
			continue
		}
		val, err := s.src.ReadValue(quantityCommands[q])
		if err != nil {
			r.Err = err
			return r
		}
		values[q] = val
	}
	r.Values = values
	return r
}
