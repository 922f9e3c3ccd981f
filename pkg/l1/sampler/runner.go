package sampler

import (
	"context"
	"time"

	"github.com/robotalks/compass.go/pkg/l1/msgs"
)

// Run emits a Reading on out every interval until ctx is done.
// Samples never overlap: a slow exchange delays the next tick.
func (s *Sampler) Run(ctx context.Context, out chan<- msgs.Reading) error {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			select {
			case out <- s.SampleOnce():
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
