// Package daemon samples a compass and publishes it over MQTT.
package daemon

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/compass.go/pkg/config"
	fx "github.com/robotalks/compass.go/pkg/framework"
	"github.com/robotalks/compass.go/pkg/l0/lec315"
	"github.com/robotalks/compass.go/pkg/l1/comm/mqtt"
	"github.com/robotalks/compass.go/pkg/l1/control"
	"github.com/robotalks/compass.go/pkg/l1/env"
	"github.com/robotalks/compass.go/pkg/l1/msgs"
	"github.com/robotalks/compass.go/pkg/l1/sampler"
)

// ConnectTimeout bounds the initial broker connection.
const ConnectTimeout = 10 * time.Second

// Daemon owns the device, the sampler and the publisher.
type Daemon struct {
	Config    *config.Config
	Device    *lec315.Device
	Sampler   *sampler.Sampler
	Publisher *mqtt.Publisher

	closer io.Closer
}

// New opens the device and the broker connection described by cfg.
// Without mqtt.url readings are only logged.
func New(cfg *config.Config) (*Daemon, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	dev, closer, err := cfg.OpenDevice()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Port.Address, err)
	}
	d := &Daemon{Config: cfg, Device: dev, closer: closer}
	d.Sampler, err = sampler.New(sampler.Config{
		Interval:   time.Duration(cfg.Sampler.IntervalMs) * time.Millisecond,
		Quantities: cfg.Sampler.Quantities,
	}, dev)
	if err != nil {
		closer.Close()
		return nil, err
	}
	if cfg.MQTT.URL == "" {
		return d, nil
	}
	opts, prefix, err := mqtt.ClientOptionsFromURL(cfg.MQTT.URL)
	if err != nil {
		closer.Close()
		return nil, err
	}
	pub := mqtt.NewPublisher(nil, cfg.MQTT.Type, env.ID(cfg.MQTT.ID))
	pub.SetWill(opts, prefix)
	q := newQueue(opts, prefix)
	pub.Queue = q
	d.Publisher = pub
	// paho runs these on its own goroutine and must not be blocked.
	q.OnConnect = func(*mqtt.Queue) { go d.announce() }
	q.OnConnectionLost = func(_ *mqtt.Queue, err error) {
		glog.Warningf("compass %s offline until reconnected: %v", pub.ID, err)
	}
	if err := q.ConnectWait(ConnectTimeout); err != nil {
		q.Close()
		closer.Close()
		return nil, err
	}
	return d, nil
}

var newQueue = mqtt.NewQueue

// Meta describes this compass on the broker.
func (d *Daemon) Meta() mqtt.Meta {
	return mqtt.Meta{
		Description: "LEC315 compass",
		Port:        d.Config.Port.Address,
		Quantities:  d.Config.Sampler.Quantities,
	}
}

func (d *Daemon) announce() {
	if err := d.Publisher.Announce(d.Meta()); err != nil {
		glog.Warningf("announce: %v", err)
	}
}

// Handle runs a command received from the broker.
func (d *Daemon) Handle(kind, name, arg string) (string, error) {
	switch kind {
	case mqtt.TopicGet:
		return control.Read(d.Device, name)
	case mqtt.TopicSet:
		ok, err := control.Set(d.Device, name, arg)
		if err != nil {
			return "", err
		}
		return control.Status(ok), nil
	}
	return "", fmt.Errorf("unknown command kind %q", kind)
}

// Run samples until ctx is done or a part fails.
func (d *Daemon) Run(ctx context.Context) error {
	readings := make(chan msgs.Reading)
	runner := fx.NewRunnerWith(ctx)
	runner.Go(fx.NamedRun("sampler", fx.RunFunc(func(ctx context.Context) error {
		return d.Sampler.Run(ctx, readings)
	})))
	if d.Publisher == nil {
		runner.Go(fx.NamedRun("log", fx.RunFunc(func(ctx context.Context) error {
			return logReadings(ctx, readings)
		})))
		return runner.Wait()
	}

	subs := d.Publisher.ServeCommands(d.Handle)
	defer func() {
		for _, sub := range subs {
			sub.Close()
		}
	}()
	runner.Go(fx.NamedRun("publisher", fx.RunFunc(func(ctx context.Context) error {
		return d.Publisher.Run(ctx, readings)
	})))
	return runner.Wait()
}

// Close releases the port and the broker connection.
func (d *Daemon) Close() error {
	var errs fx.AggregatedError
	if d.Publisher != nil {
		errs.Add(d.Publisher.Queue.Close())
	}
	errs.Add(d.closer.Close())
	return errs.Aggregate()
}

func logReadings(ctx context.Context, in <-chan msgs.Reading) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case r := <-in:
			if r.Err != nil {
				glog.Warningf("sample failed: %v", r.Err)
				continue
			}
			glog.Info(r.String())
		}
	}
}
