package config

import (
	"io"
	"time"

	"github.com/robotalks/compass.go/pkg/l0/lec315"
	"github.com/robotalks/compass.go/pkg/l0/lec315/sim"
	"github.com/robotalks/compass.go/pkg/l0/port"
)

// SimAddress opens an emulated module instead of a real port.
const SimAddress = "sim"

// FaultHandler builds the handler selected by the fault policy.
func (c *Config) FaultHandler() lec315.FaultHandler {
	switch c.Fault.Policy {
	case FaultHalt:
		return lec315.HaltFault
	case FaultLED:
		return &lec315.LEDFault{
			Path:     c.Fault.LEDPath,
			Duration: millis(c.Fault.BlinkForMs),
		}
	}
	return lec315.LogFault
}

// OpenDevice opens the port and sets up a Device with the
// configured addressing, timing and fault policy.
// The returned closer releases the port.
func (c *Config) OpenDevice() (*lec315.Device, io.Closer, error) {
	var t lec315.Transport
	var closer io.Closer = nopCloser{}
	if c.Port.Address == SimAddress {
		t = sim.New()
	} else {
		p, err := port.Open(c.Port.Address, c.Port.BaudRate)
		if err != nil {
			return nil, nil, err
		}
		t, closer = p, p
	}
	dev := lec315.NewDevice(t)
	dev.Addressing = lec315.Addressing{
		DeviceID: c.Device.DeviceID,
		Addr:     c.Device.Address,
	}
	dev.MaxFlagAttempts = c.Device.MaxFlagAttempts
	dev.SendTimeout = millis(c.Device.SendTimeoutMs)
	dev.FlagTimeout = millis(c.Device.FlagTimeoutMs)
	dev.PayloadTimeout = millis(c.Device.PayloadTimeoutMs)
	dev.Fault = c.FaultHandler()
	return dev, closer, nil
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
