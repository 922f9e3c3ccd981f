package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/compass.go/pkg/l0/lec315"
)

func TestFaultHandler(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg.FaultHandler())

	cfg.Fault = FaultConfig{Policy: FaultLED, LEDPath: "/tmp/led", BlinkForMs: 100}
	led, ok := cfg.FaultHandler().(*lec315.LEDFault)
	require.True(t, ok)
	require.Equal(t, "/tmp/led", led.Path)
	require.Equal(t, 100*time.Millisecond, led.Duration)
}

func TestOpenSimDevice(t *testing.T) {
	cfg := Default()
	cfg.Port.Address = SimAddress
	cfg.Device.FlagTimeoutMs = 50
	dev, closer, err := cfg.OpenDevice()
	require.NoError(t, err)
	defer closer.Close()

	require.Equal(t, lec315.DefaultAddressing, dev.Addressing)
	require.Equal(t, 50*time.Millisecond, dev.FlagTimeout)
	require.Equal(t, 500*time.Millisecond, dev.SendTimeout)

	addr, err := dev.Address()
	require.NoError(t, err)
	require.Equal(t, byte(0), addr)
}

func TestOpenDeviceBadAddress(t *testing.T) {
	cfg := Default()
	cfg.Port.Address = "ftp://nowhere"
	_, _, err := cfg.OpenDevice()
	require.Error(t, err)
}
