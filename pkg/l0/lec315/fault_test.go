package lec315

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFaultFunc(t *testing.T) {
	var got time.Duration
	var gotErr error
	h := FaultFunc(func(interval time.Duration, err error) {
		got, gotErr = interval, err
	})
	boom := errors.New("boom")
	h.SignalFault(FaultBlinkInterval, boom)
	require.Equal(t, FaultBlinkInterval, got)
	require.Equal(t, boom, gotErr)
}

func TestLEDFault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brightness")
	led := &LEDFault{Path: path, Duration: 60 * time.Millisecond}
	led.SignalFault(5*time.Millisecond, errors.New("boom"))

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(path)
		return err == nil && string(data) == "1"
	}, time.Second, time.Millisecond)

	// blinking stops with the LED off
	require.Eventually(t, func() bool {
		led.lock.Lock()
		defer led.lock.Unlock()
		return !led.blinking
	}, time.Second, 5*time.Millisecond)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "0", string(data))
}
