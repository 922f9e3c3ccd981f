package sampler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/compass.go/pkg/l0/lec315"
	"github.com/robotalks/compass.go/pkg/l0/lec315/sim"
	"github.com/robotalks/compass.go/pkg/l1/msgs"
)

type fakeSource struct {
	failCode byte
	calls    []byte
}

func (f *fakeSource) ReadValue(cmd lec315.ReadCommand) (float64, error) {
	f.calls = append(f.calls, cmd.Code)
	if cmd.Code == f.failCode {
		return 0, errors.New("fail")
	}
	return float64(cmd.Code), nil
}

func (f *fakeSource) Angles() (lec315.Angles, error) {
	f.calls = append(f.calls, lec315.ReadAllAngles.Code)
	if f.failCode == lec315.ReadAllAngles.Code {
		return lec315.Angles{}, errors.New("fail")
	}
	return lec315.Angles{Pitch: 1, Roll: 2, Azimuth: 3}, nil
}

func TestNew(t *testing.T) {
	_, err := New(Config{Interval: time.Second}, &fakeSource{})
	require.Error(t, err)
	_, err = New(Config{Quantities: []string{Pitch}}, &fakeSource{})
	require.Error(t, err)
	_, err = New(Config{Interval: time.Second, Quantities: []string{"yaw"}}, &fakeSource{})
	require.Error(t, err)
}

func TestSampleOnceSuccess(t *testing.T) {
	src := &fakeSource{}
	s, err := New(Config{Interval: time.Second, Quantities: []string{Pitch, Declination}}, src)
	require.NoError(t, err)

	r := s.SampleOnce()
	require.NoError(t, r.Err)
	require.Equal(t, map[string]float64{Pitch: 1, Declination: 7}, r.Values)
	require.Equal(t, []byte{0x01, 0x07}, src.calls)
}

func TestSampleOnceAngles(t *testing.T) {
	s, err := New(Config{Interval: time.Second, Quantities: []string{Angles}}, &fakeSource{})
	require.NoError(t, err)

	r := s.SampleOnce()
	require.NoError(t, r.Err)
	require.Equal(t, map[string]float64{Pitch: 1, Roll: 2, Azimuth: 3}, r.Values)
}

func TestSampleOnceFailure(t *testing.T) {
	src := &fakeSource{failCode: lec315.ReadRoll.Code}
	s, err := New(Config{Interval: time.Second, Quantities: []string{Pitch, Roll, Azimuth}}, src)
	require.NoError(t, err)

	r := s.SampleOnce()
	require.Error(t, r.Err)
	require.Nil(t, r.Values)
	require.Equal(t, []byte{0x01, 0x02}, src.calls)
}

func TestRunWithSimulator(t *testing.T) {
	m := sim.New()
	m.Pitch, m.Azimuth = 1.5, 90
	s, err := New(Config{Interval: 5 * time.Millisecond, Quantities: []string{Pitch, Azimuth}}, lec315.NewDevice(m))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan msgs.Reading)
	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(ctx, out) }()

	for i := 0; i < 3; i++ {
		select {
		case r := <-out:
			require.NoError(t, r.Err)
			require.InDelta(t, 1.5, r.Values[Pitch], 1e-9)
			require.InDelta(t, 90.0, r.Values[Azimuth], 1e-9)
		case <-time.After(time.Second):
			t.Fatal("no reading")
		}
	}
	cancel()
	require.Equal(t, context.Canceled, <-errCh)
}
