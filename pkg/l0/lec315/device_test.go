package lec315

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type baudTransport struct {
	fakeTransport
	bauds   []int
	baudErr error
}

func (b *baudTransport) SetBaudRate(baud int) error {
	if b.baudErr != nil {
		return b.baudErr
	}
	b.bauds = append(b.bauds, baud)
	return nil
}

func TestBaudRate(t *testing.T) {
	for _, baud := range []int{2400, 4800, 9600, 19200, 38400, 115200} {
		code, ok := BaudRateCode(baud)
		require.True(t, ok)
		back, ok := BaudRate(code)
		require.True(t, ok)
		require.Equal(t, baud, back)
	}
	_, ok := BaudRate(0x06)
	require.False(t, ok)
}

func TestDeviceSetBaudRateReclocksHost(t *testing.T) {
	tr := &baudTransport{fakeTransport: fakeTransport{rx: []byte{0x8b, 0x00}}}
	d := NewDevice(tr)
	ok, err := d.SetBaudRate(Baud115200)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []int{115200}, tr.bauds)
}

func TestDeviceSetBaudRateRejectedKeepsHost(t *testing.T) {
	tr := &baudTransport{fakeTransport: fakeTransport{rx: []byte{0x8b, 0x01}}}
	d := NewDevice(tr)
	ok, err := d.SetBaudRate(Baud115200)
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, tr.bauds)
}

func TestDeviceSetBaudRateHostError(t *testing.T) {
	boom := errors.New("boom")
	tr := &baudTransport{
		fakeTransport: fakeTransport{rx: []byte{0x8b, 0x00}},
		baudErr:       boom,
	}
	d := NewDevice(tr)
	ok, err := d.SetBaudRate(Baud19200)
	require.True(t, ok)
	require.True(t, errors.Is(err, boom))
}

func TestDeviceSetBaudRatePlainTransport(t *testing.T) {
	d := NewDevice(&fakeTransport{rx: []byte{0x8b, 0x00}})
	ok, err := d.SetBaudRate(Baud4800)
	require.NoError(t, err)
	require.True(t, ok)
}
