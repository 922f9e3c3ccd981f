package lec315

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	testCases := []struct {
		name   string
		frame  []byte
		expect byte
	}{
		{"read pitch", []byte{0x77, 0x04, 0x00, 0x01, 0xff}, 0x7c},
		{"set address", []byte{0x77, 0x05, 0x00, 0x0f, 0x01, 0x00}, 0x8c},
		{"wraps", []byte{0xff, 0xff, 0x03, 0x00}, 0x01},
		{"only trailer", []byte{0x42}, 0},
		{"empty", nil, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, Checksum(tc.frame))
		})
	}
}

func TestChecksumIgnoresTrailer(t *testing.T) {
	frame := []byte{0x77, 0x04, 0x00, 0x03, 0x00}
	sum := Checksum(frame)
	for v := 0; v < 256; v++ {
		frame[4] = byte(v)
		require.Equal(t, sum, Checksum(frame))
	}
}

func TestChecksumDetectsChange(t *testing.T) {
	frame := []byte{0x77, 0x05, 0x00, 0x0b, 0x02, 0x00}
	sum := Checksum(frame)
	for i := 0; i < len(frame)-1; i++ {
		for delta := 1; delta < 256; delta++ {
			changed := append([]byte(nil), frame...)
			changed[i] += byte(delta)
			require.NotEqualf(t, sum, Checksum(changed), "byte[%d]+%d", i, delta)
		}
	}
}
