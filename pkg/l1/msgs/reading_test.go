package msgs

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReadingEncodeDecode(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 30, 0, 125000000, time.UTC)
	r := &Reading{
		At:     at,
		Values: map[string]float64{"pitch": -12.5, "azimuth": 271.08},
	}
	data, err := r.Encode()
	require.NoError(t, err)

	decoded, err := DecodeReading(data)
	require.NoError(t, err)
	require.True(t, at.Equal(decoded.At))
	require.Equal(t, r.Values, decoded.Values)
	require.NoError(t, decoded.Err)
	require.Equal(t, []string{"azimuth", "pitch"}, decoded.Names())
}

func TestReadingError(t *testing.T) {
	r := &Reading{At: time.Now(), Err: errors.New("flag: transport timeout")}
	data, err := r.Encode()
	require.NoError(t, err)

	decoded, err := DecodeReading(data)
	require.NoError(t, err)
	require.EqualError(t, decoded.Err, "flag: transport timeout")
	require.Empty(t, decoded.Values)
}

func TestDecodeReadingInvalid(t *testing.T) {
	_, err := DecodeReading([]byte{0xff, 0xff})
	require.Error(t, err)

	empty, err := (&Reading{}).Encode()
	require.NoError(t, err)
	_, err = DecodeReading(empty[:0])
	require.Error(t, err)
}

func TestReadingString(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	r := &Reading{At: at, Values: map[string]float64{"roll": 1, "pitch": 2.5}}
	require.Equal(t, "2024-03-01T12:30:00Z pitch=2.50 roll=1.00", r.String())
}
