package lec315

import (
	"fmt"
	"math"
)

// Angles is the decoded READ_ALL_ANGLES response.
type Angles struct {
	Pitch   float64
	Roll    float64
	Azimuth float64
}

// Decode converts a sign-magnitude BCD payload into a number.
//
//	2 bytes: SXXX     -> ±XXX
//	3 bytes: SXXX YY  -> ±XXX.YY
//
// The sign nibble is a flag: zero is positive, anything else negative.
func Decode(payload []byte) (float64, error) {
	if n := len(payload); n != 2 && n != 3 {
		return 0, ErrUnsupportedPayloadLength
	}
	digits := fmt.Sprintf("%X", payload)

	sign, err := HexToUint(digits[:1])
	if err != nil {
		return 0, err
	}
	integer, err := decimalDigits(digits[1:4])
	if err != nil {
		return 0, err
	}
	val := float64(integer)
	if len(digits) > 4 {
		fraction, err := decimalDigits(digits[4:6])
		if err != nil {
			return 0, err
		}
		val += float64(fraction) / 100
	}
	if sign != 0 {
		val = -val
	}
	return val, nil
}

// DecodeAngles decodes the 9-byte pitch/roll/azimuth response.
func DecodeAngles(payload []byte) (a Angles, err error) {
	if len(payload) != 9 {
		return a, ErrUnsupportedPayloadLength
	}
	if a.Pitch, err = Decode(payload[0:3]); err != nil {
		return
	}
	if a.Roll, err = Decode(payload[3:6]); err != nil {
		return
	}
	a.Azimuth, err = Decode(payload[6:9])
	return
}

// DecodeStatus interprets a SET acknowledgement: true iff the status byte is 0.
func DecodeStatus(payload []byte) bool {
	return len(payload) > 0 && payload[0] == 0
}

// EncodeFixed is the inverse of Decode, producing n (2 or 3) bytes.
// Values are rounded to the resolution of the format.
func EncodeFixed(v float64, n int) ([]byte, error) {
	var scale float64
	var limit uint32
	switch n {
	case 2:
		scale, limit = 1, 999
	case 3:
		scale, limit = 100, 99999
	default:
		return nil, ErrUnsupportedPayloadLength
	}
	mag := math.Round(math.Abs(v) * scale)
	if math.IsNaN(mag) || mag > float64(limit) {
		return nil, fmt.Errorf("%v: %w", v, ErrValueRange)
	}
	m := uint32(mag)

	// nibbles, least significant first
	nibbles := make([]byte, n*2)
	for i := 0; i < len(nibbles)-1; i++ {
		nibbles[i] = byte(m % 10)
		m /= 10
	}
	if v < 0 && mag != 0 {
		nibbles[len(nibbles)-1] = 1
	}

	out := make([]byte, n)
	for i := range out {
		hi, lo := nibbles[len(nibbles)-1-2*i], nibbles[len(nibbles)-2-2*i]
		out[i] = hi<<4 | lo
	}
	return out, nil
}

func decimalDigits(digits string) (uint32, error) {
	var val uint32
	for i := 0; i < len(digits); i++ {
		d, err := HexToUint(digits[i : i+1])
		if err != nil {
			return 0, err
		}
		if d > 9 {
			return 0, ErrMalformedPayload
		}
		val = val*10 + d
	}
	return val, nil
}
