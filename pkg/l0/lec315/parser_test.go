package lec315

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResponseParser(t *testing.T) {
	testCases := []struct {
		name    string
		flag    byte
		length  int
		input   []byte
		skipped int
		payload []byte
	}{
		{"clean", 0x81, 3, []byte{0x81, 0x01, 0x23, 0x45}, 0, []byte{0x01, 0x23, 0x45}},
		{"leading noise", 0x81, 3, []byte{0x00, 0xff, 0x82, 0x81, 0x01, 0x23, 0x45}, 3, []byte{0x01, 0x23, 0x45}},
		{"flag value in payload", 0x8f, 1, []byte{0x8f, 0x8f}, 0, []byte{0x8f}},
		{"no payload", 0x1f, 0, []byte{0x1f}, 0, []byte{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewResponseParser(tc.flag, tc.length)
			var done bool
			skipped := 0
			for i, b := range tc.input {
				require.Falsef(t, done, "done before byte[%d]", i)
				var skip bool
				done, skip = p.Parse(b)
				if skip {
					skipped++
				}
			}
			require.True(t, done)
			require.True(t, p.FlagSeen())
			require.Equal(t, tc.skipped, skipped)
			require.Equal(t, tc.payload, p.Payload())
		})
	}
}

func TestResponseParserReset(t *testing.T) {
	p := NewResponseParser(0x87, 2)
	p.Parse(0x87)
	p.Parse(0x10)
	require.True(t, p.FlagSeen())
	p.Reset()
	require.False(t, p.FlagSeen())
	require.Empty(t, p.Payload())
	_, skipped := p.Parse(0x10)
	require.True(t, skipped)
}
