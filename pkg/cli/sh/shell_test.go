package sh

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/compass.go/pkg/config"
)

func simShell(t *testing.T) *Shell {
	conf := config.Default()
	conf.Port.Address = config.SimAddress
	s := &Shell{Config: conf}
	require.NoError(t, s.Open(""))
	t.Cleanup(s.Close)
	return s
}

func TestExecNotConnected(t *testing.T) {
	s := &Shell{Config: config.Default()}
	_, err := s.Exec("read", "pitch", "")
	require.EqualError(t, err, "not connected")
}

func TestExecReadSet(t *testing.T) {
	s := simShell(t)
	require.Equal(t, config.SimAddress, s.Port)

	out, err := s.Exec("read", "pitch", "")
	require.NoError(t, err)
	require.Equal(t, "0.00", out)

	out, err = s.Exec("set", "declination", "-3")
	require.NoError(t, err)
	require.Equal(t, "OK", out)

	out, err = s.Exec("get", "declination", "")
	require.NoError(t, err)
	require.Equal(t, "-3.00", out)

	_, err = s.Exec("set", "mode", "x")
	require.Error(t, err)
	_, err = s.Exec("write", "mode", "1")
	require.Error(t, err)
}

func TestCloseResetsDevice(t *testing.T) {
	s := simShell(t)
	s.Close()
	require.Nil(t, s.Device)
	require.Empty(t, s.Port)
	s.Close()
}
