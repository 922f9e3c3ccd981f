// Package control runs compass commands addressed by name,
// as used by the shell and the MQTT command topics.
package control

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robotalks/compass.go/pkg/l0/lec315"
)

// Read runs the read command with name and formats the result.
func Read(dev *lec315.Device, name string) (string, error) {
	cmd, ok := lec315.LookupRead(name)
	if !ok {
		return "", fmt.Errorf("unknown read command %q", name)
	}
	switch cmd.Code {
	case lec315.ReadAllAngles.Code:
		a, err := dev.Angles()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("pitch=%.2f roll=%.2f azimuth=%.2f", a.Pitch, a.Roll, a.Azimuth), nil
	case lec315.ReadCompassAddr.Code:
		addr, err := dev.Address()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("0x%02x", addr), nil
	case lec315.ReadSavingSettings.Code:
		ok, err := dev.SaveSettings()
		if err != nil {
			return "", err
		}
		return Status(ok), nil
	}
	val, err := dev.ReadValue(cmd)
	if err != nil {
		return "", err
	}
	return strconv.FormatFloat(val, 'f', 2, 64), nil
}

// Set parses arg for the set command with name and runs it.
//
//	baudrate     line speed (9600) or code (0x02)
//	address      0..255
//	mode         output mode code 0..6
//	declination  degrees
func Set(dev *lec315.Device, name, arg string) (bool, error) {
	arg = strings.TrimSpace(arg)
	switch name {
	case lec315.SetBaudRate.Name:
		code, err := parseBaud(arg)
		if err != nil {
			return false, err
		}
		return dev.SetBaudRate(code)
	case lec315.SetCompassAddr.Name:
		addr, err := parseByte(arg)
		if err != nil {
			return false, err
		}
		return dev.SetAddress(addr)
	case lec315.SetOutputMode.Name:
		mode, err := parseByte(arg)
		if err != nil {
			return false, err
		}
		return dev.SetOutputMode(mode)
	case lec315.SetMagneticDecl.Name:
		deg, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return false, fmt.Errorf("invalid declination %q: %v", arg, err)
		}
		return dev.SetMagneticDeclination(deg)
	}
	return false, fmt.Errorf("unknown set command %q", name)
}

// Status formats a set result.
func Status(ok bool) string {
	if ok {
		return "OK"
	}
	return "REJECTED"
}

func parseByte(arg string) (byte, error) {
	val, err := strconv.ParseUint(arg, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q: %v", arg, err)
	}
	return byte(val), nil
}

func parseBaud(arg string) (byte, error) {
	val, err := strconv.ParseUint(arg, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid baud rate %q: %v", arg, err)
	}
	if val <= uint64(lec315.Baud115200) {
		return byte(val), nil
	}
	code, ok := lec315.BaudRateCode(int(val))
	if !ok {
		return 0, fmt.Errorf("unsupported baud rate %d", val)
	}
	return code, nil
}
