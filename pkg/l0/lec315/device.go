package lec315

import (
	"fmt"

	"github.com/golang/glog"
)

// Device exposes the LEC315 operations on top of a Session.
type Device struct {
	*Session
}

// NewDevice creates a Device over a transport with factory addressing.
func NewDevice(t Transport) *Device {
	return &Device{Session: NewSession(t)}
}

// Pitch reads the pitch angle in degrees.
func (d *Device) Pitch() (float64, error) {
	return d.ReadValue(ReadPitch)
}

// Roll reads the roll angle in degrees.
func (d *Device) Roll() (float64, error) {
	return d.ReadValue(ReadRoll)
}

// Azimuth reads the heading in degrees.
func (d *Device) Azimuth() (float64, error) {
	return d.ReadValue(ReadAzimuth)
}

// Heading is an alias of Azimuth.
func (d *Device) Heading() (float64, error) {
	return d.Azimuth()
}

// Angles reads pitch, roll and azimuth in one exchange.
func (d *Device) Angles() (Angles, error) {
	payload, err := d.Read(ReadAllAngles)
	if err != nil {
		return Angles{}, err
	}
	return DecodeAngles(payload)
}

// MagneticDeclination reads the configured magnetic declination.
func (d *Device) MagneticDeclination() (float64, error) {
	return d.ReadValue(ReadMagneticDecl)
}

// Address reads the module address.
func (d *Device) Address() (byte, error) {
	payload, err := d.Read(ReadCompassAddr)
	if err != nil {
		return 0, err
	}
	return payload[0], nil
}

// SaveSettings asks the module to persist its configuration.
func (d *Device) SaveSettings() (bool, error) {
	payload, err := d.Read(ReadSavingSettings)
	if err != nil {
		return false, err
	}
	return DecodeStatus(payload), nil
}

// SetBaudRate changes the line speed, see Baud* codes.
// The module switches after the acknowledgement, and so does the
// host side when the transport is a BaudSetter.
func (d *Device) SetBaudRate(code byte) (bool, error) {
	ok, err := d.Set(SetBaudRate, code)
	if !ok || err != nil {
		return ok, err
	}
	setter, isSetter := d.Transport.(BaudSetter)
	if !isSetter {
		return ok, nil
	}
	baud, known := BaudRate(code)
	if !known {
		return ok, fmt.Errorf("module accepted unknown baud code 0x%02x", code)
	}
	if err := setter.SetBaudRate(baud); err != nil {
		return ok, fmt.Errorf("set host baud rate %d: %w", baud, err)
	}
	glog.V(2).Infof("line speed now %d", baud)
	return ok, nil
}

// SetAddress changes the module address.
// On success further requests use the new address.
func (d *Device) SetAddress(addr byte) (bool, error) {
	ok, err := d.Set(SetCompassAddr, addr)
	if ok {
		d.lock.Lock()
		d.Addressing.Addr = addr
		d.lock.Unlock()
	}
	return ok, err
}

// SetOutputMode selects answer or auto output mode, see Output* codes.
func (d *Device) SetOutputMode(mode byte) (bool, error) {
	return d.Set(SetOutputMode, mode)
}

// SetMagneticDeclination writes the magnetic declination in whole degrees.
func (d *Device) SetMagneticDeclination(deg float64) (bool, error) {
	data, err := EncodeFixed(deg, int(SetMagneticDecl.DataLen))
	if err != nil {
		return false, err
	}
	return d.Set(SetMagneticDecl, data...)
}
