package lec315

import "io"

// Frame is an encoded request ready for the wire.
type Frame []byte

// Addressing identifies the module on the link.
type Addressing struct {
	DeviceID byte
	Addr     byte
}

// DefaultAddressing is the factory identity of the module.
var DefaultAddressing = Addressing{DeviceID: DefaultDeviceID, Addr: DefaultDeviceAddr}

// ReadFrame builds the 5-byte request for a read command.
func (a Addressing) ReadFrame(cmd ReadCommand) Frame {
	f := Frame{a.DeviceID, 4, a.Addr, cmd.Code, 0}
	f[4] = Checksum(f)
	return f
}

// SetFrame builds the request for a set command.
// data must have exactly cmd.DataLen bytes.
func (a Addressing) SetFrame(cmd SetCommand, data ...byte) (Frame, error) {
	if len(data) != int(cmd.DataLen) {
		return nil, ErrDataLength
	}
	f := make(Frame, 5+len(data))
	f[0], f[1], f[2], f[3] = a.DeviceID, byte(len(f)-1), a.Addr, cmd.Code
	copy(f[4:], data)
	f[len(f)-1] = Checksum(f)
	return f, nil
}

// Valid checks the length byte and checksum of an encoded frame.
func (f Frame) Valid() bool {
	return len(f) >= 5 && int(f[1]) == len(f)-1 && f[len(f)-1] == Checksum(f)
}

// Code returns the command code.
func (f Frame) Code() byte {
	return f[3]
}

// Data returns the SET payload, empty for read frames.
func (f Frame) Data() []byte {
	return f[4 : len(f)-1]
}

// WriteTo writes encoded bytes.
func (f Frame) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(f)
	return int64(n), err
}
