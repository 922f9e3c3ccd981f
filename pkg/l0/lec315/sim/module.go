// Package sim emulates an LEC315 module for tests and bench work without hardware.
package sim

import (
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/compass.go/pkg/l0/lec315"
)

// Module is an emulated compass. It implements lec315.Transport:
// frames written to it are answered on the next reads.
type Module struct {
	Pitch       float64
	Roll        float64
	Azimuth     float64
	Declination float64

	Addressing lec315.Addressing
	BaudCode   byte
	OutputMode byte
	Saved      bool

	// Noise is emitted ahead of every response.
	Noise []byte
	// Silent drops all requests.
	Silent bool
	// HostBaud is the line speed of the host side. Frames are garbled,
	// and so ignored, while it differs from the module speed.
	HostBaud int

	lock sync.Mutex
	rx   []byte
}

// New creates a Module in factory settings.
func New() *Module {
	return &Module{
		Addressing: lec315.DefaultAddressing,
		BaudCode:   lec315.Baud9600,
		HostBaud:   9600,
	}
}

// Write implements lec315.Transport.
func (m *Module) Write(p []byte, timeout time.Duration) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	f := lec315.Frame(append([]byte(nil), p...))
	if m.Silent || !f.Valid() || !m.inSync() ||
		f[0] != m.Addressing.DeviceID || f[2] != m.Addressing.Addr {
		glog.V(4).Infof("sim: ignored % x", p)
		return nil
	}
	resp := m.handle(f)
	if resp != nil {
		m.rx = append(m.rx, m.Noise...)
		m.rx = append(m.rx, resp...)
	}
	return nil
}

// Read implements lec315.Transport.
// Missing bytes are reported as a timeout, as on a quiet line.
func (m *Module) Read(p []byte, timeout time.Duration) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	if len(m.rx) < len(p) {
		m.rx = m.rx[:0]
		return lec315.ErrTransportTimeout
	}
	copy(p, m.rx)
	m.rx = m.rx[len(p):]
	return nil
}

// Reset implements lec315.Resetter.
func (m *Module) Reset() error {
	m.lock.Lock()
	m.rx = nil
	m.lock.Unlock()
	return nil
}

// SetBaudRate implements lec315.BaudSetter.
func (m *Module) SetBaudRate(baud int) error {
	m.lock.Lock()
	m.HostBaud = baud
	m.lock.Unlock()
	return nil
}

func (m *Module) inSync() bool {
	baud, _ := lec315.BaudRate(m.BaudCode)
	return m.HostBaud == 0 || m.HostBaud == baud
}

// Pending returns the number of queued bytes not yet read.
func (m *Module) Pending() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return len(m.rx)
}

func (m *Module) handle(f lec315.Frame) []byte {
	for _, cmd := range lec315.SetCommands {
		if cmd.Code == f.Code() && len(f.Data()) != int(cmd.DataLen) {
			return ack(cmd, false)
		}
	}
	switch f.Code() {
	case lec315.ReadPitch.Code:
		return m.value(lec315.ReadPitch, m.Pitch)
	case lec315.ReadRoll.Code:
		return m.value(lec315.ReadRoll, m.Roll)
	case lec315.ReadAzimuth.Code:
		return m.value(lec315.ReadAzimuth, m.Azimuth)
	case lec315.ReadMagneticDecl.Code:
		return m.value(lec315.ReadMagneticDecl, m.Declination)
	case lec315.ReadAllAngles.Code:
		resp := []byte{lec315.ReadAllAngles.ResponseFlag}
		for _, v := range []float64{m.Pitch, m.Roll, m.Azimuth} {
			data, err := lec315.EncodeFixed(v, 3)
			if err != nil {
				return nil
			}
			resp = append(resp, data...)
		}
		return resp
	case lec315.ReadCompassAddr.Code:
		return []byte{lec315.ReadCompassAddr.ResponseFlag, m.Addressing.Addr}
	case lec315.ReadSavingSettings.Code:
		m.Saved = true
		return []byte{lec315.ReadSavingSettings.ResponseFlag, 0}
	case lec315.SetBaudRate.Code:
		code := f.Data()[0]
		if code > lec315.Baud115200 {
			return ack(lec315.SetBaudRate, false)
		}
		m.BaudCode = code
		return ack(lec315.SetBaudRate, true)
	case lec315.SetCompassAddr.Code:
		resp := ack(lec315.SetCompassAddr, true)
		m.Addressing.Addr = f.Data()[0]
		return resp
	case lec315.SetOutputMode.Code:
		mode := f.Data()[0]
		if mode > lec315.OutputAuto100Hz {
			return ack(lec315.SetOutputMode, false)
		}
		m.OutputMode = mode
		return ack(lec315.SetOutputMode, true)
	case lec315.SetMagneticDecl.Code:
		v, err := lec315.Decode(f.Data())
		if err != nil {
			return ack(lec315.SetMagneticDecl, false)
		}
		m.Declination = v
		return ack(lec315.SetMagneticDecl, true)
	}
	return nil
}

func (m *Module) value(cmd lec315.ReadCommand, v float64) []byte {
	data, err := lec315.EncodeFixed(v, int(cmd.ResponseLen))
	if err != nil {
		glog.Warningf("sim: %s: %v", cmd.Name, err)
		return nil
	}
	return append([]byte{cmd.ResponseFlag}, data...)
}

func ack(cmd lec315.SetCommand, ok bool) []byte {
	status := byte(0)
	if !ok {
		status = 1
	}
	return []byte{cmd.ResponseFlag, status}
}
