package port

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang/glog"
	"go.bug.st/serial"

	"github.com/robotalks/compass.go/pkg/l0/lec315"
)

// SerialConfig configures a UART.
type SerialConfig struct {
	Device   string
	BaudRate int
}

// DefaultBaudRate is the factory line speed of the module.
const DefaultBaudRate = 9600

// Serial implements lec315.Transport on a local UART.
type Serial struct {
	port serial.Port
	name string

	writeLock sync.Mutex
}

// OpenSerial opens a UART in 8N1.
func OpenSerial(conf SerialConfig) (*Serial, error) {
	baud := conf.BaudRate
	if baud == 0 {
		baud = DefaultBaudRate
	}
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	p, err := serial.Open(conf.Device, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", conf.Device, err)
	}
	glog.Infof("opened %s at %d baud", conf.Device, baud)
	return &Serial{port: p, name: conf.Device}, nil
}

// Write implements lec315.Transport.
// It never returns with bytes of p still queued for the line.
func (s *Serial) Write(p []byte, timeout time.Duration) error {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	var abort atomic.Bool
	errCh := make(chan error, 1)
	go func() {
		for len(p) > 0 && !abort.Load() {
			n, err := s.port.Write(p)
			if err != nil {
				errCh <- err
				return
			}
			p = p[n:]
		}
		errCh <- nil
	}()
	select {
	case err := <-errCh:
		return err
	case <-time.After(timeout):
	}

	// Flushing releases a writer blocked on a full output queue.
	// Whatever it managed to queue meanwhile is flushed again.
	abort.Store(true)
	if err := s.port.ResetOutputBuffer(); err != nil {
		glog.Warningf("%s: flush output: %v", s.name, err)
	}
	<-errCh
	if err := s.port.ResetOutputBuffer(); err != nil {
		glog.Warningf("%s: flush output: %v", s.name, err)
	}
	return lec315.ErrTransportTimeout
}

// Read implements lec315.Transport.
// A read returning no bytes means the port read timeout expired.
func (s *Serial) Read(p []byte, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for off := 0; off < len(p); {
		remain := time.Until(deadline)
		if remain <= 0 {
			return lec315.ErrTransportTimeout
		}
		if err := s.port.SetReadTimeout(remain); err != nil {
			return err
		}
		n, err := s.port.Read(p[off:])
		if err != nil {
			return err
		}
		if n == 0 {
			return lec315.ErrTransportTimeout
		}
		off += n
	}
	return nil
}

// Reset implements lec315.Resetter.
func (s *Serial) Reset() error {
	if err := s.port.ResetOutputBuffer(); err != nil {
		return err
	}
	return s.port.ResetInputBuffer()
}

// SetBaudRate implements lec315.BaudSetter.
func (s *Serial) SetBaudRate(baud int) error {
	return s.port.SetMode(&serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
}

// Close implements io.Closer.
func (s *Serial) Close() error {
	return s.port.Close()
}

// String returns the device name.
func (s *Serial) String() string {
	return s.name
}
