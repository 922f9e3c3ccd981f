package port

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.bug.st/serial"

	"github.com/robotalks/compass.go/pkg/l0/lec315"
)

// fakePort models the driver side of a UART: written bytes sit in
// queued until the line takes them, ResetOutputBuffer drops them.
type fakePort struct {
	serial.Port

	lock     sync.Mutex
	blocked  chan struct{} // when set, Write waits for a flush
	released bool
	queued   []byte
	rx       []byte
	modes    []serial.Mode
}

func (f *fakePort) Write(p []byte) (int, error) {
	if f.blocked != nil {
		<-f.blocked
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	f.queued = append(f.queued, p...)
	return len(p), nil
}

func (f *fakePort) ResetOutputBuffer() error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.queued = nil
	if f.blocked != nil && !f.released {
		close(f.blocked)
		f.released = true
	}
	return nil
}

func (f *fakePort) ResetInputBuffer() error {
	f.lock.Lock()
	f.rx = nil
	f.lock.Unlock()
	return nil
}

func (f *fakePort) SetReadTimeout(time.Duration) error {
	return nil
}

func (f *fakePort) Read(p []byte) (int, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	n := copy(p, f.rx)
	f.rx = f.rx[n:]
	return n, nil
}

func (f *fakePort) SetMode(mode *serial.Mode) error {
	f.lock.Lock()
	f.modes = append(f.modes, *mode)
	f.lock.Unlock()
	return nil
}

func (f *fakePort) Close() error {
	return nil
}

func (f *fakePort) pending() []byte {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]byte(nil), f.queued...)
}

func newFakeSerial(fp *fakePort) *Serial {
	return &Serial{port: fp, name: "fake"}
}

func TestSerialWrite(t *testing.T) {
	fp := &fakePort{}
	s := newFakeSerial(fp)
	frame := []byte{0x77, 0x04, 0x00, 0x01, 0x7c}
	require.NoError(t, s.Write(frame, time.Second))
	require.Equal(t, frame, fp.pending())
}

func TestSerialWriteTimeoutLeavesNothingQueued(t *testing.T) {
	fp := &fakePort{blocked: make(chan struct{})}
	d := lec315.NewDevice(newFakeSerial(fp))
	d.SendTimeout = 20 * time.Millisecond
	var faults int
	d.Fault = lec315.FaultFunc(func(time.Duration, error) { faults++ })

	_, err := d.Pitch()
	require.True(t, errors.Is(err, lec315.ErrTransportTimeout))
	require.Equal(t, 1, faults)
	require.Empty(t, fp.pending())
}

func TestSerialRead(t *testing.T) {
	fp := &fakePort{rx: []byte{0x81, 0x01, 0x23, 0x45}}
	s := newFakeSerial(fp)
	buf := make([]byte, 4)
	require.NoError(t, s.Read(buf, time.Second))
	require.Equal(t, []byte{0x81, 0x01, 0x23, 0x45}, buf)
	require.Equal(t, lec315.ErrTransportTimeout, s.Read(buf[:1], 10*time.Millisecond))
}

func TestSerialFollowsModuleBaudRate(t *testing.T) {
	fp := &fakePort{rx: []byte{0x8b, 0x00}}
	d := lec315.NewDevice(newFakeSerial(fp))
	ok, err := d.SetBaudRate(lec315.Baud115200)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, fp.modes, 1)
	require.Equal(t, 115200, fp.modes[0].BaudRate)
	require.Equal(t, 8, fp.modes[0].DataBits)

	fp.rx = []byte{0x8b, 0x01}
	ok, err = d.SetBaudRate(lec315.Baud2400)
	require.NoError(t, err)
	require.False(t, ok)
	require.Len(t, fp.modes, 1)
}
