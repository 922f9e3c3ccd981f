package lec315

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang/glog"
)

// Transport is the serial channel used by a Session.
type Transport interface {
	// Write sends all of p within timeout.
	Write(p []byte, timeout time.Duration) error
	// Read fills p within timeout.
	Read(p []byte, timeout time.Duration) error
}

// Resetter is implemented by transports able to drop buffered bytes.
type Resetter interface {
	Reset() error
}

// BaudSetter is implemented by transports able to change the host line speed.
type BaudSetter interface {
	SetBaudRate(baud int) error
}

// Reference protocol timing.
const (
	DefaultSendTimeout    = 500 * time.Millisecond
	DefaultFlagTimeout    = 500 * time.Millisecond
	DefaultPayloadTimeout = 1000 * time.Millisecond

	// FaultBlinkInterval is passed to the FaultHandler on transport faults.
	FaultBlinkInterval = 200 * time.Millisecond
)

// State is the step of an exchange.
type State int

// Exchange states.
const (
	StateSend State = iota
	StateAwaitFlag
	StateAwaitPayload
	StateDone
	StateFault
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateSend:
		return "SEND"
	case StateAwaitFlag:
		return "AWAIT_FLAG"
	case StateAwaitPayload:
		return "AWAIT_PAYLOAD"
	case StateDone:
		return "DONE"
	case StateFault:
		return "FAULT"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Session performs blocking request/response exchanges.
// Only one exchange is on the wire at a time.
type Session struct {
	Transport  Transport
	Addressing Addressing
	Fault      FaultHandler

	// MaxFlagAttempts bounds the number of single-byte reads while
	// waiting for the response flag. 0 waits for as long as bytes keep
	// arriving.
	MaxFlagAttempts int

	SendTimeout    time.Duration
	FlagTimeout    time.Duration
	PayloadTimeout time.Duration

	lock sync.Mutex
}

// NewSession creates a Session with reference timing and factory addressing.
func NewSession(t Transport) *Session {
	return &Session{
		Transport:      t,
		Addressing:     DefaultAddressing,
		SendTimeout:    DefaultSendTimeout,
		FlagTimeout:    DefaultFlagTimeout,
		PayloadTimeout: DefaultPayloadTimeout,
	}
}

// Read runs a read command and returns the raw response payload.
func (s *Session) Read(cmd ReadCommand) ([]byte, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.exchange(s.Addressing.ReadFrame(cmd), cmd.ResponseFlag, int(cmd.ResponseLen))
}

// ReadValue runs a read command and decodes the payload as a number.
func (s *Session) ReadValue(cmd ReadCommand) (float64, error) {
	payload, err := s.Read(cmd)
	if err != nil {
		return 0, err
	}
	return Decode(payload)
}

// Set runs a set command. The result is true iff the module
// acknowledged with a zero status byte.
func (s *Session) Set(cmd SetCommand, data ...byte) (bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	frame, err := s.Addressing.SetFrame(cmd, data...)
	if err != nil {
		return false, err
	}
	payload, err := s.exchange(frame, cmd.ResponseFlag, int(cmd.ResponseLen))
	if err != nil {
		return false, err
	}
	return DecodeStatus(payload), nil
}

func (s *Session) exchange(frame Frame, flag byte, payloadLen int) ([]byte, error) {
	if payloadLen > MaxResponseLen {
		return nil, fmt.Errorf("response length %d: %w", payloadLen, ErrUnsupportedPayloadLength)
	}

	var (
		parser   = NewResponseParser(flag, payloadLen)
		buf      [MaxResponseLen]byte
		attempts int
		state    = StateSend
	)
	for {
		glog.V(5).Infof("cmd %02x: %s", frame.Code(), state)
		switch state {
		case StateSend:
			glog.V(4).Infof("SND % x", []byte(frame))
			if err := s.Transport.Write(frame, s.timeout(s.SendTimeout, DefaultSendTimeout)); err != nil {
				return nil, s.fault("send", err)
			}
			state = StateAwaitFlag

		case StateAwaitFlag:
			if s.MaxFlagAttempts > 0 && attempts >= s.MaxFlagAttempts {
				return nil, s.fault("flag", ErrNoResponse)
			}
			attempts++
			if err := s.Transport.Read(buf[:1], s.timeout(s.FlagTimeout, DefaultFlagTimeout)); err != nil {
				return nil, s.fault("flag", err)
			}
			if done, skipped := parser.Parse(buf[0]); skipped {
				glog.V(4).Infof("SKIP %02x (want %02x)", buf[0], flag)
			} else if done {
				state = StateDone
			} else {
				state = StateAwaitPayload
			}

		case StateAwaitPayload:
			p := buf[:payloadLen]
			if err := s.Transport.Read(p, s.timeout(s.PayloadTimeout, DefaultPayloadTimeout)); err != nil {
				return nil, s.fault("payload", err)
			}
			for _, b := range p {
				parser.Parse(b)
			}
			state = StateDone

		case StateDone:
			glog.V(4).Infof("RCV %02x % x", flag, parser.Payload())
			return parser.Payload(), nil
		}
	}
}

// fault leaves the link clean and reports the failure.
func (s *Session) fault(op string, err error) error {
	terr := &TransportError{Op: op, Err: err}
	glog.V(4).Infof("%s: %v", StateFault, terr)
	if r, ok := s.Transport.(Resetter); ok {
		if rerr := r.Reset(); rerr != nil {
			glog.Warningf("transport reset after %s fault: %v", op, rerr)
		}
	}
	if h := s.Fault; h != nil {
		h.SignalFault(FaultBlinkInterval, terr)
	}
	return terr
}

func (s *Session) timeout(d, def time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return def
}
