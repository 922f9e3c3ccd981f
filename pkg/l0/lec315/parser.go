package lec315

// ResponseParser recognizes a response in the byte stream.
// Bytes before the expected flag are skipped, then exactly
// the declared number of payload bytes is collected.
type ResponseParser struct {
	flag    byte
	buf     [MaxResponseLen]byte
	want    int
	recvLen int
	state   parseState
}

type parseState int

const (
	stateAwaitFlag    parseState = iota // scanning for flag
	stateAwaitPayload                   // collecting payload
	stateDone                           // payload complete
)

// NewResponseParser creates a parser for a response flag and payload length.
func NewResponseParser(flag byte, payloadLen int) *ResponseParser {
	if payloadLen > MaxResponseLen {
		payloadLen = MaxResponseLen
	}
	return &ResponseParser{flag: flag, want: payloadLen}
}

// Parse consumes one byte and reports whether the response is complete.
// Skipped reports the byte was discarded while scanning for the flag.
func (p *ResponseParser) Parse(b byte) (done, skipped bool) {
	switch p.state {
	case stateAwaitFlag:
		if b != p.flag {
			return false, true
		}
		if p.want == 0 {
			p.state = stateDone
			return true, false
		}
		p.state = stateAwaitPayload
	case stateAwaitPayload:
		p.buf[p.recvLen] = b
		if p.recvLen++; p.recvLen >= p.want {
			p.state = stateDone
			return true, false
		}
	case stateDone:
		return true, false
	}
	return false, false
}

// FlagSeen indicates the flag byte has been matched.
func (p *ResponseParser) FlagSeen() bool {
	return p.state != stateAwaitFlag
}

// Payload returns the collected payload.
func (p *ResponseParser) Payload() []byte {
	return p.buf[:p.recvLen]
}

// Reset restarts scanning for the flag.
func (p *ResponseParser) Reset() {
	p.recvLen, p.state = 0, stateAwaitFlag
}
