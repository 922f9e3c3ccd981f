package lec315

import (
	"errors"
	"fmt"
)

var (
	// ErrTransportTimeout indicates the serial channel didn't complete in time.
	// Transports return it (or wrap it) when a per-call timeout expires.
	ErrTransportTimeout = errors.New("transport timeout")
	// ErrUnsupportedPayloadLength indicates a payload can't be decoded as a number.
	ErrUnsupportedPayloadLength = errors.New("unsupported payload length")
	// ErrInvalidHexDigit indicates a non-hex character in a digit string.
	ErrInvalidHexDigit = errors.New("invalid hex digit")
	// ErrTooManyDigits indicates a digit string doesn't fit 32 bits.
	ErrTooManyDigits = errors.New("too many hex digits")
	// ErrMalformedPayload indicates a magnitude nibble is not a decimal digit.
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrValueRange indicates a number can't be represented on the wire.
	ErrValueRange = errors.New("value out of range")
	// ErrNoResponse indicates the expected flag was not seen within MaxFlagAttempts.
	ErrNoResponse = errors.New("no response")
	// ErrDataLength indicates SET data doesn't match the command descriptor.
	ErrDataLength = errors.New("data length mismatch")
)

// InvalidHexDigitError reports the offending character and its position.
type InvalidHexDigitError struct {
	Char  byte
	Index int
}

// Error implements error.
func (e *InvalidHexDigitError) Error() string {
	return fmt.Sprintf("invalid hex digit %q at %d", e.Char, e.Index)
}

// Is matches ErrInvalidHexDigit.
func (e *InvalidHexDigitError) Is(target error) bool {
	return target == ErrInvalidHexDigit
}

// TransportError wraps an error reported by the serial channel.
// Op is one of "send", "flag", "payload".
type TransportError struct {
	Op  string
	Err error
}

// Error implements error.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was a timeout.
func (e *TransportError) Timeout() bool {
	return errors.Is(e.Err, ErrTransportTimeout)
}
