package port

import (
	"errors"
	"io"
	"net"
	"time"

	"github.com/robotalks/compass.go/pkg/l0/lec315"
)

// Conn implements lec315.Transport over a stream connection,
// e.g. a ser2net TCP port or a websocket serial bridge.
type Conn struct {
	conn net.Conn
}

// NewConn wraps a net.Conn.
func NewConn(conn net.Conn) *Conn {
	return &Conn{conn: conn}
}

// Write implements lec315.Transport.
func (c *Conn) Write(p []byte, timeout time.Duration) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return err
	}
	_, err := c.conn.Write(p)
	return mapTimeout(err)
}

// Read implements lec315.Transport.
func (c *Conn) Read(p []byte, timeout time.Duration) error {
	if err := c.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return err
	}
	_, err := io.ReadFull(c.conn, p)
	return mapTimeout(err)
}

// Reset implements lec315.Resetter by discarding whatever is
// already buffered on the connection.
func (c *Conn) Reset() error {
	if err := c.conn.SetReadDeadline(time.Now().Add(drainWindow)); err != nil {
		return err
	}
	var buf [64]byte
	for {
		if _, err := c.conn.Read(buf[:]); err != nil {
			if isTimeout(err) {
				return nil
			}
			return err
		}
	}
}

// Close implements io.Closer.
func (c *Conn) Close() error {
	return c.conn.Close()
}

const drainWindow = 20 * time.Millisecond

func mapTimeout(err error) error {
	if err != nil && isTimeout(err) {
		return lec315.ErrTransportTimeout
	}
	return err
}

func isTimeout(err error) bool {
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
