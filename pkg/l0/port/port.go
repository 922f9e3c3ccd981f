// Package port opens the physical or bridged link to a compass module.
package port

import (
	"fmt"
	"io"
	"net"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/net/websocket"

	"github.com/robotalks/compass.go/pkg/l0/lec315"
)

// Port is an opened transport.
type Port interface {
	lec315.Transport
	io.Closer
}

// DialTimeout bounds connecting to network bridges.
const DialTimeout = 5 * time.Second

// Open opens a link by address:
//
//	/dev/ttyUSB0 or serial:///dev/ttyUSB0?baud=9600
//	tcp://host:port   (ser2net raw mode)
//	ws://host/path    (websocket bridge, wss supported)
func Open(addr string, baud int) (Port, error) {
	u, err := url.Parse(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid port address %q: %w", addr, err)
	}
	switch u.Scheme {
	case "", "serial", "file":
		dev := u.Path
		if u.Scheme == "" {
			dev = addr
		}
		if val := u.Query().Get("baud"); val != "" {
			if baud, err = strconv.Atoi(val); err != nil {
				return nil, fmt.Errorf("invalid baud %q: %w", val, err)
			}
		}
		return OpenSerial(SerialConfig{Device: dev, BaudRate: baud})
	case "tcp":
		conn, err := net.DialTimeout("tcp", u.Host, DialTimeout)
		if err != nil {
			return nil, err
		}
		return NewConn(conn), nil
	case "ws", "wss":
		origin := "http://" + u.Host + "/"
		if u.Scheme == "wss" {
			origin = "https://" + u.Host + "/"
		}
		conf, err := websocket.NewConfig(addr, origin)
		if err != nil {
			return nil, err
		}
		conf.Dialer = &net.Dialer{Timeout: DialTimeout}
		conn, err := websocket.DialConfig(conf)
		if err != nil {
			return nil, err
		}
		conn.PayloadType = websocket.BinaryFrame
		return NewConn(conn), nil
	}
	return nil, fmt.Errorf("unknown port scheme: %q", u.Scheme)
}
