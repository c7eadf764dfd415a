package bridge

import (
	"net"

	"github.com/hetianyi/gox/convert"
	"github.com/hetianyi/gox/logger"
	"github.com/logrusorgru/aurora"
)

// DataListener owns the listening socket of the data channel and the
// single connection accepted on it.
type DataListener struct {
	port     int
	listener net.Listener
	conn     net.Conn
}

// Open binds the data channel listener on all interfaces. Listeners come
// with address reuse enabled, so a quick rerun does not collide with a
// lingering socket of the previous session.
func Open(port int) (*DataListener, error) {
	listener, err := net.Listen("tcp", ":"+convert.IntToStr(port))
	if err != nil {
		return nil, err
	}
	l := &DataListener{
		port:     listener.Addr().(*net.TCPAddr).Port,
		listener: listener,
	}
	logger.Debug(aurora.BrightGreen("::: data channel ready on port " + convert.IntToStr(l.port) + " :::"))
	return l, nil
}

// Port returns the actually bound port, which differs from the requested
// one when port 0 was given.
func (l *DataListener) Port() int {
	return l.port
}

// AcceptOnce waits for the single inbound data connection.
func (l *DataListener) AcceptOnce() (net.Conn, error) {
	conn, err := l.listener.Accept()
	if err != nil {
		return nil, err
	}
	logger.Debug("accept a new data connection")
	l.conn = conn
	return conn, nil
}

// Close releases the accepted connection and the listening socket, in
// that order. Safe to call more than once.
func (l *DataListener) Close() {
	if l.conn != nil {
		l.conn.Close()
		l.conn = nil
	}
	if l.listener != nil {
		l.listener.Close()
		l.listener = nil
	}
}
