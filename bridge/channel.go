package bridge

import (
	"net"

	"github.com/ahngo/ftclient/common"
	"github.com/hetianyi/gox/logger"
)

// DialControl opens the control connection to the given server.
func DialControl(server *common.Server) (net.Conn, error) {
	logger.Debug("dialing control channel ", server.ConnectionString())
	return net.Dial("tcp", server.ConnectionString())
}

// ReadMessage reads a single control channel message with one bounded
// read of at most MAX_MESSAGE_SIZE bytes.
func ReadMessage(conn net.Conn) ([]byte, error) {
	buf := make([]byte, common.MAX_MESSAGE_SIZE)
	n, err := conn.Read(buf)
	if n > 0 {
		return buf[:n], nil
	}
	if err != nil {
		return nil, err
	}
	return buf[:0], nil
}
