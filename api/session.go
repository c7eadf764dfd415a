package api

import (
	"bufio"
	"fmt"
	"net"
	"time"

	"github.com/ahngo/ftclient/bridge"
	"github.com/ahngo/ftclient/common"
	"github.com/hetianyi/gox"
	"github.com/hetianyi/gox/convert"
	"github.com/hetianyi/gox/logger"
	"github.com/hetianyi/gox/uuid"
	"github.com/logrusorgru/aurora"
)

// transferSession drives a single request over the control and data
// channels as a plain state machine.
type transferSession struct {
	config   *Config
	req      *common.TransferRequest
	state    common.SessionState
	listener *bridge.DataListener
	control  net.Conn
	data     net.Conn
	reply    common.ControlReply
	reader   *bufio.Reader
	dataPort int
	sawAck   bool
	result   string
	bytes    int64
	md5      string
}

func newTransferSession(config *Config, req *common.TransferRequest) *transferSession {
	return &transferSession{
		config: config,
		req:    req,
		state:  common.STATE_INIT,
		reader: bufio.NewReader(config.Input),
		result: common.RESULT_COMPLETE,
	}
}

// run drives the session until it is done or failed. Both channels are
// torn down on every exit path.
func (s *transferSession) run() (*common.TransferRecord, error) {
	defer s.cleanup()
	for {
		switch s.state {
		case common.STATE_INIT:
			if err := s.openDataListener(); err != nil {
				return s.fail(err)
			}
		case common.STATE_LISTENING:
			if err := s.connectControl(); err != nil {
				return s.fail(err)
			}
		case common.STATE_CONTROL_CONNECTED:
			if err := s.sendRequest(); err != nil {
				return s.fail(err)
			}
		case common.STATE_REQUEST_SENT:
			if err := s.readReply(); err != nil {
				return s.fail(err)
			}
		case common.STATE_REPLY_RECEIVED:
			if err := s.handleReply(); err != nil {
				return s.fail(err)
			}
		case common.STATE_DATA_CONNECTED:
			s.state = common.STATE_TRANSFERRING
		case common.STATE_TRANSFERRING:
			if err := s.receivePayload(); err != nil {
				return s.fail(err)
			}
			s.state = common.STATE_DONE
		case common.STATE_DONE:
			if s.sawAck {
				fmt.Fprintln(s.config.Console, "** Operations complete. Closing connections. **")
			}
			logger.Debug(aurora.BrightGreen("::: session finished :::"))
			return s.record(), nil
		}
	}
}

func (s *transferSession) openDataListener() error {
	listener, err := bridge.Open(s.req.DataPort)
	if err != nil {
		return err
	}
	s.listener = listener
	s.dataPort = listener.Port()
	fmt.Fprintln(s.config.Console, "Listening on data port "+convert.IntToStr(s.dataPort))
	s.state = common.STATE_LISTENING
	return nil
}

func (s *transferSession) connectControl() error {
	control, err := bridge.DialControl(s.config.Server)
	if err != nil {
		return err
	}
	s.control = control
	s.state = common.STATE_CONTROL_CONNECTED
	return nil
}

func (s *transferSession) sendRequest() error {
	if s.config.HandshakeDelay > 0 {
		time.Sleep(s.config.HandshakeDelay)
	}
	// the request always advertises the actually bound port
	resolved := *s.req
	resolved.DataPort = s.dataPort
	request, err := bridge.EncodeRequest(&resolved)
	if err != nil {
		return err
	}
	if _, err = s.control.Write(request); err != nil {
		return err
	}
	s.state = common.STATE_REQUEST_SENT
	return nil
}

func (s *transferSession) readReply() error {
	message, err := bridge.ReadMessage(s.control)
	if err != nil {
		return err
	}
	s.reply = bridge.Classify(message)
	s.state = common.STATE_REPLY_RECEIVED
	return nil
}

// handleReply either finishes the session on a refusing reply or accepts
// the connect-back on the data channel.
func (s *transferSession) handleReply() error {
	if s.reply.Kind == common.REPLY_ERROR {
		// the server refused the request and will not connect back
		fmt.Fprintln(s.config.Console, s.reply.Message)
		s.result = common.RESULT_SERVER_ERROR
		s.state = common.STATE_DONE
		return nil
	}
	s.sawAck = true
	fmt.Fprintln(s.config.Console, "Connected to ftserver on control port "+convert.Uint16ToStr(s.config.Server.Port))
	data, err := s.listener.AcceptOnce()
	if err != nil {
		return err
	}
	s.data = data
	fmt.Fprintln(s.config.Console, "ftserver connected on data port "+convert.IntToStr(s.dataPort))
	if s.config.HandshakeDelay > 0 {
		time.Sleep(s.config.HandshakeDelay)
	}
	s.state = common.STATE_DATA_CONNECTED
	return nil
}

func (s *transferSession) fail(err error) (*common.TransferRecord, error) {
	logger.Debug("transfer session failed: ", err)
	s.state = common.STATE_FAILED
	s.result = common.RESULT_FAILED
	return s.record(), err
}

// cleanup closes whatever channels the session opened so far. Tolerates
// repeated calls.
func (s *transferSession) cleanup() {
	if s.control != nil {
		s.control.Close()
		s.control = nil
	}
	if s.listener != nil {
		// also closes the accepted data connection
		s.listener.Close()
		s.listener = nil
		s.data = nil
	}
}

func (s *transferSession) record() *common.TransferRecord {
	return &common.TransferRecord{
		Id:         uuid.UUID(),
		Server:     s.config.Server.ConnectionString(),
		Command:    s.req.Command.Body(),
		Filename:   s.req.Filename,
		Bytes:      s.bytes,
		Md5:        s.md5,
		Result:     s.result,
		FinishTime: gox.GetTimestamp(time.Now()),
	}
}
