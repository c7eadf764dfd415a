package bridge

import (
	"errors"
	"strings"

	"github.com/ahngo/ftclient/common"
	"github.com/hetianyi/gox/convert"
)

var (
	// RequestTooLongErr is returned when the assembled request content
	// cannot fit the fixed wire size.
	RequestTooLongErr = errors.New("request too long for fixed message size")
)

// EncodeRequest encodes a transfer request into its fixed 100 byte wire
// form: the advertised data port, the command body, '#' filler up to
// byte 98 and a NUL terminator at byte 99.
func EncodeRequest(req *common.TransferRequest) ([]byte, error) {
	var b strings.Builder
	b.WriteString(common.FIELD_PORT_START)
	b.WriteString(convert.IntToStr(req.DataPort))
	b.WriteString(common.FIELD_PORT_END)
	b.WriteString(common.FIELD_CMD)
	switch req.Command {
	case common.COMMAND_GET:
		b.WriteString(common.CMD_BODY_GET)
		b.WriteString(common.FIELD_FILENAME)
		b.WriteString(req.Filename)
		b.WriteString(common.FIELD_FILENAME_END)
	default:
		b.WriteString(req.Command.Body())
	}
	if b.Len() > common.REQUEST_BODY_SIZE {
		return nil, RequestTooLongErr
	}
	buf := make([]byte, common.REQUEST_SIZE)
	copy(buf, b.String())
	for i := b.Len(); i < common.REQUEST_BODY_SIZE; i++ {
		buf[i] = common.REQUEST_PAD_BYTE
	}
	// last byte stays NUL
	return buf, nil
}

// Classify interprets a raw control channel message. A message containing
// the error token anywhere counts as an error reply, everything else is
// an ack. The check is a plain substring match, case sensitive.
func Classify(raw []byte) common.ControlReply {
	message := strings.Trim(string(raw), "\n")
	if strings.Contains(message, common.ERROR_TOKEN) {
		return common.ControlReply{Kind: common.REPLY_ERROR, Message: message}
	}
	return common.ControlReply{Kind: common.REPLY_ACK, Message: message}
}
