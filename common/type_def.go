package common

import (
	"github.com/hetianyi/gox/convert"
)

type Command uint32

type TransferCommand byte

type ReplyKind byte

type SessionState byte

type ClientConfig struct {
	Server                string  `json:"server"`
	Port                  int     `json:"port"`
	DataPort              int     `json:"dataPort"`
	DownloadDir           string  `json:"downloadDir"`
	HandshakeDelayMs      int     `json:"handshakeDelayMs"`
	LogLevel              string  `json:"logLevel"`
	LogDir                string  `json:"logDir"`
	SaveLog2File          bool    `json:"saveLog2File"`
	MaxRollingLogfileSize int     `json:"maxRollingLogfileSize"`
	LogRotationInterval   string  `json:"logRotationInterval"`
	InstanceId            string  `json:"-"` // one base dir has only one instanceId
	ParsedServer          *Server `json:"-"`
}

type Server struct {
	Host string `json:"host"`
	Port uint16 `json:"port"`
}

func (s *Server) ConnectionString() string {
	return s.Host + ":" + convert.Uint16ToStr(s.Port)
}

type TransferRequest struct {
	Command  TransferCommand `json:"command"`
	Filename string          `json:"filename"`
	DataPort int             `json:"dataPort"`
	RawToken string          // command token as typed on the command line
}

// Body returns the wire body name of the transfer command.
func (c TransferCommand) Body() string {
	switch c {
	case COMMAND_LIST:
		return CMD_BODY_LIST
	case COMMAND_GET:
		return CMD_BODY_GET
	default:
		return CMD_BODY_UNKNOWN
	}
}

type ControlReply struct {
	Kind    ReplyKind `json:"kind"`
	Message string    `json:"message"`
}

type TransferRecord struct {
	Id         string `json:"id"`
	Server     string `json:"server"`
	Command    string `json:"command"`
	Filename   string `json:"filename,omitempty"`
	Bytes      int64  `json:"bytes"`
	Md5        string `json:"md5,omitempty"`
	Result     string `json:"result"`
	FinishTime int64  `json:"finishTime"`
}
