package api

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/ahngo/ftclient/common"
)

var (
	NoServerErr = errors.New("no server configured")
)

type Config struct {
	Server         *common.Server // target ftserver
	DataPort       int            // data channel port advertised to the server
	DownloadDir    string         // fetched files go here, empty means the work dir
	HandshakeDelay time.Duration  // optional pause around channel setup
	Console        io.Writer      // session output, default stdout
	Input          io.Reader      // overwrite prompt answers, default stdin
}

type ClientAPI interface {
	// SetConfig sets the client configuration.
	SetConfig(config *Config)
	// Run executes a single transfer session and reports what happened.
	Run(req *common.TransferRequest) (*common.TransferRecord, error)
}

// NewClient creates a new transfer client.
func NewClient() ClientAPI {
	return &clientAPIImpl{}
}

type clientAPIImpl struct {
	config *Config
}

func (c *clientAPIImpl) SetConfig(config *Config) {
	if config == nil {
		config = &Config{}
	}
	if config.Console == nil {
		config.Console = os.Stdout
	}
	if config.Input == nil {
		config.Input = os.Stdin
	}
	c.config = config
}

func (c *clientAPIImpl) Run(req *common.TransferRequest) (*common.TransferRecord, error) {
	if c.config == nil || c.config.Server == nil {
		return nil, NoServerErr
	}
	return newTransferSession(c.config, req).run()
}
