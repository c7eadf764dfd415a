package command

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahngo/ftclient/api"
	"github.com/ahngo/ftclient/bridge"
	"github.com/ahngo/ftclient/common"
	"github.com/ahngo/ftclient/util"
	"github.com/hetianyi/gox"
	"github.com/hetianyi/gox/convert"
	"github.com/hetianyi/gox/logger"
	json "github.com/json-iterator/go"
)

var client api.ClientAPI

// initClient initializes the transfer client.
func initClient() error {
	c := common.InitializedClientConfiguration
	if err := util.ValidateClientConfig(c); err != nil {
		return err
	}
	if c.ParsedServer == nil {
		return errors.New("no server configured, provide [server host] [server port] or store defaults via 'ftclient config set'")
	}
	client = api.NewClient()
	client.SetConfig(&api.Config{
		Server:         c.ParsedServer,
		DataPort:       c.DataPort,
		DownloadDir:    c.DownloadDir,
		HandshakeDelay: time.Duration(c.HandshakeDelayMs) * time.Millisecond,
	})
	return nil
}

// assembleTransferRequest maps the parsed command line onto a transfer
// request and rejects input the wire format cannot carry.
func assembleTransferRequest() (*common.TransferRequest, error) {
	c := common.InitializedClientConfiguration
	req := &common.TransferRequest{
		DataPort: c.DataPort,
		RawToken: commandToken,
	}
	switch commandToken {
	case common.CLI_COMMAND_LIST:
		req.Command = common.COMMAND_LIST
	case common.CLI_COMMAND_GET:
		req.Command = common.COMMAND_GET
		req.Filename = getFilename
	default:
		req.Command = common.COMMAND_UNKNOWN
		logger.Warn("unrecognized command token ", commandToken, ", sending UNKNOWN")
	}
	if req.Command == common.COMMAND_GET && req.Filename == "" {
		return nil, errors.New("no filename provided")
	}
	if req.DataPort <= 0 || req.DataPort > 65535 {
		return nil, errors.New("invalid data port " + convert.IntToStr(req.DataPort))
	}
	// reject input that cannot fit the fixed request size before any
	// socket is touched
	if _, err := bridge.EncodeRequest(req); err != nil {
		return nil, err
	}
	return req, nil
}

// handleTransfer runs a single transfer session against the configured
// server and records the outcome.
func handleTransfer() error {
	if err := initClient(); err != nil {
		logger.Fatal(err)
	}
	req, err := assembleTransferRequest()
	if err != nil {
		logger.Fatal(err)
	}
	record, err := client.Run(req)
	if record != nil {
		if herr := api.AppendTransferRecord(common.GetConfigMap(), record); herr != nil {
			logger.Warn("cannot save transfer history: ", herr)
		}
	}
	if err != nil {
		logger.Fatal(err)
	}
	logger.Debug("session result: ", record.Result)
	return nil
}

// handleUpdateConfig persists key=value pairs into the client config file.
func handleUpdateConfig() error {
	c := common.InitializedClientConfiguration
	var badEntry error
	gox.WalkList(&updateConfigList, func(item interface{}) bool {
		entry := item.(string)
		kv := strings.SplitN(entry, "=", 2)
		if len(kv) != 2 {
			badEntry = errors.New("invalid config entry \"" + entry + "\", must be in form key=value")
			return true
		}
		if err := applyConfigEntry(c, kv[0], kv[1]); err != nil {
			badEntry = err
			return true
		}
		return false
	})
	if badEntry != nil {
		logger.Fatal(badEntry)
	}
	confFile := configFile
	if confFile == "" {
		f, err := util.DefaultConfigFile()
		if err != nil {
			logger.Fatal(err)
		}
		confFile = f
	}
	if err := util.WriteConfig(confFile, c); err != nil {
		logger.Fatal("cannot write config file ", confFile, ": ", err)
	}
	logger.Info("config updated: ", confFile)
	return nil
}

// applyConfigEntry sets a single configurable field.
func applyConfigEntry(c *common.ClientConfig, key, value string) error {
	switch key {
	case "server":
		c.Server = value
	case "port":
		p, err := convert.StrToInt(value)
		if err != nil {
			return errors.New("invalid port value: " + value)
		}
		c.Port = p
	case "dataPort":
		p, err := convert.StrToInt(value)
		if err != nil {
			return errors.New("invalid dataPort value: " + value)
		}
		c.DataPort = p
	case "downloadDir":
		c.DownloadDir = value
	case "handshakeDelayMs":
		p, err := convert.StrToInt(value)
		if err != nil {
			return errors.New("invalid handshakeDelayMs value: " + value)
		}
		c.HandshakeDelayMs = p
	case "logLevel":
		c.LogLevel = value
	case "logDir":
		c.LogDir = value
	case "logRotationInterval":
		c.LogRotationInterval = value
	case "maxLogfileSize":
		p, err := convert.StrToInt(value)
		if err != nil {
			return errors.New("invalid maxLogfileSize value: " + value)
		}
		c.MaxRollingLogfileSize = p
	case "saveLog2File":
		c.SaveLog2File = value == "true" || value == "1"
	default:
		return errors.New("unknown config key: " + key)
	}
	return nil
}

// handleShowConfig prints the resolved client configuration.
func handleShowConfig() error {
	c := common.InitializedClientConfiguration
	if err := util.ValidateClientConfig(c); err != nil {
		logger.Fatal(err)
	}
	bs, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		logger.Fatal(err)
	}
	fmt.Println(string(bs))
	return nil
}

// handleShowHistory prints recent transfer records.
func handleShowHistory() error {
	if err := util.ValidateClientConfig(common.InitializedClientConfiguration); err != nil {
		logger.Fatal(err)
	}
	records, err := api.ListTransferRecords(common.GetConfigMap(), historyLimit)
	if err != nil {
		logger.Fatal(err)
	}
	bs, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		logger.Fatal(err)
	}
	fmt.Println(string(bs))
	return nil
}
