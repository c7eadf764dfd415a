package command

import (
	"container/list"

	"github.com/ahngo/ftclient/common"
	"github.com/ahngo/ftclient/util"
	"github.com/hetianyi/gox"
	"github.com/hetianyi/gox/file"
	"github.com/hetianyi/gox/logger"
)

// var sets
var (
	showVersion         bool      // show app version
	configFile          string    // specified config file to be use
	serverHost          string    // target server host (positional)
	controlPort         int       // target server control port (positional)
	dataPort            int       // advertised data channel port (positional)
	commandToken        string    // transfer command token (-l, -g, ...)
	getFilename         string    // filename of the file to fetch
	listFlag            bool      // run a LIST transfer using stored defaults
	getFlag             string    // run a GET transfer using stored defaults
	downloadDir         string    // download directory for fetched files
	handshakeDelay      int       // compatibility pause in milliseconds
	logLevel            string    // log level(trace, debug, info, warn, error, fatal)
	logDir              string    // log directory
	maxLogfileSize      int       // rolling log file max size
	logRotationInterval string    // log rotation interval
	saveLogfile         bool      // save log to file
	historyLimit        int       // max history records to show
	updateConfigList    list.List // configs to be update
	finalCommand        common.Command
)

//
func ConfigAssembly() *common.ClientConfig {
	c := &common.ClientConfig{}

	// stored defaults come first, command line input wins
	confFile := configFile
	if confFile == "" {
		if f, err := util.DefaultConfigFile(); err == nil {
			confFile = f
		}
	}
	if confFile != "" && file.Exists(confFile) {
		if err := util.LoadConfig(confFile, c); err != nil {
			logger.Warn("cannot load config file ", confFile, ": ", err)
		}
	}

	c.Server = gox.TValue(serverHost == "", c.Server, serverHost).(string)
	c.Port = gox.TValue(controlPort <= 0, c.Port, controlPort).(int)
	c.DataPort = gox.TValue(dataPort <= 0, c.DataPort, dataPort).(int)
	c.DownloadDir = gox.TValue(downloadDir == "", c.DownloadDir, downloadDir).(string)
	c.HandshakeDelayMs = gox.TValue(handshakeDelay <= 0, c.HandshakeDelayMs, handshakeDelay).(int)
	c.LogLevel = gox.TValue(logLevel == "", c.LogLevel, logLevel).(string)
	c.LogDir = gox.TValue(logDir == "", c.LogDir, logDir).(string)
	c.MaxRollingLogfileSize = gox.TValue(maxLogfileSize <= 0, c.MaxRollingLogfileSize, maxLogfileSize).(int)
	c.LogRotationInterval = gox.TValue(logRotationInterval == "", c.LogRotationInterval, logRotationInterval).(string)
	if saveLogfile {
		c.SaveLog2File = true
	}
	c.Port = gox.TValue(c.Port <= 0, common.DEFAULT_CONTROL_PORT, c.Port).(int)
	c.DataPort = gox.TValue(c.DataPort <= 0, common.DEFAULT_DATA_PORT, c.DataPort).(int)

	common.InitializedClientConfiguration = c
	return c
}
