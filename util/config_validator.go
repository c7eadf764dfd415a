package util

import (
	"errors"
	"os"
	"strings"

	"github.com/ahngo/ftclient/common"
	"github.com/hetianyi/gox/convert"
	"github.com/hetianyi/gox/file"
	"github.com/hetianyi/gox/logger"
)

// ValidateClientConfig validates the client config, fills defaults and
// initializes the logger and the shared configMap store.
func ValidateClientConfig(c *common.ClientConfig) error {
	if c == nil {
		return errors.New("no config provided")
	}
	// environment overrides
	ExchangeEnvValue("FTCLIENT_SERVER", func(envValue string) {
		c.Server = envValue
	})
	ExchangeEnvValue("FTCLIENT_DOWNLOAD_DIR", func(envValue string) {
		c.DownloadDir = envValue
	})
	// check control port range
	if c.Port < 0 || c.Port > 65535 {
		return errors.New("invalid control port number " +
			convert.IntToStr(c.Port) + ", port number must in the range of 0 to 65535")
	}
	// check data port range
	if c.DataPort < 0 || c.DataPort > 65535 {
		return errors.New("invalid data port number " +
			convert.IntToStr(c.DataPort) + ", port number must in the range of 0 to 65535")
	}
	if c.HandshakeDelayMs < 0 {
		c.HandshakeDelayMs = 0
	}
	// check log level
	c.LogLevel = strings.ToLower(c.LogLevel)
	if c.LogLevel != "trace" && c.LogLevel != "debug" && c.LogLevel != "info" &&
		c.LogLevel != "warn" && c.LogLevel != "error" && c.LogLevel != "fatal" {
		c.LogLevel = "info"
	}
	// check log rotation interval
	c.LogRotationInterval = strings.ToLower(c.LogRotationInterval)
	if c.LogRotationInterval != "h" && c.LogRotationInterval != "d" &&
		c.LogRotationInterval != "m" && c.LogRotationInterval != "y" {
		c.LogRotationInterval = "y"
	}
	// check rolling log file size
	if c.MaxRollingLogfileSize != 64 && c.MaxRollingLogfileSize != 128 &&
		c.MaxRollingLogfileSize != 256 && c.MaxRollingLogfileSize != 512 &&
		c.MaxRollingLogfileSize != 1024 {
		c.MaxRollingLogfileSize = 64
	}
	baseDir, err := LocateBaseDir()
	if err != nil {
		return err
	}
	// prepare log directory
	if c.SaveLog2File {
		if c.LogDir == "" {
			c.LogDir = DefaultLogDir()
		}
		if !file.Exists(c.LogDir) {
			if err := file.CreateDirs(c.LogDir); err != nil {
				return err
			}
		}
	}
	// prepare download directory
	if c.DownloadDir != "" {
		c.DownloadDir = file.FixPath(c.DownloadDir)
		if !file.Exists(c.DownloadDir) {
			if err := file.CreateDirs(c.DownloadDir); err != nil {
				return err
			}
		}
	}

	// initialize logger
	logConfig := &logger.Config{
		Level:              ConvertLogLevel(c.LogLevel),
		RollingPolicy:      []int{ConvertRollInterval(c.LogRotationInterval), ConvertLogFileSize(c.MaxRollingLogfileSize)},
		Write2File:         c.SaveLog2File,
		AlwaysWriteConsole: true,
		RollingFileDir:     c.LogDir,
		RollingFileName:    common.LOG_FILE_NAME,
		Formatter:          &logger.NoneTextFormatter{},
	}
	logger.Init(logConfig)

	InitialConfigMap(baseDir + "/" + common.CONFIG_MAP_FILE)
	c.InstanceId = LoadInstanceData()

	// parse target server
	if c.Server != "" && c.Port > 0 {
		c.ParsedServer = &common.Server{
			Host: c.Server,
			Port: uint16(c.Port),
		}
	}
	// done!
	return nil
}

func InitialConfigMap(path string) {
	logger.Debug("initial config map: ", path)
	configMap, err := common.NewConfigMap(path)
	if err != nil {
		logger.Fatal("cannot initialize configMap file")
	}
	common.SetConfigMap(configMap)
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

// if these param exist in system env , then replace it with system env
func ExchangeEnvValue(key string, then func(envValue string)) {
	envVal := strings.TrimSpace(GetEnv(key))
	if envVal != "" {
		logger.Warn("config property \"", key, "\" load from environment")
		then(envVal)
	}
}

func ConvertLogLevel(levelString string) logger.Level {
	levelString = strings.ToLower(levelString)
	switch levelString {
	case "trace":
		return logger.TraceLevel
	case "debug":
		return logger.DebugLevel
	case "info":
		return logger.InfoLevel
	case "warn":
		return logger.WarnLevel
	case "error":
		return logger.ErrorLevel
	case "fatal":
		return logger.FatalLevel
	default:
		return logger.InfoLevel
	}
}

func ConvertRollInterval(rollString string) int {
	rollString = strings.ToLower(rollString)
	switch rollString {
	case "h":
		return logger.HOUR
	case "d":
		return logger.DAY
	case "m":
		return logger.MONTH
	case "y":
		return logger.YEAR
	default:
		return logger.YEAR
	}
}

func ConvertLogFileSize(s int) int {
	switch s {
	case 64:
		return logger.MB64
	case 128:
		return logger.MB128
	case 256:
		return logger.MB256
	case 512:
		return logger.MB512
	case 1024:
		return logger.MB1024
	default:
		return logger.SIZE_NO_LIMIT
	}
}
