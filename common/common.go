package common

// control request =
// PORTSTART:<data port>PORTEND + CMD:<command body>, '#'-padded to 99 bytes + NUL[1]
const (
	VERSION                   = "1.0.0"
	FIELD_PORT_START          = "PORTSTART:"
	FIELD_PORT_END            = "PORTEND"
	FIELD_CMD                 = "CMD:"
	FIELD_FILENAME            = "FILENAME:"
	FIELD_FILENAME_END        = "FILENAMEEND"
	CMD_BODY_LIST             = "LIST"
	CMD_BODY_GET              = "GET"
	CMD_BODY_UNKNOWN          = "UNKNOWN"
	CLI_COMMAND_LIST          = "-l"
	CLI_COMMAND_GET           = "-g"
	ERROR_TOKEN               = "ERROR"
	DEFAULT_CONTROL_PORT      = 30020
	DEFAULT_DATA_PORT         = 30021
	REQUEST_SIZE              = 100
	REQUEST_BODY_SIZE         = 99 // content and padding, NUL terminator excluded
	REQUEST_PAD_BYTE          = '#'
	MAX_MESSAGE_SIZE          = 1 << 10 // 1k
	BASE_DIR_NAME             = ".ftclient"
	CLIENT_CONFIG_FILE        = "client.conf"
	CONFIG_MAP_FILE           = "cfg.dat"
	BUCKET_KEY_CONFIGMAP      = "configMap"
	CONFIG_KEY_INSTANCE_ID    = "instanceId"
	CONFIG_KEY_HISTORY        = "transferHistory"
	MAX_HISTORY_SIZE          = 100
	LOG_FILE_NAME             = "ftclient"
)

// commands of the command line interface
const (
	CMD_SHOW_HELP Command = iota
	CMD_SHOW_VERSION
	CMD_RUN_TRANSFER
	CMD_UPDATE_CONFIG
	CMD_SHOW_CONFIG
	CMD_SHOW_HISTORY
)

// transfer commands carried by the control request
const (
	COMMAND_LIST TransferCommand = iota
	COMMAND_GET
	COMMAND_UNKNOWN
)

// control reply kinds
const (
	REPLY_ACK ReplyKind = iota
	REPLY_ERROR
)

// transfer session states
const (
	STATE_INIT SessionState = iota
	STATE_LISTENING
	STATE_CONTROL_CONNECTED
	STATE_REQUEST_SENT
	STATE_REPLY_RECEIVED
	STATE_DATA_CONNECTED
	STATE_TRANSFERRING
	STATE_DONE
	STATE_FAILED
)

// session results kept in the transfer history
const (
	RESULT_COMPLETE     = "complete"
	RESULT_ABORTED      = "aborted"
	RESULT_SERVER_ERROR = "server-error"
	RESULT_FAILED       = "failed"
)

var (
	InitializedClientConfiguration *ClientConfig
)
