package command

import (
	"github.com/ahngo/ftclient/common"
)

// call calls handler function due to command.
func call(cmd common.Command) {
	switch cmd {
	case common.CMD_RUN_TRANSFER:
		ConfigAssembly()
		handleTransfer()
		break
	case common.CMD_UPDATE_CONFIG:
		ConfigAssembly()
		handleUpdateConfig()
		break
	case common.CMD_SHOW_CONFIG:
		ConfigAssembly()
		handleShowConfig()
		break
	case common.CMD_SHOW_HISTORY:
		ConfigAssembly()
		handleShowHistory()
		break
	}
}
