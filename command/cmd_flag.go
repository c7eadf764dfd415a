package command

import (
	"errors"
	"fmt"
	"os"

	"github.com/ahngo/ftclient/common"
	"github.com/ahngo/ftclient/util"
	"github.com/hetianyi/gox/convert"
	"github.com/urfave/cli"
)

var transferUsageErr = errors.New(`Err: invalid parameters.
Usage: ftclient [server host] [server port] [command] [filename] [data port]
Available commands: List: -l or Get: -g [filename]`)

// Parse parses command flags using `github.com/urfave/cli`
func Parse(arguments []string) {
	appFlag := cli.NewApp()
	appFlag.Version = common.VERSION
	appFlag.HideVersion = true
	appFlag.Name = "ftclient"
	appFlag.Usage = "ftclient"
	appFlag.HelpName = "ftclient"

	appFlag.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:        "version, v",
			Usage:       `show version`,
			Destination: &showVersion,
		},
		cli.BoolFlag{
			Name:        "l",
			Usage:       "list the remote directory using stored defaults",
			Destination: &listFlag,
		},
		cli.StringFlag{
			Name:        "g",
			Value:       "",
			Usage:       "fetch a remote file using stored defaults",
			Destination: &getFlag,
		},
		cli.StringFlag{
			Name:        "config, c",
			Value:       "",
			Usage:       "custom config file location",
			Destination: &configFile,
		},
		cli.StringFlag{
			Name:        "download-dir",
			Value:       "",
			Usage:       "where fetched files are stored",
			Destination: &downloadDir,
		},
		cli.IntFlag{
			Name:        "handshake-delay",
			Value:       0,
			Usage:       "compatibility pause in milliseconds around channel setup",
			Destination: &handshakeDelay,
		},
		cli.StringFlag{
			Name:  "log-level",
			Value: "",
			Usage: `set log level, available options:
	(trace|debug|info|warn|error|fatal)`,
			Destination: &logLevel,
		},
		cli.StringFlag{
			Name:        "log-dir",
			Value:       "",
			Usage:       "set log directory",
			Destination: &logDir,
		},
		cli.IntFlag{
			Name:  "max-logfile-size",
			Value: 0,
			Usage: `rolling log file max size, options:
	(0|64|128|256|512|1024)`,
			Destination: &maxLogfileSize,
		},
		cli.StringFlag{
			Name:        "log-rotation-interval",
			Value:       "y",
			Usage:       "log rotation interval(h|d|m|y)",
			Destination: &logRotationInterval,
		},
		cli.BoolFlag{
			Name:        "save-logfile",
			Usage:       "save log to file",
			Destination: &saveLogfile,
		},
	}

	appFlag.Commands = []cli.Command{
		{
			Name:  "config",
			Usage: "manage stored client defaults",
			Action: func(c *cli.Context) error {
				if len(c.Args()) == 0 {
					cli.ShowSubcommandHelp(c)
					os.Exit(0)
				}
				return nil
			},
			Subcommands: cli.Commands{
				{
					Name:  "set",
					Usage: "save default options",
					Action: func(c *cli.Context) error {
						finalCommand = common.CMD_UPDATE_CONFIG
						if len(c.Args()) == 0 {
							return errors.New(`Err: no parameters provided.
Usage: ftclient config set <key1=value1> <key2=value2> ...`)
						}
						for i := range c.Args() {
							if !util.StringListExists(&updateConfigList, c.Args().Get(i)) {
								updateConfigList.PushBack(c.Args().Get(i))
							}
						}
						return nil
					},
				},
				{
					Name:  "ls",
					Usage: "show resolved client configuration",
					Action: func(c *cli.Context) error {
						finalCommand = common.CMD_SHOW_CONFIG
						return nil
					},
				},
			},
		},
		{
			Name:  "history",
			Usage: "show recent transfers",
			Action: func(c *cli.Context) error {
				finalCommand = common.CMD_SHOW_HISTORY
				return nil
			},
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:        "limit, n",
					Value:       20,
					Usage:       "max records to show",
					Destination: &historyLimit,
				},
			},
		},
	}

	cli.AppHelpTemplate = `
Usage: {{if .UsageText}}{{.UsageText}}{{else}}{{.HelpName}} {{if .VisibleFlags}}[global options]{{end}}{{if .Commands}} command [command options]{{end}} {{if .ArgsUsage}}{{.ArgsUsage}}{{else}}[arguments...]{{end}}{{end}}{{if .VisibleCommands}}

Commands:{{range .VisibleCategories}}
{{if .Name}}
   {{.Name}}:{{end}}{{range .VisibleCommands}}
     {{join .Names ", "}}{{"\t"}}{{.Usage}}{{end}}{{end}}{{end}}{{if .VisibleFlags}}

Options:

   {{range $index, $option := .VisibleFlags}}{{if $index}}{{end}}{{$option}}
   {{end}}{{end}}
`

	cli.CommandHelpTemplate = `
Usage: {{if .UsageText}}{{.UsageText}}{{else}}{{.HelpName}}{{if .VisibleFlags}} [command options]{{end}} {{if .ArgsUsage}}{{.ArgsUsage}}{{else}}[arguments...]{{end}}{{end}}

{{.Usage}}{{if .VisibleFlags}}

Options:

   {{range .VisibleFlags}}{{.}}
   {{end}}{{end}}
`

	cli.SubcommandHelpTemplate = `
Usage: {{if .UsageText}}{{.UsageText}}{{else}}{{.HelpName}} command{{if .VisibleFlags}} [command options]{{end}} {{if .ArgsUsage}}{{.ArgsUsage}}{{else}}[arguments...]{{end}}{{end}}

{{if .Description}}{{.Description}}{{else}}{{.Usage}}{{end}}

Commands:
{{range .VisibleCategories}}{{if .Name}}
   {{.Name}}:{{end}}{{range .VisibleCommands}}
     {{join .Names ", "}}{{"\t"}}{{.Usage}}{{end}}{{end}}{{if .VisibleFlags}}

Options:

   {{range .VisibleFlags}}{{.}}
   {{end}}{{end}}
`

	appFlag.Action = func(c *cli.Context) error {
		if showVersion {
			util.PrintLogo()
			os.Exit(0)
			return nil
		}
		if len(c.Args()) == 0 {
			if listFlag || getFlag != "" {
				return assembleShortTransfer()
			}
			cli.ShowAppHelp(c)
			os.Exit(0)
			return nil
		}
		return parseTransferArgs(c.Args())
	}

	err := appFlag.Run(arguments)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
		return
	}

	if finalCommand == common.CMD_SHOW_HELP {
		os.Exit(0)
	}

	call(finalCommand)
}

// assembleShortTransfer prepares a transfer that takes the server and
// ports from the stored configuration.
func assembleShortTransfer() error {
	if listFlag && getFlag != "" {
		return transferUsageErr
	}
	if listFlag {
		commandToken = common.CLI_COMMAND_LIST
	} else {
		commandToken = common.CLI_COMMAND_GET
		getFilename = getFlag
	}
	finalCommand = common.CMD_RUN_TRANSFER
	return nil
}

// parseTransferArgs reads the positional transfer form:
// ftclient <host> <port> -l <data port>
// ftclient <host> <port> -g <filename> <data port>
func parseTransferArgs(args cli.Args) error {
	if len(args) != 4 && len(args) != 5 {
		return transferUsageErr
	}
	serverHost = args.Get(0)
	p, err := convert.StrToInt(args.Get(1))
	if err != nil {
		return transferUsageErr
	}
	controlPort = p
	commandToken = args.Get(2)
	if commandToken == common.CLI_COMMAND_GET {
		if len(args) < 5 {
			return transferUsageErr
		}
		getFilename = args.Get(3)
	}
	// the data port is always the trailing argument
	dp, err := convert.StrToInt(args.Get(len(args) - 1))
	if err != nil {
		return transferUsageErr
	}
	dataPort = dp
	finalCommand = common.CMD_RUN_TRANSFER
	return nil
}
