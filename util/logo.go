package util

import (
	"fmt"

	"github.com/ahngo/ftclient/common"
)

func PrintLogo() {
	fmt.Print(`
    ______
   / __/ /_   ftclient::v` + common.VERSION + `
  / /_/ __/   A two-channel file transfer client.
 /_/  \__/    github.com/ahngo/ftclient

`)
}
