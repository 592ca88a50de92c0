package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/jankotek/hedera-services-sub001/cli/server"
	"github.com/jankotek/hedera-services-sub001/cli/txn"
	"github.com/jankotek/hedera-services-sub001/pkg/config"
	"github.com/urfave/cli"
)

func versionPrinter(c *cli.Context) {
	_, _ = fmt.Fprintf(c.App.Writer, "Settler\nVersion: %s\nGoVersion: %s\n",
		config.Version,
		runtime.Version(),
	)
}

// New creates a settler instance of [cli.App] with all commands included.
func New() *cli.App {
	cli.VersionPrinter = versionPrinter
	ctl := cli.NewApp()
	ctl.Name = "settler"
	ctl.Version = config.Version
	ctl.Usage = "Crypto transfer fee and settlement engine"
	ctl.ErrWriter = os.Stdout

	ctl.Commands = append(ctl.Commands, txn.NewCommands()...)
	ctl.Commands = append(ctl.Commands, server.NewCommands()...)
	return ctl
}
