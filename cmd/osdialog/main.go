// Command osdialog shows native dialogs from the shell. The chosen value is
// printed on stdout; a cancelled dialog exits with status 1.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/chadsten/osdialog"
)

// CLI is the root command.
type CLI struct {
	LogLevel string `default:"warn" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`

	Open    OpenCmd    `cmd:"" help:"Pick an existing file."`
	Save    SaveCmd    `cmd:"" help:"Pick a destination file."`
	Dir     DirCmd     `cmd:"" help:"Pick a folder."`
	Message MessageCmd `cmd:"" help:"Show a message box."`
	Prompt  PromptCmd  `cmd:"" help:"Ask for one line of text."`
	Color   ColorCmd   `cmd:"" help:"Pick a color."`

	dialogs *osdialog.Dialogs
	out     io.Writer
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("osdialog"),
		kong.Description("Native file, folder, message, prompt and color dialogs."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	logger := createCLILogger(cli.LogLevel)
	cli.dialogs = osdialog.New(osdialog.WithLogger(logger))
	cli.out = os.Stdout

	err := ctx.Run(&cli)
	switch {
	case err == nil:
	case errors.Is(err, errDeclined):
		logger.Debug("dialog declined", "command", ctx.Command())
		os.Exit(ExitDeclined)
	default:
		logger.Error("command failed", "command", ctx.Command(), "err", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}

// Exit codes.
const (
	ExitDeclined = 1 // cancelled, No, or closed
	ExitError    = 2
)

// errDeclined reports a cancelled dialog or a negative answer.
var errDeclined = errors.New("declined")
