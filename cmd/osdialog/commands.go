package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"golang.org/x/mod/sumdb/dirhash"

	"github.com/chadsten/osdialog"
)

// FileFlags are shared by open and save.
type FileFlags struct {
	Dir     string   `help:"Initial directory." placeholder:"DIR"`
	File    string   `help:"Default file name." placeholder:"NAME"`
	Filter  []string `help:"File type as LABEL=EXT. Repeatable." placeholder:"LABEL=EXT" sep:"none"`
	Filters string   `help:"Raw filter string such as 'Source:c,cpp;Header:h'. Replaces --filter." placeholder:"FILTERS"`
}

// filterString returns the readable filter form for the flags.
func (f FileFlags) filterString() (string, error) {
	if f.Filters != "" {
		if _, err := osdialog.ParseFilters(f.Filters); err != nil {
			return "", fmt.Errorf("invalid --filters: %w", err)
		}
		return f.Filters, nil
	}
	types, err := parseFilterFlags(f.Filter)
	if err != nil {
		return "", err
	}
	return osdialog.BuildFilterString(types), nil
}

// parseFilterFlags turns LABEL=EXT values into filter types.
func parseFilterFlags(values []string) ([]osdialog.FilterType, error) {
	types := make([]osdialog.FilterType, 0, len(values))
	for _, v := range values {
		label, ext, ok := strings.Cut(v, "=")
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if !ok || strings.TrimSpace(label) == "" || ext == "" {
			return nil, fmt.Errorf("invalid --filter %q: want LABEL=EXT", v)
		}
		types = append(types, osdialog.FilterType{Display: strings.TrimSpace(label), Extension: ext})
	}
	return types, nil
}

type OpenCmd struct {
	FileFlags
}

func (c *OpenCmd) Run(ctx *kong.Context, cli *CLI) error {
	filters, err := c.filterString()
	if err != nil {
		return err
	}
	path, ok := cli.dialogs.OpenFileFilters(c.Dir, c.File, filters)
	return cli.print(path, ok)
}

type SaveCmd struct {
	FileFlags
	Ext string `help:"Extension appended when the chosen name has none." placeholder:"EXT"`
}

func (c *SaveCmd) Run(ctx *kong.Context, cli *CLI) error {
	filters, err := c.filterString()
	if err != nil {
		return err
	}
	path, ok := cli.dialogs.SaveFileFilters(c.Dir, c.File, c.Ext, filters)
	return cli.print(path, ok)
}

type DirCmd struct {
	Dir    string `help:"Initial directory." placeholder:"DIR"`
	Digest bool   `help:"Also print the h1: content hash of the chosen folder."`
}

func (c *DirCmd) Run(ctx *kong.Context, cli *CLI) error {
	path, ok := cli.dialogs.OpenDirectory(c.Dir)
	if !ok {
		return errDeclined
	}
	if !c.Digest {
		return cli.print(path, true)
	}

	sum, err := dirhash.HashDir(path, "", dirhash.Hash1)
	if err != nil {
		return fmt.Errorf("hash %s: %w", path, err)
	}
	return cli.print(path+"\t"+sum, true)
}

type MessageCmd struct {
	Level   string `default:"info" enum:"info,warning,error" help:"Icon (info, warning, error)."`
	Buttons string `default:"ok" enum:"ok,okcancel,yesno" help:"Buttons (ok, okcancel, yesno)."`
	Text    string `arg:"" help:"Message text."`
}

func (c *MessageCmd) Run(ctx *kong.Context, cli *CLI) error {
	if !cli.dialogs.Message(parseLevel(c.Level), parseButtons(c.Buttons), c.Text) {
		return errDeclined
	}
	return nil
}

type PromptCmd struct {
	Level   string `default:"info" enum:"info,warning,error" help:"Icon (info, warning, error)."`
	Default string `help:"Pre-filled text."`
	Text    string `arg:"" help:"Prompt text."`
}

func (c *PromptCmd) Run(ctx *kong.Context, cli *CLI) error {
	text, ok := cli.dialogs.Prompt(parseLevel(c.Level), c.Text, c.Default)
	return cli.print(text, ok)
}

type ColorCmd struct {
	Initial string `default:"#ffffff" help:"Preselected color as #rrggbb."`
}

func (c *ColorCmd) Run(ctx *kong.Context, cli *CLI) error {
	color, err := parseHexColor(c.Initial)
	if err != nil {
		return err
	}
	if !cli.dialogs.PickColor(&color) {
		return errDeclined
	}
	return cli.print(formatHexColor(color), true)
}

func (cli *CLI) print(value string, ok bool) error {
	if !ok {
		return errDeclined
	}
	_, err := fmt.Fprintln(cli.out, value)
	return err
}

func parseLevel(s string) osdialog.Level {
	switch s {
	case "warning":
		return osdialog.LevelWarning
	case "error":
		return osdialog.LevelError
	default:
		return osdialog.LevelInfo
	}
}

func parseButtons(s string) osdialog.Buttons {
	switch s {
	case "okcancel":
		return osdialog.ButtonsOKCancel
	case "yesno":
		return osdialog.ButtonsYesNo
	default:
		return osdialog.ButtonsOK
	}
}

func parseHexColor(s string) (osdialog.Color, error) {
	var c osdialog.Color
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return c, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return c, fmt.Errorf("invalid color %q: %w", s, err)
	}
	c.R, c.G, c.B, c.A = uint8(v>>16), uint8(v>>8), uint8(v), 0xFF
	return c, nil
}

func formatHexColor(c osdialog.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
