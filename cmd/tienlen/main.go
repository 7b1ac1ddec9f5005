package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config   string `short:"c" default:"tienlen.hcl" help:"HCL config file (defaults apply when missing)"`
	Seed     int64  `help:"RNG seed, overrides the config (0 uses the config, then a random seed)"`
	LogLevel string `help:"Log level override (debug|info|warn|error)"`
	Plain    bool   `help:"Disable colours and styling"`
}

type CLI struct {
	Globals `embed:""`

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play a game against computer opponents"`
	Simulate SimulateCmd      `cmd:"" help:"Play computer-only games and report statistics"`
	Deal     DealCmd          `cmd:"" help:"Deal a hand and list the combinations in it"`
	Init     InitCmd          `cmd:"" help:"Write the default config file for editing"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("tienlen"),
		kong.Description("Tiến Lên at the terminal, you against the computer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
