package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/lox/basicstrategy/internal/rules"
)

// version is set by ldflags during build
var version = "dev"

// Globals are the flags shared by every subcommand.
type Globals struct {
	Debug  bool   `help:"Enable debug logging"`
	Preset string `default:"basic" enum:"basic,ellis-island" help:"Rule preset (${enum})"`
	Rules  string `type:"path" help:"HCL rules file; overrides --preset"`
}

// Logger builds the stderr logger for the chosen level.
func (g *Globals) Logger() *log.Logger {
	level := log.InfoLevel
	if g.Debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
}

// LoadRules resolves the rule variant from --rules or --preset.
func (g *Globals) LoadRules() (rules.Rules, error) {
	if g.Rules != "" {
		r, err := rules.LoadFile(g.Rules)
		if err != nil {
			return rules.Rules{}, fmt.Errorf("load %s: %w", g.Rules, err)
		}
		return r, nil
	}
	return rules.Preset(g.Preset)
}

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Sweep   SweepCmd         `cmd:"" help:"Sweep every decision cell and print the strategy table"`
	EV      EVCmd            `cmd:"ev" help:"Estimate the EV of one action for a pinned matchup"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("basic-strategy"),
		kong.Description("Monte Carlo blackjack basic-strategy generator"),
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
