package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/lox/basicstrategy/internal/fileutil"
	"github.com/lox/basicstrategy/internal/strategy"
)

// SweepCmd builds a full strategy table.
type SweepCmd struct {
	Trials            int           `short:"n" default:"10000" help:"Rounds per decision cell"`
	BatchSize         int           `default:"2000" help:"Rounds per worker task"`
	Workers           int           `short:"w" default:"0" help:"Concurrent tasks (0 = GOMAXPROCS)"`
	Seed              int64         `default:"0" help:"RNG seed (0 for random)"`
	IncludeBlackjacks bool          `help:"Count rounds settled by a natural toward each EV"`
	Progress          time.Duration `default:"5s" help:"Progress log interval"`
	Out               string        `short:"o" type:"path" help:"Write the EV table as JSON to this file"`
	EV                bool          `help:"Print the best action's EV in each cell"`
}

func (cmd *SweepCmd) Run(g *Globals) error {
	logger := g.Logger()
	r, err := g.LoadRules()
	if err != nil {
		return err
	}

	sweeper, err := strategy.NewSweeper(strategy.Config{
		Rules:             r,
		Trials:            cmd.Trials,
		BatchSize:         cmd.BatchSize,
		Workers:           cmd.Workers,
		Seed:              cmd.Seed,
		IncludeBlackjacks: cmd.IncludeBlackjacks,
		Logger:            logger,
		ProgressEvery:     cmd.Progress,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := sweeper.Run(ctx)
	if err != nil {
		return fmt.Errorf("sweep: %w", err)
	}

	fmt.Println(renderHeader(r, res))
	fmt.Println(renderTable(res.Table, cmd.EV))

	if cmd.Out != "" {
		if err := fileutil.WriteJSONAtomic(cmd.Out, res.Table, 0o644); err != nil {
			return err
		}
		logger.Info("Wrote strategy table", "path", cmd.Out, "cells", res.Cells)
	}
	return nil
}
