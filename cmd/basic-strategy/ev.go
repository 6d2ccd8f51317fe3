package main

import (
	"errors"
	"fmt"

	"github.com/lox/basicstrategy/internal/deck"
	"github.com/lox/basicstrategy/internal/game"
	"github.com/lox/basicstrategy/internal/randutil"
)

// EVCmd estimates one action for one pinned matchup.
type EVCmd struct {
	Player            string `short:"p" required:"" help:"Player starting cards, e.g. 'TsTh'"`
	Dealer            string `short:"d" required:"" help:"Dealer cards, usually just the up-card, e.g. '6d'"`
	Action            string `short:"a" default:"stand" help:"Action to play: hit, stand, double or split"`
	Trials            int    `short:"n" default:"100000" help:"Rounds to play"`
	Seed              int64  `default:"0" help:"RNG seed (0 for random)"`
	IncludeBlackjacks bool   `help:"Count rounds settled by a natural toward the EV"`
}

func (cmd *EVCmd) Run(g *Globals) error {
	logger := g.Logger()
	r, err := g.LoadRules()
	if err != nil {
		return err
	}

	player, dealer, action, err := cmd.parse()
	if err != nil {
		return err
	}
	if cmd.Trials <= 0 {
		return fmt.Errorf("trials must be positive, got %d", cmd.Trials)
	}

	seed := randutil.Seed(cmd.Seed)
	gm, err := game.New(r, game.WithRNG(randutil.New(seed)), game.WithLogger(logger))
	if err != nil {
		return err
	}

	logger.Debug("Estimating EV", "player", player, "dealer", dealer, "action", action, "seed", seed)
	stats, err := gm.RunTrials(cmd.Trials, dealer, player, action, 1, cmd.IncludeBlackjacks)
	if err != nil {
		return err
	}

	fmt.Println(renderEV(r, player, dealer, action, stats))
	return nil
}

func (cmd *EVCmd) parse() (player, dealer game.Hand, action game.Action, err error) {
	p, err := deck.ParseCards(cmd.Player)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("player cards: %w", err)
	}
	if len(p) != 2 {
		return nil, nil, 0, fmt.Errorf("player needs exactly 2 cards, got %d", len(p))
	}
	d, err := deck.ParseCards(cmd.Dealer)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("dealer cards: %w", err)
	}
	if len(d) == 0 || len(d) > 2 {
		return nil, nil, 0, errors.New("dealer needs an up-card and at most a hole card")
	}
	action, err = game.ParseAction(cmd.Action)
	if err != nil {
		return nil, nil, 0, err
	}
	return game.NewHand(p...), game.NewHand(d...), action, nil
}
