package game

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/basicstrategy/internal/deck"
	"github.com/lox/basicstrategy/internal/rules"
	"github.com/lox/basicstrategy/internal/statistics"
)

// Game wires a shoe, a player and a dealer for one rule variant. A Game is
// not safe for concurrent use; parallel callers build one Game each.
type Game struct {
	rules  rules.Rules
	shoe   *deck.Shoe
	player *Player
	dealer *Dealer
	logger *log.Logger
	rng    *rand.Rand

	bankroll float64
}

// Option configures a Game.
type Option func(*Game)

// WithRNG sets the generator used to shuffle the shoe.
func WithRNG(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// WithLogger sets the logger used for round traces.
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

// WithBankroll sets the player's starting bankroll.
func WithBankroll(bankroll float64) Option {
	return func(g *Game) { g.bankroll = bankroll }
}

// New validates the rules and builds a game with a freshly shuffled shoe.
func New(r rules.Rules, opts ...Option) (*Game, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	g := &Game{
		rules:    r,
		bankroll: DefaultBankroll,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = discardLogger()
	}

	g.shoe = deck.NewShoe(r.Decks(), g.rng)
	g.player = NewPlayer(g.bankroll)
	g.dealer = NewDealer(r.DealerHitsSoft17(), r.DealerPeeks())
	return g, nil
}

func (g *Game) Rules() rules.Rules { return g.rules }
func (g *Game) Shoe() *deck.Shoe   { return g.shoe }
func (g *Game) Player() *Player    { return g.player }
func (g *Game) Dealer() *Dealer    { return g.dealer }

// SetHands pins the starting hands for the next round. The shoe is reset
// and the pinned cards removed from it; either hand may be partial or empty.
func (g *Game) SetHands(dealer, player Hand) error {
	g.shoe.Reset()
	if err := g.shoe.RemoveHand(dealer...); err != nil {
		return fmt.Errorf("pin dealer hand %s: %w", dealer, err)
	}
	if err := g.shoe.RemoveHand(player...); err != nil {
		return fmt.Errorf("pin player hand %s: %w", player, err)
	}
	g.dealer.Hand = dealer.Copy()
	g.player.Hand = player.Copy()
	return nil
}

// SimulateRound plays one round in which the player takes action.
func (g *Game) SimulateRound(action Action, bet float64) (Outcome, error) {
	return g.Play(FixedAction(action), bet)
}

// Play runs one round with the given player policy. Hands are cleared
// afterwards so the next round deals fresh unless SetHands is called again.
func (g *Game) Play(policy PlayerPolicy, bet float64) (Outcome, error) {
	if bet <= 0 {
		return Outcome{}, fmt.Errorf("bet must be positive, got %v", bet)
	}
	defer g.clearHands()

	round := NewRound(g.rules, g.shoe, g.player, g.dealer, policy, bet, g.logger)
	return round.Run()
}

func (g *Game) clearHands() {
	g.player.Hand = nil
	g.dealer.Hand = nil
}

// RunTrials pins the hands and plays n rounds with action, collecting the
// payoff per unit bet with doubled stakes applied. The first failure stops
// the run.
func (g *Game) RunTrials(n int, dealer, player Hand, action Action, bet float64, includeNaturals bool) (*statistics.Statistics, error) {
	stats := &statistics.Statistics{}
	for i := 0; i < n; i++ {
		if err := g.SetHands(dealer, player); err != nil {
			return stats, err
		}
		out, err := g.SimulateRound(action, bet)
		if err != nil {
			return stats, err
		}
		stats.Add(statistics.TrialResult{Payoff: out.Wagered(), Natural: out.Natural}, includeNaturals)
	}
	return stats, nil
}

// SimulateNRounds returns the mean payoff per unit bet over n pinned rounds.
func (g *Game) SimulateNRounds(n int, dealer, player Hand, action Action, bet float64) (float64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("round count must be positive, got %d", n)
	}
	stats, err := g.RunTrials(n, dealer, player, action, bet, true)
	if err != nil {
		return 0, err
	}
	return stats.Mean(), nil
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
