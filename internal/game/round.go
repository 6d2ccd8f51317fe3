package game

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/basicstrategy/internal/deck"
	"github.com/lox/basicstrategy/internal/rules"
)

// RoundState is a step of the round state machine.
type RoundState int

const (
	StateDeal RoundState = iota
	StatePeekCheck
	StatePlayerBlackjackCheck
	StatePlayerAction
	StateDealerPlay
	StateResolve
	StateDone
)

func (s RoundState) String() string {
	switch s {
	case StateDeal:
		return "deal"
	case StatePeekCheck:
		return "peek-check"
	case StatePlayerBlackjackCheck:
		return "player-blackjack-check"
	case StatePlayerAction:
		return "player-action"
	case StateDealerPlay:
		return "dealer-play"
	case StateResolve:
		return "resolve"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Result is how the round ended for the player.
type Result int

const (
	ResultLose Result = iota
	ResultPush
	ResultWin
	ResultBlackjack
)

func (r Result) String() string {
	switch r {
	case ResultLose:
		return "lose"
	case ResultPush:
		return "push"
	case ResultWin:
		return "win"
	case ResultBlackjack:
		return "blackjack"
	default:
		return "unknown"
	}
}

// Outcome summarises a finished round.
type Outcome struct {
	Result Result
	// Payoff is the signed return per unit of the original bet, before the
	// doubled stake is applied.
	Payoff float64
	// Action is the decision played; it is meaningless when Natural is set.
	Action      Action
	Doubled     bool
	Natural     bool // settled by a blackjack before the player acted
	PlayerTotal int
	DealerTotal int
}

// Wagered returns the payoff scaled by the stake actually at risk.
func (o Outcome) Wagered() float64 {
	if o.Doubled {
		return 2 * o.Payoff
	}
	return o.Payoff
}

// Round runs one round between a player and the dealer. A Round is used
// once; all dealing happens sequentially on the calling goroutine.
type Round struct {
	rules  rules.Rules
	shoe   *deck.Shoe
	player *Player
	dealer *Dealer
	policy PlayerPolicy
	bet    float64
	logger *log.Logger

	state   RoundState
	action  Action
	outcome Outcome
}

// NewRound prepares a round. Hands already held by the player or dealer are
// treated as pinned and completed to two cards when dealt.
func NewRound(r rules.Rules, shoe *deck.Shoe, player *Player, dealer *Dealer, policy PlayerPolicy, bet float64, logger *log.Logger) *Round {
	if logger == nil {
		logger = discardLogger()
	}
	return &Round{
		rules:  r,
		shoe:   shoe,
		player: player,
		dealer: dealer,
		policy: policy,
		bet:    bet,
		logger: logger,
		state:  StateDeal,
	}
}

// State returns the current state.
func (r *Round) State() RoundState {
	return r.state
}

// Run drives the round to completion. Illegal actions and shoe errors are
// returned unchanged.
func (r *Round) Run() (Outcome, error) {
	for r.state != StateDone {
		next, err := r.step()
		if err != nil {
			return Outcome{}, fmt.Errorf("round %s: %w", r.state, err)
		}
		r.state = next
	}
	return r.outcome, nil
}

func (r *Round) step() (RoundState, error) {
	switch r.state {
	case StateDeal:
		if err := r.deal(); err != nil {
			return r.state, err
		}
		if r.dealer.Peeks {
			return StatePeekCheck, nil
		}
		return StatePlayerBlackjackCheck, nil

	case StatePeekCheck:
		if r.dealer.Hand.IsBlackjack() {
			if r.player.Hand.IsBlackjack() {
				r.settle(ResultPush, 1, true)
			} else {
				r.settle(ResultLose, 1, true)
			}
			return StateDone, nil
		}
		return StatePlayerBlackjackCheck, nil

	case StatePlayerBlackjackCheck:
		if r.player.Hand.IsBlackjack() {
			r.settle(ResultBlackjack, 1, true)
			return StateDone, nil
		}
		return StatePlayerAction, nil

	case StatePlayerAction:
		upcard, _ := r.dealer.Upcard()
		r.action = r.policy.Decide(r.player.Hand, upcard)
		if err := r.checkTableRules(r.action); err != nil {
			return r.state, err
		}
		if err := r.player.Apply(r.action, r.shoe); err != nil {
			return r.state, err
		}
		return StateDealerPlay, nil

	case StateDealerPlay:
		if err := r.dealer.Play(r.shoe); err != nil {
			return r.state, err
		}
		return StateResolve, nil

	case StateResolve:
		stake := 1.0
		if r.action == Double {
			stake = 2
		}
		r.settle(Compare(r.player.Hand, r.dealer.Hand), stake, false)
		return StateDone, nil

	default:
		return StateDone, nil
	}
}

// RoundReserve is the fewest undealt cards a fresh round starts with. One
// decision takes at most three player cards and the dealer cannot reach 17
// in more than eleven.
const RoundReserve = 16

// deal completes both hands to two cards. A fresh round reshuffles first
// once the shoe has passed the shuffle point or could run out mid-round.
func (r *Round) deal() error {
	fresh := len(r.player.Hand) == 0 && len(r.dealer.Hand) == 0
	if fresh && (r.shoe.FractionUsed() >= r.rules.Reshuffle() || r.shoe.Remaining() < RoundReserve) {
		r.logger.Debug("reshuffling shoe", "used", r.shoe.FractionUsed(), "remaining", r.shoe.Remaining())
		r.shoe.Reset()
	}

	for _, p := range []*Participant{&r.player.Participant, &r.dealer.Participant} {
		for len(p.Hand) < 2 {
			if err := p.draw(r.shoe); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkTableRules enforces rule-variant restrictions that sit on top of the
// player's own preconditions.
func (r *Round) checkTableRules(a Action) error {
	h := r.player.Hand
	switch a {
	case Double:
		if total := h.Total(); len(h) == 2 && !r.rules.CanDouble(total) {
			return fmt.Errorf("%w: double on %d outside the allowed range", ErrIllegalAction, total)
		}
	case Split:
		if !h.IsPair() {
			return nil
		}
		if h[0].IsAce() && r.rules.SplittingAces != rules.Allowed {
			return fmt.Errorf("%w: splitting aces not allowed", ErrIllegalAction)
		}
		if h[0].Rank.IsTenValue() && r.rules.SplittingTens != rules.Allowed {
			return fmt.Errorf("%w: splitting tens not allowed", ErrIllegalAction)
		}
	}
	return nil
}

// settle applies the result to both bankrolls at stake times the bet and
// records the outcome per unit bet.
func (r *Round) settle(res Result, stake float64, natural bool) {
	wager := r.bet * stake
	var won float64
	switch res {
	case ResultWin:
		won = r.player.Win(wager)
	case ResultLose:
		won = r.player.Lose(wager)
	case ResultBlackjack:
		won = r.player.WinBlackjack(wager, r.rules.Payout())
	default:
		won = r.player.Push(wager)
	}
	r.dealer.Bankroll -= won

	r.outcome = Outcome{
		Result:      res,
		Payoff:      won / wager,
		Action:      r.action,
		Doubled:     stake == 2,
		Natural:     natural,
		PlayerTotal: r.player.Hand.Total(),
		DealerTotal: r.dealer.Hand.Total(),
	}
	r.logger.Debug("round settled",
		"player", r.player.Hand,
		"dealer", r.dealer.Hand,
		"action", r.action,
		"result", res,
		"payoff", won)
}

// Compare resolves a finished player hand against a finished dealer hand.
// A busted player always loses, even when the dealer also busts.
func Compare(player, dealer Hand) Result {
	switch pt, dt := player.Total(), dealer.Total(); {
	case pt > 21:
		return ResultLose
	case dt > 21:
		return ResultWin
	case pt > dt:
		return ResultWin
	case pt < dt:
		return ResultLose
	default:
		return ResultPush
	}
}
