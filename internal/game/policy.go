package game

import "github.com/lox/basicstrategy/internal/deck"

// DealerMove is the dealer's draw or stop decision.
type DealerMove int

const (
	DealerStop DealerMove = iota
	DealerDraw
)

// DealerPolicy decides whether the dealer draws another card.
type DealerPolicy interface {
	Decide(h Hand) DealerMove
}

// StandardDealerPolicy draws on 16 or less, and on soft 17 when HitSoft17
// is set.
type StandardDealerPolicy struct {
	HitSoft17 bool
}

func (p StandardDealerPolicy) Decide(h Hand) DealerMove {
	total, soft := h.Value()
	if total <= 16 || (total == 17 && soft && p.HitSoft17) {
		return DealerDraw
	}
	return DealerStop
}

// PlayerPolicy chooses the player's action given their hand and the
// dealer's up-card.
type PlayerPolicy interface {
	Decide(h Hand, upcard deck.Card) Action
}

// FixedAction always plays the same action.
type FixedAction Action

func (f FixedAction) Decide(Hand, deck.Card) Action {
	return Action(f)
}

// PlayerPolicyFunc adapts a function to PlayerPolicy.
type PlayerPolicyFunc func(h Hand, upcard deck.Card) Action

func (f PlayerPolicyFunc) Decide(h Hand, upcard deck.Card) Action {
	return f(h, upcard)
}
