package game

import (
	"fmt"

	"github.com/lox/basicstrategy/internal/deck"
)

// DefaultBankroll is the starting bankroll of a new participant.
const DefaultBankroll = 1000

// Participant is the state shared by the player and the dealer.
type Participant struct {
	Hand     Hand
	Bankroll float64
}

// Win pays bet and returns the signed payoff.
func (p *Participant) Win(bet float64) float64 {
	p.Bankroll += bet
	return bet
}

// WinBlackjack pays bet at the blackjack multiplier.
func (p *Participant) WinBlackjack(bet, payout float64) float64 {
	won := bet * payout
	p.Bankroll += won
	return won
}

// Lose takes bet and returns the signed payoff.
func (p *Participant) Lose(bet float64) float64 {
	p.Bankroll -= bet
	return -bet
}

// Push returns the stake; the payoff is zero.
func (p *Participant) Push(bet float64) float64 {
	return 0
}

func (p *Participant) draw(shoe *deck.Shoe) error {
	card, err := shoe.DealOne()
	if err != nil {
		return err
	}
	p.Hand = append(p.Hand, card)
	return nil
}

// Player is the participant whose decision is being evaluated.
type Player struct {
	Participant
}

// NewPlayer creates a player with an empty hand.
func NewPlayer(bankroll float64) *Player {
	return &Player{Participant: Participant{Bankroll: bankroll}}
}

// Apply executes a single action against the shoe after checking its
// preconditions. Failed preconditions wrap ErrIllegalAction.
func (p *Player) Apply(a Action, shoe *deck.Shoe) error {
	switch a {
	case Hit:
		return p.draw(shoe)
	case Stand:
		return nil
	case Double:
		if len(p.Hand) != 2 {
			return fmt.Errorf("%w: double needs 2 cards, hand has %d", ErrIllegalAction, len(p.Hand))
		}
		return p.draw(shoe)
	case Split:
		if len(p.Hand) != 2 {
			return fmt.Errorf("%w: split needs 2 cards, hand has %d", ErrIllegalAction, len(p.Hand))
		}
		if !p.Hand.IsPair() {
			return fmt.Errorf("%w: split needs a pair, hand is %s", ErrIllegalAction, p.Hand)
		}
		// Keep the first card and play out one of the two new hands.
		p.Hand = p.Hand[:1]
		return p.draw(shoe)
	default:
		return fmt.Errorf("%w: unknown action %s", ErrIllegalAction, a)
	}
}

// Dealer plays a fixed policy; it never makes a free decision.
type Dealer struct {
	Participant
	HitsSoft17 bool
	Peeks      bool

	// Policy overrides the house policy derived from HitsSoft17.
	Policy DealerPolicy
}

// NewDealer creates a dealer following the standard house policy.
func NewDealer(hitsSoft17, peeks bool) *Dealer {
	return &Dealer{
		Participant: Participant{Bankroll: DefaultBankroll},
		HitsSoft17:  hitsSoft17,
		Peeks:       peeks,
	}
}

func (d *Dealer) policy() DealerPolicy {
	if d.Policy != nil {
		return d.Policy
	}
	return StandardDealerPolicy{HitSoft17: d.HitsSoft17}
}

// Play draws cards until the policy says stop.
func (d *Dealer) Play(shoe *deck.Shoe) error {
	policy := d.policy()
	for policy.Decide(d.Hand) == DealerDraw {
		if err := d.draw(shoe); err != nil {
			return err
		}
	}
	return nil
}

// Upcard returns the dealer's exposed card.
func (d *Dealer) Upcard() (deck.Card, bool) {
	if len(d.Hand) == 0 {
		return deck.Card{}, false
	}
	return d.Hand[0], true
}
