package game

import (
	"strings"

	"github.com/lox/basicstrategy/internal/deck"
)

// Hand is an ordered sequence of cards. Its total and softness are derived
// on demand and never stored.
type Hand []deck.Card

// NewHand creates a hand holding a copy of cards.
func NewHand(cards ...deck.Card) Hand {
	h := make(Hand, len(cards))
	copy(h, cards)
	return h
}

// Value returns the hand total and whether an ace is counted as 11.
//
// Non-aces are summed first. Each ace then counts 11 if that keeps the
// running total at or under 21, otherwise 1. Only one ace can ever sit at 11,
// so a single downgrade of 10 settles an over-21 soft total.
func (h Hand) Value() (total int, soft bool) {
	aces := 0
	for _, c := range h {
		if c.IsAce() {
			aces++
			continue
		}
		total += c.Value()
	}

	for range aces {
		if total+11 <= 21 {
			total += 11
			soft = true
		} else {
			total++
		}
	}

	if soft && total > 21 {
		total -= 10
		soft = false
	}
	return total, soft
}

// Total returns the hand total.
func (h Hand) Total() int {
	total, _ := h.Value()
	return total
}

// IsSoft reports whether an ace is currently counted as 11.
func (h Hand) IsSoft() bool {
	_, soft := h.Value()
	return soft
}

// IsBlackjack reports a two-card 21.
func (h Hand) IsBlackjack() bool {
	return len(h) == 2 && h.Total() == 21
}

// IsBust reports a total over 21.
func (h Hand) IsBust() bool {
	return h.Total() > 21
}

// IsPair reports a two-card hand of equal rank.
func (h Hand) IsPair() bool {
	return len(h) == 2 && h[0].Rank == h[1].Rank
}

// Copy returns an independent hand with the same cards.
func (h Hand) Copy() Hand {
	if h == nil {
		return nil
	}
	return NewHand(h...)
}

func (h Hand) String() string {
	if len(h) == 0 {
		return "<empty>"
	}
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = c.String()
	}
	return "<" + strings.Join(parts, " ") + ">"
}
