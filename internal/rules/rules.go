// Package rules describes the casino rule variant a simulation runs under.
//
// Each rule axis is a closed set of named values. A Rules record combines one
// value per axis and is never mutated once built; every simulation component
// reads it through the accessor methods.
package rules

import (
	"errors"
	"fmt"
)

var ErrInvalidRules = errors.New("invalid rules")

// NumDecks is the number of standard decks in the shoe.
type NumDecks int

const (
	OneDeck    NumDecks = 1
	TwoDecks   NumDecks = 2
	FourDecks  NumDecks = 4
	SixDecks   NumDecks = 6
	EightDecks NumDecks = 8
)

func (n NumDecks) valid() bool {
	switch n {
	case OneDeck, TwoDecks, FourDecks, SixDecks, EightDecks:
		return true
	}
	return false
}

// ShufflePoint is the fraction of the shoe that may be used before it is
// reshuffled. EveryPlay reshuffles before each round.
type ShufflePoint float64

const (
	EveryPlay     ShufflePoint = 0
	Quarter       ShufflePoint = 0.25
	Half          ShufflePoint = 0.5
	ThreeQuarters ShufflePoint = 0.75
	Full          ShufflePoint = 1.0
)

func (s ShufflePoint) valid() bool {
	switch s {
	case EveryPlay, Quarter, Half, ThreeQuarters, Full:
		return true
	}
	return false
}

// BlackjackPayout is the multiplier paid on a player natural.
type BlackjackPayout float64

const (
	ThreeToTwo BlackjackPayout = 1.5
	SixToFive  BlackjackPayout = 1.2
	EvenMoney  BlackjackPayout = 1.0
)

func (p BlackjackPayout) valid() bool {
	switch p {
	case ThreeToTwo, SixToFive, EvenMoney:
		return true
	}
	return false
}

func (p BlackjackPayout) String() string {
	switch p {
	case ThreeToTwo:
		return "3:2"
	case SixToFive:
		return "6:5"
	case EvenMoney:
		return "1:1"
	default:
		return fmt.Sprintf("%.2f", float64(p))
	}
}

// Soft17Rule says whether the dealer draws on a soft 17.
type Soft17Rule int

const (
	StandSoft17 Soft17Rule = iota
	HitSoft17
)

// DoubleRange restricts the totals a player may double on.
type DoubleRange int

const (
	DoubleAny DoubleRange = iota
	DoubleNineToEleven
)

// PeekRule says whether the dealer checks for a natural before play.
type PeekRule int

const (
	NoPeek PeekRule = iota
	Peek
)

// Toggle is a rule that is either allowed or not.
type Toggle int

const (
	NotAllowed Toggle = iota
	Allowed
)

// Rules is the complete rule variant.
type Rules struct {
	Name             string
	NumDecks         NumDecks
	ShufflePoint     ShufflePoint
	BlackjackPayout  BlackjackPayout
	DealerSoft17     Soft17Rule
	DoubleAfterSplit Toggle
	DoubleRange      DoubleRange
	SplittingAces    Toggle
	SplittingTens    Toggle
	ResplittingAces  Toggle
	ResplittingTens  Toggle
	Surrender        Toggle
	DealerPeek       PeekRule
}

// Validate rejects any axis holding a value outside its named set.
func (r Rules) Validate() error {
	if !r.NumDecks.valid() {
		return fmt.Errorf("%w: unsupported deck count %d", ErrInvalidRules, r.NumDecks)
	}
	if !r.ShufflePoint.valid() {
		return fmt.Errorf("%w: unsupported shuffle point %v", ErrInvalidRules, float64(r.ShufflePoint))
	}
	if !r.BlackjackPayout.valid() {
		return fmt.Errorf("%w: unsupported blackjack payout %v", ErrInvalidRules, float64(r.BlackjackPayout))
	}
	if r.DealerSoft17 != StandSoft17 && r.DealerSoft17 != HitSoft17 {
		return fmt.Errorf("%w: unknown soft 17 rule %d", ErrInvalidRules, r.DealerSoft17)
	}
	if r.DoubleRange != DoubleAny && r.DoubleRange != DoubleNineToEleven {
		return fmt.Errorf("%w: unknown double range %d", ErrInvalidRules, r.DoubleRange)
	}
	if r.DealerPeek != NoPeek && r.DealerPeek != Peek {
		return fmt.Errorf("%w: unknown peek rule %d", ErrInvalidRules, r.DealerPeek)
	}

	toggles := []struct {
		name string
		v    Toggle
	}{
		{"double_after_split", r.DoubleAfterSplit},
		{"splitting_aces", r.SplittingAces},
		{"splitting_tens", r.SplittingTens},
		{"resplitting_aces", r.ResplittingAces},
		{"resplitting_tens", r.ResplittingTens},
		{"surrender", r.Surrender},
	}
	for _, tg := range toggles {
		if tg.v != Allowed && tg.v != NotAllowed {
			return fmt.Errorf("%w: %s must be allowed or not allowed", ErrInvalidRules, tg.name)
		}
	}
	return nil
}

// Decks returns the number of decks in the shoe.
func (r Rules) Decks() int { return int(r.NumDecks) }

// Reshuffle returns the used fraction at which the shoe is rebuilt.
func (r Rules) Reshuffle() float64 { return float64(r.ShufflePoint) }

// Payout returns the blackjack payout multiplier.
func (r Rules) Payout() float64 { return float64(r.BlackjackPayout) }

func (r Rules) DealerHitsSoft17() bool { return r.DealerSoft17 == HitSoft17 }

func (r Rules) DealerPeeks() bool { return r.DealerPeek == Peek }

// CanDouble reports whether the double-range restriction permits doubling
// on a hand totalling total.
func (r Rules) CanDouble(total int) bool {
	if r.DoubleRange == DoubleNineToEleven {
		return total >= 9 && total <= 11
	}
	return true
}

func (r Rules) String() string {
	h17 := "S17"
	if r.DealerHitsSoft17() {
		h17 = "H17"
	}
	peek := "no peek"
	if r.DealerPeeks() {
		peek = "peek"
	}
	name := r.Name
	if name == "" {
		name = "custom"
	}
	return fmt.Sprintf("%s: %d decks, %s, BJ pays %s, shuffle at %.0f%%, %s",
		name, r.NumDecks, h17, r.BlackjackPayout, r.Reshuffle()*100, peek)
}
