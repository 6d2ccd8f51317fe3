package deck

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidRank = errors.New("invalid rank")
	ErrInvalidSuit = errors.New("invalid suit")
)

// Suit represents a card suit. It carries no Blackjack meaning and only
// contributes to card identity.
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// Suits lists every suit in deck build order.
var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool {
	return s >= Spades && s <= Clubs
}

// Rank represents a card rank
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Ranks lists every rank in deck build order.
var Ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		if r >= Two && r <= Nine {
			return string(rune('0' + int(r)))
		}
		return "?"
	}
}

// Valid reports whether r is a recognised rank.
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// Value is the Blackjack contribution of the rank. Aces count 11 here; the
// hand decides when one drops to 1. Invalid ranks yield 0.
func (r Rank) Value() int {
	switch {
	case r == Ace:
		return 11
	case r >= Jack && r <= King:
		return 10
	case r >= Two && r <= Ten:
		return int(r)
	default:
		return 0
	}
}

// IsTenValue returns true for Ten, Jack, Queen and King.
func (r Rank) IsTenValue() bool {
	return r >= Ten && r <= King
}

// Card represents a playing card
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a card, rejecting ranks and suits outside the standard deck.
func NewCard(rank Rank, suit Suit) (Card, error) {
	if !rank.Valid() {
		return Card{}, fmt.Errorf("%w: %d", ErrInvalidRank, rank)
	}
	if !suit.Valid() {
		return Card{}, fmt.Errorf("%w: %d", ErrInvalidSuit, suit)
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Value returns the Blackjack value of a valid card.
func (c Card) Value() int {
	return c.Rank.Value()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// ValueOf returns the Blackjack value of c, failing for an unrecognised rank.
func ValueOf(c Card) (int, error) {
	if !c.Rank.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidRank, c.Rank)
	}
	return c.Rank.Value(), nil
}

// ParseCard parses a single card such as "As", "Td" or "10h".
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "10") {
		s = "T" + s[2:]
	}
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card string %q", s)
	}

	rank, err := parseRank(s[0])
	if err != nil {
		return Card{}, err
	}
	suit, err := parseSuit(s[1])
	if err != nil {
		return Card{}, err
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// ParseCards parses a string of card notation into a slice of cards.
// Format: "AsTh6d" where each card is [Rank][Suit]; spaces are ignored and
// "10" may be used in place of "T".
func ParseCards(s string) ([]Card, error) {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "10", "T")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid card string length: %d (must be even)", len(s))
	}

	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		card, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, fmt.Errorf("card at position %d: %w", i, err)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}

func parseRank(c byte) (Rank, error) {
	switch c {
	case 'A', 'a':
		return Ace, nil
	case 'K', 'k':
		return King, nil
	case 'Q', 'q':
		return Queen, nil
	case 'J', 'j':
		return Jack, nil
	case 'T', 't':
		return Ten, nil
	}
	if c >= '2' && c <= '9' {
		return Rank(c - '0'), nil
	}
	return 0, fmt.Errorf("%w '%c'", ErrInvalidRank, c)
}

func parseSuit(c byte) (Suit, error) {
	switch c {
	case 's', 'S':
		return Spades, nil
	case 'h', 'H':
		return Hearts, nil
	case 'd', 'D':
		return Diamonds, nil
	case 'c', 'C':
		return Clubs, nil
	default:
		return 0, fmt.Errorf("%w '%c'", ErrInvalidSuit, c)
	}
}
