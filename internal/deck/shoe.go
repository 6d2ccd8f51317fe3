package deck

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// CardsPerDeck is the size of a standard deck.
const CardsPerDeck = 52

var (
	ErrShoeExhausted = errors.New("shoe exhausted")
	ErrCardNotFound  = errors.New("card not in shoe")
)

// Shoe is the shuffled pool of cards dealt from numDecks standard decks.
// Cards are dealt without replacement until the shoe is reset.
type Shoe struct {
	numDecks int
	cards    []Card
	rng      *rand.Rand
}

// NewShoe creates a full, shuffled shoe. A nil rng falls back to the
// package-level generator.
func NewShoe(numDecks int, rng *rand.Rand) *Shoe {
	if numDecks < 1 {
		numDecks = 1
	}
	s := &Shoe{
		numDecks: numDecks,
		cards:    make([]Card, 0, numDecks*CardsPerDeck),
		rng:      rng,
	}
	s.Reset()
	return s
}

// Reset rebuilds the shoe to full capacity and shuffles it.
func (s *Shoe) Reset() {
	s.cards = s.cards[:0]
	for range s.numDecks {
		for _, suit := range Suits {
			for _, rank := range Ranks {
				s.cards = append(s.cards, Card{Rank: rank, Suit: suit})
			}
		}
	}
	s.Shuffle()
}

// Shuffle randomizes the order of the undealt cards using Fisher-Yates
func (s *Shoe) Shuffle() {
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.intn(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

func (s *Shoe) intn(n int) int {
	if s.rng != nil {
		return s.rng.IntN(n)
	}
	return rand.IntN(n)
}

// Deal removes and returns n cards from the shoe.
func (s *Shoe) Deal(n int) ([]Card, error) {
	if n < 0 {
		return nil, fmt.Errorf("deal %d cards: negative count", n)
	}
	if n > len(s.cards) {
		return nil, fmt.Errorf("%w: want %d cards, %d remaining", ErrShoeExhausted, n, len(s.cards))
	}

	// Deal from the tail so removal never shifts the pool.
	cut := len(s.cards) - n
	dealt := make([]Card, n)
	copy(dealt, s.cards[cut:])
	s.cards = s.cards[:cut]
	return dealt, nil
}

// DealOne removes and returns a single card.
func (s *Shoe) DealOne() (Card, error) {
	if len(s.cards) == 0 {
		return Card{}, fmt.Errorf("%w: want 1 card, 0 remaining", ErrShoeExhausted)
	}
	card := s.cards[len(s.cards)-1]
	s.cards = s.cards[:len(s.cards)-1]
	return card, nil
}

// RemoveCard takes one card equal to c out of the undealt pool. The
// remaining pool keeps its random order.
func (s *Shoe) RemoveCard(c Card) error {
	for i := len(s.cards) - 1; i >= 0; i-- {
		if s.cards[i] == c {
			last := len(s.cards) - 1
			s.cards[i] = s.cards[last]
			s.cards = s.cards[:last]
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrCardNotFound, c)
}

// RemoveHand removes every given card, stopping at the first one missing.
func (s *Shoe) RemoveHand(cards ...Card) error {
	for _, c := range cards {
		if err := s.RemoveCard(c); err != nil {
			return err
		}
	}
	return nil
}

// Remaining returns the number of undealt cards.
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Capacity returns the number of cards in a full shoe.
func (s *Shoe) Capacity() int {
	return s.numDecks * CardsPerDeck
}

// NumDecks returns the number of decks the shoe is built from.
func (s *Shoe) NumDecks() int {
	return s.numDecks
}

// FractionUsed returns the share of the shoe already dealt or removed.
func (s *Shoe) FractionUsed() float64 {
	return 1 - float64(len(s.cards))/float64(s.Capacity())
}
