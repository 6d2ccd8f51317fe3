package strategy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lox/basicstrategy/internal/deck"
)

// Category groups starting hands the way strategy charts do.
type Category int

const (
	Hard Category = iota
	Soft
	Pair
)

// Categories lists every category in table order.
var Categories = []Category{Hard, Soft, Pair}

func (c Category) String() string {
	switch c {
	case Hard:
		return "hard"
	case Soft:
		return "soft"
	case Pair:
		return "pair"
	default:
		return "unknown"
	}
}

// ParseCategory accepts the names produced by String.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(strings.TrimSpace(s), c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// Upcards lists the dealer up-cards a table covers. Face cards play as ten.
var Upcards = []deck.Rank{
	deck.Ace, deck.Two, deck.Three, deck.Four, deck.Five,
	deck.Six, deck.Seven, deck.Eight, deck.Nine, deck.Ten,
}

// upcardLabel is the JSON and chart label for an up-card.
func upcardLabel(r deck.Rank) string {
	if r == deck.Ace {
		return "A"
	}
	return fmt.Sprint(r.Value())
}

// Key identifies one row-and-column position in a strategy table.
type Key struct {
	Category Category
	Total    int
	Upcard   deck.Rank
}

func (k Key) String() string {
	return fmt.Sprintf("%s %d vs %s", k.Category, k.Total, upcardLabel(k.Upcard))
}

func upcardIndex(r deck.Rank) int {
	if r == deck.Ace {
		return 0
	}
	return r.Value() - 1
}

// less orders keys by category, then total, then up-card A,2..10.
func (k Key) less(o Key) bool {
	if k.Category != o.Category {
		return k.Category < o.Category
	}
	if k.Total != o.Total {
		return k.Total < o.Total
	}
	return upcardIndex(k.Upcard) < upcardIndex(o.Upcard)
}

// Composition is a two-card player starting hand by rank.
type Composition [2]deck.Rank

// Weight is how many rank combinations deal this composition. Ten stands in
// for every ten-valued rank, so it counts four times.
func (c Composition) Weight() int {
	w := 1
	for _, r := range c {
		if r == deck.Ten {
			w *= 4
		}
	}
	return w
}

// StartingHand is a category and total together with every two-card
// composition that reaches it.
type StartingHand struct {
	Category     Category
	Total        int
	Compositions []Composition
}

// Classify places a two-card hand in its category. Naturals report false
// since no decision follows them.
func Classify(a, b deck.Rank) (Category, int, bool) {
	a, b = collapse(a), collapse(b)
	if (a == deck.Ace && b == deck.Ten) || (a == deck.Ten && b == deck.Ace) {
		return 0, 0, false
	}

	total := a.Value() + b.Value()
	if total > 21 {
		// two aces
		total -= 10
	}
	switch {
	case a == b:
		return Pair, total, true
	case a == deck.Ace || b == deck.Ace:
		return Soft, total, true
	default:
		return Hard, total, true
	}
}

func collapse(r deck.Rank) deck.Rank {
	if r.IsTenValue() {
		return deck.Ten
	}
	return r
}

// StartingHands enumerates every unordered rank pair over A,2..10 and pools
// the compositions by category and total, in table order.
func StartingHands() []StartingHand {
	var hands []StartingHand
	index := make(map[[2]int]int)

	ranks := Upcards
	for i, a := range ranks {
		for _, b := range ranks[i:] {
			cat, total, ok := Classify(a, b)
			if !ok {
				continue
			}
			k := [2]int{int(cat), total}
			pos, seen := index[k]
			if !seen {
				pos = len(hands)
				index[k] = pos
				hands = append(hands, StartingHand{Category: cat, Total: total})
			}
			hands[pos].Compositions = append(hands[pos].Compositions, Composition{a, b})
		}
	}

	sort.Slice(hands, func(i, j int) bool {
		if hands[i].Category != hands[j].Category {
			return hands[i].Category < hands[j].Category
		}
		return hands[i].Total < hands[j].Total
	})
	return hands
}

// pin builds the card-level hands for a composition against an up-card.
// Every pinned card gets its own suit so all three can be taken from a
// single deck.
func pin(c Composition, upcard deck.Rank) (dealer, player []deck.Card) {
	player = []deck.Card{
		{Rank: c[0], Suit: deck.Spades},
		{Rank: c[1], Suit: deck.Hearts},
	}
	dealer = []deck.Card{{Rank: upcard, Suit: deck.Diamonds}}
	return dealer, player
}
