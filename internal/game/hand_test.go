package game

import (
	"testing"

	"github.com/lox/basicstrategy/internal/deck"
)

func hand(s string) Hand {
	return NewHand(deck.MustParseCards(s)...)
}

func TestHandValue(t *testing.T) {
	tests := []struct {
		name  string
		cards string
		total int
		soft  bool
	}{
		{"empty", "", 0, false},
		{"hard twenty", "KsQh", 20, false},
		{"soft seventeen", "As6d", 17, true},
		{"soft becomes hard", "As6dKc", 17, false},
		{"two aces", "AsAh", 12, true},
		{"three aces", "AsAhAd", 13, true},
		{"four aces", "AsAhAdAc", 14, true},
		{"nine and two aces", "9sAhAd", 21, true},
		{"soft correction", "9sAhAdAc", 12, false},
		{"blackjack", "AsJd", 21, true},
		{"bust", "KsQh5d", 25, false},
		{"digits", "2s3h4d5c", 14, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, soft := hand(tt.cards).Value()
			if total != tt.total || soft != tt.soft {
				t.Errorf("Value() = (%d, %v), want (%d, %v)", total, soft, tt.total, tt.soft)
			}
		})
	}
}

func TestHandValueOrderInvariant(t *testing.T) {
	hands := []string{"As6dKc", "AsAh9d", "5sAh5dAc", "KsAh", "2s3hAd4c", "AsAhAdAc7s"}

	for _, s := range hands {
		cards := deck.MustParseCards(s)
		wantTotal, wantSoft := NewHand(cards...).Value()

		permute(cards, 0, func(p []deck.Card) {
			total, soft := NewHand(p...).Value()
			if total != wantTotal || soft != wantSoft {
				t.Errorf("%v: Value() = (%d, %v), want (%d, %v)", p, total, soft, wantTotal, wantSoft)
			}
		})
	}
}

func permute(cards []deck.Card, k int, fn func([]deck.Card)) {
	if k == len(cards) {
		fn(cards)
		return
	}
	for i := k; i < len(cards); i++ {
		cards[k], cards[i] = cards[i], cards[k]
		permute(cards, k+1, fn)
		cards[k], cards[i] = cards[i], cards[k]
	}
}

func TestHandValueHardBeforeAces(t *testing.T) {
	// non-ace cards already over 21: every ace counts 1 and the hand is hard
	for aces := 1; aces <= 4; aces++ {
		h := hand("KsQh5d")
		for i := 0; i < aces; i++ {
			h = append(h, deck.Card{Rank: deck.Ace, Suit: deck.Suits[i]})
		}
		total, soft := h.Value()
		if total != 25+aces || soft {
			t.Errorf("%d aces: Value() = (%d, %v), want (%d, false)", aces, total, soft, 25+aces)
		}
	}
}

func TestHandIsBlackjack(t *testing.T) {
	tests := []struct {
		cards string
		want  bool
	}{
		{"AsKd", true},
		{"TsAd", true},
		{"AsQh", true},
		{"7s7h7d", false},
		{"As5h5d", false},
		{"AsAh", false},
		{"KsQh", false},
		{"As", false},
	}

	for _, tt := range tests {
		if got := hand(tt.cards).IsBlackjack(); got != tt.want {
			t.Errorf("%s: IsBlackjack() = %v, want %v", tt.cards, got, tt.want)
		}
	}
}

func TestHandIsBust(t *testing.T) {
	if !hand("KsQh2d").IsBust() {
		t.Error("22 should be bust")
	}
	if hand("KsQhAd").IsBust() {
		t.Error("21 should not be bust")
	}
}

func TestHandIsPair(t *testing.T) {
	if !hand("8s8h").IsPair() {
		t.Error("8-8 should be a pair")
	}
	if hand("KsQh").IsPair() {
		t.Error("K-Q has equal value but different rank")
	}
	if hand("8s8h8d").IsPair() {
		t.Error("three cards are not a pair")
	}
}

func TestHandCopy(t *testing.T) {
	orig := hand("TsTh")
	cp := orig.Copy()
	cp[0] = deck.Card{Rank: deck.Two, Suit: deck.Clubs}

	if orig[0].Rank != deck.Ten || len(orig) != 2 {
		t.Errorf("Copy aliased the original: %v", orig)
	}
	if Hand(nil).Copy() != nil {
		t.Error("copy of nil hand should be nil")
	}
}

func TestHandString(t *testing.T) {
	if got := hand("AsTh").String(); got != "<A♠ T♥>" {
		t.Errorf("String() = %q", got)
	}
	if got := Hand(nil).String(); got != "<empty>" {
		t.Errorf("String() = %q", got)
	}
}
