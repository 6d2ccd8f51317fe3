package game

import (
	"testing"

	"github.com/lox/basicstrategy/internal/deck"
	"github.com/lox/basicstrategy/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerApply(t *testing.T) {
	shoe := deck.NewShoe(1, randutil.New(1))

	p := NewPlayer(DefaultBankroll)
	p.Hand = hand("Ts6h")
	require.NoError(t, p.Apply(Stand, shoe))
	assert.Len(t, p.Hand, 2)

	require.NoError(t, p.Apply(Hit, shoe))
	assert.Len(t, p.Hand, 3)

	p.Hand = hand("6s5h")
	require.NoError(t, p.Apply(Double, shoe))
	assert.Len(t, p.Hand, 3)

	p.Hand = hand("8s8h")
	require.NoError(t, p.Apply(Split, shoe))
	require.Len(t, p.Hand, 2)
	assert.Equal(t, deck.Card{Rank: deck.Eight, Suit: deck.Spades}, p.Hand[0])
}

func TestPlayerApplyIllegal(t *testing.T) {
	shoe := deck.NewShoe(1, randutil.New(2))

	tests := []struct {
		name   string
		cards  string
		action Action
	}{
		{"double on three cards", "2s3h4d", Double},
		{"double on one card", "9s", Double},
		{"split three cards", "8s8h8d", Split},
		{"split non-pair", "As5h", Split},
		{"split equal value different rank", "KsQh", Split},
		{"unknown action", "8s8h", Action(9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer(DefaultBankroll)
			p.Hand = hand(tt.cards)
			before := shoe.Remaining()

			err := p.Apply(tt.action, shoe)
			assert.ErrorIs(t, err, ErrIllegalAction)
			assert.Equal(t, before, shoe.Remaining(), "illegal action must not draw")
		})
	}
}

func TestParticipantPayoffs(t *testing.T) {
	p := &Participant{Bankroll: 100}

	assert.Equal(t, 10.0, p.Win(10))
	assert.Equal(t, 110.0, p.Bankroll)

	assert.Equal(t, -10.0, p.Lose(10))
	assert.Equal(t, 100.0, p.Bankroll)

	assert.Equal(t, 0.0, p.Push(10))
	assert.Equal(t, 100.0, p.Bankroll)

	assert.Equal(t, 15.0, p.WinBlackjack(10, 1.5))
	assert.Equal(t, 115.0, p.Bankroll)
}

func TestStandardDealerPolicy(t *testing.T) {
	tests := []struct {
		cards     string
		hitSoft17 bool
		want      DealerMove
	}{
		{"Ts2h", false, DealerDraw},
		{"Ts6h", false, DealerDraw},
		{"Ts7h", false, DealerStop},
		{"Ts7h", true, DealerStop},
		{"As6h", false, DealerStop},
		{"As6h", true, DealerDraw},
		{"As7h", true, DealerStop},
		{"As2h4d", true, DealerDraw},
		{"Ts6hAd", false, DealerStop},
		{"TsQh5d", true, DealerStop},
	}

	for _, tt := range tests {
		policy := StandardDealerPolicy{HitSoft17: tt.hitSoft17}
		if got := policy.Decide(hand(tt.cards)); got != tt.want {
			t.Errorf("%s (H17=%v): Decide() = %v, want %v", tt.cards, tt.hitSoft17, got, tt.want)
		}
	}
}

func TestDealerPlayStopsCorrectly(t *testing.T) {
	for _, hitSoft17 := range []bool{false, true} {
		shoe := deck.NewShoe(6, randutil.New(7))
		for i := 0; i < 500; i++ {
			if shoe.FractionUsed() > 0.8 {
				shoe.Reset()
			}
			d := NewDealer(hitSoft17, true)
			start, err := shoe.Deal(2)
			require.NoError(t, err)
			d.Hand = NewHand(start...)

			require.NoError(t, d.Play(shoe))

			total, soft := d.Hand.Value()
			assert.GreaterOrEqual(t, total, 17, "dealer stopped on %s", d.Hand)
			if hitSoft17 {
				assert.False(t, total == 17 && soft, "dealer stood on soft 17 under H17: %s", d.Hand)
			}

			// every card drawn was drawn on a total the policy hits
			policy := StandardDealerPolicy{HitSoft17: hitSoft17}
			for n := 2; n < len(d.Hand); n++ {
				assert.Equal(t, DealerDraw, policy.Decide(d.Hand[:n]), "drew past a standing total: %s", d.Hand)
			}
		}
	}
}

func TestDealerNeverDrawsOnHard17(t *testing.T) {
	shoe := deck.NewShoe(1, randutil.New(8))
	for _, cards := range []string{"Ts7h", "Ts8h", "9s9h", "TsKh", "Ts6hAd"} {
		d := NewDealer(true, true)
		d.Hand = hand(cards)
		before := shoe.Remaining()
		require.NoError(t, d.Play(shoe))
		assert.Equal(t, before, shoe.Remaining(), "dealer drew on %s", cards)
	}
}

type alwaysDraw struct{}

func (alwaysDraw) Decide(Hand) DealerMove { return DealerDraw }

func TestDealerPolicyOverride(t *testing.T) {
	shoe := deck.NewShoe(1, randutil.New(9))
	d := NewDealer(false, false)
	d.Policy = alwaysDraw{}

	err := d.Play(shoe)
	assert.ErrorIs(t, err, deck.ErrShoeExhausted)
	assert.Len(t, d.Hand, deck.CardsPerDeck)
}

func TestDealerUpcard(t *testing.T) {
	d := NewDealer(false, true)
	_, ok := d.Upcard()
	assert.False(t, ok)

	d.Hand = hand("6dKs")
	up, ok := d.Upcard()
	assert.True(t, ok)
	assert.Equal(t, deck.Six, up.Rank)
}
