package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresets(t *testing.T) {
	basic := Basic()
	require.NoError(t, basic.Validate())
	assert.Equal(t, 6, basic.Decks())
	assert.Equal(t, 0.25, basic.Reshuffle())
	assert.Equal(t, 1.2, basic.Payout())
	assert.True(t, basic.DealerHitsSoft17())
	assert.True(t, basic.DealerPeeks())

	ellis := EllisIsland()
	require.NoError(t, ellis.Validate())
	assert.Equal(t, 0.0, ellis.Reshuffle())
	assert.Equal(t, 1.5, ellis.Payout())
	assert.Equal(t, basic.NumDecks, ellis.NumDecks)
}

func TestPresetLookup(t *testing.T) {
	r, err := Preset(" Ellis-Island ")
	require.NoError(t, err)
	assert.Equal(t, "ellis-island", r.Name)

	_, err = Preset("atlantic-city")
	assert.ErrorIs(t, err, ErrInvalidRules)
	assert.Equal(t, []string{"basic", "ellis-island"}, PresetNames())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Rules)
	}{
		{"three decks", func(r *Rules) { r.NumDecks = 3 }},
		{"odd shuffle point", func(r *Rules) { r.ShufflePoint = 0.3 }},
		{"odd payout", func(r *Rules) { r.BlackjackPayout = 2 }},
		{"soft 17", func(r *Rules) { r.DealerSoft17 = 4 }},
		{"double range", func(r *Rules) { r.DoubleRange = 9 }},
		{"peek", func(r *Rules) { r.DealerPeek = -1 }},
		{"surrender toggle", func(r *Rules) { r.Surrender = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Basic()
			tt.modify(&r)
			assert.ErrorIs(t, r.Validate(), ErrInvalidRules)
		})
	}
}

func TestCanDouble(t *testing.T) {
	r := Basic()
	assert.True(t, r.CanDouble(5))
	assert.True(t, r.CanDouble(18))

	r.DoubleRange = DoubleNineToEleven
	assert.False(t, r.CanDouble(8))
	assert.True(t, r.CanDouble(9))
	assert.True(t, r.CanDouble(11))
	assert.False(t, r.CanDouble(12))
}

func TestParse(t *testing.T) {
	src := `
rules "downtown" {
  base             = "ellis-island"
  decks            = 2
  shuffle_point    = 0.5
  blackjack_payout = "6:5"
  hit_soft_17      = false
  double_range     = "9-11"
  surrender        = true
  dealer_peek      = false
}
`
	r, err := Parse([]byte(src), "downtown.hcl")
	require.NoError(t, err)

	assert.Equal(t, "downtown", r.Name)
	assert.Equal(t, TwoDecks, r.NumDecks)
	assert.Equal(t, Half, r.ShufflePoint)
	assert.Equal(t, SixToFive, r.BlackjackPayout)
	assert.False(t, r.DealerHitsSoft17())
	assert.Equal(t, DoubleNineToEleven, r.DoubleRange)
	assert.Equal(t, Allowed, r.Surrender)
	assert.False(t, r.DealerPeeks())
	// inherited from the base preset
	assert.Equal(t, Allowed, r.SplittingAces)
}

func TestParseDefaultsToBasic(t *testing.T) {
	r, err := Parse([]byte(`rules "plain" {}`), "plain.hcl")
	require.NoError(t, err)

	want := Basic()
	want.Name = "plain"
	assert.Equal(t, want, r)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `rules "x" {`},
		{"missing block", ``},
		{"bad decks", `rules "x" { decks = 5 }`},
		{"bad payout", `rules "x" { blackjack_payout = "2:1" }`},
		{"bad double range", `rules "x" { double_range = "10-11" }`},
		{"bad base", `rules "x" { base = "vegas" }`},
		{"unknown attribute", `rules "x" { colour = "red" }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "bad.hcl")
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`rules "single" { decks = 1 }`), 0o644))

	r, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, OneDeck, r.NumDecks)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)
}
