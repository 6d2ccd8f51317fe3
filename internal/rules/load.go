package rules

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// fileConfig is the HCL document shape:
//
//	rules "downtown" {
//	  base             = "basic"
//	  decks            = 2
//	  shuffle_point    = 0.5
//	  blackjack_payout = "3:2"
//	  hit_soft_17      = false
//	}
type fileConfig struct {
	Rules ruleBlock `hcl:"rules,block"`
}

type ruleBlock struct {
	Name             string   `hcl:"name,label"`
	Base             *string  `hcl:"base,optional"`
	Decks            *int     `hcl:"decks,optional"`
	ShufflePoint     *float64 `hcl:"shuffle_point,optional"`
	BlackjackPayout  *string  `hcl:"blackjack_payout,optional"`
	HitSoft17        *bool    `hcl:"hit_soft_17,optional"`
	DoubleAfterSplit *bool    `hcl:"double_after_split,optional"`
	DoubleRange      *string  `hcl:"double_range,optional"`
	SplittingAces    *bool    `hcl:"splitting_aces,optional"`
	SplittingTens    *bool    `hcl:"splitting_tens,optional"`
	ResplittingAces  *bool    `hcl:"resplitting_aces,optional"`
	ResplittingTens  *bool    `hcl:"resplitting_tens,optional"`
	Surrender        *bool    `hcl:"surrender,optional"`
	DealerPeek       *bool    `hcl:"dealer_peek,optional"`
}

// LoadFile reads a rule variant from an HCL file.
func LoadFile(filename string) (Rules, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules file: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes a rule variant from HCL source. Attributes left unset keep
// the value of the base preset (basic by default). The result is validated.
func Parse(src []byte, filename string) (Rules, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Rules{}, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return Rules{}, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	r, err := cfg.Rules.toRules()
	if err != nil {
		return Rules{}, err
	}
	if err := r.Validate(); err != nil {
		return Rules{}, err
	}
	return r, nil
}

func (b ruleBlock) toRules() (Rules, error) {
	base := "basic"
	if b.Base != nil {
		base = *b.Base
	}
	r, err := Preset(base)
	if err != nil {
		return Rules{}, err
	}
	r.Name = b.Name

	if b.Decks != nil {
		r.NumDecks = NumDecks(*b.Decks)
	}
	if b.ShufflePoint != nil {
		r.ShufflePoint = ShufflePoint(*b.ShufflePoint)
	}
	if b.BlackjackPayout != nil {
		p, err := parsePayout(*b.BlackjackPayout)
		if err != nil {
			return Rules{}, err
		}
		r.BlackjackPayout = p
	}
	if b.HitSoft17 != nil {
		r.DealerSoft17 = StandSoft17
		if *b.HitSoft17 {
			r.DealerSoft17 = HitSoft17
		}
	}
	if b.DoubleRange != nil {
		switch strings.ToLower(*b.DoubleRange) {
		case "any":
			r.DoubleRange = DoubleAny
		case "9-11", "nine_to_eleven":
			r.DoubleRange = DoubleNineToEleven
		default:
			return Rules{}, fmt.Errorf("%w: unknown double_range %q", ErrInvalidRules, *b.DoubleRange)
		}
	}
	if b.DealerPeek != nil {
		r.DealerPeek = NoPeek
		if *b.DealerPeek {
			r.DealerPeek = Peek
		}
	}

	setToggle(&r.DoubleAfterSplit, b.DoubleAfterSplit)
	setToggle(&r.SplittingAces, b.SplittingAces)
	setToggle(&r.SplittingTens, b.SplittingTens)
	setToggle(&r.ResplittingAces, b.ResplittingAces)
	setToggle(&r.ResplittingTens, b.ResplittingTens)
	setToggle(&r.Surrender, b.Surrender)
	return r, nil
}

func setToggle(dst *Toggle, v *bool) {
	if v == nil {
		return
	}
	*dst = NotAllowed
	if *v {
		*dst = Allowed
	}
}

func parsePayout(s string) (BlackjackPayout, error) {
	switch strings.TrimSpace(s) {
	case "3:2", "3to2":
		return ThreeToTwo, nil
	case "6:5", "6to5":
		return SixToFive, nil
	case "1:1", "even":
		return EvenMoney, nil
	default:
		return 0, fmt.Errorf("%w: unknown blackjack_payout %q", ErrInvalidRules, s)
	}
}
