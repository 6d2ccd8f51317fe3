package rules

import (
	"fmt"
	"sort"
	"strings"
)

// Basic is the common six-deck shoe game.
func Basic() Rules {
	return Rules{
		Name:             "basic",
		NumDecks:         SixDecks,
		ShufflePoint:     Quarter,
		BlackjackPayout:  SixToFive,
		DealerSoft17:     HitSoft17,
		DoubleAfterSplit: Allowed,
		DoubleRange:      DoubleAny,
		SplittingAces:    Allowed,
		SplittingTens:    Allowed,
		ResplittingAces:  Allowed,
		ResplittingTens:  Allowed,
		Surrender:        NotAllowed,
		DealerPeek:       Peek,
	}
}

// EllisIsland is Basic with a continuous shuffle and a 3:2 payout.
func EllisIsland() Rules {
	r := Basic()
	r.Name = "ellis-island"
	r.ShufflePoint = EveryPlay
	r.BlackjackPayout = ThreeToTwo
	return r
}

var presets = map[string]func() Rules{
	"basic":        Basic,
	"ellis-island": EllisIsland,
}

// Preset returns the named preset.
func Preset(name string) (Rules, error) {
	fn, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Rules{}, fmt.Errorf("%w: unknown preset %q (have %s)",
			ErrInvalidRules, name, strings.Join(PresetNames(), ", "))
	}
	return fn(), nil
}

// PresetNames lists the known presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
