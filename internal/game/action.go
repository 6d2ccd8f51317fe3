package game

import (
	"fmt"
	"strings"
)

// Action is a player decision.
type Action int

const (
	Hit Action = iota
	Stand
	Double
	Split
)

// Actions lists every action in tie-break priority order.
var Actions = []Action{Hit, Stand, Double, Split}

func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case Double:
		return "double"
	case Split:
		return "split"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// ParseAction parses an action name such as "stand" or "D".
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hit", "h":
		return Hit, nil
	case "stand", "s":
		return Stand, nil
	case "double", "d":
		return Double, nil
	case "split", "p":
		return Split, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}

// Short returns the one-letter code used in strategy charts.
func (a Action) Short() string {
	switch a {
	case Hit:
		return "H"
	case Stand:
		return "S"
	case Double:
		return "D"
	case Split:
		return "P"
	default:
		return "?"
	}
}
