package strategy

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/lox/basicstrategy/internal/deck"
	"github.com/lox/basicstrategy/internal/game"
	"github.com/lox/basicstrategy/internal/statistics"
)

// FailedEV is recorded for an action that could not be estimated.
const FailedEV = -1.0

// Entry holds the estimates for every action swept at one key.
type Entry struct {
	EV     map[game.Action]float64
	Stats  map[game.Action]*statistics.Statistics
	Failed map[game.Action]error
}

func newEntry() *Entry {
	return &Entry{
		EV:     make(map[game.Action]float64),
		Stats:  make(map[game.Action]*statistics.Statistics),
		Failed: make(map[game.Action]error),
	}
}

// BestAction returns the action with the highest EV. Ties go to the action
// listed first in game.Actions.
func (e *Entry) BestAction() (game.Action, bool) {
	best, bestEV, found := game.Hit, 0.0, false
	for _, a := range game.Actions {
		ev, ok := e.EV[a]
		if !ok {
			continue
		}
		if !found || ev > bestEV {
			best, bestEV, found = a, ev, true
		}
	}
	return best, found
}

// Table is the strategy table produced by a sweep. Keys iterate in table
// order: category, then total, then up-card.
type Table struct {
	keys    []Key
	entries map[Key]*Entry
	sorted  bool
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{entries: make(map[Key]*Entry)}
}

func (t *Table) entry(k Key) *Entry {
	e, ok := t.entries[k]
	if !ok {
		e = newEntry()
		t.entries[k] = e
		t.keys = append(t.keys, k)
		t.sorted = false
	}
	return e
}

// Set records the estimate for one action. A non-nil err marks the action
// failed and stores FailedEV in place of the mean.
func (t *Table) Set(k Key, a game.Action, stats *statistics.Statistics, err error) {
	e := t.entry(k)
	if stats == nil {
		stats = &statistics.Statistics{}
	}
	e.Stats[a] = stats
	if err != nil {
		e.Failed[a] = err
		e.EV[a] = FailedEV
		return
	}
	delete(e.Failed, a)
	e.EV[a] = stats.Mean()
}

// Keys returns every key in table order.
func (t *Table) Keys() []Key {
	if !t.sorted {
		sort.Slice(t.keys, func(i, j int) bool { return t.keys[i].less(t.keys[j]) })
		t.sorted = true
	}
	out := make([]Key, len(t.keys))
	copy(out, t.keys)
	return out
}

func (t *Table) Len() int { return len(t.keys) }

// Lookup returns the entry for a category, total and up-card. Face up-cards
// are looked up as ten.
func (t *Table) Lookup(cat Category, total int, upcard deck.Rank) (*Entry, bool) {
	e, ok := t.entries[Key{Category: cat, Total: total, Upcard: collapse(upcard)}]
	return e, ok
}

// Best returns the best action at k.
func (t *Table) Best(k Key) (game.Action, bool) {
	e, ok := t.entries[k]
	if !ok {
		return game.Hit, false
	}
	return e.BestAction()
}

// MarshalJSON writes category -> total -> up-card -> {action: EV}, keeping
// table order at every level.
func (t *Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	keys := t.Keys()
	for i := 0; i < len(keys); {
		cat := keys[i].Category
		if i > 0 {
			buf.WriteByte(',')
		}
		writeKey(&buf, cat.String())
		buf.WriteByte('{')

		firstTotal := true
		for i < len(keys) && keys[i].Category == cat {
			total := keys[i].Total
			if !firstTotal {
				buf.WriteByte(',')
			}
			firstTotal = false
			writeKey(&buf, strconv.Itoa(total))
			buf.WriteByte('{')

			firstUp := true
			for i < len(keys) && keys[i].Category == cat && keys[i].Total == total {
				if !firstUp {
					buf.WriteByte(',')
				}
				firstUp = false
				writeKey(&buf, upcardLabel(keys[i].Upcard))
				if err := writeActions(&buf, t.entries[keys[i]]); err != nil {
					return nil, err
				}
				i++
			}
			buf.WriteByte('}')
		}
		buf.WriteByte('}')
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeKey(buf *bytes.Buffer, k string) {
	b, _ := json.Marshal(k)
	buf.Write(b)
	buf.WriteByte(':')
}

func writeActions(buf *bytes.Buffer, e *Entry) error {
	buf.WriteByte('{')
	first := true
	for _, a := range game.Actions {
		ev, ok := e.EV[a]
		if !ok {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		writeKey(buf, a.String())
		b, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return nil
}
