package game

import "testing"

func TestParseAction(t *testing.T) {
	for _, a := range Actions {
		got, err := ParseAction(a.String())
		if err != nil || got != a {
			t.Errorf("ParseAction(%q) = %v, %v", a.String(), got, err)
		}
		got, err = ParseAction(a.Short())
		if err != nil || got != a {
			t.Errorf("ParseAction(%q) = %v, %v", a.Short(), got, err)
		}
	}

	if _, err := ParseAction("surrender"); err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestActionPriorityOrder(t *testing.T) {
	want := []Action{Hit, Stand, Double, Split}
	for i, a := range Actions {
		if a != want[i] {
			t.Fatalf("Actions[%d] = %s, want %s", i, a, want[i])
		}
	}
}
