package runid

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lox/basicstrategy/internal/randutil"
)

func TestNew(t *testing.T) {
	id := New(time.Now(), nil)
	if len(id) != Length {
		t.Errorf("expected %d characters, got %d", Length, len(id))
	}
	if err := Validate(id); err != nil {
		t.Errorf("generated ID failed validation: %v", err)
	}
}

func TestNewUnique(t *testing.T) {
	seen := make(map[string]bool)
	now := time.Now()
	for i := 0; i < 100; i++ {
		id := New(now, nil)
		if seen[id] {
			t.Errorf("duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}

func TestNewDeterministic(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	a := New(now, randutil.New(7))
	b := New(now, randutil.New(7))
	if a != b {
		t.Errorf("same time and seed gave %s and %s", a, b)
	}
	if c := New(now, randutil.New(8)); c == a {
		t.Errorf("different seeds gave the same ID %s", c)
	}
}

func TestNewIsUUIDv7(t *testing.T) {
	for _, src := range []RandSource{nil, randutil.New(3)} {
		raw, err := encoding.DecodeString(New(time.Now(), src))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		u, err := uuid.FromBytes(raw)
		if err != nil {
			t.Fatalf("FromBytes: %v", err)
		}
		if u.Version() != 7 {
			t.Errorf("version = %d, want 7", u.Version())
		}
		if u.Variant() != uuid.RFC4122 {
			t.Errorf("variant = %v, want RFC4122", u.Variant())
		}
	}
}

func TestTimeRejectsOtherVersions(t *testing.T) {
	v4 := uuid.Must(uuid.NewRandom())
	if _, err := Time(encoding.EncodeToString(v4[:])); err == nil {
		t.Error("expected an error for a version 4 UUID")
	}
}

func TestTimeOrdered(t *testing.T) {
	base := time.UnixMilli(1_700_000_000_000)
	var ids []string
	for i := 0; i < 10; i++ {
		ids = append(ids, New(base.Add(time.Duration(i)*time.Millisecond), randutil.New(int64(10-i))))
	}
	for i := 1; i < len(ids); i++ {
		if strings.Compare(ids[i-1], ids[i]) >= 0 {
			t.Errorf("IDs not sorted: %s >= %s", ids[i-1], ids[i])
		}
	}
}

func TestTimeRoundTrip(t *testing.T) {
	now := time.UnixMilli(1_712_345_678_901)
	got, err := Time(New(now, randutil.New(1)))
	if err != nil {
		t.Fatalf("Time: %v", err)
	}
	if !got.Equal(now) {
		t.Errorf("Time() = %v, want %v", got, now)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid", New(time.Now(), nil), false},
		{"too short", "01h2xcejqtf2nbrexx3vqjhp4", true},
		{"too long", "01h2xcejqtf2nbrexx3vqjhp41x", true},
		{"excluded letter", "01h2xcejqtf2nbrexx3vqjhp4u", true},
		{"uppercase", "01H2XCEJQTF2NBREXX3VQJHP41", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}
