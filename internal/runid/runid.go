// Package runid names sweep runs with time-ordered identifiers: a UUIDv7
// rendered as 26 characters of Crockford base32.
package runid

import (
	"encoding/base32"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in an ID.
const Length = 26

var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// RandSource supplies the random bits of an ID. *rand.Rand satisfies it.
type RandSource interface {
	IntN(n int) int
}

// New returns the ID for a run started at now. A nil src reads from
// crypto/rand.
func New(now time.Time, src RandSource) string {
	var id uuid.UUID
	if src != nil {
		id = uuid.Must(uuid.NewRandomFromReader(randReader{src}))
	} else {
		id = uuid.Must(uuid.NewRandom())
	}

	ms := now.UnixMilli()
	for i := 0; i < 6; i++ {
		id[i] = byte(ms >> (40 - 8*i))
	}
	id[6] = id[6]&0x0f | 0x70 // version 7, variant already set

	return encoding.EncodeToString(id[:])
}

// randReader adapts a RandSource to io.Reader one byte at a time.
type randReader struct{ src RandSource }

func (r randReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.src.IntN(256))
	}
	return len(p), nil
}

// Validate checks id has the right length and alphabet.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("run ID must be %d characters, got %d", Length, len(id))
	}
	if i := strings.IndexFunc(id, func(r rune) bool { return !strings.ContainsRune(alphabet, r) }); i >= 0 {
		return fmt.Errorf("invalid character %q at position %d", id[i], i)
	}
	return nil
}

// Time recovers the millisecond timestamp embedded in id.
func Time(id string) (time.Time, error) {
	if err := Validate(id); err != nil {
		return time.Time{}, err
	}
	raw, err := encoding.DecodeString(id)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode run ID: %w", err)
	}
	u, err := uuid.FromBytes(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode run ID: %w", err)
	}
	if u.Version() != 7 {
		return time.Time{}, fmt.Errorf("run ID is UUID version %d, want 7", u.Version())
	}
	var ms int64
	for _, b := range raw[:6] {
		ms = ms<<8 | int64(b)
	}
	return time.UnixMilli(ms), nil
}
