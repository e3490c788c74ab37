// Package gameid generates sortable identifiers for dealt games.
package gameid

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"strings"

	"github.com/coder/quartz"
)

// Crockford's base32 alphabet, lowercase. It is in ascending ASCII order so
// encoded ids sort the same way as the underlying bytes.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in a game id
const Length = 26

var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// ErrInvalidID is returned by Validate for malformed ids
var ErrInvalidID = errors.New("invalid game id")

// RandSource lets tests supply deterministic randomness. *rand.Rand from
// math/rand/v2 satisfies it.
type RandSource interface {
	IntN(n int) int
}

// Generator creates UUIDv7-style game ids from a clock and a random source
type Generator struct {
	clock      quartz.Clock
	randSource RandSource
}

// NewGenerator creates a generator. A nil clock uses the real clock and a
// nil randSource uses crypto/rand.
func NewGenerator(clock quartz.Clock, randSource RandSource) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, randSource: randSource}
}

// Generate creates a game id using the real clock and crypto/rand
func Generate() string {
	return NewGenerator(nil, nil).Generate()
}

// Generate returns a new 26-character id. Ids from the same generator sort by
// creation time at millisecond resolution.
func (g *Generator) Generate() string {
	id := g.uuidV7()
	return encoding.EncodeToString(id[:])
}

func (g *Generator) uuidV7() [16]byte {
	var id [16]byte

	// 48-bit big-endian millisecond timestamp
	ms := g.clock.Now().UnixMilli()
	for i := 0; i < 6; i++ {
		id[i] = byte(ms >> (40 - 8*i))
	}

	if g.randSource != nil {
		for i := 6; i < 16; i++ {
			id[i] = byte(g.randSource.IntN(256))
		}
	} else if _, err := rand.Read(id[6:]); err != nil {
		panic("gameid: failed to read random bytes: " + err.Error())
	}

	id[6] = (id[6] & 0x0f) | 0x70 // version 7
	id[8] = (id[8] & 0x3f) | 0x80 // RFC 4122 variant
	return id
}

// Validate checks that id is a well-formed game id
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("%w: must be %d characters, got %d", ErrInvalidID, Length, len(id))
	}
	if i := strings.IndexFunc(id, func(r rune) bool { return !strings.ContainsRune(alphabet, r) }); i >= 0 {
		return fmt.Errorf("%w: invalid character %q at position %d", ErrInvalidID, id[i], i)
	}

	raw, err := encoding.DecodeString(id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	if raw[6]>>4 != 7 {
		return fmt.Errorf("%w: not a version 7 id", ErrInvalidID)
	}
	return nil
}
