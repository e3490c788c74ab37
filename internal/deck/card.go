package deck

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCard is returned when a card code cannot be parsed
var ErrInvalidCard = errors.New("invalid card")

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// NumSuits is the number of suits in a standard deck
const NumSuits = 4

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Letter returns the single-letter code of a suit (H, D, C, S)
func (s Suit) Letter() byte {
	if s < Hearts || s > Spades {
		return '?'
	}
	return "HDCS"[s]
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Aces are low.
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// NumRanks is the number of ranks per suit
const NumRanks = 13

// PairSum is the rank total two cards must reach to be removed together
const PairSum = 13

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Ten:
		return "10"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	if r > Ace && r < Ten {
		return fmt.Sprintf("%d", int(r))
	}
	return "?"
}

// Letter returns the single-character code of a rank, using T for ten
func (r Rank) Letter() byte {
	if r < Ace || r > King {
		return '?'
	}
	return "A23456789TJQK"[r-1]
}

// Card is a playing card plus its play state. Rank and Suit never change
// once the deck is built; FaceUp and InPlay are toggled by the game.
type Card struct {
	Rank   Rank
	Suit   Suit
	FaceUp bool
	InPlay bool
}

// NewCard creates a face-down card that is in play
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank, InPlay: true}
}

// String returns the string representation of a card (e.g., "K♠")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Code returns the two-character code of a card (e.g., "KS", "TH")
func (c Card) Code() string {
	return string([]byte{c.Rank.Letter(), c.Suit.Letter()})
}

// Valid reports whether rank and suit are within range
func (c Card) Valid() bool {
	return c.Rank >= Ace && c.Rank <= King && c.Suit >= Hearts && c.Suit <= Spades
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// IsKing returns true if the card is a King
func (c Card) IsKing() bool {
	return c.Rank == King
}

// SameIdentity reports whether two cards have the same rank and suit,
// ignoring play state
func (c Card) SameIdentity(other Card) bool {
	return c.Rank == other.Rank && c.Suit == other.Suit
}

// ParseCard parses a two-character card code such as "KS", "th" or "10h"
func ParseCard(code string) (Card, error) {
	s := strings.ToUpper(strings.TrimSpace(code))
	if strings.HasPrefix(s, "10") {
		s = "T" + s[2:]
	}
	if len(s) != 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, code)
	}

	rank := Rank(strings.IndexByte("A23456789TJQK", s[0]) + 1)
	if rank < Ace {
		return Card{}, fmt.Errorf("%w: bad rank %q", ErrInvalidCard, s[0])
	}
	suit := Suit(strings.IndexByte("HDCS", s[1]))
	if suit < Hearts {
		return Card{}, fmt.Errorf("%w: bad suit %q", ErrInvalidCard, s[1])
	}

	return NewCard(suit, rank), nil
}

// ParseCards parses a whitespace or comma separated list of card codes
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for tests.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}
