package deck

import rand "math/rand/v2"

// Size is the number of cards in a standard deck
const Size = NumSuits * NumRanks

// New creates a standard 52-card deck ordered suit-major, ranks ascending.
// Every card starts face down and in play.
func New() []Card {
	cards := make([]Card, 0, Size)
	for suit := Hearts; suit <= Spades; suit++ {
		for rank := Ace; rank <= King; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// Shuffle permutes cards in place with a Fisher–Yates shuffle driven by rng
func Shuffle(cards []Card, rng *rand.Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Index returns the position of a card in an unshuffled deck
func Index(c Card) int {
	return int(c.Suit)*NumRanks + int(c.Rank-Ace)
}
