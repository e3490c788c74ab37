package game

import (
	"fmt"
	"time"

	"github.com/lox/pyramid/internal/deck"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	ShowScore     bool // Append the running score to removals
	ShowSelection bool // Include select/deselect chatter (noisy in logs)
	UseCodes      bool // Print cards as "TH" instead of "10♥"
}

// EventFormatter turns game events into single-line, human-readable text
// for move logs and status bars
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// Format returns the text for an event, or "" when the options hide it
func (ef *EventFormatter) Format(event Event) string {
	switch e := event.(type) {
	case GameStartEvent:
		return fmt.Sprintf("Game %s • seed %d", e.GameID, e.Seed)
	case CardSelectedEvent:
		if !ef.opts.ShowSelection {
			return ""
		}
		return fmt.Sprintf("Selected %s", ef.card(e.Card))
	case SelectionClearedEvent:
		if !ef.opts.ShowSelection {
			return ""
		}
		return "Selection cleared"
	case KingRemovedEvent:
		return ef.withScore(fmt.Sprintf("Removed %s", ef.card(e.Card)), e.Score)
	case PairRemovedEvent:
		return ef.withScore(fmt.Sprintf("Removed %s + %s",
			ef.card(e.First),
			ef.card(e.Second)), e.Score)
	case PairRejectedEvent:
		return fmt.Sprintf("%s + %s does not make 13",
			ef.card(e.First),
			ef.card(e.Second))
	case CardDrawnEvent:
		return fmt.Sprintf("Drew %s (%d left)", ef.card(e.Card), e.StockLeft)
	case StockRecycledEvent:
		return fmt.Sprintf("Stock recycled • %d cards", e.Cards)
	case GameWonEvent:
		return fmt.Sprintf("*** WON *** score %d in %d moves (%s)", e.Score, e.Moves, e.Elapsed.Round(time.Second))
	case GameLostEvent:
		return fmt.Sprintf("*** NO MOVES LEFT *** score %d, %d cards on the pyramid", e.Score, e.Remaining)
	default:
		return event.EventType().String()
	}
}

func (ef *EventFormatter) card(c deck.Card) string {
	if ef.opts.UseCodes {
		return c.Code()
	}
	return c.String()
}

func (ef *EventFormatter) withScore(text string, score int) string {
	if !ef.opts.ShowScore {
		return text
	}
	return fmt.Sprintf("%s (score %d)", text, score)
}
