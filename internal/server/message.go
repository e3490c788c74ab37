package server

import (
	"encoding/json"
	"time"

	"github.com/lox/pyramid/internal/game"
)

// MessageType represents a WebSocket message type
type MessageType string

const (
	// Client to server
	MessageTypeSelect  MessageType = "select"
	MessageTypeWaste   MessageType = "waste"
	MessageTypeDraw    MessageType = "draw"
	MessageTypeRestart MessageType = "restart"
	MessageTypeHint    MessageType = "hint"

	// Server to client
	MessageTypeSnapshot MessageType = "snapshot"
	MessageTypeEvent    MessageType = "event"
	MessageTypeError    MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

// Error codes carried by MessageTypeError
const (
	ErrCodeInvalidMessage = "invalid_message"
	ErrCodeUnknownType    = "unknown_message_type"
)

// Command is a client request. Fields not used by a type are ignored.
type Command struct {
	Type MessageType `json:"type"`
	Row  int         `json:"row,omitempty"`
	Col  int         `json:"col,omitempty"`
	Seed int64       `json:"seed,omitempty"`
}

// ParseCommand decodes and checks a client frame
func ParseCommand(data []byte) (Command, *ErrorData) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return Command{}, &ErrorData{Code: ErrCodeInvalidMessage, Message: "Failed to parse message: " + err.Error()}
	}

	switch cmd.Type {
	case MessageTypeSelect, MessageTypeWaste, MessageTypeDraw, MessageTypeRestart, MessageTypeHint:
		return cmd, nil
	case "":
		return Command{}, &ErrorData{Code: ErrCodeInvalidMessage, Message: "Missing message type"}
	default:
		return Command{}, &ErrorData{Code: ErrCodeUnknownType, Message: "Unknown message type: " + cmd.Type.String()}
	}
}

// Message is a server to client frame
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a message with data marshalled to JSON
func NewMessage(msgType MessageType, data any) (*Message, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		Data:      raw,
		Timestamp: time.Now(),
	}, nil
}

// ErrorData is the payload of an error message
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// EventData is the payload of an event message
type EventData struct {
	Type  game.EventType `json:"type"`
	Text  string         `json:"text"`
	Score int            `json:"score"`
	Moves int            `json:"moves"`
}

// HintData is the payload of a hint message: every legal move, with the
// greedy choice first
type HintData []game.Move
