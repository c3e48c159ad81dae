package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeSelect         MessageType = "select"
	MessageTypeClearSelection MessageType = "clearSelection"
	MessageTypeCommit         MessageType = "commit"
	MessageTypeMove           MessageType = "move"
	MessageTypeRestart        MessageType = "restart"
	MessageTypeGameState      MessageType = "gameState"
	MessageTypeError          MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ErrorPayload is the body of a MessageTypeError message.
type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage marshals payload into a message of type t.
func NewMessage(t MessageType, payload any) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}
