package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
const (
	// Client to server messages
	MessageTypeSelect MessageType = "select"
	MessageTypeReset  MessageType = "reset"
	MessageTypeState  MessageType = "state"

	// Server to client messages
	MessageTypeGameState MessageType = "game_state"
	MessageTypeError     MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

// Error codes carried in ErrorData
const (
	ErrorCodeInvalidMessage = "invalid_message"
	ErrorCodeUnknownType    = "unknown_message_type"
	ErrorCodeNoAttemptsLeft = "no_attempts_left"
	ErrorCodeInternal       = "internal_error"
)
