package domain

// WebSocket event types from client.
const (
	EventJoinChat    = "joinChat"
	EventSendMessage = "sendMessage"
	EventGetMessages = "getMessages"
)

// WebSocket event types to client.
const (
	EventReceiveMessage = "receiveMessage"
	EventError          = "error"
)

// Error text sent to clients when a booking is missing or not accepted.
// Both cases collapse to the same message on the wire; internally they are
// distinct errors.
const ChatUnavailableMessage = "Chat is only available for accepted bookings."

// JoinRoomRequiredMessage is sent when a connection tries to send before
// joining the booking's room.
const JoinRoomRequiredMessage = "Join the booking chat before sending messages."

// WSEnvelope is the base structure for all inbound WebSocket events.
type WSEnvelope struct {
	Type string `json:"type"`
}

// Client -> Server events

type JoinChatEvent struct {
	Type      string `json:"type"`
	BookingID string `json:"bookingId"`
	UserID    string `json:"userId"`
}

type SendMessageEvent struct {
	Type       string `json:"type"`
	BookingID  string `json:"bookingId"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Message    string `json:"message"`
}

type GetMessagesEvent struct {
	Type      string `json:"type"`
	BookingID string `json:"bookingId"`
}

// Server -> Client events

type ReceiveMessageEvent struct {
	Type      string        `json:"type"`
	BookingID string        `json:"bookingId"`
	Messages  []ChatMessage `json:"messages"`
}

type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewErrorEvent builds an error event for the caller.
func NewErrorEvent(message string) *ErrorEvent {
	return &ErrorEvent{
		Type:    EventError,
		Message: message,
	}
}

// NewReceiveMessageEvent builds a history event for a booking.
func NewReceiveMessageEvent(bookingID string, messages []ChatMessage) *ReceiveMessageEvent {
	if messages == nil {
		messages = []ChatMessage{}
	}
	return &ReceiveMessageEvent{
		Type:      EventReceiveMessage,
		BookingID: bookingID,
		Messages:  messages,
	}
}
