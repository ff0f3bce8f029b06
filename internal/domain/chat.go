package domain

import "time"

// ChatMessage is one entry in a booking's conversation. Messages are
// insert-only; history is never reordered or deleted.
type ChatMessage struct {
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
}

// ChatSession is the durable per-booking message log. At most one session
// exists per booking; it is created lazily on the first message send.
type ChatSession struct {
	ID        string        `json:"id"`
	BookingID string        `json:"bookingId"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt time.Time     `json:"createdAt"`
}

// ChatSessionModel is the GORM model for the chat_sessions table.
type ChatSessionModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	BookingID string    `gorm:"type:varchar(36);uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for ChatSessionModel.
func (ChatSessionModel) TableName() string {
	return "chat_sessions"
}

// ChatMessageModel is the GORM model for the chat_messages table. The
// auto-increment primary key preserves append order under concurrent
// writers; appends are plain inserts, so no message is ever lost to a
// read-modify-write race.
type ChatMessageModel struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	SessionID  string `gorm:"type:varchar(36);index;not null"`
	SenderID   string `gorm:"type:varchar(36);not null"`
	ReceiverID string `gorm:"type:varchar(36);not null"`
	Text       string `gorm:"type:text;not null"`
	Timestamp  time.Time
}

// TableName specifies the table name for ChatMessageModel.
func (ChatMessageModel) TableName() string {
	return "chat_messages"
}

// ToDomain converts ChatMessageModel to a domain ChatMessage.
func (m *ChatMessageModel) ToDomain() ChatMessage {
	return ChatMessage{
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Text:       m.Text,
		Timestamp:  m.Timestamp,
	}
}
