package model

import "time"

// Conversation is the durable 1:1 thread between two users. The pair is
// stored in canonical order (UserOneID <= UserTwoID) so the composite
// unique index guarantees at most one conversation per unordered pair.
// UserOneID == UserTwoID is the "saved messages" self-chat.
type Conversation struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserOneID     int64     `gorm:"not null;uniqueIndex:conversations_pair_key,priority:1" json:"user_one_id"`
	UserTwoID     int64     `gorm:"not null;uniqueIndex:conversations_pair_key,priority:2" json:"user_two_id"`
	LastMessageID *int64    `gorm:"index" json:"last_message_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `gorm:"index" json:"updated_at"`
}

// Message belongs to one conversation. Rows are only ever created and have
// a single mutation: flipping IsRead.
type Message struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ConversationID int64     `gorm:"not null;index" json:"conversation_id"`
	SenderID       int64     `gorm:"not null;index" json:"sender_id"`
	ReceiverID     int64     `gorm:"not null;index" json:"receiver_id"`
	Body           string    `gorm:"type:text;not null" json:"message"`
	IsRead         bool      `gorm:"default:false" json:"is_read"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HasParticipant reports whether the user belongs to the conversation.
func (c *Conversation) HasParticipant(userID int64) bool {
	return c.UserOneID == userID || c.UserTwoID == userID
}

// OtherParticipant returns the peer of the given user. For the self-chat it
// returns the user itself.
func (c *Conversation) OtherParticipant(userID int64) int64 {
	if c.UserOneID == userID {
		return c.UserTwoID
	}
	return c.UserOneID
}
