package dto

import "time"

// UserInfo is the public profile summary embedded in chat payloads.
type UserInfo struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profile_picture"`
}

// MessagePayload is the full message record plus the denormalized sender,
// so clients need no follow-up fetch.
type MessagePayload struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	SenderID       int64     `json:"sender_id"`
	ReceiverID     int64     `json:"receiver_id"`
	Body           string    `json:"message"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
	Sender         *UserInfo `json:"sender,omitempty"`
}

// ConversationSummary is one row of the recency-ordered conversation list.
type ConversationSummary struct {
	ID          int64           `json:"id"`
	OtherUser   *UserInfo       `json:"other_user"`
	LastMessage *MessagePayload `json:"last_message"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ConversationHistory is a conversation plus its ordered messages.
type ConversationHistory struct {
	ConversationID int64             `json:"conversation_id"`
	OtherUser      *UserInfo         `json:"other_user"`
	Messages       []*MessagePayload `json:"messages"`
}

// SentMessage is the synchronous response to send-message; it mirrors the
// broadcast payload so both delivery paths agree.
type SentMessage struct {
	ConversationID int64           `json:"conversation_id"`
	OtherUser      *UserInfo       `json:"other_user"`
	Message        *MessagePayload `json:"message"`
}

// MessageSentEvent is the single versioned wire schema for the realtime
// message-created notification.
type MessageSentEvent struct {
	Event          string          `json:"event"`
	Version        int             `json:"version"`
	ConversationID int64           `json:"conversation_id"`
	Message        *MessagePayload `json:"message"`
}

const (
	MessageSentEventName    = "message.sent"
	MessageSentEventVersion = 1
)

// NewMessageSentEvent builds the v1 message.sent event.
func NewMessageSentEvent(msg *MessagePayload) *MessageSentEvent {
	return &MessageSentEvent{
		Event:          MessageSentEventName,
		Version:        MessageSentEventVersion,
		ConversationID: msg.ConversationID,
		Message:        msg,
	}
}
