package repo

import (
	"context"
	"time"

	"github.com/YOHANNES7766/AmenApp/chat/repo/model"
	"github.com/YOHANNES7766/AmenApp/common"

	"gorm.io/gorm"
)

type MessageRepo interface {
	// Append creates the message and bumps the conversation's last-message
	// pointer and updated_at in the same transaction.
	Append(ctx context.Context, conversationID, senderID, receiverID int64, body string) (*model.Message, error)
	// List returns history in insertion order: created_at ascending, ties
	// broken by id ascending, bounded by limit.
	List(ctx context.Context, conversationID int64, limit int) ([]*model.Message, error)
	GetByID(ctx context.Context, id int64) (*model.Message, error)
	// MarkRead flips is_read. Only the receiver may do so; repeating the
	// call is a no-op.
	MarkRead(ctx context.Context, messageID, actingUserID int64) error
}

type messageRepo struct {
	db *gorm.DB
}

func NewMessageRepo(db *gorm.DB) MessageRepo {
	return &messageRepo{db: db}
}

func (r *messageRepo) Append(ctx context.Context, conversationID, senderID, receiverID int64, body string) (*model.Message, error) {
	if body == "" {
		return nil, common.Validation("message body cannot be empty")
	}

	var msg model.Message
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var conv model.Conversation
		if err := tx.First(&conv, conversationID).Error; err != nil {
			return common.FromGorm(err, "conversation not found")
		}

		msg = model.Message{
			ConversationID: conversationID,
			SenderID:       senderID,
			ReceiverID:     receiverID,
			Body:           body,
			IsRead:         false,
		}
		if err := tx.Create(&msg).Error; err != nil {
			return common.FromGorm(err, "conversation not found")
		}

		// The conversation summary must never trail the message itself.
		err := tx.Model(&model.Conversation{}).
			Where("id = ?", conversationID).
			Updates(map[string]interface{}{
				"last_message_id": msg.ID,
				"updated_at":      time.Now(),
			}).Error
		if err != nil {
			return common.FromGorm(err, "conversation not found")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepo) List(ctx context.Context, conversationID int64, limit int) ([]*model.Message, error) {
	var messages []*model.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, common.FromGorm(err, "conversation not found")
	}
	return messages, nil
}

func (r *messageRepo) GetByID(ctx context.Context, id int64) (*model.Message, error) {
	var msg model.Message
	if err := r.db.WithContext(ctx).First(&msg, id).Error; err != nil {
		return nil, common.FromGorm(err, "message not found")
	}
	return &msg, nil
}

func (r *messageRepo) MarkRead(ctx context.Context, messageID, actingUserID int64) error {
	var msg model.Message
	if err := r.db.WithContext(ctx).First(&msg, messageID).Error; err != nil {
		return common.FromGorm(err, "message not found")
	}

	if msg.ReceiverID != actingUserID {
		return common.Authorization("only the receiver can mark a message as read")
	}
	if msg.IsRead {
		return nil
	}

	err := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("id = ?", messageID).
		Update("is_read", true).Error
	if err != nil {
		return common.FromGorm(err, "message not found")
	}
	return nil
}
