package repo

import (
	"context"

	"github.com/YOHANNES7766/AmenApp/chat/repo/model"
	"github.com/YOHANNES7766/AmenApp/common"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConversationWithLast pairs a conversation with its most recent message for
// the recency listing.
type ConversationWithLast struct {
	Conversation *model.Conversation
	LastMessage  *model.Message
}

type ConversationRepo interface {
	// FindOrCreate resolves the single conversation for the unordered pair,
	// creating it when absent. a == b yields the self-chat.
	FindOrCreate(ctx context.Context, a, b int64) (*model.Conversation, error)
	GetByID(ctx context.Context, id int64) (*model.Conversation, error)
	// ListForUser returns the user's conversations ordered by recency,
	// bounded by limit, each joined with its last message.
	ListForUser(ctx context.Context, userID int64, limit int) ([]*ConversationWithLast, error)
}

type conversationRepo struct {
	db *gorm.DB
}

func NewConversationRepo(db *gorm.DB) ConversationRepo {
	return &conversationRepo{db: db}
}

// canonicalPair stores the smaller id first so that (a,b) and (b,a) map to
// the same row and the unique index can arbitrate concurrent creates.
func canonicalPair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}

func (r *conversationRepo) FindOrCreate(ctx context.Context, a, b int64) (*model.Conversation, error) {
	one, two := canonicalPair(a, b)

	conv := model.Conversation{UserOneID: one, UserTwoID: two}
	// DoNothing makes the insert a no-op when the pair already exists, so a
	// concurrent create cannot produce a second row. The follow-up read
	// covers both the fresh and the pre-existing case.
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_one_id"}, {Name: "user_two_id"}},
			DoNothing: true,
		}).
		Create(&conv).Error
	if err != nil {
		return nil, common.FromGorm(err, "conversation not found")
	}

	var out model.Conversation
	err = r.db.WithContext(ctx).
		Where("user_one_id = ? AND user_two_id = ?", one, two).
		First(&out).Error
	if err != nil {
		return nil, common.FromGorm(err, "conversation not found")
	}
	return &out, nil
}

func (r *conversationRepo) GetByID(ctx context.Context, id int64) (*model.Conversation, error) {
	var conv model.Conversation
	if err := r.db.WithContext(ctx).First(&conv, id).Error; err != nil {
		return nil, common.FromGorm(err, "conversation not found")
	}
	return &conv, nil
}

func (r *conversationRepo) ListForUser(ctx context.Context, userID int64, limit int) ([]*ConversationWithLast, error) {
	var conversations []*model.Conversation
	err := r.db.WithContext(ctx).
		Where("user_one_id = ? OR user_two_id = ?", userID, userID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&conversations).Error
	if err != nil {
		return nil, common.FromGorm(err, "conversation not found")
	}

	// Batch-load the last messages instead of one query per conversation.
	var lastIDs []int64
	for _, conv := range conversations {
		if conv.LastMessageID != nil {
			lastIDs = append(lastIDs, *conv.LastMessageID)
		}
	}

	lastByID := make(map[int64]*model.Message, len(lastIDs))
	if len(lastIDs) > 0 {
		var messages []*model.Message
		if err := r.db.WithContext(ctx).Where("id IN ?", lastIDs).Find(&messages).Error; err != nil {
			return nil, common.FromGorm(err, "message not found")
		}
		for _, msg := range messages {
			lastByID[msg.ID] = msg
		}
	}

	result := make([]*ConversationWithLast, 0, len(conversations))
	for _, conv := range conversations {
		item := &ConversationWithLast{Conversation: conv}
		if conv.LastMessageID != nil {
			item.LastMessage = lastByID[*conv.LastMessageID]
		}
		result = append(result, item)
	}
	return result, nil
}
