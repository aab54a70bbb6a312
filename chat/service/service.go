package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/YOHANNES7766/AmenApp/chat/dto"
	"github.com/YOHANNES7766/AmenApp/chat/repo"
	"github.com/YOHANNES7766/AmenApp/chat/repo/model"
	"github.com/YOHANNES7766/AmenApp/common"
	userrepo "github.com/YOHANNES7766/AmenApp/user/repo"
	usermodel "github.com/YOHANNES7766/AmenApp/user/repo/model"

	"go.uber.org/zap"
)

const (
	conversationPageSize = 50
	historyPageSize      = 100
	maxHistoryPageSize   = 500
)

// Notifier fans a payload out to the subscribers of a conversation's
// channel, excluding the given user. Best effort, never blocking.
type Notifier interface {
	Publish(conversationID int64, payload []byte, excludeUserID int64) int
}

type ChatService struct {
	conversations repo.ConversationRepo
	messages      repo.MessageRepo
	cache         repo.ConversationCache
	users         userrepo.UserRepo
	notifier      Notifier
	logger        *zap.Logger
}

func NewChatService(
	conversations repo.ConversationRepo,
	messages repo.MessageRepo,
	cache repo.ConversationCache,
	users userrepo.UserRepo,
	notifier Notifier,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		conversations: conversations,
		messages:      messages,
		cache:         cache,
		users:         users,
		notifier:      notifier,
		logger:        logger,
	}
}

// SendMessage resolves the conversation, appends the message, and notifies
// the other subscribers. Message durability is the correctness guarantee:
// a notifier failure is logged and never surfaced.
func (s *ChatService) SendMessage(ctx context.Context, senderID, receiverID int64, body string) (*dto.SentMessage, error) {
	if body == "" {
		return nil, common.Validation("message body cannot be empty")
	}

	receiver, err := s.users.GetByID(ctx, receiverID)
	if err != nil {
		if common.KindOf(err) == common.KindNotFound {
			return nil, common.Validation("receiver does not exist")
		}
		return nil, fmt.Errorf("fail to resolve receiver: %w", err)
	}

	sender, err := s.users.GetByID(ctx, senderID)
	if err != nil {
		return nil, fmt.Errorf("fail to resolve sender: %w", err)
	}

	conv, err := s.conversations.FindOrCreate(ctx, senderID, receiverID)
	if err != nil {
		return nil, fmt.Errorf("fail to resolve conversation: %w", err)
	}

	msg, err := s.messages.Append(ctx, conv.ID, senderID, receiverID, body)
	if err != nil {
		return nil, fmt.Errorf("fail to append message: %w", err)
	}

	payload := messagePayload(msg, userInfo(sender))
	s.publishMessageSent(payload, senderID)
	s.warmCache(ctx, conv)

	return &dto.SentMessage{
		ConversationID: conv.ID,
		OtherUser:      userInfo(receiver),
		Message:        payload,
	}, nil
}

// GetConversations lists the caller's conversations newest first, each with
// its last message and the other participant's public profile.
func (s *ChatService) GetConversations(ctx context.Context, userID int64) ([]*dto.ConversationSummary, error) {
	items, err := s.conversations.ListForUser(ctx, userID, conversationPageSize)
	if err != nil {
		return nil, fmt.Errorf("fail to get conversations: %w", err)
	}

	var peerIDs []int64
	for _, item := range items {
		peerIDs = append(peerIDs, item.Conversation.OtherParticipant(userID))
		if item.LastMessage != nil {
			peerIDs = append(peerIDs, item.LastMessage.SenderID)
		}
	}

	users, err := s.userInfoMap(ctx, peerIDs)
	if err != nil {
		return nil, fmt.Errorf("fail to get conversations: %w", err)
	}

	summaries := make([]*dto.ConversationSummary, 0, len(items))
	for _, item := range items {
		conv := item.Conversation
		summary := &dto.ConversationSummary{
			ID:        conv.ID,
			OtherUser: users[conv.OtherParticipant(userID)],
			UpdatedAt: conv.UpdatedAt,
		}
		if item.LastMessage != nil {
			summary.LastMessage = messagePayload(item.LastMessage, users[item.LastMessage.SenderID])
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// GetMessages returns the ordered history of a conversation the caller
// participates in.
func (s *ChatService) GetMessages(ctx context.Context, userID, conversationID int64, limit int) (*dto.ConversationHistory, error) {
	conv, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("fail to load conversation: %w", err)
	}
	if !conv.HasParticipant(userID) {
		return nil, common.Authorization("not a participant of this conversation")
	}

	return s.history(ctx, conv, userID, limit)
}

// GetSavedMessages is the self-chat convenience: the conversation is
// auto-created on first access.
func (s *ChatService) GetSavedMessages(ctx context.Context, userID int64) (*dto.ConversationHistory, error) {
	conv, err := s.conversations.FindOrCreate(ctx, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("fail to resolve saved messages: %w", err)
	}
	return s.history(ctx, conv, userID, historyPageSize)
}

// MarkRead flips a message's read flag; only its receiver may do so.
func (s *ChatService) MarkRead(ctx context.Context, userID, messageID int64) error {
	if err := s.messages.MarkRead(ctx, messageID, userID); err != nil {
		return fmt.Errorf("fail to mark message %d read: %w", messageID, err)
	}
	return nil
}

// ListChatUsers returns every approved user except the caller.
func (s *ChatService) ListChatUsers(ctx context.Context, userID int64) ([]*usermodel.User, error) {
	users, err := s.users.ListApproved(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fail to list chat users: %w", err)
	}
	return users, nil
}

// AuthorizeSubscription allows joining a conversation's channel only to its
// participants. The participant pair is cached briefly since this runs on
// every subscription attempt.
func (s *ChatService) AuthorizeSubscription(ctx context.Context, userID, conversationID int64) error {
	cached, err := s.cache.GetConversation(ctx, conversationID)
	if err != nil {
		// A broken cache must not take down subscriptions.
		s.logger.Warn("conversation cache read failed", zap.Int64("conversation_id", conversationID), zap.Error(err))
	}

	var one, two int64
	if cached != nil {
		one, two = cached.UserOneID, cached.UserTwoID
	} else {
		conv, err := s.conversations.GetByID(ctx, conversationID)
		if err != nil {
			return fmt.Errorf("fail to authorize subscription: %w", err)
		}
		one, two = conv.UserOneID, conv.UserTwoID
		s.warmCache(ctx, conv)
	}

	if userID != one && userID != two {
		return common.Authorization("not a participant of this conversation")
	}
	return nil
}

func (s *ChatService) history(ctx context.Context, conv *model.Conversation, userID int64, limit int) (*dto.ConversationHistory, error) {
	if limit <= 0 {
		limit = historyPageSize
	}
	if limit > maxHistoryPageSize {
		limit = maxHistoryPageSize
	}

	messages, err := s.messages.List(ctx, conv.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("fail to load messages: %w", err)
	}

	var ids []int64
	for _, msg := range messages {
		ids = append(ids, msg.SenderID)
	}
	ids = append(ids, conv.OtherParticipant(userID))

	users, err := s.userInfoMap(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fail to load messages: %w", err)
	}

	payloads := make([]*dto.MessagePayload, 0, len(messages))
	for _, msg := range messages {
		payloads = append(payloads, messagePayload(msg, users[msg.SenderID]))
	}

	return &dto.ConversationHistory{
		ConversationID: conv.ID,
		OtherUser:      users[conv.OtherParticipant(userID)],
		Messages:       payloads,
	}, nil
}

func (s *ChatService) publishMessageSent(payload *dto.MessagePayload, senderID int64) {
	event := dto.NewMessageSentEvent(payload)
	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn("fail to encode message.sent event", zap.Int64("message_id", payload.ID), zap.Error(err))
		return
	}
	delivered := s.notifier.Publish(payload.ConversationID, data, senderID)
	s.logger.Debug("message.sent published",
		zap.Int64("conversation_id", payload.ConversationID),
		zap.Int64("message_id", payload.ID),
		zap.Int("delivered", delivered),
	)
}

func (s *ChatService) warmCache(ctx context.Context, conv *model.Conversation) {
	err := s.cache.SetConversation(ctx, &repo.CachedConversation{
		ID:        conv.ID,
		UserOneID: conv.UserOneID,
		UserTwoID: conv.UserTwoID,
	})
	if err != nil {
		s.logger.Warn("conversation cache write failed", zap.Int64("conversation_id", conv.ID), zap.Error(err))
	}
}

func (s *ChatService) userInfoMap(ctx context.Context, ids []int64) (map[int64]*dto.UserInfo, error) {
	users, err := s.users.GetByIDs(ctx, dedupe(ids))
	if err != nil {
		return nil, err
	}
	m := make(map[int64]*dto.UserInfo, len(users))
	for _, u := range users {
		m[u.ID] = userInfo(u)
	}
	return m, nil
}

func userInfo(u *usermodel.User) *dto.UserInfo {
	if u == nil {
		return nil
	}
	return &dto.UserInfo{
		ID:             u.ID,
		Name:           u.Name,
		ProfilePicture: u.ProfilePicture,
	}
}

func messagePayload(msg *model.Message, sender *dto.UserInfo) *dto.MessagePayload {
	return &dto.MessagePayload{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		ReceiverID:     msg.ReceiverID,
		Body:           msg.Body,
		IsRead:         msg.IsRead,
		CreatedAt:      msg.CreatedAt,
		Sender:         sender,
	}
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
