package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/YOHANNES7766/AmenApp/chat/dto"
	"github.com/YOHANNES7766/AmenApp/chat/repo"
	chatmodel "github.com/YOHANNES7766/AmenApp/chat/repo/model"
	"github.com/YOHANNES7766/AmenApp/common"
	userrepo "github.com/YOHANNES7766/AmenApp/user/repo"
	usermodel "github.com/YOHANNES7766/AmenApp/user/repo/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeNotifier struct {
	conversationID int64
	payload        []byte
	excluded       int64
	calls          int
}

func (f *fakeNotifier) Publish(conversationID int64, payload []byte, excludeUserID int64) int {
	f.conversationID = conversationID
	f.payload = payload
	f.excluded = excludeUserID
	f.calls++
	return 1
}

type fakeCache struct {
	entries map[int64]*repo.CachedConversation
	gets    int
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[int64]*repo.CachedConversation)}
}

func (f *fakeCache) GetConversation(_ context.Context, conversationID int64) (*repo.CachedConversation, error) {
	f.gets++
	return f.entries[conversationID], nil
}

func (f *fakeCache) SetConversation(_ context.Context, conv *repo.CachedConversation) error {
	f.sets++
	f.entries[conv.ID] = conv
	return nil
}

func setupService(t *testing.T) (*ChatService, *fakeNotifier, *fakeCache, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	err = db.AutoMigrate(&usermodel.User{}, &chatmodel.Conversation{}, &chatmodel.Message{})
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	seed := []usermodel.User{
		{Name: "Abel", Email: "abel@example.com", PasswordHash: "x", ProfilePicture: "abel.png", Approved: true},
		{Name: "Beza", Email: "beza@example.com", PasswordHash: "x", ProfilePicture: "beza.png", Approved: true},
		{Name: "Chala", Email: "chala@example.com", PasswordHash: "x", Approved: false},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	notifier := &fakeNotifier{}
	cache := newFakeCache()
	svc := NewChatService(
		repo.NewConversationRepo(db),
		repo.NewMessageRepo(db),
		cache,
		userrepo.NewUserRepo(db),
		notifier,
		zap.NewNop(),
	)
	return svc, notifier, cache, db
}

func TestSendMessage(t *testing.T) {
	svc, notifier, _, db := setupService(t)
	ctx := context.Background()

	sent, err := svc.SendMessage(ctx, 1, 2, "hi")
	require.NoError(t, err)
	assert.NotZero(t, sent.ConversationID)
	assert.Equal(t, "hi", sent.Message.Body)
	assert.Equal(t, int64(1), sent.Message.SenderID)
	assert.False(t, sent.Message.IsRead)
	require.NotNil(t, sent.OtherUser)
	assert.Equal(t, "Beza", sent.OtherUser.Name)

	// The broadcast carries the full message plus the sender profile and
	// excludes the sender's own connection.
	require.Equal(t, 1, notifier.calls)
	assert.Equal(t, sent.ConversationID, notifier.conversationID)
	assert.Equal(t, int64(1), notifier.excluded)

	var event dto.MessageSentEvent
	require.NoError(t, json.Unmarshal(notifier.payload, &event))
	assert.Equal(t, dto.MessageSentEventName, event.Event)
	assert.Equal(t, dto.MessageSentEventVersion, event.Version)
	assert.Equal(t, "hi", event.Message.Body)
	require.NotNil(t, event.Message.Sender)
	assert.Equal(t, "Abel", event.Message.Sender.Name)
	assert.Equal(t, "abel.png", event.Message.Sender.ProfilePicture)

	// A second message reuses the conversation and moves the pointer.
	again, err := svc.SendMessage(ctx, 2, 1, "hello back")
	require.NoError(t, err)
	assert.Equal(t, sent.ConversationID, again.ConversationID)

	var count int64
	db.Model(&chatmodel.Conversation{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var conv chatmodel.Conversation
	require.NoError(t, db.First(&conv, sent.ConversationID).Error)
	require.NotNil(t, conv.LastMessageID)
	assert.Equal(t, again.Message.ID, *conv.LastMessageID)
}

func TestSendMessageValidation(t *testing.T) {
	svc, notifier, _, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, 1, 2, "")
	require.Error(t, err)
	assert.Equal(t, common.KindValidation, common.KindOf(err))

	_, err = svc.SendMessage(ctx, 1, 999, "hi")
	require.Error(t, err)
	assert.Equal(t, common.KindValidation, common.KindOf(err))

	assert.Zero(t, notifier.calls, "nothing published for rejected messages")
}

func TestGetConversations(t *testing.T) {
	svc, _, _, _ := setupService(t)
	ctx := context.Background()

	first, err := svc.SendMessage(ctx, 1, 2, "to beza")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := svc.SendMessage(ctx, 3, 1, "from chala")
	require.NoError(t, err)

	summaries, err := svc.GetConversations(ctx, 1)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Newest conversation first, peer profile attached.
	assert.Equal(t, second.ConversationID, summaries[0].ID)
	require.NotNil(t, summaries[0].OtherUser)
	assert.Equal(t, "Chala", summaries[0].OtherUser.Name)
	require.NotNil(t, summaries[0].LastMessage)
	assert.Equal(t, "from chala", summaries[0].LastMessage.Body)

	assert.Equal(t, first.ConversationID, summaries[1].ID)
	assert.Equal(t, "Beza", summaries[1].OtherUser.Name)
}

func TestGetMessagesAuthorization(t *testing.T) {
	svc, _, _, _ := setupService(t)
	ctx := context.Background()

	sent, err := svc.SendMessage(ctx, 1, 2, "private")
	require.NoError(t, err)

	history, err := svc.GetMessages(ctx, 2, sent.ConversationID, 0)
	require.NoError(t, err)
	require.Len(t, history.Messages, 1)
	assert.Equal(t, "private", history.Messages[0].Body)
	require.NotNil(t, history.Messages[0].Sender)
	assert.Equal(t, "Abel", history.Messages[0].Sender.Name)
	assert.Equal(t, "Abel", history.OtherUser.Name)

	_, err = svc.GetMessages(ctx, 3, sent.ConversationID, 0)
	require.Error(t, err)
	assert.Equal(t, common.KindAuthorization, common.KindOf(err))
}

func TestGetSavedMessages(t *testing.T) {
	svc, _, _, db := setupService(t)
	ctx := context.Background()

	saved, err := svc.GetSavedMessages(ctx, 1)
	require.NoError(t, err)
	assert.NotZero(t, saved.ConversationID)
	assert.Empty(t, saved.Messages)
	require.NotNil(t, saved.OtherUser)
	assert.Equal(t, int64(1), saved.OtherUser.ID, "self-chat peer is the user itself")

	_, err = svc.SendMessage(ctx, 1, 1, "note to self")
	require.NoError(t, err)

	again, err := svc.GetSavedMessages(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, saved.ConversationID, again.ConversationID)
	require.Len(t, again.Messages, 1)
	assert.Equal(t, "note to self", again.Messages[0].Body)

	var count int64
	db.Model(&chatmodel.Conversation{}).Where("user_one_id = user_two_id").Count(&count)
	assert.Equal(t, int64(1), count, "exactly one self-chat per user")
}

func TestMarkReadFlow(t *testing.T) {
	svc, _, _, _ := setupService(t)
	ctx := context.Background()

	sent, err := svc.SendMessage(ctx, 1, 2, "unread")
	require.NoError(t, err)

	err = svc.MarkRead(ctx, 3, sent.Message.ID)
	require.Error(t, err)
	assert.Equal(t, common.KindAuthorization, common.KindOf(err))

	require.NoError(t, svc.MarkRead(ctx, 2, sent.Message.ID))
	require.NoError(t, svc.MarkRead(ctx, 2, sent.Message.ID), "second mark-read must be a no-op")

	history, err := svc.GetMessages(ctx, 2, sent.ConversationID, 0)
	require.NoError(t, err)
	assert.True(t, history.Messages[0].IsRead)
}

func TestAuthorizeSubscription(t *testing.T) {
	svc, _, cache, _ := setupService(t)
	ctx := context.Background()

	sent, err := svc.SendMessage(ctx, 1, 2, "hi")
	require.NoError(t, err)

	require.NoError(t, svc.AuthorizeSubscription(ctx, 1, sent.ConversationID))
	require.NoError(t, svc.AuthorizeSubscription(ctx, 2, sent.ConversationID))

	err = svc.AuthorizeSubscription(ctx, 3, sent.ConversationID)
	require.Error(t, err)
	assert.Equal(t, common.KindAuthorization, common.KindOf(err))

	err = svc.AuthorizeSubscription(ctx, 1, sent.ConversationID+100)
	require.Error(t, err)
	assert.Equal(t, common.KindNotFound, common.KindOf(err))

	// The participant pair is cached for subsequent checks.
	assert.NotNil(t, cache.entries[sent.ConversationID])
	assert.Greater(t, cache.gets, 0)
}

func TestAuthorizeSubscriptionUsesCache(t *testing.T) {
	svc, _, cache, _ := setupService(t)
	ctx := context.Background()

	// Entry present only in the cache: the store is never consulted, so a
	// hit on a conversation id absent from the database still authorizes.
	cache.entries[42] = &repo.CachedConversation{ID: 42, UserOneID: 1, UserTwoID: 2}

	require.NoError(t, svc.AuthorizeSubscription(ctx, 1, 42))
	err := svc.AuthorizeSubscription(ctx, 3, 42)
	require.Error(t, err)
	assert.Equal(t, common.KindAuthorization, common.KindOf(err))
}

func TestListChatUsers(t *testing.T) {
	svc, _, _, _ := setupService(t)
	ctx := context.Background()

	users, err := svc.ListChatUsers(ctx, 1)
	require.NoError(t, err)
	require.Len(t, users, 1, "only approved users excluding the caller")
	assert.Equal(t, "Beza", users[0].Name)
}
