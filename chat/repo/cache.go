package repo

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// CachedConversation is the participant pair kept hot for channel
// authorization checks.
type CachedConversation struct {
	ID        int64 `json:"id"`
	UserOneID int64 `json:"user_one_id"`
	UserTwoID int64 `json:"user_two_id"`
}

// ConversationCache is consulted on every subscription attempt. Entries
// expire quickly so the cache never outlives a plausible data correction.
type ConversationCache interface {
	GetConversation(ctx context.Context, conversationID int64) (*CachedConversation, error)
	SetConversation(ctx context.Context, conv *CachedConversation) error
}

const conversationCacheTTL = time.Minute

type conversationCache struct {
	rdb *redis.Client
}

func NewConversationCache(rdb *redis.Client) ConversationCache {
	return &conversationCache{rdb: rdb}
}

func cacheKey(conversationID int64) string {
	return "conversation:" + strconv.FormatInt(conversationID, 10)
}

// GetConversation returns (nil, nil) on a cache miss.
func (r *conversationCache) GetConversation(ctx context.Context, conversationID int64) (*CachedConversation, error) {
	val, err := r.rdb.Get(ctx, cacheKey(conversationID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var conv CachedConversation
	if err := json.Unmarshal([]byte(val), &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *conversationCache) SetConversation(ctx context.Context, conv *CachedConversation) error {
	data, err := json.Marshal(conv)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, cacheKey(conv.ID), data, conversationCacheTTL).Err()
}
