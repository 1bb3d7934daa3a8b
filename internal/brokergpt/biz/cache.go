package biz

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/kart-io/logger"
	goredis "github.com/redis/go-redis/v9"
)

// ReplyCacheConfig configures the assistant reply cache.
type ReplyCacheConfig struct {
	// Enabled toggles the cache.
	Enabled bool
	// TTL is how long a cached reply stays valid.
	TTL time.Duration
	// KeyPrefix namespaces the cache keys.
	KeyPrefix string
}

// DefaultReplyCacheConfig returns the default reply cache configuration.
func DefaultReplyCacheConfig() *ReplyCacheConfig {
	return &ReplyCacheConfig{
		Enabled:   false,
		TTL:       1 * time.Hour,
		KeyPrefix: "brokergpt:chat:",
	}
}

// ReplyCache caches assistant replies in Redis, keyed by the conversation
// scope and the exact prompt. Redis being down is a cache miss, never a
// chat failure.
type ReplyCache struct {
	redis  *goredis.Client
	config *ReplyCacheConfig
}

// NewReplyCache creates a reply cache. redis may be nil; every lookup then
// misses and every store is a no-op.
func NewReplyCache(redis *goredis.Client, config *ReplyCacheConfig) *ReplyCache {
	if config == nil {
		config = DefaultReplyCacheConfig()
	}
	return &ReplyCache{redis: redis, config: config}
}

func (c *ReplyCache) key(clientID *uint64, prompt string) string {
	scope := "global"
	if clientID != nil {
		scope = fmt.Sprintf("client:%d", *clientID)
	}
	hash := sha256.Sum256([]byte(scope + "\x00" + prompt))
	return c.config.KeyPrefix + hex.EncodeToString(hash[:])
}

// Get looks up a cached reply for a prompt.
func (c *ReplyCache) Get(ctx context.Context, clientID *uint64, prompt string) (string, bool) {
	if !c.config.Enabled || c.redis == nil {
		return "", false
	}

	key := c.key(clientID, prompt)
	reply, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		if err != goredis.Nil {
			logger.Warnw("reply cache lookup failed", "key", key, "error", err.Error())
		}
		return "", false
	}

	logger.Debugw("reply cache hit", "key", key)
	return reply, true
}

// Set caches a reply for a prompt.
func (c *ReplyCache) Set(ctx context.Context, clientID *uint64, prompt, reply string) {
	if !c.config.Enabled || c.redis == nil {
		return
	}

	key := c.key(clientID, prompt)
	if err := c.redis.Set(ctx, key, reply, c.config.TTL).Err(); err != nil {
		logger.Warnw("reply cache store failed", "key", key, "error", err.Error())
	}
}
