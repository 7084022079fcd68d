package clients

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/valkey-io/valkey-go"

	"github.com/iamyashsharma43/SENTIFY/internal/config"
	"github.com/iamyashsharma43/SENTIFY/internal/constants"
	"github.com/iamyashsharma43/SENTIFY/internal/models"
)

// CacheStore is the key/value store behind CachedAnalyzer.
type CacheStore interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// CachedAnalyzer memoizes provider answers by text. Cache failures are logged
// and the call falls through to the wrapped analyzer. Only provider answers
// are cached; persistence of every request happens upstream regardless.
type CachedAnalyzer struct {
	next   SentimentAnalyzer
	store  CacheStore
	ttl    time.Duration
	prefix string
}

// NewCachedAnalyzer wraps next with a cache.
func NewCachedAnalyzer(next SentimentAnalyzer, store CacheStore, ttl time.Duration, prefix string) *CachedAnalyzer {
	if ttl <= 0 {
		ttl = constants.DefaultCacheTTL
	}
	if prefix == "" {
		prefix = constants.DefaultCacheKeyPrefix
	}
	return &CachedAnalyzer{next: next, store: store, ttl: ttl, prefix: prefix}
}

// AnalyzeSentiment returns the cached label or asks the wrapped analyzer.
func (c *CachedAnalyzer) AnalyzeSentiment(ctx context.Context, text string) (string, error) {
	key := c.key("sentiment", text)
	if label, ok := c.get(ctx, key); ok {
		return label, nil
	}

	label, err := c.next.AnalyzeSentiment(ctx, text)
	if err != nil {
		return "", err
	}
	c.set(ctx, key, label)
	return label, nil
}

// AnalyzeEmotions returns the cached emotions or asks the wrapped analyzer.
func (c *CachedAnalyzer) AnalyzeEmotions(ctx context.Context, text string) (models.Emotions, error) {
	key := c.key("emotion", text)
	if raw, ok := c.get(ctx, key); ok {
		var emotions models.Emotions
		if err := json.Unmarshal([]byte(raw), &emotions); err == nil {
			return emotions, nil
		}
		log.Warn().Str("key", key).Msg("Discarding unreadable cached emotions")
	}

	emotions, err := c.next.AnalyzeEmotions(ctx, text)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(emotions); err == nil {
		c.set(ctx, key, string(raw))
	}
	return emotions, nil
}

func (c *CachedAnalyzer) key(kind, text string) string {
	sum := sha256.Sum256([]byte(text))
	return c.prefix + kind + ":" + hex.EncodeToString(sum[:])
}

func (c *CachedAnalyzer) get(ctx context.Context, key string) (string, bool) {
	value, ok, err := c.store.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
		return "", false
	}
	return value, ok
}

func (c *CachedAnalyzer) set(ctx context.Context, key, value string) {
	if err := c.store.Set(ctx, key, value, c.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

// ValkeyStore is a CacheStore backed by Valkey.
type ValkeyStore struct {
	client valkey.Client
}

// NewValkeyStore connects to Valkey and verifies the connection with PING.
func NewValkeyStore(ctx context.Context, cfg *config.CacheSettings) (*ValkeyStore, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:      []string{cfg.Address},
		Password:         cfg.Password,
		ConnWriteTimeout: constants.CacheDialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create valkey client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, constants.CacheDialTimeout)
	defer cancel()

	if err := client.Do(pingCtx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping valkey: %w", err)
	}

	log.Info().Str("address", cfg.Address).Msg("Connected to analysis cache")
	return &ValkeyStore{client: client}, nil
}

// Get implements CacheStore.
func (s *ValkeyStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Do(ctx, s.client.B().Get().Key(key).Build()).ToString()
	if valkey.IsValkeyNil(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set implements CacheStore.
func (s *ValkeyStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	seconds := int64(ttl / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	return s.client.Do(ctx, s.client.B().Setex().Key(key).Seconds(seconds).Value(value).Build()).Error()
}

// Close releases the Valkey connections.
func (s *ValkeyStore) Close() {
	s.client.Close()
}
