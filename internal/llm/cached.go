package llm

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultCachePrefix namespaces cached completions in Redis
const DefaultCachePrefix = "career:llm:"

// CachedClient decorates a Client with a Redis response cache. Identical
// prompts and options for the same model reuse the stored content. Redis
// failures are logged and treated as cache misses.
type CachedClient struct {
	next   Client
	rdb    redis.UniversalClient
	ttl    time.Duration
	prefix string
	logger *zap.Logger
}

// NewCachedClient wraps next with a cache stored in rdb for ttl
func NewCachedClient(next Client, rdb redis.UniversalClient, ttl time.Duration, logger *zap.Logger) *CachedClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedClient{
		next:   next,
		rdb:    rdb,
		ttl:    ttl,
		prefix: DefaultCachePrefix,
		logger: logger,
	}
}

// NewRedisClient connects to the Redis server at url and verifies it with a ping
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

// Complete returns a cached completion when one exists, otherwise it calls the
// wrapped client and stores content that parses to a non-empty document.
// Cached completions carry no usage since no tokens were spent.
func (c *CachedClient) Complete(ctx context.Context, systemPrompt, userPrompt string, opts CompletionOptions) (*Completion, error) {
	model := c.next.GetModel(opts.Tier)
	key := c.key(model, systemPrompt, userPrompt, opts)

	content, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		return &Completion{Content: content, Model: model, Cached: true}, nil
	case errors.Is(err, redis.Nil):
	default:
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Warn("llm cache read failed", zap.String("model", model), zap.Error(err))
	}

	resp, err := c.next.Complete(ctx, systemPrompt, userPrompt, opts)
	if err != nil || resp == nil {
		return resp, err
	}

	if len(ParseDocument(resp.Content)) > 0 {
		if err := c.rdb.Set(ctx, key, resp.Content, c.ttl).Err(); err != nil {
			c.logger.Warn("llm cache write failed", zap.String("model", model), zap.Error(err))
		}
	}
	return resp, nil
}

// GetModel returns the wrapped client's model for a tier
func (c *CachedClient) GetModel(tier ModelTier) string {
	return c.next.GetModel(tier)
}

// Close closes the wrapped client. The Redis client is owned by the caller.
func (c *CachedClient) Close() error {
	return c.next.Close()
}

func (c *CachedClient) key(model, systemPrompt, userPrompt string, opts CompletionOptions) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%d\x00%g\x00%t\x00", model, opts.MaxTokens, opts.Temperature, opts.JSONMode)
	h.Write([]byte(systemPrompt))
	h.Write([]byte{0})
	h.Write([]byte(userPrompt))
	return fmt.Sprintf("%s%x", c.prefix, h.Sum(nil))
}
