package llm

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/akorzun/planassay/internal/cache"
)

// CachedClient wraps a provider client with the layered response cache so
// re-running a batch with identical inputs does not re-bill the API.
type CachedClient struct {
	inner  Client
	store  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedClient wraps a client with caching
func NewCachedClient(inner Client, store cache.Cache, ttl time.Duration, logger *zap.Logger) *CachedClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedClient{inner: inner, store: store, ttl: ttl, logger: logger}
}

// Name returns the wrapped provider's name
func (c *CachedClient) Name() string {
	return c.inner.Name()
}

// IsAvailable delegates to the wrapped provider
func (c *CachedClient) IsAvailable(ctx context.Context) bool {
	return c.inner.IsAvailable(ctx)
}

// Complete serves identical requests from cache, keyed by provider, model,
// and full prompt content.
func (c *CachedClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	key := cache.Key(c.inner.Name(), req.Model, req.System, req.Prompt)

	if data, found := c.store.Get(key); found {
		var resp CompletionResponse
		if err := json.Unmarshal(data, &resp); err == nil {
			return &resp, nil
		}
		// Corrupt entry; fall through to a fresh call
		_ = c.store.Delete(key)
	}

	resp, err := c.inner.Complete(ctx, req)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(resp); err == nil {
		if err := c.store.Set(key, data, c.ttl); err != nil {
			c.logger.Warn("cache write failed", zap.Error(err))
		}
	}

	return resp, nil
}
