package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"mortgagesim/internal/domain"

	"github.com/redis/go-redis/v9"
)

// ResultCacheRepository stores finished runs. Runs are deterministic for a
// given scenario, market history, strategy and start month, so a hit can
// replace a run.
type ResultCacheRepository interface {
	Get(ctx context.Context, key string) (*domain.Result, error)
	Set(ctx context.Context, key string, result domain.Result) error
}

func ResultCacheKey(scenarioFingerprint, marketDataFingerprint string, strategy domain.Strategy, start domain.MonthYear) string {
	return fmt.Sprintf("mortgagesim:%s:%s:%s:%s", scenarioFingerprint, marketDataFingerprint, strategy, start.Key())
}

type redisResultCacheHandler struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisResultCache(addr string, ttl time.Duration) ResultCacheRepository {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &redisResultCacheHandler{
		client: rdb,
		ttl:    ttl,
	}
}

// Get returns nil without an error on a miss.
func (h redisResultCacheHandler) Get(ctx context.Context, key string) (*domain.Result, error) {
	val, err := h.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read cached result %s: %w", key, err)
	}

	result := domain.Result{}
	if err := json.Unmarshal(val, &result); err != nil {
		return nil, fmt.Errorf("failed to decode cached result %s: %w", key, err)
	}
	return &result, nil
}

func (h redisResultCacheHandler) Set(ctx context.Context, key string, result domain.Result) error {
	bytes, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return h.client.Set(ctx, key, bytes, h.ttl).Err()
}

type memoryResultCacheHandler struct {
	mu   *sync.RWMutex
	Data map[string]domain.Result
}

func NewMemoryResultCache() ResultCacheRepository {
	return &memoryResultCacheHandler{
		mu:   &sync.RWMutex{},
		Data: map[string]domain.Result{},
	}
}

func (h memoryResultCacheHandler) Get(ctx context.Context, key string) (*domain.Result, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	result, ok := h.Data[key]
	if !ok {
		return nil, nil
	}
	return &result, nil
}

func (h memoryResultCacheHandler) Set(ctx context.Context, key string, result domain.Result) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Data[key] = result
	return nil
}
