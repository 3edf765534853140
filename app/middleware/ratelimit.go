package middleware

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/Stefan-migo/businessManagementApp-sub001/global"

	"github.com/redis/go-redis/v9"
)

// CounterStore counts requests per key within a rolling window. Injected so a
// single-instance deployment can use an in-process map while a multi-instance
// one shares counters through redis, and so tests get a clean store per case.
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

type memoryCounter struct {
	count   int64
	resetAt time.Time
}

type MemoryCounterStore struct {
	mu       sync.Mutex
	counters map[string]*memoryCounter
}

func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{counters: make(map[string]*memoryCounter)}
}

func (s *MemoryCounterStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	c, ok := s.counters[key]
	if !ok || now.After(c.resetAt) {
		c = &memoryCounter{resetAt: now.Add(window)}
		s.counters[key] = c
	}
	c.count++
	return c.count, nil
}

type RedisCounterStore struct{ client *redis.Client }

func NewRedisCounterStore(client *redis.Client) *RedisCounterStore {
	return &RedisCounterStore{client: client}
}

func (s *RedisCounterStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}

// RateLimit caps requests per client IP. When the store errors the request is
// let through; losing rate limiting beats losing the endpoint.
func RateLimit(store CounterStore, limit int64, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)
			count, err := store.Incr(r.Context(), "ratelimit:"+key, window)
			if err != nil {
				global.Logger.Warn().Err(err).Msg("rate limit store error")
				next.ServeHTTP(w, r)
				return
			}
			if count > limit {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"rate limit exceeded"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
