package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Guard enforces at most one in-flight enrichment job per user.
type Guard interface {
	// TryAcquire returns true when the caller now owns the user's slot.
	TryAcquire(ctx context.Context, userID string) (bool, error)
	Release(ctx context.Context, userID string) error
}

// InMemoryGuard tracks in-flight users in process memory. Suitable for a
// single-instance deployment.
type InMemoryGuard struct {
	inFlight map[string]struct{}
	mutex    sync.Mutex
}

func NewInMemoryGuard() *InMemoryGuard {
	return &InMemoryGuard{
		inFlight: make(map[string]struct{}),
	}
}

func (g *InMemoryGuard) TryAcquire(ctx context.Context, userID string) (bool, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, busy := g.inFlight[userID]; busy {
		return false, nil
	}
	g.inFlight[userID] = struct{}{}
	return true, nil
}

func (g *InMemoryGuard) Release(ctx context.Context, userID string) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	delete(g.inFlight, userID)
	return nil
}

// RedisGuard coordinates the in-flight slot across instances with SET NX.
// The TTL bounds how long a crashed job can hold the slot.
type RedisGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisGuard(client *redis.Client) *RedisGuard {
	return &RedisGuard{
		client: client,
		ttl:    10 * time.Minute,
	}
}

func (g *RedisGuard) key(userID string) string {
	return "mailmate:processing:" + userID
}

func (g *RedisGuard) TryAcquire(ctx context.Context, userID string) (bool, error) {
	return g.client.SetNX(ctx, g.key(userID), "1", g.ttl).Result()
}

func (g *RedisGuard) Release(ctx context.Context, userID string) error {
	return g.client.Del(ctx, g.key(userID)).Err()
}
