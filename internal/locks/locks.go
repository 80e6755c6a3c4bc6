package locks

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/manishchum/Lucid-Prototype/internal/logger"
)

// Locker serializes the read-fingerprint-compare-write sequence of plan
// generation per employee, so two concurrent regenerations cannot both miss
// the cache and both invoke the completion service.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

// NewFromEnv returns a Redis-backed locker when REDIS_ADDR is set, otherwise
// an in-process keyed mutex. The in-process form is correct only for
// single-instance deployments.
func NewFromEnv(log *logger.Logger) Locker {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		log.Info("REDIS_ADDR not set, using in-memory plan locks")
		return NewMemoryLocker()
	}
	locker, err := NewRedisLocker(log, addr)
	if err != nil {
		log.Warn("Redis locker init failed, falling back to in-memory plan locks", "error", err)
		return NewMemoryLocker()
	}
	return locker
}

type memoryLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewMemoryLocker() Locker {
	return &memoryLocker{locks: map[string]*sync.Mutex{}}
}

func (m *memoryLocker) Acquire(ctx context.Context, key string, _ time.Duration) (func(), error) {
	m.mu.Lock()
	l, ok := m.locks[key]
	if !ok {
		l = &sync.Mutex{}
		m.locks[key] = l
	}
	m.mu.Unlock()

	l.Lock()
	return l.Unlock, nil
}

type redisLocker struct {
	log *logger.Logger
	rdb *goredis.Client
}

func NewRedisLocker(log *logger.Logger, addr string) (Locker, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisLocker{
		log: log.With("service", "RedisLocker"),
		rdb: rdb,
	}, nil
}

// releaseScript deletes the lock only if the caller still holds it.
var releaseScript = goredis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
  return redis.call("del", KEYS[1])
end
return 0
`)

func (r *redisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	token := uuid.New().String()
	lockKey := "lock:" + key

	for {
		ok, err := r.rdb.SetNX(ctx, lockKey, token, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", lockKey, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}

	release := func() {
		relCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := releaseScript.Run(relCtx, r.rdb, []string{lockKey}, token).Err(); err != nil {
			r.log.Warn("Failed to release lock", "key", lockKey, "error", err)
		}
	}
	return release, nil
}
