package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/okian/pitchgate/internal/domain/ratelimit"
	"github.com/okian/pitchgate/internal/domain/verification"
)

// consumeCodeScript checks and consumes a code atomically.
// KEYS[1] = code key
// ARGV[1] = candidate code
// ARGV[2] = now (unix ms)
// Returns 0 not found, 1 expired (deleted), 2 mismatch (kept), 3 ok (deleted).
var consumeCodeScript = redis.NewScript(`
local state = redis.call("HMGET", KEYS[1], "code", "expires_at")
local code = state[1]
local expires_at = tonumber(state[2])
if not code or not expires_at then
    return 0
end
if tonumber(ARGV[2]) > expires_at then
    redis.call("DEL", KEYS[1])
    return 1
end
if code ~= ARGV[1] then
    return 2
end
redis.call("DEL", KEYS[1])
return 3
`)

// fixedWindowScript counts one hit in a fixed window atomically.
// KEYS[1] = window key
// ARGV[1] = limit
// ARGV[2] = window length (ms)
// ARGV[3] = now (unix ms)
// Returns {allowed, count, reset_at}.
var fixedWindowScript = redis.NewScript(`
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

local state = redis.call("HMGET", KEYS[1], "count", "reset_at")
local count = tonumber(state[1])
local reset_at = tonumber(state[2])

if not count or not reset_at or now > reset_at then
    reset_at = now + window
    redis.call("HSET", KEYS[1], "count", 1, "reset_at", reset_at)
    redis.call("PEXPIRE", KEYS[1], window)
    return {1, 1, reset_at}
end

if count >= limit then
    return {0, count, reset_at}
end

count = redis.call("HINCRBY", KEYS[1], "count", 1)
return {1, count, reset_at}
`)

const (
	consumeNotFound = 0
	consumeExpired  = 1
	consumeMismatch = 2
	consumeOK       = 3
)

// NewRedisClient opens a client for the given address.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// RedisCodeStore keeps one hash per email: {code, expires_at}. Expiry is
// decided by the script against the caller's clock; the key TTL (the code's
// lifetime plus a grace period) only bounds how long Redis keeps the key.
type RedisCodeStore struct {
	client redis.UniversalClient
	prefix string
	grace  time.Duration
}

// NewRedisCodeStore wraps client.
func NewRedisCodeStore(client redis.UniversalClient, opts ...RedisOption) *RedisCodeStore {
	o := newRedisOptions(defaultCodePrefix, opts)
	return &RedisCodeStore{client: client, prefix: o.prefix, grace: o.grace}
}

func (s *RedisCodeStore) key(email string) string { return s.prefix + email }

// Put stores c for email, replacing any previous code.
func (s *RedisCodeStore) Put(ctx context.Context, email string, c verification.Code) error {
	key := s.key(email)
	ttl := c.Lifetime() + s.grace
	if ttl <= 0 {
		ttl = s.grace
	}
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, key)
		p.HSet(ctx, key, "code", c.Value, "expires_at", c.ExpiresAt.UnixMilli())
		p.PExpire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis put code: %w", err)
	}
	return nil
}

// Consume runs the consume script. See verification.Store.
func (s *RedisCodeStore) Consume(ctx context.Context, email, candidate string, now time.Time) error {
	res, err := consumeCodeScript.Run(ctx, s.client, []string{s.key(email)}, candidate, now.UnixMilli()).Int64()
	if err != nil {
		return fmt.Errorf("redis consume code: %w", err)
	}
	switch res {
	case consumeNotFound:
		return verification.ErrNotFound
	case consumeExpired:
		return verification.ErrExpired
	case consumeMismatch:
		return verification.ErrMismatch
	case consumeOK:
		return nil
	}
	return fmt.Errorf("%w: consume returned %d", ErrUnexpectedReply, res)
}

// Sweep is a no-op: expired keys are removed by their Redis TTL.
func (s *RedisCodeStore) Sweep(context.Context, time.Time) (int, error) {
	return 0, nil
}

// RedisWindowStore keeps one hash per client key: {count, reset_at}.
type RedisWindowStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisWindowStore wraps client.
func NewRedisWindowStore(client redis.UniversalClient, opts ...RedisOption) *RedisWindowStore {
	o := newRedisOptions(defaultWindowPrefix, opts)
	return &RedisWindowStore{client: client, prefix: o.prefix}
}

// Hit runs the fixed window script. See ratelimit.WindowStore.
func (s *RedisWindowStore) Hit(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (ratelimit.Window, bool, error) {
	res, err := fixedWindowScript.Run(ctx, s.client, []string{s.prefix + key},
		limit, window.Milliseconds(), now.UnixMilli()).Int64Slice()
	if err != nil {
		return ratelimit.Window{}, false, fmt.Errorf("redis rate limit: %w", err)
	}
	if len(res) != 3 {
		return ratelimit.Window{}, false, fmt.Errorf("%w: window script returned %d values", ErrUnexpectedReply, len(res))
	}
	w := ratelimit.Window{Count: int(res[1]), ResetAt: time.UnixMilli(res[2])}
	return w, res[0] == 1, nil
}

// Sweep is a no-op: windows expire through their Redis TTL.
func (s *RedisWindowStore) Sweep(context.Context, time.Time) (int, error) {
	return 0, nil
}
