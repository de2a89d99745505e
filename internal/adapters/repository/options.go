package repository

import "time"

const defaultGrace = time.Minute

type redisOptions struct {
	prefix string
	grace  time.Duration
}

// RedisOption configures the Redis stores.
type RedisOption func(*redisOptions)

// WithKeyPrefix namespaces every key written by the store.
func WithKeyPrefix(prefix string) RedisOption {
	return func(o *redisOptions) {
		if prefix != "" {
			o.prefix = prefix
		}
	}
}

// WithExpiryGrace sets how long a code key outlives its expiry.
func WithExpiryGrace(d time.Duration) RedisOption {
	return func(o *redisOptions) {
		if d > 0 {
			o.grace = d
		}
	}
}

func newRedisOptions(prefix string, opts []RedisOption) redisOptions {
	o := redisOptions{prefix: prefix, grace: defaultGrace}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
