// Package repository provides the ephemeral keyed stores behind the
// verification service and the generation rate limiter: an in-memory
// implementation for a single process and a Redis implementation for
// horizontally scaled deployments.
package repository

import (
	"github.com/okian/pitchgate/internal/domain/ratelimit"
	"github.com/okian/pitchgate/internal/domain/verification"
)

// Compile-time interface checks.
var (
	_ verification.Store    = (*MemoryCodeStore)(nil)
	_ verification.Store    = (*RedisCodeStore)(nil)
	_ ratelimit.WindowStore = (*MemoryWindowStore)(nil)
	_ ratelimit.WindowStore = (*RedisWindowStore)(nil)
)

// Default Redis key prefixes.
const (
	defaultCodePrefix   = "pitchgate:code:"
	defaultWindowPrefix = "pitchgate:ratelimit:"
)
