package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/pitchgate/internal/domain/ratelimit"
	"github.com/okian/pitchgate/internal/domain/verification"
	"github.com/okian/pitchgate/pkg/metrics"
)

// MemoryCodeStore keeps verification codes in a mutex-guarded map.
type MemoryCodeStore struct {
	mu    sync.Mutex
	codes map[string]verification.Code
}

// NewMemoryCodeStore returns an empty store.
func NewMemoryCodeStore() *MemoryCodeStore {
	return &MemoryCodeStore{codes: make(map[string]verification.Code)}
}

// Put stores c for email, replacing any previous code.
func (s *MemoryCodeStore) Put(_ context.Context, email string, c verification.Code) error {
	s.mu.Lock()
	s.codes[email] = c
	n := len(s.codes)
	s.mu.Unlock()
	metrics.UpdateCodeStoreSize(n)
	return nil
}

// Consume checks and, on success or expiry, deletes the code for email.
func (s *MemoryCodeStore) Consume(_ context.Context, email, candidate string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.codes[email]
	if !ok {
		return verification.ErrNotFound
	}
	if c.Expired(now) {
		delete(s.codes, email)
		metrics.UpdateCodeStoreSize(len(s.codes))
		return verification.ErrExpired
	}
	if !c.Matches(candidate) {
		return verification.ErrMismatch
	}
	delete(s.codes, email)
	metrics.UpdateCodeStoreSize(len(s.codes))
	return nil
}

// Sweep removes every code expired at now.
func (s *MemoryCodeStore) Sweep(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for email, c := range s.codes {
		if c.Expired(now) {
			delete(s.codes, email)
			removed++
		}
	}
	metrics.UpdateCodeStoreSize(len(s.codes))
	return removed, nil
}

// Len returns the number of stored codes, expired ones included.
func (s *MemoryCodeStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.codes)
}

// MemoryWindowStore keeps fixed-window counters in a mutex-guarded map.
type MemoryWindowStore struct {
	mu      sync.Mutex
	windows map[string]ratelimit.Window
}

// NewMemoryWindowStore returns an empty store.
func NewMemoryWindowStore() *MemoryWindowStore {
	return &MemoryWindowStore{windows: make(map[string]ratelimit.Window)}
}

// Hit counts one request for key. See ratelimit.WindowStore.
func (s *MemoryWindowStore) Hit(_ context.Context, key string, limit int, window time.Duration, now time.Time) (ratelimit.Window, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok || now.After(w.ResetAt) {
		w = ratelimit.Window{Count: 1, ResetAt: now.Add(window)}
		s.windows[key] = w
		return w, true, nil
	}
	if w.Count >= limit {
		return w, false, nil
	}
	w.Count++
	s.windows[key] = w
	return w, true, nil
}

// Sweep removes windows that elapsed before now.
func (s *MemoryWindowStore) Sweep(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key, w := range s.windows {
		if now.After(w.ResetAt) {
			delete(s.windows, key)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of tracked keys.
func (s *MemoryWindowStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}
