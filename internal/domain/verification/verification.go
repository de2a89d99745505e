// Package verification issues and checks one-time email codes.
package verification

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"
	"math/big"
	"net/mail"
	"strings"
	"time"
)

// DefaultTTL is how long an issued code stays valid.
const DefaultTTL = 10 * time.Minute

// CodeDigits is the length of a code.
const CodeDigits = 6

var (
	codeFloor = big.NewInt(100_000)
	codeSpan  = big.NewInt(900_000)
)

// Code is a live one-time code for an email.
type Code struct {
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Lifetime is how long the code is valid from issue. It falls back to the
// time left on the wall clock when IssuedAt is unset.
func (c Code) Lifetime() time.Duration {
	if c.IssuedAt.IsZero() {
		return time.Until(c.ExpiresAt)
	}
	return c.ExpiresAt.Sub(c.IssuedAt)
}

// Expired reports whether the code is past its expiry at now. A code is still
// valid at exactly ExpiresAt.
func (c Code) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// Matches compares the code in constant time.
func (c Code) Matches(candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(c.Value), []byte(strings.TrimSpace(candidate))) == 1
}

// Store holds at most one live code per normalized email. Implementations
// make Put and Consume atomic per key.
type Store interface {
	// Put stores c for email, replacing any previous code.
	Put(ctx context.Context, email string, c Code) error
	// Consume checks candidate against the stored code at now. It returns nil
	// and deletes the entry on success, ErrNotFound when nothing is stored,
	// ErrExpired (deleting the entry) past expiry, and ErrMismatch (keeping
	// the entry) on a wrong code.
	Consume(ctx context.Context, email, candidate string, now time.Time) error
	// Sweep removes expired entries and reports how many were removed.
	Sweep(ctx context.Context, now time.Time) (int, error)
}

// Sender delivers a code to its recipient.
type Sender interface {
	SendCode(ctx context.Context, email string, c Code) error
}

// Service issues and verifies codes against a Store.
type Service struct {
	store  Store
	sender Sender
	ttl    time.Duration
	now    func() time.Time
	random io.Reader
}

// NewService builds a Service over store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		ttl:    DefaultTTL,
		now:    time.Now,
		random: rand.Reader,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL returns the configured code lifetime.
func (s *Service) TTL() time.Duration { return s.ttl }

// RequestCode issues a fresh code for email, invalidating any earlier one,
// and hands it to the sender when one is configured.
func (s *Service) RequestCode(ctx context.Context, email string) (Code, error) {
	key, err := NormalizeEmail(email)
	if err != nil {
		return Code{}, err
	}
	value, err := s.generate()
	if err != nil {
		return Code{}, fmt.Errorf("generate code: %w", err)
	}
	now := s.now()
	c := Code{Value: value, IssuedAt: now, ExpiresAt: now.Add(s.ttl)}
	if err := s.store.Put(ctx, key, c); err != nil {
		return Code{}, fmt.Errorf("%w: %w", ErrStore, err)
	}
	if s.sender != nil {
		if err := s.sender.SendCode(ctx, key, c); err != nil {
			return Code{}, fmt.Errorf("%w: %w", ErrDelivery, err)
		}
	}
	return c, nil
}

// Verify consumes the code for email. See Store.Consume for outcomes.
func (s *Service) Verify(ctx context.Context, email, candidate string) error {
	key, err := NormalizeEmail(email)
	if err != nil {
		return err
	}
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return ErrCodeRequired
	}
	return s.store.Consume(ctx, key, candidate, s.now())
}

// Sweep drops expired codes.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	return s.store.Sweep(ctx, s.now())
}

// generate draws a uniformly random six digit code (100000-999999).
func (s *Service) generate() (string, error) {
	n, err := rand.Int(s.random, codeSpan)
	if err != nil {
		return "", err
	}
	return n.Add(n, codeFloor).String(), nil
}

// NormalizeEmail trims and lowercases email and checks it is a bare address.
func NormalizeEmail(email string) (string, error) {
	e := strings.ToLower(strings.TrimSpace(email))
	if e == "" {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(e)
	if err != nil || addr.Address != e {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return e, nil
}
