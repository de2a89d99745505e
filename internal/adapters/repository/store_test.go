package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/pitchgate/internal/adapters/repository"
	"github.com/okian/pitchgate/internal/domain/ratelimit"
	"github.com/okian/pitchgate/internal/domain/verification"
)

type backend struct {
	name    string
	codes   func(t *testing.T) verification.Store
	windows func(t *testing.T) ratelimit.WindowStore
}

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func backends() []backend {
	return []backend{
		{
			name:    "memory",
			codes:   func(*testing.T) verification.Store { return repository.NewMemoryCodeStore() },
			windows: func(*testing.T) ratelimit.WindowStore { return repository.NewMemoryWindowStore() },
		},
		{
			name: "redis",
			codes: func(t *testing.T) verification.Store {
				return repository.NewRedisCodeStore(newRedis(t), repository.WithKeyPrefix("test:code:"))
			},
			windows: func(t *testing.T) ratelimit.WindowStore {
				return repository.NewRedisWindowStore(newRedis(t), repository.WithKeyPrefix("test:rl:"))
			},
		},
	}
}

func TestCodeStores(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, b := range backends() {
		Convey("Given a "+b.name+" code store", t, func() {
			store := b.codes(t)
			code := verification.Code{Value: "123456", ExpiresAt: now.Add(10 * time.Minute)}
			So(store.Put(ctx, "a@b.com", code), ShouldBeNil)

			Convey("An unknown email is not found", func() {
				So(errors.Is(store.Consume(ctx, "x@y.com", "123456", now), verification.ErrNotFound), ShouldBeTrue)
			})

			Convey("A wrong code is a mismatch and keeps the code", func() {
				So(errors.Is(store.Consume(ctx, "a@b.com", "000000", now), verification.ErrMismatch), ShouldBeTrue)
				So(store.Consume(ctx, "a@b.com", "123456", now), ShouldBeNil)
			})

			Convey("A correct code succeeds once", func() {
				So(store.Consume(ctx, "a@b.com", "123456", now), ShouldBeNil)
				So(errors.Is(store.Consume(ctx, "a@b.com", "123456", now), verification.ErrNotFound), ShouldBeTrue)
			})

			Convey("A code is still valid at exactly its expiry", func() {
				So(store.Consume(ctx, "a@b.com", "123456", code.ExpiresAt), ShouldBeNil)
			})

			Convey("An expired code is reported and deleted", func() {
				later := code.ExpiresAt.Add(time.Millisecond)
				So(errors.Is(store.Consume(ctx, "a@b.com", "123456", later), verification.ErrExpired), ShouldBeTrue)
				So(errors.Is(store.Consume(ctx, "a@b.com", "123456", now), verification.ErrNotFound), ShouldBeTrue)
			})

			Convey("Re-issuing replaces the earlier code", func() {
				So(store.Put(ctx, "a@b.com", verification.Code{Value: "654321", ExpiresAt: code.ExpiresAt}), ShouldBeNil)
				So(errors.Is(store.Consume(ctx, "a@b.com", "123456", now), verification.ErrMismatch), ShouldBeTrue)
				So(store.Consume(ctx, "a@b.com", "654321", now), ShouldBeNil)
			})
		})
	}
}

func TestRedisCodeStoreTTL(t *testing.T) {
	Convey("Given a redis code store and a code issued on a clock far from the wall clock", t, func() {
		ctx := context.Background()
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer func() { _ = client.Close() }()
		store := repository.NewRedisCodeStore(client,
			repository.WithKeyPrefix("test:code:"),
			repository.WithExpiryGrace(time.Minute))
		issued := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		code := verification.Code{Value: "123456", IssuedAt: issued, ExpiresAt: issued.Add(10 * time.Minute)}
		So(store.Put(ctx, "a@b.com", code), ShouldBeNil)

		Convey("Then the key lives for the code lifetime plus grace", func() {
			So(mr.TTL("test:code:a@b.com"), ShouldEqual, 11*time.Minute)
		})

		Convey("Then the code is still valid on the issuing clock", func() {
			So(store.Consume(ctx, "a@b.com", "123456", issued.Add(5*time.Minute)), ShouldBeNil)
		})
	})
}

func TestMemoryCodeStoreSweep(t *testing.T) {
	Convey("Given a memory store with live and expired codes", t, func() {
		ctx := context.Background()
		now := time.Now()
		store := repository.NewMemoryCodeStore()
		So(store.Put(ctx, "old@b.com", verification.Code{Value: "111111", ExpiresAt: now.Add(-time.Second)}), ShouldBeNil)
		So(store.Put(ctx, "new@b.com", verification.Code{Value: "222222", ExpiresAt: now.Add(time.Minute)}), ShouldBeNil)

		removed, err := store.Sweep(ctx, now)

		Convey("Then only expired codes are removed", func() {
			So(err, ShouldBeNil)
			So(removed, ShouldEqual, 1)
			So(store.Len(), ShouldEqual, 1)
		})
	})
}

func TestWindowStores(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	const limit = 5
	window := 24 * time.Hour

	for _, b := range backends() {
		Convey("Given a "+b.name+" window store", t, func() {
			store := b.windows(t)

			Convey("The first hit opens a window", func() {
				w, ok, err := store.Hit(ctx, "1.2.3.4", limit, window, now)
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(w.Count, ShouldEqual, 1)
				So(w.ResetAt.Equal(now.Add(window)), ShouldBeTrue)
			})

			Convey("The sixth hit inside the window is denied without counting", func() {
				for i := 1; i <= limit; i++ {
					w, ok, err := store.Hit(ctx, "1.2.3.4", limit, window, now.Add(time.Duration(i)*time.Minute))
					So(err, ShouldBeNil)
					So(ok, ShouldBeTrue)
					So(w.Count, ShouldEqual, i)
				}
				w, ok, err := store.Hit(ctx, "1.2.3.4", limit, window, now.Add(time.Hour))
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)
				So(w.Count, ShouldEqual, limit)
				So(w.ResetAt.Equal(now.Add(window)), ShouldBeTrue)

				Convey("Other keys are unaffected", func() {
					_, ok, _ := store.Hit(ctx, "5.6.7.8", limit, window, now.Add(time.Hour))
					So(ok, ShouldBeTrue)
				})

				Convey("The window resets after reset time elapses", func() {
					after := now.Add(window).Add(time.Millisecond)
					w, ok, err := store.Hit(ctx, "1.2.3.4", limit, window, after)
					So(err, ShouldBeNil)
					So(ok, ShouldBeTrue)
					So(w.Count, ShouldEqual, 1)
					So(w.ResetAt.Equal(after.Add(window)), ShouldBeTrue)
				})

				Convey("Exactly at reset time the window still applies", func() {
					_, ok, _ := store.Hit(ctx, "1.2.3.4", limit, window, now.Add(window))
					So(ok, ShouldBeFalse)
				})
			})
		})
	}
}

func TestLimiterOverMemory(t *testing.T) {
	Convey("Given a limiter with a fixed clock", t, func() {
		now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		l := ratelimit.New(repository.NewMemoryWindowStore(),
			ratelimit.WithLimit(2), ratelimit.WithWindow(time.Hour),
			ratelimit.WithClock(func() time.Time { return now }))
		ctx := context.Background()

		d1, _ := l.Allow(ctx, "ip")
		d2, _ := l.Allow(ctx, "ip")
		d3, err := l.Allow(ctx, "ip")

		Convey("Then remaining counts down and the third call is denied", func() {
			So(err, ShouldBeNil)
			So(d1.Remaining, ShouldEqual, 1)
			So(d2.Remaining, ShouldEqual, 0)
			So(d2.Allowed, ShouldBeTrue)
			So(d3.Allowed, ShouldBeFalse)
			So(d3.Limit, ShouldEqual, 2)
			So(d3.RetryAfter, ShouldEqual, time.Hour)
		})

		Convey("Then sweeping keeps the live window", func() {
			n, err := l.Sweep(ctx)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 0)
		})
	})
}
