package dedupe_test

import (
	"context"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/pitchgate/internal/domain/dedupe"
	"github.com/okian/pitchgate/internal/domain/model"
)

func TestInMemoryDeduper(t *testing.T) {
	ctx := context.Background()

	Convey("Given a deduper bounded at three entries", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))

		Convey("When a fingerprint is recorded twice", func() {
			first := d.SeenAndRecord(ctx, 1)
			second := d.SeenAndRecord(ctx, 1)

			Convey("Then only the second call reports it as seen", func() {
				So(first, ShouldBeFalse)
				So(second, ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When the bound is exceeded", func() {
			for fp := uint64(1); fp <= 4; fp++ {
				So(d.SeenAndRecord(ctx, fp), ShouldBeFalse)
			}

			Convey("Then the oldest entry is evicted first", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, 4), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, 2), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, 1), ShouldBeFalse)
			})
		})

		Convey("When an entry is unrecorded", func() {
			d.SeenAndRecord(ctx, 1)
			d.SeenAndRecord(ctx, 2)
			d.SeenAndRecord(ctx, 3)
			d.Unrecord(ctx, 2)
			d.Unrecord(ctx, 99)

			Convey("Then it can be recorded again and eviction order is kept", func() {
				So(d.Size(), ShouldEqual, 2)
				So(d.SeenAndRecord(ctx, 2), ShouldBeFalse)
				So(d.SeenAndRecord(ctx, 5), ShouldBeFalse)
				So(d.SeenAndRecord(ctx, 3), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, 1), ShouldBeFalse)
			})
		})
	})

	Convey("Given concurrent recorders of the same fingerprint", t, func() {
		d := dedupe.NewInMemoryDeduper()
		var wg sync.WaitGroup
		var mu sync.Mutex
		fresh := 0
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if !d.SeenAndRecord(ctx, 42) {
					mu.Lock()
					fresh++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		Convey("Then exactly one records it", func() {
			So(fresh, ShouldEqual, 1)
		})
	})
}

func TestFingerprint(t *testing.T) {
	Convey("Fingerprint", t, func() {
		form := &model.PitchForm{FirstName: "Ada", Title: model.Titles{"Founder", "Author"}, PodcastName: "Show"}
		base := dedupe.Fingerprint(model.ContactSync{Email: "ada@example.com", Form: form})

		Convey("ignores email case, whitespace and title order", func() {
			same := &model.PitchForm{FirstName: " Ada ", Title: model.Titles{"Author", "Founder", "Author"}, PodcastName: "Show"}
			So(dedupe.Fingerprint(model.ContactSync{Email: " ADA@example.com", Form: same}), ShouldEqual, base)
		})

		Convey("changes with the form content", func() {
			other := *form
			other.PodcastName = "Another Show"
			So(dedupe.Fingerprint(model.ContactSync{Email: "ada@example.com", Form: &other}), ShouldNotEqual, base)
		})

		Convey("distinguishes a missing form", func() {
			So(dedupe.Fingerprint(model.ContactSync{Email: "ada@example.com"}), ShouldNotEqual, base)
		})
	})
}
