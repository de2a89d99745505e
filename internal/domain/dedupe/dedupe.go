// Package dedupe suppresses repeated contact syncs.
package dedupe

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/okian/pitchgate/internal/domain/model"
)

const defaultMaxSize = 10_000

// Deduper records fingerprints of processed work.
type Deduper interface {
	// SeenAndRecord atomically checks whether fp was seen and records it if
	// not. It returns true when fp was already present.
	SeenAndRecord(ctx context.Context, fp uint64) bool
	// Unrecord forgets fp so the same work can be retried.
	Unrecord(ctx context.Context, fp uint64)
	Size() int
}

// inMemoryDeduper is a bounded set with first-in first-out eviction.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[uint64]struct{}
	order   []uint64 // ring buffer of insertion order
	head    int      // index of the oldest entry
	maxSize int
}

// NewInMemoryDeduper creates a bounded in-memory deduper.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[uint64]struct{}, d.maxSize)
	d.order = make([]uint64, 0, d.maxSize)
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, fp uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[fp]; ok {
		return true
	}
	if len(d.order) < d.maxSize {
		d.order = append(d.order, fp)
	} else {
		delete(d.seen, d.order[d.head])
		d.order[d.head] = fp
		d.head = (d.head + 1) % d.maxSize
	}
	d.seen[fp] = struct{}{}
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, fp uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[fp]; !ok {
		return
	}
	delete(d.seen, fp)

	// Rebuild the ring without fp, oldest first.
	kept := make([]uint64, 0, cap(d.order))
	for i := range d.order {
		v := d.order[(d.head+i)%len(d.order)]
		if v != fp {
			kept = append(kept, v)
		}
	}
	d.order = kept
	d.head = 0
}

func (d *inMemoryDeduper) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}

// formFields is the fixed field order hashed into a fingerprint.
var formFields = []string{
	model.FieldFirstName, model.FieldLastName, model.FieldExpertise,
	model.FieldCredibility, model.FieldPodcastName, model.FieldHostName,
	model.FieldGuestName, model.FieldEpisodeTopic, model.FieldWhyPodcast,
	model.FieldSocialPlatform, model.FieldFollowers, model.FieldTopic1,
	model.FieldTopic2, model.FieldTopic3, model.FieldUniqueAngle,
	model.FieldAudienceBenefit,
}

// Fingerprint hashes the email and trimmed form content of a sync job. Jobs
// with the same address and the same submitted form collide.
func Fingerprint(j model.ContactSync) uint64 {
	h := xxhash.New()
	write := func(s string) {
		_, _ = h.WriteString(s)
		_, _ = h.Write([]byte{0})
	}
	write(strings.ToLower(strings.TrimSpace(j.Email)))
	if j.Form == nil {
		return h.Sum64()
	}
	titles := slices.Clone(j.Form.Title.Normalized())
	slices.Sort(titles)
	write(strings.Join(titles, ","))
	for _, f := range formFields {
		v, _ := j.Form.Text(f)
		write(strings.TrimSpace(v))
	}
	return h.Sum64()
}
