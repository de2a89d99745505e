package dedupe

// Option applies a configuration option to the in-memory deduper.
type Option func(*inMemoryDeduper)

// WithMaxSize sets how many fingerprints are kept before the oldest is
// evicted. Values below one keep the default.
func WithMaxSize(maxSize int) Option {
	return func(d *inMemoryDeduper) {
		if maxSize > 0 {
			d.maxSize = maxSize
		}
	}
}
