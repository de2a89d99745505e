package api

const (
	defaultVerifyRPS   = 1.0
	defaultVerifyBurst = 5
)

type options struct {
	verifyRPS   float64
	verifyBurst int
}

// Option configures the Server.
type Option func(*options)

// WithVerifyThrottle sets the per-client token bucket of the verification
// endpoint.
func WithVerifyThrottle(rps float64, burst int) Option {
	return func(o *options) {
		if rps > 0 {
			o.verifyRPS = rps
		}
		if burst > 0 {
			o.verifyBurst = burst
		}
	}
}
