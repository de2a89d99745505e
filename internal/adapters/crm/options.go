package crm

import (
	"net/http"
	"time"

	"github.com/okian/pitchgate/pkg/logger"
)

// DefaultBaseURL is the CRM API root.
const DefaultBaseURL = "https://services.leadconnectorhq.com"

// APIVersion is sent in the Version header.
const APIVersion = "2021-07-28"

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithLocationID sets the CRM location (sub-account) id.
func WithLocationID(id string) Option {
	return func(c *Client) { c.locationID = id }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout sets the per-attempt timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithMaxRetries bounds retries after the first attempt.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = uint(n)
		}
	}
}

// WithInitialBackoff sets the first retry delay.
func WithInitialBackoff(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.initialBackoff = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) { c.logger = l }
}
