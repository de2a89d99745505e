// Package crm upserts verified contacts into the CRM.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/okian/pitchgate/pkg/logger"
)

const (
	defaultTimeout        = 10 * time.Second
	defaultMaxRetries     = 3
	defaultInitialBackoff = 200 * time.Millisecond
	maxErrorBody          = 4 << 10
)

// Client talks to the CRM contacts API.
type Client struct {
	http           *http.Client
	baseURL        string
	apiKey         string
	locationID     string
	maxRetries     uint
	initialBackoff time.Duration
	logger         logger.Logger
}

// New builds a Client authenticated with apiKey.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		http:           &http.Client{Timeout: defaultTimeout},
		baseURL:        DefaultBaseURL,
		apiKey:         apiKey,
		maxRetries:     defaultMaxRetries,
		initialBackoff: defaultInitialBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	if c.logger == nil {
		c.logger = logger.Get().Named("crm")
	}
	return c
}

// Enabled reports whether the client has credentials.
func (c *Client) Enabled() bool { return c.apiKey != "" }

// Upsert creates or updates contact and returns the CRM contact id.
// 5xx, 429 and transport failures are retried with exponential backoff.
func (c *Client) Upsert(ctx context.Context, contact Contact) (string, error) {
	if !c.Enabled() {
		return "", ErrNotConfigured
	}
	if contact.LocationID == "" {
		contact.LocationID = c.locationID
	}
	body, err := json.Marshal(contact)
	if err != nil {
		return "", fmt.Errorf("encode contact: %w", err)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.initialBackoff

	attempt := 0
	id, err := backoff.Retry(ctx, func() (string, error) {
		attempt++
		return c.post(ctx, body)
	},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(c.maxRetries+1),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.logger.Warn(ctx, "crm upsert retry",
				logger.Int("attempt", attempt),
				logger.Duration("next", next),
				logger.Error(err))
		}))
	if err != nil {
		if errors.Is(err, ErrRejected) || errors.Is(err, ErrUnavailable) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return id, nil
}

func (c *Client) post(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/contacts/upsert", bytes.NewReader(body))
	if err != nil {
		return "", backoff.Permanent(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Version", APIVersion)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Error(ctx, "failed to close crm response body", logger.Error(cerr))
		}
	}()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		if secs, convErr := strconv.Atoi(resp.Header.Get("Retry-After")); convErr == nil && secs > 0 {
			return "", backoff.RetryAfter(secs)
		}
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	case resp.StatusCode >= 500:
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", backoff.Permanent(fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, strings.TrimSpace(string(msg))))
	}

	var out struct {
		ID      string `json:"id"`
		Contact struct {
			ID string `json:"id"`
		} `json:"contact"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil && err != io.EOF {
		return "", backoff.Permanent(fmt.Errorf("decode crm response: %w", err))
	}
	if out.Contact.ID != "" {
		return out.Contact.ID, nil
	}
	return out.ID, nil
}
