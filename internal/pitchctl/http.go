package pitchctl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/pitchgate/internal/domain/model"
	"github.com/okian/pitchgate/pkg/logger"
)

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// getJSON fetches url and decodes a 200 body into v.
func (c *HTTPClient) getJSON(ctx context.Context, url string, v interface{}) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	return decodeResponse(resp, http.StatusOK, v)
}

// postJSON posts body and decodes a 200 body into v.
func (c *HTTPClient) postJSON(ctx context.Context, url string, body, v interface{}) error {
	resp, err := c.Post(ctx, url, body)
	if err != nil {
		return err
	}
	return decodeResponse(resp, http.StatusOK, v)
}

func decodeResponse(resp *http.Response, want int, v interface{}) error {
	body, err := readResponseBody(resp)
	if err != nil {
		return err
	}
	if resp.StatusCode != want {
		return fmt.Errorf("%w: %s: %d %s", ErrUnexpectedStatus, resp.Request.URL.Path, resp.StatusCode, bytes.TrimSpace(body))
	}
	if v == nil {
		return nil
	}
	return json.Unmarshal(body, v)
}

func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitScores posts forms to /api/score concurrently using a worker pool.
func submitScores(ctx context.Context, config *Config, forms []model.PitchForm, stats *Stats) {
	log := logger.Get()
	log.Info(ctx, "submitting score previews",
		logger.Int("requests", len(forms)),
		logger.Int("workers", config.Workers))

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/api/score"

	var submitted, successful, failed atomic.Int64

	formChan := make(chan model.PitchForm, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for form := range formChan {
				if ctx.Err() != nil {
					return
				}
				submitted.Add(1)
				if err := client.postJSON(ctx, url, form, nil); err != nil {
					failed.Add(1)
					if config.Verbose {
						log.Warn(ctx, "score preview failed", logger.Error(err))
					}
					continue
				}
				successful.Add(1)
			}
		}()
	}

	go func() {
		defer close(formChan)
		for _, form := range forms {
			select {
			case <-ctx.Done():
				return
			case formChan <- form:
			}
		}
	}()
	wg.Wait()

	stats.ScoresSubmitted = int(submitted.Load())
	stats.ScoresSuccessful = int(successful.Load())
	stats.ScoresFailed = int(failed.Load())
}
