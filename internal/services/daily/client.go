package daily

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"
)

const maxErrorBody = 4096

// RetryPolicy controls how the client reacts to retryable responses.
// MaxAttempts counts every attempt including the first.
type RetryPolicy struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	BackoffFactor float64
	RetryStatuses []int
}

// DefaultRetryPolicy mirrors the tunable defaults: three attempts, one
// second initial delay, doubling after each retry, on 400 and 429 responses.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:   3,
		InitialDelay:  time.Second,
		BackoffFactor: 2,
		RetryStatuses: []int{http.StatusBadRequest, http.StatusTooManyRequests},
	}
}

func (p RetryPolicy) retryable(status int) bool {
	for _, candidate := range p.RetryStatuses {
		if status == candidate {
			return true
		}
	}
	return false
}

// delayFor returns the backoff delay applied after the given failed attempt
// (1-based): InitialDelay * BackoffFactor^(attempt-1).
func (p RetryPolicy) delayFor(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	scale := math.Pow(p.BackoffFactor, float64(attempt-1))
	return time.Duration(float64(p.InitialDelay) * scale)
}

// APIError describes a non-success response from the platform. After retry
// exhaustion, Status carries the first retry-triggering status and Body the
// last response text, so the record of the failure names both the condition
// that started the retries and the final answer.
type APIError struct {
	Status   int
	Body     string
	Attempts int
}

func (e *APIError) Error() string {
	if e.Attempts > 1 {
		return fmt.Sprintf("daily: request failed with status %d after %d attempts: %s", e.Status, e.Attempts, e.Body)
	}
	return fmt.Sprintf("daily: request failed with status %d: %s", e.Status, e.Body)
}

// SleepFunc pauses between retry attempts. Tests substitute a recording
// implementation.
type SleepFunc func(ctx context.Context, d time.Duration) error

func defaultSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Client provides access to the platform REST API for a single account.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	retry      RetryPolicy
	sleep      SleepFunc
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRetryPolicy overrides the default retry policy.
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(c *Client) {
		if policy.MaxAttempts > 0 {
			c.retry = policy
		}
	}
}

// WithSleep overrides the pause between retry attempts.
func WithSleep(sleep SleepFunc) Option {
	return func(c *Client) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}

// New creates a platform API client for one account.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("daily: api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("daily: base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		retry:      DefaultRetryPolicy(),
		sleep:      defaultSleep,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// do executes one API call under the retry policy and returns the response
// body on success. Transport errors are returned as-is and never retried;
// the policy reacts to response statuses only.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("daily: encode request body: %w", err)
		}
		payload = encoded
	}
	endpoint := c.baseURL + path

	var firstStatus int
	var lastBody string
	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
		if err != nil {
			return nil, fmt.Errorf("daily: build request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Content-Type", "application/json")

		requestStart := time.Now()
		resp, err := c.httpClient.Do(req)
		latency := time.Since(requestStart)
		if err != nil {
			return nil, fmt.Errorf("daily: execute request (latency=%v): %w", latency, err)
		}

		data, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, fmt.Errorf("daily: read response: %w", readErr)
		}

		if resp.StatusCode < http.StatusMultipleChoices {
			return data, nil
		}

		text := strings.TrimSpace(string(truncate(data, maxErrorBody)))
		if !c.retry.retryable(resp.StatusCode) {
			return nil, &APIError{Status: resp.StatusCode, Body: text, Attempts: attempt}
		}
		if firstStatus == 0 {
			firstStatus = resp.StatusCode
		}
		lastBody = text
		if attempt == c.retry.MaxAttempts {
			break
		}
		if err := c.sleep(ctx, c.retry.delayFor(attempt)); err != nil {
			return nil, fmt.Errorf("daily: retry wait: %w", err)
		}
	}

	return nil, &APIError{Status: firstStatus, Body: lastBody, Attempts: c.retry.MaxAttempts}
}

func truncate(data []byte, limit int) []byte {
	if len(data) <= limit {
		return data
	}
	return data[:limit]
}
