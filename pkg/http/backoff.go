package http

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// BackoffConfig controls retry behavior for a request. A nil config means a
// single attempt with no retry.
type BackoffConfig struct {
	// MaxRetries is the number of retry attempts after the first request
	MaxRetries int
	// InitialInterval is the delay before the first retry
	InitialInterval time.Duration
	// MaxInterval caps the delay between retries
	MaxInterval time.Duration
	// Multiplier grows the delay after each attempt
	Multiplier float64
	// RetryableStatuses lists the HTTP statuses worth retrying. Empty means
	// retry on any 5xx.
	RetryableStatuses []int
}

// NewBackoffConfig creates a backoff configuration with default values
func NewBackoffConfig() *BackoffConfig {
	return &BackoffConfig{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     10 * time.Second,
		Multiplier:      2.0,
	}
}

// WithMaxRetries sets the number of retry attempts
func (bc *BackoffConfig) WithMaxRetries(maxRetries int) *BackoffConfig {
	bc.MaxRetries = maxRetries
	return bc
}

// WithInitialInterval sets the delay before the first retry
func (bc *BackoffConfig) WithInitialInterval(interval time.Duration) *BackoffConfig {
	bc.InitialInterval = interval
	return bc
}

// WithRetryableStatuses sets the HTTP statuses worth retrying
func (bc *BackoffConfig) WithRetryableStatuses(statuses ...int) *BackoffConfig {
	bc.RetryableStatuses = statuses
	return bc
}

// shouldRetry reports whether a response with the given status and transport
// error is worth another attempt.
func (bc *BackoffConfig) shouldRetry(status int, err error) bool {
	if err != nil && status == 0 {
		// transport-level failure, no response at all
		return true
	}
	if len(bc.RetryableStatuses) == 0 {
		return status >= 500
	}
	for _, s := range bc.RetryableStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// newExponentialBackoff builds the cenkalti backoff matching the config
func (bc *BackoffConfig) newExponentialBackoff() backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = bc.InitialInterval
	eb.MaxInterval = bc.MaxInterval
	eb.Multiplier = bc.Multiplier
	return eb
}

// doRequestWithBackoff sends the request, retrying per the backoff config when
// the outcome is retryable. The request backoff overrides the client default;
// both nil means exactly one attempt.
func (hc *Client) doRequestWithBackoff(method, path string, queryParams map[string]string, headers map[string]string, body any, successResp any, errorResp any, requestBackoff *BackoffConfig) (any, any, int, error) {
	cfg := requestBackoff
	if cfg == nil {
		cfg = hc.defaultBackoff
	}
	if cfg == nil || cfg.MaxRetries <= 0 {
		return hc.doRequest(method, path, queryParams, headers, body, successResp, errorResp)
	}

	eb := cfg.newExponentialBackoff()

	var success, errResp any
	var status int
	var err error

	for attempt := 0; ; attempt++ {
		success, errResp, status, err = hc.doRequest(method, path, queryParams, headers, body, successResp, errorResp)
		if err == nil {
			return success, errResp, status, nil
		}
		if attempt >= cfg.MaxRetries || !cfg.shouldRetry(status, err) {
			return success, errResp, status, err
		}

		wait := eb.NextBackOff()
		if wait == backoff.Stop {
			return success, errResp, status, err
		}
		if hc.logger != nil {
			hc.logger.LogRequestRetry(method, hc.buildURL(path), status, err, attempt+1, cfg.MaxRetries)
		}
		time.Sleep(wait)
	}
}
