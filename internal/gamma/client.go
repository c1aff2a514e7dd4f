// Package gamma is the HTTP client for the Gamma market listing API and the
// Data trade API, with retry, backoff, and pagination.
package gamma

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Config holds client settings, fixed at startup.
type Config struct {
	GammaBase string
	DataBase  string

	Timeout    time.Duration
	MaxRetries int
	Backoff    float64
	// BackoffUnit scales the backoff delays; defaults to one second.
	BackoffUnit time.Duration

	PageSize      int
	TradePageSize int

	// WindowStart is the inclusive lower bound on trade timestamps in epoch
	// seconds; zero means unbounded.
	WindowStart int64
}

// Client issues retried GET requests against the upstream APIs.
type Client struct {
	cfg    Config
	http   *resty.Client
	logger *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 5
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 1.8
	}
	if cfg.BackoffUnit <= 0 {
		cfg.BackoffUnit = time.Second
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 250
	}
	if cfg.TradePageSize <= 0 {
		cfg.TradePageSize = cfg.PageSize
	}

	httpClient := resty.New()
	if cfg.Timeout > 0 {
		httpClient.SetTimeout(cfg.Timeout)
	}

	return &Client{cfg: cfg, http: httpClient, logger: logger}
}

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Body)
}

// retryableStatus reports whether a status code signals a transient upstream
// condition that a retry can heal.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusRequestTimeout, http.StatusTooManyRequests,
		http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// timeoutClass reports whether err looks like a timeout failure, the only
// class the trade paginator degrades its page size on.
func timeoutClass(err error) bool {
	if err == nil {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code == http.StatusRequestTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return strings.Contains(strings.ToLower(err.Error()), "timeout")
}

// backoffDelay returns the sleep after the given 1-based failed attempt:
// unit * multiplier^(attempt-1), so the first retry waits one unit.
func backoffDelay(multiplier float64, unit time.Duration, attempt int) time.Duration {
	return time.Duration(math.Pow(multiplier, float64(attempt-1)) * float64(unit))
}

// getJSON fetches url with query params, retrying with exponential backoff
// up to the attempt ceiling. Every failure consumes an attempt, including
// non-2xx statuses outside the retryable set; those cannot heal, but they
// exhaust the ceiling the same way instead of aborting immediately.
func (c *Client) getJSON(ctx context.Context, url string, params map[string]string) (json.RawMessage, error) {
	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 1 {
			timer := time.NewTimer(backoffDelay(c.cfg.Backoff, c.cfg.BackoffUnit, attempt-1))
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		resp, err := c.http.R().SetContext(ctx).SetQueryParams(params).Get(url)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			c.logger.Warn("request failed",
				zap.String("url", url), zap.Int("attempt", attempt), zap.Error(err))
			continue
		}

		code := resp.StatusCode()
		if code >= 200 && code < 300 {
			return json.RawMessage(resp.Body()), nil
		}

		body := resp.String()
		if len(body) > 240 {
			body = body[:240]
		}
		lastErr = &StatusError{Code: code, Body: body}
		c.logger.Warn("unexpected status",
			zap.String("url", url), zap.Int("attempt", attempt),
			zap.Int("status", code), zap.Bool("retryable", retryableStatus(code)))
	}

	return nil, fmt.Errorf("GET %s failed after %d attempts: %w", url, c.cfg.MaxRetries, lastErr)
}
