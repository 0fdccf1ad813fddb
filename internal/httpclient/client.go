// Package httpclient provides the rate-limited, retrying HTTP transport
// shared by the genius search and lyrics page clients.
package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"lyricspider/internal/constants"
)

// Client wraps an http.Client to space out requests and retry transient
// failures. Each pipeline worker owns its own Client; nothing is shared
// between workers.
type Client struct {
	httpClient *http.Client

	minRequestInterval time.Duration
	lastRequest        time.Time
	mu                 sync.Mutex
}

// New creates a client that leaves at least minRequestInterval between the
// starts of consecutive requests and gives up on a single request after
// timeout.
func New(timeout, minRequestInterval time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     30 * time.Second,
				TLSHandshakeTimeout: 5 * time.Second,
			},
		},
		minRequestInterval: minRequestInterval,
	}
}

// Do executes an HTTP request with rate-limiting and capped exponential
// backoff. Connection errors, 5xx responses and 429s are retried up to
// constants.DefaultRetryCount attempts; everything else is returned as-is.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt < constants.DefaultRetryCount; attempt++ {
		if err := c.waitTurn(ctx); err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
		} else if retryable(resp.StatusCode) {
			retryAfter := parseRetryAfter(resp)
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("transient status %d from %s", resp.StatusCode, req.URL.Host)

			wait := backoff(attempt)
			if retryAfter > wait {
				wait = retryAfter
			}
			if err := sleep(ctx, wait); err != nil {
				return nil, err
			}
			continue
		} else {
			return resp, nil
		}

		if err := sleep(ctx, backoff(attempt)); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("request failed after %d attempts: %w", constants.DefaultRetryCount, lastErr)
}

// waitTurn blocks until the client's next request slot is available.
func (c *Client) waitTurn(ctx context.Context) error {
	c.mu.Lock()
	now := time.Now()
	nextAllowed := c.lastRequest.Add(c.minRequestInterval)
	var wait time.Duration
	if now.Before(nextAllowed) {
		wait = nextAllowed.Sub(now)
		c.lastRequest = nextAllowed
	} else {
		c.lastRequest = now
	}
	c.mu.Unlock()

	if wait > 0 {
		return sleep(ctx, wait)
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

func retryable(status int) bool {
	return status >= 500 || status == http.StatusTooManyRequests
}

func backoff(attempt int) time.Duration {
	wait := constants.DefaultRetryBase << attempt
	if wait > constants.DefaultRetryCap {
		wait = constants.DefaultRetryCap
	}
	return wait
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
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

// parseRetryAfter reads a Retry-After header and returns the duration to wait.
func parseRetryAfter(resp *http.Response) time.Duration {
	ra := resp.Header.Get("Retry-After")
	if ra == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(ra); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(ra); err == nil {
		return time.Until(t)
	}
	return 0
}
