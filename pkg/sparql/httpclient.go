package sparql

import (
	"net/http"
	"sync"
	"time"
)

// HTTPClient is an interface matching the Do method of *http.Client.
// This allows injection of mock clients for testing and custom transports.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// RateLimitedHTTPClient wraps an HTTPClient with a limiter that enforces a
// minimum interval between requests. Public SPARQL endpoints throttle
// aggressive clients, so every outbound request goes through this wrapper.
type RateLimitedHTTPClient struct {
	underlying      HTTPClient
	requestInterval time.Duration
	lastRequest     time.Time
	mu              sync.Mutex
}

// NewRateLimitedHTTPClient creates a rate-limited HTTP client that enforces
// the given minimum interval between requests. A zero or negative interval
// disables waiting.
func NewRateLimitedHTTPClient(underlying HTTPClient, requestInterval time.Duration) *RateLimitedHTTPClient {
	return &RateLimitedHTTPClient{
		underlying:      underlying,
		requestInterval: requestInterval,
		lastRequest:     time.Time{}, // Zero time means no requests yet
	}
}

// Do executes an HTTP request, waiting for the rate limiter before sending.
// Safe for concurrent use: callers queue on the interval in lock order.
func (rateLimitedClient *RateLimitedHTTPClient) Do(req *http.Request) (*http.Response, error) {
	rateLimitedClient.mu.Lock()

	if !rateLimitedClient.lastRequest.IsZero() && rateLimitedClient.requestInterval > 0 {
		elapsed := time.Since(rateLimitedClient.lastRequest)
		if elapsed < rateLimitedClient.requestInterval {
			waitTime := rateLimitedClient.requestInterval - elapsed
			rateLimitedClient.mu.Unlock()
			time.Sleep(waitTime)
			rateLimitedClient.mu.Lock()
		}
	}

	rateLimitedClient.lastRequest = time.Now()
	rateLimitedClient.mu.Unlock()

	return rateLimitedClient.underlying.Do(req)
}

// TimeoutHTTPClient wraps requests with a configurable timeout.
type TimeoutHTTPClient struct {
	timeout time.Duration
}

// NewTimeoutHTTPClient creates an HTTP client with the specified timeout.
func NewTimeoutHTTPClient(timeout time.Duration) *TimeoutHTTPClient {
	return &TimeoutHTTPClient{timeout: timeout}
}

// Do executes an HTTP request with the configured timeout.
func (timeoutClient *TimeoutHTTPClient) Do(req *http.Request) (*http.Response, error) {
	httpClient := &http.Client{
		Timeout: timeoutClient.timeout,
	}
	return httpClient.Do(req)
}
