// Package sparql provides a minimal SPARQL-over-HTTP client for the SELECT
// and ASK query forms, consuming application/sparql-results+json responses.
package sparql

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultUserAgent is the default User-Agent header sent with endpoint requests.
const DefaultUserAgent = "geolink-sparql-client/1.0"

// DefaultRequestInterval is the default minimum interval between requests.
const DefaultRequestInterval = 1 * time.Second

// ClientConfig holds configuration for a Client.
type ClientConfig struct {
	// Endpoint is the SPARQL endpoint URL (e.g., "https://dbpedia.org/sparql").
	Endpoint string

	// RateLimit is the minimum interval between HTTP requests to the endpoint.
	// Default: 1 second.
	RateLimit time.Duration

	// HTTPClient is the underlying HTTP client used for requests.
	// If nil, http.DefaultClient is used (wrapped with rate limiting).
	HTTPClient HTTPClient

	// UserAgent is the User-Agent header sent with requests.
	// Default: "geolink-sparql-client/1.0".
	UserAgent string
}

// Client issues SPARQL SELECT and ASK queries against a single endpoint.
// The client is stateless with respect to query history; the embedded rate
// limiter serializes outbound requests, so a Client may be shared across
// goroutines.
type Client struct {
	endpoint   string
	httpClient HTTPClient
	userAgent  string
}

// NewClient creates a Client for the given configuration.
// If config.HTTPClient is nil, http.DefaultClient is used and wrapped with
// rate limiting.
func NewClient(config ClientConfig) *Client {
	underlyingClient := config.HTTPClient
	if underlyingClient == nil {
		underlyingClient = http.DefaultClient
	}

	rateLimit := config.RateLimit
	if rateLimit == 0 {
		rateLimit = DefaultRequestInterval
	}

	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Client{
		endpoint:   config.Endpoint,
		httpClient: NewRateLimitedHTTPClient(underlyingClient, rateLimit),
		userAgent:  userAgent,
	}
}

// Endpoint returns the endpoint URL this client queries.
func (client *Client) Endpoint() string {
	return client.endpoint
}

// Select issues a SELECT query and returns the solution bindings in response
// order. An empty result set is returned as an empty slice, not an error.
func (client *Client) Select(ctx context.Context, query string) ([]Binding, error) {
	body, err := client.execute(ctx, query)
	if err != nil {
		return nil, err
	}

	var response selectResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &EndpointError{
			Endpoint: client.endpoint,
			Err:      fmt.Errorf("malformed SELECT response: %w", err),
		}
	}

	return response.Results.Bindings, nil
}

// Ask issues an ASK query and returns the boolean result.
func (client *Client) Ask(ctx context.Context, query string) (bool, error) {
	body, err := client.execute(ctx, query)
	if err != nil {
		return false, err
	}

	var response askResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return false, &EndpointError{
			Endpoint: client.endpoint,
			Err:      fmt.Errorf("malformed ASK response: %w", err),
		}
	}
	if response.Boolean == nil {
		return false, &EndpointError{
			Endpoint: client.endpoint,
			Err:      fmt.Errorf("ASK response missing boolean field"),
		}
	}

	return *response.Boolean, nil
}

// execute sends the query via GET with the standard query parameter and
// returns the raw response body.
func (client *Client) execute(ctx context.Context, query string) ([]byte, error) {
	requestURL := client.endpoint + "?query=" + url.QueryEscape(query)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", client.endpoint, err)
	}
	request.Header.Set("User-Agent", client.userAgent)
	request.Header.Set("Accept", "application/sparql-results+json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, &EndpointError{Endpoint: client.endpoint, Err: err}
	}
	defer response.Body.Close()

	if response.StatusCode >= 400 {
		return nil, &EndpointError{
			Endpoint:   client.endpoint,
			StatusCode: response.StatusCode,
			Err:        fmt.Errorf("endpoint returned HTTP %d", response.StatusCode),
		}
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &EndpointError{
			Endpoint: client.endpoint,
			Err:      fmt.Errorf("failed to read response body: %w", err),
		}
	}

	return body, nil
}
