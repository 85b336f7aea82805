package sparql

import (
	"errors"
	"fmt"
)

// EndpointError reports a transport, HTTP or response-format failure from a
// SPARQL endpoint. Absence of results is never an EndpointError; callers
// receive empty bindings for empty result sets.
type EndpointError struct {
	// Endpoint is the endpoint URL the failed request was sent to.
	Endpoint string

	// StatusCode is the HTTP status code, if the failure was an HTTP error.
	StatusCode int

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (endpointError *EndpointError) Error() string {
	if endpointError.StatusCode != 0 {
		return fmt.Sprintf("sparql endpoint %s: HTTP %d: %v",
			endpointError.Endpoint, endpointError.StatusCode, endpointError.Err)
	}
	return fmt.Sprintf("sparql endpoint %s: %v", endpointError.Endpoint, endpointError.Err)
}

// Unwrap returns the underlying cause.
func (endpointError *EndpointError) Unwrap() error {
	return endpointError.Err
}

// IsEndpointError reports whether err is (or wraps) an EndpointError.
func IsEndpointError(err error) bool {
	var endpointError *EndpointError
	return errors.As(err, &endpointError)
}
