// Package transport executes HTTP requests for the exchange client. Two
// interchangeable realizations share the same contract: a native HTTP client
// and a shelled-out curl invocation. Neither retries; retry policy belongs
// to the caller because trading calls are not safely idempotent.
package transport

import "context"

// Response is the raw result of a transport execution.
type Response struct {
	// StatusCode is the HTTP status code returned by the server.
	StatusCode int

	// Body contains the raw response body bytes.
	Body []byte
}

// Transport executes a single HTTP request. The url carries any query
// string already encoded; body, when non-empty, is a form-encoded string
// sent verbatim. Implementations must not reorder or re-encode either, or
// signed requests become invalid.
type Transport interface {
	Execute(ctx context.Context, method, url string, headers map[string]string, body string) (*Response, error)
}
