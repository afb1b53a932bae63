package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"resty.dev/v3"

	"asterdex/pkg/core"
)

// HTTPTransport executes requests with a resty client. A single attempt per
// call; the per-call timeout comes from the client configuration.
type HTTPTransport struct {
	client *resty.Client
	logger zerolog.Logger
}

// HTTPOption configures an HTTPTransport.
type HTTPOption func(*HTTPTransport)

// WithHTTPLogger sets the logger used for request/response tracing.
func WithHTTPLogger(logger zerolog.Logger) HTTPOption {
	return func(t *HTTPTransport) {
		t.logger = logger
	}
}

// NewHTTPTransport creates an HTTP transport with the given per-call
// timeout. JSON encoding and decoding go through sonic.
func NewHTTPTransport(timeout time.Duration, opts ...HTTPOption) *HTTPTransport {
	t := &HTTPTransport{
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}

	client := resty.New()
	client.SetTimeout(timeout)
	client.SetRetryCount(0)
	client.AddContentTypeEncoder("application/json", func(w io.Writer, v any) error {
		data, err := sonic.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	})
	client.AddContentTypeDecoder("application/json", func(r io.Reader, v any) error {
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		return sonic.Unmarshal(data, v)
	})

	logger := t.logger
	client.AddRequestMiddleware(func(_ *resty.Client, req *resty.Request) error {
		logger.Debug().
			Str("method", req.Method).
			Str("url", req.URL).
			Msg("http request")
		return nil
	})
	client.AddResponseMiddleware(func(_ *resty.Client, resp *resty.Response) error {
		logger.Debug().
			Str("method", resp.Request.Method).
			Str("url", resp.Request.URL).
			Int("status", resp.StatusCode()).
			Int("size", len(resp.Bytes())).
			Msg("http response")
		return nil
	})

	t.client = client
	return t
}

// Execute performs a single HTTP request. Error statuses are returned as a
// Response, not an error; only transport-level failures produce errors.
func (t *HTTPTransport) Execute(ctx context.Context, method, url string, headers map[string]string, body string) (*Response, error) {
	req := t.client.R().SetContext(ctx)
	for k, v := range headers {
		req.SetHeader(k, v)
	}
	if body != "" {
		req.SetHeader("Content-Type", "application/x-www-form-urlencoded")
		req.SetBody(body)
	}

	var resp *resty.Response
	var err error

	switch method {
	case http.MethodGet:
		resp, err = req.Get(url)
	case http.MethodPost:
		resp, err = req.Post(url)
	case http.MethodDelete:
		resp, err = req.Delete(url)
	default:
		return nil, fmt.Errorf("unsupported method: %s", method)
	}
	if err != nil {
		return nil, classify(err)
	}

	return &Response{
		StatusCode: resp.StatusCode(),
		Body:       resp.Bytes(),
	}, nil
}

// Close releases the underlying HTTP client resources.
func (t *HTTPTransport) Close() error {
	return t.client.Close()
}

func classify(err error) *core.ClientError {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return core.NewError(core.ErrorTypeTimeout, fmt.Sprintf("request timed out: %v", err))
	}
	return core.NewError(core.ErrorTypeTransport, fmt.Sprintf("transport failure: %v", err))
}
