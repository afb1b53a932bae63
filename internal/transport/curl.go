package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"asterdex/pkg/core"
)

// statusTrailer makes curl append the HTTP status code on its own line
// after the body so a single stdout capture yields both.
const statusTrailer = "\n%{http_code}"

// CurlTransport executes requests by shelling out to curl, capturing stdout
// as the response body. It satisfies the same contract as HTTPTransport so
// the two can be swapped without touching signing or request building.
type CurlTransport struct {
	binary  string
	timeout time.Duration
	logger  zerolog.Logger
}

// CurlOption configures a CurlTransport.
type CurlOption func(*CurlTransport)

// WithCurlBinary overrides the curl executable path.
func WithCurlBinary(binary string) CurlOption {
	return func(t *CurlTransport) {
		t.binary = binary
	}
}

// WithCurlLogger sets the logger used for invocation tracing.
func WithCurlLogger(logger zerolog.Logger) CurlOption {
	return func(t *CurlTransport) {
		t.logger = logger
	}
}

// NewCurlTransport creates a curl-backed transport with the given per-call
// timeout.
func NewCurlTransport(timeout time.Duration, opts ...CurlOption) *CurlTransport {
	t := &CurlTransport{
		binary:  "curl",
		timeout: timeout,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Execute runs a single curl invocation. The exit code maps to transport
// success or failure; HTTP error statuses are returned as a Response.
func (t *CurlTransport) Execute(ctx context.Context, method, url string, headers map[string]string, body string) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	args := buildCurlArgs(method, url, headers, body)
	t.logger.Debug().
		Str("method", method).
		Str("url", url).
		Msg("curl request")

	out, err := exec.CommandContext(ctx, t.binary, args...).Output()
	if err != nil {
		return nil, classifyCurl(ctx, err)
	}

	resp, err := parseCurlOutput(out)
	if err != nil {
		return nil, core.NewError(core.ErrorTypeTransport, err.Error())
	}

	t.logger.Debug().
		Int("status", resp.StatusCode).
		Int("size", len(resp.Body)).
		Msg("curl response")
	return resp, nil
}

// buildCurlArgs assembles the argument vector. Headers are emitted in
// sorted key order so invocations are reproducible; header order is not
// covered by the signature.
func buildCurlArgs(method, url string, headers map[string]string, body string) []string {
	args := []string{"-s", "-X", method, "-w", statusTrailer}

	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "-H", k+": "+headers[k])
	}

	if body != "" {
		args = append(args, "-d", body)
	}

	return append(args, url)
}

// parseCurlOutput splits the captured stdout into body and the trailing
// status code line written by the -w format.
func parseCurlOutput(out []byte) (*Response, error) {
	idx := bytes.LastIndexByte(out, '\n')
	if idx < 0 {
		return nil, fmt.Errorf("curl output missing status trailer")
	}
	status, err := strconv.Atoi(strings.TrimSpace(string(out[idx+1:])))
	if err != nil {
		return nil, fmt.Errorf("curl output has malformed status trailer: %w", err)
	}
	return &Response{
		StatusCode: status,
		Body:       out[:idx],
	}, nil
}

func classifyCurl(ctx context.Context, err error) *core.ClientError {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return core.NewError(core.ErrorTypeTimeout, fmt.Sprintf("curl timed out: %v", err))
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return core.NewError(core.ErrorTypeTransport,
			fmt.Sprintf("curl exited with code %d: %s", exitErr.ExitCode(), stderr))
	}
	return core.NewError(core.ErrorTypeTransport, fmt.Sprintf("curl invocation failed: %v", err))
}
