package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asterdex/pkg/core"
)

func TestHTTPTransport_Get_PreservesQueryOrder(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tr := NewHTTPTransport(5 * time.Second)
	defer tr.Close()

	resp, err := tr.Execute(context.Background(), http.MethodGet,
		srv.URL+"/fapi/v1/test?zeta=1&alpha=2&signature=abc", nil, "")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "zeta=1&alpha=2&signature=abc", gotQuery)
}

func TestHTTPTransport_Post_BodyAndHeaders(t *testing.T) {
	var gotBody, gotContentType, gotAPIKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		gotContentType = r.Header.Get("Content-Type")
		gotAPIKey = r.Header.Get("X-MBX-APIKEY")
		w.Write([]byte(`{"orderId":1}`))
	}))
	defer srv.Close()

	tr := NewHTTPTransport(5 * time.Second)
	defer tr.Close()

	body := "symbol=BTCUSDT&side=BUY&timestamp=1&signature=deadbeef"
	resp, err := tr.Execute(context.Background(), http.MethodPost,
		srv.URL+"/fapi/v1/order", map[string]string{"X-MBX-APIKEY": "key"}, body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, body, gotBody)
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, "key", gotAPIKey)
}

func TestHTTPTransport_ErrorStatus_IsNotTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":-2014,"msg":"API-key format invalid."}`))
	}))
	defer srv.Close()

	tr := NewHTTPTransport(5 * time.Second)
	defer tr.Close()

	resp, err := tr.Execute(context.Background(), http.MethodGet, srv.URL, nil, "")
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"code":-2014,"msg":"API-key format invalid."}`, string(resp.Body))
}

func TestHTTPTransport_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	tr := NewHTTPTransport(5 * time.Second)
	defer tr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := tr.Execute(ctx, http.MethodGet, srv.URL, nil, "")
	require.Error(t, err)
	assert.True(t, core.IsTimeoutError(err), "expected timeout error, got: %v", err)
}

func TestHTTPTransport_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	tr := NewHTTPTransport(time.Second)
	defer tr.Close()

	_, err := tr.Execute(context.Background(), http.MethodGet, url, nil, "")
	require.Error(t, err)
	assert.True(t, core.IsTransportError(err), "expected transport error, got: %v", err)
}

func TestHTTPTransport_UnsupportedMethod(t *testing.T) {
	tr := NewHTTPTransport(time.Second)
	defer tr.Close()

	_, err := tr.Execute(context.Background(), "TRACE", "http://localhost", nil, "")
	assert.Error(t, err)
}
