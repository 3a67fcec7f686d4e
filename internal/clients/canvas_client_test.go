package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// countingTransport counts outbound requests
type countingTransport struct {
	calls atomic.Int32
	next  http.RoundTripper
}

func (t *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.calls.Add(1)
	return t.next.RoundTrip(req)
}

func TestCanvasClient_Get(t *testing.T) {
	var gotAuth, gotAccept, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotPath = r.URL.RequestURI()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":42,"name":"Biology 101"}]`))
	}))
	defer srv.Close()

	transport := &countingTransport{next: http.DefaultTransport}
	client := NewCanvasClient(&http.Client{Transport: transport}, time.Second, nil)

	resp, err := client.Get(context.Background(), srv.URL, "secret-token", "/api/v1/courses?per_page=10")

	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.JSONEq(t, `[{"id":42,"name":"Biology 101"}]`, string(resp.Data))
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "/api/v1/courses?per_page=10", gotPath)
	assert.Equal(t, int32(1), transport.calls.Load())
}

func TestCanvasClient_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errors":[{"message":"Invalid access token."}]}`))
	}))
	defer srv.Close()

	client := NewCanvasClient(nil, time.Second, nil)

	resp, err := client.Get(context.Background(), srv.URL, "bad", "/api/v1/users/self")

	require.NoError(t, err)
	assert.False(t, resp.OK)
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
	assert.Nil(t, resp.Data)
	assert.Contains(t, resp.Body, "Invalid access token.")
}

func TestCanvasClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	client := NewCanvasClient(&http.Client{Timeout: 50 * time.Millisecond}, 0, nil)

	resp, err := client.Get(context.Background(), srv.URL, "tok", "/api/v1/courses")

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, IsTimeoutError(err))
}

func TestCanvasClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewCanvasClient(nil, time.Second, nil)

	_, err := client.Get(context.Background(), url, "tok", "/api/v1/courses")

	require.Error(t, err)
	assert.Equal(t, ErrorTypeNetwork, TypeOf(err))
}

func TestCanvasClient_NonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>maintenance</html>"))
	}))
	defer srv.Close()

	client := NewCanvasClient(nil, time.Second, nil)

	_, err := client.Get(context.Background(), srv.URL, "tok", "/api/v1/courses")

	require.Error(t, err)
	assert.Equal(t, ErrorTypeInvalidResponse, TypeOf(err))
}

func TestCanvasClient_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewCanvasClient(nil, time.Second, nil)

	resp, err := client.Get(context.Background(), srv.URL, "tok", "/api/v1/courses/1")

	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.Equal(t, http.StatusNoContent, resp.Status)
	assert.Equal(t, "null", string(resp.Data))
}

func TestNewCanvasClient_DefaultTimeout(t *testing.T) {
	client := NewCanvasClient(nil, 0, nil).(*canvasClient)

	assert.Equal(t, DefaultCanvasTimeout, client.client.Timeout)
}

func TestNewCanvasClient_DoesNotMutateCallerClient(t *testing.T) {
	shared := &http.Client{}

	client := NewCanvasClient(shared, 5*time.Second, nil).(*canvasClient)

	assert.Equal(t, time.Duration(0), shared.Timeout)
	assert.Equal(t, 5*time.Second, client.client.Timeout)
	assert.NotSame(t, shared, client.client)
}

func TestCanvasClient_ResponseTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["` + strings.Repeat("a", 64) + `"]`))
	}))
	defer srv.Close()

	client := NewCanvasClient(nil, time.Second, nil).(*canvasClient)
	client.maxBodyBytes = 32

	_, err := client.Get(context.Background(), srv.URL, "tok", "/api/v1/files")

	require.Error(t, err)
	assert.Equal(t, ErrorTypeInvalidResponse, TypeOf(err))
	assert.Contains(t, err.Error(), "exceeds 32 bytes")
}

func TestCanvasClient_NeverLogsFullToken(t *testing.T) {
	const token = "supersecrettoken123"

	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": 1}`))
	}))
	defer ok.Close()
	rejected := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errors": [{"message": "Invalid access token."}]}`))
	}))
	defer rejected.Close()
	closed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	closedURL := closed.URL
	closed.Close()

	core, logs := observer.New(zap.DebugLevel)
	client := NewCanvasClient(nil, time.Second, zap.New(core))

	for _, baseURL := range []string{ok.URL, rejected.URL, closedURL} {
		_, _ = client.Get(context.Background(), baseURL, token, "/api/v1/users/self")
	}

	entries := logs.All()
	require.NotEmpty(t, entries)
	for _, entry := range entries {
		assert.NotContains(t, entry.Message, token)
		for key, value := range entry.ContextMap() {
			assert.NotContains(t, fmt.Sprint(value), token, "field %q of %q", key, entry.Message)
		}
	}
	assert.Equal(t, 3, logs.FilterField(zap.String("token", "supe***")).Len())
}
