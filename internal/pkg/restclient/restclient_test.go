package restclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tesseract-Nexus/admin-bff/internal/auth"
	"github.com/Tesseract-Nexus/admin-bff/internal/config"
	"github.com/Tesseract-Nexus/admin-bff/internal/envelope"
)

func testClient(srv *httptest.Server, maxRetries int) *Client {
	return New("orders", config.ServiceConfig{
		BaseURL:        srv.URL,
		TimeoutSeconds: 5,
		MaxRetries:     maxRetries,
	})
}

func TestGetAttachesScopeHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/campaigns", r.URL.Path)
		assert.Equal(t, "SENDING", r.URL.Query().Get("status"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "u1", r.Header.Get("X-User-ID"))
		assert.Equal(t, "t1", r.Header.Get("X-Tenant-ID"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := testClient(srv, 0)
	q := url.Values{"status": {"SENDING"}}
	scope := auth.Scope{Authorization: "Bearer tok", UserID: "u1", TenantID: "t1"}

	body, err := c.Get(context.Background(), "/campaigns", q, scope)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))
}

func TestPostEncodesJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Spring Sale", payload["name"])
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"c1"}`))
	}))
	defer srv.Close()

	c := testClient(srv, 0)
	body, err := c.Post(context.Background(), "/campaigns", auth.Scope{}, map[string]string{"name": "Spring Sale"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"c1"}`, string(body))
}

func TestNonTwoXXBecomesRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"error":{"message":"campaign not found"}}`))
	}))
	defer srv.Close()

	c := testClient(srv, 0)
	_, err := c.Get(context.Background(), "/campaigns/x", nil, auth.Scope{})

	var remote *envelope.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusNotFound, remote.Status)
	assert.Equal(t, "campaign not found", remote.Message)
}

func TestNonTwoXXWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := testClient(srv, 0)
	_, err := c.Post(context.Background(), "/x", auth.Scope{}, nil)

	var remote *envelope.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusConflict, remote.Status)
	assert.Equal(t, "backend returned status 409", remote.Message)
}

func TestReadsRetryOnTransientFailure(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := testClient(srv, 2)
	body, err := c.Get(context.Background(), "/campaigns/stats", nil, auth.Scope{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestMutationsNeverRetry(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"success":false,"message":"down for maintenance"}`))
	}))
	defer srv.Close()

	c := testClient(srv, 3)
	_, err := c.Post(context.Background(), "/campaigns/c1/send", auth.Scope{}, nil)

	var remote *envelope.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "down for maintenance", remote.Message)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "mutations are single-attempt")
}

func TestUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := testClient(srv, 0)
	_, err := c.Get(context.Background(), "/campaigns", nil, auth.Scope{})
	require.Error(t, err)

	// Transport failures are not backend-reported errors; the proxy layer
	// maps them to 502 instead of passing a status through.
	var remote *envelope.RemoteError
	assert.False(t, errors.As(err, &remote))
}
