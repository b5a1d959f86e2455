package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tesseract-Nexus/admin-bff/internal/auth"
	"github.com/Tesseract-Nexus/admin-bff/internal/config"
	"github.com/Tesseract-Nexus/admin-bff/internal/settings"
)

// stubBackend stands in for every backend service and counts the calls it
// receives, so tests can prove that gated requests made zero backend calls.
type stubBackend struct {
	srv  *httptest.Server
	hits int64

	mu             sync.Mutex
	campaignStatus string
	failPause      bool
}

func newStubBackend(t *testing.T) *stubBackend {
	t.Helper()
	b := &stubBackend{campaignStatus: "SENDING"}

	mux := http.NewServeMux()
	mux.HandleFunc("/campaigns", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		status := b.campaignStatus
		b.mu.Unlock()
		w.Write([]byte(`{"success":true,"data":[
			{"id":"c1","name":"Spring Sale","type":"PROMOTION","channel":"EMAIL","status":"` + status + `"},
			{"id":"c2","name":"Winback","type":"WINBACK","channel":"SMS","status":"DRAFT"}
		]}`))
	})
	mux.HandleFunc("/campaigns/c1/send", func(w http.ResponseWriter, r *http.Request) {
		b.setStatus("SENDING")
		w.Write([]byte(`{"success":true,"data":{"id":"c1","name":"Spring Sale","status":"SENDING"}}`))
	})
	mux.HandleFunc("/campaigns/c1/pause", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		fail := b.failPause
		b.mu.Unlock()
		if fail {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"success":false,"message":"campaign is not sending"}`))
			return
		}
		b.setStatus("PAUSED")
		w.Write([]byte(`{"success":true,"data":{"id":"c1","name":"Spring Sale","type":"PROMOTION","channel":"EMAIL","status":"PAUSED"}}`))
	})
	mux.HandleFunc("/orders/o1/cancel", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"id":"o1","status":"CANCELLED"}}`))
	})
	mux.HandleFunc("/api/v1/users/me/tenants", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tenants":[{"id":"t1","slug":"acme","name":"Acme"}]}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"not found"}`))
	})

	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&b.hits, 1)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *stubBackend) setStatus(s string) {
	b.mu.Lock()
	b.campaignStatus = s
	b.mu.Unlock()
}

func (b *stubBackend) calls() int64 { return atomic.LoadInt64(&b.hits) }

func newTestRouter(t *testing.T, backendURL string) http.Handler {
	t.Helper()
	svc := config.ServiceConfig{BaseURL: backendURL, TimeoutSeconds: 2}
	cfg := &config.Config{
		Tenants:      svc,
		Orders:       svc,
		Shipping:     svc,
		CustomDomain: svc,
		Settings:     svc,
		Auth:         config.AuthConfig{DevMode: true},
		Cache:        config.CacheConfig{SlugTTLSeconds: 60, SlugMaxEntries: 64},
		CORS:         config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	handlers := NewHandlers(ctx, cfg, nil, settings.NewMemoryStore(time.Minute, 64))
	return SetupRoutes(handlers, auth.NewVerifier(cfg.Auth), cfg.CORS)
}

func doRequest(t *testing.T, router http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("X-User-ID", "user-1")
	req.Header.Set("X-Tenant-ID", "tenant-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSendCampaignWithoutConfirmMakesNoBackendCall(t *testing.T) {
	backend := newStubBackend(t)
	router := newTestRouter(t, backend.srv.URL)

	rec := doRequest(t, router, http.MethodPost, "/api/campaigns/c1/send", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "confirmation")
	assert.EqualValues(t, 0, backend.calls())
}

func TestSendCampaignWithConfirm(t *testing.T) {
	backend := newStubBackend(t)
	router := newTestRouter(t, backend.srv.URL)

	rec := doRequest(t, router, http.MethodPost, "/api/campaigns/c1/send?confirm=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"SENDING"`)
	assert.EqualValues(t, 1, backend.calls())
}

func TestCancelOrderRequiresConfirmation(t *testing.T) {
	backend := newStubBackend(t)
	router := newTestRouter(t, backend.srv.URL)

	rec := doRequest(t, router, http.MethodPost, "/api/orders/o1/cancel", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.EqualValues(t, 0, backend.calls())

	rec = doRequest(t, router, http.MethodPost, "/api/orders/o1/cancel?confirm=true", `{"reason":"customer request"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "CANCELLED")
}

func TestDeleteGatewayRequiresConfirmation(t *testing.T) {
	backend := newStubBackend(t)
	router := newTestRouter(t, backend.srv.URL)

	rec := doRequest(t, router, http.MethodDelete, "/api/payments/configs/g1", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.EqualValues(t, 0, backend.calls())
}

func TestPauseIsOptimisticallyVisible(t *testing.T) {
	backend := newStubBackend(t)
	router := newTestRouter(t, backend.srv.URL)

	// Load the list view.
	rec := doRequest(t, router, http.MethodGet, "/api/campaigns", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"SENDING"`)

	rec = doRequest(t, router, http.MethodPost, "/api/campaigns/c1/pause", "")
	require.Equal(t, http.StatusOK, rec.Code)

	// The cached view serves the patched campaign without waiting for the
	// debounced refetch.
	rec = doRequest(t, router, http.MethodGet, "/api/campaigns", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"PAUSED"`)
}

func TestPauseFailureLeavesStateUntouched(t *testing.T) {
	backend := newStubBackend(t)
	router := newTestRouter(t, backend.srv.URL)

	rec := doRequest(t, router, http.MethodGet, "/api/campaigns", "")
	require.Equal(t, http.StatusOK, rec.Code)

	backend.mu.Lock()
	backend.failPause = true
	backend.mu.Unlock()

	rec = doRequest(t, router, http.MethodPost, "/api/campaigns/c1/pause", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "campaign is not sending")

	rec = doRequest(t, router, http.MethodGet, "/api/campaigns", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"SENDING"`)
}

func TestListCampaignsFiltersAndPaginates(t *testing.T) {
	backend := newStubBackend(t)
	router := newTestRouter(t, backend.srv.URL)

	rec := doRequest(t, router, http.MethodGet, "/api/campaigns?status=DRAFT", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Items      []map[string]any `json:"items"`
			Page       int              `json:"page"`
			TotalItems int              `json:"totalItems"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data.Items, 1)
	assert.Equal(t, "c2", body.Data.Items[0]["id"])
	assert.Equal(t, 1, body.Data.TotalItems)
}

func TestValidateSlugFailsOpenWhenBackendDown(t *testing.T) {
	dead := httptest.NewServer(nil)
	dead.Close()
	router := newTestRouter(t, dead.URL)

	rec := doRequest(t, router, http.MethodGet, "/api/tenants/validate?slug=acme", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"exists":true`)
}

func TestValidateSlugRequiresSlug(t *testing.T) {
	backend := newStubBackend(t)
	router := newTestRouter(t, backend.srv.URL)

	rec := doRequest(t, router, http.MethodGet, "/api/tenants/validate", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.EqualValues(t, 0, backend.calls())
}

func TestMutationOnBusyEntityRejected(t *testing.T) {
	backend := newStubBackend(t)
	svc := config.ServiceConfig{BaseURL: backend.srv.URL, TimeoutSeconds: 2}
	cfg := &config.Config{
		Tenants: svc, Orders: svc, Shipping: svc, CustomDomain: svc, Settings: svc,
		Auth: config.AuthConfig{DevMode: true},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	handlers := NewHandlers(ctx, cfg, nil, settings.NewMemoryStore(time.Minute, 64))
	router := SetupRoutes(handlers, auth.NewVerifier(cfg.Auth), cfg.CORS)

	// Claim the entity as if another request were mid-flight.
	release, err := handlers.tracker.Begin("c1", "send")
	require.NoError(t, err)
	defer release()

	rec := doRequest(t, router, http.MethodPost, "/api/campaigns/c1/pause", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already in progress")
	assert.EqualValues(t, 0, backend.calls())

	// A different entity stays interactive: its request reaches the backend.
	rec = doRequest(t, router, http.MethodPost, "/api/campaigns/c2/pause", "")
	assert.EqualValues(t, 1, backend.calls())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProxyMapsBackendStatusAndMessage(t *testing.T) {
	backend := newStubBackend(t)
	router := newTestRouter(t, backend.srv.URL)

	rec := doRequest(t, router, http.MethodGet, "/api/shipping/carrier-configs", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
	assert.Contains(t, rec.Body.String(), "not found")
}

func TestHealthNeedsNoAuth(t *testing.T) {
	backend := newStubBackend(t)
	router := newTestRouter(t, backend.srv.URL)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
