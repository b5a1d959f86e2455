package settings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tesseract-Nexus/admin-bff/internal/auth"
	"github.com/Tesseract-Nexus/admin-bff/internal/config"
	"github.com/Tesseract-Nexus/admin-bff/internal/domain"
)

func testScope() auth.Scope {
	return auth.Scope{Authorization: "Bearer test-token", UserID: "user-1", TenantID: "tenant-1"}
}

func newBackend(t *testing.T, hits *int64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"success":true,"data":{"applicationId":"admin","scope":"display","tenantId":"tenant-1","values":{"theme":"dark"},"version":1}}`))
		case http.MethodPut:
			w.Write([]byte(`{"success":true,"data":{"applicationId":"admin","scope":"display","tenantId":"tenant-1","values":{"theme":"light"},"version":2}}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetMemoizesWithMemoryStore(t *testing.T) {
	var hits int64
	srv := newBackend(t, &hits)
	client := NewClient(config.ServiceConfig{BaseURL: srv.URL, TimeoutSeconds: 5}, NewMemoryStore(time.Minute, 64))

	for i := 0; i < 4; i++ {
		doc, err := client.Get(context.Background(), testScope(), "admin", "display")
		require.NoError(t, err)
		assert.Equal(t, "dark", doc.Values["theme"])
	}
	assert.EqualValues(t, 1, atomic.LoadInt64(&hits))
}

func TestPutInvalidatesCache(t *testing.T) {
	var hits int64
	srv := newBackend(t, &hits)
	client := NewClient(config.ServiceConfig{BaseURL: srv.URL, TimeoutSeconds: 5}, NewMemoryStore(time.Minute, 64))

	_, err := client.Get(context.Background(), testScope(), "admin", "display")
	require.NoError(t, err)

	updated, err := client.Put(context.Background(), testScope(), "admin", "display", map[string]any{"theme": "light"})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)

	// Next read goes to the backend, not the cache.
	_, err = client.Get(context.Background(), testScope(), "admin", "display")
	require.NoError(t, err)
	assert.EqualValues(t, 3, atomic.LoadInt64(&hits))
}

func TestCacheKeyIsTenantScoped(t *testing.T) {
	var hits int64
	srv := newBackend(t, &hits)
	client := NewClient(config.ServiceConfig{BaseURL: srv.URL, TimeoutSeconds: 5}, NewMemoryStore(time.Minute, 64))

	scopeA := auth.Scope{TenantID: "tenant-1"}
	scopeB := auth.Scope{TenantID: "tenant-2"}

	_, err := client.Get(context.Background(), scopeA, "admin", "display")
	require.NoError(t, err)
	_, err = client.Get(context.Background(), scopeB, "admin", "display")
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt64(&hits))
}

func TestRedisStoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := NewRedisStore("redis://"+mr.Addr(), time.Minute)
	require.NoError(t, err)

	ctx := context.Background()
	doc := domain.SettingsDocument{
		ApplicationID: "admin",
		Scope:         "display",
		TenantID:      "tenant-1",
		Values:        map[string]any{"theme": "dark"},
		Version:       3,
	}
	store.Set(ctx, doc.Key(), doc)

	got, ok := store.Get(ctx, doc.Key())
	require.True(t, ok)
	assert.Equal(t, 3, got.Version)
	assert.Equal(t, "dark", got.Values["theme"])

	store.Delete(ctx, doc.Key())
	_, ok = store.Get(ctx, doc.Key())
	assert.False(t, ok)
}

func TestRedisStoreTTLExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := NewRedisStore("redis://"+mr.Addr(), time.Second)
	require.NoError(t, err)

	ctx := context.Background()
	doc := domain.SettingsDocument{ApplicationID: "admin", Scope: "display", TenantID: "tenant-1"}
	store.Set(ctx, doc.Key(), doc)

	mr.FastForward(2 * time.Second)
	_, ok := store.Get(ctx, doc.Key())
	assert.False(t, ok)
}

func TestRedisStoreUnavailableIsAMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := NewRedisStore("redis://"+mr.Addr(), time.Minute)
	require.NoError(t, err)
	mr.Close()

	_, ok := store.Get(context.Background(), "admin:display:tenant-1")
	assert.False(t, ok)
}
