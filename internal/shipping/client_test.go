package shipping

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tesseract-Nexus/admin-bff/internal/auth"
	"github.com/Tesseract-Nexus/admin-bff/internal/config"
	"github.com/Tesseract-Nexus/admin-bff/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.ServiceConfig{BaseURL: srv.URL, TimeoutSeconds: 5})
}

func testScope() auth.Scope {
	return auth.Scope{Authorization: "Bearer test-token", UserID: "user-1", TenantID: "tenant-1"}
}

func TestListCarrierConfigs(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/shipping/carrier-configs", r.URL.Path)
		assert.Equal(t, "tenant-1", r.Header.Get("X-Tenant-ID"))
		w.Write([]byte(`{"success":true,"data":[{"id":"cc1","carrierCode":"AUSPOST","isEnabled":true}]}`))
	}))

	configs, err := client.ListCarrierConfigs(context.Background(), testScope())
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, "AUSPOST", configs[0].CarrierCode)
	assert.True(t, configs[0].IsEnabled)
}

func TestListCarrierConfigsSentinelShape(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"carrierConfigs":[{"id":"cc1","carrierCode":"DHL"}]}`))
	}))

	configs, err := client.ListCarrierConfigs(context.Background(), testScope())
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, "DHL", configs[0].CarrierCode)
}

func TestTestConnection(t *testing.T) {
	var gotPath, gotMethod string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.Write([]byte(`{"success":true,"data":{"carrierConfigId":"cc1","success":true,"latencyMs":84}}`))
	}))

	result, err := client.TestConnection(context.Background(), testScope(), "cc1")
	require.NoError(t, err)
	assert.Equal(t, "/api/shipping/carrier-configs/cc1/test-connection", gotPath)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.True(t, result.Success)
	assert.Equal(t, 84, result.LatencyMs)
}

func TestUpdateSettingsRoundTrip(t *testing.T) {
	var gotBody domain.ShippingSettings
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"success":true,"data":{"tenantId":"tenant-1","freeShippingEnabled":true,"freeShippingMinimum":50}}`))
	}))

	updated, err := client.UpdateSettings(context.Background(), testScope(), domain.ShippingSettings{
		FreeShippingEnabled: true,
		FreeShippingMinimum: 50,
	})
	require.NoError(t, err)
	assert.True(t, gotBody.FreeShippingEnabled)
	assert.True(t, updated.FreeShippingEnabled)
	assert.InDelta(t, 50, updated.FreeShippingMinimum, 0.001)
}
