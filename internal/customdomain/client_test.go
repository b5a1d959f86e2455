package customdomain

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tesseract-Nexus/admin-bff/internal/auth"
	"github.com/Tesseract-Nexus/admin-bff/internal/config"
)

func TestListAdminDomains(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"success":true,"data":[{"id":"d1","hostname":"admin.acme.shop","targetType":"admin","status":"active"}]}`))
	}))
	defer srv.Close()

	client := NewClient(config.ServiceConfig{BaseURL: srv.URL, TimeoutSeconds: 5})
	scope := auth.Scope{Authorization: "Bearer test-token", TenantID: "tenant-1"}

	domains, err := client.ListAdminDomains(context.Background(), scope)
	require.NoError(t, err)
	require.Len(t, domains, 1)
	assert.Equal(t, "admin.acme.shop", domains[0].Hostname)

	assert.Equal(t, "/api/v1/domains", gotPath)
	assert.Equal(t, "admin", gotQuery.Get("target_type"))
	assert.Equal(t, "active", gotQuery.Get("status"))
	assert.Equal(t, "10", gotQuery.Get("limit"))
}

func TestListAdminDomainsBackendDown(t *testing.T) {
	srv := httptest.NewServer(nil)
	srv.Close()

	client := NewClient(config.ServiceConfig{BaseURL: srv.URL, TimeoutSeconds: 1})
	domains, err := client.ListAdminDomains(context.Background(), auth.Scope{})
	require.Error(t, err)
	assert.NotNil(t, domains)
	assert.Empty(t, domains)
}
