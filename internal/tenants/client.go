// Package tenants is the client for the tenant service: tenant browsing,
// context/onboarding documents, and slug existence checks.
//
// Slug existence lookups are memoized for 60 seconds in a bounded LRU to
// absorb the lookup bursts rapid navigation produces. The cache is
// process-local and is not invalidated on tenant mutation; the short TTL
// bounds the staleness. Concurrent misses for the same slug both go to the
// backend — no request coalescing, the redundant call is harmless.
package tenants

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Tesseract-Nexus/admin-bff/internal/auth"
	"github.com/Tesseract-Nexus/admin-bff/internal/config"
	"github.com/Tesseract-Nexus/admin-bff/internal/domain"
	"github.com/Tesseract-Nexus/admin-bff/internal/envelope"
	"github.com/Tesseract-Nexus/admin-bff/internal/pkg/memocache"
	"github.com/Tesseract-Nexus/admin-bff/internal/pkg/metrics"
	"github.com/Tesseract-Nexus/admin-bff/internal/pkg/restclient"
)

// ErrAccessDenied is returned when the tenant service rejects the caller's
// access to a tenant. The handler maps it to 403 without leaking details.
var ErrAccessDenied = errors.New("access denied to this tenant")

// ErrNotFound is returned when a tenant does not exist.
var ErrNotFound = errors.New("tenant not found")

// Client is a tenant service client.
type Client struct {
	rest      *restclient.Client
	slugCache *memocache.Cache[bool]
}

// NewClient creates a tenant service client with the slug cache sized from
// cache config.
func NewClient(cfg config.ServiceConfig, cacheCfg config.CacheConfig) *Client {
	return &Client{
		rest:      restclient.New("tenants", cfg),
		slugCache: memocache.New[bool](cacheCfg.SlugMaxEntries, cacheCfg.SlugTTL()),
	}
}

// ListMine returns the tenants the calling user belongs to.
func (c *Client) ListMine(ctx context.Context, scope auth.Scope) ([]domain.Tenant, error) {
	body, err := c.rest.Get(ctx, "/api/v1/users/me/tenants", nil, scope)
	if err != nil {
		return []domain.Tenant{}, fmt.Errorf("list tenants: %w", err)
	}
	return envelope.List[domain.Tenant](body, "tenants")
}

// Get returns a single tenant. Access failures map to ErrAccessDenied.
func (c *Client) Get(ctx context.Context, scope auth.Scope, id string) (domain.Tenant, error) {
	body, err := c.rest.Get(ctx, "/internal/tenants/"+url.PathEscape(id), nil, scope)
	if err != nil {
		var remote *envelope.RemoteError
		if errors.As(err, &remote) {
			switch remote.Status {
			case http.StatusForbidden, http.StatusUnauthorized:
				return domain.Tenant{}, ErrAccessDenied
			case http.StatusNotFound:
				return domain.Tenant{}, ErrNotFound
			}
		}
		return domain.Tenant{}, fmt.Errorf("get tenant: %w", err)
	}
	return envelope.Object[domain.Tenant](body)
}

// Context returns the tenant context document used to bootstrap a session.
func (c *Client) Context(ctx context.Context, scope auth.Scope, id string) (domain.TenantContext, error) {
	body, err := c.rest.Get(ctx, "/api/v1/tenants/"+url.PathEscape(id)+"/context", nil, scope)
	if err != nil {
		return domain.TenantContext{}, fmt.Errorf("tenant context: %w", err)
	}
	return envelope.Object[domain.TenantContext](body)
}

// OnboardingData returns the raw onboarding document; the BFF does not model
// its shape, it only relays it.
func (c *Client) OnboardingData(ctx context.Context, scope auth.Scope, id string) (json.RawMessage, error) {
	body, err := c.rest.Get(ctx, "/api/v1/tenants/"+url.PathEscape(id)+"/onboarding-data", nil, scope)
	if err != nil {
		return nil, fmt.Errorf("onboarding data: %w", err)
	}
	return envelope.Object[json.RawMessage](body)
}

// CreateInput is the payload for creating a tenant for the calling user.
type CreateInput struct {
	Name         string `json:"name" validate:"required"`
	Slug         string `json:"slug" validate:"required,hostname_rfc1123"`
	BusinessName string `json:"businessName"`
	BusinessType string `json:"businessType"`
	Country      string `json:"country"`
}

// CreateForUser creates a tenant owned by the calling user.
func (c *Client) CreateForUser(ctx context.Context, scope auth.Scope, input CreateInput) (domain.Tenant, error) {
	body, err := c.rest.Post(ctx, "/api/v1/tenants/create-for-user", scope, input)
	if err != nil {
		return domain.Tenant{}, fmt.Errorf("create tenant: %w", err)
	}
	return envelope.Object[domain.Tenant](body)
}

// CheckSlug asks the tenant service whether a slug is taken. Uncached;
// used by the signup flow where freshness matters.
func (c *Client) CheckSlug(ctx context.Context, scope auth.Scope, slug string) (domain.SlugCheck, error) {
	q := url.Values{"slug": {slug}}
	body, err := c.rest.Get(ctx, "/api/v1/tenants/check-slug", q, scope)
	if err != nil {
		return domain.SlugCheck{}, fmt.Errorf("check slug: %w", err)
	}
	return envelope.Object[domain.SlugCheck](body)
}

// SlugExists reports whether a tenant slug resolves, memoized for the cache
// TTL. Backend errors other than a clean 404 are returned to the caller,
// which decides the fail-open policy; error outcomes are never cached.
func (c *Client) SlugExists(ctx context.Context, slug string) (bool, error) {
	if exists, ok := c.slugCache.Get(slug); ok {
		metrics.CacheLookup("tenant_slug", true)
		return exists, nil
	}
	metrics.CacheLookup("tenant_slug", false)

	body, err := c.rest.Get(ctx, "/internal/tenants/by-slug/"+url.PathEscape(slug), nil, auth.Scope{})
	if err != nil {
		var remote *envelope.RemoteError
		if errors.As(err, &remote) && remote.Status == http.StatusNotFound {
			c.slugCache.Set(slug, false)
			return false, nil
		}
		return false, fmt.Errorf("slug lookup: %w", err)
	}

	if _, err := envelope.Object[domain.Tenant](body); err != nil {
		return false, fmt.Errorf("slug lookup: %w", err)
	}
	c.slugCache.Set(slug, true)
	return true, nil
}

// GrowthBook relays the tenant's feature-flag bootstrap document.
func (c *Client) GrowthBook(ctx context.Context, scope auth.Scope, id string) (json.RawMessage, error) {
	body, err := c.rest.Get(ctx, "/api/v1/tenants/"+url.PathEscape(id)+"/growthbook", nil, scope)
	if err != nil {
		return nil, fmt.Errorf("growthbook config: %w", err)
	}
	return envelope.Object[json.RawMessage](body)
}
