// Package settings is the client for the settings service, with a
// read-through cache in front of document lookups.
package settings

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Tesseract-Nexus/admin-bff/internal/auth"
	"github.com/Tesseract-Nexus/admin-bff/internal/config"
	"github.com/Tesseract-Nexus/admin-bff/internal/domain"
	"github.com/Tesseract-Nexus/admin-bff/internal/envelope"
	"github.com/Tesseract-Nexus/admin-bff/internal/pkg/metrics"
	"github.com/Tesseract-Nexus/admin-bff/internal/pkg/restclient"
)

// Client is a settings service client. Gets are served from the store when
// fresh; Put writes through and invalidates so the next read is current.
type Client struct {
	rest  *restclient.Client
	store Store
}

// NewClient creates a settings service client backed by the given store.
func NewClient(cfg config.ServiceConfig, store Store) *Client {
	return &Client{rest: restclient.New("settings", cfg), store: store}
}

func docPath(appID, scope string) string {
	return "/api/v1/settings/" + url.PathEscape(appID) + "/" + url.PathEscape(scope)
}

func docKey(appID, docScope, tenantID string) string {
	d := domain.SettingsDocument{ApplicationID: appID, Scope: docScope, TenantID: tenantID}
	return d.Key()
}

// Get returns the settings document for {applicationID, docScope} in the
// caller's tenant. Cached copies are served until the TTL lapses or a Put
// invalidates them.
func (c *Client) Get(ctx context.Context, scope auth.Scope, applicationID, docScope string) (domain.SettingsDocument, error) {
	key := docKey(applicationID, docScope, scope.TenantID)
	if doc, ok := c.store.Get(ctx, key); ok {
		metrics.CacheLookup("settings", true)
		return doc, nil
	}
	metrics.CacheLookup("settings", false)

	body, err := c.rest.Get(ctx, docPath(applicationID, docScope), nil, scope)
	if err != nil {
		return domain.SettingsDocument{}, fmt.Errorf("get settings: %w", err)
	}
	doc, err := envelope.Object[domain.SettingsDocument](body)
	if err != nil {
		return domain.SettingsDocument{}, err
	}
	c.store.Set(ctx, key, doc)
	return doc, nil
}

// Put replaces the settings document values and drops the cached copy.
// Invalidation happens even if decoding the response fails, so a stale
// document is never served after a successful write.
func (c *Client) Put(ctx context.Context, scope auth.Scope, applicationID, docScope string, values map[string]any) (domain.SettingsDocument, error) {
	body, err := c.rest.Put(ctx, docPath(applicationID, docScope), scope, map[string]any{"values": values})
	if err != nil {
		return domain.SettingsDocument{}, fmt.Errorf("update settings: %w", err)
	}
	c.store.Delete(ctx, docKey(applicationID, docScope, scope.TenantID))
	return envelope.Object[domain.SettingsDocument](body)
}
