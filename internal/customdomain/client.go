// Package customdomain is the client for the custom-domain service.
package customdomain

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Tesseract-Nexus/admin-bff/internal/auth"
	"github.com/Tesseract-Nexus/admin-bff/internal/config"
	"github.com/Tesseract-Nexus/admin-bff/internal/domain"
	"github.com/Tesseract-Nexus/admin-bff/internal/envelope"
	"github.com/Tesseract-Nexus/admin-bff/internal/pkg/restclient"
)

// Client is a custom-domain service client.
type Client struct {
	rest *restclient.Client
}

// NewClient creates a custom-domain service client.
func NewClient(cfg config.ServiceConfig) *Client {
	return &Client{rest: restclient.New("custom-domain", cfg)}
}

// ListAdminDomains returns active custom domains pointed at the admin
// dashboard for the scoped tenant.
func (c *Client) ListAdminDomains(ctx context.Context, scope auth.Scope) ([]domain.CustomDomain, error) {
	q := url.Values{}
	q.Set("limit", "10")
	q.Set("target_type", "admin")
	q.Set("status", "active")

	body, err := c.rest.Get(ctx, "/api/v1/domains", q, scope)
	if err != nil {
		return []domain.CustomDomain{}, fmt.Errorf("list admin domains: %w", err)
	}
	return envelope.List[domain.CustomDomain](body, "domains")
}
