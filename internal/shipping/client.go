// Package shipping is the client for the shipping service.
package shipping

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

// Client is a shipping service client.
type Client struct {
	rest *restclient.Client
}

// NewClient creates a shipping service client.
func NewClient(cfg config.ServiceConfig) *Client {
	return &Client{rest: restclient.New("shipping", cfg)}
}

// ListCarrierConfigs returns the tenant's carrier configurations.
func (c *Client) ListCarrierConfigs(ctx context.Context, scope auth.Scope) ([]domain.CarrierConfig, error) {
	body, err := c.rest.Get(ctx, "/api/shipping/carrier-configs", nil, scope)
	if err != nil {
		return []domain.CarrierConfig{}, fmt.Errorf("list carrier configs: %w", err)
	}
	return envelope.List[domain.CarrierConfig](body, "carrierConfigs", "carriers")
}

// TestConnection probes a carrier's API with the stored credentials and
// reports the outcome. The probe runs on the shipping service, not here.
func (c *Client) TestConnection(ctx context.Context, scope auth.Scope, configID string) (domain.ConnectionTest, error) {
	body, err := c.rest.Post(ctx, "/api/shipping/carrier-configs/"+url.PathEscape(configID)+"/test-connection", scope, nil)
	if err != nil {
		return domain.ConnectionTest{}, fmt.Errorf("test carrier connection: %w", err)
	}
	return envelope.Object[domain.ConnectionTest](body)
}

// GetSettings returns the tenant's shipping settings.
func (c *Client) GetSettings(ctx context.Context, scope auth.Scope) (domain.ShippingSettings, error) {
	body, err := c.rest.Get(ctx, "/api/shipping/shipping-settings", nil, scope)
	if err != nil {
		return domain.ShippingSettings{}, fmt.Errorf("get shipping settings: %w", err)
	}
	return envelope.Object[domain.ShippingSettings](body)
}

// UpdateSettings replaces the tenant's shipping settings.
func (c *Client) UpdateSettings(ctx context.Context, scope auth.Scope, settings domain.ShippingSettings) (domain.ShippingSettings, error) {
	body, err := c.rest.Put(ctx, "/api/shipping/shipping-settings", scope, settings)
	if err != nil {
		return domain.ShippingSettings{}, fmt.Errorf("update shipping settings: %w", err)
	}
	return envelope.Object[domain.ShippingSettings](body)
}
