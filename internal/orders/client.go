// Package orders is the client for the orders service, which also hosts the
// marketing (campaigns, segments) and payment-configuration APIs.
package orders

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Tesseract-Nexus/admin-bff/internal/auth"
	"github.com/Tesseract-Nexus/admin-bff/internal/config"
	"github.com/Tesseract-Nexus/admin-bff/internal/domain"
	"github.com/Tesseract-Nexus/admin-bff/internal/envelope"
	"github.com/Tesseract-Nexus/admin-bff/internal/pkg/restclient"
)

// Sentinel errors for backend lookups.
var (
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrOrderNotFound    = errors.New("order not found")
)

// Client is an orders service client.
type Client struct {
	rest *restclient.Client
}

// NewClient creates an orders service client.
func NewClient(cfg config.ServiceConfig) *Client {
	return &Client{rest: restclient.New("orders", cfg)}
}

// ----------------------------------------------------------------------------
// Campaigns
// ----------------------------------------------------------------------------

// ListCampaigns returns the campaigns matching the given server query.
func (c *Client) ListCampaigns(ctx context.Context, scope auth.Scope, q url.Values) ([]domain.Campaign, error) {
	body, err := c.rest.Get(ctx, "/campaigns", q, scope)
	if err != nil {
		return []domain.Campaign{}, fmt.Errorf("list campaigns: %w", err)
	}
	return envelope.List[domain.Campaign](body, "campaigns")
}

// GetCampaign returns a single campaign.
func (c *Client) GetCampaign(ctx context.Context, scope auth.Scope, id string) (domain.Campaign, error) {
	body, err := c.rest.Get(ctx, "/campaigns/"+url.PathEscape(id), nil, scope)
	if err != nil {
		if statusOf(err) == http.StatusNotFound {
			return domain.Campaign{}, ErrCampaignNotFound
		}
		return domain.Campaign{}, fmt.Errorf("get campaign: %w", err)
	}
	return envelope.Object[domain.Campaign](body)
}

// CampaignInput is the create/edit payload for a campaign.
type CampaignInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Type        string `json:"type" validate:"required,oneof=PROMOTION ABANDONED_CART WELCOME WINBACK PRODUCT_LAUNCH NEWSLETTER"`
	Channel     string `json:"channel" validate:"required,oneof=EMAIL SMS MULTI"`
	Subject     string `json:"subject"`
	Content     string `json:"content" validate:"required"`
	HTMLContent string `json:"htmlContent"`
	SegmentID   string `json:"segmentId"`
}

// CreateCampaign creates a campaign in DRAFT status.
func (c *Client) CreateCampaign(ctx context.Context, scope auth.Scope, input CampaignInput) (domain.Campaign, error) {
	body, err := c.rest.Post(ctx, "/campaigns", scope, input)
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("create campaign: %w", err)
	}
	return envelope.Object[domain.Campaign](body)
}

// UpdateCampaign edits a campaign's mutable fields.
func (c *Client) UpdateCampaign(ctx context.Context, scope auth.Scope, id string, input CampaignInput) (domain.Campaign, error) {
	body, err := c.rest.Put(ctx, "/campaigns/"+url.PathEscape(id), scope, input)
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("update campaign: %w", err)
	}
	return envelope.Object[domain.Campaign](body)
}

// SendCampaign starts delivery. The backend decides whether the transition
// is legal from the campaign's current state.
func (c *Client) SendCampaign(ctx context.Context, scope auth.Scope, id string) (domain.Campaign, error) {
	return c.campaignAction(ctx, scope, id, "send")
}

// PauseCampaign pauses a SENDING or SCHEDULED campaign.
func (c *Client) PauseCampaign(ctx context.Context, scope auth.Scope, id string) (domain.Campaign, error) {
	return c.campaignAction(ctx, scope, id, "pause")
}

// ResumeCampaign resumes a PAUSED campaign.
func (c *Client) ResumeCampaign(ctx context.Context, scope auth.Scope, id string) (domain.Campaign, error) {
	return c.campaignAction(ctx, scope, id, "resume")
}

func (c *Client) campaignAction(ctx context.Context, scope auth.Scope, id, action string) (domain.Campaign, error) {
	body, err := c.rest.Post(ctx, "/campaigns/"+url.PathEscape(id)+"/"+action, scope, nil)
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("%s campaign: %w", action, err)
	}
	return envelope.Object[domain.Campaign](body)
}

// CampaignStats returns the aggregate campaign counters.
func (c *Client) CampaignStats(ctx context.Context, scope auth.Scope) (domain.CampaignStats, error) {
	body, err := c.rest.Get(ctx, "/campaigns/stats", nil, scope)
	if err != nil {
		return domain.CampaignStats{}, fmt.Errorf("campaign stats: %w", err)
	}
	return envelope.Object[domain.CampaignStats](body)
}

// ListSegments returns the audience segments available for targeting.
func (c *Client) ListSegments(ctx context.Context, scope auth.Scope) ([]domain.Segment, error) {
	body, err := c.rest.Get(ctx, "/marketing/segments", nil, scope)
	if err != nil {
		return []domain.Segment{}, fmt.Errorf("list segments: %w", err)
	}
	return envelope.List[domain.Segment](body, "segments")
}

// ----------------------------------------------------------------------------
// Orders
// ----------------------------------------------------------------------------

// ListOrders returns the orders matching the given server query.
func (c *Client) ListOrders(ctx context.Context, scope auth.Scope, q url.Values) ([]domain.Order, error) {
	body, err := c.rest.Get(ctx, "/orders", q, scope)
	if err != nil {
		return []domain.Order{}, fmt.Errorf("list orders: %w", err)
	}
	return envelope.List[domain.Order](body, "orders")
}

// GetOrder returns a single order with its items.
func (c *Client) GetOrder(ctx context.Context, scope auth.Scope, id string) (domain.Order, error) {
	body, err := c.rest.Get(ctx, "/orders/"+url.PathEscape(id), nil, scope)
	if err != nil {
		if statusOf(err) == http.StatusNotFound {
			return domain.Order{}, ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("get order: %w", err)
	}
	return envelope.Object[domain.Order](body)
}

// Transitions returns the server-authoritative set of legal next states.
func (c *Client) Transitions(ctx context.Context, scope auth.Scope, id string) (domain.OrderTransitions, error) {
	body, err := c.rest.Get(ctx, "/orders/"+url.PathEscape(id)+"/transitions", nil, scope)
	if err != nil {
		return domain.OrderTransitions{}, fmt.Errorf("order transitions: %w", err)
	}
	return envelope.Object[domain.OrderTransitions](body)
}

// UpdateOrderStatus requests an order status transition.
func (c *Client) UpdateOrderStatus(ctx context.Context, scope auth.Scope, id, status string) (domain.Order, error) {
	return c.orderPatch(ctx, scope, id, "status", map[string]string{"status": status})
}

// UpdatePaymentStatus requests a payment status transition.
func (c *Client) UpdatePaymentStatus(ctx context.Context, scope auth.Scope, id, status string) (domain.Order, error) {
	return c.orderPatch(ctx, scope, id, "payment-status", map[string]string{"paymentStatus": status})
}

// UpdateFulfillmentStatus requests a fulfillment status transition.
func (c *Client) UpdateFulfillmentStatus(ctx context.Context, scope auth.Scope, id, status string) (domain.Order, error) {
	return c.orderPatch(ctx, scope, id, "fulfillment-status", map[string]string{"fulfillmentStatus": status})
}

func (c *Client) orderPatch(ctx context.Context, scope auth.Scope, id, path string, payload any) (domain.Order, error) {
	body, err := c.rest.Put(ctx, "/orders/"+url.PathEscape(id)+"/"+path, scope, payload)
	if err != nil {
		return domain.Order{}, fmt.Errorf("update order %s: %w", path, err)
	}
	return envelope.Object[domain.Order](body)
}

// CancelOrder cancels an order.
func (c *Client) CancelOrder(ctx context.Context, scope auth.Scope, id, reason string) (domain.Order, error) {
	body, err := c.rest.Post(ctx, "/orders/"+url.PathEscape(id)+"/cancel", scope, map[string]string{"reason": reason})
	if err != nil {
		return domain.Order{}, fmt.Errorf("cancel order: %w", err)
	}
	return envelope.Object[domain.Order](body)
}

// GenerateReceipt asks the backend to render a receipt for the order and
// returns the updated order carrying the receipt reference.
func (c *Client) GenerateReceipt(ctx context.Context, scope auth.Scope, id string) (domain.Order, error) {
	body, err := c.rest.Post(ctx, "/orders/"+url.PathEscape(id)+"/generate-receipt", scope, nil)
	if err != nil {
		return domain.Order{}, fmt.Errorf("generate receipt: %w", err)
	}
	return envelope.Object[domain.Order](body)
}

// ----------------------------------------------------------------------------
// Payment gateway configs
// ----------------------------------------------------------------------------

// ListGatewayConfigs returns the tenant's payment gateway configurations.
func (c *Client) ListGatewayConfigs(ctx context.Context, scope auth.Scope) ([]domain.PaymentGatewayConfig, error) {
	body, err := c.rest.Get(ctx, "/payments/configs", nil, scope)
	if err != nil {
		return []domain.PaymentGatewayConfig{}, fmt.Errorf("list gateway configs: %w", err)
	}
	return envelope.List[domain.PaymentGatewayConfig](body, "configs", "gateways")
}

// GatewayInput is the create/edit payload for a gateway configuration.
// Credential material originates with the operator; the BFF never generates
// keys.
type GatewayInput struct {
	GatewayType             string   `json:"gatewayType" validate:"required,oneof=STRIPE PAYPAL RAZORPAY PHONEPE BHARATPAY AFTERPAY ZIP LINKT"`
	PublicKey               string   `json:"publicKey" validate:"required"`
	SecretKey               string   `json:"secretKey" validate:"required"`
	WebhookKey              string   `json:"webhookKey"`
	IsTestMode              bool     `json:"isTestMode"`
	Priority                int      `json:"priority"`
	SupportedCountries      []string `json:"supportedCountries"`
	SupportedPaymentMethods []string `json:"supportedPaymentMethods"`
}

// CreateGatewayConfig registers a new gateway configuration.
func (c *Client) CreateGatewayConfig(ctx context.Context, scope auth.Scope, input GatewayInput) (domain.PaymentGatewayConfig, error) {
	body, err := c.rest.Post(ctx, "/payments/configs", scope, input)
	if err != nil {
		return domain.PaymentGatewayConfig{}, fmt.Errorf("create gateway config: %w", err)
	}
	return envelope.Object[domain.PaymentGatewayConfig](body)
}

// UpdateGatewayConfig edits an existing gateway configuration.
func (c *Client) UpdateGatewayConfig(ctx context.Context, scope auth.Scope, id string, input GatewayInput) (domain.PaymentGatewayConfig, error) {
	body, err := c.rest.Put(ctx, "/payments/configs/"+url.PathEscape(id), scope, input)
	if err != nil {
		return domain.PaymentGatewayConfig{}, fmt.Errorf("update gateway config: %w", err)
	}
	return envelope.Object[domain.PaymentGatewayConfig](body)
}

// SetGatewayEnabled toggles a gateway by its gateway code.
func (c *Client) SetGatewayEnabled(ctx context.Context, scope auth.Scope, code string, enabled bool) (domain.PaymentGatewayConfig, error) {
	body, err := c.rest.Post(ctx, "/payments/configs/"+url.PathEscape(code)+"/enable", scope, map[string]bool{"enabled": enabled})
	if err != nil {
		return domain.PaymentGatewayConfig{}, fmt.Errorf("toggle gateway: %w", err)
	}
	return envelope.Object[domain.PaymentGatewayConfig](body)
}

// DeleteGatewayConfig removes a gateway configuration.
func (c *Client) DeleteGatewayConfig(ctx context.Context, scope auth.Scope, id string) error {
	if _, err := c.rest.Delete(ctx, "/payments/configs/"+url.PathEscape(id), scope); err != nil {
		return fmt.Errorf("delete gateway config: %w", err)
	}
	return nil
}

// statusOf extracts the backend status from an error chain, or 0.
func statusOf(err error) int {
	var remote *envelope.RemoteError
	if errors.As(err, &remote) {
		return remote.Status
	}
	return 0
}
