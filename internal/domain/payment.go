package domain

import "strings"

// GatewayType enumerates the supported payment gateway providers.
type GatewayType string

const (
	GatewayStripe    GatewayType = "STRIPE"
	GatewayPayPal    GatewayType = "PAYPAL"
	GatewayRazorpay  GatewayType = "RAZORPAY"
	GatewayPhonePe   GatewayType = "PHONEPE"
	GatewayBharatPay GatewayType = "BHARATPAY"
	GatewayAfterpay  GatewayType = "AFTERPAY"
	GatewayZip       GatewayType = "ZIP"
	GatewayLinkt     GatewayType = "LINKT"
)

// PaymentGatewayConfig is a tenant's configuration for one payment provider.
// Credentials are backend-managed; the BFF never generates keys and masks
// secret material on reads.
type PaymentGatewayConfig struct {
	ID          string      `json:"id"`
	TenantID    string      `json:"tenantId"`
	GatewayType GatewayType `json:"gatewayType"`

	PublicKey  string `json:"publicKey"`
	SecretKey  string `json:"secretKey,omitempty"`
	WebhookKey string `json:"webhookKey,omitempty"`

	IsEnabled  bool `json:"isEnabled"`
	IsTestMode bool `json:"isTestMode"`
	Priority   int  `json:"priority"`

	SupportedCountries      []string `json:"supportedCountries"`
	SupportedPaymentMethods []string `json:"supportedPaymentMethods"`
}

// MaskSecrets replaces secret credential material with a masked form that
// preserves only the last four characters, matching how the dashboard
// displays stored keys. Safe to call on an already-masked config.
func (c *PaymentGatewayConfig) MaskSecrets() {
	c.SecretKey = maskKey(c.SecretKey)
	c.WebhookKey = maskKey(c.WebhookKey)
}

func maskKey(k string) string {
	if k == "" {
		return ""
	}
	if len(k) <= 4 {
		return "****"
	}
	if strings.HasPrefix(k, "****") {
		return k
	}
	return "****" + k[len(k)-4:]
}
