package domain

// CarrierConfig is a shipping carrier integration configured for a tenant.
type CarrierConfig struct {
	ID          string `json:"id"`
	TenantID    string `json:"tenantId"`
	CarrierCode string `json:"carrierCode"` // e.g. AUSPOST, FEDEX, DHL
	DisplayName string `json:"displayName"`
	IsEnabled   bool   `json:"isEnabled"`
	IsTestMode  bool   `json:"isTestMode"`
	APIKey      string `json:"apiKey,omitempty"`
	AccountID   string `json:"accountId,omitempty"`
}

// ConnectionTest is the result of a carrier test-connection probe, reported
// by the shipping service.
type ConnectionTest struct {
	CarrierConfigID string `json:"carrierConfigId"`
	Success         bool   `json:"success"`
	LatencyMs       int    `json:"latencyMs"`
	Message         string `json:"message,omitempty"`
}

// ShippingSettings is the tenant-level shipping settings document.
type ShippingSettings struct {
	TenantID             string  `json:"tenantId"`
	FreeShippingEnabled  bool    `json:"freeShippingEnabled"`
	FreeShippingMinimum  float64 `json:"freeShippingMinimum"`
	DefaultCarrierCode   string  `json:"defaultCarrierCode"`
	HandlingFee          float64 `json:"handlingFee"`
	DispatchLeadTimeDays int     `json:"dispatchLeadTimeDays"`
}

// SettingsDocument is a generic context-scoped settings document from the
// settings service, keyed by {applicationId, scope, tenantId}.
type SettingsDocument struct {
	ApplicationID string         `json:"applicationId"`
	Scope         string         `json:"scope"`
	TenantID      string         `json:"tenantId"`
	Values        map[string]any `json:"values"`
	Version       int            `json:"version"`
}

// Key returns the cache key for a settings document identity.
func (d *SettingsDocument) Key() string {
	return d.ApplicationID + ":" + d.Scope + ":" + d.TenantID
}
