package domain

import "time"

// Tenant is a storefront tenant as reported by the tenant service.
type Tenant struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"` // caller's role within the tenant

	BusinessName string `json:"businessName,omitempty"`
	BusinessType string `json:"businessType,omitempty"`
	Country      string `json:"country,omitempty"`
	Timezone     string `json:"timezone,omitempty"`

	// Custom admin domain mapping, if one is active for this tenant.
	AdminDomain string `json:"adminDomain,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// TenantContext is the resolved per-tenant context document used to
// bootstrap a dashboard session.
type TenantContext struct {
	Tenant   Tenant            `json:"tenant"`
	Features map[string]bool   `json:"features,omitempty"`
	Settings map[string]string `json:"settings,omitempty"`
}

// SlugCheck is the result of a tenant-slug existence lookup.
type SlugCheck struct {
	Slug      string `json:"slug"`
	Exists    bool   `json:"exists"`
	Available bool   `json:"available"`
}

// CustomDomain is an admin-domain mapping row from the custom-domain service.
type CustomDomain struct {
	ID         string `json:"id"`
	TenantID   string `json:"tenantId"`
	Hostname   string `json:"hostname"`
	TargetType string `json:"targetType"` // admin or storefront
	Status     string `json:"status"`     // pending, active, failed
}
