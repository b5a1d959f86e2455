package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Tesseract-Nexus/admin-bff/internal/auth"
	"github.com/Tesseract-Nexus/admin-bff/internal/pkg/httputil"
	"github.com/Tesseract-Nexus/admin-bff/internal/pkg/logger"
	"github.com/Tesseract-Nexus/admin-bff/internal/tenants"
)

// ListMyTenants returns the tenants the caller belongs to.
func (h *Handlers) ListMyTenants(w http.ResponseWriter, r *http.Request) {
	scope := auth.ScopeFromRequest(r)
	list, err := h.tenants.ListMine(r.Context(), scope)
	if err != nil {
		proxyError(w, err)
		return
	}
	httputil.OK(w, list)
}

// GetTenant returns one tenant. Access checks happen in the tenant service;
// a denial maps to 403 without leaking whether the tenant exists.
func (h *Handlers) GetTenant(w http.ResponseWriter, r *http.Request) {
	scope := auth.ScopeFromRequest(r)
	tenant, err := h.tenants.Get(r.Context(), scope, chi.URLParam(r, "id"))
	if err != nil {
		switch err {
		case tenants.ErrAccessDenied:
			httputil.Fail(w, http.StatusForbidden, "You do not have access to this tenant")
		case tenants.ErrNotFound:
			httputil.NotFound(w, "Tenant not found")
		default:
			proxyError(w, err)
		}
		return
	}
	httputil.OK(w, tenant)
}

// GetTenantContext returns the per-tenant bootstrap document.
func (h *Handlers) GetTenantContext(w http.ResponseWriter, r *http.Request) {
	scope := auth.ScopeFromRequest(r)
	tc, err := h.tenants.Context(r.Context(), scope, chi.URLParam(r, "id"))
	if err != nil {
		proxyError(w, err)
		return
	}
	httputil.OK(w, tc)
}

// GetOnboardingData proxies the onboarding payload untouched.
func (h *Handlers) GetOnboardingData(w http.ResponseWriter, r *http.Request) {
	scope := auth.ScopeFromRequest(r)
	raw, err := h.tenants.OnboardingData(r.Context(), scope, chi.URLParam(r, "id"))
	if err != nil {
		proxyError(w, err)
		return
	}
	httputil.OK(w, raw)
}

// GetGrowthBook proxies the tenant's feature-flag bootstrap document.
func (h *Handlers) GetGrowthBook(w http.ResponseWriter, r *http.Request) {
	scope := auth.ScopeFromRequest(r)
	raw, err := h.tenants.GrowthBook(r.Context(), scope, chi.URLParam(r, "id"))
	if err != nil {
		proxyError(w, err)
		return
	}
	httputil.OK(w, raw)
}

// CreateTenant validates and creates a tenant for the calling user.
func (h *Handlers) CreateTenant(w http.ResponseWriter, r *http.Request) {
	scope := auth.ScopeFromRequest(r)

	var input tenants.CreateInput
	if !httputil.Decode(w, r, &input) {
		return
	}
	if err := h.validate.Struct(input); err != nil {
		httputil.BadRequest(w, "Invalid tenant: "+err.Error())
		return
	}

	tenant, err := h.tenants.CreateForUser(r.Context(), scope, input)
	if err != nil {
		proxyError(w, err)
		return
	}
	httputil.Created(w, tenant)
}

// CheckSlug is the uncached slug availability proxy used by the signup flow.
func (h *Handlers) CheckSlug(w http.ResponseWriter, r *http.Request) {
	scope := auth.ScopeFromRequest(r)
	slug := r.URL.Query().Get("slug")
	if slug == "" {
		httputil.BadRequest(w, "slug is required")
		return
	}

	check, err := h.tenants.CheckSlug(r.Context(), scope, slug)
	if err != nil {
		proxyError(w, err)
		return
	}
	httputil.OK(w, check)
}

// ValidateSlug is the cached slug existence check used on every dashboard
// route resolution. It fails open: when the tenant service cannot answer,
// the slug is reported as existing so an outage never locks operators out.
// Stale-positive risk is bounded by the cache TTL.
func (h *Handlers) ValidateSlug(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")
	if slug == "" {
		httputil.BadRequest(w, "slug is required")
		return
	}

	exists, err := h.tenants.SlugExists(r.Context(), slug)
	if err != nil {
		logger.Warn("slug validation failing open", "slug", slug, "error", err.Error())
		exists = true
	}
	httputil.OK(w, map[string]any{"slug": slug, "exists": exists})
}

// ListAdminDomains returns active custom admin-domain mappings.
func (h *Handlers) ListAdminDomains(w http.ResponseWriter, r *http.Request) {
	scope := auth.ScopeFromRequest(r)
	domains, err := h.domains.ListAdminDomains(r.Context(), scope)
	if err != nil {
		proxyError(w, err)
		return
	}
	httputil.OK(w, domains)
}
