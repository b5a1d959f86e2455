package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Tesseract-Nexus/admin-bff/internal/auth"
	"github.com/Tesseract-Nexus/admin-bff/internal/domain"
	"github.com/Tesseract-Nexus/admin-bff/internal/pkg/httputil"
)

// ListCarrierConfigs returns the tenant's carrier configurations.
func (h *Handlers) ListCarrierConfigs(w http.ResponseWriter, r *http.Request) {
	scope := auth.ScopeFromRequest(r)
	configs, err := h.shipping.ListCarrierConfigs(r.Context(), scope)
	if err != nil {
		proxyError(w, err)
		return
	}
	httputil.OK(w, configs)
}

// TestCarrierConnection runs the connection probe for one carrier config.
func (h *Handlers) TestCarrierConnection(w http.ResponseWriter, r *http.Request) {
	scope := auth.ScopeFromRequest(r)
	result, err := h.shipping.TestConnection(r.Context(), scope, chi.URLParam(r, "id"))
	if err != nil {
		proxyError(w, err)
		return
	}
	httputil.OK(w, result)
}

// GetShippingSettings returns the tenant's shipping settings.
func (h *Handlers) GetShippingSettings(w http.ResponseWriter, r *http.Request) {
	scope := auth.ScopeFromRequest(r)
	settings, err := h.shipping.GetSettings(r.Context(), scope)
	if err != nil {
		proxyError(w, err)
		return
	}
	httputil.OK(w, settings)
}

// UpdateShippingSettings replaces the tenant's shipping settings.
func (h *Handlers) UpdateShippingSettings(w http.ResponseWriter, r *http.Request) {
	scope := auth.ScopeFromRequest(r)

	var input domain.ShippingSettings
	if !httputil.Decode(w, r, &input) {
		return
	}

	updated, err := h.shipping.UpdateSettings(r.Context(), scope, input)
	if err != nil {
		proxyError(w, err)
		return
	}
	httputil.OK(w, updated)
}
