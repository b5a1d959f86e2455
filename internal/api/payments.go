package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Tesseract-Nexus/admin-bff/internal/auth"
	"github.com/Tesseract-Nexus/admin-bff/internal/domain"
	"github.com/Tesseract-Nexus/admin-bff/internal/mutate"
	"github.com/Tesseract-Nexus/admin-bff/internal/orders"
	"github.com/Tesseract-Nexus/admin-bff/internal/pkg/httputil"
)

// ListGatewayConfigs returns the tenant's gateway configurations with secret
// material masked. Full keys never leave the BFF on reads.
func (h *Handlers) ListGatewayConfigs(w http.ResponseWriter, r *http.Request) {
	scope := auth.ScopeFromRequest(r)
	configs, err := h.orders.ListGatewayConfigs(r.Context(), scope)
	if err != nil {
		proxyError(w, err)
		return
	}
	for i := range configs {
		configs[i].MaskSecrets()
	}
	httputil.OK(w, configs)
}

// CreateGatewayConfig validates and registers a gateway configuration.
// Keys come from the operator; the BFF never generates credentials.
func (h *Handlers) CreateGatewayConfig(w http.ResponseWriter, r *http.Request) {
	scope := auth.ScopeFromRequest(r)

	var input orders.GatewayInput
	if !httputil.Decode(w, r, &input) {
		return
	}
	if err := h.validate.Struct(input); err != nil {
		httputil.BadRequest(w, "Invalid gateway config: "+err.Error())
		return
	}

	cfg, err := h.orders.CreateGatewayConfig(r.Context(), scope, input)
	if err != nil {
		h.recordAudit(scope, "gateway", "", mutate.ActionCreate, domain.AuditFailed, err.Error())
		failMutation(w, mutate.ActionCreate, err)
		return
	}
	h.recordAudit(scope, "gateway", cfg.ID, mutate.ActionCreate, domain.AuditOK, string(cfg.GatewayType))
	cfg.MaskSecrets()
	httputil.Created(w, cfg)
}

// UpdateGatewayConfig edits a gateway configuration.
func (h *Handlers) UpdateGatewayConfig(w http.ResponseWriter, r *http.Request) {
	scope := auth.ScopeFromRequest(r)
	id := chi.URLParam(r, "id")

	var input orders.GatewayInput
	if !httputil.Decode(w, r, &input) {
		return
	}
	if err := h.validate.Struct(input); err != nil {
		httputil.BadRequest(w, "Invalid gateway config: "+err.Error())
		return
	}

	release := h.beginMutation(w, id, mutate.ActionEdit)
	if release == nil {
		return
	}
	defer release()

	cfg, err := h.orders.UpdateGatewayConfig(r.Context(), scope, id, input)
	if err != nil {
		h.recordAudit(scope, "gateway", id, mutate.ActionEdit, domain.AuditFailed, err.Error())
		failMutation(w, mutate.ActionEdit, err)
		return
	}
	h.recordAudit(scope, "gateway", id, mutate.ActionEdit, domain.AuditOK, "")
	cfg.MaskSecrets()
	httputil.OK(w, cfg)
}

// SetGatewayEnabled toggles a gateway by its code.
func (h *Handlers) SetGatewayEnabled(w http.ResponseWriter, r *http.Request) {
	scope := auth.ScopeFromRequest(r)
	code := chi.URLParam(r, "code")

	var input struct {
		Enabled bool `json:"enabled"`
	}
	if !httputil.Decode(w, r, &input) {
		return
	}

	release := h.beginMutation(w, code, mutate.ActionEnable)
	if release == nil {
		return
	}
	defer release()

	cfg, err := h.orders.SetGatewayEnabled(r.Context(), scope, code, input.Enabled)
	if err != nil {
		h.recordAudit(scope, "gateway", code, mutate.ActionEnable, domain.AuditFailed, err.Error())
		failMutation(w, mutate.ActionEnable, err)
		return
	}
	h.recordAudit(scope, "gateway", code, mutate.ActionEnable, domain.AuditOK, "")
	cfg.MaskSecrets()
	httputil.OK(w, cfg)
}

// DeleteGatewayConfig removes a gateway configuration. Destructive: requires
// confirm=true and makes zero backend calls without it.
func (h *Handlers) DeleteGatewayConfig(w http.ResponseWriter, r *http.Request) {
	scope := auth.ScopeFromRequest(r)
	id := chi.URLParam(r, "id")

	if !requireConfirm(w, r, mutate.ActionDelete) {
		h.recordAudit(scope, "gateway", id, mutate.ActionDelete, domain.AuditRejected, "confirmation missing")
		return
	}
	release := h.beginMutation(w, id, mutate.ActionDelete)
	if release == nil {
		return
	}
	defer release()

	if err := h.orders.DeleteGatewayConfig(r.Context(), scope, id); err != nil {
		h.recordAudit(scope, "gateway", id, mutate.ActionDelete, domain.AuditFailed, err.Error())
		failMutation(w, mutate.ActionDelete, err)
		return
	}
	h.recordAudit(scope, "gateway", id, mutate.ActionDelete, domain.AuditOK, "")
	httputil.OK(w, map[string]string{"id": id})
}
