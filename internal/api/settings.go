package api

import (
	"net/http"

	"github.com/Tesseract-Nexus/admin-bff/internal/auth"
	"github.com/Tesseract-Nexus/admin-bff/internal/pkg/httputil"
)

// GetSettings returns a context-scoped settings document, served from the
// cache when fresh.
func (h *Handlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	scope := auth.ScopeFromRequest(r)
	q := r.URL.Query()
	appID, docScope := q.Get("applicationId"), q.Get("scope")
	if appID == "" || docScope == "" {
		httputil.BadRequest(w, "applicationId and scope are required")
		return
	}

	doc, err := h.settings.Get(r.Context(), scope, appID, docScope)
	if err != nil {
		proxyError(w, err)
		return
	}
	httputil.OK(w, doc)
}

// UpdateSettings writes a settings document through to the settings service
// and invalidates the cached copy.
func (h *Handlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	scope := auth.ScopeFromRequest(r)

	var input struct {
		ApplicationID string         `json:"applicationId" validate:"required"`
		Scope         string         `json:"scope" validate:"required"`
		Values        map[string]any `json:"values" validate:"required"`
	}
	if !httputil.Decode(w, r, &input) {
		return
	}
	if err := h.validate.Struct(input); err != nil {
		httputil.BadRequest(w, "applicationId, scope and values are required")
		return
	}

	doc, err := h.settings.Put(r.Context(), scope, input.ApplicationID, input.Scope, input.Values)
	if err != nil {
		proxyError(w, err)
		return
	}
	httputil.OK(w, doc)
}
