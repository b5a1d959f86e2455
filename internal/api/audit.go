package api

import (
	"net/http"

	"github.com/Tesseract-Nexus/admin-bff/internal/auth"
	"github.com/Tesseract-Nexus/admin-bff/internal/domain"
	"github.com/Tesseract-Nexus/admin-bff/internal/listview"
	"github.com/Tesseract-Nexus/admin-bff/internal/pkg/httputil"
	"github.com/Tesseract-Nexus/admin-bff/internal/service/audit"
)

// ListAudit returns the tenant's mutation audit trail, newest first.
func (h *Handlers) ListAudit(w http.ResponseWriter, r *http.Request) {
	scope := auth.ScopeFromRequest(r)
	q := r.URL.Query()
	page, perPage := listview.PageParams(q, 50)
	if page < 1 {
		page = 1
	}

	entries, total, err := h.audit.List(r.Context(), scope.TenantID, audit.ListFilter{
		EntityKind: q.Get("entityKind"),
		Action:     q.Get("action"),
		Limit:      perPage,
		Offset:     (page - 1) * perPage,
	})
	if err != nil {
		httputil.InternalError(w, err)
		return
	}

	totalPages := (total + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}
	httputil.OK(w, listResponse[domain.AuditEntry]{
		Items:      entries,
		Page:       page,
		TotalPages: totalPages,
		TotalItems: total,
	})
}
