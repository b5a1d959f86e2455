// Package api exposes the BFF's HTTP surface: proxy routes in front of the
// backend services, list endpoints with shared filter/pagination semantics,
// and mutation endpoints with confirmation gating and per-entity in-flight
// tracking.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/Tesseract-Nexus/admin-bff/internal/auth"
	"github.com/Tesseract-Nexus/admin-bff/internal/config"
	"github.com/Tesseract-Nexus/admin-bff/internal/customdomain"
	"github.com/Tesseract-Nexus/admin-bff/internal/domain"
	"github.com/Tesseract-Nexus/admin-bff/internal/envelope"
	"github.com/Tesseract-Nexus/admin-bff/internal/listview"
	"github.com/Tesseract-Nexus/admin-bff/internal/mutate"
	"github.com/Tesseract-Nexus/admin-bff/internal/orders"
	"github.com/Tesseract-Nexus/admin-bff/internal/pkg/httputil"
	"github.com/Tesseract-Nexus/admin-bff/internal/pkg/logger"
	"github.com/Tesseract-Nexus/admin-bff/internal/service/audit"
	"github.com/Tesseract-Nexus/admin-bff/internal/settings"
	"github.com/Tesseract-Nexus/admin-bff/internal/shipping"
	"github.com/Tesseract-Nexus/admin-bff/internal/tenants"
)

// Handlers carries the backend clients and shared mutation/list state for
// all routes.
type Handlers struct {
	tenants  *tenants.Client
	orders   *orders.Client
	shipping *shipping.Client
	domains  *customdomain.Client
	settings *settings.Client

	tracker  *mutate.Tracker
	audit    *audit.Service
	validate *validator.Validate

	// baseCtx bounds background list refreshes (server lifetime, not the
	// triggering request).
	baseCtx context.Context

	mu    sync.Mutex
	views map[string]*campaignView // tenant id → cached campaign list view
}

// NewHandlers wires the handler set. auditSvc may be nil (audit disabled).
func NewHandlers(
	ctx context.Context,
	cfg *config.Config,
	auditSvc *audit.Service,
	settingsStore settings.Store,
) *Handlers {
	return &Handlers{
		tenants:  tenants.NewClient(cfg.Tenants, cfg.Cache),
		orders:   orders.NewClient(cfg.Orders),
		shipping: shipping.NewClient(cfg.Shipping),
		domains:  customdomain.NewClient(cfg.CustomDomain),
		settings: settings.NewClient(cfg.Settings, settingsStore),
		tracker:  mutate.NewTracker(),
		audit:    auditSvc,
		validate: validator.New(),
		baseCtx:  ctx,
		views:    make(map[string]*campaignView),
	}
}

// requireConfirm enforces the confirmation step for destructive actions:
// without confirm=true in the query, the handler responds 409 with a
// confirmation challenge and the caller must make no backend call.
func requireConfirm(w http.ResponseWriter, r *http.Request, action mutate.Action) bool {
	if !action.Destructive() {
		return true
	}
	if r.URL.Query().Get("confirm") == "true" {
		return true
	}
	httputil.JSON(w, http.StatusConflict, map[string]any{
		"success":              false,
		"message":              "This action requires confirmation.",
		"confirmationRequired": true,
		"action":               string(action),
	})
	return false
}

// beginMutation claims the entity in the in-flight tracker, responding 409
// when it is already busy. The returned release is nil when claiming failed.
func (h *Handlers) beginMutation(w http.ResponseWriter, entityID string, action mutate.Action) func() {
	release, err := h.tracker.Begin(entityID, action)
	if err != nil {
		var busy *mutate.ErrBusy
		if errors.As(err, &busy) {
			httputil.Conflict(w, "Another "+string(busy.Action)+" action is already in progress for this item.")
		} else {
			httputil.Conflict(w, "Another action is already in progress for this item.")
		}
		return nil
	}
	return release
}

// recordAudit appends an audit entry for a mutation attempt.
func (h *Handlers) recordAudit(scope auth.Scope, entityKind, entityID string, action mutate.Action, outcome, detail string) {
	h.audit.Record(domain.AuditEntry{
		TenantID:   scope.TenantID,
		ActorID:    scope.UserID,
		EntityKind: entityKind,
		EntityID:   entityID,
		Action:     string(action),
		Outcome:    outcome,
		Detail:     detail,
	})
}

// failMutation writes the client-facing failure for a mutation: the backend
// status and message when the backend answered, 502 otherwise. The raw error
// is logged here so FailureMessage can stay presentation-only.
func failMutation(w http.ResponseWriter, action mutate.Action, err error) {
	logger.Error("mutation failed", "action", string(action), "error", err.Error())

	status := http.StatusBadGateway
	var remote *envelope.RemoteError
	if errors.As(err, &remote) && remote.Status != 0 {
		status = remote.Status
	}
	httputil.Fail(w, status, mutate.FailureMessage(action, err))
}

// proxyError maps a read-path client error onto the response: backend status
// and message pass through, transport failures become 502.
func proxyError(w http.ResponseWriter, err error) {
	var remote *envelope.RemoteError
	if errors.As(err, &remote) && remote.Status != 0 {
		httputil.Fail(w, remote.Status, remote.Message)
		return
	}
	logger.Error("backend unreachable", "error", err.Error())
	httputil.BadGateway(w, "Service temporarily unavailable. Please try again.")
}

// decodeOptional decodes a JSON body into dst, tolerating an empty body.
func decodeOptional(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == io.EOF {
		return nil
	}
	return err
}

// listResponse is the standard paged list payload.
type listResponse[T any] struct {
	Items      []T    `json:"items"`
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
	TotalItems int    `json:"totalItems"`
	Error      string `json:"error,omitempty"`
}

func snapshotResponse[T any](s listview.Snapshot[T]) listResponse[T] {
	return listResponse[T]{
		Items:      s.Items,
		Page:       s.Page,
		TotalPages: s.TotalPages,
		TotalItems: s.TotalItems,
		Error:      s.Err,
	}
}
