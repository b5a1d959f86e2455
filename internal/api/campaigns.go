package api

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Tesseract-Nexus/admin-bff/internal/auth"
	"github.com/Tesseract-Nexus/admin-bff/internal/domain"
	"github.com/Tesseract-Nexus/admin-bff/internal/listview"
	"github.com/Tesseract-Nexus/admin-bff/internal/mutate"
	"github.com/Tesseract-Nexus/admin-bff/internal/orders"
	"github.com/Tesseract-Nexus/admin-bff/internal/pkg/httputil"
)

// campaignFilterFields are the categorical filters the campaign list accepts.
var campaignFilterFields = []string{"status", "type", "channel"}

var campaignAccessor = listview.Accessor[domain.Campaign]{
	SearchText: func(c domain.Campaign) []string {
		return []string{c.Name, c.Description, c.Subject}
	},
	Field: func(c domain.Campaign, name string) string {
		switch name {
		case "status":
			return string(c.Status)
		case "type":
			return string(c.Type)
		case "channel":
			return string(c.Channel)
		}
		return ""
	},
}

// campaignView is one tenant's cached campaign list. The scope is refreshed
// on every request so background fetches carry a recent token.
type campaignView struct {
	ctrl  *listview.Controller[domain.Campaign]
	scope atomic.Value // auth.Scope
}

func (h *Handlers) campaignView(scope auth.Scope) *campaignView {
	h.mu.Lock()
	defer h.mu.Unlock()

	view, ok := h.views[scope.TenantID]
	if !ok {
		view = &campaignView{}
		view.ctrl = listview.NewController(h.baseCtx, func(ctx context.Context, _ listview.Filters) ([]domain.Campaign, error) {
			s, _ := view.scope.Load().(auth.Scope)
			return h.orders.ListCampaigns(ctx, s, nil)
		}, campaignAccessor, 25)
		h.views[scope.TenantID] = view
	}
	view.scope.Store(scope)
	return view
}

// patchCampaign applies an optimistic update to the tenant's cached view and
// schedules a debounced reconciling refresh. No-op when the tenant has no
// cached view yet.
func (h *Handlers) patchCampaign(tenantID string, updated domain.Campaign) {
	h.mu.Lock()
	view, ok := h.views[tenantID]
	h.mu.Unlock()
	if !ok {
		return
	}
	view.ctrl.Patch(
		func(c domain.Campaign) bool { return c.ID == updated.ID },
		func(domain.Campaign) domain.Campaign { return updated },
	)
	view.ctrl.RefreshSoon()
}

// ListCampaigns serves the filtered, paginated campaign list from the
// tenant's cached view. Filter changes reload synchronously; a repeat of the
// current filter state is served from the cache with a debounced background
// revalidation, so optimistic patches stay visible.
func (h *Handlers) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	scope := auth.ScopeFromRequest(r)
	view := h.campaignView(scope)

	q := r.URL.Query()
	f := listview.ParseQuery(q, campaignFilterFields...)
	page, _ := listview.PageParams(q, 25)

	if !view.ctrl.Loaded() || f.Query().Encode() != view.ctrl.Snapshot().Filters.Query().Encode() {
		view.ctrl.Reload(f)
		view.ctrl.WaitRefresh(10 * time.Second)
	} else {
		view.ctrl.RefreshSoon()
	}

	view.ctrl.SetPage(page)
	snap := view.ctrl.Snapshot()
	if snap.Err != "" {
		httputil.BadGateway(w, snap.Err)
		return
	}
	httputil.OK(w, snapshotResponse(snap))
}

// GetCampaign returns one campaign.
func (h *Handlers) GetCampaign(w http.ResponseWriter, r *http.Request) {
	scope := auth.ScopeFromRequest(r)
	campaign, err := h.orders.GetCampaign(r.Context(), scope, chi.URLParam(r, "id"))
	if err != nil {
		if err == orders.ErrCampaignNotFound {
			httputil.NotFound(w, "Campaign not found")
			return
		}
		proxyError(w, err)
		return
	}
	httputil.OK(w, campaign)
}

// CreateCampaign validates and creates a draft campaign. Validation failures
// are rejected before any backend call.
func (h *Handlers) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	scope := auth.ScopeFromRequest(r)

	var input orders.CampaignInput
	if !httputil.Decode(w, r, &input) {
		return
	}
	if err := h.validate.Struct(input); err != nil {
		httputil.BadRequest(w, "Invalid campaign: "+err.Error())
		return
	}

	campaign, err := h.orders.CreateCampaign(r.Context(), scope, input)
	if err != nil {
		h.recordAudit(scope, "campaign", "", mutate.ActionCreate, domain.AuditFailed, err.Error())
		failMutation(w, mutate.ActionCreate, err)
		return
	}
	h.recordAudit(scope, "campaign", campaign.ID, mutate.ActionCreate, domain.AuditOK, "")
	h.refreshCampaigns(scope.TenantID)
	httputil.Created(w, campaign)
}

// UpdateCampaign edits a campaign's mutable fields.
func (h *Handlers) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	scope := auth.ScopeFromRequest(r)
	id := chi.URLParam(r, "id")

	var input orders.CampaignInput
	if !httputil.Decode(w, r, &input) {
		return
	}
	if err := h.validate.Struct(input); err != nil {
		httputil.BadRequest(w, "Invalid campaign: "+err.Error())
		return
	}

	release := h.beginMutation(w, id, mutate.ActionEdit)
	if release == nil {
		return
	}
	defer release()

	campaign, err := h.orders.UpdateCampaign(r.Context(), scope, id, input)
	if err != nil {
		h.recordAudit(scope, "campaign", id, mutate.ActionEdit, domain.AuditFailed, err.Error())
		failMutation(w, mutate.ActionEdit, err)
		return
	}
	h.recordAudit(scope, "campaign", id, mutate.ActionEdit, domain.AuditOK, "")
	h.patchCampaign(scope.TenantID, campaign)
	httputil.OK(w, campaign)
}

// SendCampaign starts delivery. Destructive: requires confirm=true and makes
// zero backend calls without it.
func (h *Handlers) SendCampaign(w http.ResponseWriter, r *http.Request) {
	h.campaignAction(w, r, mutate.ActionSend, h.orders.SendCampaign)
}

// PauseCampaign pauses delivery.
func (h *Handlers) PauseCampaign(w http.ResponseWriter, r *http.Request) {
	h.campaignAction(w, r, mutate.ActionPause, h.orders.PauseCampaign)
}

// ResumeCampaign resumes a paused campaign.
func (h *Handlers) ResumeCampaign(w http.ResponseWriter, r *http.Request) {
	h.campaignAction(w, r, mutate.ActionResume, h.orders.ResumeCampaign)
}

type campaignActionFunc func(ctx context.Context, scope auth.Scope, id string) (domain.Campaign, error)

func (h *Handlers) campaignAction(w http.ResponseWriter, r *http.Request, action mutate.Action, call campaignActionFunc) {
	scope := auth.ScopeFromRequest(r)
	id := chi.URLParam(r, "id")

	if !requireConfirm(w, r, action) {
		h.recordAudit(scope, "campaign", id, action, domain.AuditRejected, "confirmation missing")
		return
	}
	release := h.beginMutation(w, id, action)
	if release == nil {
		return
	}
	defer release()

	campaign, err := call(r.Context(), scope, id)
	if err != nil {
		h.recordAudit(scope, "campaign", id, action, domain.AuditFailed, err.Error())
		failMutation(w, action, err)
		return
	}
	h.recordAudit(scope, "campaign", id, action, domain.AuditOK, "")
	h.patchCampaign(scope.TenantID, campaign)
	httputil.OK(w, campaign)
}

// refreshCampaigns schedules a debounced reload of the tenant's cached view.
func (h *Handlers) refreshCampaigns(tenantID string) {
	h.mu.Lock()
	view, ok := h.views[tenantID]
	h.mu.Unlock()
	if ok {
		view.ctrl.RefreshSoon()
	}
}

// CampaignStats merges the backend stats payload with counters derived from
// the tenant's cached campaign list, when one is loaded.
func (h *Handlers) CampaignStats(w http.ResponseWriter, r *http.Request) {
	scope := auth.ScopeFromRequest(r)

	stats, err := h.orders.CampaignStats(r.Context(), scope)
	if err != nil {
		proxyError(w, err)
		return
	}

	h.mu.Lock()
	view, ok := h.views[scope.TenantID]
	h.mu.Unlock()
	if ok && view.ctrl.Loaded() {
		items := view.ctrl.Items()
		stats.TotalCampaigns = len(items)
		active := 0
		for _, c := range items {
			if c.Status == domain.CampaignSending || c.Status == domain.CampaignScheduled {
				active++
			}
		}
		stats.ActiveCampaigns = active
	}
	httputil.OK(w, stats)
}

// ListSegments proxies the read-only audience segment list.
func (h *Handlers) ListSegments(w http.ResponseWriter, r *http.Request) {
	scope := auth.ScopeFromRequest(r)
	segments, err := h.orders.ListSegments(r.Context(), scope)
	if err != nil {
		proxyError(w, err)
		return
	}
	httputil.OK(w, segments)
}
