package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Tesseract-Nexus/admin-bff/internal/auth"
	"github.com/Tesseract-Nexus/admin-bff/internal/domain"
	"github.com/Tesseract-Nexus/admin-bff/internal/listview"
	"github.com/Tesseract-Nexus/admin-bff/internal/mutate"
	"github.com/Tesseract-Nexus/admin-bff/internal/orders"
	"github.com/Tesseract-Nexus/admin-bff/internal/pkg/httputil"
)

var orderFilterFields = []string{"status", "paymentStatus", "fulfillmentStatus"}

var orderAccessor = listview.Accessor[domain.Order]{
	SearchText: func(o domain.Order) []string {
		return []string{o.OrderNumber, o.CustomerName, o.CustomerEmail}
	},
	Field: func(o domain.Order, name string) string {
		switch name {
		case "status":
			return string(o.Status)
		case "paymentStatus":
			return string(o.PaymentStatus)
		case "fulfillmentStatus":
			return string(o.FulfillmentStatus)
		}
		return ""
	},
}

// ListOrders fetches the tenant's orders and applies the shared filter and
// pagination semantics.
func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	scope := auth.ScopeFromRequest(r)
	q := r.URL.Query()

	items, err := h.orders.ListOrders(r.Context(), scope, nil)
	if err != nil {
		proxyError(w, err)
		return
	}

	f := listview.ParseQuery(q, orderFilterFields...)
	visible := listview.Apply(items, f, orderAccessor)

	page, perPage := listview.PageParams(q, 25)
	pageItems, pageNum, totalPages := listview.Page(visible, page, perPage)
	httputil.OK(w, listResponse[domain.Order]{
		Items:      pageItems,
		Page:       pageNum,
		TotalPages: totalPages,
		TotalItems: len(visible),
	})
}

// GetOrder returns one order with its items.
func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	scope := auth.ScopeFromRequest(r)
	order, err := h.orders.GetOrder(r.Context(), scope, chi.URLParam(r, "id"))
	if err != nil {
		if err == orders.ErrOrderNotFound {
			httputil.NotFound(w, "Order not found")
			return
		}
		proxyError(w, err)
		return
	}
	httputil.OK(w, order)
}

// OrderTransitions returns the server-authoritative set of legal next
// states. The dashboard renders exactly these; nothing is computed here.
func (h *Handlers) OrderTransitions(w http.ResponseWriter, r *http.Request) {
	scope := auth.ScopeFromRequest(r)
	tr, err := h.orders.Transitions(r.Context(), scope, chi.URLParam(r, "id"))
	if err != nil {
		proxyError(w, err)
		return
	}
	httputil.OK(w, tr)
}

type statusUpdate struct {
	Status string `json:"status" validate:"required"`
}

// UpdateOrderStatus requests an order status transition.
func (h *Handlers) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	h.orderStatusUpdate(w, r, mutate.ActionUpdateStatus, h.orders.UpdateOrderStatus)
}

// UpdatePaymentStatus requests a payment status transition.
func (h *Handlers) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	h.orderStatusUpdate(w, r, mutate.ActionUpdatePayment, h.orders.UpdatePaymentStatus)
}

// UpdateFulfillmentStatus requests a fulfillment status transition.
func (h *Handlers) UpdateFulfillmentStatus(w http.ResponseWriter, r *http.Request) {
	h.orderStatusUpdate(w, r, mutate.ActionUpdateFulfil, h.orders.UpdateFulfillmentStatus)
}

type orderUpdateFunc func(ctx context.Context, scope auth.Scope, id, status string) (domain.Order, error)

func (h *Handlers) orderStatusUpdate(w http.ResponseWriter, r *http.Request, action mutate.Action, call orderUpdateFunc) {
	scope := auth.ScopeFromRequest(r)
	id := chi.URLParam(r, "id")

	var input statusUpdate
	if !httputil.Decode(w, r, &input) {
		return
	}
	if err := h.validate.Struct(input); err != nil {
		httputil.BadRequest(w, "status is required")
		return
	}

	release := h.beginMutation(w, id, action)
	if release == nil {
		return
	}
	defer release()

	order, err := call(r.Context(), scope, id, input.Status)
	if err != nil {
		h.recordAudit(scope, "order", id, action, domain.AuditFailed, err.Error())
		failMutation(w, action, err)
		return
	}
	h.recordAudit(scope, "order", id, action, domain.AuditOK, input.Status)
	httputil.OK(w, order)
}

// CancelOrder cancels an order. Destructive: requires confirm=true.
func (h *Handlers) CancelOrder(w http.ResponseWriter, r *http.Request) {
	scope := auth.ScopeFromRequest(r)
	id := chi.URLParam(r, "id")

	if !requireConfirm(w, r, mutate.ActionCancel) {
		h.recordAudit(scope, "order", id, mutate.ActionCancel, domain.AuditRejected, "confirmation missing")
		return
	}

	var input struct {
		Reason string `json:"reason"`
	}
	// An empty body is fine; the reason is optional.
	_ = decodeOptional(r, &input)

	release := h.beginMutation(w, id, mutate.ActionCancel)
	if release == nil {
		return
	}
	defer release()

	order, err := h.orders.CancelOrder(r.Context(), scope, id, input.Reason)
	if err != nil {
		h.recordAudit(scope, "order", id, mutate.ActionCancel, domain.AuditFailed, err.Error())
		failMutation(w, mutate.ActionCancel, err)
		return
	}
	h.recordAudit(scope, "order", id, mutate.ActionCancel, domain.AuditOK, input.Reason)
	httputil.OK(w, order)
}

// GenerateReceipt asks the orders service to render a receipt.
func (h *Handlers) GenerateReceipt(w http.ResponseWriter, r *http.Request) {
	scope := auth.ScopeFromRequest(r)
	id := chi.URLParam(r, "id")

	release := h.beginMutation(w, id, mutate.ActionCreate)
	if release == nil {
		return
	}
	defer release()

	order, err := h.orders.GenerateReceipt(r.Context(), scope, id)
	if err != nil {
		failMutation(w, mutate.ActionCreate, err)
		return
	}
	httputil.OK(w, order)
}
