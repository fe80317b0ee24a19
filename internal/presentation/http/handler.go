package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	appinventory "github.com/zenmart/fulfillment/internal/application/inventory"
	apporder "github.com/zenmart/fulfillment/internal/application/order"
	apppayment "github.com/zenmart/fulfillment/internal/application/payment"
	invdomain "github.com/zenmart/fulfillment/internal/domain/inventory"
	orddomain "github.com/zenmart/fulfillment/internal/domain/order"
	paydomain "github.com/zenmart/fulfillment/internal/domain/payment"
)

// actorHeader carries the caller's principal, propagated by the gateway in
// front of this service. It is trusted verbatim; authorization happens
// upstream.
const actorHeader = "X-User-ID"

type Handler struct {
	orders    *apporder.Service
	payments  *apppayment.Service
	inventory *appinventory.Service
}

func NewHandler(orders *apporder.Service, payments *apppayment.Service, inventory *appinventory.Service) *Handler {
	return &Handler{
		orders:    orders,
		payments:  payments,
		inventory: inventory,
	}
}

func (h *Handler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	items := make([]orddomain.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, orddomain.ItemInput{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	order, err := h.orders.CreateOrder(r.Context(), apporder.CreateOrderInput{
		CustomerID:   req.CustomerID,
		CustomerName: req.CustomerName,
		Items:        items,
		Actor:        actor(r),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (h *Handler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) handleListOrdersByCustomer(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListByCustomer(r.Context(), chi.URLParam(r, "customerID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (h *Handler) handleListOrdersByStatus(w http.ResponseWriter, r *http.Request) {
	status, err := orddomain.ParseStatus(chi.URLParam(r, "status"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	orders, err := h.orders.ListByStatus(r.Context(), status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (h *Handler) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}
	status, err := orddomain.ParseStatus(req.Status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	order, err := h.orders.UpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), status, actor(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// handleMarkOrderPaymentStatus is the callback surface the payment side
// uses; the marker travels as a query parameter.
func (h *Handler) handleMarkOrderPaymentStatus(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.MarkPaymentStatus(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("status"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) handleShipOrder(w http.ResponseWriter, r *http.Request) {
	h.orderTransition(w, r, h.orders.Ship)
}

func (h *Handler) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	h.orderTransition(w, r, h.orders.Cancel)
}

func (h *Handler) handleCompleteOrder(w http.ResponseWriter, r *http.Request) {
	h.orderTransition(w, r, h.orders.Complete)
}

func (h *Handler) orderTransition(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, id, actor string) (*orddomain.Order, error),
) {
	order, err := apply(r.Context(), chi.URLParam(r, "id"), actor(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) handleProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req processPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	payment, err := h.payments.ProcessPayment(r.Context(), apppayment.ProcessPaymentInput{
		OrderID:    req.OrderID,
		CustomerID: req.CustomerID,
		Amount:     req.Amount,
		Method:     req.PaymentMethod,
		Gateway:    req.PaymentGateway,
		Actor:      actor(r),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, toPaymentResponse(payment))
}

func (h *Handler) handleGetPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := h.payments.GetPayment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentResponse(payment))
}

func (h *Handler) handleGetPaymentByOrder(w http.ResponseWriter, r *http.Request) {
	payment, err := h.payments.GetByOrderID(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentResponse(payment))
}

func (h *Handler) handleListPaymentsByCustomer(w http.ResponseWriter, r *http.Request) {
	payments, err := h.payments.ListByCustomer(r.Context(), chi.URLParam(r, "customerID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentResponses(payments))
}

func (h *Handler) handleListPaymentsByStatus(w http.ResponseWriter, r *http.Request) {
	status, err := paydomain.ParseStatus(chi.URLParam(r, "status"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	payments, err := h.payments.ListByStatus(r.Context(), status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentResponses(payments))
}

func (h *Handler) handleUpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req statusUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}
	status, err := paydomain.ParseStatus(req.Status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	payment, err := h.payments.UpdatePaymentStatus(r.Context(), chi.URLParam(r, "id"), status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentResponse(payment))
}

func (h *Handler) handleRefundPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := h.payments.RefundPayment(r.Context(), chi.URLParam(r, "id"), actor(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentResponse(payment))
}

func (h *Handler) handleCreateInventoryItem(w http.ResponseWriter, r *http.Request) {
	var req inventoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}
	item, err := h.inventory.Create(r.Context(), appinventory.ItemInput{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Quantity:    req.Quantity,
		Price:       req.Price,
	}, actor(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toInventoryResponse(item))
}

func (h *Handler) handleListInventory(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventory.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toInventoryResponses(items))
}

func (h *Handler) handleGetInventoryItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.inventory.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toInventoryResponse(item))
}

func (h *Handler) handleListInventoryByCategory(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventory.ListByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toInventoryResponses(items))
}

func (h *Handler) handleListInventoryByStatus(w http.ResponseWriter, r *http.Request) {
	status, err := invdomain.ParseStatus(chi.URLParam(r, "status"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	items, err := h.inventory.ListByStatus(r.Context(), status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toInventoryResponses(items))
}

func (h *Handler) handleSearchInventory(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventory.Search(r.Context(), r.URL.Query().Get("keyword"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toInventoryResponses(items))
}

func (h *Handler) handleUpdateInventoryItem(w http.ResponseWriter, r *http.Request) {
	var req inventoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}
	item, err := h.inventory.Update(r.Context(), chi.URLParam(r, "id"), appinventory.ItemInput{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Quantity:    req.Quantity,
		Price:       req.Price,
	}, actor(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toInventoryResponse(item))
}

func (h *Handler) handleDecrementInventory(w http.ResponseWriter, r *http.Request) {
	var req decrementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}
	item, err := h.inventory.Decrement(r.Context(), chi.URLParam(r, "id"), req.Quantity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toInventoryResponse(item))
}

func (h *Handler) handleDeleteInventoryItem(w http.ResponseWriter, r *http.Request) {
	if err := h.inventory.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func actor(r *http.Request) string {
	return r.Header.Get(actorHeader)
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: code})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, orddomain.ErrNotFound),
		errors.Is(err, invdomain.ErrNotFound),
		errors.Is(err, paydomain.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err)
	case errors.Is(err, invdomain.ErrInsufficientStock):
		writeError(w, http.StatusConflict, "INSUFFICIENT_STOCK", err)
	case errors.Is(err, orddomain.ErrInvalidState),
		errors.Is(err, paydomain.ErrNotRefundable):
		writeError(w, http.StatusConflict, "INVALID_STATE", err)
	case errors.Is(err, orddomain.ErrEmptyItems),
		errors.Is(err, orddomain.ErrInvalidItem),
		errors.Is(err, orddomain.ErrInvalidStatus),
		errors.Is(err, orddomain.ErrInvalidMarker),
		errors.Is(err, invdomain.ErrInvalidQuantity),
		errors.Is(err, invdomain.ErrNegativeQuantity),
		errors.Is(err, invdomain.ErrInvalidPrice),
		errors.Is(err, invdomain.ErrInvalidStatus),
		errors.Is(err, paydomain.ErrInvalidAmount),
		errors.Is(err, paydomain.ErrInvalidMethod),
		errors.Is(err, paydomain.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err)
	default:
		writeError(w, http.StatusInternalServerError, "STORE_ERROR", err)
	}
}
