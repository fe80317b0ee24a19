package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(handler *Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.Post("/", handler.handleCreateOrder)
		r.Get("/", handler.handleListOrders)
		r.Get("/{id}", handler.handleGetOrder)
		r.Get("/customer/{customerID}", handler.handleListOrdersByCustomer)
		r.Get("/status/{status}", handler.handleListOrdersByStatus)
		r.Put("/{id}/status", handler.handleUpdateOrderStatus)
		r.Put("/{id}/payment-status", handler.handleMarkOrderPaymentStatus)
		r.Post("/{id}/ship", handler.handleShipOrder)
		r.Post("/{id}/cancel", handler.handleCancelOrder)
		r.Post("/{id}/complete", handler.handleCompleteOrder)
	})

	r.Route("/api/payments", func(r chi.Router) {
		r.Post("/", handler.handleProcessPayment)
		r.Get("/{id}", handler.handleGetPayment)
		r.Get("/order/{orderID}", handler.handleGetPaymentByOrder)
		r.Get("/customer/{customerID}", handler.handleListPaymentsByCustomer)
		r.Get("/status/{status}", handler.handleListPaymentsByStatus)
		r.Put("/{id}/status", handler.handleUpdatePaymentStatus)
		r.Post("/{id}/refund", handler.handleRefundPayment)
	})

	r.Route("/api/inventory", func(r chi.Router) {
		r.Post("/", handler.handleCreateInventoryItem)
		r.Get("/", handler.handleListInventory)
		r.Get("/search", handler.handleSearchInventory)
		r.Get("/{id}", handler.handleGetInventoryItem)
		r.Get("/category/{category}", handler.handleListInventoryByCategory)
		r.Get("/status/{status}", handler.handleListInventoryByStatus)
		r.Put("/{id}", handler.handleUpdateInventoryItem)
		r.Put("/{id}/decrement", handler.handleDecrementInventory)
		r.Delete("/{id}", handler.handleDeleteInventoryItem)
	})

	return r
}
