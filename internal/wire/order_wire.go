package wire

import (
	"net/http"

	"watch-store/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireOrder(
	r chi.Router,
	orderHandler *adaptor.OrderHandler,
	auth func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(auth)

		// Both routes place an order from the cart
		r.Post("/api/checkout/process", orderHandler.Checkout)
		r.Post("/api/orders", orderHandler.Checkout)

		r.Get("/api/orders", orderHandler.List)
		r.Get("/api/orders/stats", orderHandler.Stats)
		r.Get("/api/orders/stats/summary", orderHandler.Stats)
		r.Get("/api/orders/{id}", orderHandler.Get)
		r.Post("/api/orders/{id}/cancel", orderHandler.Cancel)
		r.Patch("/api/orders/{id}/cancel", orderHandler.Cancel)
	})
}
