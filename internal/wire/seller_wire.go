package wire

import (
	"net/http"

	"watch-store/internal/adaptor"
	"watch-store/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSeller(
	r chi.Router,
	sellerHandler *adaptor.SellerHandler,
	auth func(http.Handler) http.Handler,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Use(middleware.RequireSeller(log))

		r.Get("/api/seller/products", sellerHandler.Products)
		r.Post("/api/seller/products", sellerHandler.CreateProduct)
		r.Put("/api/seller/products/{id}", sellerHandler.UpdateProduct)
		r.Delete("/api/seller/products/{id}", sellerHandler.DeleteProduct)
		r.Post("/api/seller/products/{id}/image", sellerHandler.UploadImage)

		// Catalog-path aliases for product and category mutations
		r.Post("/api/products", sellerHandler.CreateProduct)
		r.Put("/api/products/{id}", sellerHandler.UpdateProduct)
		r.Delete("/api/products/{id}", sellerHandler.DeleteProduct)
		r.Post("/api/categories", sellerHandler.CreateCategory)

		r.Get("/api/seller/orders", sellerHandler.Orders)
		r.Get("/api/seller/orders/{id}", sellerHandler.Order)
		r.Put("/api/seller/orders/{id}/status", sellerHandler.UpdateOrderStatus)

		r.Get("/api/seller/stats", sellerHandler.Stats)
		r.Get("/api/seller/analytics", sellerHandler.Analytics)
		r.Get("/api/seller/analytics/revenue", sellerHandler.AnalyticsRevenue)
		r.Get("/api/seller/analytics/top-products", sellerHandler.AnalyticsTopProducts)

		r.Post("/api/seller/categories", sellerHandler.CreateCategory)
	})
}
