package wire

import (
	"watch-store/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// Catalog browsing needs no account
func wireCatalog(r chi.Router, productHandler *adaptor.ProductHandler) {
	r.Get("/api/products", productHandler.List)
	r.Get("/api/products/{id}", productHandler.Get)
	r.Get("/api/categories", productHandler.Categories)
}
