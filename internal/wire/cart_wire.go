package wire

import (
	"net/http"

	"watch-store/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCart(
	r chi.Router,
	cartHandler *adaptor.CartHandler,
	wishlistHandler *adaptor.WishlistHandler,
	auth func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Get("/api/cart", cartHandler.View)
		r.Post("/api/cart/items", cartHandler.Add)
		r.Put("/api/cart/items/{id}", cartHandler.Update)
		r.Delete("/api/cart/items/{id}", cartHandler.Remove)
		r.Delete("/api/cart", cartHandler.Clear)

		r.Get("/api/wishlist", wishlistHandler.List)
		r.Post("/api/wishlist", wishlistHandler.Add)
		r.Delete("/api/wishlist/{id}", wishlistHandler.Remove)
	})
}
