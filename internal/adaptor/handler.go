package adaptor

import (
	"watch-store/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	OTP      *OTPHandler
	Product  *ProductHandler
	Cart     *CartHandler
	Wishlist *WishlistHandler
	Order    *OrderHandler
	Seller   *SellerHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		OTP:      NewOTPHandler(service.OTP, log),
		Product:  NewProductHandler(service.Product, log),
		Cart:     NewCartHandler(service.Cart, log),
		Wishlist: NewWishlistHandler(service.Wishlist, log),
		Order:    NewOrderHandler(service.Order, log),
		Seller:   NewSellerHandler(service.Seller, service.Product, log),
	}
}
