package usecase

import (
	"watch-store/internal/data/repository"
	"watch-store/pkg/mailer"
	"watch-store/pkg/media"
	"watch-store/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	OTP      OTPService
	Product  ProductService
	Cart     CartService
	Wishlist WishlistService
	Order    OrderService
	Seller   SellerService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	tokens *utils.TokenMaker,
	rdb *redis.Client,
	mail mailer.Sender,
	mediaStore media.Store,
	log *zap.Logger,
) *Service {
	otp := NewOTPService(repo, rdb, mail, config, log)

	return &Service{
		Auth:     NewAuthService(repo, tokens, otp, log),
		OTP:      otp,
		Product:  NewProductService(repo, log),
		Cart:     NewCartService(repo, log),
		Wishlist: NewWishlistService(repo, log),
		Order:    NewOrderService(repo, config, log),
		Seller:   NewSellerService(repo, mediaStore, log),
	}
}
