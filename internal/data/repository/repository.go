package repository

import (
	"errors"
	"fmt"

	"watch-store/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Profile      ProfileRepository
	RefreshToken RefreshTokenRepository
	Category     CategoryRepository
	Product      ProductRepository
	Cart         CartRepository
	Wishlist     WishlistRepository
	Order        OrderRepository
	OTP          OTPRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Profile:      NewProfileRepository(db, log),
		RefreshToken: NewRefreshTokenRepository(db, log),
		Category:     NewCategoryRepository(db, log),
		Product:      NewProductRepository(db, log),
		Cart:         NewCartRepository(db, log),
		Wishlist:     NewWishlistRepository(db, log),
		Order:        NewOrderRepository(db, log),
		OTP:          NewOTPRepository(db, log),
	}
}

// Sentinel errors surfaced by transactional repositories so services can
// translate them without string matching.
var (
	ErrCartEmpty        = errors.New("cart is empty")
	ErrOrderNumberTaken = errors.New("order number already taken")
)

// ProductUnavailableError names the offending product when checkout
// re-validation fails.
type ProductUnavailableError struct {
	ProductID uuid.UUID
	Name      string
}

func (e *ProductUnavailableError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("product %q is unavailable", e.Name)
	}
	return fmt.Sprintf("product %s is unavailable", e.ProductID.String())
}
