package usecase

import (
	"context"
	"fmt"
	"time"

	"watch-store/internal/data/entity"
	"watch-store/internal/data/repository"
	"watch-store/internal/dto/request"
	"watch-store/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CartService interface {
	View(ctx context.Context, customerID uuid.UUID) (*response.CartResponse, error)
	Add(ctx context.Context, customerID uuid.UUID, req *request.AddCartItemRequest) (*response.CartResponse, error)
	UpdateItem(ctx context.Context, customerID, itemID uuid.UUID, req *request.UpdateCartItemRequest) (*response.CartResponse, error)
	RemoveItem(ctx context.Context, customerID, itemID uuid.UUID) (*response.CartResponse, error)
	Clear(ctx context.Context, customerID uuid.UUID) error
}

type cartService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCartService(repo *repository.Repository, log *zap.Logger) CartService {
	return &cartService{
		repo: repo,
		log:  log.With(zap.String("service", "cart")),
	}
}

// View prices the cart from the live catalog. Lines whose product has been
// deleted since they were added are skipped, not errored.
func (s *cartService) View(ctx context.Context, customerID uuid.UUID) (*response.CartResponse, error) {
	items, err := s.repo.Cart.FindByCustomerID(ctx, customerID)
	if err != nil {
		s.log.Error("Failed to load cart", zap.Error(err), zap.String("customer_id", customerID.String()))
		return nil, fmt.Errorf("load cart: %w", err)
	}

	resp := &response.CartResponse{Items: []response.CartItemResponse{}}
	for _, item := range items {
		product, err := s.repo.Product.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("load cart product: %w", err)
		}
		if product == nil {
			continue
		}

		resp.Items = append(resp.Items, response.CartItemToResponse(item, product))
		resp.TotalItems += item.Quantity
		resp.Subtotal += product.Price * float64(item.Quantity)
	}

	return resp, nil
}

func (s *cartService) Add(ctx context.Context, customerID uuid.UUID, req *request.AddCartItemRequest) (*response.CartResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Add to cart validation failed", zap.Error(err))
		return nil, err
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"product_id": "Must be a valid UUID"}}
	}

	product, err := s.repo.Product.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if product == nil {
		return nil, ErrNotFound
	}
	if product.StockStatus != entity.StockStatusInStock {
		return nil, ErrOutOfStock
	}

	now := time.Now()
	item := &entity.CartItem{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CustomerID: customerID,
		ProductID:  productID,
		Quantity:   req.Quantity,
	}

	if err := s.repo.Cart.Upsert(ctx, item); err != nil {
		s.log.Error("Failed to add to cart", zap.Error(err), zap.String("customer_id", customerID.String()))
		return nil, fmt.Errorf("add to cart: %w", err)
	}

	return s.View(ctx, customerID)
}

func (s *cartService) UpdateItem(ctx context.Context, customerID, itemID uuid.UUID, req *request.UpdateCartItemRequest) (*response.CartResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Update cart item validation failed", zap.Error(err))
		return nil, err
	}

	item, err := s.repo.Cart.FindByID(ctx, itemID, customerID)
	if err != nil {
		return nil, fmt.Errorf("find cart item: %w", err)
	}
	if item == nil {
		return nil, ErrNotFound
	}

	if err := s.repo.Cart.UpdateQuantity(ctx, itemID, customerID, req.Quantity); err != nil {
		s.log.Error("Failed to update cart item", zap.Error(err), zap.String("item_id", itemID.String()))
		return nil, fmt.Errorf("update cart item: %w", err)
	}

	return s.View(ctx, customerID)
}

func (s *cartService) RemoveItem(ctx context.Context, customerID, itemID uuid.UUID) (*response.CartResponse, error) {
	item, err := s.repo.Cart.FindByID(ctx, itemID, customerID)
	if err != nil {
		return nil, fmt.Errorf("find cart item: %w", err)
	}
	if item == nil {
		return nil, ErrNotFound
	}

	if err := s.repo.Cart.Delete(ctx, itemID, customerID); err != nil {
		s.log.Error("Failed to remove cart item", zap.Error(err), zap.String("item_id", itemID.String()))
		return nil, fmt.Errorf("remove cart item: %w", err)
	}

	return s.View(ctx, customerID)
}

func (s *cartService) Clear(ctx context.Context, customerID uuid.UUID) error {
	if err := s.repo.Cart.Clear(ctx, customerID); err != nil {
		s.log.Error("Failed to clear cart", zap.Error(err), zap.String("customer_id", customerID.String()))
		return fmt.Errorf("clear cart: %w", err)
	}

	return nil
}
