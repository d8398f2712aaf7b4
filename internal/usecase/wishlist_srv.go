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

type WishlistService interface {
	List(ctx context.Context, customerID uuid.UUID) ([]response.WishlistItemResponse, error)
	Add(ctx context.Context, customerID uuid.UUID, req *request.AddWishlistItemRequest) error
	Remove(ctx context.Context, customerID, itemID uuid.UUID) error
}

type wishlistService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewWishlistService(repo *repository.Repository, log *zap.Logger) WishlistService {
	return &wishlistService{
		repo: repo,
		log:  log.With(zap.String("service", "wishlist")),
	}
}

func (s *wishlistService) List(ctx context.Context, customerID uuid.UUID) ([]response.WishlistItemResponse, error) {
	items, err := s.repo.Wishlist.FindByCustomerID(ctx, customerID)
	if err != nil {
		s.log.Error("Failed to load wishlist", zap.Error(err), zap.String("customer_id", customerID.String()))
		return nil, fmt.Errorf("load wishlist: %w", err)
	}

	resp := make([]response.WishlistItemResponse, 0, len(items))
	for _, item := range items {
		product, err := s.repo.Product.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("load wishlist product: %w", err)
		}
		if product == nil {
			continue
		}
		resp = append(resp, response.WishlistItemToResponse(item, product))
	}

	return resp, nil
}

func (s *wishlistService) Add(ctx context.Context, customerID uuid.UUID, req *request.AddWishlistItemRequest) error {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Add to wishlist validation failed", zap.Error(err))
		return err
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return &ValidationError{Fields: map[string]string{"product_id": "Must be a valid UUID"}}
	}

	product, err := s.repo.Product.FindByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("find product: %w", err)
	}
	if product == nil {
		return ErrNotFound
	}

	item := &entity.WishlistItem{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		CustomerID: customerID,
		ProductID:  productID,
	}

	if err := s.repo.Wishlist.Add(ctx, item); err != nil {
		s.log.Error("Failed to add to wishlist", zap.Error(err), zap.String("customer_id", customerID.String()))
		return fmt.Errorf("add to wishlist: %w", err)
	}

	return nil
}

func (s *wishlistService) Remove(ctx context.Context, customerID, itemID uuid.UUID) error {
	if err := s.repo.Wishlist.Delete(ctx, itemID, customerID); err != nil {
		s.log.Error("Failed to remove wishlist item", zap.Error(err), zap.String("item_id", itemID.String()))
		return ErrNotFound
	}

	return nil
}
