package usecase

import (
	"context"
	"fmt"
	"time"

	"watch-store/internal/data/entity"
	"watch-store/internal/data/repository"
	"watch-store/internal/dto/request"
	"watch-store/internal/dto/response"
	"watch-store/pkg/media"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// topProductsLimit caps the analytics leaderboard
const topProductsLimit = 5

type SellerService interface {
	Products(ctx context.Context, sellerID uuid.UUID, page request.PaginatedRequest) (*response.PaginatedResponse[response.ProductResponse], error)
	CreateProduct(ctx context.Context, sellerID uuid.UUID, req *request.CreateProductRequest) (*response.ProductResponse, error)
	UpdateProduct(ctx context.Context, sellerID, productID uuid.UUID, req *request.UpdateProductRequest) (*response.ProductResponse, error)
	DeleteProduct(ctx context.Context, sellerID, productID uuid.UUID) error
	UploadProductImage(ctx context.Context, sellerID, productID uuid.UUID, filename string, content []byte) (*response.UploadImageResponse, error)

	Orders(ctx context.Context, sellerID uuid.UUID, status *string, page request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error)
	Order(ctx context.Context, sellerID, orderID uuid.UUID) (*response.OrderResponse, error)
	UpdateOrderStatus(ctx context.Context, sellerID, orderID uuid.UUID, req *request.UpdateOrderStatusRequest) (*response.OrderResponse, error)

	Stats(ctx context.Context, sellerID uuid.UUID) (*response.SellerStatsResponse, error)
	Analytics(ctx context.Context, sellerID uuid.UUID, days int) (*response.SellerAnalyticsResponse, error)
}

type sellerService struct {
	repo  *repository.Repository
	media media.Store
	log   *zap.Logger
}

func NewSellerService(repo *repository.Repository, mediaStore media.Store, log *zap.Logger) SellerService {
	return &sellerService{
		repo:  repo,
		media: mediaStore,
		log:   log.With(zap.String("service", "seller")),
	}
}

func (s *sellerService) Products(ctx context.Context, sellerID uuid.UUID, page request.PaginatedRequest) (*response.PaginatedResponse[response.ProductResponse], error) {
	filter := entity.ProductFilter{SellerID: &sellerID}

	products, err := s.repo.Product.FindAll(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to list seller products", zap.Error(err), zap.String("seller_id", sellerID.String()))
		return nil, fmt.Errorf("list seller products: %w", err)
	}

	total, err := s.repo.Product.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count seller products: %w", err)
	}

	items := make([]response.ProductResponse, 0, len(products))
	for _, product := range products {
		items = append(items, response.ProductToResponse(product))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *sellerService) CreateProduct(ctx context.Context, sellerID uuid.UUID, req *request.CreateProductRequest) (*response.ProductResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Create product validation failed", zap.Error(err))
		return nil, err
	}

	status := entity.StockStatus("")
	if req.StockStatus != nil {
		status = entity.StockStatus(*req.StockStatus)
	}

	now := time.Now()
	product := &entity.Product{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		SellerID:        sellerID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Stock:           req.Stock,
		StockStatus:     entity.DeriveStockStatus(req.Stock, status),
		Category:        req.Category,
		ReferenceNumber: req.ReferenceNumber,
		Material:        req.Material,
		CaseSize:        req.CaseSize,
		Featured:        req.Featured,
	}

	if err := s.repo.Product.Create(ctx, product); err != nil {
		s.log.Error("Failed to create product", zap.Error(err), zap.String("seller_id", sellerID.String()))
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.log.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("seller_id", sellerID.String()))

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *sellerService) UpdateProduct(ctx context.Context, sellerID, productID uuid.UUID, req *request.UpdateProductRequest) (*response.ProductResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Update product validation failed", zap.Error(err))
		return nil, err
	}

	product, err := s.findOwnedProduct(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.StockStatus != nil {
		product.StockStatus = entity.StockStatus(*req.StockStatus)
	}
	if req.Category != nil {
		product.Category = req.Category
	}
	if req.ReferenceNumber != nil {
		product.ReferenceNumber = req.ReferenceNumber
	}
	if req.Material != nil {
		product.Material = req.Material
	}
	if req.CaseSize != nil {
		product.CaseSize = req.CaseSize
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}

	product.StockStatus = entity.DeriveStockStatus(product.Stock, product.StockStatus)
	product.UpdatedAt = time.Now()

	if err := s.repo.Product.Update(ctx, product); err != nil {
		s.log.Error("Failed to update product", zap.Error(err), zap.String("product_id", productID.String()))
		return nil, fmt.Errorf("update product: %w", err)
	}

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *sellerService) DeleteProduct(ctx context.Context, sellerID, productID uuid.UUID) error {
	product, err := s.findOwnedProduct(ctx, sellerID, productID)
	if err != nil {
		return err
	}

	if err := s.repo.Product.Delete(ctx, productID); err != nil {
		s.log.Error("Failed to delete product", zap.Error(err), zap.String("product_id", productID.String()))
		return fmt.Errorf("delete product: %w", err)
	}

	// The catalog row is gone either way; image cleanup is best effort
	if product.ImageHandle != nil {
		if err := s.media.Delete(*product.ImageHandle); err != nil {
			s.log.Warn("Failed to delete product image",
				zap.Error(err),
				zap.String("product_id", productID.String()))
		}
	}

	return nil
}

func (s *sellerService) UploadProductImage(ctx context.Context, sellerID, productID uuid.UUID, filename string, content []byte) (*response.UploadImageResponse, error) {
	product, err := s.findOwnedProduct(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}

	url, handle, err := s.media.Upload(filename, content)
	if err != nil {
		s.log.Error("Failed to upload product image", zap.Error(err), zap.String("product_id", productID.String()))
		return nil, &ValidationError{Fields: map[string]string{"image": "Unsupported or unreadable image"}}
	}

	oldHandle := product.ImageHandle
	product.ImageURL = &url
	product.ImageHandle = &handle
	product.UpdatedAt = time.Now()

	if err := s.repo.Product.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("save product image: %w", err)
	}

	if oldHandle != nil {
		if err := s.media.Delete(*oldHandle); err != nil {
			s.log.Warn("Failed to delete replaced image", zap.Error(err))
		}
	}

	return &response.UploadImageResponse{ImageURL: url}, nil
}

func (s *sellerService) Orders(ctx context.Context, sellerID uuid.UUID, status *string, page request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	filter, err := statusFilter(status)
	if err != nil {
		return nil, err
	}

	orders, err := s.repo.Order.FindBySeller(ctx, sellerID, filter, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to list seller orders", zap.Error(err), zap.String("seller_id", sellerID.String()))
		return nil, fmt.Errorf("list seller orders: %w", err)
	}

	total, err := s.repo.Order.CountBySeller(ctx, sellerID, filter)
	if err != nil {
		return nil, fmt.Errorf("count seller orders: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(orders))
	for _, ord := range orders {
		ids = append(ids, ord.ID)
	}
	counts, err := s.repo.Order.ItemCounts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count order items: %w", err)
	}

	items := make([]response.OrderResponse, 0, len(orders))
	for _, ord := range orders {
		items = append(items, response.OrderToResponse(ord, nil, counts[ord.ID]))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

// Order shows only the seller's own line items of a shared order
func (s *sellerService) Order(ctx context.Context, sellerID, orderID uuid.UUID) (*response.OrderResponse, error) {
	ord, err := s.repo.Order.FindByIDForSeller(ctx, orderID, sellerID)
	if err != nil {
		return nil, fmt.Errorf("find seller order: %w", err)
	}
	if ord == nil {
		return nil, ErrNotFound
	}

	items, err := s.repo.Order.FindItemsForSeller(ctx, orderID, sellerID)
	if err != nil {
		return nil, fmt.Errorf("load seller order items: %w", err)
	}

	resp := response.OrderToResponse(ord, items, 0)
	return &resp, nil
}

func (s *sellerService) UpdateOrderStatus(ctx context.Context, sellerID, orderID uuid.UUID, req *request.UpdateOrderStatusRequest) (*response.OrderResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Update order status validation failed", zap.Error(err))
		return nil, err
	}

	ord, err := s.repo.Order.FindByIDForSeller(ctx, orderID, sellerID)
	if err != nil {
		return nil, fmt.Errorf("find seller order: %w", err)
	}
	if ord == nil {
		return nil, ErrNotFound
	}

	next := entity.OrderStatus(req.Status)
	if !entity.CanTransition(ord.Status, next) {
		return nil, fmt.Errorf("cannot move a %s order to %s: %w", ord.Status, next, ErrInvalidTransition)
	}

	if err := s.repo.Order.UpdateStatus(ctx, orderID, next); err != nil {
		s.log.Error("Failed to update order status", zap.Error(err), zap.String("order_id", orderID.String()))
		return nil, fmt.Errorf("update order status: %w", err)
	}
	ord.Status = next

	s.log.Info("Order status updated",
		zap.String("order_number", ord.OrderNumber),
		zap.String("status", string(next)),
		zap.String("seller_id", sellerID.String()))

	items, err := s.repo.Order.FindItemsForSeller(ctx, orderID, sellerID)
	if err != nil {
		return nil, fmt.Errorf("load seller order items: %w", err)
	}

	resp := response.OrderToResponse(ord, items, 0)
	return &resp, nil
}

func (s *sellerService) Stats(ctx context.Context, sellerID uuid.UUID) (*response.SellerStatsResponse, error) {
	stats, err := s.repo.Order.SellerStats(ctx, sellerID)
	if err != nil {
		s.log.Error("Failed to compute seller stats", zap.Error(err), zap.String("seller_id", sellerID.String()))
		return nil, fmt.Errorf("seller stats: %w", err)
	}

	resp := response.SellerStatsToResponse(stats)
	return &resp, nil
}

func (s *sellerService) Analytics(ctx context.Context, sellerID uuid.UUID, days int) (*response.SellerAnalyticsResponse, error) {
	if days < 1 || days > 365 {
		return nil, &ValidationError{Fields: map[string]string{"days": "Must be between 1 and 365"}}
	}

	points, err := s.repo.Order.RevenueByDay(ctx, sellerID, days)
	if err != nil {
		s.log.Error("Failed to compute revenue by day", zap.Error(err), zap.String("seller_id", sellerID.String()))
		return nil, fmt.Errorf("revenue by day: %w", err)
	}

	tops, err := s.repo.Order.TopProducts(ctx, sellerID, topProductsLimit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}

	resp := response.SellerAnalyticsToResponse(points, tops)
	return &resp, nil
}

func (s *sellerService) findOwnedProduct(ctx context.Context, sellerID, productID uuid.UUID) (*entity.Product, error) {
	product, err := s.repo.Product.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if product == nil || product.SellerID != sellerID {
		return nil, ErrNotFound
	}
	return product, nil
}
