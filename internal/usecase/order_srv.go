package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"watch-store/internal/data/entity"
	"watch-store/internal/data/repository"
	"watch-store/internal/dto/request"
	"watch-store/internal/dto/response"
	"watch-store/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// orderNumberRetries bounds regeneration when a generated number collides
const orderNumberRetries = 3

type OrderService interface {
	Checkout(ctx context.Context, customerID uuid.UUID, req *request.CheckoutRequest) (*response.OrderResponse, error)
	List(ctx context.Context, customerID uuid.UUID, status *string, page request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error)
	Get(ctx context.Context, customerID, orderID uuid.UUID) (*response.OrderResponse, error)
	Cancel(ctx context.Context, customerID, orderID uuid.UUID) (*response.OrderResponse, error)
	Stats(ctx context.Context, customerID uuid.UUID) (*response.OrderStatsResponse, error)
}

type orderService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewOrderService(repo *repository.Repository, config *utils.Config, log *zap.Logger) OrderService {
	return &orderService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "order")),
	}
}

func (s *orderService) pricing() entity.Pricing {
	return entity.Pricing{
		TaxRate:           s.config.Checkout.TaxRate,
		ShippingFee:       s.config.Checkout.ShippingFee,
		FreeShipThreshold: s.config.Checkout.FreeShipThreshold,
	}
}

func (s *orderService) Checkout(ctx context.Context, customerID uuid.UUID, req *request.CheckoutRequest) (*response.OrderResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Checkout validation failed", zap.Error(err))
		return nil, err
	}

	billing := req.ShippingAddress
	if req.BillingAddress != nil {
		billing = *req.BillingAddress
	}

	var (
		items []*entity.OrderItem
		ord   *entity.Order
	)
	for attempt := 0; attempt < orderNumberRetries; attempt++ {
		now := time.Now()
		ord = &entity.Order{
			BaseNoDelete: entity.BaseNoDelete{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			CustomerID:      customerID,
			OrderNumber:     utils.GenerateOrderNumber(),
			Status:          entity.OrderStatusPending,
			PaymentStatus:   entity.PaymentStatusPending,
			PaymentMethod:   req.PaymentMethod,
			ShippingAddress: req.ShippingAddress,
			BillingAddress:  billing,
			Notes:           req.Notes,
		}

		var err error
		items, err = s.repo.Order.Checkout(ctx, ord, s.pricing())
		if err == nil {
			break
		}
		if errors.Is(err, repository.ErrOrderNumberTaken) {
			s.log.Warn("Order number collision, regenerating",
				zap.String("order_number", ord.OrderNumber))
			if attempt == orderNumberRetries-1 {
				return nil, fmt.Errorf("place order: %w", err)
			}
			continue
		}

		if errors.Is(err, repository.ErrCartEmpty) {
			return nil, ErrEmptyCart
		}
		var unavailable *repository.ProductUnavailableError
		if errors.As(err, &unavailable) {
			return nil, fmt.Errorf("%q: %w", unavailable.Name, ErrProductUnavailable)
		}

		s.log.Error("Checkout failed", zap.Error(err), zap.String("customer_id", customerID.String()))
		return nil, fmt.Errorf("place order: %w", err)
	}

	resp := response.OrderToResponse(ord, items, 0)
	return &resp, nil
}

func (s *orderService) List(ctx context.Context, customerID uuid.UUID, status *string, page request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	filter, err := statusFilter(status)
	if err != nil {
		return nil, err
	}

	orders, err := s.repo.Order.FindByCustomer(ctx, customerID, filter, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to list orders", zap.Error(err), zap.String("customer_id", customerID.String()))
		return nil, fmt.Errorf("list orders: %w", err)
	}

	total, err := s.repo.Order.CountByCustomer(ctx, customerID, filter)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
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

func (s *orderService) Get(ctx context.Context, customerID, orderID uuid.UUID) (*response.OrderResponse, error) {
	ord, err := s.findOwned(ctx, customerID, orderID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.Order.FindItems(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}

	resp := response.OrderToResponse(ord, items, 0)
	return &resp, nil
}

func (s *orderService) Cancel(ctx context.Context, customerID, orderID uuid.UUID) (*response.OrderResponse, error) {
	ord, err := s.findOwned(ctx, customerID, orderID)
	if err != nil {
		return nil, err
	}

	if !entity.CanTransition(ord.Status, entity.OrderStatusCancelled) {
		return nil, fmt.Errorf("cannot cancel a %s order: %w", ord.Status, ErrInvalidTransition)
	}

	if err := s.repo.Order.UpdateStatus(ctx, orderID, entity.OrderStatusCancelled); err != nil {
		s.log.Error("Failed to cancel order", zap.Error(err), zap.String("order_id", orderID.String()))
		return nil, fmt.Errorf("cancel order: %w", err)
	}
	ord.Status = entity.OrderStatusCancelled

	s.log.Info("Order cancelled",
		zap.String("order_number", ord.OrderNumber),
		zap.String("customer_id", customerID.String()))

	items, err := s.repo.Order.FindItems(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}

	resp := response.OrderToResponse(ord, items, 0)
	return &resp, nil
}

func (s *orderService) Stats(ctx context.Context, customerID uuid.UUID) (*response.OrderStatsResponse, error) {
	stats, err := s.repo.Order.CustomerStats(ctx, customerID)
	if err != nil {
		s.log.Error("Failed to compute order stats", zap.Error(err), zap.String("customer_id", customerID.String()))
		return nil, fmt.Errorf("order stats: %w", err)
	}

	resp := response.OrderStatsToResponse(stats)
	return &resp, nil
}

// findOwned hides other customers' orders behind not-found
func (s *orderService) findOwned(ctx context.Context, customerID, orderID uuid.UUID) (*entity.Order, error) {
	ord, err := s.repo.Order.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if ord == nil || ord.CustomerID != customerID {
		return nil, ErrNotFound
	}
	return ord, nil
}

func statusFilter(status *string) (*entity.OrderStatus, error) {
	if status == nil || *status == "" {
		return nil, nil
	}
	st := entity.OrderStatus(*status)
	if !st.Valid() {
		return nil, &ValidationError{Fields: map[string]string{"status": "Unknown order status"}}
	}
	return &st, nil
}
