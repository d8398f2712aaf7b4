package usecase

import (
	"context"
	"testing"
	"time"

	"watch-store/internal/data/entity"
	"watch-store/internal/data/repository"
	"watch-store/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSellerFixture() (SellerService, *repository.Repository, *fakeMediaStore) {
	repo := newFakeRepo()
	store := &fakeMediaStore{}
	svc := NewSellerService(repo, store, zap.NewNop())
	return svc, repo, store
}

func seedProduct(t *testing.T, repo *repository.Repository, sellerID uuid.UUID) *entity.Product {
	t.Helper()

	now := time.Now()
	product := &entity.Product{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		SellerID:     sellerID,
		Name:         "Field Watch 38",
		Price:        320,
		Stock:        5,
		StockStatus:  entity.StockStatusInStock,
	}
	require.NoError(t, repo.Product.Create(context.Background(), product))
	return product
}

func seedSellerOrder(t *testing.T, repo *repository.Repository, status entity.OrderStatus) uuid.UUID {
	t.Helper()

	orders := repo.Order.(*fakeOrderRepo)
	now := time.Now()
	ord := &entity.Order{
		BaseNoDelete:  entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		CustomerID:    uuid.New(),
		OrderNumber:   "ORD-20260831-000001",
		Status:        status,
		PaymentStatus: entity.PaymentStatusPending,
	}
	orders.orders[ord.ID] = ord
	orders.items[ord.ID] = []*entity.OrderItem{{
		BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		OrderID:     ord.ID,
		ProductID:   uuid.New(),
		ProductName: "Field Watch 38",
		Quantity:    2,
		Price:       320,
		Subtotal:    640,
	}}
	if orders.sellerOrders == nil {
		orders.sellerOrders = map[uuid.UUID]bool{}
	}
	orders.sellerOrders[ord.ID] = true
	return ord.ID
}

func TestSellerCreateProductDerivesStockStatus(t *testing.T) {
	svc, _, _ := newSellerFixture()
	ctx := context.Background()

	resp, err := svc.CreateProduct(ctx, uuid.New(), &request.CreateProductRequest{
		Name:  "Field Watch 38",
		Price: 320,
		Stock: 0,
	})
	require.NoError(t, err)
	require.Equal(t, entity.StockStatusOutOfStock, resp.StockStatus)

	resp, err = svc.CreateProduct(ctx, uuid.New(), &request.CreateProductRequest{
		Name:  "Field Watch 38",
		Price: 320,
		Stock: 5,
	})
	require.NoError(t, err)
	require.Equal(t, entity.StockStatusInStock, resp.StockStatus)
}

func TestSellerUpdateProductPartial(t *testing.T) {
	svc, repo, _ := newSellerFixture()
	ctx := context.Background()
	sellerID := uuid.New()
	product := seedProduct(t, repo, sellerID)

	price := 299.0
	resp, err := svc.UpdateProduct(ctx, sellerID, product.ID, &request.UpdateProductRequest{Price: &price})
	require.NoError(t, err)
	require.Equal(t, 299.0, resp.Price)
	require.Equal(t, product.Name, resp.Name)

	// Dropping stock to zero flips availability regardless of the stored flag
	zero := 0
	resp, err = svc.UpdateProduct(ctx, sellerID, product.ID, &request.UpdateProductRequest{Stock: &zero})
	require.NoError(t, err)
	require.Equal(t, entity.StockStatusOutOfStock, resp.StockStatus)
}

func TestSellerProductOwnership(t *testing.T) {
	svc, repo, _ := newSellerFixture()
	ctx := context.Background()
	product := seedProduct(t, repo, uuid.New())

	stranger := uuid.New()
	price := 1.0

	_, err := svc.UpdateProduct(ctx, stranger, product.ID, &request.UpdateProductRequest{Price: &price})
	require.ErrorIs(t, err, ErrNotFound)

	err = svc.DeleteProduct(ctx, stranger, product.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UploadProductImage(ctx, stranger, product.ID, "watch.jpg", []byte("bytes"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSellerDeleteProductCleansImage(t *testing.T) {
	svc, repo, store := newSellerFixture()
	ctx := context.Background()
	sellerID := uuid.New()

	product := seedProduct(t, repo, sellerID)
	handle := "old-image.jpg"
	product.ImageHandle = &handle
	require.NoError(t, repo.Product.Update(ctx, product))

	require.NoError(t, svc.DeleteProduct(ctx, sellerID, product.ID))
	require.Contains(t, store.deleted, handle)

	gone, err := repo.Product.FindByID(ctx, product.ID)
	require.NoError(t, err)
	require.Nil(t, gone)
}

func TestSellerUploadImageReplacesPrevious(t *testing.T) {
	svc, repo, store := newSellerFixture()
	ctx := context.Background()
	sellerID := uuid.New()

	product := seedProduct(t, repo, sellerID)
	old := "old-image.jpg"
	product.ImageHandle = &old
	require.NoError(t, repo.Product.Update(ctx, product))

	resp, err := svc.UploadProductImage(ctx, sellerID, product.ID, "new-image.jpg", []byte("bytes"))
	require.NoError(t, err)
	require.Equal(t, "http://media.test/new-image.jpg", resp.ImageURL)
	require.Contains(t, store.deleted, old)

	updated, err := repo.Product.FindByID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.ImageURL)
	require.Equal(t, resp.ImageURL, *updated.ImageURL)
}

func TestSellerOrderVisibility(t *testing.T) {
	svc, repo, _ := newSellerFixture()
	ctx := context.Background()
	sellerID := uuid.New()

	orderID := seedSellerOrder(t, repo, entity.OrderStatusPending)

	resp, err := svc.Order(ctx, sellerID, orderID)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	require.Equal(t, 2, resp.ItemCount)

	_, err = svc.Order(ctx, sellerID, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSellerUpdateOrderStatus(t *testing.T) {
	svc, repo, _ := newSellerFixture()
	ctx := context.Background()
	sellerID := uuid.New()

	orderID := seedSellerOrder(t, repo, entity.OrderStatusPending)

	resp, err := svc.UpdateOrderStatus(ctx, sellerID, orderID, &request.UpdateOrderStatusRequest{
		Status: string(entity.OrderStatusProcessing),
	})
	require.NoError(t, err)
	require.Equal(t, entity.OrderStatusProcessing, resp.Status)

	// PROCESSING cannot jump straight to DELIVERED
	_, err = svc.UpdateOrderStatus(ctx, sellerID, orderID, &request.UpdateOrderStatusRequest{
		Status: string(entity.OrderStatusDelivered),
	})
	require.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.UpdateOrderStatus(ctx, sellerID, uuid.New(), &request.UpdateOrderStatusRequest{
		Status: string(entity.OrderStatusProcessing),
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSellerProductsScopedToSeller(t *testing.T) {
	svc, repo, _ := newSellerFixture()
	ctx := context.Background()
	sellerID := uuid.New()

	seedProduct(t, repo, sellerID)
	seedProduct(t, repo, uuid.New())

	list, err := svc.Products(ctx, sellerID, request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	require.Equal(t, int64(1), list.Pagination.Total)
}

func TestSellerAnalyticsTopProductsRankedByRevenue(t *testing.T) {
	svc, repo, _ := newSellerFixture()
	ctx := context.Background()
	sellerID := uuid.New()

	orderID := seedSellerOrder(t, repo, entity.OrderStatusDelivered)

	// A cheap fast-mover and one expensive piece: revenue decides the order,
	// not units sold.
	orders := repo.Order.(*fakeOrderRepo)
	strapID, tourbillonID := uuid.New(), uuid.New()
	orders.items[orderID] = []*entity.OrderItem{
		{
			BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
			OrderID:     orderID,
			ProductID:   strapID,
			ProductName: "Nato Strap",
			Quantity:    9,
			Price:       15,
			Subtotal:    135,
		},
		{
			BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
			OrderID:     orderID,
			ProductID:   tourbillonID,
			ProductName: "Tourbillon One",
			Quantity:    1,
			Price:       4800,
			Subtotal:    4800,
		},
	}

	resp, err := svc.Analytics(ctx, sellerID, 30)
	require.NoError(t, err)
	require.Len(t, resp.TopProducts, 2)
	require.Equal(t, "Tourbillon One", resp.TopProducts[0].Name)
	require.Equal(t, "Nato Strap", resp.TopProducts[1].Name)
}

func TestSellerAnalyticsDaysValidation(t *testing.T) {
	svc, _, _ := newSellerFixture()
	ctx := context.Background()

	var verr *ValidationError

	_, err := svc.Analytics(ctx, uuid.New(), 0)
	require.ErrorAs(t, err, &verr)

	_, err = svc.Analytics(ctx, uuid.New(), 400)
	require.ErrorAs(t, err, &verr)

	resp, err := svc.Analytics(ctx, uuid.New(), 30)
	require.NoError(t, err)
	require.NotNil(t, resp)
}
