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

func newCartFixture(t *testing.T) (CartService, *repository.Repository, *entity.Product) {
	t.Helper()

	repo := newFakeRepo()
	svc := NewCartService(repo, zap.NewNop())

	now := time.Now()
	product := &entity.Product{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		SellerID:     uuid.New(),
		Name:         "Diver 200",
		Price:        450,
		Stock:        8,
		StockStatus:  entity.StockStatusInStock,
	}
	require.NoError(t, repo.Product.Create(context.Background(), product))

	return svc, repo, product
}

func TestCartAddAndView(t *testing.T) {
	svc, _, product := newCartFixture(t)
	ctx := context.Background()
	customerID := uuid.New()

	cart, err := svc.Add(ctx, customerID, &request.AddCartItemRequest{
		ProductID: product.ID.String(),
		Quantity:  2,
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 2, cart.TotalItems)
	require.Equal(t, 900.0, cart.Subtotal)
	require.Equal(t, 900.0, cart.Items[0].LineTotal)
}

func TestCartAddUnknownProduct(t *testing.T) {
	svc, _, _ := newCartFixture(t)

	_, err := svc.Add(context.Background(), uuid.New(), &request.AddCartItemRequest{
		ProductID: uuid.New().String(),
		Quantity:  1,
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCartAddOutOfStock(t *testing.T) {
	svc, repo, product := newCartFixture(t)
	ctx := context.Background()

	product.Stock = 0
	product.StockStatus = entity.StockStatusOutOfStock
	require.NoError(t, repo.Product.Update(ctx, product))

	_, err := svc.Add(ctx, uuid.New(), &request.AddCartItemRequest{
		ProductID: product.ID.String(),
		Quantity:  1,
	})
	require.ErrorIs(t, err, ErrOutOfStock)
}

func TestCartAddRejectsPreOrderProduct(t *testing.T) {
	svc, repo, product := newCartFixture(t)
	ctx := context.Background()

	// Anything other than in_stock stays out of the cart
	product.StockStatus = entity.StockStatusPreOrder
	require.NoError(t, repo.Product.Update(ctx, product))

	_, err := svc.Add(ctx, uuid.New(), &request.AddCartItemRequest{
		ProductID: product.ID.String(),
		Quantity:  1,
	})
	require.ErrorIs(t, err, ErrOutOfStock)
}

func TestCartAddIncrementsExistingLine(t *testing.T) {
	svc, _, product := newCartFixture(t)
	ctx := context.Background()
	customerID := uuid.New()

	req := &request.AddCartItemRequest{ProductID: product.ID.String(), Quantity: 6}

	cart, err := svc.Add(ctx, customerID, req)
	require.NoError(t, err)
	require.Equal(t, 6, cart.TotalItems)

	// Same product again merges into one line holding the summed quantity
	cart, err = svc.Add(ctx, customerID, req)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 12, cart.TotalItems)
}

func TestCartViewSkipsDanglingLines(t *testing.T) {
	svc, repo, product := newCartFixture(t)
	ctx := context.Background()
	customerID := uuid.New()

	_, err := svc.Add(ctx, customerID, &request.AddCartItemRequest{
		ProductID: product.ID.String(),
		Quantity:  3,
	})
	require.NoError(t, err)

	require.NoError(t, repo.Product.Delete(ctx, product.ID))

	cart, err := svc.View(ctx, customerID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
	require.Zero(t, cart.TotalItems)
	require.Zero(t, cart.Subtotal)
}

func TestCartUpdateItem(t *testing.T) {
	svc, _, product := newCartFixture(t)
	ctx := context.Background()
	customerID := uuid.New()

	cart, err := svc.Add(ctx, customerID, &request.AddCartItemRequest{
		ProductID: product.ID.String(),
		Quantity:  2,
	})
	require.NoError(t, err)

	itemID, err := uuid.Parse(cart.Items[0].ID)
	require.NoError(t, err)

	cart, err = svc.UpdateItem(ctx, customerID, itemID, &request.UpdateCartItemRequest{Quantity: 5})
	require.NoError(t, err)
	require.Equal(t, 5, cart.TotalItems)

	_, err = svc.UpdateItem(ctx, customerID, uuid.New(), &request.UpdateCartItemRequest{Quantity: 5})
	require.ErrorIs(t, err, ErrNotFound)

	// Another customer cannot touch the line
	_, err = svc.UpdateItem(ctx, uuid.New(), itemID, &request.UpdateCartItemRequest{Quantity: 1})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCartRemoveAndClear(t *testing.T) {
	svc, _, product := newCartFixture(t)
	ctx := context.Background()
	customerID := uuid.New()

	cart, err := svc.Add(ctx, customerID, &request.AddCartItemRequest{
		ProductID: product.ID.String(),
		Quantity:  2,
	})
	require.NoError(t, err)

	itemID, err := uuid.Parse(cart.Items[0].ID)
	require.NoError(t, err)

	cart, err = svc.RemoveItem(ctx, customerID, itemID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)

	_, err = svc.RemoveItem(ctx, customerID, itemID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Add(ctx, customerID, &request.AddCartItemRequest{
		ProductID: product.ID.String(),
		Quantity:  1,
	})
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, customerID))

	cart, err = svc.View(ctx, customerID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}
