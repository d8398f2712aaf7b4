package usecase

import (
	"context"
	"testing"

	"watch-store/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWishlistAddAndList(t *testing.T) {
	repo := newFakeRepo()
	svc := NewWishlistService(repo, zap.NewNop())
	ctx := context.Background()
	customerID := uuid.New()

	product := seedProduct(t, repo, uuid.New())

	req := &request.AddWishlistItemRequest{ProductID: product.ID.String()}
	require.NoError(t, svc.Add(ctx, customerID, req))

	// Adding the same product twice stays a single entry
	require.NoError(t, svc.Add(ctx, customerID, req))

	items, err := svc.List(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, product.Name, items[0].Product.Name)
}

func TestWishlistAddUnknownProduct(t *testing.T) {
	repo := newFakeRepo()
	svc := NewWishlistService(repo, zap.NewNop())

	err := svc.Add(context.Background(), uuid.New(), &request.AddWishlistItemRequest{
		ProductID: uuid.New().String(),
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestWishlistListSkipsDanglingItems(t *testing.T) {
	repo := newFakeRepo()
	svc := NewWishlistService(repo, zap.NewNop())
	ctx := context.Background()
	customerID := uuid.New()

	product := seedProduct(t, repo, uuid.New())
	require.NoError(t, svc.Add(ctx, customerID, &request.AddWishlistItemRequest{
		ProductID: product.ID.String(),
	}))

	require.NoError(t, repo.Product.Delete(ctx, product.ID))

	items, err := svc.List(ctx, customerID)
	require.NoError(t, err)
	require.Empty(t, items)
}
