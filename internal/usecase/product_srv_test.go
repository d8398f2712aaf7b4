package usecase

import (
	"context"
	"testing"

	"watch-store/internal/data/entity"
	"watch-store/internal/data/repository"
	"watch-store/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newProductFixture() (ProductService, *repository.Repository) {
	repo := newFakeRepo()
	return NewProductService(repo, zap.NewNop()), repo
}

func TestProductListRejectsUnknownSort(t *testing.T) {
	svc, _ := newProductFixture()

	_, err := svc.List(context.Background(), entity.ProductFilter{Sort: "cheapest"}, request.PaginatedRequest{Page: 1, PerPage: 10})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "sort")
}

func TestProductGet(t *testing.T) {
	svc, repo := newProductFixture()
	ctx := context.Background()

	product := seedProduct(t, repo, uuid.New())

	resp, err := svc.Get(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, product.Name, resp.Name)

	_, err = svc.Get(ctx, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateCategory(t *testing.T) {
	svc, _ := newProductFixture()
	ctx := context.Background()

	resp, err := svc.CreateCategory(ctx, &request.CreateCategoryRequest{
		Name: "Dive Watches",
		Slug: "dive-watches",
	})
	require.NoError(t, err)
	require.Equal(t, "dive-watches", resp.Slug)

	_, err = svc.CreateCategory(ctx, &request.CreateCategoryRequest{
		Name: "Divers",
		Slug: "dive-watches",
	})
	require.ErrorIs(t, err, ErrDuplicateIdentity)

	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
}

func TestCreateCategoryValidation(t *testing.T) {
	svc, _ := newProductFixture()

	_, err := svc.CreateCategory(context.Background(), &request.CreateCategoryRequest{
		Name: "Dive Watches",
		Slug: "Dive Watches",
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}
