package repository

import (
	"context"
	"fmt"

	"watch-store/internal/data/entity"
	"watch-store/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WishlistRepository interface {
	Add(ctx context.Context, item *entity.WishlistItem) error
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*entity.WishlistItem, error)
	Delete(ctx context.Context, id, customerID uuid.UUID) error
}

type wishlistRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWishlistRepository(db database.PgxIface, log *zap.Logger) WishlistRepository {
	return &wishlistRepository{
		db:  db,
		log: log.With(zap.String("repository", "wishlist")),
	}
}

func (r *wishlistRepository) Add(ctx context.Context, item *entity.WishlistItem) error {
	// Unique (customer, product) pair; re-adding is a no-op
	query := `
		INSERT INTO wishlist_items (id, customer_id, product_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (customer_id, product_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		item.ID,
		item.CustomerID,
		item.ProductID,
		item.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to add wishlist item",
			zap.Error(err),
			zap.String("customer_id", item.CustomerID.String()),
			zap.String("product_id", item.ProductID.String()),
		)
		return fmt.Errorf("add wishlist item for %s: %w", item.CustomerID.String(), err)
	}

	return nil
}

func (r *wishlistRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*entity.WishlistItem, error) {
	query := `
		SELECT id, customer_id, product_id, created_at
		FROM wishlist_items
		WHERE customer_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		r.log.Error("Failed to find wishlist items",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return nil, fmt.Errorf("find wishlist items for %s: %w", customerID.String(), err)
	}
	defer rows.Close()

	var items []*entity.WishlistItem
	for rows.Next() {
		var item entity.WishlistItem
		err := rows.Scan(
			&item.ID,
			&item.CustomerID,
			&item.ProductID,
			&item.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan wishlist row", zap.Error(err))
			return nil, fmt.Errorf("scan wishlist row: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wishlist rows: %w", err)
	}

	return items, nil
}

func (r *wishlistRepository) Delete(ctx context.Context, id, customerID uuid.UUID) error {
	query := `DELETE FROM wishlist_items WHERE id = $1 AND customer_id = $2`

	result, err := r.db.Exec(ctx, query, id, customerID)
	if err != nil {
		r.log.Error("Failed to delete wishlist item",
			zap.Error(err),
			zap.String("item_id", id.String()),
		)
		return fmt.Errorf("delete wishlist item %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("wishlist item %s not found", id.String())
	}

	return nil
}
