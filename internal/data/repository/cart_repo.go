package repository

import (
	"context"
	"fmt"

	"watch-store/internal/data/entity"
	"watch-store/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CartRepository interface {
	// Upsert inserts a line item or, when the (customer, product) pair
	// already exists, increments its quantity by item.Quantity.
	Upsert(ctx context.Context, item *entity.CartItem) error
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*entity.CartItem, error)
	FindByID(ctx context.Context, id, customerID uuid.UUID) (*entity.CartItem, error)
	UpdateQuantity(ctx context.Context, id, customerID uuid.UUID, quantity int) error
	Delete(ctx context.Context, id, customerID uuid.UUID) error
	Clear(ctx context.Context, customerID uuid.UUID) error
}

type cartRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCartRepository(db database.PgxIface, log *zap.Logger) CartRepository {
	return &cartRepository{
		db:  db,
		log: log.With(zap.String("repository", "cart")),
	}
}

func (r *cartRepository) Upsert(ctx context.Context, item *entity.CartItem) error {
	query := `
		INSERT INTO cart_items (id, customer_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (customer_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity,
		              updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		item.ID,
		item.CustomerID,
		item.ProductID,
		item.Quantity,
		item.CreatedAt,
		item.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to upsert cart item",
			zap.Error(err),
			zap.String("customer_id", item.CustomerID.String()),
			zap.String("product_id", item.ProductID.String()),
		)
		return fmt.Errorf("upsert cart item for %s: %w", item.CustomerID.String(), err)
	}

	return nil
}

func (r *cartRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*entity.CartItem, error) {
	query := `
		SELECT id, customer_id, product_id, quantity, created_at, updated_at
		FROM cart_items
		WHERE customer_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		r.log.Error("Failed to find cart items",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return nil, fmt.Errorf("find cart items for %s: %w", customerID.String(), err)
	}
	defer rows.Close()

	var items []*entity.CartItem
	for rows.Next() {
		var item entity.CartItem
		err := rows.Scan(
			&item.ID,
			&item.CustomerID,
			&item.ProductID,
			&item.Quantity,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan cart item row", zap.Error(err))
			return nil, fmt.Errorf("scan cart item row: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart rows: %w", err)
	}

	return items, nil
}

func (r *cartRepository) FindByID(ctx context.Context, id, customerID uuid.UUID) (*entity.CartItem, error) {
	query := `
		SELECT id, customer_id, product_id, quantity, created_at, updated_at
		FROM cart_items
		WHERE id = $1 AND customer_id = $2
	`

	var item entity.CartItem
	err := r.db.QueryRow(ctx, query, id, customerID).Scan(
		&item.ID,
		&item.CustomerID,
		&item.ProductID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find cart item",
			zap.Error(err),
			zap.String("item_id", id.String()),
		)
		return nil, fmt.Errorf("find cart item %s: %w", id.String(), err)
	}

	return &item, nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, id, customerID uuid.UUID, quantity int) error {
	query := `
		UPDATE cart_items
		SET quantity = $3, updated_at = NOW()
		WHERE id = $1 AND customer_id = $2
	`

	result, err := r.db.Exec(ctx, query, id, customerID, quantity)
	if err != nil {
		r.log.Error("Failed to update cart item",
			zap.Error(err),
			zap.String("item_id", id.String()),
		)
		return fmt.Errorf("update cart item %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("cart item %s not found", id.String())
	}

	return nil
}

func (r *cartRepository) Delete(ctx context.Context, id, customerID uuid.UUID) error {
	query := `DELETE FROM cart_items WHERE id = $1 AND customer_id = $2`

	result, err := r.db.Exec(ctx, query, id, customerID)
	if err != nil {
		r.log.Error("Failed to delete cart item",
			zap.Error(err),
			zap.String("item_id", id.String()),
		)
		return fmt.Errorf("delete cart item %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("cart item %s not found", id.String())
	}

	return nil
}

func (r *cartRepository) Clear(ctx context.Context, customerID uuid.UUID) error {
	query := `DELETE FROM cart_items WHERE customer_id = $1`

	_, err := r.db.Exec(ctx, query, customerID)
	if err != nil {
		r.log.Error("Failed to clear cart",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return fmt.Errorf("clear cart for %s: %w", customerID.String(), err)
	}

	return nil
}
