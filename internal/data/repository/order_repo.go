package repository

import (
	"context"
	"fmt"
	"time"

	"watch-store/internal/data/entity"
	"watch-store/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OrderRepository interface {
	// Checkout converts the customer's cart into an order inside a single
	// transaction: it locks the cart's product rows, snapshots prices,
	// computes totals from pricing, decrements stock and clears the cart.
	// The caller pre-fills ord with identity, addresses and payment fields;
	// the amount fields are filled here from the locked prices.
	Checkout(ctx context.Context, ord *entity.Order, pricing entity.Pricing) ([]*entity.OrderItem, error)

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, status *entity.OrderStatus, limit, offset int) ([]*entity.Order, error)
	CountByCustomer(ctx context.Context, customerID uuid.UUID, status *entity.OrderStatus) (int64, error)
	FindItems(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderItem, error)
	ItemCounts(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID]int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error
	CustomerStats(ctx context.Context, customerID uuid.UUID) (*entity.CustomerOrderStats, error)

	FindBySeller(ctx context.Context, sellerID uuid.UUID, status *entity.OrderStatus, limit, offset int) ([]*entity.Order, error)
	CountBySeller(ctx context.Context, sellerID uuid.UUID, status *entity.OrderStatus) (int64, error)
	FindByIDForSeller(ctx context.Context, id, sellerID uuid.UUID) (*entity.Order, error)
	FindItemsForSeller(ctx context.Context, orderID, sellerID uuid.UUID) ([]*entity.OrderItem, error)
	SellerStats(ctx context.Context, sellerID uuid.UUID) (*entity.SellerStats, error)
	RevenueByDay(ctx context.Context, sellerID uuid.UUID, days int) ([]*entity.RevenuePoint, error)
	// TopProducts ranks the seller's delivered items by revenue, highest first.
	TopProducts(ctx context.Context, sellerID uuid.UUID, limit int) ([]*entity.TopProduct, error)
}

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

const orderColumns = `id, customer_id, order_number, status, payment_status, payment_method,
	       shipping_address, billing_address, subtotal, shipping_fee, tax_amount,
	       discount_amount, total_amount, notes, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var ord entity.Order
	err := row.Scan(
		&ord.ID,
		&ord.CustomerID,
		&ord.OrderNumber,
		&ord.Status,
		&ord.PaymentStatus,
		&ord.PaymentMethod,
		&ord.ShippingAddress,
		&ord.BillingAddress,
		&ord.Subtotal,
		&ord.ShippingFee,
		&ord.TaxAmount,
		&ord.DiscountAmount,
		&ord.TotalAmount,
		&ord.Notes,
		&ord.CreatedAt,
		&ord.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ord, nil
}

// checkoutLine is one locked cart row with its live product state
type checkoutLine struct {
	productID   uuid.UUID
	name        string
	price       float64
	stock       int
	stockStatus entity.StockStatus
	quantity    int
}

func (r *orderRepository) Checkout(ctx context.Context, ord *entity.Order, pricing entity.Pricing) ([]*entity.OrderItem, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin checkout transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Cart rows whose product has been deleted fall out of the join and
	// are silently skipped.
	rows, err := tx.Query(ctx, `
		SELECT p.id, p.name, p.price, p.stock, p.stock_status, ci.quantity
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.customer_id = $1
		ORDER BY ci.created_at
		FOR UPDATE OF p
	`, ord.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("lock cart products: %w", err)
	}

	var lines []checkoutLine
	for rows.Next() {
		var line checkoutLine
		err := rows.Scan(&line.productID, &line.name, &line.price, &line.stock, &line.stockStatus, &line.quantity)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan checkout line: %w", err)
		}
		lines = append(lines, line)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate checkout lines: %w", err)
	}

	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	var subtotal float64
	for _, line := range lines {
		if line.stockStatus == entity.StockStatusOutOfStock {
			return nil, &ProductUnavailableError{ProductID: line.productID, Name: line.name}
		}
		subtotal += line.price * float64(line.quantity)
	}

	ord.Subtotal = subtotal
	ord.ShippingFee, ord.TaxAmount, ord.DiscountAmount, ord.TotalAmount = pricing.Totals(subtotal)

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, customer_id, order_number, status, payment_status, payment_method,
		                   shipping_address, billing_address, subtotal, shipping_fee, tax_amount,
		                   discount_amount, total_amount, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`,
		ord.ID,
		ord.CustomerID,
		ord.OrderNumber,
		ord.Status,
		ord.PaymentStatus,
		ord.PaymentMethod,
		ord.ShippingAddress,
		ord.BillingAddress,
		ord.Subtotal,
		ord.ShippingFee,
		ord.TaxAmount,
		ord.DiscountAmount,
		ord.TotalAmount,
		ord.Notes,
		ord.CreatedAt,
		ord.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrOrderNumberTaken
		}
		r.log.Error("Failed to insert order",
			zap.Error(err),
			zap.String("order_number", ord.OrderNumber),
		)
		return nil, fmt.Errorf("insert order %s: %w", ord.OrderNumber, err)
	}

	items := make([]*entity.OrderItem, 0, len(lines))
	for _, line := range lines {
		item := &entity.OrderItem{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: ord.CreatedAt,
			},
			OrderID:     ord.ID,
			ProductID:   line.productID,
			ProductName: line.name,
			Quantity:    line.quantity,
			Price:       line.price,
			Subtotal:    line.price * float64(line.quantity),
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, product_name, quantity, price, subtotal, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`,
			item.ID,
			item.OrderID,
			item.ProductID,
			item.ProductName,
			item.Quantity,
			item.Price,
			item.Subtotal,
			item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("insert order item for product %s: %w", line.productID.String(), err)
		}

		newStock := line.stock - line.quantity
		if newStock < 0 {
			newStock = 0
		}
		newStatus := entity.DeriveStockStatus(newStock, line.stockStatus)

		_, err = tx.Exec(ctx, `
			UPDATE products SET stock = $2, stock_status = $3, updated_at = NOW() WHERE id = $1
		`, line.productID, newStock, newStatus)
		if err != nil {
			return nil, fmt.Errorf("decrement stock for product %s: %w", line.productID.String(), err)
		}
	}

	_, err = tx.Exec(ctx, `DELETE FROM cart_items WHERE customer_id = $1`, ord.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("clear cart after checkout: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit checkout transaction: %w", err)
	}

	r.log.Info("Order placed",
		zap.String("order_number", ord.OrderNumber),
		zap.String("customer_id", ord.CustomerID.String()),
		zap.Float64("total", ord.TotalAmount),
	)

	return items, nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	ord, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by ID",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return nil, fmt.Errorf("find order by ID %s: %w", id.String(), err)
	}

	return ord, nil
}

func (r *orderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, status *entity.OrderStatus, limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE customer_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`

	rows, err := r.db.Query(ctx, query, customerID, status, limit, offset)
	if err != nil {
		r.log.Error("Failed to list customer orders",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return nil, fmt.Errorf("list orders for %s: %w", customerID.String(), err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

func collectOrders(rows pgx.Rows) ([]*entity.Order, error) {
	var orders []*entity.Order
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, ord)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID, status *entity.OrderStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM orders WHERE customer_id = $1 AND ($2::text IS NULL OR status = $2)`

	var count int64
	err := r.db.QueryRow(ctx, query, customerID, status).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count customer orders", zap.Error(err))
		return 0, fmt.Errorf("count orders for %s: %w", customerID.String(), err)
	}

	return count, nil
}

func (r *orderRepository) FindItems(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, product_name, quantity, price, subtotal, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		r.log.Error("Failed to find order items",
			zap.Error(err),
			zap.String("order_id", orderID.String()),
		)
		return nil, fmt.Errorf("find items for order %s: %w", orderID.String(), err)
	}
	defer rows.Close()

	return collectOrderItems(rows)
}

func collectOrderItems(rows pgx.Rows) ([]*entity.OrderItem, error) {
	var items []*entity.OrderItem
	for rows.Next() {
		var item entity.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.Quantity,
			&item.Price,
			&item.Subtotal,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order item row: %w", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order item rows: %w", err)
	}
	return items, nil
}

func (r *orderRepository) ItemCounts(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(orderIDs))
	if len(orderIDs) == 0 {
		return counts, nil
	}

	query := `
		SELECT order_id, COALESCE(SUM(quantity), 0)
		FROM order_items
		WHERE order_id = ANY($1)
		GROUP BY order_id
	`

	rows, err := r.db.Query(ctx, query, orderIDs)
	if err != nil {
		r.log.Error("Failed to count order items", zap.Error(err))
		return nil, fmt.Errorf("count order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID uuid.UUID
		var count int
		if err := rows.Scan(&orderID, &count); err != nil {
			return nil, fmt.Errorf("scan item count row: %w", err)
		}
		counts[orderID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate item count rows: %w", err)
	}

	return counts, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	query := `UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update order status",
			zap.Error(err),
			zap.String("order_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update status of order %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("order %s not found", id.String())
	}

	return nil
}

func (r *orderRepository) CustomerStats(ctx context.Context, customerID uuid.UUID) (*entity.CustomerOrderStats, error) {
	stats := &entity.CustomerOrderStats{
		StatusCounts: make(map[entity.OrderStatus]int64),
	}

	var delivered int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'DELIVERED'),
		       COALESCE(SUM(total_amount) FILTER (WHERE status = 'DELIVERED'), 0)
		FROM orders
		WHERE customer_id = $1
	`, customerID).Scan(&stats.TotalOrders, &delivered, &stats.TotalSpent)
	if err != nil {
		r.log.Error("Failed to compute customer stats",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return nil, fmt.Errorf("customer stats for %s: %w", customerID.String(), err)
	}

	if delivered > 0 {
		stats.AverageOrderValue = stats.TotalSpent / float64(delivered)
	}

	rows, err := r.db.Query(ctx, `
		SELECT status, COUNT(*) FROM orders WHERE customer_id = $1 GROUP BY status
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("customer status counts for %s: %w", customerID.String(), err)
	}
	defer rows.Close()

	for rows.Next() {
		var status entity.OrderStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count row: %w", err)
		}
		stats.StatusCounts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status count rows: %w", err)
	}

	return stats, nil
}

// sellerOrderCond scopes orders to those containing at least one of the
// seller's products. Line items of deleted products drop out of the scope.
const sellerOrderCond = `EXISTS (
		SELECT 1 FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = o.id AND p.seller_id = $1
	)`

func (r *orderRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID, status *entity.OrderStatus, limit, offset int) ([]*entity.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders o
		WHERE %s AND ($2::text IS NULL OR o.status = $2)
		ORDER BY o.created_at DESC
		LIMIT $3 OFFSET $4`, orderColumns, sellerOrderCond)

	rows, err := r.db.Query(ctx, query, sellerID, status, limit, offset)
	if err != nil {
		r.log.Error("Failed to list seller orders",
			zap.Error(err),
			zap.String("seller_id", sellerID.String()),
		)
		return nil, fmt.Errorf("list orders for seller %s: %w", sellerID.String(), err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *orderRepository) CountBySeller(ctx context.Context, sellerID uuid.UUID, status *entity.OrderStatus) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM orders o
		WHERE %s AND ($2::text IS NULL OR o.status = $2)`, sellerOrderCond)

	var count int64
	err := r.db.QueryRow(ctx, query, sellerID, status).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count seller orders", zap.Error(err))
		return 0, fmt.Errorf("count orders for seller %s: %w", sellerID.String(), err)
	}

	return count, nil
}

func (r *orderRepository) FindByIDForSeller(ctx context.Context, id, sellerID uuid.UUID) (*entity.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders o WHERE o.id = $2 AND %s`, orderColumns, sellerOrderCond)

	ord, err := scanOrder(r.db.QueryRow(ctx, query, sellerID, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find seller order",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return nil, fmt.Errorf("find order %s for seller: %w", id.String(), err)
	}

	return ord, nil
}

func (r *orderRepository) FindItemsForSeller(ctx context.Context, orderID, sellerID uuid.UUID) ([]*entity.OrderItem, error) {
	query := `
		SELECT oi.id, oi.order_id, oi.product_id, oi.product_name, oi.quantity, oi.price, oi.subtotal, oi.created_at
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1 AND p.seller_id = $2
		ORDER BY oi.created_at, oi.id
	`

	rows, err := r.db.Query(ctx, query, orderID, sellerID)
	if err != nil {
		r.log.Error("Failed to find seller order items",
			zap.Error(err),
			zap.String("order_id", orderID.String()),
		)
		return nil, fmt.Errorf("find seller items for order %s: %w", orderID.String(), err)
	}
	defer rows.Close()

	return collectOrderItems(rows)
}

func (r *orderRepository) SellerStats(ctx context.Context, sellerID uuid.UUID) (*entity.SellerStats, error) {
	stats := &entity.SellerStats{}

	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE seller_id = $1`, sellerID,
	).Scan(&stats.TotalProducts)
	if err != nil {
		return nil, fmt.Errorf("count seller products: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE o.status = 'PENDING')
		FROM orders o
		WHERE %s
	`, sellerOrderCond)
	err = r.db.QueryRow(ctx, query, sellerID).Scan(&stats.TotalOrders, &stats.PendingOrders)
	if err != nil {
		r.log.Error("Failed to compute seller order stats",
			zap.Error(err),
			zap.String("seller_id", sellerID.String()),
		)
		return nil, fmt.Errorf("seller order stats for %s: %w", sellerID.String(), err)
	}

	err = r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(oi.subtotal), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE p.seller_id = $1 AND o.status = 'DELIVERED'
	`, sellerID).Scan(&stats.TotalRevenue)
	if err != nil {
		return nil, fmt.Errorf("seller revenue for %s: %w", sellerID.String(), err)
	}

	return stats, nil
}

func (r *orderRepository) RevenueByDay(ctx context.Context, sellerID uuid.UUID, days int) ([]*entity.RevenuePoint, error) {
	query := `
		SELECT DATE_TRUNC('day', o.created_at) AS day,
		       COUNT(DISTINCT o.id),
		       COALESCE(SUM(oi.subtotal), 0)
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN products p ON p.id = oi.product_id
		WHERE p.seller_id = $1
		  AND o.status = 'DELIVERED'
		  AND o.created_at >= NOW() - make_interval(days => $2)
		GROUP BY day
		ORDER BY day
	`

	rows, err := r.db.Query(ctx, query, sellerID, days)
	if err != nil {
		r.log.Error("Failed to compute revenue by day",
			zap.Error(err),
			zap.String("seller_id", sellerID.String()),
		)
		return nil, fmt.Errorf("revenue by day for seller %s: %w", sellerID.String(), err)
	}
	defer rows.Close()

	var points []*entity.RevenuePoint
	for rows.Next() {
		var point entity.RevenuePoint
		var day time.Time
		if err := rows.Scan(&day, &point.Orders, &point.Revenue); err != nil {
			return nil, fmt.Errorf("scan revenue row: %w", err)
		}
		point.Day = day
		points = append(points, &point)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate revenue rows: %w", err)
	}

	return points, nil
}

func (r *orderRepository) TopProducts(ctx context.Context, sellerID uuid.UUID, limit int) ([]*entity.TopProduct, error) {
	query := `
		SELECT oi.product_id, oi.product_name, SUM(oi.quantity), SUM(oi.subtotal)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE p.seller_id = $1 AND o.status = 'DELIVERED'
		GROUP BY oi.product_id, oi.product_name
		ORDER BY SUM(oi.subtotal) DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, sellerID, limit)
	if err != nil {
		r.log.Error("Failed to compute top products",
			zap.Error(err),
			zap.String("seller_id", sellerID.String()),
		)
		return nil, fmt.Errorf("top products for seller %s: %w", sellerID.String(), err)
	}
	defer rows.Close()

	var tops []*entity.TopProduct
	for rows.Next() {
		var top entity.TopProduct
		if err := rows.Scan(&top.ProductID, &top.Name, &top.UnitsSold, &top.Revenue); err != nil {
			return nil, fmt.Errorf("scan top product row: %w", err)
		}
		tops = append(tops, &top)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate top product rows: %w", err)
	}

	return tops, nil
}
