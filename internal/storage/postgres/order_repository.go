package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cimillas/surplus-market/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *OrderRepository) GetRestaurantForUpdate(ctx context.Context, restaurantID string) (domain.Restaurant, error) {
	return getRestaurantForUpdate(ctx, r.queryRow, restaurantID)
}

func (r *OrderRepository) SetRemainingBags(ctx context.Context, restaurantID string, remaining int) error {
	return setRemainingBags(ctx, r.exec, restaurantID, remaining)
}

func (r *OrderRepository) CreateOrder(ctx context.Context, order domain.PurchaseOrder) error {
	const stmt = `
INSERT INTO purchase_orders (id, restaurant_id, contact, location, quantity, status, ordered_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.exec(ctx, stmt,
		order.ID,
		order.RestaurantID,
		order.Contact,
		order.Location,
		order.Quantity,
		order.Status,
		order.OrderedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (r *OrderRepository) GetOrderForUpdate(ctx context.Context, orderID string) (domain.PurchaseOrder, error) {
	const query = `
SELECT id, restaurant_id, contact, location, quantity, status, ordered_at, cancelled_at
FROM purchase_orders
WHERE id = $1
FOR UPDATE`

	var o domain.PurchaseOrder
	var status string
	err := r.queryRow(ctx, query, orderID).
		Scan(&o.ID, &o.RestaurantID, &o.Contact, &o.Location, &o.Quantity, &status, &o.OrderedAt, &o.CancelledAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.PurchaseOrder{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.PurchaseOrder{}, domain.ErrOrderNotFound
		}
		return domain.PurchaseOrder{}, fmt.Errorf("get order: %w", err)
	}
	o.Status = domain.OrderStatus(status)
	return o, nil
}

func (r *OrderRepository) MarkOrderCancelled(ctx context.Context, orderID string, at time.Time) error {
	const stmt = `
UPDATE purchase_orders
SET status = $2, cancelled_at = $3
WHERE id = $1 AND status <> $2`

	tag, err := r.exec(ctx, stmt, orderID, domain.OrderStatusCancelled, at)
	if err != nil {
		return fmt.Errorf("mark order cancelled: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderAlreadyCancelled
	}
	return nil
}

func (r *OrderRepository) AddCustomerLocation(ctx context.Context, contact, location string) error {
	const stmt = `
UPDATE customers
SET locations = array_append(locations, $2)
WHERE email = $1 AND NOT ($2 = ANY(locations))`

	// Unregistered contacts simply match no row.
	if _, err := r.exec(ctx, stmt, contact, location); err != nil {
		return fmt.Errorf("add customer location: %w", err)
	}
	return nil
}

func (r *OrderRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *OrderRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
