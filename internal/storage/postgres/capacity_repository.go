package postgres

import (
	"context"
	"fmt"

	"github.com/cimillas/surplus-market/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CapacityRepository struct {
	pool *pgxpool.Pool
}

func NewCapacityRepository(pool *pgxpool.Pool) *CapacityRepository {
	return &CapacityRepository{pool: pool}
}

func (r *CapacityRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *CapacityRepository) GetRestaurantForUpdate(ctx context.Context, restaurantID string) (domain.Restaurant, error) {
	return getRestaurantForUpdate(ctx, r.queryRow, restaurantID)
}

func (r *CapacityRepository) SetRemainingBags(ctx context.Context, restaurantID string, remaining int) error {
	return setRemainingBags(ctx, r.exec, restaurantID, remaining)
}

func (r *CapacityRepository) ActiveOrderContacts(ctx context.Context, restaurantID string) ([]string, error) {
	const query = `
SELECT DISTINCT contact
FROM purchase_orders
WHERE restaurant_id = $1 AND status = $2
ORDER BY contact`

	rows, err := r.query(ctx, query, restaurantID, domain.OrderStatusActive)
	if err != nil {
		return nil, fmt.Errorf("active order contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]string, 0)
	for rows.Next() {
		var contact string
		if err := rows.Scan(&contact); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("active order contacts: %w", err)
	}
	return contacts, nil
}

func (r *CapacityRepository) CustomerEmailsByLocations(ctx context.Context, locations []string) ([]string, error) {
	if len(locations) == 0 {
		return nil, nil
	}

	const query = `
SELECT email
FROM customers
WHERE locations && $1
ORDER BY email`

	rows, err := r.query(ctx, query, locations)
	if err != nil {
		return nil, fmt.Errorf("customer emails by locations: %w", err)
	}
	defer rows.Close()

	emails := make([]string, 0)
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("scan email: %w", err)
		}
		emails = append(emails, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("customer emails by locations: %w", err)
	}
	return emails, nil
}

func (r *CapacityRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *CapacityRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}

func (r *CapacityRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
