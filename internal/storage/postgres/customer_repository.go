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

type CustomerRepository struct {
	pool *pgxpool.Pool
}

func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

func (r *CustomerRepository) GetCustomerByEmail(ctx context.Context, email string) (domain.Customer, error) {
	const query = `
SELECT id, name, email, mobile_number, locations, last_used_at, created_at
FROM customers
WHERE email = $1`

	var c domain.Customer
	err := r.queryRow(ctx, query, email).Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.MobileNumber,
		&c.Locations,
		&c.LastUsedAt,
		&c.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Customer{}, domain.ErrCustomerNotFound
		}
		return domain.Customer{}, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

func (r *CustomerRepository) RecordInquiryLocation(ctx context.Context, customerID, location string, at time.Time) error {
	const stmt = `
UPDATE customers
SET locations = CASE WHEN $2 = ANY(locations) THEN locations ELSE array_append(locations, $2) END,
    last_used_at = $3
WHERE id = $1`

	tag, err := r.exec(ctx, stmt, customerID, location, at)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("record inquiry location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func (r *CustomerRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	return listRestaurants(ctx, r.query)
}

func (r *CustomerRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *CustomerRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}

func (r *CustomerRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
