package postgres

import (
	"context"
	"fmt"

	"github.com/cimillas/surplus-market/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

func (r *AdminRepository) CreateRestaurant(ctx context.Context, restaurant domain.Restaurant) error {
	const stmt = `
INSERT INTO restaurants (id, name, locations, num_of_bags, remaining_bags, overall_rating, opens_at, closes_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.exec(ctx, stmt,
		restaurant.ID,
		restaurant.Name,
		restaurant.Locations,
		restaurant.NumOfBags,
		restaurant.RemainingBags,
		restaurant.OverallRating,
		restaurant.OpensAt,
		restaurant.ClosesAt,
		restaurant.CreatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInvalidCapacity
		}
		return fmt.Errorf("create restaurant: %w", err)
	}
	return nil
}

func (r *AdminRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	return listRestaurants(ctx, r.query)
}

func (r *AdminRepository) CreateCustomer(ctx context.Context, customer domain.Customer) error {
	const stmt = `
INSERT INTO customers (id, name, email, mobile_number, locations, last_used_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.exec(ctx, stmt,
		customer.ID,
		customer.Name,
		customer.Email,
		customer.MobileNumber,
		customer.Locations,
		customer.LastUsedAt,
		customer.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyRegistered
		}
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

func (r *AdminRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *AdminRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
