package postgres

import (
	"context"
	"fmt"

	"github.com/cimillas/surplus-market/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Restaurant row access shared by the order and capacity repositories; both
// lock the row before changing remaining_bags.

func getRestaurantForUpdate(ctx context.Context, queryRow func(context.Context, string, ...any) pgx.Row, restaurantID string) (domain.Restaurant, error) {
	const query = `
SELECT id, name, locations, num_of_bags, remaining_bags, overall_rating, opens_at, closes_at, created_at
FROM restaurants
WHERE id = $1
FOR UPDATE`

	var rst domain.Restaurant
	err := queryRow(ctx, query, restaurantID).Scan(
		&rst.ID,
		&rst.Name,
		&rst.Locations,
		&rst.NumOfBags,
		&rst.RemainingBags,
		&rst.OverallRating,
		&rst.OpensAt,
		&rst.ClosesAt,
		&rst.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Restaurant{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Restaurant{}, domain.ErrRestaurantNotFound
		}
		return domain.Restaurant{}, fmt.Errorf("get restaurant: %w", err)
	}
	return rst, nil
}

func setRemainingBags(ctx context.Context, exec func(context.Context, string, ...any) (pgconn.CommandTag, error), restaurantID string, remaining int) error {
	const stmt = `UPDATE restaurants SET remaining_bags = $2 WHERE id = $1`

	tag, err := exec(ctx, stmt, restaurantID, remaining)
	if err != nil {
		if isCheckViolation(err) {
			if remaining < 0 {
				return domain.ErrInsufficientBags
			}
			return domain.ErrCapacityExceeded
		}
		return fmt.Errorf("set remaining bags: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRestaurantNotFound
	}
	return nil
}

func listRestaurants(ctx context.Context, query func(context.Context, string, ...any) (pgx.Rows, error)) ([]domain.Restaurant, error) {
	const sql = `
SELECT id, name, locations, num_of_bags, remaining_bags, overall_rating, opens_at, closes_at, created_at
FROM restaurants
ORDER BY created_at, id`

	rows, err := query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Restaurant, 0)
	for rows.Next() {
		var rst domain.Restaurant
		if err := rows.Scan(
			&rst.ID,
			&rst.Name,
			&rst.Locations,
			&rst.NumOfBags,
			&rst.RemainingBags,
			&rst.OverallRating,
			&rst.OpensAt,
			&rst.ClosesAt,
			&rst.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		out = append(out, rst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return out, nil
}
