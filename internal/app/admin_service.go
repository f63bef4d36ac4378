package app

import (
	"context"
	"net/mail"
	"time"

	"github.com/cimillas/surplus-market/internal/clock"
	"github.com/cimillas/surplus-market/internal/domain"
)

type AdminRepository interface {
	CreateRestaurant(ctx context.Context, restaurant domain.Restaurant) error
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	CreateCustomer(ctx context.Context, customer domain.Customer) error
}

type AdminService struct {
	repo  AdminRepository
	clock clock.Clock
}

func NewAdminService(repo AdminRepository, clk clock.Clock) *AdminService {
	return &AdminService{
		repo:  repo,
		clock: clk,
	}
}

type CreateRestaurantInput struct {
	Name          string
	Locations     []string
	NumOfBags     int
	// RemainingBags defaults to NumOfBags when nil.
	RemainingBags *int
	OverallRating float64
	OpensAt       string
	ClosesAt      string
}

func (s *AdminService) CreateRestaurant(ctx context.Context, in CreateRestaurantInput) (domain.Restaurant, error) {
	if in.Name == "" {
		return domain.Restaurant{}, domain.ErrRestaurantNameRequired
	}
	if in.NumOfBags <= 0 {
		return domain.Restaurant{}, domain.ErrInvalidCapacity
	}
	remaining := in.NumOfBags
	if in.RemainingBags != nil {
		remaining = *in.RemainingBags
	}
	if remaining < 0 || remaining > in.NumOfBags {
		return domain.Restaurant{}, domain.ErrInvalidCapacity
	}
	if in.OverallRating < 0 || in.OverallRating > 5 {
		return domain.Restaurant{}, domain.ErrInvalidRating
	}
	for _, layout := range []string{in.OpensAt, in.ClosesAt} {
		if layout == "" {
			continue
		}
		if _, err := time.Parse("15:04", layout); err != nil {
			return domain.Restaurant{}, domain.ErrInvalidOpeningHours
		}
	}

	restaurant := domain.Restaurant{
		ID:            newID(),
		Name:          in.Name,
		Locations:     in.Locations,
		NumOfBags:     in.NumOfBags,
		RemainingBags: remaining,
		OverallRating: in.OverallRating,
		OpensAt:       in.OpensAt,
		ClosesAt:      in.ClosesAt,
		CreatedAt:     s.clock.Now(),
	}
	if restaurant.Locations == nil {
		restaurant.Locations = []string{}
	}

	if err := s.repo.CreateRestaurant(ctx, restaurant); err != nil {
		return domain.Restaurant{}, err
	}
	return restaurant, nil
}

func (s *AdminService) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	return s.repo.ListRestaurants(ctx)
}

type CreateCustomerInput struct {
	Name         string
	Email        string
	MobileNumber string
}

func (s *AdminService) CreateCustomer(ctx context.Context, in CreateCustomerInput) (domain.Customer, error) {
	if in.Name == "" {
		return domain.Customer{}, domain.ErrCustomerNameRequired
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return domain.Customer{}, domain.ErrInvalidEmail
	}

	now := s.clock.Now()
	customer := domain.Customer{
		ID:           newID(),
		Name:         in.Name,
		Email:        in.Email,
		MobileNumber: in.MobileNumber,
		Locations:    []string{},
		LastUsedAt:   now,
		CreatedAt:    now,
	}

	if err := s.repo.CreateCustomer(ctx, customer); err != nil {
		return domain.Customer{}, err
	}
	return customer, nil
}
