package app

import (
	"context"
	"net/mail"
	"slices"
	"time"

	"github.com/cimillas/surplus-market/internal/clock"
	"github.com/cimillas/surplus-market/internal/domain"
)

type InquiryRepository interface {
	GetCustomerByEmail(ctx context.Context, email string) (domain.Customer, error)
	// RecordInquiryLocation appends location to the customer's set if absent
	// and stamps last_used_at.
	RecordInquiryLocation(ctx context.Context, customerID, location string, at time.Time) error
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
}

// RestaurantSummary is the projection returned to inquiring customers.
type RestaurantSummary struct {
	Name          string
	RemainingBags int
}

// Strategy selects restaurants for a customer inquiry. Implementations filter
// and rank the full catalog however they see fit.
type Strategy interface {
	Match(location string, restaurants []domain.Restaurant) []RestaurantSummary
}

const simplexRatingThreshold = 2.5

// simplexStrategy keeps restaurants serving the inquiry location with an
// overall rating at or above the threshold.
type simplexStrategy struct{}

func (simplexStrategy) Match(location string, restaurants []domain.Restaurant) []RestaurantSummary {
	out := make([]RestaurantSummary, 0)
	for _, rst := range restaurants {
		if rst.OverallRating < simplexRatingThreshold {
			continue
		}
		if !slices.Contains(rst.Locations, location) {
			continue
		}
		out = append(out, RestaurantSummary{
			Name:          rst.Name,
			RemainingBags: rst.RemainingBags,
		})
	}
	return out
}

type InquiryService struct {
	repo       InquiryRepository
	clock      clock.Clock
	strategies map[string]Strategy
}

func NewInquiryService(repo InquiryRepository, clk clock.Clock) *InquiryService {
	return &InquiryService{
		repo:  repo,
		clock: clk,
		strategies: map[string]Strategy{
			"simplex": simplexStrategy{},
		},
	}
}

// RegisterStrategy adds a named selection strategy. Registering an existing
// name replaces it.
func (s *InquiryService) RegisterStrategy(name string, strategy Strategy) {
	s.strategies[name] = strategy
}

type InquiryInput struct {
	Email    string
	Location string
	Strategy string
}

// Inquire returns restaurants matching the customer's location under the named
// strategy. Unknown strategy names yield an empty result, not an error; the
// location is recorded against the customer either way.
func (s *InquiryService) Inquire(ctx context.Context, in InquiryInput) ([]RestaurantSummary, error) {
	if in.Email == "" {
		return nil, domain.ErrInvalidEmail
	}
	if in.Location == "" {
		return nil, domain.ErrLocationRequired
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, domain.ErrInvalidEmail
	}

	customer, err := s.repo.GetCustomerByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}

	if err := s.repo.RecordInquiryLocation(ctx, customer.ID, in.Location, s.clock.Now()); err != nil {
		return nil, err
	}

	strategy, ok := s.strategies[in.Strategy]
	if !ok {
		return []RestaurantSummary{}, nil
	}

	restaurants, err := s.repo.ListRestaurants(ctx)
	if err != nil {
		return nil, err
	}
	return strategy.Match(in.Location, restaurants), nil
}
