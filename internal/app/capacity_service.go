package app

import (
	"context"
	"time"

	"github.com/cimillas/surplus-market/internal/clock"
	"github.com/cimillas/surplus-market/internal/domain"
)

type CapacityRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetRestaurantForUpdate(ctx context.Context, restaurantID string) (domain.Restaurant, error)
	SetRemainingBags(ctx context.Context, restaurantID string, remaining int) error
	// ActiveOrderContacts lists the distinct contacts holding active orders at
	// the restaurant.
	ActiveOrderContacts(ctx context.Context, restaurantID string) ([]string, error)
	// CustomerEmailsByLocations lists emails of customers whose location set
	// intersects the given locations.
	CustomerEmailsByLocations(ctx context.Context, locations []string) ([]string, error)
}

// CapacityChange is the availability notification broadcast to customers when
// a restaurant releases bags back into circulation.
type CapacityChange struct {
	RestaurantID   string    `json:"restaurant_id"`
	RestaurantName string    `json:"restaurant_name"`
	BagsReleased   int       `json:"bags_released"`
	Recipients     []string  `json:"recipients"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Notifier delivers capacity-change broadcasts. Delivery is fire-and-forget:
// implementations never block the caller on broker errors.
type Notifier interface {
	CapacityChanged(ctx context.Context, change CapacityChange)
}

type CapacityService struct {
	repo     CapacityRepository
	notifier Notifier
	clock    clock.Clock
}

func NewCapacityService(repo CapacityRepository, notifier Notifier, clk clock.Clock) *CapacityService {
	return &CapacityService{
		repo:     repo,
		notifier: notifier,
		clock:    clk,
	}
}

type ReleaseCapacityInput struct {
	RestaurantID string
	Quantity     int
}

type ReleaseCapacityResult struct {
	RemainingBags int
}

// ReleaseCapacity puts bags back on a restaurant's ledger, e.g. when the
// restaurant frees up surplus it had withheld. Customers with active orders or
// inquiry locations matching the restaurant are notified before the ledger
// moves; order statuses are never touched.
func (s *CapacityService) ReleaseCapacity(ctx context.Context, in ReleaseCapacityInput) (ReleaseCapacityResult, error) {
	if in.RestaurantID == "" {
		return ReleaseCapacityResult{}, domain.ErrInvalidID
	}
	if in.Quantity <= 0 {
		return ReleaseCapacityResult{}, domain.ErrInvalidQuantity
	}

	now := s.clock.Now()
	var result ReleaseCapacityResult

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		rst, err := s.repo.GetRestaurantForUpdate(txCtx, in.RestaurantID)
		if err != nil {
			return err
		}

		contacts, err := s.repo.ActiveOrderContacts(txCtx, rst.ID)
		if err != nil {
			return err
		}
		emails, err := s.repo.CustomerEmailsByLocations(txCtx, rst.Locations)
		if err != nil {
			return err
		}

		s.notifier.CapacityChanged(ctx, CapacityChange{
			RestaurantID:   rst.ID,
			RestaurantName: rst.Name,
			BagsReleased:   in.Quantity,
			Recipients:     mergeRecipients(contacts, emails),
			OccurredAt:     now,
		})

		remaining, err := adjustBags(rst, in.Quantity)
		if err != nil {
			return err
		}
		if err := s.repo.SetRemainingBags(txCtx, rst.ID, remaining); err != nil {
			return err
		}

		result = ReleaseCapacityResult{RemainingBags: remaining}
		return nil
	})
	if err != nil {
		return ReleaseCapacityResult{}, err
	}

	return result, nil
}

func mergeRecipients(groups ...[]string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, group := range groups {
		for _, recipient := range group {
			if recipient == "" {
				continue
			}
			if _, ok := seen[recipient]; ok {
				continue
			}
			seen[recipient] = struct{}{}
			out = append(out, recipient)
		}
	}
	return out
}
