package app

import (
	"context"
	"testing"
	"time"

	"github.com/cimillas/surplus-market/internal/clock"
	"github.com/cimillas/surplus-market/internal/domain"
)

func TestOrderService_PlaceOrder(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("debits ledger and creates active order", func(t *testing.T) {
		repo := newFakeOrderRepo([]domain.Restaurant{
			{ID: "r1", Name: "Pizza Palace", NumOfBags: 10, RemainingBags: 10},
		})
		svc := NewOrderService(repo, clock.NewFixed(now))

		res, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
			RestaurantID: "r1",
			Quantity:     3,
			Contact:      "a@b.com",
			Location:     "Downtown",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res.RemainingBags != 7 {
			t.Fatalf("expected 7 remaining bags, got %d", res.RemainingBags)
		}
		if res.Order.ID == "" {
			t.Fatalf("expected order ID to be set")
		}
		if res.Order.Status != domain.OrderStatusActive {
			t.Fatalf("expected status active, got %s", res.Order.Status)
		}
		if res.Order.OrderedAt != now {
			t.Fatalf("expected ordered_at %v, got %v", now, res.Order.OrderedAt)
		}
		if repo.restaurants["r1"].RemainingBags != 7 {
			t.Fatalf("expected ledger at 7, got %d", repo.restaurants["r1"].RemainingBags)
		}
		if len(repo.orders) != 1 {
			t.Fatalf("expected 1 order persisted, got %d", len(repo.orders))
		}
		if got := repo.locations["a@b.com"]; len(got) != 1 || got[0] != "Downtown" {
			t.Fatalf("expected customer location recorded, got %v", got)
		}
	})

	t.Run("zero quantity fails and leaves ledger unchanged", func(t *testing.T) {
		repo := newFakeOrderRepo([]domain.Restaurant{
			{ID: "r1", NumOfBags: 10, RemainingBags: 10},
		})
		svc := NewOrderService(repo, clock.NewFixed(now))

		_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
			RestaurantID: "r1",
			Quantity:     0,
			Contact:      "a@b.com",
			Location:     "Downtown",
		})
		if err != domain.ErrInvalidQuantity {
			t.Fatalf("expected ErrInvalidQuantity, got %v", err)
		}
		if repo.restaurants["r1"].RemainingBags != 10 {
			t.Fatalf("expected ledger unchanged, got %d", repo.restaurants["r1"].RemainingBags)
		}
		if len(repo.orders) != 0 {
			t.Fatalf("expected no order created, got %d", len(repo.orders))
		}
	})

	t.Run("insufficient bags fails atomically", func(t *testing.T) {
		repo := newFakeOrderRepo([]domain.Restaurant{
			{ID: "r1", NumOfBags: 10, RemainingBags: 2},
		})
		svc := NewOrderService(repo, clock.NewFixed(now))

		_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
			RestaurantID: "r1",
			Quantity:     3,
			Contact:      "a@b.com",
			Location:     "Downtown",
		})
		if err != domain.ErrInsufficientBags {
			t.Fatalf("expected ErrInsufficientBags, got %v", err)
		}
		if repo.restaurants["r1"].RemainingBags != 2 {
			t.Fatalf("expected ledger unchanged, got %d", repo.restaurants["r1"].RemainingBags)
		}
		if len(repo.orders) != 0 {
			t.Fatalf("expected no order created, got %d", len(repo.orders))
		}
	})

	t.Run("unknown restaurant fails", func(t *testing.T) {
		repo := newFakeOrderRepo(nil)
		svc := NewOrderService(repo, clock.NewFixed(now))

		_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
			RestaurantID: "missing",
			Quantity:     1,
			Contact:      "a@b.com",
			Location:     "Downtown",
		})
		if err != domain.ErrRestaurantNotFound {
			t.Fatalf("expected ErrRestaurantNotFound, got %v", err)
		}
	})

	t.Run("missing contact fails", func(t *testing.T) {
		repo := newFakeOrderRepo([]domain.Restaurant{
			{ID: "r1", NumOfBags: 10, RemainingBags: 10},
		})
		svc := NewOrderService(repo, clock.NewFixed(now))

		_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
			RestaurantID: "r1",
			Quantity:     1,
			Location:     "Downtown",
		})
		if err != domain.ErrContactRequired {
			t.Fatalf("expected ErrContactRequired, got %v", err)
		}
	})

	t.Run("location add is idempotent", func(t *testing.T) {
		repo := newFakeOrderRepo([]domain.Restaurant{
			{ID: "r1", NumOfBags: 10, RemainingBags: 10},
		})
		svc := NewOrderService(repo, clock.NewFixed(now))

		for i := 0; i < 2; i++ {
			if _, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
				RestaurantID: "r1",
				Quantity:     1,
				Contact:      "a@b.com",
				Location:     "Downtown",
			}); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		}
		if got := repo.locations["a@b.com"]; len(got) != 1 {
			t.Fatalf("expected location recorded once, got %v", got)
		}
	})
}

func TestOrderService_CancelOrder(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)

	t.Run("restores exactly the ordered quantity", func(t *testing.T) {
		repo := newFakeOrderRepo([]domain.Restaurant{
			{ID: "r1", NumOfBags: 10, RemainingBags: 7},
		})
		repo.orders["o1"] = domain.PurchaseOrder{
			ID:           "o1",
			RestaurantID: "r1",
			Contact:      "a@b.com",
			Quantity:     3,
			Status:       domain.OrderStatusActive,
		}
		svc := NewOrderService(repo, clock.NewFixed(now))

		res, err := svc.CancelOrder(context.Background(), CancelOrderInput{
			OrderID: "o1",
			Contact: "a@b.com",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res.RemainingBags != 10 {
			t.Fatalf("expected 10 remaining bags, got %d", res.RemainingBags)
		}
		if res.Order.Status != domain.OrderStatusCancelled {
			t.Fatalf("expected status cancelled, got %s", res.Order.Status)
		}
		if res.Order.CancelledAt == nil || !res.Order.CancelledAt.Equal(now) {
			t.Fatalf("expected cancelled_at %v, got %v", now, res.Order.CancelledAt)
		}
		if repo.orders["o1"].Status != domain.OrderStatusCancelled {
			t.Fatalf("expected persisted order cancelled, got %s", repo.orders["o1"].Status)
		}
	})

	t.Run("missing order leaves ledger unchanged", func(t *testing.T) {
		repo := newFakeOrderRepo([]domain.Restaurant{
			{ID: "r1", NumOfBags: 10, RemainingBags: 7},
		})
		svc := NewOrderService(repo, clock.NewFixed(now))

		_, err := svc.CancelOrder(context.Background(), CancelOrderInput{
			OrderID: "missing",
			Contact: "a@b.com",
		})
		if err != domain.ErrOrderNotFound {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
		if repo.restaurants["r1"].RemainingBags != 7 {
			t.Fatalf("expected ledger unchanged, got %d", repo.restaurants["r1"].RemainingBags)
		}
	})

	t.Run("second cancel fails and does not restore twice", func(t *testing.T) {
		repo := newFakeOrderRepo([]domain.Restaurant{
			{ID: "r1", NumOfBags: 10, RemainingBags: 7},
		})
		repo.orders["o1"] = domain.PurchaseOrder{
			ID:           "o1",
			RestaurantID: "r1",
			Contact:      "a@b.com",
			Quantity:     3,
			Status:       domain.OrderStatusActive,
		}
		svc := NewOrderService(repo, clock.NewFixed(now))

		if _, err := svc.CancelOrder(context.Background(), CancelOrderInput{OrderID: "o1", Contact: "a@b.com"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		_, err := svc.CancelOrder(context.Background(), CancelOrderInput{OrderID: "o1", Contact: "a@b.com"})
		if err != domain.ErrOrderAlreadyCancelled {
			t.Fatalf("expected ErrOrderAlreadyCancelled, got %v", err)
		}
		if repo.restaurants["r1"].RemainingBags != 10 {
			t.Fatalf("expected ledger restored once, got %d", repo.restaurants["r1"].RemainingBags)
		}
	})

	t.Run("wrong contact is rejected", func(t *testing.T) {
		repo := newFakeOrderRepo([]domain.Restaurant{
			{ID: "r1", NumOfBags: 10, RemainingBags: 7},
		})
		repo.orders["o1"] = domain.PurchaseOrder{
			ID:           "o1",
			RestaurantID: "r1",
			Contact:      "a@b.com",
			Quantity:     3,
			Status:       domain.OrderStatusActive,
		}
		svc := NewOrderService(repo, clock.NewFixed(now))

		_, err := svc.CancelOrder(context.Background(), CancelOrderInput{
			OrderID: "o1",
			Contact: "someone-else@b.com",
		})
		if err != domain.ErrOrderNotOwned {
			t.Fatalf("expected ErrOrderNotOwned, got %v", err)
		}
		if repo.orders["o1"].Status != domain.OrderStatusActive {
			t.Fatalf("expected order still active, got %s", repo.orders["o1"].Status)
		}
		if repo.restaurants["r1"].RemainingBags != 7 {
			t.Fatalf("expected ledger unchanged, got %d", repo.restaurants["r1"].RemainingBags)
		}
	})

	t.Run("place then cancel round-trips the ledger", func(t *testing.T) {
		repo := newFakeOrderRepo([]domain.Restaurant{
			{ID: "r1", NumOfBags: 10, RemainingBags: 10},
		})
		svc := NewOrderService(repo, clock.NewFixed(now))

		placed, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
			RestaurantID: "r1",
			Quantity:     3,
			Contact:      "a@b.com",
			Location:     "Downtown",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if placed.RemainingBags != 7 {
			t.Fatalf("expected 7 remaining after purchase, got %d", placed.RemainingBags)
		}

		cancelled, err := svc.CancelOrder(context.Background(), CancelOrderInput{
			OrderID: placed.Order.ID,
			Contact: "a@b.com",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cancelled.RemainingBags != 10 {
			t.Fatalf("expected 10 remaining after cancel, got %d", cancelled.RemainingBags)
		}
	})
}

type fakeOrderRepo struct {
	restaurants map[string]domain.Restaurant
	orders      map[string]domain.PurchaseOrder
	locations   map[string][]string
}

func newFakeOrderRepo(restaurants []domain.Restaurant) *fakeOrderRepo {
	m := make(map[string]domain.Restaurant)
	for _, rst := range restaurants {
		m[rst.ID] = rst
	}
	return &fakeOrderRepo{
		restaurants: m,
		orders:      make(map[string]domain.PurchaseOrder),
		locations:   make(map[string][]string),
	}
}

func (f *fakeOrderRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeOrderRepo) GetRestaurantForUpdate(_ context.Context, restaurantID string) (domain.Restaurant, error) {
	rst, ok := f.restaurants[restaurantID]
	if !ok {
		return domain.Restaurant{}, domain.ErrRestaurantNotFound
	}
	return rst, nil
}

func (f *fakeOrderRepo) SetRemainingBags(_ context.Context, restaurantID string, remaining int) error {
	rst, ok := f.restaurants[restaurantID]
	if !ok {
		return domain.ErrRestaurantNotFound
	}
	rst.RemainingBags = remaining
	f.restaurants[restaurantID] = rst
	return nil
}

func (f *fakeOrderRepo) CreateOrder(_ context.Context, order domain.PurchaseOrder) error {
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) GetOrderForUpdate(_ context.Context, orderID string) (domain.PurchaseOrder, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return domain.PurchaseOrder{}, domain.ErrOrderNotFound
	}
	return order, nil
}

func (f *fakeOrderRepo) MarkOrderCancelled(_ context.Context, orderID string, at time.Time) error {
	order, ok := f.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.Status = domain.OrderStatusCancelled
	order.CancelledAt = &at
	f.orders[orderID] = order
	return nil
}

func (f *fakeOrderRepo) AddCustomerLocation(_ context.Context, contact, location string) error {
	for _, existing := range f.locations[contact] {
		if existing == location {
			return nil
		}
	}
	f.locations[contact] = append(f.locations[contact], location)
	return nil
}
