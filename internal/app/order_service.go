package app

import (
	"context"
	"time"

	"github.com/cimillas/surplus-market/internal/clock"
	"github.com/cimillas/surplus-market/internal/domain"
)

type OrderRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetRestaurantForUpdate(ctx context.Context, restaurantID string) (domain.Restaurant, error)
	SetRemainingBags(ctx context.Context, restaurantID string, remaining int) error
	CreateOrder(ctx context.Context, order domain.PurchaseOrder) error
	GetOrderForUpdate(ctx context.Context, orderID string) (domain.PurchaseOrder, error)
	MarkOrderCancelled(ctx context.Context, orderID string, at time.Time) error
	// AddCustomerLocation records the location against the registered customer
	// matching contact, if any. Add-if-absent; unregistered contacts are a no-op.
	AddCustomerLocation(ctx context.Context, contact, location string) error
}

type OrderService struct {
	repo  OrderRepository
	clock clock.Clock
}

func NewOrderService(repo OrderRepository, clk clock.Clock) *OrderService {
	return &OrderService{
		repo:  repo,
		clock: clk,
	}
}

type PlaceOrderInput struct {
	RestaurantID string
	Quantity     int
	Contact      string
	Location     string
}

type PlaceOrderResult struct {
	Order         domain.PurchaseOrder
	RemainingBags int
}

// PlaceOrder reserves bags at a restaurant. The debit and the order insert
// happen in one transaction: if the restaurant cannot cover the quantity, no
// order is created and the ledger is untouched.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (PlaceOrderResult, error) {
	if in.RestaurantID == "" {
		return PlaceOrderResult{}, domain.ErrInvalidID
	}
	if in.Quantity <= 0 {
		return PlaceOrderResult{}, domain.ErrInvalidQuantity
	}
	if in.Contact == "" {
		return PlaceOrderResult{}, domain.ErrContactRequired
	}
	if in.Location == "" {
		return PlaceOrderResult{}, domain.ErrLocationRequired
	}

	now := s.clock.Now()
	var result PlaceOrderResult

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		rst, err := s.repo.GetRestaurantForUpdate(txCtx, in.RestaurantID)
		if err != nil {
			return err
		}

		if err := s.repo.AddCustomerLocation(txCtx, in.Contact, in.Location); err != nil {
			return err
		}

		remaining, err := adjustBags(rst, -in.Quantity)
		if err != nil {
			return err
		}
		if err := s.repo.SetRemainingBags(txCtx, rst.ID, remaining); err != nil {
			return err
		}

		order := domain.PurchaseOrder{
			ID:           newID(),
			RestaurantID: rst.ID,
			Contact:      in.Contact,
			Location:     in.Location,
			Quantity:     in.Quantity,
			Status:       domain.OrderStatusActive,
			OrderedAt:    now,
		}
		if err := s.repo.CreateOrder(txCtx, order); err != nil {
			return err
		}

		result = PlaceOrderResult{Order: order, RemainingBags: remaining}
		return nil
	})
	if err != nil {
		return PlaceOrderResult{}, err
	}

	return result, nil
}

type CancelOrderInput struct {
	OrderID string
	Contact string
}

type CancelOrderResult struct {
	Order         domain.PurchaseOrder
	RemainingBags int
}

// CancelOrder moves an active order to cancelled exactly once and restores the
// order's quantity to the restaurant's ledger. The caller must present the
// contact the order was placed with.
func (s *OrderService) CancelOrder(ctx context.Context, in CancelOrderInput) (CancelOrderResult, error) {
	if in.OrderID == "" {
		return CancelOrderResult{}, domain.ErrInvalidID
	}
	if in.Contact == "" {
		return CancelOrderResult{}, domain.ErrContactRequired
	}

	now := s.clock.Now()
	var result CancelOrderResult

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		order, err := s.repo.GetOrderForUpdate(txCtx, in.OrderID)
		if err != nil {
			return err
		}
		if order.Status == domain.OrderStatusCancelled {
			return domain.ErrOrderAlreadyCancelled
		}
		if order.Contact != in.Contact {
			return domain.ErrOrderNotOwned
		}

		if err := s.repo.MarkOrderCancelled(txCtx, order.ID, now); err != nil {
			return err
		}

		rst, err := s.repo.GetRestaurantForUpdate(txCtx, order.RestaurantID)
		if err != nil {
			return err
		}
		remaining, err := adjustBags(rst, order.Quantity)
		if err != nil {
			return err
		}
		if err := s.repo.SetRemainingBags(txCtx, rst.ID, remaining); err != nil {
			return err
		}

		order.Status = domain.OrderStatusCancelled
		order.CancelledAt = &now
		result = CancelOrderResult{Order: order, RemainingBags: remaining}
		return nil
	})
	if err != nil {
		return CancelOrderResult{}, err
	}

	return result, nil
}
