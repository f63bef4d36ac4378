package domain

import "time"

type OrderStatus string

const (
	OrderStatusActive    OrderStatus = "active"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// PurchaseOrder represents a customer's claim on a number of surplus bags.
// Orders are never deleted; cancellation is the only transition out of active.
type PurchaseOrder struct {
	ID           string
	RestaurantID string
	// Contact is the customer's email or phone number, kept opaque.
	Contact     string
	Location    string
	Quantity    int
	Status      OrderStatus
	OrderedAt   time.Time
	CancelledAt *time.Time
}
