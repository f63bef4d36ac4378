package domain

import "time"

// Customer is a registered user identified by email.
// Locations is the append-only set of places the customer has inquired from.
type Customer struct {
	ID           string
	Name         string
	Email        string
	MobileNumber string
	Locations    []string
	LastUsedAt   time.Time
	CreatedAt    time.Time
}
