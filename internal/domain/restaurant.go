package domain

import "time"

// Restaurant offers surplus-food bags in one or more serving locations.
// RemainingBags never leaves the [0, NumOfBags] range.
type Restaurant struct {
	ID            string
	Name          string
	Locations     []string
	NumOfBags     int
	RemainingBags int
	OverallRating float64
	// OpensAt and ClosesAt are local times of day in "15:04" form.
	// ClosesAt earlier than OpensAt means the restaurant closes after midnight.
	OpensAt   string
	ClosesAt  string
	CreatedAt time.Time
}
