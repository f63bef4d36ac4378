package domain

import "errors"

var (
	ErrRestaurantNotFound     = errors.New("restaurant not found")
	ErrCustomerNotFound       = errors.New("customer not found")
	ErrOrderNotFound          = errors.New("purchase order not found")
	ErrOrderAlreadyCancelled  = errors.New("purchase order already cancelled")
	ErrOrderNotOwned          = errors.New("purchase order belongs to another customer")
	ErrInsufficientBags       = errors.New("not enough remaining bags at restaurant")
	ErrCapacityExceeded       = errors.New("remaining bags cannot exceed total bags")
	ErrInvalidQuantity        = errors.New("invalid quantity")
	ErrInvalidID              = errors.New("invalid id")
	ErrInvalidEmail           = errors.New("invalid email")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrContactRequired        = errors.New("contact is required")
	ErrLocationRequired       = errors.New("location is required")
	ErrRestaurantNameRequired = errors.New("restaurant name required")
	ErrCustomerNameRequired   = errors.New("customer name required")
	ErrInvalidCapacity        = errors.New("invalid bag capacity")
	ErrInvalidRating          = errors.New("invalid rating")
	ErrInvalidOpeningHours    = errors.New("invalid opening hours")
)
