package app

import "github.com/cimillas/surplus-market/internal/domain"

// adjustBags applies a signed delta to a restaurant's remaining-bag count.
// Purchases pass a negative delta, cancellations and capacity releases a
// positive one. The result must stay within [0, NumOfBags]; on violation the
// caller gets an error and must not persist anything.
func adjustBags(rst domain.Restaurant, delta int) (int, error) {
	next := rst.RemainingBags + delta
	if next < 0 {
		return 0, domain.ErrInsufficientBags
	}
	if next > rst.NumOfBags {
		return 0, domain.ErrCapacityExceeded
	}
	return next, nil
}
