package pricing

import (
	"time"

	"ashoka_frontdesk/internal/domain"
)

// ExtraBedDays is the number of chargeable extra-bed days for one room.
// The bed runs from its start date (today when unset) to checkout.
func ExtraBedDays(r domain.SelectedRoom, checkOut, now time.Time) int {
	if !r.ExtraBed || checkOut.IsZero() {
		return 0
	}
	start := domain.Day(now)
	if r.ExtraBedStartDate != nil && !r.ExtraBedStartDate.IsZero() {
		start = *r.ExtraBedStartDate
	}
	if !start.Before(checkOut) {
		return 0
	}
	return ceilDays(checkOut.Sub(start))
}

// ExtraBedTotal charges perDay for every extra-bed day across the rooms.
func ExtraBedTotal(rooms []domain.SelectedRoom, perDay float64, checkOut, now time.Time) float64 {
	var total float64
	for _, r := range rooms {
		if days := ExtraBedDays(r, checkOut, now); days > 0 {
			total += perDay * float64(days)
		}
	}
	return total
}
