// Package pricing holds the booking rate, discount, tax and advance-payment
// arithmetic. Everything here is a pure function of its inputs.
package pricing

import "time"

const day = 24 * time.Hour

// Nights counts billable nights between two dates, rounding partial days up.
// Missing dates or a checkout on/before check-in give 0.
func Nights(checkIn, checkOut time.Time) int {
	if checkIn.IsZero() || checkOut.IsZero() {
		return 0
	}
	return ceilDays(checkOut.Sub(checkIn))
}

func ceilDays(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	n := int(d / day)
	if d%day != 0 {
		n++
	}
	return n
}
