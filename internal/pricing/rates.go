package pricing

import "ashoka_frontdesk/internal/domain"

// EffectiveRate is the custom override when one is set, else the catalog price.
func EffectiveRate(r domain.SelectedRoom) float64 {
	if r.CustomPrice != nil {
		return *r.CustomPrice
	}
	return r.Price
}

// RoomRateTotal sums the nightly rates of all rooms and multiplies by nights.
func RoomRateTotal(rooms []domain.SelectedRoom, nights int) float64 {
	if nights <= 0 {
		return 0
	}
	var perNight float64
	for _, r := range rooms {
		perNight += EffectiveRate(r)
	}
	return perNight * float64(nights)
}
