package app

import (
	"strings"

	"ashoka_frontdesk/internal/domain"
)

// toBookingRequest assembles the hotel API payload from a validated form.
// Extra beds without a start date are sent as starting today, which is how they were priced.
func toBookingRequest(f *Form) domain.BookingRequest {
	p := f.Pricing()
	pct, notes := f.Discount()
	today := domain.Day(f.now())

	g := f.guest
	g.Name = strings.TrimSpace(g.Name)
	g.MobileNo = strings.ReplaceAll(strings.TrimSpace(g.MobileNo), " ", "")
	g.Email = strings.TrimSpace(g.Email)
	g.GSTNumber = strings.ToUpper(strings.TrimSpace(g.GSTNumber))

	req := domain.BookingRequest{
		GuestDetails:    g,
		CategoryID:      f.categoryID,
		CheckInDate:     f.stay.CheckIn.Format(domain.DateLayout),
		CheckOutDate:    f.stay.CheckOut.Format(domain.DateLayout),
		Days:            p.Nights,
		NumberOfRooms:   len(f.selected),
		RoomRates:       make([]domain.RoomRate, 0, len(f.selected)),
		ExtraBedCharge:  f.extraBedCharge,
		ExtraBedRooms:   []string{},
		Rate:            p.GrandTotal,
		DiscountPercent: pct,
		NonChargeable:   f.nonChargeable,
		CGSTRate:        f.rates.CGST,
		SGSTRate:        f.rates.SGST,
		TaxableAmount:   p.TaxableAmount,
		CGSTAmount:      p.CGSTAmount,
		SGSTAmount:      p.SGSTAmount,
		TotalAmount:     p.GrandTotal,

		AdvancePayments:    f.ledger.Payments(),
		TotalAdvanceAmount: p.TotalAdvance,
		BalanceAmount:      p.BalanceDue,
	}
	if !f.nonChargeable && pct > 0 {
		req.DiscountNotes = strings.TrimSpace(notes)
	}

	for _, r := range f.selected {
		rr := domain.RoomRate{RoomNumber: r.RoomNumber, CustomRate: r.CustomPrice, ExtraBed: r.ExtraBed}
		if r.ExtraBed {
			start := today
			if r.ExtraBedStartDate != nil {
				start = *r.ExtraBedStartDate
			}
			rr.ExtraBedStartDate = &start
			req.ExtraBed = true
			req.ExtraBedRooms = append(req.ExtraBedRooms, r.RoomNumber)
		}
		req.RoomRates = append(req.RoomRates, rr)
	}
	return req
}

func roomNumbers(rs []domain.SelectedRoom) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.RoomNumber)
	}
	return out
}

// crossCheck keeps only the rooms that /rooms/all also reports as free to sell.
// Rooms missing from the full list are dropped.
func crossCheck(groups []domain.CategoryAvailability, all []domain.CatalogRoom) []domain.CategoryAvailability {
	byID := make(map[string]domain.CatalogRoom, len(all))
	for _, r := range all {
		byID[r.ID] = r
	}
	out := make([]domain.CategoryAvailability, 0, len(groups))
	for _, g := range groups {
		keep := domain.CategoryAvailability{CategoryID: g.CategoryID, CategoryName: g.CategoryName, Rooms: []domain.CatalogRoom{}}
		for _, r := range g.Rooms {
			truth, ok := byID[r.ID]
			if !ok || !truth.Bookable() {
				continue
			}
			if truth.CategoryID == "" {
				truth.CategoryID = g.CategoryID
			}
			if truth.CategoryName == "" {
				truth.CategoryName = g.CategoryName
			}
			if truth.RoomNumber == "" {
				truth.RoomNumber = r.RoomNumber
			}
			if truth.Price == 0 {
				truth.Price = r.Price
			}
			keep.Rooms = append(keep.Rooms, truth)
		}
		out = append(out, keep)
	}
	return out
}
