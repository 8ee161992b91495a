package pricing

import (
	"math"
	"time"

	"ashoka_frontdesk/internal/domain"
)

// Input is everything the price of a booking depends on.
type Input struct {
	Rooms           []domain.SelectedRoom
	Stay            domain.StayWindow
	ExtraBedCharge  float64
	DiscountPercent float64
	NonChargeable   bool
	Rates           domain.GSTRates
	Now             time.Time
}

// Breakdown is the derived pricing state of a booking.
type Breakdown struct {
	Nights         int     `json:"days"`
	RoomRateTotal  float64 `json:"roomRateTotal"`
	ExtraBedTotal  float64 `json:"extraBedTotal"`
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discountAmount"`
	TaxableAmount  float64 `json:"taxableAmount"`
	CGSTAmount     float64 `json:"cgstAmount"`
	SGSTAmount     float64 `json:"sgstAmount"`
	GrandTotal     float64 `json:"grandTotal"`
	TotalAdvance   float64 `json:"totalAdvance"`
	BalanceDue     float64 `json:"balanceDue"`
}

// Compute runs nights, room rates, extra beds, discount and tax in order.
// Non-chargeable bookings price at zero. Each money field is rounded once, to paise.
func Compute(in Input, ledger *Ledger) Breakdown {
	b := Breakdown{Nights: Nights(in.Stay.CheckIn, in.Stay.CheckOut)}
	if !in.NonChargeable {
		b.RoomRateTotal = RoomRateTotal(in.Rooms, b.Nights)
		b.ExtraBedTotal = ExtraBedTotal(in.Rooms, in.ExtraBedCharge, in.Stay.CheckOut, in.Now)
		b.Subtotal = b.RoomRateTotal + b.ExtraBedTotal
		b.DiscountAmount, b.TaxableAmount = ApplyDiscount(b.Subtotal, in.DiscountPercent)
		b.CGSTAmount, b.SGSTAmount, b.GrandTotal = ApplyTax(b.TaxableAmount, in.Rates)
	}
	if ledger != nil {
		b.TotalAdvance = ledger.Total()
		b.BalanceDue = ledger.BalanceDue(b.GrandTotal)
	}
	return b.rounded()
}

func (b Breakdown) rounded() Breakdown {
	for _, f := range []*float64{
		&b.RoomRateTotal, &b.ExtraBedTotal, &b.Subtotal, &b.DiscountAmount, &b.TaxableAmount,
		&b.CGSTAmount, &b.SGSTAmount, &b.GrandTotal, &b.TotalAdvance, &b.BalanceDue,
	} {
		*f = Round2(*f)
	}
	return b
}

func Round2(f float64) float64 { return math.Round(f*100) / 100 }
