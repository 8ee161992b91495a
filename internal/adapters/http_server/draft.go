package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ashoka_frontdesk/internal/adapters/observability"
	"ashoka_frontdesk/internal/app"
	"ashoka_frontdesk/internal/domain"
)

// priceText keeps a custom rate as typed. Both "1200" and 1200 are accepted;
// null and "" mean no override.
type priceText string

func (p *priceText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*p = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = priceText(s)
	default:
		*p = priceText(b)
	}
	return nil
}

type draftRoom struct {
	ID                string    `json:"id"`
	CustomPrice       priceText `json:"customPrice"`
	ExtraBed          bool      `json:"extraBed"`
	ExtraBedStartDate string    `json:"extraBedStartDate"`
}

type draftAdvance struct {
	Amount    float64            `json:"amount"`
	Mode      domain.PaymentMode `json:"paymentMode"`
	Date      string             `json:"paymentDate"`
	Reference string             `json:"reference"`
	Notes     string             `json:"notes"`
}

// draft is a whole booking form sent in one request.
type draft struct {
	CheckInDate     string              `json:"checkInDate"`
	CheckOutDate    string              `json:"checkOutDate"`
	CategoryID      string              `json:"categoryId"`
	Rooms           []draftRoom         `json:"rooms"`
	Guest           domain.GuestDetails `json:"guest"`
	ExtraBedCharge  *float64            `json:"extraBedCharge"`
	DiscountPercent float64             `json:"discountPercent"`
	DiscountNotes   string              `json:"discountNotes"`
	NonChargeable   bool                `json:"nonChargeable"`
	CGSTRate        *float64            `json:"cgstRate"`
	SGSTRate        *float64            `json:"sgstRate"`
	AdvancePayments []draftAdvance      `json:"advancePayments"`
}

// buildForm replays d onto a fresh form in the order the desk fills it in:
// dates, availability, category, rooms, per-room overrides, then the rest.
func buildForm(ctx context.Context, fd *app.FrontDesk, d draft) (*app.Form, error) {
	f := fd.NewForm(ctx)

	in, err := domain.ParseDate(d.CheckInDate)
	if err != nil {
		return f, domain.Invalid("checkInDate", err)
	}
	out, err := domain.ParseDate(d.CheckOutDate)
	if err != nil {
		return f, domain.Invalid("checkOutDate", err)
	}
	f.SetStay(in, out)

	if d.CGSTRate != nil || d.SGSTRate != nil {
		r := f.Rates()
		if d.CGSTRate != nil {
			r.CGST = *d.CGSTRate
		}
		if d.SGSTRate != nil {
			r.SGST = *d.SGSTRate
		}
		f.SetRates(r)
	}
	if d.ExtraBedCharge != nil {
		if err := f.SetExtraBedCharge(*d.ExtraBedCharge); err != nil {
			return f, err
		}
	}

	err = fd.CheckAvailability(ctx, f)
	observeAvailability(err)
	if err != nil {
		return f, err
	}

	if d.CategoryID != "" {
		if err := f.SelectCategory(d.CategoryID); err != nil {
			return f, err
		}
	}
	for _, dr := range d.Rooms {
		if err := applyRoom(f, dr); err != nil {
			return f, err
		}
	}

	f.SetGuest(d.Guest)
	f.SetDiscount(d.DiscountPercent, d.DiscountNotes)
	f.SetNonChargeable(d.NonChargeable)

	for _, a := range d.AdvancePayments {
		if err := applyAdvance(f, a); err != nil {
			return f, err
		}
	}
	return f, nil
}

func applyRoom(f *app.Form, dr draftRoom) error {
	on, err := f.ToggleRoom(dr.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: room %s is not free for these dates", domain.ErrRoomsUnavailable, dr.ID)
	}
	if err != nil {
		return err
	}
	if !on {
		return domain.InvalidMsg("rooms", "room "+dr.ID+" is listed twice")
	}
	if err := f.SetCustomPrice(dr.ID, string(dr.CustomPrice)); err != nil {
		return domain.Invalid("rooms.customPrice", err)
	}
	if !dr.ExtraBed {
		return nil
	}
	if err := f.SetExtraBed(dr.ID, true); err != nil {
		return err
	}
	start, err := domain.ParseOptionalDate(dr.ExtraBedStartDate)
	if err != nil {
		return domain.Invalid("rooms.extraBedStartDate", err)
	}
	return f.SetExtraBedStart(dr.ID, start)
}

func applyAdvance(f *app.Form, a draftAdvance) error {
	date, err := domain.ParseOptionalDate(a.Date)
	if err != nil {
		return domain.Invalid("advancePayments.paymentDate", err)
	}
	i := f.AddAdvance()
	return f.UpdateAdvance(i, func(p *domain.AdvancePayment) {
		p.Amount = a.Amount
		p.Mode = a.Mode
		p.Reference = a.Reference
		p.Notes = a.Notes
		if date != nil {
			p.Date = *date
		}
	})
}

func observeAvailability(err error) {
	switch {
	case err == nil:
		observability.ObserveAvailability("ok")
	case errors.Is(err, domain.ErrValidation):
		observability.ObserveAvailability("invalid")
	default:
		observability.ObserveAvailability("failed")
	}
}
