package app_test

import (
	"context"
	"errors"
	"testing"

	"ashoka_frontdesk/internal/app"
	"ashoka_frontdesk/internal/domain"
	"ashoka_frontdesk/internal/pricing"
)

func newForm() *app.Form {
	return app.NewForm(app.Defaults{Rates: pricing.DefaultRates(), ExtraBedCharge: 500}, clock("2024-01-01"))
}

func queriedForm(t *testing.T) *app.Form {
	t.Helper()
	f := newForm()
	f.SetStay(date("2024-01-01"), date("2024-01-03"))
	if err := f.ApplyAvailability(availability()); err != nil {
		t.Fatalf("ApplyAvailability: %v", err)
	}
	return f
}

func TestForm_QueryBlockedUntilDatesValid(t *testing.T) {
	f := newForm()
	if f.CanCheckAvailability() {
		t.Fatalf("query must be blocked without dates")
	}
	f.SetStay(date("2024-01-03"), date("2024-01-03"))
	if f.CanCheckAvailability() {
		t.Fatalf("query must be blocked when checkout is not after check-in")
	}
	if err := f.ApplyAvailability(availability()); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if f.Phase() != app.PhaseNoQuery {
		t.Fatalf("phase = %v, want no_query", f.Phase())
	}
	f.SetStay(date("2024-01-01"), date("2024-01-03"))
	if !f.CanCheckAvailability() {
		t.Fatalf("query should be allowed")
	}
}

func TestForm_SelectCategoryWithZeroAvailability(t *testing.T) {
	f := queriedForm(t)
	if f.AvailableIn("suite") != 0 {
		t.Fatalf("suite should report 0")
	}
	if err := f.SelectCategory("suite"); !errors.Is(err, domain.ErrCategoryUnavailable) {
		t.Fatalf("expected category unavailable, got %v", err)
	}
	if f.Phase() != app.PhaseQueried || f.CategoryID() != "" {
		t.Fatalf("rejected selection must not change state: %v %q", f.Phase(), f.CategoryID())
	}
	if err := f.SelectCategory("deluxe"); err != nil {
		t.Fatalf("SelectCategory: %v", err)
	}
	if f.Phase() != app.PhaseCategorySelected {
		t.Fatalf("phase = %v", f.Phase())
	}
}

func TestForm_SelectCategoryBeforeQuery(t *testing.T) {
	f := newForm()
	if err := f.SelectCategory("deluxe"); !errors.Is(err, domain.ErrAvailabilityNotChecked) {
		t.Fatalf("expected not checked, got %v", err)
	}
}

func TestForm_ToggleRoomRecomputes(t *testing.T) {
	f := queriedForm(t)
	_ = f.SelectCategory("deluxe")

	on, err := f.ToggleRoom("101")
	if err != nil || !on {
		t.Fatalf("toggle on: %v %v", on, err)
	}
	if got := f.Pricing().RoomRateTotal; got != 2000 {
		t.Fatalf("RoomRateTotal = %v, want 2000", got)
	}
	_, _ = f.ToggleRoom("102")
	if got := f.Pricing().RoomRateTotal; got != 5000 {
		t.Fatalf("RoomRateTotal = %v, want 5000", got)
	}
	if got := f.Pricing().GrandTotal; got != 5250 {
		t.Fatalf("GrandTotal = %v, want 5250", got)
	}

	on, _ = f.ToggleRoom("101")
	if on || len(f.Selected()) != 1 || f.Pricing().RoomRateTotal != 3000 {
		t.Fatalf("toggle off failed: %+v", f.Selected())
	}
	if f.Phase() != app.PhaseCategorySelected {
		t.Fatalf("toggling must not change phase")
	}
	if _, err := f.ToggleRoom("999"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestForm_ChangingDatesResetsAvailability(t *testing.T) {
	f := queriedForm(t)
	_ = f.SelectCategory("deluxe")
	_, _ = f.ToggleRoom("101")

	f.SetStay(date("2024-01-01"), date("2024-01-04"))

	if f.HasCheckedAvailability() {
		t.Fatalf("date change must reset hasCheckedAvailability")
	}
	if len(f.Selected()) != 0 || f.CategoryID() != "" || f.AvailableIn("deluxe") != 0 {
		t.Fatalf("date change must clear selection and counts")
	}
	if f.Pricing().Nights != 3 || f.Pricing().GrandTotal != 0 {
		t.Fatalf("unexpected pricing after reset: %+v", f.Pricing())
	}
}

func TestForm_SameDatesKeepSelection(t *testing.T) {
	f := queriedForm(t)
	_ = f.SelectCategory("deluxe")
	_, _ = f.ToggleRoom("101")
	f.SetStay(date("2024-01-01"), date("2024-01-03"))
	if !f.HasCheckedAvailability() || len(f.Selected()) != 1 {
		t.Fatalf("re-setting identical dates must not reset")
	}
}

func TestForm_OverridesAndDiscount(t *testing.T) {
	f := queriedForm(t)
	_ = f.SelectCategory("deluxe")
	_, _ = f.ToggleRoom("101")

	if err := f.SetCustomPrice("101", "800"); err != nil {
		t.Fatalf("SetCustomPrice: %v", err)
	}
	if f.Pricing().RoomRateTotal != 1600 {
		t.Fatalf("custom price not applied: %+v", f.Pricing())
	}
	if err := f.SetCustomPrice("101", ""); err != nil {
		t.Fatalf("clear custom price: %v", err)
	}
	if f.Pricing().RoomRateTotal != 2000 {
		t.Fatalf("empty custom price must fall back to catalog: %+v", f.Pricing())
	}
	if err := f.SetCustomPrice("101", "lots"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// extra bed from today (2024-01-01) to checkout: 2 days x 500
	if err := f.SetExtraBed("101", true); err != nil {
		t.Fatalf("SetExtraBed: %v", err)
	}
	if f.Pricing().ExtraBedTotal != 1000 {
		t.Fatalf("ExtraBedTotal = %v, want 1000", f.Pricing().ExtraBedTotal)
	}
	start := date("2024-01-02")
	_ = f.SetExtraBedStart("101", &start)
	if f.Pricing().ExtraBedTotal != 500 {
		t.Fatalf("ExtraBedTotal = %v, want 500", f.Pricing().ExtraBedTotal)
	}

	f.SetDiscount(10, "")
	p := f.Pricing()
	if p.Subtotal != 2500 || p.DiscountAmount != 250 || p.TaxableAmount != 2250 {
		t.Fatalf("unexpected discount: %+v", p)
	}

	f.SetNonChargeable(true)
	if f.Pricing().GrandTotal != 0 || f.Pricing().RoomRateTotal != 0 {
		t.Fatalf("non-chargeable must zero pricing: %+v", f.Pricing())
	}
}

func TestForm_AdvancePayments(t *testing.T) {
	f := queriedForm(t)
	_ = f.SelectCategory("deluxe")
	_, _ = f.ToggleRoom("101") // 2000 + 5% = 2100

	i := f.AddAdvance()
	if p := f.AdvancePayments()[i]; !p.Date.Equal(date("2024-01-01")) || p.Amount != 0 {
		t.Fatalf("unexpected new payment: %+v", p)
	}
	_ = f.UpdateAdvance(i, func(p *domain.AdvancePayment) { p.Amount = 1000; p.Mode = domain.PaymentCash })
	if f.Pricing().BalanceDue != 1100 {
		t.Fatalf("BalanceDue = %v, want 1100", f.Pricing().BalanceDue)
	}
	j := f.AddAdvance()
	_ = f.UpdateAdvance(j, func(p *domain.AdvancePayment) { p.Amount = 5000 })
	if f.Pricing().BalanceDue != 0 {
		t.Fatalf("BalanceDue must not go negative: %v", f.Pricing().BalanceDue)
	}
	_ = f.RemoveAdvance(j)
	if f.Pricing().TotalAdvance != 1000 {
		t.Fatalf("TotalAdvance = %v", f.Pricing().TotalAdvance)
	}
}

func TestForm_ValidateDiscountNotes(t *testing.T) {
	f := queriedForm(t)
	_ = f.SelectCategory("deluxe")
	_, _ = f.ToggleRoom("101")
	f.SetGuest(guest())
	f.SetDiscount(10, "")

	if err := f.Validate(); !errors.Is(err, domain.ErrDiscountNotesRequired) {
		t.Fatalf("expected discount notes error, got %v", err)
	}
	f.SetNonChargeable(true)
	if err := f.Validate(); err != nil {
		t.Fatalf("non-chargeable booking needs no notes: %v", err)
	}
}

func TestValidateGuest(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(g *domain.GuestDetails)
		field string
	}{
		{"missing name", func(g *domain.GuestDetails) { g.Name = " " }, "name"},
		{"missing mobile", func(g *domain.GuestDetails) { g.MobileNo = "" }, "mobileNo"},
		{"short mobile", func(g *domain.GuestDetails) { g.MobileNo = "12345" }, "mobileNo"},
		{"bad email", func(g *domain.GuestDetails) { g.Email = "asha@" }, "email"},
		{"bad gstin", func(g *domain.GuestDetails) { g.GSTNumber = "XYZ" }, "companyGSTIN"},
		{"no adults", func(g *domain.GuestDetails) { g.Adults = 0 }, "noOfAdults"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := guest()
			c.edit(&g)
			var fe *domain.FieldError
			if err := app.ValidateGuest(g); !errors.As(err, &fe) || fe.Field != c.field {
				t.Fatalf("expected error on %s, got %v", c.field, err)
			}
		})
	}

	g := guest()
	g.MobileNo = "+919876543210"
	g.Email = "asha@example.in"
	g.GSTNumber = "27aapfu0939f1zv"
	if err := app.ValidateGuest(g); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestForm_SecondNetworkActionWhileBusy(t *testing.T) {
	ctx := context.Background()
	api := availableAPI()
	desk := newDesk(api, &fakeRates{}, &fakeJournal{})
	f := readyForm(t, desk)

	var submitErr, queryErr error
	var busyDuring bool
	api.duringAvailability = func() {
		busyDuring = f.Busy()
		_, submitErr = desk.Submit(ctx, f, "")
		queryErr = desk.CheckAvailability(ctx, f)
	}

	if err := desk.CheckAvailability(ctx, f); err != nil {
		t.Fatalf("CheckAvailability: %v", err)
	}
	if !busyDuring {
		t.Fatalf("form must report busy while a query is in flight")
	}
	if !errors.Is(submitErr, domain.ErrBusy) || !errors.Is(queryErr, domain.ErrBusy) {
		t.Fatalf("want ErrBusy for overlapping actions, got submit=%v query=%v", submitErr, queryErr)
	}
	if api.bookCalls != 0 {
		t.Fatalf("busy submit must not reach the booking endpoint")
	}
	if f.Busy() {
		t.Fatalf("busy flag must clear once the query finishes")
	}

	api.duringAvailability = nil
	if err := desk.CheckAvailability(ctx, f); err != nil {
		t.Fatalf("form must accept actions again: %v", err)
	}
}
