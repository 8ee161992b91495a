package app

import (
	"fmt"
	"time"

	"ashoka_frontdesk/internal/domain"
	"ashoka_frontdesk/internal/pricing"
)

type Phase int

const (
	PhaseNoQuery Phase = iota
	PhaseQueried
	PhaseCategorySelected
)

func (p Phase) String() string {
	switch p {
	case PhaseQueried:
		return "queried"
	case PhaseCategorySelected:
		return "category_selected"
	}
	return "no_query"
}

// Defaults seed a new form.
type Defaults struct {
	Rates          domain.GSTRates
	ExtraBedCharge float64
}

// Form is the state of one booking being taken at the desk. Every mutating
// method ends with recompute, so Pricing always matches the inputs.
// A Form is owned by a single caller and is not safe for concurrent use.
type Form struct {
	now func() time.Time

	stay       domain.StayWindow
	phase      Phase
	categories []domain.CategoryAvailability
	categoryID string
	selected   []domain.SelectedRoom

	guest           domain.GuestDetails
	extraBedCharge  float64
	discountPercent float64
	discountNotes   string
	nonChargeable   bool
	rates           domain.GSTRates
	ledger          *pricing.Ledger

	pricing pricing.Breakdown
	busy    bool
}

func NewForm(d Defaults, now func() time.Time) *Form {
	if now == nil {
		now = time.Now
	}
	f := &Form{now: now}
	f.reset(d)
	return f
}

func (f *Form) reset(d Defaults) {
	*f = Form{
		now:            f.now,
		rates:          d.Rates,
		extraBedCharge: d.ExtraBedCharge,
		ledger:         pricing.NewLedger(),
		busy:           f.busy,
	}
	f.recompute()
}

// Reset blanks the form, keeping only the freshly loaded defaults.
func (f *Form) Reset(d Defaults) { f.reset(d) }

func (f *Form) recompute() {
	f.pricing = pricing.Compute(pricing.Input{
		Rooms:           f.selected,
		Stay:            f.stay,
		ExtraBedCharge:  f.extraBedCharge,
		DiscountPercent: f.discountPercent,
		NonChargeable:   f.nonChargeable,
		Rates:           f.rates,
		Now:             f.now(),
	}, f.ledger)
}

// ---- read side ----

func (f *Form) Stay() domain.StayWindow      { return f.stay }
func (f *Form) Phase() Phase                 { return f.phase }
func (f *Form) HasCheckedAvailability() bool { return f.phase != PhaseNoQuery }
func (f *Form) CategoryID() string           { return f.categoryID }
func (f *Form) Guest() domain.GuestDetails   { return f.guest }
func (f *Form) Rates() domain.GSTRates       { return f.rates }
func (f *Form) ExtraBedCharge() float64      { return f.extraBedCharge }
func (f *Form) NonChargeable() bool          { return f.nonChargeable }
func (f *Form) Pricing() pricing.Breakdown   { return f.pricing }
func (f *Form) Busy() bool                   { return f.busy }

func (f *Form) Discount() (percent float64, notes string) {
	return f.discountPercent, f.discountNotes
}

// CanCheckAvailability is true once both dates are set and checkout is after check-in.
func (f *Form) CanCheckAvailability() bool { return f.stay.Valid() }

func (f *Form) Categories() []domain.CategoryAvailability {
	return append([]domain.CategoryAvailability(nil), f.categories...)
}

func (f *Form) Selected() []domain.SelectedRoom {
	return append([]domain.SelectedRoom(nil), f.selected...)
}

func (f *Form) AdvancePayments() []domain.AdvancePayment { return f.ledger.Payments() }

// AvailableIn is the reported count for a category, 0 when unknown.
func (f *Form) AvailableIn(categoryID string) int {
	if c, ok := f.category(categoryID); ok {
		return c.Available()
	}
	return 0
}

func (f *Form) category(id string) (domain.CategoryAvailability, bool) {
	for _, c := range f.categories {
		if c.CategoryID == id {
			return c, true
		}
	}
	return domain.CategoryAvailability{}, false
}

// ---- availability ----

// SetStay changes the dates. Any change after a query drops the availability
// answer and the room selection; the desk has to query again.
func (f *Form) SetStay(checkIn, checkOut time.Time) {
	next := domain.StayWindow{CheckIn: checkIn, CheckOut: checkOut}
	changed := !next.CheckIn.Equal(f.stay.CheckIn) || !next.CheckOut.Equal(f.stay.CheckOut)
	if changed && f.phase != PhaseNoQuery {
		f.clearAvailability()
	}
	f.stay = next
	f.recompute()
}

// ApplyAvailability records the answer of an availability query for the current dates.
func (f *Form) ApplyAvailability(groups []domain.CategoryAvailability) error {
	if !f.CanCheckAvailability() {
		return domain.InvalidMsg("checkOutDate", "check-out date must be after check-in date")
	}
	f.clearAvailability()
	f.categories = append([]domain.CategoryAvailability(nil), groups...)
	f.phase = PhaseQueried
	f.recompute()
	return nil
}

// ResetAvailability empties the availability answer after a failed query.
func (f *Form) ResetAvailability() {
	f.clearAvailability()
	f.recompute()
}

// ForceRequery is used when the server rejects the selected rooms.
func (f *Form) ForceRequery() {
	f.clearAvailability()
	f.recompute()
}

func (f *Form) clearAvailability() {
	f.phase = PhaseNoQuery
	f.categories = nil
	f.categoryID = ""
	f.selected = nil
}

func (f *Form) SelectCategory(id string) error {
	if f.phase == PhaseNoQuery {
		return domain.ErrAvailabilityNotChecked
	}
	c, ok := f.category(id)
	if !ok || c.Available() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrCategoryUnavailable, id)
	}
	if id != f.categoryID {
		f.selected = nil
	}
	f.categoryID = id
	f.phase = PhaseCategorySelected
	f.recompute()
	return nil
}

// ToggleRoom adds the room to the selection, or removes it when already selected.
// It reports whether the room is selected afterwards.
func (f *Form) ToggleRoom(roomID string) (bool, error) {
	if f.phase != PhaseCategorySelected {
		return false, domain.InvalidMsg("categoryId", "select a room category first")
	}
	if i := f.selectedIndex(roomID); i >= 0 {
		f.selected = append(f.selected[:i], f.selected[i+1:]...)
		f.recompute()
		return false, nil
	}
	c, _ := f.category(f.categoryID)
	for _, r := range c.Rooms {
		if r.ID != roomID {
			continue
		}
		if !r.Bookable() {
			return false, fmt.Errorf("%w: room %s", domain.ErrRoomsUnavailable, r.RoomNumber)
		}
		f.selected = append(f.selected, domain.Select(r))
		f.recompute()
		return true, nil
	}
	return false, fmt.Errorf("room %s: %w", roomID, domain.ErrNotFound)
}

func (f *Form) selectedIndex(roomID string) int {
	for i, r := range f.selected {
		if r.ID == roomID {
			return i
		}
	}
	return -1
}

func (f *Form) editRoom(roomID string, fn func(r *domain.SelectedRoom)) error {
	i := f.selectedIndex(roomID)
	if i < 0 {
		return fmt.Errorf("selected room %s: %w", roomID, domain.ErrNotFound)
	}
	fn(&f.selected[i])
	f.recompute()
	return nil
}

// ---- per-room overrides ----

// SetCustomPrice takes the rate as typed; blank clears the override.
func (f *Form) SetCustomPrice(roomID, text string) error {
	cp, err := domain.ParseCustomPrice(text)
	if err != nil {
		return err
	}
	return f.editRoom(roomID, func(r *domain.SelectedRoom) { r.CustomPrice = cp })
}

func (f *Form) SetExtraBed(roomID string, on bool) error {
	return f.editRoom(roomID, func(r *domain.SelectedRoom) {
		r.ExtraBed = on
		if !on {
			r.ExtraBedStartDate = nil
		}
	})
}

func (f *Form) SetExtraBedStart(roomID string, start *time.Time) error {
	return f.editRoom(roomID, func(r *domain.SelectedRoom) {
		if start == nil {
			r.ExtraBedStartDate = nil
			return
		}
		d := domain.Day(*start)
		r.ExtraBedStartDate = &d
	})
}

// ---- booking-level inputs ----

func (f *Form) SetGuest(g domain.GuestDetails) { f.guest = g }

func (f *Form) SetExtraBedCharge(perDay float64) error {
	if perDay < 0 {
		return domain.InvalidMsg("extraBedCharge", "extra bed charge must not be negative")
	}
	f.extraBedCharge = perDay
	f.recompute()
	return nil
}

// SetDiscount accepts any value; the policy is checked by Validate.
func (f *Form) SetDiscount(percent float64, notes string) {
	f.discountPercent = percent
	f.discountNotes = notes
	f.recompute()
}

func (f *Form) SetNonChargeable(on bool) {
	f.nonChargeable = on
	f.recompute()
}

func (f *Form) SetRates(r domain.GSTRates) {
	f.rates = r
	f.recompute()
}

// ---- advance payments ----

func (f *Form) AddAdvance() int {
	i := f.ledger.Add(f.now())
	f.recompute()
	return i
}

func (f *Form) UpdateAdvance(i int, fn func(p *domain.AdvancePayment)) error {
	if err := f.ledger.Update(i, fn); err != nil {
		return err
	}
	f.recompute()
	return nil
}

func (f *Form) RemoveAdvance(i int) error {
	if err := f.ledger.Remove(i); err != nil {
		return err
	}
	f.recompute()
	return nil
}

// ---- network guard ----

func (f *Form) begin() error {
	if f.busy {
		return domain.ErrBusy
	}
	f.busy = true
	return nil
}

func (f *Form) end() { f.busy = false }
