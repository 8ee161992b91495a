package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"ashoka_frontdesk/internal/domain"
)

// FrontDesk runs the network side of a booking: availability queries,
// submission, and the default-rate store.
type FrontDesk struct {
	api      domain.HotelAPI
	rates    domain.RateStore
	journal  domain.SubmissionJournal
	defaults Defaults
	now      func() time.Time
}

func NewFrontDesk(api domain.HotelAPI, rates domain.RateStore, journal domain.SubmissionJournal, d Defaults) *FrontDesk {
	return &FrontDesk{api: api, rates: rates, journal: journal, defaults: d, now: time.Now}
}

// WithClock replaces the wall clock; used by tests.
func (s *FrontDesk) WithClock(now func() time.Time) *FrontDesk {
	s.now = now
	return s
}

// DefaultRates reads the stored GST defaults, falling back to the configured ones.
func (s *FrontDesk) DefaultRates(ctx context.Context) domain.GSTRates {
	if s.rates == nil {
		return s.defaults.Rates
	}
	r, ok, err := s.rates.LoadRates(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("load default GST rates failed; using configured defaults")
		return s.defaults.Rates
	}
	if !ok {
		return s.defaults.Rates
	}
	return r
}

func (s *FrontDesk) SaveDefaultRates(ctx context.Context, r domain.GSTRates) error {
	if r.CGST < 0 || r.CGST > 50 {
		return domain.InvalidMsg("cgstRate", "CGST rate must be between 0 and 50")
	}
	if r.SGST < 0 || r.SGST > 50 {
		return domain.InvalidMsg("sgstRate", "SGST rate must be between 0 and 50")
	}
	if s.rates == nil {
		return errors.New("no rate store configured")
	}
	return s.rates.SaveRates(ctx, r)
}

func (s *FrontDesk) formDefaults(ctx context.Context) Defaults {
	d := s.defaults
	d.Rates = s.DefaultRates(ctx)
	return d
}

// NewForm starts a booking with the current default rates.
func (s *FrontDesk) NewForm(ctx context.Context) *Form {
	return NewForm(s.formDefaults(ctx), s.now)
}

func (s *FrontDesk) ResetForm(ctx context.Context, f *Form) {
	f.Reset(s.formDefaults(ctx))
}

// CheckAvailability asks the hotel API which rooms are free for the form's dates.
// Both lookups must succeed; on any failure the form is left with no availability.
func (s *FrontDesk) CheckAvailability(ctx context.Context, f *Form) error {
	if !f.CanCheckAvailability() {
		return domain.InvalidMsg("checkOutDate", "check-out date must be after check-in date")
	}
	if err := f.begin(); err != nil {
		return err
	}
	defer f.end()

	stay := f.Stay()
	var (
		groups []domain.CategoryAvailability
		all    []domain.CatalogRoom
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		groups, err = s.api.GetAvailableRooms(gctx, stay.CheckIn, stay.CheckOut)
		return err
	})
	g.Go(func() error {
		var err error
		all, err = s.api.GetAllRooms(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		f.ResetAvailability()
		return fmt.Errorf("check availability: %w", err)
	}
	return f.ApplyAvailability(crossCheck(groups, all))
}

// Submit validates the form and books it. Validation failures never reach the
// hotel API. A room conflict sends the form back to the availability step;
// any other failure leaves it as it was. A successful booking resets the form.
func (s *FrontDesk) Submit(ctx context.Context, f *Form, idempotencyKey string) (domain.BookingResult, error) {
	if err := f.begin(); err != nil {
		return domain.BookingResult{}, err
	}
	defer f.end()

	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}
	sub := domain.Submission{
		ID:             uuid.NewString(),
		IdempotencyKey: idempotencyKey,
		GuestName:      f.guest.Name,
		CheckIn:        f.stay.CheckIn,
		CheckOut:       f.stay.CheckOut,
		RoomNumbers:    roomNumbers(f.selected),
		GrandTotal:     f.pricing.GrandTotal,
		TotalAdvance:   f.pricing.TotalAdvance,
		BalanceDue:     f.pricing.BalanceDue,
		CreatedAt:      s.now().UTC(),
	}

	if err := f.Validate(); err != nil {
		s.record(ctx, sub, domain.BookingResult{}, err)
		return domain.BookingResult{}, err
	}

	res, err := s.api.Book(ctx, idempotencyKey, toBookingRequest(f))
	s.record(ctx, sub, res, err)
	if err != nil {
		if errors.Is(err, domain.ErrRoomsUnavailable) {
			f.ForceRequery()
		}
		return domain.BookingResult{}, err
	}

	log.Info().
		Strs("invoices", res.InvoiceNumbers()).
		Strs("rooms", sub.RoomNumbers).
		Float64("total", sub.GrandTotal).
		Msg("booking created")
	s.ResetForm(ctx, f)
	return res, nil
}

func (s *FrontDesk) record(ctx context.Context, sub domain.Submission, res domain.BookingResult, err error) {
	sub.Outcome = OutcomeOf(err)
	sub.InvoiceNumbers = res.InvoiceNumbers()
	if err != nil {
		sub.Error = err.Error()
	}
	if s.journal == nil {
		return
	}
	if jerr := s.journal.Record(ctx, sub); jerr != nil {
		log.Warn().Err(jerr).Str("submission", sub.ID).Msg("journal write failed")
	}
}

// OutcomeOf classifies the result of a submission.
func OutcomeOf(err error) domain.Outcome {
	switch {
	case err == nil:
		return domain.OutcomeBooked
	case errors.Is(err, domain.ErrValidation):
		return domain.OutcomeInvalid
	case errors.Is(err, domain.ErrRoomsUnavailable):
		return domain.OutcomeConflict
	}
	return domain.OutcomeFailed
}

func (s *FrontDesk) FindGuest(ctx context.Context, grcNo string) (domain.GuestDetails, error) {
	if grcNo == "" {
		return domain.GuestDetails{}, domain.InvalidMsg("grcNo", "GRC number is required")
	}
	return s.api.FindGuest(ctx, grcNo)
}

func (s *FrontDesk) RecentSubmissions(ctx context.Context, limit int) ([]domain.Submission, error) {
	if s.journal == nil {
		return []domain.Submission{}, nil
	}
	return s.journal.Recent(ctx, limit)
}
