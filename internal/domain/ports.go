package domain

import (
	"context"
	"time"
)

// HotelAPI is the remote hotel back end that owns rooms and bookings.
type HotelAPI interface {
	GetCatalog(ctx context.Context) (Catalog, error)
	GetAvailableRooms(ctx context.Context, checkIn, checkOut time.Time) ([]CategoryAvailability, error)
	GetAllRooms(ctx context.Context) ([]CatalogRoom, error)
	Book(ctx context.Context, idempotencyKey string, req BookingRequest) (BookingResult, error)
	FindGuest(ctx context.Context, grcNo string) (GuestDetails, error)
}

// GSTRates are the default CGST/SGST percentages applied to new bookings.
type GSTRates struct {
	CGST float64 `json:"cgstRate"`
	SGST float64 `json:"sgstRate"`
}

// RateStore persists the desk's default GST rates.
type RateStore interface {
	LoadRates(ctx context.Context) (GSTRates, bool, error)
	SaveRates(ctx context.Context, r GSTRates) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// SubmissionJournal records booking attempts made from this desk.
type SubmissionJournal interface {
	Record(ctx context.Context, s Submission) error
	Recent(ctx context.Context, limit int) ([]Submission, error)
}
