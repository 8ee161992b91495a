package domain

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate reads a YYYY-MM-DD calendar date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrValidation, s)
	}
	return t, nil
}

// ParseOptionalDate is ParseDate with blank input mapped to nil.
func ParseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Day truncates t to its calendar date in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type StayWindow struct {
	CheckIn  time.Time `json:"checkInDate"`
	CheckOut time.Time `json:"checkOutDate"`
}

func (w StayWindow) Set() bool { return !w.CheckIn.IsZero() && !w.CheckOut.IsZero() }

// Valid requires both dates and a checkout strictly after check-in.
func (w StayWindow) Valid() bool { return w.Set() && w.CheckOut.After(w.CheckIn) }
