package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomReserved    RoomStatus = "reserved"
	RoomBooked      RoomStatus = "booked"
	RoomMaintenance RoomStatus = "maintenance"
)

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CatalogRoom is the server-owned view of a room. Price is the nightly catalog rate.
type CatalogRoom struct {
	ID           string     `json:"id"`
	CategoryID   string     `json:"categoryId"`
	CategoryName string     `json:"categoryName,omitempty"`
	Price        float64    `json:"price"`
	Status       RoomStatus `json:"status"`
	IsReserved   bool       `json:"isReserved"`
	RoomNumber   string     `json:"roomNumber"`
}

// Bookable reports whether the server marks the room free to sell.
func (r CatalogRoom) Bookable() bool {
	return r.Status == RoomAvailable && !r.IsReserved
}

// SelectedRoom is a catalog room picked for the current booking plus the
// overrides the front desk can apply to it.
type SelectedRoom struct {
	CatalogRoom
	CustomPrice       *float64   `json:"customPrice,omitempty"`
	ExtraBed          bool       `json:"extraBed"`
	ExtraBedStartDate *time.Time `json:"extraBedStartDate,omitempty"`
}

func Select(r CatalogRoom) SelectedRoom { return SelectedRoom{CatalogRoom: r} }

type Catalog struct {
	Categories []Category    `json:"categories"`
	Rooms      []CatalogRoom `json:"rooms"`
}

// CategoryAvailability is one category of an availability answer.
type CategoryAvailability struct {
	CategoryID   string        `json:"categoryId"`
	CategoryName string        `json:"categoryName"`
	Rooms        []CatalogRoom `json:"rooms"`
}

func (c CategoryAvailability) Available() int { return len(c.Rooms) }

// ParseCustomPrice turns a rate typed at the desk into an override.
// Blank input means "no override".
func ParseCustomPrice(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: custom rate %q is not a number", ErrValidation, s)
	}
	if f < 0 {
		return nil, fmt.Errorf("%w: custom rate must not be negative", ErrValidation)
	}
	return &f, nil
}
