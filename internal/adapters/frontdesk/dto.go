package frontdesk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"ashoka_frontdesk/internal/domain"
)

// flexFloat accepts JSON numbers and numeric strings; commas are digit grouping.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("price %q is not a finite number", s)
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

// categoryRef is either a bare id or a populated {_id, name} object.
type categoryRef struct {
	ID   string
	Name string
}

func (c *categoryRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		return json.Unmarshal(b, &c.ID)
	}
	var obj struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	c.ID, c.Name = obj.ID, obj.Name
	return nil
}

type roomDTO struct {
	ID         string      `json:"_id"`
	Price      flexFloat   `json:"price"`
	Status     string      `json:"status"`
	IsReserved bool        `json:"is_reserved"`
	RoomNumber string      `json:"room_number"`
	Title      string      `json:"title"`
	Category   categoryRef `json:"category"`
}

func (r roomDTO) toDomain() domain.CatalogRoom {
	num := r.RoomNumber
	if num == "" {
		num = r.Title
	}
	return domain.CatalogRoom{
		ID:           r.ID,
		CategoryID:   r.Category.ID,
		CategoryName: r.Category.Name,
		Price:        float64(r.Price),
		Status:       domain.RoomStatus(strings.ToLower(strings.TrimSpace(r.Status))),
		IsReserved:   r.IsReserved,
		RoomNumber:   num,
	}
}

func mapRooms(in []roomDTO) []domain.CatalogRoom {
	out := make([]domain.CatalogRoom, 0, len(in))
	for _, r := range in {
		out = append(out, r.toDomain())
	}
	return out
}

type categoryDTO struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type catalogDTO struct {
	Categories []categoryDTO `json:"categories"`
	Rooms      []roomDTO     `json:"rooms"`
}

type availableGroupDTO struct {
	Category     string    `json:"category"`
	CategoryName string    `json:"categoryName"`
	Rooms        []roomDTO `json:"rooms"`
}

type availableDTO struct {
	AvailableRooms []availableGroupDTO `json:"availableRooms"`
}

// allRoomsDTO accepts a bare array or {rooms: [...]}.
type allRoomsDTO []roomDTO

func (a *allRoomsDTO) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var wrapped struct {
			Rooms []roomDTO `json:"rooms"`
		}
		if err := json.Unmarshal(b, &wrapped); err != nil {
			return err
		}
		*a = wrapped.Rooms
		return nil
	}
	var list []roomDTO
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*a = list
	return nil
}

type guestDTO struct {
	Booking *domain.GuestDetails `json:"booking"`
	domain.GuestDetails
}

type errorDTO struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e errorDTO) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}
