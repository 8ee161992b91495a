// internal/adapters/frontdesk/client.go
package frontdesk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"ashoka_frontdesk/internal/adapters/observability"
	"ashoka_frontdesk/internal/domain"
)

// Client talks to the hotel back end. It throttles itself but never retries:
// every failure is returned to the caller as-is.
type Client struct {
	base  string
	hc    *http.Client
	token string
	rl    *rate.Limiter
}

func New(base, token string, rps int, timeout time.Duration) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("hotel API base URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("hotel API base URL: %w", err)
	}
	if rps <= 0 {
		rps = 5
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		base:  strings.TrimRight(base, "/"),
		hc:    &http.Client{Timeout: timeout},
		token: token,
		rl:    rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ---- Public API ----

func (c *Client) GetCatalog(ctx context.Context) (domain.Catalog, error) {
	var out catalogDTO
	if err := c.do(ctx, http.MethodGet, "/categories-with-rooms", "categories-with-rooms", nil, nil, &out); err != nil {
		return domain.Catalog{}, err
	}
	cat := domain.Catalog{Rooms: mapRooms(out.Rooms)}
	names := make(map[string]string, len(out.Categories))
	for _, cg := range out.Categories {
		cat.Categories = append(cat.Categories, domain.Category{ID: cg.ID, Name: cg.Name})
		names[cg.ID] = cg.Name
	}
	for i := range cat.Rooms {
		if cat.Rooms[i].CategoryName == "" {
			cat.Rooms[i].CategoryName = names[cat.Rooms[i].CategoryID]
		}
	}
	return cat, nil
}

func (c *Client) GetAvailableRooms(ctx context.Context, checkIn, checkOut time.Time) ([]domain.CategoryAvailability, error) {
	q := url.Values{}
	q.Set("checkInDate", checkIn.Format(domain.DateLayout))
	q.Set("checkOutDate", checkOut.Format(domain.DateLayout))

	var out availableDTO
	if err := c.do(ctx, http.MethodGet, "/rooms/available?"+q.Encode(), "rooms-available", nil, nil, &out); err != nil {
		return nil, err
	}
	groups := make([]domain.CategoryAvailability, 0, len(out.AvailableRooms))
	for _, g := range out.AvailableRooms {
		rooms := mapRooms(g.Rooms)
		for i := range rooms {
			if rooms[i].CategoryID == "" {
				rooms[i].CategoryID = g.Category
			}
			if rooms[i].CategoryName == "" {
				rooms[i].CategoryName = g.CategoryName
			}
		}
		groups = append(groups, domain.CategoryAvailability{
			CategoryID:   g.Category,
			CategoryName: g.CategoryName,
			Rooms:        rooms,
		})
	}
	return groups, nil
}

func (c *Client) GetAllRooms(ctx context.Context) ([]domain.CatalogRoom, error) {
	var out allRoomsDTO
	if err := c.do(ctx, http.MethodGet, "/rooms/all", "rooms-all", nil, nil, &out); err != nil {
		return nil, err
	}
	return mapRooms(out), nil
}

func (c *Client) Book(ctx context.Context, idempotencyKey string, req domain.BookingRequest) (domain.BookingResult, error) {
	hdr := http.Header{}
	if idempotencyKey != "" {
		hdr.Set("Idempotency-Key", idempotencyKey)
	}
	var out domain.BookingResult
	if err := c.do(ctx, http.MethodPost, "/bookings/book", "bookings-book", hdr, req, &out); err != nil {
		return domain.BookingResult{}, err
	}
	return out, nil
}

func (c *Client) FindGuest(ctx context.Context, grcNo string) (domain.GuestDetails, error) {
	var out guestDTO
	path := "/bookings/fetch-by-grc/" + url.PathEscape(grcNo)
	if err := c.do(ctx, http.MethodGet, path, "bookings-fetch-by-grc", nil, nil, &out); err != nil {
		return domain.GuestDetails{}, err
	}
	if out.Booking != nil {
		return *out.Booking, nil
	}
	return out.GuestDetails, nil
}

// ---- Internals ----

var (
	ErrUnauthorized = errors.New("hotel api: unauthorized")
	ErrForbidden    = errors.New("hotel api: forbidden")
)

// do sends one request and decodes a JSON answer into out.
func (c *Client) do(ctx context.Context, method, path, endpoint string, hdr http.Header, body, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", endpoint, err)
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rdr)
	if err != nil {
		return err
	}
	for k, vs := range hdr {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "ashoka-frontdesk/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("hotel-api", endpoint, 0, time.Since(start))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %s: %v", domain.ErrUpstream, endpoint, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("hotel-api", endpoint, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNoContent:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil

	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode %s: %v", domain.ErrUpstream, endpoint, err)
		}
		return nil

	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", endpoint, domain.ErrNotFound)

	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized

	case resp.StatusCode == http.StatusForbidden:
		return ErrForbidden
	}

	// read a small error body for diagnostics
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := strings.TrimSpace(string(b))
	var e errorDTO
	if json.Unmarshal(b, &e) == nil && e.text() != "" {
		msg = e.text()
	}
	if resp.StatusCode < 500 && strings.Contains(strings.ToLower(msg), "not enough available rooms") {
		return fmt.Errorf("%w: %s", domain.ErrRoomsUnavailable, msg)
	}
	return fmt.Errorf("%w: %s: status %d: %s", domain.ErrUpstream, endpoint, resp.StatusCode, msg)
}
