package app_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"ashoka_frontdesk/internal/domain"
)

// ---- fakes ----

type fakeAPI struct {
	mu sync.Mutex

	catalog      domain.Catalog
	available    []domain.CategoryAvailability
	all          []domain.CatalogRoom
	availableErr error
	allErr       error

	bookErr   error
	bookRes   domain.BookingResult
	bookCalls int
	lastBook  domain.BookingRequest
	lastKey   string

	catalogCalls int
	guest        domain.GuestDetails

	// duringAvailability runs while an availability query is in flight.
	duringAvailability func()
}

func (f *fakeAPI) GetCatalog(ctx context.Context) (domain.Catalog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.catalogCalls++
	return f.catalog, nil
}

func (f *fakeAPI) GetAvailableRooms(ctx context.Context, in, out time.Time) ([]domain.CategoryAvailability, error) {
	if f.duringAvailability != nil {
		f.duringAvailability()
	}
	return f.available, f.availableErr
}

func (f *fakeAPI) GetAllRooms(ctx context.Context) ([]domain.CatalogRoom, error) {
	return f.all, f.allErr
}

func (f *fakeAPI) Book(ctx context.Context, key string, req domain.BookingRequest) (domain.BookingResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookCalls++
	f.lastBook = req
	f.lastKey = key
	return f.bookRes, f.bookErr
}

func (f *fakeAPI) FindGuest(ctx context.Context, grcNo string) (domain.GuestDetails, error) {
	if f.guest.GRCNo != grcNo {
		return domain.GuestDetails{}, domain.ErrNotFound
	}
	return f.guest, nil
}

type fakeRates struct {
	r   *domain.GSTRates
	err error
}

func (f *fakeRates) LoadRates(ctx context.Context) (domain.GSTRates, bool, error) {
	if f.err != nil {
		return domain.GSTRates{}, false, f.err
	}
	if f.r == nil {
		return domain.GSTRates{}, false, nil
	}
	return *f.r, true, nil
}

func (f *fakeRates) SaveRates(ctx context.Context, r domain.GSTRates) error {
	f.r = &r
	return nil
}

type fakeJournal struct {
	rows []domain.Submission
}

func (j *fakeJournal) Record(ctx context.Context, s domain.Submission) error {
	j.rows = append(j.rows, s)
	return nil
}

func (j *fakeJournal) Recent(ctx context.Context, limit int) ([]domain.Submission, error) {
	if limit > len(j.rows) {
		limit = len(j.rows)
	}
	return j.rows[len(j.rows)-limit:], nil
}

type fakeCache struct {
	store map[string]any
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *domain.Catalog:
		*d = v.(domain.Catalog)
	default:
		return false, errors.New("unsupported type")
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

// ---- fixtures ----

func date(s string) time.Time {
	t, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func clock(s string) func() time.Time {
	t := date(s).Add(10 * time.Hour)
	return func() time.Time { return t }
}

func catalogRoom(id, cat string, price float64) domain.CatalogRoom {
	return domain.CatalogRoom{ID: id, CategoryID: cat, Price: price, Status: domain.RoomAvailable, RoomNumber: id}
}

// Deluxe has 101 and 102 free; Suite is sold out.
func availability() []domain.CategoryAvailability {
	return []domain.CategoryAvailability{
		{CategoryID: "deluxe", CategoryName: "Deluxe", Rooms: []domain.CatalogRoom{
			catalogRoom("101", "deluxe", 1000), catalogRoom("102", "deluxe", 1500),
		}},
		{CategoryID: "suite", CategoryName: "Suite", Rooms: []domain.CatalogRoom{}},
	}
}

func guest() domain.GuestDetails {
	return domain.GuestDetails{Name: "Asha Verma", MobileNo: "9876543210", Adults: 2}
}
