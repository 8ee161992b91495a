package app_test

import (
	"context"
	"testing"
	"time"

	"ashoka_frontdesk/internal/app"
	"ashoka_frontdesk/internal/domain"
)

func TestCatalog_CacheMissThenHit(t *testing.T) {
	api := &fakeAPI{catalog: domain.Catalog{
		Categories: []domain.Category{{ID: "deluxe", Name: "Deluxe"}},
		Rooms:      []domain.CatalogRoom{catalogRoom("101", "deluxe", 1000), catalogRoom("201", "suite", 3000)},
	}}
	cache := &fakeCache{}
	s := app.NewCatalogService(api, cache, 10*time.Minute)

	// Miss (first time, populates cache)
	cat, err := s.Catalog(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(cat.Rooms) != 2 || api.catalogCalls != 1 {
		t.Fatalf("unexpected catalog: %+v calls=%d", cat, api.catalogCalls)
	}

	// Mutating the returned value must not leak into the cache
	cat.Rooms[0].Price = 1

	rooms, err := s.RoomsIn(context.Background(), "deluxe")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if api.catalogCalls != 1 {
		t.Fatalf("expected cache hit, api called %d times", api.catalogCalls)
	}
	if len(rooms) != 1 || rooms[0].Price != 1000 {
		t.Fatalf("unexpected rooms: %+v", rooms)
	}

	s.Invalidate(context.Background())
	_, _ = s.Catalog(context.Background())
	if api.catalogCalls != 2 {
		t.Fatalf("expected refetch after invalidate, got %d calls", api.catalogCalls)
	}
}
