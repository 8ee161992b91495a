package app

import (
	"context"
	"time"

	"ashoka_frontdesk/internal/domain"
)

const catalogKey = "catalog:categories-with-rooms"

// CatalogService serves the room catalog through a read-through cache.
type CatalogService struct {
	api      domain.HotelAPI
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewCatalogService(api domain.HotelAPI, c domain.Cache, ttl time.Duration) *CatalogService {
	return &CatalogService{api: api, cache: c, cacheTTL: ttl}
}

func (s *CatalogService) Catalog(ctx context.Context) (domain.Catalog, error) {
	var cat domain.Catalog
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, catalogKey, &cat); ok {
			return deepCopyCatalog(cat), nil
		}
	}
	cat, err := s.api.GetCatalog(ctx)
	if err != nil {
		return domain.Catalog{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, catalogKey, cat, int(s.cacheTTL.Seconds()))
	}
	return deepCopyCatalog(cat), nil
}

// Invalidate drops the cached catalog, e.g. after a booking changes room status.
func (s *CatalogService) Invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, catalogKey)
	}
}

// RoomsIn lists catalog rooms of one category.
func (s *CatalogService) RoomsIn(ctx context.Context, categoryID string) ([]domain.CatalogRoom, error) {
	cat, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.CatalogRoom{}
	for _, r := range cat.Rooms {
		if r.CategoryID == categoryID {
			out = append(out, r)
		}
	}
	return out, nil
}

// copy slices to avoid aliasing what was handed to the cache
func deepCopyCatalog(in domain.Catalog) domain.Catalog {
	return domain.Catalog{
		Categories: append([]domain.Category(nil), in.Categories...),
		Rooms:      append([]domain.CatalogRoom(nil), in.Rooms...),
	}
}
