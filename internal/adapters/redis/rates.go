package redisad

import (
	"context"

	"ashoka_frontdesk/internal/domain"
)

// RatesKey is where the desk keeps its default CGST/SGST pair.
const RatesKey = "defaultGstRates"

// RateStore keeps the default GST rates in Redis as {"cgstRate":..,"sgstRate":..}.
type RateStore struct{ cache *Cache }

func NewRateStore(c *Cache) *RateStore { return &RateStore{cache: c} }

func (s *RateStore) LoadRates(ctx context.Context) (domain.GSTRates, bool, error) {
	var r domain.GSTRates
	ok, err := s.cache.Get(ctx, RatesKey, &r)
	if err != nil || !ok {
		return domain.GSTRates{}, false, err
	}
	return r, true, nil
}

func (s *RateStore) SaveRates(ctx context.Context, r domain.GSTRates) error {
	return s.cache.Set(ctx, RatesKey, r, 0)
}
