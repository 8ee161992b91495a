package app

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"ashoka_frontdesk/internal/domain"
	"ashoka_frontdesk/internal/pricing"
)

const maxOccupancyNights = 366

// NightAvailability is what the hotel API reports free for a single night.
type NightAvailability struct {
	Night      time.Time
	Categories []domain.CategoryAvailability
	Err        error
}

// Free counts bookable rooms across all categories.
func (n NightAvailability) Free() int {
	total := 0
	for _, c := range n.Categories {
		total += c.Available()
	}
	return total
}

// Occupancy checks every night in [from, to) with at most workers queries in
// flight. A failed night is reported in its entry and does not stop the others.
func (s *FrontDesk) Occupancy(ctx context.Context, from, to time.Time, workers int) ([]NightAvailability, error) {
	from, to = domain.Day(from), domain.Day(to)
	if !to.After(from) {
		return nil, domain.InvalidMsg("to", "end date must be after start date")
	}
	n := pricing.Nights(from, to)
	if n > maxOccupancyNights {
		return nil, domain.InvalidMsg("to", "range is limited to one year")
	}
	if workers <= 0 {
		workers = 1
	}

	out := make([]NightAvailability, n)
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		night := from.AddDate(0, 0, i)

		// acquire before launching the goroutine; release inside it
		err := ctx.Err()
		if err == nil {
			err = sem.Acquire(ctx, 1)
		}
		if err != nil {
			wg.Wait()
			return out[:i], err
		}

		wg.Add(1)
		go func(i int, night time.Time) {
			defer wg.Done()
			defer sem.Release(1)

			f := NewForm(s.defaults, s.now)
			f.SetStay(night, night.AddDate(0, 0, 1))
			err := s.CheckAvailability(ctx, f)
			out[i] = NightAvailability{Night: night, Categories: f.Categories(), Err: err}
		}(i, night)
	}

	wg.Wait()
	return out, nil
}
