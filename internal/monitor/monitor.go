package monitor

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cardoza1991/Room-Reservation-App/config"
	"github.com/cardoza1991/Room-Reservation-App/internal/notification"
	"github.com/cardoza1991/Room-Reservation-App/internal/roomcache"
	"github.com/cardoza1991/Room-Reservation-App/internal/timefmt"
)

// Service drives the periodic occupancy recomputation. Each tick it takes
// the current wall clock at minute resolution, re-evaluates every cached
// room against its reservation slots, and hands rooms that just opened up
// to the notification pool.
type Service struct {
	cfg   *config.Config
	cache *roomcache.Cache
	pool  *notification.WorkerPool
	loc   *time.Location
}

// NewService creates the occupancy monitor. pool may be nil when push is
// not configured.
func NewService(cfg *config.Config, cache *roomcache.Cache, pool *notification.WorkerPool) (*Service, error) {
	loc, err := time.LoadLocation(cfg.Monitor.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", cfg.Monitor.Timezone, err)
	}
	return &Service{cfg: cfg, cache: cache, pool: pool, loc: loc}, nil
}

// Run starts the tick loop and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Monitor.Enabled {
		log.Println("Occupancy monitor is disabled. Not starting.")
		return
	}
	log.Println("Starting occupancy monitor...")

	if s.pool != nil {
		s.pool.Start(ctx)
	}

	s.CheckOnce(ctx)

	ticker := time.NewTicker(s.cfg.Monitor.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Occupancy monitor shutting down.")
			return
		case <-ticker.C:
			s.CheckOnce(ctx)
		}
	}
}

// CheckOnce performs a single occupancy pass and dispatches vacancy
// notifications. Returns the IDs of rooms that flipped to vacant.
func (s *Service) CheckOnce(ctx context.Context) []int64 {
	flips := s.cache.CheckOccupancy(s.Now())
	if s.pool != nil {
		for _, roomID := range flips {
			s.pool.Dispatch(roomID)
		}
	}
	return flips
}

// Now returns the current wall clock as a naive minute-resolution
// timestamp in the monitor's timezone. Reservations are stored as naive
// local strings, so the comparison value goes through the same
// format-then-parse round trip rather than carrying a zone offset.
func (s *Service) Now() time.Time {
	now, _ := time.Parse(timefmt.Storage, time.Now().In(s.loc).Format(timefmt.Storage))
	return now
}
