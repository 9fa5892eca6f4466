package services

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper periodically purges expired events through the same cascade the
// manual delete uses. No locking: concurrent sweeps and deletes both treat
// already-gone rows as no-ops.
type Sweeper struct {
	events   *EventService
	interval time.Duration
}

func NewSweeper(events *EventService, interval time.Duration) *Sweeper {
	return &Sweeper{events: events, interval: interval}
}

// Start runs the sweep loop in a goroutine until done is closed.
func (s *Sweeper) Start(done chan struct{}) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep(context.Background())
			case <-done:
				return
			}
		}
	}()
}

// Sweep purges expired events once and logs the outcome.
func (s *Sweeper) Sweep(ctx context.Context) {
	purged, err := s.events.CleanupExpired(ctx)
	if err != nil {
		slog.Error("event cleanup failed", "error", err)
		return
	}
	if purged > 0 {
		slog.Info("event cleanup completed", "purged", purged)
	}
}
