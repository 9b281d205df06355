package workers

import (
	"context"
	"log"
	"time"

	"github.com/glowtrack/routine-engine/internal/core/domain"
)

type CompletionRepository interface {
	MarkMissedBefore(ctx context.Context, cutoffDate string) (int64, error)
}

// MissedWorker sweeps pending completion records whose grace period has
// lapsed and marks them missed. One goroutine, woken by a ticker and by
// explicit Poke calls from the write path.
type MissedWorker struct {
	repo     CompletionRepository
	interval time.Duration
	now      func() time.Time
	wake     chan struct{}
}

func NewMissedWorker(repo CompletionRepository, interval time.Duration, now func() time.Time) *MissedWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	if now == nil {
		now = time.Now
	}
	return &MissedWorker{
		repo:     repo,
		interval: interval,
		now:      now,
		wake:     make(chan struct{}, 1),
	}
}

func (w *MissedWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Missed Worker started in background...")

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.sweep(ctx)

		for {
			select {
			case <-ticker.C:
				w.sweep(ctx)
			case <-w.wake:
				w.sweep(ctx)
			case <-ctx.Done():
				log.Println("Missed Worker shutting down...")
				return
			}
		}
	}()
}

// Poke requests an immediate sweep. Coalesces when one is already queued.
func (w *MissedWorker) Poke() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *MissedWorker) sweep(ctx context.Context) {
	// Two full days behind the current UTC date is past the late grace
	// window in every timezone, including UTC+14.
	cutoff := w.now().UTC().AddDate(0, 0, -2).Format(domain.DateLayout)

	n, err := w.repo.MarkMissedBefore(ctx, cutoff)
	if err != nil {
		log.Printf("Worker Error marking missed records before %s: %v", cutoff, err)
		return
	}

	if n > 0 {
		log.Printf("Marked %d pending records missed (scheduled before %s)", n, cutoff)
	}
}
