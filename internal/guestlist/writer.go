package guestlist

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sourcegraph/conc"

	"github.com/mmynk/guestlist/internal/metrics"
	"github.com/mmynk/guestlist/internal/models"
	"github.com/mmynk/guestlist/internal/storage"
)

// writer is the only goroutine that touches the durable slot. Submitted
// snapshots are coalesced: a write always carries the newest snapshot issued
// so far, so the last committed write is the last one issued.
type writer struct {
	saver   storage.Saver
	metrics *metrics.Metrics

	mu        sync.Mutex
	latest    []models.Guest
	issued    uint64
	committed uint64
	// closed and replaced on every commit to wake Flush callers
	progress chan struct{}

	wake chan struct{}
	stop chan struct{}
	wg   conc.WaitGroup
}

func newWriter(saver storage.Saver, m *metrics.Metrics) *writer {
	w := &writer{
		saver:    saver,
		metrics:  m,
		progress: make(chan struct{}),
		wake:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
	}
	w.wg.Go(w.run)
	return w
}

// submit queues snapshot for writing. It never blocks on I/O.
func (w *writer) submit(snapshot []models.Guest) {
	w.mu.Lock()
	w.latest = snapshot
	w.issued++
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *writer) run() {
	for {
		select {
		case <-w.wake:
			w.drain()
		case <-w.stop:
			w.drain()
			return
		}
	}
}

// drain writes until nothing newer than the last commit is pending.
func (w *writer) drain() {
	for {
		w.mu.Lock()
		if w.committed == w.issued {
			w.mu.Unlock()
			return
		}
		snapshot, seq := w.latest, w.issued
		w.mu.Unlock()

		err := w.saver.Save(context.Background(), snapshot)
		w.metrics.Persisted(err)
		if err != nil {
			slog.Error("Failed to persist guests", "guests", len(snapshot), "error", err)
		} else {
			slog.Debug("Guests persisted", "guests", len(snapshot), "seq", seq)
		}

		w.mu.Lock()
		w.committed = seq
		close(w.progress)
		w.progress = make(chan struct{})
		w.mu.Unlock()
	}
}

// flush waits until every snapshot submitted before the call has been
// written (successfully or not).
func (w *writer) flush(ctx context.Context) error {
	w.mu.Lock()
	target := w.issued
	w.mu.Unlock()

	for {
		w.mu.Lock()
		if w.committed >= target {
			w.mu.Unlock()
			return nil
		}
		progress := w.progress
		w.mu.Unlock()

		select {
		case <-progress:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// close writes any pending snapshot and stops the goroutine.
func (w *writer) close() {
	close(w.stop)
	w.wg.Wait()
}
