package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/pixil98/go-resin/internal/storage"
)

const shutdownSaveTimeout = 30 * time.Second

// Saver flushes the ledger to its backend every few ticks and once more on
// shutdown.
type Saver struct {
	ledger  *Ledger
	backend storage.Backend

	interval  int
	countdown int
}

// NewSaver flushes every interval ticks. Intervals below one tick are raised
// to one.
func NewSaver(l *Ledger, b storage.Backend, interval int) *Saver {
	if interval < 1 {
		interval = 1
	}
	return &Saver{
		ledger:    l,
		backend:   b,
		interval:  interval,
		countdown: interval,
	}
}

// Tick never returns the save error; the in-memory ledger stays
// authoritative and the next interval retries. Once ctx is done the final
// save belongs to Start, so ticks do nothing.
func (s *Saver) Tick(ctx context.Context) error {
	if ctx.Err() != nil {
		return nil
	}

	s.countdown--
	if s.countdown > 0 {
		return nil
	}
	s.countdown = s.interval

	if err := s.Save(ctx); err != nil {
		slog.ErrorContext(ctx, "periodic save failed", "error", err)
	}
	return nil
}

func (s *Saver) Save(ctx context.Context) error {
	err := s.ledger.Flush(ctx, s.backend)
	if err != nil {
		return err
	}
	slog.DebugContext(ctx, "ledger saved", "accounts", s.ledger.Len())
	return nil
}

// Start blocks until ctx is done, then writes a final save and closes the
// backend.
func (s *Saver) Start(ctx context.Context) error {
	<-ctx.Done()

	saveCtx, cancel := context.WithTimeout(context.Background(), shutdownSaveTimeout)
	defer cancel()

	err := s.Save(saveCtx)
	if err != nil {
		slog.Error("final save failed", "error", err)
	} else {
		slog.Info("ledger saved on shutdown", "accounts", s.ledger.Len())
	}

	if closeErr := s.backend.Close(); closeErr != nil {
		slog.Warn("closing storage backend", "error", closeErr)
	}

	return err
}
