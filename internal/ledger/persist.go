package ledger

import (
	"context"
	"fmt"

	"github.com/pixil98/go-resin/internal/storage"
)

// Load replaces the ledger with the backend's contents. On error the ledger is
// left untouched.
func (l *Ledger) Load(ctx context.Context, b storage.Backend) error {
	snap, err := b.Open(ctx)
	if err != nil {
		return fmt.Errorf("loading ledger: %w", err)
	}

	l.Restore(snap)
	return nil
}

// Flush persists a point-in-time copy of the ledger. The lock is not held
// while the backend writes.
func (l *Ledger) Flush(ctx context.Context, b storage.Backend) error {
	err := b.Save(ctx, l.Snapshot())
	if err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}
	return nil
}
