package storage

import (
	"context"
	"fmt"

	"github.com/pixil98/go-resin/internal/resin"
)

// Snapshot is the full ledger keyed by player name.
type Snapshot map[string]resin.Balances

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for name, b := range s {
		out[name] = b.Clone()
	}
	return out
}

// Backend loads and persists a whole ledger. Implementations do not cache
// the data they translate.
type Backend interface {
	Open(context.Context) (Snapshot, error)
	Save(context.Context, Snapshot) error
	Close() error
}

// BackendError reports an I/O or schema failure inside a Backend.
type BackendError struct {
	Backend string
	Op      string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s backend %s: %v", e.Backend, e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// NewBackendError wraps err, leaving nil untouched.
func NewBackendError(backend, op string, err error) error {
	if err == nil {
		return nil
	}
	return &BackendError{Backend: backend, Op: op, Err: err}
}
