package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/pixil98/go-resin/internal/resin"
	"github.com/pixil98/go-resin/internal/storage"
	"github.com/pixil98/go-testutil"
)

// memoryBackend keeps the last saved snapshot in memory.
type memoryBackend struct {
	stored  storage.Snapshot
	openErr error
	saveErr error
	saves   int
	closed  bool
}

func (b *memoryBackend) Open(context.Context) (storage.Snapshot, error) {
	if b.openErr != nil {
		return nil, b.openErr
	}
	return b.stored.Clone(), nil
}

func (b *memoryBackend) Save(_ context.Context, s storage.Snapshot) error {
	b.saves++
	if b.saveErr != nil {
		return b.saveErr
	}
	b.stored = s.Clone()
	return nil
}

func (b *memoryBackend) Close() error {
	b.closed = true
	return nil
}

func TestLedger_FlushLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := &memoryBackend{}

	l := newTestLedger(t, "Alice", "Bob")
	if err := l.Add("Alice", resin.Original, 40); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := l.Set("Bob", resin.Fragile, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := l.Flush(ctx, backend); err != nil {
		t.Fatalf("unexpected flush error: %v", err)
	}

	restarted := New(testLimits())
	if err := restarted.Load(ctx, backend); err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}

	testutil.AssertEqual(t, "account count", restarted.Len(), 2)
	for _, name := range l.Names() {
		for _, typ := range resin.All() {
			testutil.AssertEqual(t, name+" "+typ.String(), restarted.Get(name, typ), l.Get(name, typ))
		}
	}
}

func TestLedger_LoadFailureKeepsLedger(t *testing.T) {
	backend := &memoryBackend{openErr: errors.New("disk on fire")}
	l := newTestLedger(t, "Alice")

	err := l.Load(context.Background(), backend)
	testutil.AssertErrorContains(t, err, "loading ledger: disk on fire")
	testutil.AssertEqual(t, "alice kept", l.Exists("Alice"), true)
}

func TestLedger_FlushFailure(t *testing.T) {
	backend := &memoryBackend{saveErr: errors.New("read-only filesystem")}
	l := newTestLedger(t, "Alice")

	err := l.Flush(context.Background(), backend)
	testutil.AssertErrorContains(t, err, "saving ledger: read-only filesystem")
}
