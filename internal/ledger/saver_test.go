package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestSaver_Tick(t *testing.T) {
	tests := map[string]struct {
		interval int
		ticks    int
		expSaves int
	}{
		"before interval": {interval: 3, ticks: 2, expSaves: 0},
		"at interval":     {interval: 3, ticks: 3, expSaves: 1},
		"several rounds":  {interval: 3, ticks: 10, expSaves: 3},
		"every tick":      {interval: 1, ticks: 4, expSaves: 4},
		"zero interval":   {interval: 0, ticks: 2, expSaves: 2},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			backend := &memoryBackend{}
			s := NewSaver(newTestLedger(t, "Alice"), backend, tt.interval)

			for i := 0; i < tt.ticks; i++ {
				if err := s.Tick(context.Background()); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}

			testutil.AssertEqual(t, "saves", backend.saves, tt.expSaves)
		})
	}
}

func TestSaver_TickSwallowsSaveErrors(t *testing.T) {
	backend := &memoryBackend{saveErr: errors.New("backend down")}
	s := NewSaver(newTestLedger(t, "Alice"), backend, 1)

	err := s.Tick(context.Background())
	if err != nil {
		t.Fatalf("expected tick to swallow save error, got %v", err)
	}

	// The next tick retries
	_ = s.Tick(context.Background())
	testutil.AssertEqual(t, "save attempts", backend.saves, 2)
}

func TestSaver_TickAfterShutdown(t *testing.T) {
	backend := &memoryBackend{}
	s := NewSaver(newTestLedger(t, "Alice"), backend, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Tick(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "saves", backend.saves, 0)

	_ = s.Tick(context.Background())
	testutil.AssertEqual(t, "saves after live tick", backend.saves, 1)
}

func TestSaver_StartSavesOnShutdown(t *testing.T) {
	backend := &memoryBackend{}
	s := NewSaver(newTestLedger(t, "Alice"), backend, 1000)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Start(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "saves", backend.saves, 1)
	testutil.AssertEqual(t, "closed", backend.closed, true)
	testutil.AssertEqual(t, "alice stored", len(backend.stored["Alice"]), 3)
}
