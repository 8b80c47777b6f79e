package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/pixil98/go-resin/internal/lang"
	"github.com/pixil98/go-testutil"
)

func TestAsUserError(t *testing.T) {
	tests := map[string]struct {
		err    error
		expOk  bool
		expKey string
	}{
		"nil":          {err: nil},
		"system error": {err: errors.New("disk full")},
		"user error":   {err: NewUserError(lang.UsageMain, "Usage: /resin help"), expOk: true, expKey: lang.UsageMain},
		"wrapped": {
			err:    fmt.Errorf("running: %w", NewUserError(lang.UsageCheck, "Usage: /resin check <player>")),
			expOk:  true,
			expKey: lang.UsageCheck,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ue, ok := AsUserError(tt.err)
			testutil.AssertEqual(t, "ok", ok, tt.expOk)
			if ok {
				testutil.AssertEqual(t, "key", ue.Key, tt.expKey)
			}
		})
	}
}

func TestHandler_UserErrorKeys(t *testing.T) {
	h, _, _ := newTestHandler(t)
	ctx := context.Background()

	err := h.Exec(ctx, NewPlayerSender("Alice", nil), "list")
	ue, ok := AsUserError(err)
	if !ok {
		t.Fatalf("expected user error, got %v", err)
	}
	testutil.AssertEqual(t, "permission key", ue.Key, lang.ErrorNoPermission)

	err = h.Exec(ctx, NewConsoleSender("CONSOLE"), "take", "", "original", "1")
	ue, ok = AsUserError(err)
	if !ok {
		t.Fatalf("expected user error, got %v", err)
	}
	testutil.AssertEqual(t, "usage key", ue.Key, lang.UsageChange)
}
