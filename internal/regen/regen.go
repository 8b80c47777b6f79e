// Package regen grants regenerating resin to every account on a fixed
// countdown of driver ticks.
package regen

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pixil98/go-resin/internal/ledger"
	"github.com/pixil98/go-resin/internal/resin"
)

const (
	DefaultTicksPerMinute = 60
	DefaultGrant          = 1
)

type Ledger interface {
	Names() []string
	Add(name string, t resin.Type, amount int) error
}

type Regenerator struct {
	ledger Ledger

	resource       resin.Type
	grant          int
	ticksPerMinute int

	interval  int
	countdown int
}

// NewRegenerator sweeps once every intervalMinutes worth of ticks.
func NewRegenerator(l Ledger, intervalMinutes int, opts ...RegeneratorOpt) *Regenerator {
	r := &Regenerator{
		ledger:         l,
		resource:       resin.Regenerating,
		grant:          DefaultGrant,
		ticksPerMinute: DefaultTicksPerMinute,
	}

	for _, opt := range opts {
		opt(r)
	}

	r.interval = r.ticksPerMinute * intervalMinutes
	if r.interval < 1 {
		r.interval = 1
	}
	r.countdown = r.interval

	return r
}

// Countdown returns the ticks left before the next sweep.
func (r *Regenerator) Countdown() int {
	return r.countdown
}

func (r *Regenerator) Tick(ctx context.Context) error {
	r.countdown--
	if r.countdown > 0 {
		return nil
	}

	granted, skipped := r.sweep(ctx)
	r.countdown = r.interval

	slog.DebugContext(ctx, "resin regenerated",
		"resource", r.resource,
		"granted", granted,
		"at_cap", skipped,
		"next_in_ticks", r.countdown,
	)
	return nil
}

func (r *Regenerator) sweep(ctx context.Context) (granted, skipped int) {
	for _, name := range r.ledger.Names() {
		err := r.ledger.Add(name, r.resource, r.grant)
		switch {
		case err == nil:
			granted++
		case errors.Is(err, ledger.ErrCapExceeded):
			skipped++
		case errors.Is(err, ledger.ErrNoAccount):
			// removed between listing and granting
		default:
			slog.WarnContext(ctx, "regenerating resin", "player", name, "error", err)
		}
	}
	return granted, skipped
}
