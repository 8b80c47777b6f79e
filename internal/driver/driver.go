package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	// DefaultTickLength is one tick per second; regeneration countdowns are
	// expressed in these ticks.
	DefaultTickLength = time.Second
)

type Ticker interface {
	Tick(context.Context) error
}

// Driver calls every ticker in order once per tick. Tickers never run
// concurrently with each other.
type Driver struct {
	tickLength time.Duration
	tickers    map[string]Ticker
	order      []string
}

func NewDriver(opts ...DriverOpt) *Driver {
	d := &Driver{
		tickLength: DefaultTickLength,
		tickers:    map[string]Ticker{},
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Register adds a ticker under name. Tickers run in registration order.
func (d *Driver) Register(name string, t Ticker) error {
	if t == nil {
		return fmt.Errorf("ticker %q is nil", name)
	}
	if _, ok := d.tickers[name]; ok {
		return fmt.Errorf("ticker %q already registered", name)
	}
	d.tickers[name] = t
	d.order = append(d.order, name)
	return nil
}

func (d *Driver) TickLength() time.Duration {
	return d.tickLength
}

func (d *Driver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	slog.InfoContext(ctx, "driver started", "tick_length", d.tickLength, "tickers", d.order)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err != nil {
				return err
			}
		}
	}
}

func (d *Driver) Tick(ctx context.Context) error {
	for _, name := range d.order {
		if err := d.tickers[name].Tick(ctx); err != nil {
			return fmt.Errorf("ticking %s: %w", name, err)
		}
	}
	return nil
}
