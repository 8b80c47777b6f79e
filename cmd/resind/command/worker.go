package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-resin/internal/commands"
	"github.com/pixil98/go-resin/internal/driver"
	"github.com/pixil98/go-resin/internal/lang"
	"github.com/pixil98/go-resin/internal/ledger"
	"github.com/pixil98/go-resin/internal/listener"
	"github.com/pixil98/go-resin/internal/messaging"
	"github.com/pixil98/go-resin/internal/presence"
	"github.com/pixil98/go-resin/internal/regen"
	resinservice "github.com/pixil98/go-resin/internal/service"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	tickLength, err := cfg.tickLength()
	if err != nil {
		return nil, err
	}
	ticksPerMinute, err := cfg.ticksPerMinute()
	if err != nil {
		return nil, err
	}
	saveTicks, err := cfg.saveTicks()
	if err != nil {
		return nil, err
	}

	// Load the ledger
	ctx := context.Background()
	backend, err := cfg.Database.BuildBackend(ctx, cfg.Provider)
	if err != nil {
		return nil, fmt.Errorf("creating %s backend: %w", cfg.Provider, err)
	}

	l := ledger.New(cfg.limits())
	if err := l.Load(ctx, backend); err != nil {
		_ = backend.Close()
		return nil, err
	}
	slog.Info("ledger loaded", "provider", cfg.Provider, "accounts", l.Len())

	catalog, err := lang.New(cfg.language())
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("loading language: %w", err)
	}

	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	svc := resinservice.New(l, presence.NewRegistry(),
		resinservice.WithRequireOnline(cfg.RequireOnline),
		resinservice.WithNotifier(messaging.NewEventPublisher(natsServer)),
	)
	handler := commands.NewHandler(svc, catalog, messaging.NewNatsPublisher(natsServer))

	// Setup the tick driver
	saver := ledger.NewSaver(l, backend, saveTicks)
	drv := driver.NewDriver(driver.WithTickLength(tickLength))
	if err := drv.Register("regen", regen.NewRegenerator(l, cfg.IntervalToUpdate, regen.WithTicksPerMinute(ticksPerMinute))); err != nil {
		_ = backend.Close()
		return nil, err
	}
	if err := drv.Register("saver", saver); err != nil {
		_ = backend.Close()
		return nil, err
	}

	// Create consoles
	cm := listener.NewConnectionManager(listener.NewConsole(svc, handler, saver))
	consoles := make(service.WorkerList, len(cfg.Consoles))
	for i, c := range cfg.Consoles {
		w, err := c.BuildListener(cm)
		if err != nil {
			_ = backend.Close()
			return nil, fmt.Errorf("creating console %d: %w", i, err)
		}
		consoles[fmt.Sprintf("console-%d", i)] = w
	}

	// Create a worker list
	return service.WorkerList{
		"nats":     natsServer,
		"gateway":  messaging.NewGateway(natsServer, svc, handler),
		"driver":   drv,
		"saver":    saver,
		"consoles": &consoles,
	}, nil
}
