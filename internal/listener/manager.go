package listener

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
)

// SessionRunner serves a single connection.
type SessionRunner interface {
	RunSession(ctx context.Context, conn io.ReadWriter) error
}

// Session identifies where a console connection came from.
type Session struct {
	Protocol string
	Remote   string
}

type ConnectionManager struct {
	runner SessionRunner
	active atomic.Int64
}

func NewConnectionManager(runner SessionRunner) *ConnectionManager {
	return &ConnectionManager{
		runner: runner,
	}
}

// Active is the number of console sessions currently running.
func (m *ConnectionManager) Active() int {
	return int(m.active.Load())
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, s Session, conn io.ReadWriter) {
	active := m.active.Add(1)
	defer m.active.Add(-1)

	log := slog.With("protocol", s.Protocol, "remote", s.Remote)
	log.InfoContext(ctx, "console session started", "active", active)
	if err := m.runner.RunSession(ctx, conn); err != nil {
		log.WarnContext(ctx, "console session", "error", err)
		return
	}
	log.InfoContext(ctx, "console session ended")
}
