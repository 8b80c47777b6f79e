// Package service validates resin requests and applies them to the ledger.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pixil98/go-resin/internal/ledger"
	"github.com/pixil98/go-resin/internal/presence"
	"github.com/pixil98/go-resin/internal/resin"
)

type Operation string

const (
	OpGive Operation = "give"
	OpSet  Operation = "set"
	OpTake Operation = "take"
)

// Change describes a successful mutation.
type Change struct {
	Player  string
	Type    resin.Type
	Op      Operation
	Amount  int
	Balance int
}

// Notifier is told about every successful mutation.
type Notifier interface {
	BalanceChanged(ctx context.Context, c Change)
}

type Service struct {
	ledger        *ledger.Ledger
	presence      *presence.Registry
	notifier      Notifier
	requireOnline bool
}

func New(l *ledger.Ledger, p *presence.Registry, opts ...ServiceOpt) *Service {
	s := &Service{
		ledger:   l,
		presence: p,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) Ledger() *ledger.Ledger {
	return s.ledger
}

func (s *Service) Presence() *presence.Registry {
	return s.presence
}

// RequireOnline reports whether mutations need the target to be online.
func (s *Service) RequireOnline() bool {
	return s.requireOnline
}

func (s *Service) AccountExists(player string) bool {
	return s.ledger.Exists(player)
}

func (s *Service) CreateAccount(player string) bool {
	return s.ledger.Create(player)
}

func (s *Service) GetBalance(player string, t resin.Type) int {
	return s.ledger.Get(player, t)
}

func (s *Service) GetAllBalances(player string) resin.Balances {
	return s.ledger.GetAll(player)
}

// Caps returns a copy of the configured maximum of each type.
func (s *Service) Caps() resin.Balances {
	return s.ledger.Limits().Caps.Clone()
}

// Join marks the player online and opens an account if none exists.
func (s *Service) Join(ctx context.Context, player string) bool {
	s.presence.Join(player)
	created := s.ledger.Create(player)
	if created {
		slog.InfoContext(ctx, "created resin account", "player", player)
	}
	return created
}

func (s *Service) Quit(ctx context.Context, player string) {
	if s.presence.Leave(player) {
		slog.DebugContext(ctx, "player left", "player", player)
	}
}

func (s *Service) CheckStatus(player string) Result {
	if !s.ledger.Exists(player) {
		return NoAccount
	}
	if !s.presence.IsOnline(player) {
		return NotOnline
	}
	return Success
}

func (s *Service) Give(ctx context.Context, player string, amount int, t resin.Type) Result {
	limit, r := s.checkCapped(player, amount, t)
	if r != Success {
		return r
	}

	if amount > limit-s.ledger.Get(player, t) {
		return InsufficientAmount
	}
	if !s.onlineOK(player) {
		return NotOnline
	}

	return s.apply(ctx, OpGive, player, amount, t, s.ledger.Add(player, t, amount))
}

func (s *Service) SetAmount(ctx context.Context, player string, amount int, t resin.Type) Result {
	limit, r := s.checkCapped(player, amount, t)
	if r != Success {
		return r
	}

	if amount > limit {
		return InsufficientAmount
	}
	if !s.onlineOK(player) {
		return NotOnline
	}

	return s.apply(ctx, OpSet, player, amount, t, s.ledger.Set(player, t, amount))
}

func (s *Service) Take(ctx context.Context, player string, amount int, t resin.Type) Result {
	if amount <= 0 {
		return InvalidNumber
	}
	if !t.Valid() {
		return InvalidResourceType
	}
	if !s.ledger.Exists(player) {
		return NoAccount
	}
	if s.ledger.Get(player, t)-amount < 0 {
		return InsufficientAmount
	}
	if !s.onlineOK(player) {
		return NotOnline
	}

	return s.apply(ctx, OpTake, player, amount, t, s.ledger.Subtract(player, t, amount))
}

// checkCapped runs the checks shared by Give and SetAmount up to and including
// account existence.
func (s *Service) checkCapped(player string, amount int, t resin.Type) (int, Result) {
	if amount <= 0 {
		return 0, InvalidNumber
	}
	if !t.Valid() {
		return 0, InvalidResourceType
	}
	limit, ok := s.ledger.Limits().Cap(t)
	if !ok {
		return 0, ProviderFailure
	}
	if !s.ledger.Exists(player) {
		return 0, NoAccount
	}
	return limit, Success
}

func (s *Service) onlineOK(player string) bool {
	return !s.requireOnline || s.presence.IsOnline(player)
}

func (s *Service) apply(ctx context.Context, op Operation, player string, amount int, t resin.Type, err error) Result {
	if err != nil {
		r := resultFor(err)
		slog.WarnContext(ctx, "resin mutation rejected", "op", op, "player", player, "type", t, "amount", amount, "result", r, "error", err)
		return r
	}

	balance := s.ledger.Get(player, t)
	slog.InfoContext(ctx, "resin updated", "op", op, "player", player, "type", t, "amount", amount, "balance", balance)

	if s.notifier != nil {
		s.notifier.BalanceChanged(ctx, Change{
			Player:  player,
			Type:    t,
			Op:      op,
			Amount:  amount,
			Balance: balance,
		})
	}

	return Success
}

// resultFor maps a ledger error onto a Result. A ledger error at this point
// means the account changed between validation and mutation.
func resultFor(err error) Result {
	switch {
	case errors.Is(err, ledger.ErrNoAccount):
		return NoAccount
	case errors.Is(err, ledger.ErrInvalidAmount):
		return InvalidNumber
	case errors.Is(err, ledger.ErrUnknownType):
		return InvalidResourceType
	case errors.Is(err, ledger.ErrCapExceeded), errors.Is(err, ledger.ErrInsufficientBalance):
		return InsufficientAmount
	default:
		return ProviderFailure
	}
}
