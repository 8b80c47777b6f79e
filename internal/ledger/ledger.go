// Package ledger holds every player's resin balances in memory and enforces
// the configured bounds on each mutation.
package ledger

import (
	"slices"
	"sync"

	"github.com/pixil98/go-resin/internal/resin"
	"github.com/pixil98/go-resin/internal/storage"
)

type Ledger struct {
	limits   Limits
	accounts map[string]resin.Balances

	mu sync.RWMutex
}

func New(limits Limits) *Ledger {
	return &Ledger{
		limits:   limits,
		accounts: map[string]resin.Balances{},
	}
}

func (l *Ledger) Limits() Limits {
	return l.limits
}

func (l *Ledger) Exists(name string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, ok := l.accounts[name]
	return ok
}

// Create opens an account at the default balances. It returns false and leaves
// the balances alone when the account already exists.
func (l *Ledger) Create(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.accounts[name]; ok {
		return false
	}

	l.accounts[name] = l.defaults()
	return true
}

func (l *Ledger) defaults() resin.Balances {
	b := make(resin.Balances, len(resin.All()))
	for _, t := range resin.All() {
		b[t] = l.limits.Default(t)
	}
	return b
}

// Get returns 0 for an unknown account or type.
func (l *Ledger) Get(name string, t resin.Type) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.accounts[name][t]
}

// GetAll returns a copy of the account's balances, empty when absent.
func (l *Ledger) GetAll(name string) resin.Balances {
	l.mu.RLock()
	defer l.mu.RUnlock()

	b, ok := l.accounts[name]
	if !ok {
		return resin.Balances{}
	}
	return b.Clone()
}

func (l *Ledger) Add(name string, t resin.Type, amount int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, limit, err := l.prepare(name, t, amount)
	if err != nil {
		return err
	}

	// amount > limit-current avoids overflowing current+amount
	if amount > limit-b[t] {
		return ErrCapExceeded
	}

	b[t] += amount
	return nil
}

func (l *Ledger) Set(name string, t resin.Type, amount int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, limit, err := l.prepare(name, t, amount)
	if err != nil {
		return err
	}

	if amount > limit {
		return ErrCapExceeded
	}

	b[t] = amount
	return nil
}

func (l *Ledger) Subtract(name string, t resin.Type, amount int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.accounts[name]
	if !ok {
		return ErrNoAccount
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if !t.Valid() {
		return ErrUnknownType
	}
	if b[t]-amount < 0 {
		return ErrInsufficientBalance
	}

	b[t] -= amount
	return nil
}

// prepare runs the checks shared by Add and Set. Caller must hold the lock.
func (l *Ledger) prepare(name string, t resin.Type, amount int) (resin.Balances, int, error) {
	b, ok := l.accounts[name]
	if !ok {
		return nil, 0, ErrNoAccount
	}
	if amount <= 0 {
		return nil, 0, ErrInvalidAmount
	}
	if !t.Valid() {
		return nil, 0, ErrUnknownType
	}
	limit, ok := l.limits.Cap(t)
	if !ok {
		return nil, 0, ErrNoCap
	}
	return b, limit, nil
}

// Names returns every account name in sorted order.
func (l *Ledger) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	names := make([]string, 0, len(l.accounts))
	for name := range l.accounts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.accounts)
}

// Snapshot returns a deep copy of every account.
func (l *Ledger) Snapshot() storage.Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return storage.Snapshot(l.accounts).Clone()
}

// Restore replaces every account with the contents of s. Types missing from a
// stored account start at their default.
func (l *Ledger) Restore(s storage.Snapshot) {
	accounts := make(map[string]resin.Balances, len(s))
	for name, stored := range s {
		b := l.defaults()
		for t, amount := range stored {
			if t.Valid() {
				b[t] = amount
			}
		}
		accounts[name] = b
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.accounts = accounts
}
