package storage

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-resin/internal/resin"
)

const (
	ledgerAssetId      = "resin-ledger"
	ledgerAssetVersion = 1
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9-]*$`)

type ValidatingSpec interface {
	Validate() error
}

type Identifier string

func (id Identifier) String() string {
	return string(id)
}

// Asset is the versioned envelope written by the flat-file backends.
type Asset[T ValidatingSpec] struct {
	Version    uint       `json:"version" yaml:"version"`
	Identifier Identifier `json:"id" yaml:"id"`
	Spec       T          `json:"spec" yaml:"spec"`
}

func (a *Asset[T]) Id() Identifier {
	return a.Identifier
}

func (a *Asset[T]) Validate() error {
	el := errors.NewErrorList()

	if a.Version == 0 {
		el.Add(fmt.Errorf("version must be set"))
	} else if a.Version > ledgerAssetVersion {
		el.Add(fmt.Errorf("unsupported version %d", a.Version))
	}

	if a.Identifier == "" {
		el.Add(fmt.Errorf("id must be set"))
	}

	if !identifierPattern.MatchString(a.Identifier.String()) {
		el.Add(fmt.Errorf("id must be alphanumeric"))
	}

	el.Add(a.Spec.Validate())

	return el.Err()
}

// LedgerDocument is the on-disk shape of a ledger. Resin types are kept as
// plain strings so unknown keys survive decoding and are reported by Validate.
type LedgerDocument struct {
	Accounts map[string]map[string]int `json:"accounts" yaml:"accounts"`
}

func newLedgerDocument(s Snapshot) *LedgerDocument {
	doc := &LedgerDocument{Accounts: make(map[string]map[string]int, len(s))}
	for name, balances := range s {
		row := make(map[string]int, len(balances))
		for t, amount := range balances {
			row[t.String()] = amount
		}
		doc.Accounts[name] = row
	}
	return doc
}

func (d *LedgerDocument) Validate() error {
	el := errors.NewErrorList()

	for name, row := range d.Accounts {
		if name == "" {
			el.Add(fmt.Errorf("account with empty player name"))
		}
		keys := map[resin.Type][]string{}
		for key, amount := range row {
			t, ok := resin.Parse(key)
			if !ok {
				el.Add(fmt.Errorf("account %q: unknown resin type %q", name, key))
			} else {
				keys[t] = append(keys[t], key)
			}
			if amount < 0 {
				el.Add(fmt.Errorf("account %q: negative %s balance %d", name, key, amount))
			}
		}
		for t, ks := range keys {
			if len(ks) > 1 {
				slices.Sort(ks)
				el.Add(fmt.Errorf("account %q: %s given more than once (%s)", name, t, strings.Join(ks, ", ")))
			}
		}
	}

	return el.Err()
}

func (d *LedgerDocument) snapshot() Snapshot {
	s := make(Snapshot, len(d.Accounts))
	for name, row := range d.Accounts {
		balances := make(resin.Balances, len(row))
		for key, amount := range row {
			t, _ := resin.Parse(key)
			balances[t] = amount
		}
		s[name] = balances
	}
	return s
}
