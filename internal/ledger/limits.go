package ledger

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-resin/internal/resin"
)

// Limits holds the configured starting balance and cap of each resin type.
type Limits struct {
	Defaults resin.Balances
	Caps     resin.Balances
}

// Cap returns the configured maximum for t.
func (l Limits) Cap(t resin.Type) (int, bool) {
	c, ok := l.Caps[t]
	return c, ok
}

func (l Limits) Default(t resin.Type) int {
	return l.Defaults[t]
}

func (l Limits) Validate() error {
	el := errors.NewErrorList()

	for _, t := range resin.All() {
		def, hasDef := l.Defaults[t]
		limit, hasCap := l.Caps[t]

		if !hasDef {
			el.Add(fmt.Errorf("default for %s is required", t))
		}
		if !hasCap {
			el.Add(fmt.Errorf("cap for %s is required", t))
		}
		if def < 0 {
			el.Add(fmt.Errorf("default for %s must not be negative", t))
		}
		if limit < 0 {
			el.Add(fmt.Errorf("cap for %s must not be negative", t))
		}
		if hasDef && hasCap && def > limit {
			el.Add(fmt.Errorf("default for %s (%d) exceeds its cap (%d)", t, def, limit))
		}
	}

	return el.Err()
}
