package resin

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Type identifies one of the resin currencies tracked per player.
type Type string

const (
	Original  Type = "original"
	Condensed Type = "condensed"
	Fragile   Type = "fragile"
)

// Regenerating is the type granted by the periodic regeneration sweep.
const Regenerating = Original

var all = []Type{Original, Condensed, Fragile}

var titleCaser = cases.Title(language.English)

// All returns every resin type in catalog order.
func All() []Type {
	out := make([]Type, len(all))
	copy(out, all)
	return out
}

func (t Type) Valid() bool {
	for _, v := range all {
		if v == t {
			return true
		}
	}
	return false
}

func (t Type) String() string {
	return string(t)
}

// DisplayName returns the human readable name, e.g. "Original Resin".
func (t Type) DisplayName() string {
	return titleCaser.String(string(t) + " resin")
}

// Column returns the storage column / legacy identifier, e.g. "original_resin".
func (t Type) Column() string {
	return string(t) + "_resin"
}

// Parse accepts the identifier, the legacy identifier or the display name,
// ignoring case.
func Parse(s string) (Type, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	norm = strings.TrimSuffix(norm, "_resin")

	t := Type(norm)
	if !t.Valid() {
		return "", false
	}
	return t, true
}

// Lookup is Parse that keeps unrecognized input as an invalid Type so callers
// can report it back.
func Lookup(s string) Type {
	if t, ok := Parse(s); ok {
		return t
	}
	return Type(s)
}

func (t *Type) UnmarshalText(text []byte) error {
	v, ok := Parse(string(text))
	if !ok {
		return fmt.Errorf("unknown resin type: %s", text)
	}
	*t = v
	return nil
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t), nil
}

// Balances maps each resin type to an amount.
type Balances map[Type]int

func (b Balances) Clone() Balances {
	out := make(Balances, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
