package ledger

import (
	"strings"
	"testing"

	"github.com/pixil98/go-resin/internal/resin"
)

func TestLimits_Validate(t *testing.T) {
	tests := map[string]struct {
		limits  Limits
		expErrs []string
	}{
		"valid": {
			limits: testLimits(),
		},
		"missing entries": {
			limits: Limits{
				Defaults: resin.Balances{resin.Original: 5, resin.Condensed: 0},
				Caps:     resin.Balances{resin.Original: 200, resin.Fragile: 1},
			},
			expErrs: []string{"default for fragile is required", "cap for condensed is required"},
		},
		"negative values": {
			limits: Limits{
				Defaults: resin.Balances{resin.Original: -1, resin.Condensed: 0, resin.Fragile: 0},
				Caps:     resin.Balances{resin.Original: 200, resin.Condensed: -2, resin.Fragile: 0},
			},
			expErrs: []string{"default for original must not be negative", "cap for condensed must not be negative"},
		},
		"default above cap": {
			limits: Limits{
				Defaults: resin.Balances{resin.Original: 300, resin.Condensed: 0, resin.Fragile: 0},
				Caps:     resin.Balances{resin.Original: 200, resin.Condensed: 5, resin.Fragile: 10},
			},
			expErrs: []string{"default for original (300) exceeds its cap (200)"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.limits.Validate()

			if len(tt.expErrs) == 0 {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatalf("expected errors %v, got nil", tt.expErrs)
			}
			for _, e := range tt.expErrs {
				if !strings.Contains(err.Error(), e) {
					t.Errorf("error %q does not contain %q", err.Error(), e)
				}
			}
		})
	}
}
