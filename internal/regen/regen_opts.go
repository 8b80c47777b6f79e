package regen

import "github.com/pixil98/go-resin/internal/resin"

type RegeneratorOpt func(*Regenerator)

// WithTicksPerMinute sets how many driver ticks make up one minute.
func WithTicksPerMinute(n int) RegeneratorOpt {
	return func(r *Regenerator) {
		if n > 0 {
			r.ticksPerMinute = n
		}
	}
}

// WithResource sets the regenerating resin type.
func WithResource(t resin.Type) RegeneratorOpt {
	return func(r *Regenerator) {
		r.resource = t
	}
}

// WithGrant sets the amount granted per sweep.
func WithGrant(n int) RegeneratorOpt {
	return func(r *Regenerator) {
		if n > 0 {
			r.grant = n
		}
	}
}
