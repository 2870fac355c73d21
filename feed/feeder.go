// Package feed keeps an execution engine supplied with phase loop counts.
// The engine has almost no buffering of its own, so the feeder's only job
// is to push the same four values in the same order without stopping.
package feed

import (
	"time"

	"github.com/calvinmclean/quadpulse"
)

// Feeder streams a DelaySet into an Engine.
type Feeder struct {
	Engine quadpulse.Engine
	Delays quadpulse.DelaySet

	// Now reports wall-clock time for bounded runs. Defaults to time.Now.
	// It must come from a monotonic source.
	Now func() time.Time
}

// Run pushes quadruples forever. It never returns.
func (f Feeder) Run() {
	for {
		f.PushQuad()
	}
}

// RunFor pushes quadruples until d has elapsed. Elapsed time is checked
// once per quadruple, never mid-quadruple, so the emission can overrun d
// by up to one quadruple's worth of physical time. The caller is expected
// to disable the engine when RunFor returns.
func (f Feeder) RunFor(d time.Duration) {
	now := f.Now
	if now == nil {
		now = time.Now
	}

	start := now()
	for now().Sub(start) < d {
		f.PushQuad()
	}
}

// PushQuad pushes one A, B, C, D quadruple in that exact order. The
// engine's program assigns values to phases by position, not by tag, so
// the order is load-bearing.
func (f Feeder) PushQuad() {
	f.Engine.PushBlocking(f.Delays.A)
	f.Engine.PushBlocking(f.Delays.B)
	f.Engine.PushBlocking(f.Delays.C)
	f.Engine.PushBlocking(f.Delays.D)
}
