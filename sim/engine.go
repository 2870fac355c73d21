// Package sim provides a software stand-in for the PIO execution engine so
// the delay calculator, feeder, and trigger logic can run on a host with no
// hardware attached. It models the engine's input FIFO and the fixed
// four-phase program's consumption timing in engine ticks.
package sim

import "github.com/calvinmclean/quadpulse"

// FIFODepth matches the hardware TX FIFO.
const FIFODepth = 4

// PhasePins holds the pin pattern the program sets for each phase: channel
// 1 high during A, the shifted channel during B, channel 3 during C, all
// idle during D.
var PhasePins = [4]uint8{0b0001, 0b0010, 0b0100, 0b0000}

// Phase is one executed segment of the output pattern.
type Phase struct {
	// Index is the phase position, 0..3 for A..D.
	Index int
	// Value is the loop count consumed from the FIFO.
	Value uint32
	// Pins is the output pin pattern held for the phase.
	Pins uint8
	// StartTick is the engine tick at which the phase began.
	StartTick uint64
	// Ticks is the phase length: Value plus the fixed program overhead.
	Ticks uint64
}

// Engine simulates the execution engine on a virtual tick clock. It is
// single-threaded like everything that drives it: queued values are
// consumed when the FIFO must make room for a push, and Drain consumes
// whatever is left.
type Engine struct {
	tickHz float64

	enabled bool
	fifo    []uint32

	phase    int
	tick     uint64
	trace    []Phase
	consumed []uint32
}

var _ quadpulse.Engine = (*Engine)(nil)

// NewEngine returns a disabled engine running at the given tick frequency.
func NewEngine(tickHz float64) *Engine {
	return &Engine{tickHz: tickHz}
}

func (e *Engine) Enable()  { e.enabled = true }
func (e *Engine) Disable() { e.enabled = false }

// PushBlocking enqueues a loop count, consuming the oldest queued value
// first when the FIFO is full. The real engine would leave the caller
// spinning forever if the FIFO never drained; a single-threaded simulation
// of that is an unattributable hang, so pushing into a full FIFO while the
// engine is disabled panics instead.
func (e *Engine) PushBlocking(v uint32) {
	if len(e.fifo) == FIFODepth {
		if !e.enabled {
			panic("sim: push into a full FIFO while the engine is disabled would block forever")
		}
		e.consumeOne()
	}
	e.fifo = append(e.fifo, v)
}

// Drain consumes every queued value, as the running program eventually
// would. Disabling the engine does not clear the FIFO, so values queued
// before a Disable are still drained.
func (e *Engine) Drain() {
	for len(e.fifo) > 0 {
		e.consumeOne()
	}
}

func (e *Engine) consumeOne() {
	v := e.fifo[0]
	e.fifo = e.fifo[1:]

	ticks := uint64(v) + quadpulse.PhaseOverheadCycles
	e.trace = append(e.trace, Phase{
		Index:     e.phase,
		Value:     v,
		Pins:      PhasePins[e.phase],
		StartTick: e.tick,
		Ticks:     ticks,
	})
	e.consumed = append(e.consumed, v)

	e.tick += ticks
	e.phase = (e.phase + 1) % len(PhasePins)
}

// Trace returns the executed phases in order.
func (e *Engine) Trace() []Phase {
	return e.trace
}

// Consumed returns every consumed loop count in consumption order.
func (e *Engine) Consumed() []uint32 {
	return e.consumed
}

// Queued returns the number of values still waiting in the FIFO.
func (e *Engine) Queued() int {
	return len(e.fifo)
}

// ElapsedUS converts the engine's virtual tick position to microseconds.
func (e *Engine) ElapsedUS() float64 {
	return e.TickUS(e.tick)
}

// TickUS converts a tick count to microseconds at the engine's tick rate.
func (e *Engine) TickUS(ticks uint64) float64 {
	return float64(ticks) / e.tickHz * 1e6
}
