// Package quadpulse computes cycle-exact timing for a repeating four-phase
// pulse pattern emitted by a PIO state machine. The state machine runs a
// fixed program that consumes one loop count per phase; this package turns a
// timing intent (frequency, pulse width, phase shift) into those counts.
package quadpulse

import "errors"

// PhaseOverheadCycles is the fixed instruction cost per phase in the PIO
// program: pull(1) + mov(1) + set(1) + the final fall-through of the
// countdown jmp. The count handed to the engine is the raw cycle count
// minus this overhead.
const PhaseOverheadCycles = 4

var (
	ErrFrequency        = errors.New("frequency must be greater than zero")
	ErrPhaseOverlap     = errors.New("pulses and phase shift do not fit in one period")
	ErrNotRepresentable = errors.New("phase duration is not representable at this divider")
)

// SignalSpec is the timing intent for the output pattern. It is built once
// at startup and never changed while the engine is enabled.
type SignalSpec struct {
	FrequencyHz  float64
	PulseWidthUS float64
	PhaseShiftUS float64
}

// PeriodUS returns the pattern period in microseconds.
func (s SignalSpec) PeriodUS() float64 {
	return 1e6 / s.FrequencyHz
}

// Validate reports whether the spec can be emitted at the given clock.
// It rejects specs whose phases would clamp below the fixed program
// overhead rather than letting them silently degenerate to zero-length
// phases.
func (s SignalSpec) Validate(clock ClockModel) error {
	if s.FrequencyHz <= 0 {
		return ErrFrequency
	}
	if 2*s.PulseWidthUS+s.PhaseShiftUS >= s.PeriodUS() {
		return ErrPhaseOverlap
	}

	cyclesPerUS := clock.TickHz() / 1e6
	durations := [4]float64{
		s.PulseWidthUS,
		s.PhaseShiftUS,
		s.PulseWidthUS,
		s.PeriodUS() - 2*s.PulseWidthUS - s.PhaseShiftUS,
	}
	for _, d := range durations {
		if uint32(d*cyclesPerUS) <= PhaseOverheadCycles {
			return ErrNotRepresentable
		}
	}
	return nil
}

// ClockModel holds the system clock and the divider configured on the
// engine's state machine. Immutable once the engine is configured.
type ClockModel struct {
	SysClkHz float64
	Divider  float64
}

// TickHz returns the effective engine tick frequency.
func (c ClockModel) TickHz() float64 {
	return c.SysClkHz / c.Divider
}

// DelaySet holds the per-phase loop counts consumed by the engine, one per
// phase in A, B, C, D order. Computed once from a (SignalSpec, ClockModel)
// pair and read-only afterwards.
type DelaySet struct {
	A, B, C, D uint32
}

// Policy selects how fractional cycle counts are reconciled with the
// integer period.
type Policy int

const (
	// PolicyPeriodResidual derives phase D from the integer cycle count of
	// the whole period, so the four raw counts always sum to exactly one
	// period. This is the default.
	PolicyPeriodResidual Policy = iota
	// PolicyDirect converts each phase duration to cycles independently,
	// with D taken from the microseconds remaining in the period. Rounding
	// of the four conversions can drift the period by a few cycles. Kept as
	// the legacy behavior of the continuous variant.
	PolicyDirect
)

// New validates the spec against the clock and computes its DelaySet.
func New(spec SignalSpec, clock ClockModel, policy Policy) (DelaySet, error) {
	if err := spec.Validate(clock); err != nil {
		return DelaySet{}, err
	}
	return Compute(spec, clock, policy), nil
}

// Compute translates a spec into engine loop counts. It is pure and total:
// it never fails, but the result is only meaningful for specs that satisfy
// their invariant (see Validate). Conversion truncates toward zero, and raw
// counts at or below the program overhead clamp to zero.
func Compute(spec SignalSpec, clock ClockModel, policy Policy) DelaySet {
	cyclesPerUS := clock.TickHz() / 1e6

	a := uint32(spec.PulseWidthUS * cyclesPerUS)
	b := uint32(spec.PhaseShiftUS * cyclesPerUS)
	c := uint32(spec.PulseWidthUS * cyclesPerUS)

	var d uint32
	switch policy {
	case PolicyDirect:
		remainingUS := spec.PeriodUS() - 2*spec.PulseWidthUS - spec.PhaseShiftUS
		d = uint32(remainingUS * cyclesPerUS)
	default:
		total := uint32(clock.TickHz() / spec.FrequencyHz)
		d = total - a - b - c
	}

	return DelaySet{
		A: correctOverhead(a),
		B: correctOverhead(b),
		C: correctOverhead(c),
		D: correctOverhead(d),
	}
}

func correctOverhead(raw uint32) uint32 {
	if raw > PhaseOverheadCycles {
		return raw - PhaseOverheadCycles
	}
	return 0
}

// Engine is the capability surface of the hardware unit that executes the
// four-phase program. Once enabled and fed in A, B, C, D order it drives
// pin0 high for A+4 ticks, pin1 high for B+4, pin2 high for C+4, then all
// pins idle for D+4, repeating.
type Engine interface {
	Enable()
	Disable()
	// PushBlocking enqueues one loop count, spinning until the engine's
	// input FIFO has room. There is no timeout: if the engine stops
	// draining, the caller hangs.
	PushBlocking(v uint32)
}
