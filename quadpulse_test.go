package quadpulse

import "testing"

var (
	defaultClock = ClockModel{SysClkHz: 125_000_000, Divider: 12.5}
	defaultSpec  = SignalSpec{FrequencyHz: 1000, PulseWidthUS: 5, PhaseShiftUS: 5}
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		spec     SignalSpec
		clock    ClockModel
		policy   Policy
		expected DelaySet
	}{
		{
			// 10 MHz tick, 1 kHz period = 10,000 cycles. Raw counts
			// 50/50/50/9850 before the 4-cycle overhead correction.
			"DefaultConfigResidual",
			defaultSpec,
			defaultClock,
			PolicyPeriodResidual,
			DelaySet{A: 46, B: 46, C: 46, D: 9846},
		},
		{
			// The legacy formula computes D from the 990us remaining in the
			// period: 9900 raw cycles.
			"DefaultConfigDirect",
			defaultSpec,
			defaultClock,
			PolicyDirect,
			DelaySet{A: 46, B: 46, C: 46, D: 9896},
		},
		{
			// 0.3us at 10 MHz is 3 raw cycles, below the program overhead,
			// so A and C clamp to the engine's minimum phase length.
			"ClampBelowOverhead",
			SignalSpec{FrequencyHz: 1000, PulseWidthUS: 0.3, PhaseShiftUS: 5},
			defaultClock,
			PolicyPeriodResidual,
			DelaySet{A: 0, B: 46, C: 0, D: 9940},
		},
		{
			// Exactly 4 raw cycles still clamps: the correction applies only
			// when raw > overhead.
			"ClampAtOverhead",
			SignalSpec{FrequencyHz: 1000, PulseWidthUS: 0.4, PhaseShiftUS: 5},
			defaultClock,
			PolicyPeriodResidual,
			DelaySet{A: 0, B: 46, C: 0, D: 9938},
		},
		{
			"SlowTick",
			SignalSpec{FrequencyHz: 50, PulseWidthUS: 100, PhaseShiftUS: 200},
			ClockModel{SysClkHz: 125_000_000, Divider: 125},
			PolicyPeriodResidual,
			DelaySet{A: 96, B: 196, C: 96, D: 19596},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Compute(tt.spec, tt.clock, tt.policy)
			if result != tt.expected {
				t.Errorf("expected=%+v, got=%+v", tt.expected, result)
			}
		})
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	first := Compute(defaultSpec, defaultClock, PolicyPeriodResidual)
	for i := 0; i < 100; i++ {
		if result := Compute(defaultSpec, defaultClock, PolicyPeriodResidual); result != first {
			t.Fatalf("call %d diverged: expected=%+v, got=%+v", i, first, result)
		}
	}
}

func TestResidualPolicyConservesPeriod(t *testing.T) {
	specs := []SignalSpec{
		defaultSpec,
		{FrequencyHz: 1000, PulseWidthUS: 7.3, PhaseShiftUS: 2.9},
		{FrequencyHz: 250, PulseWidthUS: 13.7, PhaseShiftUS: 41.1},
		{FrequencyHz: 4000, PulseWidthUS: 11, PhaseShiftUS: 6},
	}

	for _, spec := range specs {
		if err := spec.Validate(defaultClock); err != nil {
			t.Fatalf("spec %+v unexpectedly invalid: %v", spec, err)
		}
		d := Compute(spec, defaultClock, PolicyPeriodResidual)

		// No phase clamps in these specs, so raw = delay + overhead.
		sum := (d.A + PhaseOverheadCycles) + (d.B + PhaseOverheadCycles) +
			(d.C + PhaseOverheadCycles) + (d.D + PhaseOverheadCycles)
		expected := uint32(defaultClock.TickHz() / spec.FrequencyHz)
		if sum != expected {
			t.Errorf("spec %+v: raw cycles sum to %d, expected period of %d", spec, sum, expected)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		spec     SignalSpec
		expected error
	}{
		{"Valid", defaultSpec, nil},
		{"ZeroFrequency", SignalSpec{FrequencyHz: 0, PulseWidthUS: 5, PhaseShiftUS: 5}, ErrFrequency},
		{"NegativeFrequency", SignalSpec{FrequencyHz: -1000, PulseWidthUS: 5, PhaseShiftUS: 5}, ErrFrequency},
		{"PulsesOverflowPeriod", SignalSpec{FrequencyHz: 1000, PulseWidthUS: 400, PhaseShiftUS: 300}, ErrPhaseOverlap},
		{"PulsesFillPeriodExactly", SignalSpec{FrequencyHz: 1000, PulseWidthUS: 400, PhaseShiftUS: 200}, ErrPhaseOverlap},
		{"PulseBelowOverhead", SignalSpec{FrequencyHz: 1000, PulseWidthUS: 0.3, PhaseShiftUS: 5}, ErrNotRepresentable},
		{"ShiftBelowOverhead", SignalSpec{FrequencyHz: 1000, PulseWidthUS: 5, PhaseShiftUS: 0.2}, ErrNotRepresentable},
		{"IdleBelowOverhead", SignalSpec{FrequencyHz: 1000, PulseWidthUS: 499.5, PhaseShiftUS: 0.7}, ErrNotRepresentable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate(defaultClock)
			if err != tt.expected {
				t.Errorf("expected=%v, got=%v", tt.expected, err)
			}

			_, err = New(tt.spec, defaultClock, PolicyPeriodResidual)
			if err != tt.expected {
				t.Errorf("New: expected=%v, got=%v", tt.expected, err)
			}
		})
	}
}
