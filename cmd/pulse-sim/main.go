// pulse-sim exercises the delay calculator and feeder against the software
// engine and prints the resulting phase trace, so timing changes can be
// inspected without flashing a board.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/calvinmclean/quadpulse"
	"github.com/calvinmclean/quadpulse/feed"
	"github.com/calvinmclean/quadpulse/sim"
)

var phaseNames = [4]string{"A", "B", "C", "D"}

func main() {
	var (
		frequency  = flag.Float64("frequency", 1000, "pattern frequency in Hz")
		pulseWidth = flag.Float64("pulse-width", 5, "pulse width in microseconds")
		phaseShift = flag.Float64("phase-shift", 5, "phase shift in microseconds")
		sysClk     = flag.Float64("sys-clk", 125_000_000, "system clock in Hz")
		divider    = flag.Float64("divider", 12.5, "engine clock divider")
		quads      = flag.Int("quads", 3, "number of quadruples to emit")
		policyName = flag.String("policy", "residual", "delay policy: residual or direct")
	)
	flag.Parse()

	var policy quadpulse.Policy
	switch *policyName {
	case "residual":
		policy = quadpulse.PolicyPeriodResidual
	case "direct":
		policy = quadpulse.PolicyDirect
	default:
		fmt.Fprintln(os.Stderr, "unknown policy:", *policyName)
		os.Exit(2)
	}

	spec := quadpulse.SignalSpec{
		FrequencyHz:  *frequency,
		PulseWidthUS: *pulseWidth,
		PhaseShiftUS: *phaseShift,
	}
	clock := quadpulse.ClockModel{SysClkHz: *sysClk, Divider: *divider}

	delays, err := quadpulse.New(spec, clock, policy)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid signal config:", err)
		os.Exit(1)
	}

	fmt.Printf("tick: %.0f Hz (%.4fus/cycle)\n", clock.TickHz(), 1e6/clock.TickHz())
	fmt.Printf("delays: A=%d B=%d C=%d D=%d\n\n", delays.A, delays.B, delays.C, delays.D)

	engine := sim.NewEngine(clock.TickHz())
	engine.Enable()

	feeder := feed.Feeder{Engine: engine, Delays: delays}
	for i := 0; i < *quads; i++ {
		feeder.PushQuad()
	}
	engine.Disable()
	engine.Drain()

	for _, p := range engine.Trace() {
		fmt.Printf("%12.2fus  pins=%04b  %s  %6d ticks (%.2fus)\n",
			engine.TickUS(p.StartTick), p.Pins, phaseNames[p.Index], p.Ticks, engine.TickUS(p.Ticks))
	}
	fmt.Printf("\ntotal: %.2fus over %d quadruples\n", engine.ElapsedUS(), *quads)
}
