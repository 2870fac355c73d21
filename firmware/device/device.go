//go:build rp2040

// Package device wires the signal core to the board: it validates the
// timing spec against the real clock, claims a PIO state machine, and runs
// one of the two operating modes.
package device

import (
	"machine"
	"time"

	pio "github.com/tinygo-org/pio/rp2-pio"

	"github.com/calvinmclean/quadpulse"
	"github.com/calvinmclean/quadpulse/feed"
	"github.com/calvinmclean/quadpulse/firmware/pioengine"
	"github.com/calvinmclean/quadpulse/trigger"
)

// Device binds a delay set, computed once at startup, to a claimed PIO
// state machine.
type Device struct {
	engine *pioengine.Engine
	feeder feed.Feeder

	startTime time.Time
}

// New validates the spec at the actual CPU frequency, claims a state
// machine on PIO0, and computes the delay set. Both failure modes (spec
// not representable, no free state machine or instruction memory) are
// fatal at the caller.
func New(spec quadpulse.SignalSpec, cfg Config) (Device, error) {
	clock := quadpulse.ClockModel{
		SysClkHz: float64(machine.CPUFrequency()),
		Divider:  cfg.Divider,
	}

	delays, err := quadpulse.New(spec, clock, quadpulse.PolicyPeriodResidual)
	if err != nil {
		return Device{}, err
	}

	sm, err := pio.PIO0.ClaimStateMachine()
	if err != nil {
		return Device{}, err
	}

	engine, err := pioengine.New(sm, pioengine.Config{
		BasePin: cfg.BasePin,
		Divider: cfg.Divider,
	})
	if err != nil {
		return Device{}, err
	}

	d := Device{
		engine:    engine,
		feeder:    feed.Feeder{Engine: engine, Delays: delays},
		startTime: time.Now(),
	}

	println(d.ts(), "tick", int64(clock.TickHz()), "Hz")
	println(d.ts(), "delay A:", delays.A, "B:", delays.B, "C:", delays.C, "D:", delays.D)

	return d, nil
}

// Run enables the engine and feeds it forever. It never returns.
func (d Device) Run() {
	println(d.ts(), "emitting continuously")
	d.engine.Enable()
	d.feeder.Run()
}

// RunGated cycles button-armed emission sessions forever. It never
// returns.
func (d Device) RunGated(cfg TriggerConfig) {
	ctl := trigger.Controller{
		Engine:          d.engine,
		Feeder:          d.feeder,
		Button:          newButton(cfg.Button),
		SessionDuration: cfg.SessionDuration,
		Debounce:        cfg.Debounce,
		Yield: func() {
			time.Sleep(time.Millisecond)
		},
	}
	ctl.OnTransition = func(s trigger.State) {
		println(d.ts(), "trigger:", s.String())
	}

	println(d.ts(), "waiting for trigger")
	ctl.Run()
}

// ts returns the uptime timestamp for logging
func (d Device) ts() string {
	return "[" + time.Since(d.startTime).String() + "]"
}
