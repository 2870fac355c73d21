//go:build rp2040

// Package pioengine binds the four-phase program to a PIO state machine.
// It is the hardware implementation of quadpulse.Engine: once enabled and
// fed loop counts in phase order, the state machine times the output
// transitions on its own clock with no further CPU involvement.
package pioengine

import (
	"machine"
	"runtime"

	pio "github.com/tinygo-org/pio/rp2-pio"

	"github.com/calvinmclean/quadpulse"
)

// pinCount is the width of the output channel group.
const pinCount = 4

// Config selects the output pins and the state machine clock divider.
type Config struct {
	// BasePin is the first of pinCount consecutive output pins.
	BasePin machine.Pin
	// Divider scales the system clock down to the engine tick. Fractional
	// values use the state machine's /256 fractional divider.
	Divider float64
}

// Engine drives a claimed PIO state machine. It is owned by the process
// for its whole lifetime and never released.
type Engine struct {
	sm     pio.StateMachine
	offset uint8
}

var _ quadpulse.Engine = (*Engine)(nil)

// New loads the four-phase program and configures sm to run it on
// pinCount consecutive pins from cfg.BasePin. The state machine is claimed
// here; it starts disabled.
func New(sm pio.StateMachine, cfg Config) (*Engine, error) {
	sm.Claim() // SM should be claimed beforehand, we just guarantee it's claimed.

	Pio := sm.PIO()
	offset, err := Pio.AddProgram(programInstructions, programOrigin)
	if err != nil {
		return nil, err
	}

	pinCfg := machine.PinConfig{Mode: Pio.PinMode()}
	for pin := cfg.BasePin; pin < cfg.BasePin+pinCount; pin++ {
		pin.Configure(pinCfg)
	}
	sm.SetPindirsConsecutive(cfg.BasePin, pinCount, true)

	smCfg := pio.DefaultStateMachineConfig()
	smCfg.SetSetPins(cfg.BasePin, pinCount)
	smCfg.SetWrap(offset, offset+uint8(len(programInstructions))-1)

	whole, frac := splitClkDiv(cfg.Divider)
	smCfg.SetClkDivIntFrac(whole, frac)

	sm.Init(offset, smCfg)

	return &Engine{sm: sm, offset: offset}, nil
}

// Enable starts program execution.
func (e *Engine) Enable() {
	e.sm.SetEnabled(true)
}

// Disable stops program execution. Values already queued in the TX FIFO
// are kept and consumed when the engine is next enabled.
func (e *Engine) Disable() {
	e.sm.SetEnabled(false)
}

// PushBlocking spins until the TX FIFO has room, then enqueues v. There is
// no timeout: if the state machine stops draining the FIFO, the caller
// spins forever.
func (e *Engine) PushBlocking(v uint32) {
	for e.sm.IsTxFIFOFull() {
		gosched()
	}
	e.sm.TxPut(v)
}

// splitClkDiv splits a divider into the whole and /256 fractional parts
// the CLKDIV register takes.
func splitClkDiv(div float64) (whole uint16, frac uint8) {
	whole = uint16(div)
	frac = uint8((div - float64(whole)) * 256)
	return whole, frac
}

func gosched() {
	runtime.Gosched()
}
