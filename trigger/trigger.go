// Package trigger gates pulse emission behind a physical button. A session
// is armed by a debounced press, emits for a fixed duration, and cannot be
// re-armed until the button is seen released.
package trigger

import (
	"time"

	"github.com/calvinmclean/quadpulse"
	"github.com/calvinmclean/quadpulse/feed"
)

// State is the trigger controller's position in its session cycle.
type State int

const (
	StateIdle State = iota
	StateArmed
	StateEmitting
	StateCooldown
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateArmed:
		return "Armed"
	case StateEmitting:
		return "Emitting"
	case StateCooldown:
		return "Cooldown"
	default:
		return "Unknown"
	}
}

// Button reads the physical trigger input. Pressed must report the logical
// state, with any active-low wiring already accounted for.
type Button interface {
	Pressed() bool
}

// Controller owns the trigger state machine. It runs on the same thread as
// the feeder: while a session is emitting, the controller is inside the
// feeder loop and polls nothing else.
type Controller struct {
	Engine quadpulse.Engine
	Feeder feed.Feeder
	Button Button

	// SessionDuration is how long each emission session lasts. The actual
	// emission can overrun by up to one quadruple (see feed.Feeder.RunFor).
	SessionDuration time.Duration

	// Debounce is the minimum time the button must read pressed before a
	// session arms. Zero arms on the first pressed reading.
	Debounce time.Duration

	// Yield is called between button polls so the spin loops don't burn a
	// host CPU. Optional.
	Yield func()

	// Now reports wall-clock time. Defaults to time.Now.
	Now func() time.Time

	// OnTransition, when set, observes every state change.
	OnTransition func(State)

	state State
}

// State returns the controller's current state.
func (c *Controller) State() State {
	return c.state
}

// Run cycles the state machine forever. It never returns.
func (c *Controller) Run() {
	for {
		c.RunSession()
	}
}

// RunSession blocks through one full session cycle: wait for a debounced
// press, emit for SessionDuration, then wait for the button release. The
// engine is enabled only while the feeder loop is active.
func (c *Controller) RunSession() {
	c.waitPressed()
	c.transition(StateArmed)

	c.transition(StateEmitting)
	c.Engine.Enable()
	c.Feeder.RunFor(c.SessionDuration)
	c.Engine.Disable()

	c.transition(StateCooldown)
	c.waitReleased()
	c.transition(StateIdle)
}

// waitPressed polls until the button has read pressed continuously for the
// configured debounce time. A release during the stable window restarts it.
func (c *Controller) waitPressed() {
	var pressedAt time.Time
	for {
		if c.Button.Pressed() {
			if pressedAt.IsZero() {
				pressedAt = c.now()
			}
			if c.now().Sub(pressedAt) >= c.Debounce {
				return
			}
		} else {
			pressedAt = time.Time{}
		}
		c.yield()
	}
}

func (c *Controller) waitReleased() {
	for c.Button.Pressed() {
		c.yield()
	}
}

func (c *Controller) transition(s State) {
	c.state = s
	if c.OnTransition != nil {
		c.OnTransition(s)
	}
}

func (c *Controller) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Controller) yield() {
	if c.Yield != nil {
		c.Yield()
	}
}
