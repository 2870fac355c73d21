//go:build rp2040

package device

import (
	"machine"
	"time"
)

// Config selects the engine's output binding and clock.
type Config struct {
	// BasePin is the first of the four consecutive output pins.
	BasePin machine.Pin
	// Divider scales the system clock down to the engine tick.
	Divider float64
}

// TriggerConfig has the gated variant's button wiring and session timing.
type TriggerConfig struct {
	// Button is wired active-low with the internal pull-up enabled.
	Button machine.Pin
	// SessionDuration is how long each emission session runs.
	SessionDuration time.Duration
	// Debounce is the minimum stable press time before a session arms.
	Debounce time.Duration
}
