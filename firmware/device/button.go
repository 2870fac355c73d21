//go:build rp2040

package device

import "machine"

// pullupButton reads a momentary button wired between the pin and ground,
// using the internal pull-up.
type pullupButton struct {
	pin machine.Pin
}

func newButton(pin machine.Pin) pullupButton {
	pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return pullupButton{pin: pin}
}

// Pressed reports true while the pin reads low.
func (b pullupButton) Pressed() bool {
	return !b.pin.Get()
}
