//go:build rp2040

package main

import (
	"machine"
	"time"

	"github.com/calvinmclean/quadpulse"
	"github.com/calvinmclean/quadpulse/firmware/device"
)

func main() {
	// Give the USB console time to enumerate so the boot banner is visible.
	time.Sleep(2 * time.Second)

	spec := quadpulse.SignalSpec{
		FrequencyHz:  1000,
		PulseWidthUS: 5,
		PhaseShiftUS: 5,
	}

	cfg := device.Config{
		BasePin: machine.GP6,
		Divider: 12.5,
	}

	triggerCfg := device.TriggerConfig{
		Button:          machine.GP15,
		SessionDuration: 5 * time.Second,
		Debounce:        20 * time.Millisecond,
	}

	d, err := device.New(spec, cfg)
	if err != nil {
		panic(err)
	}

	d.RunGated(triggerCfg)
}
