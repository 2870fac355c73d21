//go:build rp2040

package pioengine

import (
	pio "github.com/tinygo-org/pio/rp2-pio"
)

// phasePins is the pattern driven on the four set-pins during each phase:
// channel 1 high during A, the shifted channel during B, channel 3 during
// C, all idle during D.
var phasePins = [4]uint16{0b0001, 0b0010, 0b0100, 0b0000}

// JMP condition code for `jmp x-- <addr>`: branch while X is nonzero,
// post-decrementing.
const jmpXDecNonZero = 0x2

// programOrigin lets AddProgram place the program anywhere in instruction
// memory; jmp targets are relocated at load.
const programOrigin = -1

// programInstructions is the fixed four-phase program. Each phase is the
// same block with a different pin pattern:
//
//	pull block         ; next loop count -> OSR
//	mov x, osr
//	set pins, P        ; hold the phase's pin pattern
//	loop: jmp x-- loop ; executes x+1 times
//
// A phase therefore occupies value+4 cycles: pull, mov, set, and the final
// fall-through of the jmp. quadpulse.PhaseOverheadCycles must agree.
var programInstructions = assembleProgram()

func assembleProgram() []uint16 {
	instr := make([]uint16, 0, 4*len(phasePins))
	for _, pins := range phasePins {
		loop := uint16(len(instr) + 3)
		instr = append(instr,
			pio.EncodePull(false, true),
			pio.EncodeMov(pio.SrcDestX, pio.SrcDestOSR),
			pio.EncodeSet(pio.SrcDestPins, pins),
			pio.EncodeInstrAndArgs(pio.INSTR_BITS_JMP, jmpXDecNonZero, loop),
		)
	}
	return instr
}
