package debugger

import "github.com/intuitionamiga/m68kdbg/internal/m68k"

// RunMode selects what happens the next time the target is resumed.
type RunMode int

const (
	ModeContinue RunMode = iota
	ModeSingleStep
)

// applyRunMode sets or clears the CPU's trace bits to match mode, used when
// arming the target before a resume. Single-step mode also raises the
// interrupt mask to level 7 (T1 | IPL = 0x8700); continue mode clears the
// trace bits and leaves the mask alone.
func applyRunMode(cpu *m68k.CPU, mode RunMode) {
	switch mode {
	case ModeSingleStep:
		cpu.SR |= m68k.SRTrace1 | m68k.SRIPLMask
	default:
		cpu.SR &^= m68k.SRTraceMask
	}
}
