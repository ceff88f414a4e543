package debugger

import (
	"unsafe"

	"github.com/intuitionamiga/m68kdbg/internal/m68k"
)

// TaskContext is the fixed-layout register snapshot captured whenever the
// target stops: user stack pointer, the exception vector that caused the
// stop, status register, program counter, and the full data/address
// register file. Field order matches the spec's task-context-record
// layout (USP, exception vector, SR, PC, D0-D7, A0-A6).
type TaskContext struct {
	USP       uint32
	ExcVector uint8
	SR        uint16
	PC        uint32
	D         [8]uint32
	A         [7]uint32
}

// Offset* constants document the byte layout of TaskContext as an ABI: the
// simulated supervisor stub addresses a stopped target's saved registers by
// these literal offsets, the same way a real 68k monitor's trap handler
// would index into a fixed task-context record.
const (
	OffsetUSP       = unsafe.Offsetof(TaskContext{}.USP)
	OffsetExcVector = unsafe.Offsetof(TaskContext{}.ExcVector)
	OffsetSR        = unsafe.Offsetof(TaskContext{}.SR)
	OffsetPC        = unsafe.Offsetof(TaskContext{}.PC)

	offsetD = unsafe.Offsetof(TaskContext{}.D)
	offsetA = unsafe.Offsetof(TaskContext{}.A)

	OffsetD0 = offsetD + 0*4
	OffsetD1 = offsetD + 1*4
	OffsetD2 = offsetD + 2*4
	OffsetD3 = offsetD + 3*4
	OffsetD4 = offsetD + 4*4
	OffsetD5 = offsetD + 5*4
	OffsetD6 = offsetD + 6*4
	OffsetD7 = offsetD + 7*4

	OffsetA0 = offsetA + 0*4
	OffsetA1 = offsetA + 1*4
	OffsetA2 = offsetA + 2*4
	OffsetA3 = offsetA + 3*4
	OffsetA4 = offsetA + 4*4
	OffsetA5 = offsetA + 5*4
	OffsetA6 = offsetA + 6*4
)

// captureContext snapshots the CPU's visible register state. pc/sr are
// passed explicitly because by the time the exception hook runs, the CPU's
// live SR/PC have already been overwritten by exception entry.
func captureContext(cpu *m68k.CPU, vector uint8, pc uint32, sr uint16) TaskContext {
	return TaskContext{
		USP:       cpu.USP,
		ExcVector: vector,
		SR:        sr,
		PC:        pc,
		D:         cpu.D,
		A:         cpu.A,
	}
}

// applyRegisters writes a TaskContext's general-purpose registers back onto
// the CPU. PC/SR are restored separately via cpu.Restore, which also
// performs the supervisor/user stack swap.
func (ctx TaskContext) applyRegisters(cpu *m68k.CPU) {
	cpu.D = ctx.D
	cpu.A = ctx.A
	cpu.USP = ctx.USP
}

// Register looks a register up by the spec's naming convention: D0-D7,
// A0-A6, A7 (alias for the saved USP), PC, SR, USP.
func (ctx TaskContext) Register(name string) (uint32, bool) {
	switch name {
	case "PC":
		return ctx.PC, true
	case "SR":
		return uint32(ctx.SR), true
	case "USP":
		return ctx.USP, true
	}
	if len(name) == 2 {
		idx := int(name[1] - '0')
		if idx < 0 || idx > 7 {
			return 0, false
		}
		switch name[0] {
		case 'D':
			return ctx.D[idx], true
		case 'A':
			if idx == 7 {
				return ctx.USP, true
			}
			return ctx.A[idx], true
		}
	}
	return 0, false
}
