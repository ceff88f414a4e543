package m68k

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

// CPU is a single M68000 register file plus a flat, shared memory space.
// It runs in its own goroutine (see the debugger's target controller) and
// is never accessed concurrently from more than one goroutine at a time —
// the cooperative model this engine simulates guarantees the debugger and
// the target never run simultaneously.
type CPU struct {
	D [8]uint32
	A [7]uint32 // A0-A6; A7 is the live stack pointer, held in SP below.

	SP  uint32 // the address register instructions see as A7
	USP uint32 // shadow user stack pointer, valid while SR.S is set
	SSP uint32 // shadow supervisor stack pointer, valid while SR.S is clear

	PC uint32
	SR uint16

	Memory []byte

	running     atomic.Bool
	inException atomic.Bool

	// OnException is invoked synchronously, in the calling goroutine, for
	// every processor exception, with the PC/SR as they stood immediately
	// before exception entry. The debugger installs its dispatcher here
	// once per target; it stands in for "jump to the vector's handler" —
	// see the stub-execution-model decision in DESIGN.md.
	OnException func(vector uint8, savedPC uint32, savedSR uint16)
}

// NewCPU allocates a CPU with the given flat memory size.
func NewCPU(memSize uint32) *CPU {
	return &CPU{Memory: make([]byte, memSize)}
}

// Reset clears registers and puts the CPU in supervisor mode with
// interrupts masked, mirroring the state after a real reset exception.
func (c *CPU) Reset(initialSSP, initialPC uint32) {
	c.D = [8]uint32{}
	c.A = [7]uint32{}
	c.SSP = initialSSP
	c.USP = 0
	c.SP = initialSSP
	c.PC = initialPC
	c.SR = SRSupervisor | SRIPLMask
	c.running.Store(true)
}

func (c *CPU) Running() bool { return c.running.Load() }
func (c *CPU) Halt()         { c.running.Store(false) }

// MemoryBase exposes the address of the backing slice's first byte so the
// debugger's code-patch primitive can toggle page protection around a
// breakpoint write on platforms that support it.
func (c *CPU) MemoryBase() uintptr {
	if len(c.Memory) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&c.Memory[0]))
}

// Supervisor reports whether the CPU is currently in supervisor mode.
func (c *CPU) Supervisor() bool { return c.SR&SRSupervisor != 0 }

// swapStacksForMode swaps the live SP into the appropriate shadow register
// when the mode given by toSupervisor differs from the CPU's current mode.
// Called on every exception entry and on restore.
func (c *CPU) swapStacksForMode(toSupervisor bool) {
	wasSupervisor := c.Supervisor()
	if toSupervisor == wasSupervisor {
		return
	}
	if toSupervisor {
		c.USP = c.SP
		c.SP = c.SSP
	} else {
		c.SSP = c.SP
		c.SP = c.USP
	}
}

func (c *CPU) checkBounds(addr uint32, n int) error {
	if int(addr)+n > len(c.Memory) {
		return fmt.Errorf("m68k: address %#x out of range (memory size %#x)", addr, len(c.Memory))
	}
	return nil
}

func (c *CPU) Read8(addr uint32) uint8 {
	if c.checkBounds(addr, 1) != nil {
		return 0
	}
	return c.Memory[addr]
}

func (c *CPU) Read16(addr uint32) uint16 {
	if c.checkBounds(addr, 2) != nil {
		return 0
	}
	return uint16(c.Memory[addr])<<8 | uint16(c.Memory[addr+1])
}

func (c *CPU) Read32(addr uint32) uint32 {
	if c.checkBounds(addr, 4) != nil {
		return 0
	}
	return uint32(c.Memory[addr])<<24 | uint32(c.Memory[addr+1])<<16 |
		uint32(c.Memory[addr+2])<<8 | uint32(c.Memory[addr+3])
}

func (c *CPU) Write8(addr uint32, v uint8) {
	if c.checkBounds(addr, 1) != nil {
		return
	}
	c.Memory[addr] = v
}

func (c *CPU) Write16(addr uint32, v uint16) {
	if c.checkBounds(addr, 2) != nil {
		return
	}
	c.Memory[addr] = byte(v >> 8)
	c.Memory[addr+1] = byte(v)
}

func (c *CPU) Write32(addr uint32, v uint32) {
	if c.checkBounds(addr, 4) != nil {
		return
	}
	c.Memory[addr] = byte(v >> 24)
	c.Memory[addr+1] = byte(v >> 16)
	c.Memory[addr+2] = byte(v >> 8)
	c.Memory[addr+3] = byte(v)
}

func (c *CPU) Fetch16() uint16 {
	v := c.Read16(c.PC)
	c.PC += WordSize
	return v
}

func (c *CPU) Fetch32() uint32 {
	v := c.Read32(c.PC)
	c.PC += LongSize
	return v
}

func (c *CPU) Push16(v uint16) {
	c.SP -= WordSize
	c.Write16(c.SP, v)
}

func (c *CPU) Push32(v uint32) {
	c.SP -= LongSize
	c.Write32(c.SP, v)
}

func (c *CPU) Pop16() uint16 {
	v := c.Read16(c.SP)
	c.SP += WordSize
	return v
}

func (c *CPU) Pop32() uint32 {
	v := c.Read32(c.SP)
	c.SP += LongSize
	return v
}

// LoadCode copies code into memory starting at entry, leaving PC untouched.
func (c *CPU) LoadCode(entry uint32, code []byte) error {
	if err := c.checkBounds(entry, len(code)); err != nil {
		return err
	}
	copy(c.Memory[entry:], code)
	return nil
}

func (c *CPU) setCCR(mask, value uint16) {
	c.SR = (c.SR &^ mask) | (value & mask)
}

func ccrFromResult(result uint32, size int, carry, overflow bool) uint16 {
	var sr uint16
	var neg, zero bool
	switch size {
	case 1:
		neg = result&0x80 != 0
		zero = uint8(result) == 0
	case 2:
		neg = result&0x8000 != 0
		zero = uint16(result) == 0
	default:
		neg = result&0x80000000 != 0
		zero = result == 0
	}
	if neg {
		sr |= SRNegative
	}
	if zero {
		sr |= SRZero
	}
	if carry {
		sr |= SRCarry | SRExtend
	}
	if overflow {
		sr |= SROverflow
	}
	return sr
}
