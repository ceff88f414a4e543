// Package m68k implements the subset of the Motorola 68000 instruction set
// and exception model needed to host the debugger core: register file,
// memory, exception dispatch, and a fetch-decode-execute loop.
package m68k

// Status register bit masks.
const (
	SRCarry    uint16 = 0x0001
	SROverflow uint16 = 0x0002
	SRZero     uint16 = 0x0004
	SRNegative uint16 = 0x0008
	SRExtend   uint16 = 0x0010
	SRCCRMask  uint16 = 0x001F

	SRIPLMask  uint16 = 0x0700
	SRIPLShift        = 8

	SRSupervisor uint16 = 0x2000
	SRTrace0     uint16 = 0x4000
	SRTrace1     uint16 = 0x8000
	SRTraceMask  uint16 = SRTrace0 | SRTrace1
)

// Exception vector numbers (vector * 4 gives the byte offset a real 68000
// would use against VBR; this engine dispatches by vector number directly,
// see exception.go).
const (
	VecReset        uint8 = 1
	VecBusError     uint8 = 2
	VecAddressError uint8 = 3
	VecIllegalInstr uint8 = 4
	VecZeroDivide   uint8 = 5
	VecCHK          uint8 = 6
	VecTRAPV        uint8 = 7
	VecPrivilege    uint8 = 8
	VecTrace        uint8 = 9
	VecLineA        uint8 = 10
	VecLineF        uint8 = 11
	VecFormatError  uint8 = 14
	VecSpurious     uint8 = 24

	// VecTrapBase is the vector for TRAP #0; TRAP #n maps to VecTrapBase+n.
	VecTrapBase uint8 = 32

	// TrapBreakpoint is the TRAP number the debugger uses as the breakpoint
	// opcode (TRAP #0, vector 32). TrapRestore (TRAP #1, vector 33) is the
	// adjacent trap the stop handler issues to return control to the target.
	TrapBreakpoint uint8 = 0
	TrapRestore    uint8 = 1
)

// Fixed-width opcode literals for the supported instruction subset.
const (
	OpcodeNOP     uint16 = 0x4E71
	OpcodeRTS     uint16 = 0x4E75
	OpcodeRTE     uint16 = 0x4E73
	OpcodeILLEGAL uint16 = 0x4AFC

	// OpcodeTrapBase | n is "TRAP #n". OpcodeTrapMask isolates the fixed bits.
	OpcodeTrapBase uint16 = 0x4E40
	OpcodeTrapMask uint16 = 0xFFF0

	OpcodeJMPAbsLong uint16 = 0x4EF9
	OpcodeJSRAbsLong uint16 = 0x4EB9
)

// BreakpointOpcode is the 16-bit value the spec names for the code-patch
// primitive: TRAP #0.
const BreakpointOpcode uint16 = OpcodeTrapBase | uint16(TrapBreakpoint)

const (
	WordSize = 2
	LongSize = 4
)
