package debugger

import "github.com/intuitionamiga/m68kdbg/internal/m68k"

// ReadWord returns the word at addr in the target's memory, the read half
// of the code-patch primitive every breakpoint operation is built on.
func ReadWord(cpu *m68k.CPU, addr uint32) (uint16, error) {
	if int(addr)+m68k.WordSize > len(cpu.Memory) {
		return 0, &AddressError{Addr: addr}
	}
	return cpu.Read16(addr), nil
}

// WriteWord overwrites the word at addr, after giving the platform-specific
// hook a chance to make the page writable. On unix (patch_unix.go) the hook
// calls mprotect on the host page holding addr; elsewhere (patch_other.go)
// it does nothing. Returns ErrInvalidAddress outside the target's memory
// bounds rather than silently discarding the write.
func WriteWord(cpu *m68k.CPU, addr uint32, value uint16) error {
	if int(addr)+m68k.WordSize > len(cpu.Memory) {
		return &AddressError{Addr: addr}
	}
	withWritableCodePage(cpu, addr, func() {
		cpu.Write16(addr, value)
	})
	return nil
}

// patchWrite is the internal breakpoint-table helper built on WriteWord for
// call sites that already know addr is in range (every caller validates
// bounds itself via BreakpointTable.Set or a previously accepted address).
func patchWrite(cpu *m68k.CPU, addr uint32, opcode uint16) {
	_ = WriteWord(cpu, addr, opcode)
}
