//go:build !unix

package debugger

import "github.com/intuitionamiga/m68kdbg/internal/m68k"

// withWritableCodePage is a no-op on platforms without mprotect; the write
// always proceeds directly.
func withWritableCodePage(cpu *m68k.CPU, addr uint32, write func()) {
	write()
}
