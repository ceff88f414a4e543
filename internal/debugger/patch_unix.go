//go:build unix

package debugger

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/intuitionamiga/m68kdbg/internal/m68k"
)

// withWritableCodePage marks the host page holding addr readable, writable
// and executable before a code patch on platforms that expose mprotect; the
// previous protection is not put back afterwards. This target's memory is an ordinary Go
// heap allocation rather than a separately mapped page, so the mprotect
// call is best-effort: a platform that refuses to reprotect a heap page
// still lets the write through. Grounded on the pack's ptrace/debug-register
// approach to toggling protection around a breakpoint write, adapted to
// mprotect since this target has no separate OS process to ptrace.
func withWritableCodePage(cpu *m68k.CPU, addr uint32, write func()) {
	base := cpu.MemoryBase()
	if base == 0 {
		write()
		return
	}
	pageSize := uintptr(unix.Getpagesize())
	pageStart := (base + uintptr(addr)) &^ (pageSize - 1)
	page := unsafe.Slice((*byte)(unsafe.Pointer(pageStart)), pageSize)

	_ = unix.Mprotect(page, unix.PROT_READ|unix.PROT_WRITE|unix.PROT_EXEC)
	write()
}
