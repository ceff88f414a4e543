package debugger

import "github.com/intuitionamiga/m68kdbg/internal/m68k"

// Backtrace reads the target's stack upward from the current A7, returning
// up to depth consecutive 4-byte, big-endian stack slots, most recent first.
// Every slot is reported as it is; no attempt is made to tell return
// addresses from other stacked data. Grounded on debug_backtrace.go's
// backtraceM68K.
func Backtrace(cpu *m68k.CPU, depth int) []uint32 {
	sp := cpu.SP
	result := make([]uint32, 0, depth)
	for range depth {
		if int(sp)+4 > len(cpu.Memory) {
			break
		}
		result = append(result, cpu.Read32(sp))
		sp += 4
	}
	return result
}
