package debugger

import "github.com/intuitionamiga/m68kdbg/internal/m68k"

// installDispatcher wires a TargetRecord's exception handling into the
// CPU's single exception seam, installed once by bootstrap. Grounded on
// cpu_m68k.go's exception dispatch combined with debug_cpu_m68k.go's
// breakpoint-hit handling.
func installDispatcher(t *TargetRecord) {
	t.CPU.OnException = func(vector uint8, pc uint32, sr uint16) {
		dispatch(t, vector, pc, sr)
	}
}

func dispatch(t *TargetRecord, vector uint8, pc uint32, sr uint16) {
	switch vector {
	case m68k.VecTrapBase + m68k.TrapRestore:
		handleRestore(t)
	case m68k.VecTrapBase + m68k.TrapBreakpoint:
		handleBreakpointTrap(t, pc, sr)
	case m68k.VecTrace:
		handleTrace(t, pc, sr)
	default:
		handleOtherException(t, vector, pc, sr)
	}
}

func handleBreakpointTrap(t *TargetRecord, pc uint32, sr uint16) {
	addr := pc - m68k.WordSize
	ctx := captureContext(t.CPU, m68k.VecTrapBase+m68k.TrapBreakpoint, addr, sr&^m68k.SRTraceMask)

	bp, hit := t.Breakpoints.RegisterHit(ctx, t.CPU, addr)
	if bp == nil {
		// A TRAP #0 executed at an address the table doesn't know about —
		// stray trap opcode in the loaded image, not one of ours. Report
		// it rather than silently swallowing it.
		stopAndResume(t, ctx, StateStoppedByException, "unregistered breakpoint trap", addr, nil)
		return
	}
	if !hit {
		resumeTarget(t, ctx, addr, bp)
		return
	}

	state, reason := StateStoppedByBreakpoint, "breakpoint"
	if bp.OneShot {
		state, reason = StateStoppedByOneShotBreakpoint, "one-shot breakpoint"
		// A one-shot breakpoint leaves the table on its hit: the original
		// opcode goes back and front ends no longer see it while stopped.
		_ = t.Breakpoints.Clear(t.CPU, bp.Number)
	}
	stopAndResume(t, ctx, state, reason, addr, bp)
}

func handleTrace(t *TargetRecord, pc uint32, sr uint16) {
	rearmActive(t)
	ctx := captureContext(t.CPU, m68k.VecTrace, pc, sr&^m68k.SRTraceMask)
	stopAndResume(t, ctx, StateStoppedBySingleStep, "single step", pc, nil)
}

func handleOtherException(t *TargetRecord, vector uint8, pc uint32, sr uint16) {
	rearmActive(t)
	ctx := captureContext(t.CPU, vector, pc, sr&^m68k.SRTraceMask)
	stopAndResume(t, ctx, StateStoppedByException, exceptionName(vector), pc, nil)
}

// handleRestore is the target side of the restore trap: reload the
// register state saved in pendingRestore and return to it. This always
// runs nested inside whatever exception triggered the stop that is now
// being resumed from, so that exception's frame is discarded here too,
// leaving the stack pointer where it stood when the stop was taken.
func handleRestore(t *TargetRecord) {
	pending := t.pendingRestore
	t.pendingRestore = nil
	if pending == nil {
		return
	}
	// Discard one format-0 frame (format word, SR, PC); Restore discards
	// the other. Both frames are the same size.
	t.CPU.Pop16()
	t.CPU.Pop16()
	t.CPU.Pop32()
	t.CPU.Restore(pending.SR, pending.PC)
	pending.applyRegisters(t.CPU)
}

func rearmActive(t *TargetRecord) {
	if t.active == nil {
		return
	}
	if t.active.OneShot {
		_ = t.Breakpoints.Clear(t.CPU, t.active.Number)
	} else {
		patchWrite(t.CPU, t.activeAddr, m68k.BreakpointOpcode)
	}
	t.active = nil
}

func exceptionName(vector uint8) string {
	switch vector {
	case m68k.VecBusError:
		return "bus error"
	case m68k.VecAddressError:
		return "address error"
	case m68k.VecIllegalInstr:
		return "illegal instruction"
	case m68k.VecZeroDivide:
		return "zero divide"
	case m68k.VecCHK:
		return "CHK"
	case m68k.VecTRAPV:
		return "TRAPV"
	case m68k.VecPrivilege:
		return "privilege violation"
	default:
		return "exception"
	}
}
