package debugger

import "github.com/intuitionamiga/m68kdbg/internal/m68k"

// stopAndResume is the target-side stop handler: it records history,
// blocks until the controller grants a resume (or the target is killed),
// then drives the target back to life via resumeTarget. Grounded on
// debug_monitor.go's stop/continue handling.
func stopAndResume(t *TargetRecord, ctx TaskContext, state TargetState, reason string, resumeAddr uint32, bp *Breakpoint) {
	t.recordHistory(HistoryEntry{PC: ctx.PC, SR: ctx.SR, Cause: reason})

	evt := StopEvent{Context: ctx, State: state, Reason: reason}
	if bp != nil {
		evt.BreakpointAddr = resumeAddr
		evt.HitCount = bp.HitCount
	}

	if !waitForResume(t, evt) {
		return
	}
	resumeTarget(t, ctx, resumeAddr, bp)
}

// waitForResume publishes evt on the target's stop channel and blocks for
// either a resume grant or teardown. Returns false if the target was
// killed while stopped, in which case the caller must not resume it.
func waitForResume(t *TargetRecord, evt StopEvent) bool {
	t.setState(evt.State)
	t.mu.Lock()
	t.lastCtx = evt.Context
	t.mu.Unlock()

	select {
	case t.stopCh <- evt:
	case <-t.doneCh:
		return false
	}

	select {
	case <-t.resumeCh:
	case <-t.doneCh:
		return false
	}

	return !t.isKilled()
}

// resumeTarget drives the target back into motion: if the stop was on a
// breakpoint, the original opcode is uncovered and marked active so the
// instruction it guards can execute once before the trap is re-armed, then
// the restore trap reinstates PC/SR/registers as they stood when the
// breakpoint fired.
func resumeTarget(t *TargetRecord, ctx TaskContext, resumeAddr uint32, bp *Breakpoint) {
	if bp != nil {
		patchWrite(t.CPU, resumeAddr, bp.SavedOpcode)
		t.active = bp
		t.activeAddr = resumeAddr
	}

	pending := ctx
	t.pendingRestore = &pending
	t.CPU.ProcessException(m68k.VecTrapBase + m68k.TrapRestore)

	if t.Mode() == ModeSingleStep {
		applyRunMode(t.CPU, ModeSingleStep)
		return
	}
	applyRunMode(t.CPU, ModeContinue)
	if bp != nil {
		// Step over the uncovered instruction immediately rather than
		// waiting for the outer fetch loop, since that loop won't regain
		// control until this whole call chain unwinds and the opcode at
		// resumeAddr must already be original when it executes.
		t.CPU.Step()
		rearmActive(t)
	}
}
