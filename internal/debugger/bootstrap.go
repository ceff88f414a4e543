package debugger

import "context"

// bootstrapTarget installs the exception dispatcher and starts the
// target's fetch-decode-execute loop in its own goroutine, modeling the
// cooperative sibling-process relationship between debugger and target.
// Grounded on coprocessor_manager.go and coproc_worker_m68k.go's
// worker-goroutine lifecycle (start, stop channel, ack channel).
func bootstrapTarget(ctx context.Context, t *TargetRecord) {
	installDispatcher(t)
	t.setState(StateRunning)
	go runLoop(ctx, t)
}

func runLoop(ctx context.Context, t *TargetRecord) {
	defer close(t.loopExited)
	defer close(t.stopCh)
	for t.CPU.Running() {
		select {
		case <-ctx.Done():
			t.CPU.Halt()
			t.setState(StateKilled)
			return
		default:
		}
		t.CPU.Step()
	}
	if t.isKilled() {
		t.setState(StateKilled)
	} else {
		t.setState(StateExited)
	}
}
