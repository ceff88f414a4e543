package debugger

import (
	"sync"

	"github.com/intuitionamiga/m68kdbg/internal/m68k"
)

// HistoryEntry is one bounded backstep record: just enough to show where
// the target has recently been, not a full memory snapshot. Simplified
// from debug_snapshot.go's full-state snapshot ring, since the core only
// needs PC/SR deltas for a backtrace-adjacent view, not replay.
type HistoryEntry struct {
	PC    uint32
	SR    uint16
	Cause string
}

const historyLimit = 64

// TargetRecord is the debugger's live view of one running target: the CPU
// it drives, the breakpoint table patched into its memory, the rendezvous
// channels the stop handler and controller use to hand control back and
// forth, and the bounded state a front end reads after every stop.
type TargetRecord struct {
	CPU         *m68k.CPU
	Breakpoints *BreakpointTable

	// Entry and sspTop are the image's entry point and initial supervisor
	// stack, kept so Start can re-reset the CPU to a clean boot state on a
	// restart rather than only on the very first run.
	Entry  uint32
	sspTop uint32

	mu      sync.Mutex
	state   TargetState
	mode    RunMode
	history []HistoryEntry
	lastCtx TaskContext

	// active is the single breakpoint currently uncovered (original opcode
	// restored) while its owning instruction executes once more before
	// being re-armed. The spec's design notes describe this as a weak
	// reference: at most one is outstanding at a time, because the
	// cooperative model guarantees the debugger and target never run
	// concurrently, and it is cleared the instant the step completes.
	active     *Breakpoint
	activeAddr uint32

	// pendingRestore carries the register state the restore trap should
	// reinstate; set just before triggering it, consumed by handleRestore.
	pendingRestore *TaskContext

	stopCh     chan StopEvent
	resumeCh   chan struct{}
	doneCh     chan struct{}
	loopExited chan struct{} // closed by runLoop itself, once it has actually returned

	killed    bool
	started   bool
	closeOnce sync.Once
}

func newTargetRecord(cpu *m68k.CPU, entry, sspTop uint32) *TargetRecord {
	t := &TargetRecord{
		CPU:         cpu,
		Breakpoints: NewBreakpointTable(),
		Entry:       entry,
		sspTop:      sspTop,
		state:       StateIdle,
		mode:        ModeContinue,
	}
	t.resetRendezvous()
	return t
}

// resetRendezvous opens a fresh set of stop/resume channels and clears the
// run-scoped bookkeeping (history, active breakpoint, kill flag). Called
// once at construction and again by Start every time the target restarts,
// since the previous run's stopCh/doneCh are left closed by runLoop/Kill.
func (t *TargetRecord) resetRendezvous() {
	t.mu.Lock()
	t.history = nil
	t.lastCtx = TaskContext{}
	t.active = nil
	t.activeAddr = 0
	t.pendingRestore = nil
	t.killed = false
	t.mu.Unlock()

	t.stopCh = make(chan StopEvent)
	t.resumeCh = make(chan struct{})
	t.doneCh = make(chan struct{})
	t.loopExited = make(chan struct{})
	t.closeOnce = sync.Once{}
}

// hasStarted reports whether a previous Start call has ever bootstrapped
// this target's run loop.
func (t *TargetRecord) hasStarted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.started
}

func (t *TargetRecord) markStarted() {
	t.mu.Lock()
	t.started = true
	t.mu.Unlock()
}

func (t *TargetRecord) State() TargetState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *TargetRecord) setState(s TargetState) {
	t.mu.Lock()
	t.state = s
	t.mu.Unlock()
}

func (t *TargetRecord) LastContext() TaskContext {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastCtx
}

func (t *TargetRecord) recordHistory(e HistoryEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.history = append(t.history, e)
	if len(t.history) > historyLimit {
		t.history = t.history[len(t.history)-historyLimit:]
	}
}

// History returns the bounded backstep ring, oldest first.
func (t *TargetRecord) History() []HistoryEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]HistoryEntry, len(t.history))
	copy(out, t.history)
	return out
}

func (t *TargetRecord) Mode() RunMode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

func (t *TargetRecord) SetMode(m RunMode) {
	t.mu.Lock()
	t.mode = m
	t.mu.Unlock()
}

// StopEvents exposes the channel a front end reads to learn the target has
// stopped; one value arrives per stop.
func (t *TargetRecord) StopEvents() <-chan StopEvent { return t.stopCh }

// requestKill marks the target for teardown and unblocks it if it is
// currently parked waiting for a resume.
func (t *TargetRecord) requestKill() {
	t.mu.Lock()
	t.killed = true
	t.mu.Unlock()
	t.closeOnce.Do(func() { close(t.doneCh) })
	t.CPU.Halt()
}

func (t *TargetRecord) isKilled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.killed
}
