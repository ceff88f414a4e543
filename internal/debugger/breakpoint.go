package debugger

import (
	"sync"

	"github.com/intuitionamiga/m68kdbg/internal/m68k"
)

// CompareOp is one of the six comparison operators a conditional
// breakpoint's condition may use. Grounded on debug_conditions.go.
type CompareOp int

const (
	OpEqual CompareOp = iota
	OpNotEqual
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
)

func (op CompareOp) apply(a, b uint32) bool {
	switch op {
	case OpEqual:
		return a == b
	case OpNotEqual:
		return a != b
	case OpLess:
		return a < b
	case OpLessEqual:
		return a <= b
	case OpGreater:
		return a > b
	case OpGreaterEqual:
		return a >= b
	}
	return false
}

// Condition gates a breakpoint on a register or memory value compared
// against a constant, or on the accumulated hit count. Only one of
// Register/MemoryAddr is meaningful per condition.
type Condition struct {
	Register    string // e.g. "D0"; empty if this is a memory or hit-count condition
	MemoryAddr  uint32
	MemorySize  int // 1, 2, or 4 bytes; only used when Register == ""
	UseHitCount bool
	Op          CompareOp
	Value       uint32
}

func (c Condition) evaluate(ctx TaskContext, cpu *m68k.CPU, hitCount uint64) bool {
	var lhs uint32
	switch {
	case c.UseHitCount:
		lhs = uint32(hitCount)
	case c.Register != "":
		v, ok := ctx.Register(c.Register)
		if !ok {
			return false
		}
		lhs = v
	default:
		switch c.MemorySize {
		case 1:
			lhs = uint32(cpu.Read8(c.MemoryAddr))
		case 2:
			lhs = uint32(cpu.Read16(c.MemoryAddr))
		default:
			lhs = cpu.Read32(c.MemoryAddr)
		}
	}
	return c.Op.apply(lhs, c.Value)
}

// Breakpoint is one entry in the patch table: the address patched, the
// opcode word it displaced, and the bookkeeping needed to re-arm it after a
// single step past it. Number is the breakpoint's monotonically assigned,
// never-reused identifier, the handle front ends use to clear or look it
// up. Grounded on debug_cpu_m68k.go's breakpoint map.
type Breakpoint struct {
	Number      int
	Addr        uint32
	SavedOpcode uint16
	Enabled     bool
	OneShot     bool
	HitCount    uint64
	Conditions  []Condition // all must hold (AND) for the stop to be reported
}

// BreakpointTable owns the patch table for one target and serializes all
// access to it; it is consulted from the target's own goroutine (via the
// dispatcher) and mutated from whatever goroutine calls the controller's
// SetBreakpoint/ClearBreakpoint, so it needs its own lock rather than
// relying on the stop/resume rendezvous for exclusion.
type BreakpointTable struct {
	mu         sync.Mutex
	byAddr     map[uint32]*Breakpoint
	byNumber   map[int]*Breakpoint
	nextNumber int
}

func NewBreakpointTable() *BreakpointTable {
	return &BreakpointTable{
		byAddr:   make(map[uint32]*Breakpoint),
		byNumber: make(map[int]*Breakpoint),
	}
}

// Set patches the instruction at addr with the breakpoint opcode, records
// the original word so Clear/restore can put it back, and assigns the next
// number in the monotonic, never-reused sequence starting at 1.
func (t *BreakpointTable) Set(cpu *m68k.CPU, addr uint32, oneShot bool, conditions ...Condition) (*Breakpoint, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.byAddr[addr]; exists {
		return nil, &BreakpointError{Addr: addr, Err: ErrBreakpointExists}
	}
	if int(addr)+2 > len(cpu.Memory) {
		return nil, &AddressError{Addr: addr}
	}
	t.nextNumber++
	bp := &Breakpoint{
		Number:      t.nextNumber,
		Addr:        addr,
		SavedOpcode: cpu.Read16(addr),
		Enabled:     true,
		OneShot:     oneShot,
		Conditions:  conditions,
	}
	patchWrite(cpu, addr, m68k.BreakpointOpcode)
	t.byAddr[addr] = bp
	t.byNumber[bp.Number] = bp
	return bp, nil
}

// Clear restores the original opcode at the breakpoint identified by number
// and removes it from the table.
func (t *BreakpointTable) Clear(cpu *m68k.CPU, number int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	bp, ok := t.byNumber[number]
	if !ok {
		return &BreakpointError{Number: number, Err: ErrBreakpointNotFound}
	}
	patchWrite(cpu, bp.Addr, bp.SavedOpcode)
	delete(t.byAddr, bp.Addr)
	delete(t.byNumber, number)
	return nil
}

// FindByAddress returns the breakpoint installed at addr, if any.
func (t *BreakpointTable) FindByAddress(addr uint32) (*Breakpoint, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	bp, ok := t.byAddr[addr]
	return bp, ok
}

// FindByNumber returns the breakpoint with the given number, if any.
func (t *BreakpointTable) FindByNumber(number int) (*Breakpoint, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	bp, ok := t.byNumber[number]
	return bp, ok
}

// ResetHitCounts zeroes every breakpoint's hit count without disturbing the
// patched opcodes or assigned numbers. Called at the start of each run so a
// restarted target's breakpoints report hits from zero again.
func (t *BreakpointTable) ResetHitCounts() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, bp := range t.byAddr {
		bp.HitCount = 0
	}
}

// List returns a snapshot of all installed breakpoints.
func (t *BreakpointTable) List() []Breakpoint {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Breakpoint, 0, len(t.byAddr))
	for _, bp := range t.byAddr {
		out = append(out, *bp)
	}
	return out
}

// RegisterHit increments a breakpoint's hit count and reports whether every
// attached condition currently holds (an unconditional breakpoint always
// reports true).
func (t *BreakpointTable) RegisterHit(ctx TaskContext, cpu *m68k.CPU, addr uint32) (*Breakpoint, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	bp, ok := t.byAddr[addr]
	if !ok {
		return nil, false
	}
	bp.HitCount++
	for _, cond := range bp.Conditions {
		if !cond.evaluate(ctx, cpu, bp.HitCount) {
			return bp, false
		}
	}
	return bp, true
}
