package debugger

// TargetInfo is the response shape for the get_target_info operation: the
// current state, the last captured register snapshot, the raw bytes of
// the next instruction to execute (disassembly is left to an external,
// third-party opcode table), the installed breakpoints, and the bounded
// backstep history.
type TargetInfo struct {
	State                TargetState
	Context              TaskContext
	NextInstructionBytes [8]byte
	Entry                uint32
	Breakpoints          []Breakpoint
	History              []HistoryEntry
}

// GetTargetInfo snapshots everything a front end typically needs to render
// after a stop.
func (d *Debugger) GetTargetInfo() (TargetInfo, error) {
	if d.target == nil {
		return TargetInfo{}, ErrNoImageLoaded
	}
	t := d.target
	ctx := t.LastContext()
	info := TargetInfo{
		State:       t.State(),
		Context:     ctx,
		Entry:       t.Entry,
		Breakpoints: t.Breakpoints.List(),
		History:     t.History(),
	}
	for i := range info.NextInstructionBytes {
		info.NextInstructionBytes[i] = t.CPU.Read8(ctx.PC + uint32(i))
	}
	return info, nil
}

// SetBreakpoint installs a (optionally conditional, optionally one-shot)
// breakpoint at offset bytes from the target's entry point, and returns the
// installed breakpoint; its Number is the handle ClearBreakpoint takes.
func (d *Debugger) SetBreakpoint(offset uint32, oneShot bool, conditions ...Condition) (*Breakpoint, error) {
	if d.target == nil {
		return nil, ErrNoImageLoaded
	}
	addr := d.target.Entry + offset
	return d.target.Breakpoints.Set(d.target.CPU, addr, oneShot, conditions...)
}

// ClearBreakpoint removes the breakpoint identified by number, restoring
// the original opcode at its address.
func (d *Debugger) ClearBreakpoint(number int) error {
	if d.target == nil {
		return ErrNoImageLoaded
	}
	return d.target.Breakpoints.Clear(d.target.CPU, number)
}

// SetContinueMode arms the target to run freely on the next resume. It also
// takes effect immediately if called before the target has started, so a
// front end can choose the initial mode before the first instruction runs.
func (d *Debugger) SetContinueMode() error {
	if d.target == nil {
		return ErrNoImageLoaded
	}
	d.target.SetMode(ModeContinue)
	applyRunMode(d.target.CPU, ModeContinue)
	return nil
}

// SetSingleStepMode arms the target to execute exactly one instruction
// before stopping again, whether that resume is the target's very first
// instruction or a resume from an earlier stop.
func (d *Debugger) SetSingleStepMode() error {
	if d.target == nil {
		return ErrNoImageLoaded
	}
	d.target.SetMode(ModeSingleStep)
	applyRunMode(d.target.CPU, ModeSingleStep)
	return nil
}

// Resume grants the target permission to continue after a stop. It must
// only be called while the target is actually stopped (i.e. from within or
// after the front end callback for a stop event); calling it at any other
// time blocks until the target stops again.
func (d *Debugger) Resume() error {
	if d.target == nil {
		return ErrTargetNotRunning
	}
	select {
	case d.target.resumeCh <- struct{}{}:
		return nil
	case <-d.target.doneCh:
		return ErrTargetNotRunning
	}
}

// Kill tears the target down unconditionally: it will not resume even if
// currently stopped.
func (d *Debugger) Kill() error {
	if d.target == nil {
		return ErrTargetNotRunning
	}
	if d.cancel != nil {
		d.cancel()
	}
	d.target.requestKill()
	return nil
}

// Backtrace returns up to depth consecutive 4-byte stack slots read from the
// current stack pointer upward (see the package-level Backtrace).
func (d *Debugger) Backtrace(depth int) ([]uint32, error) {
	if d.target == nil {
		return nil, ErrNoImageLoaded
	}
	return Backtrace(d.target.CPU, depth), nil
}

// ReadMemory copies n bytes starting at addr out of the target's address
// space.
func (d *Debugger) ReadMemory(addr uint32, n int) ([]byte, error) {
	if d.target == nil {
		return nil, ErrNoImageLoaded
	}
	if int(addr)+n > len(d.target.CPU.Memory) {
		return nil, &AddressError{Addr: addr}
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = d.target.CPU.Read8(addr + uint32(i))
	}
	return out, nil
}

// WriteMemory writes data into the target's address space starting at
// addr. Used for patching test fixtures and for front ends that support
// editing memory directly.
func (d *Debugger) WriteMemory(addr uint32, data []byte) error {
	if d.target == nil {
		return ErrNoImageLoaded
	}
	if int(addr)+len(data) > len(d.target.CPU.Memory) {
		return &AddressError{Addr: addr}
	}
	for i, b := range data {
		d.target.CPU.Write8(addr+uint32(i), b)
	}
	return nil
}

