package m68k

// ProcessException performs the portion of exception entry that is true
// regardless of cause: force supervisor mode (swapping stacks if the CPU
// was in user mode), clear the trace bits so a trap handler doesn't
// immediately re-trap, push a format-0 exception frame, then hand off to
// the installed handler. See DESIGN.md's stub-execution-model decision for
// why the handoff is a Go callback rather than a simulated jump.
func (c *CPU) ProcessException(vector uint8) {
	oldSR := c.SR
	oldPC := c.PC

	c.swapStacksForMode(true)
	c.SR |= SRSupervisor
	c.SR &^= SRTraceMask

	c.pushExceptionFrame(oldPC, oldSR, vector)

	if c.OnException != nil {
		c.inException.Store(true)
		c.OnException(vector, oldPC, oldSR)
		c.inException.Store(false)
	}
}

// pushExceptionFrame writes a minimal format-0 stack frame: return PC
// (long), status register at time of exception (word), and a
// format/vector word. Real 68000 frames vary by exception cause; this
// engine only ever needs format 0 since it never simulates bus/address
// errors with their extended frames.
func (c *CPU) pushExceptionFrame(pc uint32, sr uint16, vector uint8) {
	c.Push32(pc)
	c.Push16(sr)
	c.Push16(uint16(vector) << 2)
}

// popExceptionFrame discards a previously pushed frame without examining
// it, used by the restore trap (see dispatcher.go): the restored PC/SR
// come from the debugger's saved TaskContext, not from this frame.
func (c *CPU) popExceptionFrame() {
	c.Pop16()
	c.Pop16()
	c.Pop32()
}

// Restore reinstates SR and PC saved from a TaskContext, swapping stacks
// back to whatever mode the restored SR specifies, and discards the frame
// the restore trap itself pushed. This is the engine-level half of "rte"
// used by the stop handler's restore path.
func (c *CPU) Restore(sr uint16, pc uint32) {
	c.popExceptionFrame()
	toSupervisor := sr&SRSupervisor != 0
	c.swapStacksForMode(toSupervisor)
	c.SR = sr
	c.PC = pc
}
