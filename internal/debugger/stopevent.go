package debugger

// StopEvent is delivered over the target's stop channel every time the
// target halts, carrying the register snapshot and why it stopped. Modeled
// on coprocessor_manager.go's worker-to-manager result struct.
type StopEvent struct {
	Context TaskContext
	State   TargetState
	Reason  string

	// BreakpointAddr is set when State includes a breakpoint-stop flag.
	BreakpointAddr uint32
	HitCount       uint64
}
