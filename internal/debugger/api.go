package debugger

import (
	"context"
	"log/slog"

	"github.com/intuitionamiga/m68kdbg/internal/m68k"
)

// Debugger is the top-level facade gluing the CPU, the breakpoint table,
// the exception dispatcher, and the bootstrap goroutine together, and
// driving a front end's callback loop. Grounded on debug_interface.go's
// top-level facade.
type Debugger struct {
	target   *TargetRecord
	frontEnd FrontEnd
	cancel   context.CancelFunc
	log      *slog.Logger
}

// NewDebugger constructs a Debugger with no target loaded yet.
func NewDebugger(log *slog.Logger) *Debugger {
	if log == nil {
		log = slog.Default()
	}
	return &Debugger{log: log}
}

// SetFrontEnd installs the adapter invoked after every target stop.
func (d *Debugger) SetFrontEnd(fe FrontEnd) { d.frontEnd = fe }

// Load parses an image and installs it into a fresh CPU, but does not start
// the target running — breakpoints set between Load and Start are in place
// before the target executes a single instruction. Call Start to begin
// execution and Run to drive the front-end dispatch loop.
func (d *Debugger) Load(raw []byte, memSize, supervisorStackTop uint32) error {
	if d.target != nil {
		return ErrTargetAlreadyLoaded
	}
	img, err := ParseImage(raw)
	if err != nil {
		return err
	}
	cpu := m68k.NewCPU(memSize)
	if err := img.LoadInto(cpu, supervisorStackTop); err != nil {
		return err
	}
	d.target = newTargetRecord(cpu, img.Entry, supervisorStackTop)
	d.log.Info("target loaded", "entry", img.Entry, "segments", len(img.Segments))
	return nil
}

// Start boots the target's run loop in its own goroutine. This is the
// spec's "run" operation, kept separate from Load so breakpoints can be
// installed against a quiescent image first. Calling it again after the
// target has stopped running restarts it: registers reset to the entry
// point, breakpoint hit counts reset to zero, patched opcodes and
// breakpoint numbers untouched.
func (d *Debugger) Start() error {
	if d.target == nil {
		return ErrNoImageLoaded
	}
	t := d.target
	if t.hasStarted() {
		if t.CPU.Running() {
			return ErrTargetStillRunning
		}
		<-t.loopExited // previous run loop goroutine has fully returned
	}

	t.Breakpoints.ResetHitCounts()
	t.CPU.Reset(t.sspTop, t.Entry)
	applyRunMode(t.CPU, t.Mode()) // Reset cleared any trace bit the selected mode set
	t.resetRendezvous()
	t.markStarted()

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	bootstrapTarget(ctx, t)
	return nil
}

// Run drains stop events and invokes the installed front end for each,
// until the target exits, is killed, or the front end returns an error.
func (d *Debugger) Run() error {
	if d.target == nil {
		return ErrNoImageLoaded
	}
	if d.frontEnd == nil {
		return ErrFrontEndRequired
	}
	for evt := range d.target.StopEvents() {
		d.log.Debug("target stopped", "state", evt.State.String(), "reason", evt.Reason, "pc", evt.Context.PC)
		if err := d.frontEnd(d.target); err != nil {
			d.Kill()
			return err
		}
		_ = evt
	}
	return nil
}

// Target exposes the live TargetRecord for front ends that need direct
// read access (registers, breakpoint listing) alongside the Debugger's
// operations.
func (d *Debugger) Target() *TargetRecord { return d.target }
