package debugger

// FrontEnd is the one-way seam between the core and any UI. The controller
// invokes it after every stop with the current TargetRecord; the front end
// reads state and issues further core operations (SetBreakpoint, Resume,
// ...) but the core never imports a front end package. A CLI and a remote
// protocol adapter are both just implementations of this signature, kept
// outside the core on purpose — grounded on debug_interface.go's UI-facing
// boundary.
type FrontEnd func(*TargetRecord) error
