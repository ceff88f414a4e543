package debugger

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RunWithShutdown runs the front-end dispatch loop alongside a watch for
// ctx cancellation, tearing the target down if the context is canceled
// before the target exits on its own. Grounded on coprocessor_manager.go
// and coproc_worker_m68k.go's pattern of coordinating a worker goroutine's
// lifecycle against an owning context; generalized here with errgroup
// since a remote front end adds a second goroutine (its listener) that
// must unwind in step with the target.
func (d *Debugger) RunWithShutdown(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		return d.Run()
	})
	g.Go(func() error {
		<-gctx.Done()
		return d.Kill()
	})

	return g.Wait()
}
