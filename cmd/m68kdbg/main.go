// Command m68kdbg is the default front end for the debugger core: it loads
// an image, installs a terminal-based command loop as the FrontEnd, and
// runs until the target exits, is killed, or the process receives an
// interrupt.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/intuitionamiga/m68kdbg/internal/debugger"
)

func main() {
	var (
		memSize   = flag.Uint("mem", 1<<20, "target address space size in bytes")
		ssp       = flag.Uint("ssp", 0, "initial supervisor stack pointer (defaults to top of memory)")
		traceFile = flag.String("trace", "", "optional JSON trace log path")
		verbose   = flag.Bool("v", false, "enable debug-level logging")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: m68kdbg [flags] <image>")
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	var trace io.Writer
	if *traceFile != "" {
		f, err := os.Create(*traceFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "m68kdbg:", err)
			os.Exit(1)
		}
		defer f.Close()
		trace = f
	}
	log := debugger.NewLogger(level, trace)

	raw, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "m68kdbg:", err)
		os.Exit(1)
	}

	stackTop := uint32(*ssp)
	if stackTop == 0 {
		stackTop = uint32(*memSize)
	}

	dbg := debugger.NewDebugger(log)
	if err := dbg.Load(raw, uint32(*memSize), stackTop); err != nil {
		fmt.Fprintln(os.Stderr, "m68kdbg:", err)
		os.Exit(1)
	}

	front := newCLI(dbg)
	dbg.SetFrontEnd(front.FrontEnd)

	if err := dbg.Start(); err != nil {
		fmt.Fprintln(os.Stderr, "m68kdbg:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := dbg.RunWithShutdown(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "m68kdbg:", err)
		os.Exit(1)
	}
}
