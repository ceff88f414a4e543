package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/intuitionamiga/m68kdbg/internal/debugger"
)

// cli is the default front end: a line-oriented command loop running with
// the terminal in raw mode so it can handle backspace and Ctrl-C itself,
// grounded on debug_monitor.go's command loop.
type cli struct {
	dbg *debugger.Debugger
}

func newCLI(dbg *debugger.Debugger) *cli {
	return &cli{dbg: dbg}
}

// FrontEnd satisfies debugger.FrontEnd: it is invoked once per target stop.
func (c *cli) FrontEnd(t *debugger.TargetRecord) error {
	c.printStop(t)
	for {
		line, err := c.readLine()
		if err != nil {
			return err
		}
		done, err := c.dispatch(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}
		if done {
			return nil
		}
	}
}

func (c *cli) printStop(t *debugger.TargetRecord) {
	ctx := t.LastContext()
	fmt.Printf("stopped: %s at pc=%#x sr=%#04x\n", t.State(), ctx.PC, ctx.SR)
}

func (c *cli) dispatch(line string) (resumedOrKilled bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	switch fields[0] {
	case "c", "continue":
		if err := c.dbg.SetContinueMode(); err != nil {
			return false, err
		}
		return true, c.dbg.Resume()
	case "s", "step":
		if err := c.dbg.SetSingleStepMode(); err != nil {
			return false, err
		}
		return true, c.dbg.Resume()
	case "b", "break":
		if len(fields) < 2 {
			return false, fmt.Errorf("usage: break <offset>")
		}
		offset, err := parseAddr(fields[1])
		if err != nil {
			return false, err
		}
		bp, err := c.dbg.SetBreakpoint(offset, false)
		if err != nil {
			return false, err
		}
		fmt.Printf("breakpoint %d at offset %#x\n", bp.Number, offset)
		return false, nil
	case "d", "delete":
		if len(fields) < 2 {
			return false, fmt.Errorf("usage: delete <bp_num>")
		}
		num, err := strconv.Atoi(fields[1])
		if err != nil {
			return false, fmt.Errorf("invalid breakpoint number %q: %w", fields[1], err)
		}
		return false, c.dbg.ClearBreakpoint(num)
	case "i", "info":
		info, err := c.dbg.GetTargetInfo()
		if err != nil {
			return false, err
		}
		fmt.Printf("state=%s pc=%#x sr=%#04x usp=%#x\n", info.State, info.Context.PC, info.Context.SR, info.Context.USP)
		for i, d := range info.Context.D {
			fmt.Printf("  D%d=%#x", i, d)
		}
		fmt.Println()
		for _, bp := range info.Breakpoints {
			fmt.Printf("  #%d offset=%#x hits=%d\n", bp.Number, bp.Addr-info.Entry, bp.HitCount)
		}
		return false, nil
	case "bt", "backtrace":
		frames, err := c.dbg.Backtrace(8)
		if err != nil {
			return false, err
		}
		for i, f := range frames {
			fmt.Printf("  #%d %#x\n", i, f)
		}
		return false, nil
	case "k", "kill":
		return true, c.dbg.Kill()
	default:
		return false, fmt.Errorf("unknown command %q", fields[0])
	}
}

func parseAddr(s string) (uint32, error) {
	s = strings.TrimPrefix(s, "0x")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return uint32(v), nil
}

// readLine reads one command line, putting the terminal into raw mode for
// the duration so Ctrl-C can be handled as "kill" rather than killing the
// whole process.
func (c *cli) readLine() (string, error) {
	fmt.Print("(m68kdbg) ")
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return readLineCooked()
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return readLineCooked()
	}
	defer term.Restore(fd, oldState)

	var buf []byte
	b := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(b); err != nil {
			return "", err
		}
		switch b[0] {
		case '\r', '\n':
			fmt.Print("\r\n")
			return string(buf), nil
		case 0x03: // Ctrl-C
			return "kill", nil
		case 0x7f, 0x08: // backspace
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
				fmt.Print("\b \b")
			}
		default:
			buf = append(buf, b[0])
			os.Stdout.Write(b)
		}
	}
}

func readLineCooked() (string, error) {
	var line string
	_, err := fmt.Scanln(&line)
	if err != nil && err.Error() != "unexpected newline" {
		return "", err
	}
	return line, nil
}
