package debugger_test

import (
	"errors"
	"testing"

	"github.com/intuitionamiga/m68kdbg/internal/debugger"
	"github.com/intuitionamiga/m68kdbg/internal/m68k"
)

func TestBreakpointTableSetClearRoundTrip(t *testing.T) {
	cpu := m68k.NewCPU(0x1000)
	cpu.Write16(0x100, m68k.OpcodeNOP)

	table := debugger.NewBreakpointTable()
	bp, err := table.Set(cpu, 0x100, false)
	if err != nil {
		t.Fatal(err)
	}
	if bp.Number != 1 {
		t.Fatalf("Number = %d, want 1 (first breakpoint in the table)", bp.Number)
	}
	if got := cpu.Read16(0x100); got != m68k.BreakpointOpcode {
		t.Fatalf("opcode at 0x100 = %#x, want breakpoint opcode %#x", got, m68k.BreakpointOpcode)
	}

	if _, err := table.Set(cpu, 0x100, false); !errors.Is(err, debugger.ErrBreakpointExists) {
		t.Fatalf("err = %v, want ErrBreakpointExists", err)
	}

	if err := table.Clear(cpu, bp.Number); err != nil {
		t.Fatal(err)
	}
	if got := cpu.Read16(0x100); got != m68k.OpcodeNOP {
		t.Fatalf("opcode at 0x100 = %#x, want original NOP %#x", got, m68k.OpcodeNOP)
	}

	if err := table.Clear(cpu, bp.Number); !errors.Is(err, debugger.ErrBreakpointNotFound) {
		t.Fatalf("err = %v, want ErrBreakpointNotFound", err)
	}
}

func TestBreakpointNumbersAreMonotonicAndNeverReused(t *testing.T) {
	cpu := m68k.NewCPU(0x1000)
	table := debugger.NewBreakpointTable()

	first, err := table.Set(cpu, 0x10, false)
	if err != nil {
		t.Fatal(err)
	}
	second, err := table.Set(cpu, 0x20, false)
	if err != nil {
		t.Fatal(err)
	}
	if first.Number != 1 || second.Number != 2 {
		t.Fatalf("numbers = %d,%d, want 1,2", first.Number, second.Number)
	}

	if err := table.Clear(cpu, first.Number); err != nil {
		t.Fatal(err)
	}
	third, err := table.Set(cpu, 0x30, false)
	if err != nil {
		t.Fatal(err)
	}
	if third.Number != 3 {
		t.Fatalf("Number = %d, want 3 (never reuse a cleared number)", third.Number)
	}

	if got, ok := table.FindByNumber(second.Number); !ok || got.Addr != 0x20 {
		t.Fatalf("FindByNumber(%d) = %v,%v, want the breakpoint at 0x20", second.Number, got, ok)
	}
	if _, ok := table.FindByAddress(0x20); !ok {
		t.Fatal("FindByAddress(0x20) should still find the second breakpoint")
	}
}

func TestResetHitCountsZeroesWithoutRemoving(t *testing.T) {
	cpu := m68k.NewCPU(0x1000)
	table := debugger.NewBreakpointTable()
	bp, err := table.Set(cpu, 0x40, false)
	if err != nil {
		t.Fatal(err)
	}
	ctx := debugger.TaskContext{}
	table.RegisterHit(ctx, cpu, 0x40)
	table.RegisterHit(ctx, cpu, 0x40)
	if bp.HitCount != 2 {
		t.Fatalf("HitCount = %d, want 2", bp.HitCount)
	}

	table.ResetHitCounts()
	if bp.HitCount != 0 {
		t.Fatalf("HitCount after ResetHitCounts = %d, want 0", bp.HitCount)
	}
	if _, ok := table.FindByNumber(bp.Number); !ok {
		t.Fatal("ResetHitCounts should not remove the breakpoint")
	}
}

func TestConditionalBreakpointGatesOnRegisterValue(t *testing.T) {
	cpu := m68k.NewCPU(0x1000)
	table := debugger.NewBreakpointTable()
	cond := debugger.Condition{Register: "D0", Op: debugger.OpEqual, Value: 42}
	if _, err := table.Set(cpu, 0x200, false, cond); err != nil {
		t.Fatal(err)
	}

	ctx := debugger.TaskContext{D: [8]uint32{0: 1}}
	if _, hit := table.RegisterHit(ctx, cpu, 0x200); hit {
		t.Fatal("condition should not hold when D0 != 42")
	}

	ctx.D[0] = 42
	if _, hit := table.RegisterHit(ctx, cpu, 0x200); !hit {
		t.Fatal("condition should hold when D0 == 42")
	}
}

func TestConditionalBreakpointGatesOnMemoryValue(t *testing.T) {
	cpu := m68k.NewCPU(0x1000)
	cpu.Write8(0x300, 7)
	table := debugger.NewBreakpointTable()
	cond := debugger.Condition{MemoryAddr: 0x300, MemorySize: 1, Op: debugger.OpEqual, Value: 9}
	if _, err := table.Set(cpu, 0x400, false, cond); err != nil {
		t.Fatal(err)
	}

	ctx := debugger.TaskContext{}
	if _, hit := table.RegisterHit(ctx, cpu, 0x400); hit {
		t.Fatal("condition should not hold when memory byte != 9")
	}

	cpu.Write8(0x300, 9)
	if _, hit := table.RegisterHit(ctx, cpu, 0x400); !hit {
		t.Fatal("condition should hold when memory byte == 9")
	}
}

func TestConditionalBreakpointGatesOnHitCount(t *testing.T) {
	cpu := m68k.NewCPU(0x1000)
	table := debugger.NewBreakpointTable()
	cond := debugger.Condition{UseHitCount: true, Op: debugger.OpGreaterEqual, Value: 3}
	if _, err := table.Set(cpu, 0x500, false, cond); err != nil {
		t.Fatal(err)
	}

	ctx := debugger.TaskContext{}
	for i := 0; i < 2; i++ {
		if _, hit := table.RegisterHit(ctx, cpu, 0x500); hit {
			t.Fatalf("condition should not hold before the third hit (i=%d)", i)
		}
	}
	if _, hit := table.RegisterHit(ctx, cpu, 0x500); !hit {
		t.Fatal("condition should hold on the third hit")
	}
}

func TestAddressOutOfRangeRejectsBreakpoint(t *testing.T) {
	cpu := m68k.NewCPU(0x10)
	table := debugger.NewBreakpointTable()
	var addrErr *debugger.AddressError
	_, err := table.Set(cpu, 0x1000, false)
	if !errors.As(err, &addrErr) {
		t.Fatalf("err = %v, want *AddressError", err)
	}
}
