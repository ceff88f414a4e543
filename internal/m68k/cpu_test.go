package m68k

import "testing"

func newTestCPU() *CPU {
	c := NewCPU(0x10000)
	c.Reset(0xF000, 0x1000)
	return c
}

func TestStepNOPAdvancesPC(t *testing.T) {
	c := newTestCPU()
	c.Write16(0x1000, OpcodeNOP)
	c.Step()
	if c.PC != 0x1002 {
		t.Fatalf("PC = %#x, want %#x", c.PC, 0x1002)
	}
}

func TestMOVEQSetsRegisterAndFlags(t *testing.T) {
	c := newTestCPU()
	c.Write16(0x1000, 0x7000|(0<<9)|0x00) // MOVEQ #0,D0
	c.Step()
	if c.D[0] != 0 {
		t.Fatalf("D0 = %#x, want 0", c.D[0])
	}
	if c.SR&SRZero == 0 {
		t.Fatal("zero flag not set for MOVEQ #0")
	}

	c.PC = 0x1002
	c.Write16(0x1002, 0x7000|(1<<9)|0xFF) // MOVEQ #-1,D1
	c.Step()
	if c.D[1] != 0xFFFFFFFF {
		t.Fatalf("D1 = %#x, want 0xFFFFFFFF", c.D[1])
	}
	if c.SR&SRNegative == 0 {
		t.Fatal("negative flag not set for MOVEQ #-1")
	}
}

func TestRTSPopsReturnAddress(t *testing.T) {
	c := newTestCPU()
	c.Push32(0x2000)
	c.Write16(0x1000, OpcodeRTS)
	c.Step()
	if c.PC != 0x2000 {
		t.Fatalf("PC = %#x, want %#x", c.PC, 0x2000)
	}
}

func TestIllegalInstructionRaisesVectorFour(t *testing.T) {
	c := newTestCPU()
	var gotVector uint8
	c.OnException = func(v uint8, pc uint32, sr uint16) { gotVector = v }
	c.Write16(0x1000, OpcodeILLEGAL)
	c.Step()
	if gotVector != VecIllegalInstr {
		t.Fatalf("vector = %d, want %d", gotVector, VecIllegalInstr)
	}
	if !c.Supervisor() {
		t.Fatal("CPU did not enter supervisor mode on exception")
	}
}

func TestUnknownOpcodeFallsBackToIllegal(t *testing.T) {
	c := newTestCPU()
	var gotVector uint8
	c.OnException = func(v uint8, pc uint32, sr uint16) { gotVector = v }
	c.Write16(0x1000, 0xFFFF)
	c.Step()
	if gotVector != VecIllegalInstr {
		t.Fatalf("vector = %d, want %d", gotVector, VecIllegalInstr)
	}
}

func TestTrapZeroRaisesBreakpointVector(t *testing.T) {
	c := newTestCPU()
	var gotVector uint8
	c.OnException = func(v uint8, pc uint32, sr uint16) { gotVector = v }
	c.Write16(0x1000, BreakpointOpcode)
	c.Step()
	if gotVector != VecTrapBase+TrapBreakpoint {
		t.Fatalf("vector = %d, want %d", gotVector, VecTrapBase+TrapBreakpoint)
	}
	// the frame's saved PC should be the instruction after the trap.
	if c.PC != 0x1002 {
		t.Fatalf("PC after TRAP entry = %#x, want %#x (supervisor stack holds 0x1002)", c.PC, 0x1002)
	}
}

func TestRestoreReturnsToSavedPCAndMode(t *testing.T) {
	c := newTestCPU()
	c.OnException = func(v uint8, pc uint32, sr uint16) {
		if v == VecTrapBase+TrapBreakpoint {
			c.ProcessException(VecTrapBase + TrapRestore)
		}
	}
	// install a second handler layer: on the restore trap, reload state.
	outer := c.OnException
	c.OnException = func(v uint8, pc uint32, sr uint16) {
		if v == VecTrapBase+TrapRestore {
			c.Restore(0, 0x3000)
			return
		}
		outer(v, pc, sr)
	}
	c.Write16(0x1000, BreakpointOpcode)
	c.Step()
	if c.PC != 0x3000 {
		t.Fatalf("PC = %#x, want %#x", c.PC, 0x3000)
	}
	if c.Supervisor() {
		t.Fatal("expected user mode after restoring SR=0")
	}
}

func TestJSRAndRTSRoundTrip(t *testing.T) {
	c := newTestCPU()
	c.Write16(0x1000, OpcodeJSRAbsLong)
	c.Write32(0x1002, 0x2000)
	c.Write16(0x2000, OpcodeRTS)

	c.Step() // JSR
	if c.PC != 0x2000 {
		t.Fatalf("PC after JSR = %#x, want %#x", c.PC, 0x2000)
	}
	c.Step() // RTS
	if c.PC != 0x1006 {
		t.Fatalf("PC after RTS = %#x, want %#x", c.PC, 0x1006)
	}
}

func TestBRABranchesUnconditionally(t *testing.T) {
	c := newTestCPU()
	c.Write16(0x1000, 0x6000|0x10) // BRA +16
	c.Step()
	if c.PC != 0x1002+16 {
		t.Fatalf("PC = %#x, want %#x", c.PC, 0x1002+16)
	}
}
