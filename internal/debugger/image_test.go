package debugger_test

import (
	"testing"

	"github.com/intuitionamiga/m68kdbg/internal/debugger"
	"github.com/intuitionamiga/m68kdbg/internal/m68k"
)

func TestParseImageRoundTrip(t *testing.T) {
	entry := uint32(0x1000)
	code := instr(opNOP, opRTS)
	raw := buildImage(entry, entry, code)

	img, err := debugger.ParseImage(raw)
	if err != nil {
		t.Fatal(err)
	}
	if img.Entry != entry {
		t.Fatalf("Entry = %#x, want %#x", img.Entry, entry)
	}
	if len(img.Segments) != 1 {
		t.Fatalf("len(Segments) = %d, want 1", len(img.Segments))
	}
	if img.Segments[0].LoadAddr != entry {
		t.Fatalf("LoadAddr = %#x, want %#x", img.Segments[0].LoadAddr, entry)
	}

	cpu := m68k.NewCPU(0x10000)
	if err := img.LoadInto(cpu, 0x9000); err != nil {
		t.Fatal(err)
	}
	if cpu.PC != entry {
		t.Fatalf("PC = %#x, want %#x", cpu.PC, entry)
	}
	if cpu.Read16(entry) != m68k.OpcodeNOP {
		t.Fatalf("code not loaded at entry")
	}
}

func TestParseImageRejectsTruncatedSegment(t *testing.T) {
	raw := []byte{0, 0, 0x10, 0, 0, 0, 0x20, 0, 0, 0, 0, 0xFF} // claims 255 bytes, has none
	if _, err := debugger.ParseImage(raw); err == nil {
		t.Fatal("expected error for truncated segment")
	}
}
