package disasm

import (
	"testing"

	"github.com/lookbusy1344/z80toolchain/instable"
)

func disassemble(t *testing.T, buf []byte, start int) []DisasmLine {
	t.Helper()
	var chr [256]string
	for i := range chr {
		chr[i] = "."
	}
	lines, err := Disassemble(buf, start, instable.Shared(), nil, chr)
	if err != nil {
		t.Fatalf("Disassemble failed: %v", err)
	}
	return lines
}

func TestRelativeJumpSelfReference(t *testing.T) {
	lines := disassemble(t, []byte{0x18, 0xFE}, 0x1000)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Text != "jr L_1000" {
		t.Errorf("text = %q, want %q", lines[0].Text, "jr L_1000")
	}
	if lines[0].Label != "L_1000:" {
		t.Errorf("label = %q, want %q", lines[0].Label, "L_1000:")
	}
}

func TestInvalidOpcodeThenRst(t *testing.T) {
	lines := disassemble(t, []byte{0xED, 0xFF}, 0x0000)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].Text != "db 0xED ; Invalid Opcode" {
		t.Errorf("line0 text = %q", lines[0].Text)
	}
	if lines[1].Text != "rst 0x38" {
		t.Errorf("line1 text = %q", lines[1].Text)
	}
}

func TestNopSingleByte(t *testing.T) {
	lines := disassemble(t, []byte{0x00}, 0)
	if len(lines) != 1 || lines[0].Text != "nop" {
		t.Fatalf("got %+v", lines)
	}
}

func TestWordImmediateFormatting(t *testing.T) {
	lines := disassemble(t, []byte{0x01, 0x34, 0x12}, 0)
	if len(lines) != 1 || lines[0].Text != "ld bc, 0x1234" {
		t.Fatalf("got %+v", lines)
	}
}

func TestIndexedDisplacementFormatting(t *testing.T) {
	lines := disassemble(t, []byte{0xDD, 0xCB, 0x0A, 0xC6}, 0)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Text != "set 0, (ix+0x0A)" {
		t.Errorf("text = %q", lines[0].Text)
	}
}

func TestDataRangeRendersAsBytes(t *testing.T) {
	var chr [256]string
	for i := range chr {
		chr[i] = "."
	}
	chr[0x41] = "A"
	lines, err := Disassemble([]byte{0x41, 0x00}, 0, instable.Shared(), []DataRange{{Lo: 0, Hi: 0}}, chr)
	if err != nil {
		t.Fatalf("Disassemble failed: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].Text != "db 0x41 ; A" {
		t.Errorf("line0 text = %q", lines[0].Text)
	}
	if lines[1].Text != "nop" {
		t.Errorf("line1 text = %q", lines[1].Text)
	}
}

func TestExceedsAddressSpaceRejected(t *testing.T) {
	_, err := Disassemble(make([]byte, 10), 0xFFFF, instable.Shared(), nil, [256]string{})
	if err == nil {
		t.Fatalf("expected error for out-of-range disassembly")
	}
}
