package emitter

import (
	"bytes"
	"testing"

	"github.com/lookbusy1344/z80toolchain/asm"
)

func assembleOK(t *testing.T, source string) []asm.AsmLine {
	t.Helper()
	lines, err := asm.New().Assemble(source, "test.z80")
	if err != nil {
		t.Fatalf("Assemble(%q) failed: %v", source, err)
	}
	return lines
}

func TestEmitContiguous(t *testing.T) {
	lines := assembleOK(t, "nop\nhalt")
	got, err := Emit(lines, nil)
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	want := []byte{0x00, 0x76}
	if !bytes.Equal(got, want) {
		t.Errorf("got % x, want % x", got, want)
	}
}

func TestEmitPreservesGapBetweenOrgRegions(t *testing.T) {
	lines := assembleOK(t, "org 0x0000\nnop\norg 0x0004\nhalt")
	got, err := Emit(lines, nil)
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	want := []byte{0x00, 0x00, 0x00, 0x00, 0x76}
	if !bytes.Equal(got, want) {
		t.Errorf("got % x, want % x", got, want)
	}
}

func TestEmitZeroFillsToRequestedSize(t *testing.T) {
	lines := assembleOK(t, "nop")
	size := 4
	got, err := Emit(lines, &size)
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	want := []byte{0x00, 0x00, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("got % x, want % x", got, want)
	}
}

func TestEmitRejectsOpcodeExceedingRequestedSize(t *testing.T) {
	lines := assembleOK(t, "org 0x0010\nnop")
	size := 4
	if _, err := Emit(lines, &size); err == nil {
		t.Fatal("expected error when opcode exceeds requested size")
	}
}

func TestEmitSkipsLabelOnlyLines(t *testing.T) {
	lines := assembleOK(t, "LABEL: nop")
	got, err := Emit(lines, nil)
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	want := []byte{0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("got % x, want % x", got, want)
	}
}
