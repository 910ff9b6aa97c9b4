package directive

import (
	"reflect"
	"testing"

	"github.com/lookbusy1344/z80toolchain/eval"
	"github.com/lookbusy1344/z80toolchain/fixup"
)

type stubResolver struct {
	defined map[string]bool
	values  map[string]int
}

func (s stubResolver) Defined(name string) bool { return s.defined[name] }
func (s stubResolver) Value(name string) (int, bool) {
	v, ok := s.values[name]
	return v, ok
}

var pos = eval.Position{File: "t.asm", Line: 1}

func TestParseOrg(t *testing.T) {
	v, err := ParseOrg([]string{"0x100"})
	if err != nil || v != 0x100 {
		t.Fatalf("got (%d,%v), want (256,nil)", v, err)
	}
	if _, err := ParseOrg([]string{"0x10000"}); err == nil {
		t.Fatal("expected out-of-range error")
	}
	if _, err := ParseOrg([]string{"1", "+", "2"}); err == nil {
		t.Fatal("expected literal-only error")
	}
}

func TestParseEqu(t *testing.T) {
	v, err := ParseEqu([]string{"5", "+", "VAL", "*", "2"}, pos, stubResolver{values: map[string]int{"VAL": 10}})
	if err != nil || v != 25 {
		t.Fatalf("got (%d,%v), want (25,nil)", v, err)
	}
	if _, err := ParseEqu([]string{"65536"}, pos, stubResolver{}); err == nil {
		t.Fatal("expected out-of-range error")
	}
}

func TestDBNumericAndString(t *testing.T) {
	got, err := DB([]string{"1", ",", "0xFF", ",", `"hi"`}, pos, stubResolver{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []byte{1, 0xFF, 'h', 'i'}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDBOutOfRange(t *testing.T) {
	if _, err := DB([]string{"256"}, pos, stubResolver{}); err == nil {
		t.Fatal("expected range error for 256")
	}
	if _, err := DB([]string{"255"}, pos, stubResolver{}); err != nil {
		t.Fatalf("255 should succeed: %v", err)
	}
}

func TestDBRejectsNegative(t *testing.T) {
	if _, err := DB([]string{"-", "1"}, pos, stubResolver{}); err == nil {
		t.Fatal("expected range error for -1")
	}
}

func TestDWCharLiteralDirect(t *testing.T) {
	got, fixups, err := DW([]string{"'AB'"}, pos, stubResolver{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []byte{'B', 'A'}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if len(fixups) != 0 {
		t.Errorf("expected no fixups, got %v", fixups)
	}
}

func TestDWExpressionDefersFixup(t *testing.T) {
	got, fixups, err := DW([]string{"5", "+", "VAL", "*", "2"}, pos, stubResolver{defined: map[string]bool{"VAL": true}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []byte{0, 0}) {
		t.Errorf("got %v, want placeholder 00 00", got)
	}
	if len(fixups) != 1 || fixups[0].Kind != fixup.Word || fixups[0].Offset != 0 {
		t.Errorf("unexpected fixups: %+v", fixups)
	}
}

func TestDWOutOfRangeNotCheckedInPass1(t *testing.T) {
	if _, _, err := DW([]string{"65536"}, pos, stubResolver{}); err != nil {
		t.Fatalf("pass-1 DW does not range check literals directly: %v", err)
	}
}
