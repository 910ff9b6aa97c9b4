package eval

import "testing"

type stubResolver struct {
	defined map[string]bool
	values  map[string]int
}

func (s stubResolver) Defined(name string) bool {
	return s.defined[name]
}

func (s stubResolver) Value(name string) (int, bool) {
	v, ok := s.values[name]
	return v, ok
}

func eval(t *testing.T, tokens []string, mode Mode, r Resolver) (int, int) {
	t.Helper()
	v, n, err := Eval(tokens, Position{File: "t.asm", Line: 1}, mode, r)
	if err != nil {
		t.Fatalf("Eval(%v): %v", tokens, err)
	}
	return v, n
}

func TestArithmeticPrecedence(t *testing.T) {
	v, n := eval(t, []string{"5", "+", "VAL", "*", "2"}, Pass2, stubResolver{values: map[string]int{"VAL": 10}})
	if v != 25 || n != 5 {
		t.Errorf("got (%d,%d), want (25,5)", v, n)
	}
}

func TestParentheses(t *testing.T) {
	v, n := eval(t, []string{"(", "1", "+", "2", ")", "*", "3"}, Pass2, stubResolver{})
	if v != 9 || n != 7 {
		t.Errorf("got (%d,%d), want (9,7)", v, n)
	}
}

func TestUnaryMinus(t *testing.T) {
	v, _ := eval(t, []string{"-", "5"}, Pass2, stubResolver{})
	if v != -5 {
		t.Errorf("got %d, want -5", v)
	}
}

func TestDivisionTruncatesTowardZero(t *testing.T) {
	v, _ := eval(t, []string{"-", "7", "/", "2"}, Pass2, stubResolver{})
	if v != -3 {
		t.Errorf("got %d, want -3", v)
	}
}

func TestDivisionByZero(t *testing.T) {
	_, _, err := Eval([]string{"1", "/", "0"}, Position{Line: 1}, Pass2, stubResolver{})
	if err == nil {
		t.Fatal("expected division by zero error")
	}
}

func TestHexOctalBinaryLiterals(t *testing.T) {
	cases := map[string]int{"0x10": 16, "0o17": 15, "0b101": 5}
	for lit, want := range cases {
		v, _ := eval(t, []string{lit}, Pass2, stubResolver{})
		if v != want {
			t.Errorf("%s: got %d, want %d", lit, v, want)
		}
	}
}

func TestCharLiteral(t *testing.T) {
	v, _ := eval(t, []string{"'A'"}, Pass2, stubResolver{})
	if v != 'A' {
		t.Errorf("got %d, want %d", v, 'A')
	}
	v, _ = eval(t, []string{"'AB'"}, Pass2, stubResolver{})
	if v != ('A'<<8 | 'B') {
		t.Errorf("got %d, want %d", v, 'A'<<8|'B')
	}
}

func TestStopsAtTopLevelComma(t *testing.T) {
	v, n := eval(t, []string{"1", "+", "2", ",", "3"}, Pass2, stubResolver{})
	if v != 3 || n != 3 {
		t.Errorf("got (%d,%d), want (3,3)", v, n)
	}
}

func TestMismatchedParens(t *testing.T) {
	_, _, err := Eval([]string{"(", "1", "+", "2"}, Position{Line: 1}, Pass2, stubResolver{})
	if err == nil {
		t.Fatal("expected mismatched parens error")
	}
}

func TestReservedWordInExpression(t *testing.T) {
	_, _, err := Eval([]string{"a"}, Position{Line: 1}, Pass2, stubResolver{})
	if err == nil {
		t.Fatal("expected reserved word error")
	}
}

func TestPass1UndefinedSymbol(t *testing.T) {
	_, _, err := Eval([]string{"MISSING"}, Position{Line: 1}, Pass1, stubResolver{defined: map[string]bool{}})
	if err == nil {
		t.Fatal("expected undefined symbol error")
	}
}

func TestPass1DefinedSymbolIsZeroPlaceholder(t *testing.T) {
	v, _ := eval(t, []string{"LABEL"}, Pass1, stubResolver{defined: map[string]bool{"LABEL": true}})
	if v != 0 {
		t.Errorf("got %d, want 0", v)
	}
}
