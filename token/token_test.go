package token

import (
	"reflect"
	"testing"
)

func TestTokenizeBasic(t *testing.T) {
	cases := []struct {
		line string
		want []string
	}{
		{"nop", []string{"nop"}},
		{"ld a,0x10", []string{"ld", "a", ",", "0x10"}},
		{"LABEL: nop", []string{"LABEL", ":", "nop"}},
		{"set 0,(ix+10)", []string{"set", "0", ",", "(", "ix", "+", "10", ")"}},
		{"ld a, 5 ; a comment", []string{"ld", "a", ",", "5"}},
	}
	for _, c := range cases {
		got, err := Tokenize(c.line, "test.asm", 1)
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", c.line, err)
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", c.line, got, c.want)
		}
	}
}

func TestTokenizeStringLiteralSurvivesComment(t *testing.T) {
	got, err := Tokenize(`db "hi; there"`, "test.asm", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"db", `"hi; there"`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTokenizeEscapes(t *testing.T) {
	got, err := Tokenize(`db "a\"b"`, "test.asm", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"db", `"a\"b"`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTokenizeUnterminatedLiteral(t *testing.T) {
	_, err := Tokenize(`db "oops`, "test.asm", 7)
	if err == nil {
		t.Fatal("expected an error for unterminated literal")
	}
}

func TestTokenizeExAfAfPrime(t *testing.T) {
	got, err := Tokenize(`ex af, af'`, "test.asm", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"ex", "af", ",", "af'"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTokenizeApostropheInComment(t *testing.T) {
	got, err := Tokenize(`nop ; don't`, "test.asm", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"nop"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDecodeLiteralBytes(t *testing.T) {
	got, err := DecodeLiteralBytes(`"a\nb"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []byte("a\nb")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
