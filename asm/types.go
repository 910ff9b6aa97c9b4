package asm

import "github.com/lookbusy1344/z80toolchain/fixup"

// AsmLine is one emitting (or label-defining) source line after
// pass-1 layout.
type AsmLine struct {
	Line   int
	Base   int
	Offset int
	Tokens []string
	Opcode []byte
	Fixups []fixup.Fixup
	Label  string // non-empty for a label-definition line; Opcode is nil
}
