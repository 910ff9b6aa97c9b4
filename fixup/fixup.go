// Package fixup defines the deferred operand-patch record shared by
// the assembler's instruction encoder and its DW directive handling.
package fixup

// Kind identifies how a Fixup's resolved value is range-checked and
// written.
type Kind int

const (
	Byte Kind = iota
	Word
	Rel8
)

// Fixup describes one unresolved expression embedded in a pass-1
// opcode vector: Tokens is the expression to re-evaluate in pass-2,
// and Offset/Size locate where its resolved bytes land.
type Fixup struct {
	Offset int
	Size   int
	Kind   Kind
	Tokens []string
}
