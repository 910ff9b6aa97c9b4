package asm

// symbolKind distinguishes an EQU's literal value from a label's
// program-counter address; only EQU tokens are substituted by the
// pre-pass-1 substitution step.
type symbolKind int

const (
	symbolLabel symbolKind = iota
	symbolEqu
)

type symbolEntry struct {
	kind       symbolKind
	value      int
	definedAt  int
	hasAddress bool // false for a label between pass-0 placeholder and pass-1 resolution
}

// SymbolTable holds EQU and label bindings across the assembly passes.
// It implements eval.Resolver directly: Defined reports pass-1
// knowledge, Value reports a pass-2-final value.
type SymbolTable struct {
	symbols map[string]*symbolEntry
}

// NewSymbolTable returns an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]*symbolEntry)}
}

// DefineEqu binds name to a literal value. Fails if name is already
// bound (to an EQU or a label).
func (st *SymbolTable) DefineEqu(name string, value, line int) error {
	if existing, ok := st.symbols[name]; ok {
		return duplicateLabelError(name, existing.definedAt, line)
	}
	st.symbols[name] = &symbolEntry{kind: symbolEqu, value: value, definedAt: line, hasAddress: true}
	return nil
}

// DeclareLabel registers name as a label that will be resolved in
// pass-1, without committing an address yet. Fails if name is already
// bound.
func (st *SymbolTable) DeclareLabel(name string, line int) error {
	if existing, ok := st.symbols[name]; ok {
		return duplicateLabelError(name, existing.definedAt, line)
	}
	st.symbols[name] = &symbolEntry{kind: symbolLabel, definedAt: line}
	return nil
}

// SetLabelAddress records a label's resolved address during pass-1.
func (st *SymbolTable) SetLabelAddress(name string, address int) {
	sym := st.symbols[name]
	sym.value = address
	sym.hasAddress = true
}

// EquValue returns an EQU symbol's literal value, used by the
// substitution pass. Labels are not returned here.
func (st *SymbolTable) EquValue(name string) (int, bool) {
	sym, ok := st.symbols[name]
	if !ok || sym.kind != symbolEqu {
		return 0, false
	}
	return sym.value, true
}

// Defined implements eval.Resolver's pass-1 contract: true for any
// known symbol, regardless of whether its address is final yet.
func (st *SymbolTable) Defined(name string) bool {
	_, ok := st.symbols[name]
	return ok
}

// Value implements eval.Resolver's pass-2 contract: the symbol's final
// value, once every label has been assigned an address.
func (st *SymbolTable) Value(name string) (int, bool) {
	sym, ok := st.symbols[name]
	if !ok || !sym.hasAddress {
		return 0, false
	}
	return sym.value, true
}

func duplicateLabelError(name string, firstLine, line int) *Error {
	return newError(Position{Line: line}, ErrStructural, "duplicate definition of %q (first defined on line %d)", name, firstLine)
}
