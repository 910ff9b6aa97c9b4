// Package asm implements the two-pass Z80 assembler: pass-0 line
// classification and symbol collection, EQU substitution, pass-1
// layout with provisional encoding, and pass-2 fixup resolution.
package asm

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/lookbusy1344/z80toolchain/directive"
	"github.com/lookbusy1344/z80toolchain/eval"
	"github.com/lookbusy1344/z80toolchain/fixup"
	"github.com/lookbusy1344/z80toolchain/instable"
	"github.com/lookbusy1344/z80toolchain/reserved"
	"github.com/lookbusy1344/z80toolchain/token"
)

// Assembler holds the shared instruction table used across Assemble
// calls; it carries no per-run state, so one instance may be reused.
type Assembler struct {
	Table *instable.Table
}

// New returns an Assembler backed by the shared instruction table.
func New() *Assembler {
	return &Assembler{Table: instable.Shared()}
}

// Assemble translates source text into a fully-resolved line list: no
// AsmLine.Fixups remain unapplied on success.
func (a *Assembler) Assemble(source, filename string) ([]AsmLine, error) {
	rawLines := strings.Split(source, "\n")
	symtab := NewSymbolTable()

	var classified []classifiedLine
	for idx, raw := range rawLines {
		lineNo := idx + 1
		toks, err := token.Tokenize(raw, filename, lineNo)
		if err != nil {
			return nil, newError(Position{File: filename, Line: lineNo}, ErrTokenization, "%s", err)
		}
		cls, err := a.classifyLine(toks, lineNo, filename, symtab)
		if err != nil {
			return nil, err
		}
		classified = append(classified, cls...)
	}

	substituteEqus(classified, symtab)

	lines, err := a.passOne(classified, symtab, filename)
	if err != nil {
		return nil, err
	}
	if err := a.passTwo(lines, symtab, filename); err != nil {
		return nil, err
	}
	return lines, nil
}

type lineKind int

const (
	lnLabel lineKind = iota
	lnOrg
	lnData
	lnInstr
)

type classifiedLine struct {
	kind      lineKind
	line      int
	directive string // "db" or "dw", lnData only
	tokens    []string
}

func isValidIdentifier(name string) bool {
	if len(name) == 0 {
		return false
	}
	runes := []rune(name)
	if !unicode.IsLetter(runes[0]) && runes[0] != '@' {
		return false
	}
	for _, c := range runes[1:] {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' && c != '@' && c != '\'' {
			return false
		}
	}
	return true
}

func (a *Assembler) classifyLine(tokens []string, lineNo int, filename string, symtab *SymbolTable) ([]classifiedLine, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	var out []classifiedLine
	if len(tokens) >= 2 && tokens[1] == ":" {
		name := tokens[0]
		if !isValidIdentifier(name) {
			return nil, newError(Position{File: filename, Line: lineNo}, ErrStructural, "invalid label identifier %q", name)
		}
		if reserved.Is(name) {
			return nil, newError(Position{File: filename, Line: lineNo}, ErrStructural, "reserved word %q cannot be used as a label", name)
		}

		rest := tokens[2:]
		if len(rest) >= 1 && strings.EqualFold(rest[0], "equ") {
			pos := eval.Position{File: filename, Line: lineNo}
			v, err := directive.ParseEqu(rest[1:], pos, symtab)
			if err != nil {
				return nil, newError(Position{File: filename, Line: lineNo}, ErrDirective, "%s", err)
			}
			if err := symtab.DefineEqu(name, v, lineNo); err != nil {
				return nil, err
			}
			return nil, nil
		}

		if err := symtab.DeclareLabel(name, lineNo); err != nil {
			return nil, err
		}
		out = append(out, classifiedLine{kind: lnLabel, line: lineNo, tokens: []string{name}})
		if len(rest) == 0 {
			return out, nil
		}
		tokens = rest
	}

	mnemonic := strings.ToLower(tokens[0])
	switch mnemonic {
	case "org":
		out = append(out, classifiedLine{kind: lnOrg, line: lineNo, tokens: tokens[1:]})
	case "db", "defb":
		out = append(out, classifiedLine{kind: lnData, line: lineNo, directive: "db", tokens: tokens[1:]})
	case "dw", "defw":
		out = append(out, classifiedLine{kind: lnData, line: lineNo, directive: "dw", tokens: tokens[1:]})
	default:
		out = append(out, classifiedLine{kind: lnInstr, line: lineNo, tokens: tokens})
	}
	return out, nil
}

// substituteEqus replaces every token that names an EQU symbol with
// its literal decimal value, once, before pass-1.
func substituteEqus(classified []classifiedLine, symtab *SymbolTable) {
	for idx := range classified {
		cl := &classified[idx]
		for i, tok := range cl.tokens {
			if v, ok := symtab.EquValue(tok); ok {
				cl.tokens[i] = strconv.Itoa(v)
			}
		}
	}
}

func (a *Assembler) passOne(classified []classifiedLine, symtab *SymbolTable, filename string) ([]AsmLine, error) {
	var out []AsmLine
	haveBase := false
	base := 0
	offset := 0

	ensureBase := func() {
		if !haveBase {
			base = 0
			haveBase = true
		}
	}

	for _, cl := range classified {
		switch cl.kind {
		case lnOrg:
			newBase, err := directive.ParseOrg(cl.tokens)
			if err != nil {
				return nil, newError(Position{File: filename, Line: cl.line}, ErrDirective, "%s", err)
			}
			if !haveBase || newBase != base {
				offset = 0
			}
			base = newBase
			haveBase = true

		case lnLabel:
			ensureBase()
			name := cl.tokens[0]
			symtab.SetLabelAddress(name, base+offset)
			out = append(out, AsmLine{Line: cl.line, Base: base, Offset: offset, Label: name})

		case lnData:
			ensureBase()
			pos := eval.Position{File: filename, Line: cl.line}
			var bytes []byte
			var fixups []fixup.Fixup
			var err error
			if cl.directive == "db" {
				bytes, err = directive.DB(cl.tokens, pos, symtab)
			} else {
				bytes, fixups, err = directive.DW(cl.tokens, pos, symtab)
			}
			if err != nil {
				return nil, newError(Position{File: filename, Line: cl.line}, ErrDirective, "%s", err)
			}
			if base+offset+len(bytes) > 0x10000 {
				return nil, newError(Position{File: filename, Line: cl.line}, ErrEncoding, "emission exceeds 64KiB address space")
			}
			out = append(out, AsmLine{Line: cl.line, Base: base, Offset: offset, Tokens: cl.tokens, Opcode: bytes, Fixups: fixups})
			offset += len(bytes)

		case lnInstr:
			ensureBase()
			pos := eval.Position{File: filename, Line: cl.line}
			_, opcode, fixups, err := a.encodeInstr(cl.tokens, pos)
			if err != nil {
				return nil, newError(Position{File: filename, Line: cl.line}, ErrEncoding, "%s", err)
			}
			if base+offset+len(opcode) > 0x10000 {
				return nil, newError(Position{File: filename, Line: cl.line}, ErrEncoding, "emission exceeds 64KiB address space")
			}
			out = append(out, AsmLine{Line: cl.line, Base: base, Offset: offset, Tokens: cl.tokens, Opcode: opcode, Fixups: fixups})
			offset += len(opcode)
		}
	}
	return out, nil
}

func (a *Assembler) passTwo(lines []AsmLine, symtab *SymbolTable, filename string) error {
	for li := range lines {
		line := &lines[li]
		for _, fx := range line.Fixups {
			pos := eval.Position{File: filename, Line: line.Line}
			value, consumed, err := eval.Eval(fx.Tokens, pos, eval.Pass2, symtab)
			if err != nil {
				return newError(Position{File: filename, Line: line.Line}, ErrExpression, "%s", err)
			}
			if consumed != len(fx.Tokens) {
				return newError(Position{File: filename, Line: line.Line}, ErrExpression, "unexpected trailing tokens in fixup expression")
			}

			switch fx.Kind {
			case fixup.Rel8:
				pc := line.Base + line.Offset + len(line.Opcode)
				delta := value - pc
				if delta < -128 || delta > 127 {
					return newError(Position{File: filename, Line: line.Line}, ErrEncoding, "relative jump out of range: delta %d", delta)
				}
				line.Opcode[fx.Offset] = byte(delta & 0xFF)
			case fixup.Byte:
				if value < -128 || value > 255 {
					return newError(Position{File: filename, Line: line.Line}, ErrEncoding, "byte operand %d out of range [-128,255]", value)
				}
				line.Opcode[fx.Offset] = byte(value & 0xFF)
			case fixup.Word:
				if value < -32768 || value > 65535 {
					return newError(Position{File: filename, Line: line.Line}, ErrEncoding, "word operand %d out of range [-32768,65535]", value)
				}
				line.Opcode[fx.Offset] = byte(value & 0xFF)
				line.Opcode[fx.Offset+1] = byte((value >> 8) & 0xFF)
			}
		}
	}
	return nil
}

// exprSpan is one operand position found by the scanner: its source
// tokens, and whether its slot kind (byte vs word) is already
// determined (true for (ix+d)/(iy+d) displacements, which are always
// byte-sized) or must be discovered by trial lookup.
type exprSpan struct {
	tokens      []string
	determined  bool
	sentinelIdx int
}

func sentinel(n int) string {
	return fmt.Sprintf("\x00EXPR%d\x00", n)
}

// encodeInstr finds the matching instruction descriptor for tokens (a
// mnemonic plus its operand tokens) and builds its provisional opcode
// and fixups.
func (a *Assembler) encodeInstr(tokens []string, pos eval.Position) (*instable.Descriptor, []byte, []fixup.Fixup, error) {
	mnemonic := strings.ToLower(tokens[0])

	switch mnemonic {
	case "bit", "res", "set":
		return a.encodeBitOp(mnemonic, tokens)
	case "rst":
		return a.encodeRst(tokens)
	case "im":
		return a.encodeIm(tokens)
	}

	keyTokens, spans, err := a.scanOperands(tokens)
	if err != nil {
		return nil, nil, nil, err
	}

	candidates := candidatePlaceholders(spans)
	if candidates == nil {
		return nil, nil, nil, fmt.Errorf("too many operands for %v", tokens)
	}
	for _, assign := range candidates {
		tryKey := append([]string(nil), keyTokens...)
		for i, ph := range assign {
			tryKey[spans[i].sentinelIdx] = ph
		}
		if descr, ok := a.Table.Lookup(tryKey); ok {
			return buildOpcode(descr, spans)
		}
	}
	return nil, nil, nil, fmt.Errorf("no matching instruction for %v", tokens)
}

// candidatePlaceholders enumerates, in priority order, the placeholder
// strings to substitute for each span's sentinel before a trial table
// lookup. A lone operand is always numbered {0}; it may be byte- or
// word-sized. The one shape with two separate byte slots in a single
// key (LD (ix+d),n) numbers the displacement {1} and the trailing
// immediate {0}, so that combination is tried first when an (ix+d)
// displacement is paired with a second operand.
func candidatePlaceholders(spans []exprSpan) [][]string {
	switch len(spans) {
	case 0:
		return [][]string{{}}
	case 1:
		if spans[0].determined {
			return [][]string{{instable.BytePlaceholder}}
		}
		return [][]string{{instable.BytePlaceholder}, {instable.WordPlaceholder}}
	case 2:
		if spans[0].determined && !spans[1].determined {
			return [][]string{
				{instable.Byte1Placeholder, instable.BytePlaceholder},
				{instable.BytePlaceholder, instable.BytePlaceholder},
				{instable.Byte1Placeholder, instable.WordPlaceholder},
			}
		}
	}
	return nil
}

func (a *Assembler) encodeBitOp(mnemonic string, tokens []string) (*instable.Descriptor, []byte, []fixup.Fixup, error) {
	if len(tokens) < 4 || tokens[2] != "," {
		return nil, nil, nil, fmt.Errorf("malformed %s operand", mnemonic)
	}
	bitTok := tokens[1]
	regKey, spans, err := a.scanRegisterOrIndexed(tokens[3:])
	if err != nil {
		return nil, nil, nil, err
	}
	keyTokens := append([]string{mnemonic, bitTok, ","}, regKey...)
	descr, ok := a.Table.Lookup(keyTokens)
	if !ok {
		return nil, nil, nil, fmt.Errorf("no matching instruction for %v", tokens)
	}
	return buildOpcode(descr, spans)
}

func (a *Assembler) encodeRst(tokens []string) (*instable.Descriptor, []byte, []fixup.Fixup, error) {
	if len(tokens) != 2 {
		return nil, nil, nil, fmt.Errorf("malformed rst operand")
	}
	descr, ok := a.Table.Lookup([]string{tokens[0], tokens[1]})
	if !ok {
		return nil, nil, nil, fmt.Errorf("no matching rst target %q", tokens[1])
	}
	return buildOpcode(descr, nil)
}

// encodeIm handles "im 0"/"im 1"/"im 2": the mode number is baked into
// the opcode, so like rst it is a literal key token, not a fixup.
func (a *Assembler) encodeIm(tokens []string) (*instable.Descriptor, []byte, []fixup.Fixup, error) {
	if len(tokens) != 2 {
		return nil, nil, nil, fmt.Errorf("malformed im operand")
	}
	descr, ok := a.Table.Lookup([]string{tokens[0], tokens[1]})
	if !ok {
		return nil, nil, nil, fmt.Errorf("no matching im mode %q", tokens[1])
	}
	return buildOpcode(descr, nil)
}

// scanOperands walks tokens[1:] building a trial encode key: reserved
// words and structural punctuation pass through literally; every
// other run of tokens is one expression operand, replaced by a
// sentinel placeholder pending byte/word disambiguation. The '+'/'-'
// immediately after an IX/IY register stays in the key (it selects
// which of the two decode-identical "(ix+d)"/"(ix-d)" keys to use)
// but is also folded into that operand's expression tokens so its
// sign is honored when the displacement is evaluated.
func (a *Assembler) scanOperands(tokens []string) ([]string, []exprSpan, error) {
	keyTokens := []string{strings.ToLower(tokens[0])}
	var spans []exprSpan

	i := 1
	for i < len(tokens) {
		tok := tokens[i]
		switch {
		case tok == "," || tok == "(" || tok == ")":
			keyTokens = append(keyTokens, tok)
			i++

		case reserved.Is(tok):
			low := strings.ToLower(tok)
			keyTokens = append(keyTokens, low)
			if (low == "ix" || low == "iy") && i+1 < len(tokens) && (tokens[i+1] == "+" || tokens[i+1] == "-") {
				sign := tokens[i+1]
				j := i + 2
				start := j
				depth := 0
				for j < len(tokens) {
					if tokens[j] == "(" {
						depth++
						j++
						continue
					}
					if tokens[j] == ")" {
						if depth == 0 {
							break
						}
						depth--
						j++
						continue
					}
					j++
				}
				if j == start {
					return nil, nil, fmt.Errorf("missing displacement in %s addressing", low)
				}
				keyTokens = append(keyTokens, sign)
				idx := len(keyTokens)
				keyTokens = append(keyTokens, sentinel(len(spans)))
				exprTokens := append([]string{sign}, tokens[start:j]...)
				spans = append(spans, exprSpan{tokens: exprTokens, determined: true, sentinelIdx: idx})
				i = j
				continue
			}
			i++

		default:
			start := i
			depth := 0
			j := i
			for j < len(tokens) {
				switch {
				case tokens[j] == "(":
					depth++
				case tokens[j] == ")":
					if depth == 0 {
						goto doneSpan
					}
					depth--
				case tokens[j] == "," && depth == 0:
					goto doneSpan
				}
				j++
			}
		doneSpan:
			idx := len(keyTokens)
			keyTokens = append(keyTokens, sentinel(len(spans)))
			spans = append(spans, exprSpan{tokens: tokens[start:j], determined: false, sentinelIdx: idx})
			i = j
		}
	}
	return keyTokens, spans, nil
}

// scanRegisterOrIndexed parses the single operand form used after the
// bit index in bit/res/set: a bare register token, or an (ix+d)/(iy+d)
// memory operand.
func (a *Assembler) scanRegisterOrIndexed(tokens []string) ([]string, []exprSpan, error) {
	if len(tokens) == 0 {
		return nil, nil, fmt.Errorf("missing operand")
	}
	if tokens[0] != "(" {
		if len(tokens) != 1 {
			return nil, nil, fmt.Errorf("malformed register operand %v", tokens)
		}
		return []string{strings.ToLower(tokens[0])}, nil, nil
	}
	if len(tokens) < 3 || tokens[len(tokens)-1] != ")" {
		return nil, nil, fmt.Errorf("malformed memory operand %v", tokens)
	}
	inner := tokens[1 : len(tokens)-1]
	if len(inner) == 1 {
		return []string{"(", strings.ToLower(inner[0]), ")"}, nil, nil
	}
	if len(inner) >= 2 {
		reg := strings.ToLower(inner[0])
		sign := inner[1]
		if (reg == "ix" || reg == "iy") && (sign == "+" || sign == "-") {
			if len(inner) < 3 {
				return nil, nil, fmt.Errorf("missing displacement in %s addressing", reg)
			}
			exprTokens := append([]string{sign}, inner[2:]...)
			return []string{"(", reg, sign, instable.BytePlaceholder, ")"},
				[]exprSpan{{tokens: exprTokens, determined: true}}, nil
		}
	}
	return nil, nil, fmt.Errorf("malformed memory operand %v", tokens)
}

// buildOpcode materializes descr's fixed bytes (baking in the
// DDCB/FDCB suffix when present) and pairs each remaining slot with
// its expression span, in left-to-right order.
func buildOpcode(descr *instable.Descriptor, spans []exprSpan) (*instable.Descriptor, []byte, []fixup.Fixup, error) {
	slots := descr.Slots()
	if len(slots) != len(spans) {
		return nil, nil, nil, fmt.Errorf("internal error: %s expects %d operand(s), got %d", descr.Mnemonic, len(slots), len(spans))
	}

	opcode := make([]byte, descr.Bytes)
	copy(opcode, descr.Code)
	if descr.Kind == instable.KindDdCbExt {
		opcode[len(descr.Code)+1] = descr.Ext
	}

	var fixups []fixup.Fixup
	for i, slot := range slots {
		kind := fixup.Byte
		switch {
		case slot.Rel8:
			kind = fixup.Rel8
		case slot.Size == 2:
			kind = fixup.Word
		}
		fixups = append(fixups, fixup.Fixup{Offset: slot.Offset, Size: slot.Size, Kind: kind, Tokens: spans[i].tokens})
	}
	return descr, opcode, fixups, nil
}
