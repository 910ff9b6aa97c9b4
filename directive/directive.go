// Package directive implements the semantics of ORG, EQU, DB/DEFB, and
// DW/DEFW.
package directive

import (
	"fmt"

	"github.com/lookbusy1344/z80toolchain/eval"
	"github.com/lookbusy1344/z80toolchain/fixup"
	"github.com/lookbusy1344/z80toolchain/token"
)

// ParseOrg parses an ORG directive's address. addr must be a single
// integer literal, not a general expression.
func ParseOrg(tokens []string) (int, error) {
	if len(tokens) != 1 {
		return 0, fmt.Errorf("ORG requires exactly one address")
	}
	if !eval.IsIntLiteral(tokens[0]) {
		return 0, fmt.Errorf("ORG address must be a literal, got %q", tokens[0])
	}
	v, err := eval.ParseIntLiteral(tokens[0])
	if err != nil {
		return 0, fmt.Errorf("invalid ORG address %q: %w", tokens[0], err)
	}
	if v < 0 || v > 0xFFFF {
		return 0, fmt.Errorf("ORG address %d out of range [0,65535]", v)
	}
	return v, nil
}

// ParseEqu evaluates an EQU directive's value expression immediately;
// it may reference only EQUs defined on earlier lines. A label
// reference fails, since no label has an address yet at this point.
func ParseEqu(tokens []string, pos eval.Position, resolver eval.Resolver) (int, error) {
	v, consumed, err := eval.Eval(tokens, pos, eval.Pass2, resolver)
	if err != nil {
		return 0, err
	}
	if consumed != len(tokens) {
		return 0, fmt.Errorf("unexpected trailing tokens after EQU value")
	}
	if v < 0 || v > 0xFFFF {
		return 0, fmt.Errorf("EQU value %d out of range [0,65535]", v)
	}
	return v, nil
}

// DB evaluates a comma-separated DB/DEFB operand list into its byte
// form. String literal operands contribute their decoded bytes
// verbatim; numeric operands are evaluated immediately (pass-1 mode:
// any label reference, forward or backward, yields a zero
// placeholder, matching the directive's lack of a pass-2 fixup
// mechanism) and range-checked to [0,255].
func DB(tokens []string, pos eval.Position, resolver eval.Resolver) ([]byte, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("DB requires at least one operand")
	}

	var out []byte
	i := 0
	for i < len(tokens) {
		tok := tokens[i]
		if token.IsLiteral(tok) && tok[0] == '"' {
			b, err := token.DecodeLiteralBytes(tok)
			if err != nil {
				return nil, err
			}
			out = append(out, b...)
			i++
		} else {
			v, consumed, err := eval.Eval(tokens[i:], pos, eval.Pass1, resolver)
			if err != nil {
				return nil, err
			}
			if v < 0 || v > 255 {
				return nil, fmt.Errorf("DB value %d out of range [0,255]", v)
			}
			out = append(out, byte(v))
			i += consumed
		}

		if i < len(tokens) {
			if tokens[i] != "," {
				return nil, fmt.Errorf("expected ',' in DB operand list, got %q", tokens[i])
			}
			i++
		}
	}
	return out, nil
}

// DW evaluates a comma-separated DW/DEFW operand list. A bare 1-2
// character literal operand is encoded directly; any other operand is
// deferred as a word Fixup for pass-2, with a 00 00 placeholder
// written in its place.
func DW(tokens []string, pos eval.Position, resolver eval.Resolver) ([]byte, []fixup.Fixup, error) {
	if len(tokens) == 0 {
		return nil, nil, fmt.Errorf("DW requires at least one operand")
	}

	var out []byte
	var fixups []fixup.Fixup
	i := 0
	for i < len(tokens) {
		tok := tokens[i]
		isLastOrComma := i+1 >= len(tokens) || tokens[i+1] == ","

		if isLastOrComma && token.IsLiteral(tok) {
			b, err := token.DecodeLiteralBytes(tok)
			if err == nil && len(b) >= 1 && len(b) <= 2 {
				var v int
				if len(b) == 1 {
					v = int(b[0])
				} else {
					v = int(b[0])<<8 | int(b[1])
				}
				out = append(out, byte(v&0xFF), byte((v>>8)&0xFF))
				i++
				if i < len(tokens) {
					i++ // skip comma
				}
				continue
			}
		}

		_, consumed, err := eval.Eval(tokens[i:], pos, eval.Pass1, resolver)
		if err != nil {
			return nil, nil, err
		}
		fixups = append(fixups, fixup.Fixup{
			Offset: len(out),
			Size:   2,
			Kind:   fixup.Word,
			Tokens: append([]string(nil), tokens[i:i+consumed]...),
		})
		out = append(out, 0, 0)
		i += consumed

		if i < len(tokens) {
			if tokens[i] != "," {
				return nil, nil, fmt.Errorf("expected ',' in DW operand list, got %q", tokens[i])
			}
			i++
		}
	}
	return out, fixups, nil
}
