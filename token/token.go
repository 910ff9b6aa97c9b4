// Package token splits one line of Z80 assembly source into tokens:
// string/char literals are lifted out first so embedded punctuation and
// comment characters inside them are inert, then comments are
// stripped, structural punctuation is padded, and the remainder is
// split on whitespace.
package token

import (
	"fmt"
	"strconv"
	"strings"
)

const punctuation = "():,+-*/"

// placeholderPrefix/Suffix bracket a lifted literal's index so it
// survives padding and whitespace splitting as a single field. \x00
// cannot occur in ordinary source text.
const placeholderPrefix = "\x00LIT"
const placeholderSuffix = "\x00"

// Tokenize converts one source line into its token sequence. lineNo
// and file are used only to annotate an error.
func Tokenize(line string, file string, lineNo int) ([]string, error) {
	literals, stripped, err := liftLiterals(line, file, lineNo)
	if err != nil {
		return nil, err
	}
	stripped = stripComment(stripped)
	stripped = padPunctuation(stripped)

	fields := strings.Fields(stripped)
	tokens := make([]string, len(fields))
	for i, f := range fields {
		tokens[i] = restoreLiteral(f, literals)
	}
	return tokens, nil
}

func liftLiterals(line, file string, lineNo int) ([]string, string, error) {
	var literals []string
	var out strings.Builder

	runes := []rune(line)
	n := len(runes)
	i := 0
	for i < n {
		c := runes[i]
		if c != '"' && c != '\'' {
			out.WriteRune(c)
			i++
			continue
		}

		quote := c
		start := i
		var lit strings.Builder
		lit.WriteRune(c)
		j := i + 1
		closed := false
		for j < n {
			cj := runes[j]
			if cj == '\\' && j+1 < n {
				lit.WriteRune(cj)
				lit.WriteRune(runes[j+1])
				j += 2
				continue
			}
			lit.WriteRune(cj)
			j++
			if cj == quote {
				closed = true
				break
			}
		}
		if !closed {
			if quote == '"' {
				return nil, "", newError(Position{File: file, Line: lineNo}, line,
					"unterminated literal starting at column %d", start+1)
			}
			// A lone ' with no matching close is not a char literal (e.g.
			// the af' register name, or an apostrophe inside a comment
			// that hasn't been stripped yet) - leave it in place.
			out.WriteRune(quote)
			i = start + 1
			continue
		}

		idx := len(literals)
		literals = append(literals, lit.String())
		out.WriteString(placeholderPrefix)
		out.WriteString(strconv.Itoa(idx))
		out.WriteString(placeholderSuffix)
		i = j
	}
	return literals, out.String(), nil
}

func stripComment(s string) string {
	if i := strings.IndexByte(s, ';'); i >= 0 {
		return s[:i]
	}
	return s
}

func padPunctuation(s string) string {
	var out strings.Builder
	for _, c := range s {
		if strings.ContainsRune(punctuation, c) {
			out.WriteByte(' ')
			out.WriteRune(c)
			out.WriteByte(' ')
		} else {
			out.WriteRune(c)
		}
	}
	return out.String()
}

func restoreLiteral(field string, literals []string) string {
	if !strings.HasPrefix(field, placeholderPrefix) || !strings.HasSuffix(field, placeholderSuffix) {
		return field
	}
	mid := field[len(placeholderPrefix) : len(field)-len(placeholderSuffix)]
	idx, err := strconv.Atoi(mid)
	if err != nil || idx < 0 || idx >= len(literals) {
		return field
	}
	return literals[idx]
}

// DecodeLiteralBytes strips the surrounding quotes from a lifted string
// or char literal and decodes its backslash escapes.
func DecodeLiteralBytes(lit string) ([]byte, error) {
	if len(lit) < 2 {
		return nil, fmt.Errorf("malformed literal %q", lit)
	}
	quote := lit[0]
	if lit[len(lit)-1] != quote || (quote != '"' && quote != '\'') {
		return nil, fmt.Errorf("malformed literal %q", lit)
	}
	body := lit[1 : len(lit)-1]

	var out []byte
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			out = append(out, c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			out = append(out, '\n')
		case 't':
			out = append(out, '\t')
		case '\\':
			out = append(out, '\\')
		case '"':
			out = append(out, '"')
		case '\'':
			out = append(out, '\'')
		default:
			return nil, fmt.Errorf("unknown escape sequence \\%c in %q", body[i], lit)
		}
	}
	return out, nil
}

// IsLiteral reports whether tok is a lifted string/char literal.
func IsLiteral(tok string) bool {
	return len(tok) >= 2 && (tok[0] == '"' || tok[0] == '\'') && tok[len(tok)-1] == tok[0]
}
