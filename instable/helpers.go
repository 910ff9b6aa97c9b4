package instable

import "fmt"

func tok(name string) []string { return []string{name} }

func mem(name string) []string { return []string{"(", name, ")"} }

// mnemOperand renders a token group (as produced by reg8Tokens/mem) back
// into compact display text for building a decode-side Mnemonic string,
// e.g. {"(","hl",")"} -> "(hl)".
func mnemOperand(tokens []string) string {
	if len(tokens) == 1 {
		return tokens[0]
	}
	s := ""
	for _, t := range tokens {
		s += t
	}
	return s
}

func hexByteTok(b byte) []string { return []string{fmt.Sprintf("0x%02x", b)} }
func decByteTok(b byte) []string { return []string{fmt.Sprintf("%d", b)} }

func rstMnemonic(addr byte) string { return fmt.Sprintf("rst 0x%02x", addr) }
