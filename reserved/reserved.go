// Package reserved holds the closed set of Z80 register names,
// condition codes, and mnemonics. A label may never collide with a
// member of this set.
package reserved

import (
	"strings"

	"github.com/lookbusy1344/z80toolchain/instable"
)

var mnemonics = []string{
	"nop", "ld", "halt", "push", "pop", "ex", "exx",
	"add", "adc", "sub", "sbc", "and", "xor", "or", "cp",
	"inc", "dec", "rlca", "rrca", "rla", "rra", "daa", "cpl", "scf", "ccf",
	"di", "ei", "ret", "jp", "jr", "djnz", "call", "rst",
	"in", "out",
	"rlc", "rrc", "rl", "rr", "sla", "sra", "srl", "bit", "res", "set",
	"im", "neg", "retn", "reti", "rrd", "rld",
	"ldi", "ldd", "ldir", "lddr", "cpi", "cpd", "cpir", "cpdr",
	"ini", "ind", "inir", "indr", "outi", "outd", "otir", "otdr",
	"org", "equ", "db", "defb", "dw", "defw",
}

var registerNames = []string{"i", "r", "sp", "ix", "iy", "af", "af'"}

var set map[string]bool

func init() {
	set = make(map[string]bool)
	add := func(names []string) {
		for _, n := range names {
			set[strings.ToLower(n)] = true
		}
	}
	add(mnemonics)
	add(registerNames)
	add(instable.Reg8Names)
	add(instable.SS16Names)
	add(instable.QQ16Names)
	add(instable.CC8Names)
	delete(set, "(hl)") // not a bare identifier token
}

// Is reports whether name collides with a register, condition code, or
// mnemonic, case-insensitively.
func Is(name string) bool {
	return set[strings.ToLower(name)]
}
