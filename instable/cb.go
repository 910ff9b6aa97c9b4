package instable

import "fmt"

// addCB registers the CB-prefixed family: documented rotate/shift, plus
// bit/res/set over all eight register encodings.
func addCB(t *Table) {
	rotRows := []struct {
		base byte
		name string
	}{
		{0x00, "rlc"}, {0x08, "rrc"}, {0x10, "rl"}, {0x18, "rr"},
		{0x20, "sla"}, {0x28, "sra"}, {0x38, "srl"}, // 0x30 (sll) is undocumented, omitted
	}
	for _, row := range rotRows {
		for r := 0; r < 8; r++ {
			code := byte(int(row.base) + r)
			t.add(opNone([]byte{0xCB, code}, row.name+" "+mnemOperand(reg8Tokens(r)), key(row.name, reg8Tokens(r))))
		}
	}

	kinds := []struct {
		base byte
		name string
	}{{0x40, "bit"}, {0x80, "res"}, {0xC0, "set"}}
	for _, kd := range kinds {
		for b := 0; b < 8; b++ {
			for r := 0; r < 8; r++ {
				code := byte(int(kd.base) + b*8 + r)
				m := fmt.Sprintf("%s %d, %s", kd.name, b, mnemOperand(reg8Tokens(r)))
				bitTok := []string{fmt.Sprintf("%d", b)}
				t.add(opNone([]byte{0xCB, code}, m, key(kd.name, bitTok, reg8Tokens(r))))
			}
		}
	}
}
