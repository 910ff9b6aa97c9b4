package instable

// addED registers the ED-prefixed family: I/O, 16-bit arithmetic with
// carry, block transfer/search/IO, and miscellaneous control.
func addED(t *Table) {
	ioRegIdx := []int{0, 1, 2, 3, 4, 5, 7} // reg8 indices excluding (hl)
	for _, r := range ioRegIdx {
		t.add(opNone([]byte{0xED, byte(0x40 + r*8)}, "in "+mnemOperand(reg8Tokens(r))+", (c)",
			key("in", reg8Tokens(r), mem("c"))))
		t.add(opNone([]byte{0xED, byte(0x41 + r*8)}, "out (c), "+mnemOperand(reg8Tokens(r)),
			key("out", mem("c"), reg8Tokens(r))))
	}
	t.add(opNone([]byte{0xED, 0x70}, "in (c)", key("in", mem("c"))))

	for i, name := range SS16Names {
		t.add(opNone([]byte{0xED, byte(0x42 + i*16)}, "sbc hl, "+name, key("sbc", tok("hl"), tok(name))))
		t.add(opNone([]byte{0xED, byte(0x4A + i*16)}, "adc hl, "+name, key("adc", tok("hl"), tok(name))))
	}

	// LD (nn),ss / LD ss,(nn) for bc, de, sp (hl already has a direct,
	// non-ED, shorter encoding and is omitted here to avoid a duplicate
	// key for the same operand shape).
	for i, name := range SS16Names {
		if name == "hl" {
			continue
		}
		t.add(opWord([]byte{0xED, byte(0x43 + i*16)}, "ld (%s), "+name, key("ld", mem("0x{1}{0}"), tok(name))))
		t.add(opWord([]byte{0xED, byte(0x4B + i*16)}, "ld "+name+", (%s)", key("ld", tok(name), mem("0x{1}{0}"))))
	}

	t.add(opNone([]byte{0xED, 0x47}, "ld i, a", key("ld", tok("i"), tok("a"))))
	t.add(opNone([]byte{0xED, 0x4F}, "ld r, a", key("ld", tok("r"), tok("a"))))
	t.add(opNone([]byte{0xED, 0x57}, "ld a, i", key("ld", tok("a"), tok("i"))))
	t.add(opNone([]byte{0xED, 0x5F}, "ld a, r", key("ld", tok("a"), tok("r"))))

	t.add(opNone([]byte{0xED, 0x44}, "neg", key("neg")))
	t.add(opNone([]byte{0xED, 0x45}, "retn", key("retn")))
	t.add(opNone([]byte{0xED, 0x4D}, "reti", key("reti")))
	t.add(opNone([]byte{0xED, 0x46}, "im 0", key("im", tok("0"))))
	t.add(opNone([]byte{0xED, 0x56}, "im 1", key("im", tok("1"))))
	t.add(opNone([]byte{0xED, 0x5E}, "im 2", key("im", tok("2"))))
	t.add(opNone([]byte{0xED, 0x67}, "rrd", key("rrd")))
	t.add(opNone([]byte{0xED, 0x6F}, "rld", key("rld")))

	blockOps := []struct {
		code byte
		name string
	}{
		{0xA0, "ldi"}, {0xA8, "ldd"}, {0xB0, "ldir"}, {0xB8, "lddr"},
		{0xA1, "cpi"}, {0xA9, "cpd"}, {0xB1, "cpir"}, {0xB9, "cpdr"},
		{0xA2, "ini"}, {0xAA, "ind"}, {0xB2, "inir"}, {0xBA, "indr"},
		{0xA3, "outi"}, {0xAB, "outd"}, {0xB3, "otir"}, {0xBB, "otdr"},
	}
	for _, b := range blockOps {
		t.add(opNone([]byte{0xED, b.code}, b.name, key(b.name)))
	}
}
