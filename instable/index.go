package instable

// addIndex registers the DD/FD-prefixed IX/IY family: 16-bit loads and
// arithmetic on the index register itself, and the (ix+d)/(iy+d)
// indexed addressing mode including its DDCB/FDCB bit-operation
// extension. prefix is 0xDD for IX, 0xFD for IY; regName is "ix"/"iy".
func addIndex(t *Table, prefix byte, regName string) {
	code2 := func(b byte) []byte { return []byte{prefix, b} }

	t.add(opWord(code2(0x21), "ld "+regName+", %s", key("ld", tok(regName), wordPlaceholder)))
	t.add(opWord(code2(0x22), "ld (%s), "+regName, key("ld", mem("0x{1}{0}"), tok(regName))))
	t.add(opWord(code2(0x2A), "ld "+regName+", (%s)", key("ld", tok(regName), mem("0x{1}{0}"))))

	t.add(opNone(code2(0xF9), "ld sp, "+regName, key("ld", tok("sp"), tok(regName))))
	t.add(opNone(code2(0xE5), "push "+regName, key("push", tok(regName))))
	t.add(opNone(code2(0xE1), "pop "+regName, key("pop", tok(regName))))
	t.add(opNone(code2(0xE3), "ex (sp), "+regName, key("ex", mem("sp"), tok(regName))))
	t.add(opNone(code2(0xE9), "jp ("+regName+")", key("jp", mem(regName))))
	t.add(opNone(code2(0x23), "inc "+regName, key("inc", tok(regName))))
	t.add(opNone(code2(0x2B), "dec "+regName, key("dec", tok(regName))))

	// ADD ix,pp: the hl slot of the unprefixed ADD HL,ss row is replaced
	// by the index register itself.
	addPP := []string{"bc", "de", regName, "sp"}
	for i, name := range addPP {
		t.add(opNone(code2(byte(0x09+i*16)), "add "+regName+", "+name, key("add", tok(regName), tok(name))))
	}

	// indexed addressing: (ix+d)/(ix-d). The canonical key spells '+';
	// the '-' spelling is a decode-identical alias, since the sign only
	// affects how the assembler evaluates/negates the displacement
	// expression, not the encoding.
	addrPlus := func(placeholder []string) []string {
		out := []string{"(", regName, "+"}
		return append(append(out, placeholder...), ")")
	}
	addrMinus := func(placeholder []string) []string {
		out := []string{"(", regName, "-"}
		return append(append(out, placeholder...), ")")
	}
	idxAddr := addrPlus(bytePlaceholder)
	idxAddrAlias := addrMinus(bytePlaceholder)

	registerIndexed := func(d *Descriptor, aliasKey []string) {
		t.add(d)
		t.addEncodeAlias(aliasKey, d)
	}

	registerIndexed(
		opByte(code2(0x34), "inc ("+regName+"+%s)", key("inc", idxAddr)),
		key("inc", idxAddrAlias))
	registerIndexed(
		opByte(code2(0x35), "dec ("+regName+"+%s)", key("dec", idxAddr)),
		key("dec", idxAddrAlias))

	ldImmAddr := addrPlus(byte1Placeholder)
	ldImmAddrAlias := addrMinus(byte1Placeholder)
	registerIndexed(
		opByte2(code2(0x36), "ld ("+regName+"+%s), %s", key("ld", ldImmAddr, bytePlaceholder)),
		key("ld", ldImmAddrAlias, bytePlaceholder))

	aluIdx := []struct {
		code     byte
		mnemonic string
		withA    bool
	}{
		{0x86, "add", true}, {0x8E, "adc", true}, {0x96, "sub", false}, {0x9E, "sbc", true},
		{0xA6, "and", false}, {0xAE, "xor", false}, {0xB6, "or", false}, {0xBE, "cp", false},
	}
	for _, a := range aluIdx {
		if a.withA {
			registerIndexed(
				opByte(code2(a.code), a.mnemonic+" a, ("+regName+"+%s)", key(a.mnemonic, tok("a"), idxAddr)),
				key(a.mnemonic, tok("a"), idxAddrAlias))
		} else {
			registerIndexed(
				opByte(code2(a.code), a.mnemonic+" ("+regName+"+%s)", key(a.mnemonic, idxAddr)),
				key(a.mnemonic, idxAddrAlias))
		}
	}

	// LD r,(ix+d) / LD (ix+d),r for r in b,c,d,e,h,l,a (excludes the
	// (hl) slot: LD (HL),(ix+d) and its inverse are not real forms).
	idxRegIdx := []int{0, 1, 2, 3, 4, 5, 7}
	for _, r := range idxRegIdx {
		rTok := reg8Tokens(r)
		rName := mnemOperand(rTok)
		registerIndexed(
			opByte(code2(byte(0x40+r*8+6)), "ld "+rName+", ("+regName+"+%s)", key("ld", rTok, idxAddr)),
			key("ld", rTok, idxAddrAlias))
		registerIndexed(
			opByte(code2(byte(0x70+r)), "ld ("+regName+"+%s), "+rName, key("ld", idxAddr, rTok)),
			key("ld", idxAddrAlias, rTok))
	}

	// DDCB/FDCB family: rotate/shift and bit/res/set on (ix+d). The
	// displacement is the sole fixup; the trailing byte is baked into
	// Ext, selected by the same row/bit arithmetic as the CB table.
	rotRows := []struct {
		base byte
		name string
	}{
		{0x00, "rlc"}, {0x08, "rrc"}, {0x10, "rl"}, {0x18, "rr"},
		{0x20, "sla"}, {0x28, "sra"}, {0x38, "srl"},
	}
	for _, row := range rotRows {
		ext := row.base + 6
		registerIndexed(
			opDdCbExt(prefix, ext, row.name+" ("+regName+"+%s)", key(row.name, idxAddr)),
			key(row.name, idxAddrAlias))
	}

	kinds := []struct {
		base byte
		name string
	}{{0x40, "bit"}, {0x80, "res"}, {0xC0, "set"}}
	for _, kd := range kinds {
		for b := 0; b < 8; b++ {
			ext := byte(int(kd.base) + b*8 + 6)
			bitTok := decByteTok(byte(b))
			registerIndexed(
				opDdCbExt(prefix, ext, kd.name+" "+mnemOperand(bitTok)+", ("+regName+"+%s)", key(kd.name, bitTok, idxAddr)),
				key(kd.name, bitTok, idxAddrAlias))
		}
	}
}
