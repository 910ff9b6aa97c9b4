package instable

// addBase registers the unprefixed (single opcode byte, 0x00-0xFF) half
// of the Z80 instruction set.
func addBase(t *Table) {
	t.add(opNone([]byte{0x00}, "nop", key("nop")))

	// LD r,r' (64 combinations; dst=110,src=110 is HALT, not LD).
	for dst := 0; dst < 8; dst++ {
		for src := 0; src < 8; src++ {
			if dst == 6 && src == 6 {
				continue
			}
			code := byte(0x40 + dst*8 + src)
			m := "ld " + mnemOperand(reg8Tokens(dst)) + ", " + mnemOperand(reg8Tokens(src))
			t.add(opNone([]byte{code}, m, key("ld", reg8Tokens(dst), reg8Tokens(src))))
		}
	}
	t.add(opNone([]byte{0x76}, "halt", key("halt")))

	// LD r,n
	for r := 0; r < 8; r++ {
		code := byte(0x06 + r*8)
		m := "ld " + mnemOperand(reg8Tokens(r)) + ", %s"
		t.add(opByte([]byte{code}, m, key("ld", reg8Tokens(r), bytePlaceholder)))
	}

	t.add(opNone([]byte{0x0A}, "ld a, (bc)", key("ld", tok("a"), mem("bc"))))
	t.add(opNone([]byte{0x1A}, "ld a, (de)", key("ld", tok("a"), mem("de"))))
	t.add(opNone([]byte{0x02}, "ld (bc), a", key("ld", mem("bc"), tok("a"))))
	t.add(opNone([]byte{0x12}, "ld (de), a", key("ld", mem("de"), tok("a"))))

	t.add(opWord([]byte{0x3A}, "ld a, (%s)", key("ld", tok("a"), mem("0x{1}{0}"))))
	t.add(opWord([]byte{0x32}, "ld (%s), a", key("ld", mem("0x{1}{0}"), tok("a"))))
	t.add(opWord([]byte{0x2A}, "ld hl, (%s)", key("ld", tok("hl"), mem("0x{1}{0}"))))
	t.add(opWord([]byte{0x22}, "ld (%s), hl", key("ld", mem("0x{1}{0}"), tok("hl"))))

	// LD dd,nn
	for i, name := range SS16Names {
		code := byte(0x01 + i*16)
		t.add(opWord([]byte{code}, "ld "+name+", %s", key("ld", tok(name), wordPlaceholder)))
	}

	t.add(opNone([]byte{0xF9}, "ld sp, hl", key("ld", tok("sp"), tok("hl"))))

	// PUSH/POP qq
	for i, name := range QQ16Names {
		t.add(opNone([]byte{byte(0xC5 + i*16)}, "push "+name, key("push", tok(name))))
		t.add(opNone([]byte{byte(0xC1 + i*16)}, "pop "+name, key("pop", tok(name))))
	}

	t.add(opNone([]byte{0xEB}, "ex de, hl", key("ex", tok("de"), tok("hl"))))
	t.add(opNone([]byte{0x08}, "ex af, af'", key("ex", tok("af"), tok("af'"))))
	t.add(opNone([]byte{0xD9}, "exx", key("exx")))
	t.add(opNone([]byte{0xE3}, "ex (sp), hl", key("ex", mem("sp"), tok("hl"))))

	// ALU row: add/adc A, r ; sub/and/xor/or/cp r (no explicit A,) ; sbc A,r
	aluRows := []struct {
		base     byte
		mnemonic string
		withA    bool
	}{
		{0x80, "add", true},
		{0x88, "adc", true},
		{0x90, "sub", false},
		{0x98, "sbc", true},
		{0xA0, "and", false},
		{0xA8, "xor", false},
		{0xB0, "or", false},
		{0xB8, "cp", false},
	}
	for _, row := range aluRows {
		for r := 0; r < 8; r++ {
			code := byte(int(row.base) + r)
			var k []string
			var m string
			if row.withA {
				k = key(row.mnemonic, tok("a"), reg8Tokens(r))
				m = row.mnemonic + " a, " + mnemOperand(reg8Tokens(r))
			} else {
				k = key(row.mnemonic, reg8Tokens(r))
				m = row.mnemonic + " " + mnemOperand(reg8Tokens(r))
			}
			t.add(opNone([]byte{code}, m, k))
		}
	}

	// ALU immediate forms
	aluImm := []struct {
		code     byte
		mnemonic string
		withA    bool
	}{
		{0xC6, "add", true}, {0xCE, "adc", true}, {0xD6, "sub", false}, {0xDE, "sbc", true},
		{0xE6, "and", false}, {0xEE, "xor", false}, {0xF6, "or", false}, {0xFE, "cp", false},
	}
	for _, a := range aluImm {
		if a.withA {
			t.add(opByte([]byte{a.code}, a.mnemonic+" a, %s", key(a.mnemonic, tok("a"), bytePlaceholder)))
		} else {
			t.add(opByte([]byte{a.code}, a.mnemonic+" %s", key(a.mnemonic, bytePlaceholder)))
		}
	}

	// INC r / DEC r
	for r := 0; r < 8; r++ {
		t.add(opNone([]byte{byte(0x04 + r*8)}, "inc "+mnemOperand(reg8Tokens(r)), key("inc", reg8Tokens(r))))
		t.add(opNone([]byte{byte(0x05 + r*8)}, "dec "+mnemOperand(reg8Tokens(r)), key("dec", reg8Tokens(r))))
	}

	// INC ss / DEC ss / ADD HL,ss
	for i, name := range SS16Names {
		t.add(opNone([]byte{byte(0x03 + i*16)}, "inc "+name, key("inc", tok(name))))
		t.add(opNone([]byte{byte(0x0B + i*16)}, "dec "+name, key("dec", tok(name))))
		t.add(opNone([]byte{byte(0x09 + i*16)}, "add hl, "+name, key("add", tok("hl"), tok(name))))
	}

	singles := []struct {
		code byte
		m    string
		k    []string
	}{
		{0x07, "rlca", key("rlca")}, {0x0F, "rrca", key("rrca")},
		{0x17, "rla", key("rla")}, {0x1F, "rra", key("rra")},
		{0x27, "daa", key("daa")}, {0x2F, "cpl", key("cpl")},
		{0x37, "scf", key("scf")}, {0x3F, "ccf", key("ccf")},
		{0xF3, "di", key("di")}, {0xFB, "ei", key("ei")},
		{0xC9, "ret", key("ret")}, {0xE9, "jp (hl)", key("jp", mem("hl"))},
	}
	for _, s := range singles {
		t.add(opNone([]byte{s.code}, s.m, s.k))
	}

	// JP nn / JP cc,nn
	t.add(opAbsJmp([]byte{0xC3}, "jp %s", key("jp", wordPlaceholder)))
	for i, cc := range CC8Names {
		t.add(opAbsJmp([]byte{byte(0xC2 + i*8)}, "jp "+cc+", %s", key("jp", tok(cc), wordPlaceholder)))
	}

	// JR e / JR cc,e / DJNZ e
	t.add(opRel8([]byte{0x18}, "jr %s", key("jr", bytePlaceholder)))
	for i, cc := range CC4Names {
		t.add(opRel8([]byte{byte(0x20 + i*8)}, "jr "+cc+", %s", key("jr", tok(cc), bytePlaceholder)))
	}
	t.add(opRel8([]byte{0x10}, "djnz %s", key("djnz", bytePlaceholder)))

	// CALL nn / CALL cc,nn
	t.add(opAbsJmp([]byte{0xCD}, "call %s", key("call", wordPlaceholder)))
	for i, cc := range CC8Names {
		t.add(opAbsJmp([]byte{byte(0xC4 + i*8)}, "call "+cc+", %s", key("call", tok(cc), wordPlaceholder)))
	}

	// RET cc
	for i, cc := range CC8Names {
		t.add(opNone([]byte{byte(0xC0 + i*8)}, "ret "+cc, key("ret", tok(cc))))
	}

	// RST: the target is baked into the opcode itself (like the bit
	// index of bit/res/set), so it is a literal key token, not a fixup.
	for n := 0; n < 8; n++ {
		addr := byte(n * 8)
		code := byte(0xC7 + n*8)
		t.add(opNone([]byte{code}, rstMnemonic(addr), key("rst", hexByteTok(addr))))
		t.add(opNone([]byte{code}, rstMnemonic(addr), key("rst", decByteTok(addr))))
	}

	// IN A,(n) / OUT (n),A
	t.add(opByte([]byte{0xDB}, "in a, (%s)", key("in", tok("a"), mem("0x{0}"))))
	t.add(opByte([]byte{0xD3}, "out (%s), a", key("out", mem("0x{0}"), tok("a"))))
}
