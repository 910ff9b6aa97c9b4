package instable

// Reg8Names are the eight 3-bit register encodings shared by LD r,r',
// the ALU row, INC/DEC r, and every CB-prefixed bit operation. Index 6
// is the (HL) memory operand, not a register.
var Reg8Names = []string{"b", "c", "d", "e", "h", "l", "(hl)", "a"}

// SS16Names are the four 2-bit 16-bit register-pair encodings used by
// LD dd,nn / INC ss / DEC ss / ADD HL,ss / ADC HL,ss / SBC HL,ss.
var SS16Names = []string{"bc", "de", "hl", "sp"}

// QQ16Names are the PUSH/POP register-pair encodings (AF instead of SP).
var QQ16Names = []string{"bc", "de", "hl", "af"}

// CC8Names are the eight 3-bit condition codes used by JP/CALL/RET cc.
var CC8Names = []string{"nz", "z", "nc", "c", "po", "pe", "p", "m"}

// CC4Names are the four 2-bit condition codes used by JR cc.
var CC4Names = []string{"nz", "z", "nc", "c"}

func reg8Tokens(i int) []string {
	if i == 6 {
		return []string{"(", "hl", ")"}
	}
	return []string{Reg8Names[i]}
}

func key(mnemonic string, operands ...[]string) []string {
	out := []string{mnemonic}
	for i, op := range operands {
		if i > 0 {
			out = append(out, ",")
		}
		out = append(out, op...)
	}
	return out
}

// Placeholder text for the three operand-slot shapes an encode key can
// carry. Exported so the assembler's operand scanner can build trial
// keys for table lookup.
const (
	BytePlaceholder  = "0x{0}"
	WordPlaceholder  = "0x{1}{0}"
	Byte1Placeholder = "0x{1}"
)

var (
	bytePlaceholder  = []string{BytePlaceholder}
	wordPlaceholder  = []string{WordPlaceholder}
	byte1Placeholder = []string{Byte1Placeholder}
)

func opNone(code []byte, mnemonic string, keyTokens []string) *Descriptor {
	return &Descriptor{Key: keyTokens, Code: code, Bytes: len(code), Kind: KindNone, Mnemonic: mnemonic}
}

func opByte(code []byte, mnemonic string, keyTokens []string) *Descriptor {
	return &Descriptor{Key: keyTokens, Code: code, Bytes: len(code) + 1, Kind: KindByteImm, Mnemonic: mnemonic}
}

func opByte2(code []byte, mnemonic string, keyTokens []string) *Descriptor {
	return &Descriptor{Key: keyTokens, Code: code, Bytes: len(code) + 2, Kind: KindByteImm, Mnemonic: mnemonic}
}

func opWord(code []byte, mnemonic string, keyTokens []string) *Descriptor {
	return &Descriptor{Key: keyTokens, Code: code, Bytes: len(code) + 2, Kind: KindWordImm, Mnemonic: mnemonic}
}

func opRel8(code []byte, mnemonic string, keyTokens []string) *Descriptor {
	return &Descriptor{Key: keyTokens, Code: code, Bytes: len(code) + 1, Kind: KindRel8, Mnemonic: mnemonic}
}

func opAbsJmp(code []byte, mnemonic string, keyTokens []string) *Descriptor {
	return &Descriptor{Key: keyTokens, Code: code, Bytes: len(code) + 2, Kind: KindAbsJmp, Mnemonic: mnemonic}
}

func opDdCbExt(prefix, ext byte, mnemonic string, keyTokens []string) *Descriptor {
	return &Descriptor{Key: keyTokens, Code: []byte{prefix, 0xCB}, Bytes: 4, Kind: KindDdCbExt, Ext: ext, Mnemonic: mnemonic}
}
