// Package disasm implements the linear-sweep Z80 disassembler: longest-
// match decoding driven by instable.Table, data-region handling, and
// L_hhhh label back-patching for relative and absolute jump targets.
package disasm

import (
	"fmt"

	"github.com/lookbusy1344/z80toolchain/instable"
)

// DisasmLine is one decoded output line: either a data byte, an
// invalid-opcode byte, or a matched instruction.
type DisasmLine struct {
	Address int
	Opcode  []byte
	Text    string
	Label   string // set by the back-patching pass when some other line targets this address
}

// DataRange is an inclusive [Lo, Hi] address range to render as data
// bytes instead of decoding as code. Lo == Hi (a single byte) is
// valid; only Lo > Hi is rejected by the config loader.
type DataRange struct {
	Lo int `toml:"lo"`
	Hi int `toml:"hi"`
}

// Disassemble decodes buf, interpreted as residing in memory starting
// at start, into a line list with labels back-patched. chr supplies
// the 256-entry character annotation used in data-byte comments.
func Disassemble(buf []byte, start int, table *instable.Table, datamap []DataRange, chr [256]string) ([]DisasmLine, error) {
	if start < 0 || start > 0xFFFF {
		return nil, fmt.Errorf("start address %#x out of range [0,0xFFFF]", start)
	}
	if start+len(buf) > 0x10000 {
		return nil, fmt.Errorf("disassembly range exceeds 64KiB address space")
	}

	var lines []DisasmLine
	a := start
	end := start + len(buf)
	for a < end {
		if inDataRange(datamap, a) {
			b := buf[a-start]
			lines = append(lines, DisasmLine{
				Address: a,
				Opcode:  []byte{b},
				Text:    fmt.Sprintf("db 0x%02X ; %s", b, chr[b]),
			})
			a++
			continue
		}

		descr, window, ok := decodeOne(table, buf, start, a)
		if !ok {
			b := buf[a-start]
			lines = append(lines, DisasmLine{
				Address: a,
				Opcode:  []byte{b},
				Text:    "db 0x" + fmt.Sprintf("%02X", b) + " ; Invalid Opcode",
			})
			a++
			continue
		}

		lines = append(lines, DisasmLine{
			Address: a,
			Opcode:  append([]byte(nil), window...),
			Text:    formatDescriptor(descr, window, a),
		})
		a += len(window)
	}

	backpatchLabels(lines)
	return lines, nil
}

func inDataRange(datamap []DataRange, a int) bool {
	for _, r := range datamap {
		if a >= r.Lo && a <= r.Hi {
			return true
		}
	}
	return false
}

// decodeOne finds the longest matching instruction starting at address
// a. The (prefix, 0xCB, suffix) key is tried first since that pairing
// never carries an independent 2-byte meaning; otherwise the 2-byte
// key is tried (its descriptor's Bytes gives the true window length),
// falling back to the 1-byte key.
func decodeOne(table *instable.Table, buf []byte, start, a int) (*instable.Descriptor, []byte, bool) {
	rel := a - start
	remaining := len(buf) - rel

	if remaining >= 4 && buf[rel+1] == 0xCB && (buf[rel] == 0xDD || buf[rel] == 0xFD) {
		if d, ok := table.DecodeKey3(buf[rel], buf[rel+1], buf[rel+3]); ok && d.Bytes == 4 {
			return d, buf[rel : rel+4], true
		}
	}
	if remaining >= 2 {
		if d, ok := table.DecodeKey2(buf[rel], buf[rel+1]); ok && d.Bytes <= remaining {
			return d, buf[rel : rel+d.Bytes], true
		}
	}
	if remaining >= 1 {
		if d, ok := table.DecodeKey1(buf[rel]); ok && d.Bytes <= remaining {
			return d, buf[rel : rel+d.Bytes], true
		}
	}
	return nil, nil, false
}

func labelRef(addr int) string {
	return fmt.Sprintf("L_%04X", addr&0xFFFF)
}

// formatDescriptor renders descr's mnemonic template against the
// decoded window bytes, following the per-length/kind layout of the
// spec's disassembler formatter table.
func formatDescriptor(descr *instable.Descriptor, window []byte, addr int) string {
	switch descr.Kind {
	case instable.KindNone:
		return descr.Mnemonic

	case instable.KindRel8:
		delta := int(int8(window[1]))
		target := (addr + 2 + delta) & 0xFFFF
		return fmt.Sprintf(descr.Mnemonic, labelRef(target))

	case instable.KindAbsJmp:
		target := int(window[1]) | int(window[2])<<8
		return fmt.Sprintf(descr.Mnemonic, labelRef(target))

	case instable.KindWordImm:
		value := int(window[len(window)-2]) | int(window[len(window)-1])<<8
		return fmt.Sprintf(descr.Mnemonic, fmt.Sprintf("0x%04X", value))

	case instable.KindDdCbExt:
		disp := window[2]
		return fmt.Sprintf(descr.Mnemonic, fmt.Sprintf("0x%02X", disp))

	case instable.KindByteImm:
		n := len(window) - len(descr.Code)
		if n == 1 {
			return fmt.Sprintf(descr.Mnemonic, fmt.Sprintf("0x%02X", window[len(descr.Code)]))
		}
		disp := window[len(descr.Code)]
		imm := window[len(descr.Code)+1]
		return fmt.Sprintf(descr.Mnemonic, fmt.Sprintf("0x%02X", disp), fmt.Sprintf("0x%02X", imm))
	}
	return descr.Mnemonic
}

// backpatchLabels scans every emitted line's text for L_hhhh references
// and attaches Label to whichever line, if any, sits at that address.
func backpatchLabels(lines []DisasmLine) {
	byAddr := make(map[int]int, len(lines))
	for i, l := range lines {
		byAddr[l.Address] = i
	}
	seen := make(map[int]bool)
	for _, l := range lines {
		for _, addr := range referencedAddresses(l.Text) {
			if seen[addr] {
				continue
			}
			seen[addr] = true
			if idx, ok := byAddr[addr]; ok {
				lines[idx].Label = labelRef(addr) + ":"
			}
		}
	}
}

func referencedAddresses(text string) []int {
	var out []int
	for i := 0; i+6 <= len(text); i++ {
		if text[i] == 'L' && text[i+1] == '_' && isHex4(text[i+2:i+6]) {
			var addr int
			fmt.Sscanf(text[i+2:i+6], "%04X", &addr)
			out = append(out, addr)
			i += 5
		}
	}
	return out
}

func isHex4(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')) {
			return false
		}
	}
	return true
}
