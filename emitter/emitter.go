// Package emitter lays assembled lines out into a flat binary image,
// the collaborator step between the assembler's pass-2 output and the
// bytes written to disk by the asm CLI subcommand.
package emitter

import (
	"fmt"

	"github.com/lookbusy1344/z80toolchain/asm"
)

// Emit writes each line's opcode at its base+offset address into a
// byte slice. With size non-nil, the result is zero-filled to *size
// first and any opcode extending past it is an error; with size nil,
// the result grows to fit the highest address written. Gaps between
// non-contiguous ORG regions are preserved as zero bytes either way.
func Emit(lines []asm.AsmLine, size *int) ([]byte, error) {
	highest := 0
	for _, l := range lines {
		end := l.Base + l.Offset + len(l.Opcode)
		if end > highest {
			highest = end
		}
	}

	var img []byte
	if size != nil {
		img = make([]byte, *size)
	} else {
		img = make([]byte, highest)
	}

	for _, l := range lines {
		if len(l.Opcode) == 0 {
			continue
		}
		addr := l.Base + l.Offset
		end := addr + len(l.Opcode)
		if end > len(img) {
			return nil, fmt.Errorf("opcode at 0x%04X (%d bytes) exceeds image size %d", addr, len(l.Opcode), len(img))
		}
		copy(img[addr:end], l.Opcode)
	}

	return img, nil
}
