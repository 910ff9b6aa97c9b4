package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lookbusy1344/z80toolchain/asm"
	"github.com/lookbusy1344/z80toolchain/emitter"
	"github.com/lookbusy1344/z80toolchain/eval"
)

func runAsm(args []string) error {
	fs := flag.NewFlagSet("asm", flag.ContinueOnError)
	src := fs.String("f", "", "source file to assemble")
	out := fs.String("o", "", "output binary path")
	sizeArg := fs.String("s", "", "zero-fill output to this size first (decimal or 0x...)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *src == "" || *out == "" {
		return fmt.Errorf("asm requires -f <src> and -o <bin>")
	}

	source, err := os.ReadFile(*src) // #nosec G304 -- user-specified source path
	if err != nil {
		return fmt.Errorf("source file not found: %w", err)
	}

	lines, err := asm.New().Assemble(string(source), *src)
	if err != nil {
		return err
	}

	var size *int
	if *sizeArg != "" {
		v, err := eval.ParseIntLiteral(*sizeArg)
		if err != nil {
			return fmt.Errorf("invalid -s size %q: %w", *sizeArg, err)
		}
		size = &v
	}

	img, err := emitter.Emit(lines, size)
	if err != nil {
		return err
	}

	if err := os.WriteFile(*out, img, 0644); err != nil { // #nosec G306 -- assembler output is not sensitive
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}
