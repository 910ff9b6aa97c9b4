package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lookbusy1344/z80toolchain/config"
	"github.com/lookbusy1344/z80toolchain/disasm"
	"github.com/lookbusy1344/z80toolchain/eval"
	"github.com/lookbusy1344/z80toolchain/instable"
)

// stringSlice collects repeated occurrences of a flag, e.g. -i a -i b.
type stringSlice []string

func (s *stringSlice) String() string { return strings.Join(*s, ",") }

func (s *stringSlice) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func runDisasm(args []string) error {
	fs := flag.NewFlagSet("disasm", flag.ContinueOnError)
	var images stringSlice
	fs.Var(&images, "i", "raw image file to decode (repeatable, concatenated in order)")
	configPath := fs.String("c", "", "config module path (TOML)")
	startArg := fs.String("s", "0", "start address (decimal or 0x...)")
	nodump := fs.Bool("n", false, "suppress address/byte-dump columns")
	out := fs.String("o", "", "output path (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if len(images) == 0 {
		return fmt.Errorf("disasm requires at least one -i <img>")
	}

	var buf []byte
	for _, path := range images {
		b, err := os.ReadFile(path) // #nosec G304 -- user-specified image path
		if err != nil {
			return fmt.Errorf("image file not found: %w", err)
		}
		buf = append(buf, b...)
	}
	if len(buf) > 0x10000 {
		return fmt.Errorf("total disassembly input %d bytes exceeds 64KiB", len(buf))
	}

	start, err := eval.ParseIntLiteral(*startArg)
	if err != nil {
		return fmt.Errorf("invalid -s start address %q: %w", *startArg, err)
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		cfg, err = config.LoadFrom(*configPath)
		if err != nil {
			return err
		}
	}

	lines, err := disasm.Disassemble(buf, start, instable.Shared(), cfg.Data, cfg.CharMap())
	if err != nil {
		return err
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out) // #nosec G304 -- user-specified output path
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	useNodump := *nodump || cfg.Output == "nodump"
	fmt.Fprintf(w, "org 0x%04X\n", start)
	for _, l := range lines {
		writeLine(w, l, useNodump)
	}
	return nil
}

func writeLine(w *os.File, l disasm.DisasmLine, nodump bool) {
	if nodump {
		if l.Label != "" {
			fmt.Fprintln(w, l.Label)
		}
		fmt.Fprintln(w, "    "+l.Text)
		return
	}

	var bytesCol strings.Builder
	for i, b := range l.Opcode {
		if i > 0 {
			bytesCol.WriteByte(' ')
		}
		fmt.Fprintf(&bytesCol, "%02X", b)
	}

	fmt.Fprintf(w, "0x%04X %-11s %6s %s\n", l.Address, bytesCol.String(), l.Label, l.Text)
}
