// Command z80asm is the CLI front-end over the asm/disasm/emitter/config
// packages: two subcommands, "asm" and "disasm".
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "asm":
		err = runAsm(os.Args[2:])
	case "disasm":
		err = runDisasm(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown subcommand %q\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `z80asm - Z80 assembler and disassembler

Usage:
  z80asm asm -f <src> -o <bin> [-s <size>]
  z80asm disasm -i <img> [-i <img> ...] [-c <config>] [-s <start>] [-n] [-o <out>]
`)
}
