// Package goscript is a virtual machine for a small line-oriented
// scripting language: typed variable declarations, arithmetic, rounding,
// boolean logic, label-based control flow, array and string access, and
// line I/O.
//
// A program is plain text with one instruction per line. The opcode
// comes first, followed by whitespace-separated operands; only quoted
// string literals may contain spaces. Blank lines and lines starting
// with # are ignored.
//
//	DECL count INT
//	SET count 3
//	LABEL loop
//	PRINT count
//	SUB count count 1
//	JGT loop count 0
//	PRINT "done"
//
// Use pkg/script to parse and load source, and pkg/vm to run the loaded
// program:
//
//	prog, err := script.Compile(source)
//	if err != nil { ... }
//	err = vm.New(prog).Run()
//
// cmd/console runs scripts on a terminal; cmd/desktop opens an ebiten
// window that shows PRINT output and feeds typed lines to INPUT.
package goscript
