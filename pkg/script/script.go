// Package script parses line-oriented script source into an executable
// Program: one instruction per line, an opcode followed by
// whitespace-delimited atomic operands. Parsing and label resolution are
// whole-program passes that run before any instruction executes.
package script

import (
	"strconv"
	"strings"
	"unicode"
)

type Opcode string

const (
	OpDecl Opcode = "DECL"
	OpSet  Opcode = "SET"
	OpFree Opcode = "FREE"

	OpAdd Opcode = "ADD"
	OpSub Opcode = "SUB"
	OpMul Opcode = "MUL"
	OpDiv Opcode = "DIV"
	OpMod Opcode = "MOD"

	OpRound Opcode = "ROUND"
	OpFloor Opcode = "FLOOR"
	OpCeil  Opcode = "CEIL"

	OpAnd Opcode = "AND"
	OpOr  Opcode = "OR"
	OpXor Opcode = "XOR"
	OpNot Opcode = "NOT"

	OpLabel Opcode = "LABEL"
	OpJmp   Opcode = "JMP"
	OpJeq   Opcode = "JEQ"
	OpJne   Opcode = "JNE"
	OpJgt   Opcode = "JGT"
	OpJlt   Opcode = "JLT"

	OpConvert Opcode = "CONVERT"
	OpSlice   Opcode = "SLICE"
	OpIndex   Opcode = "INDEX"
	OpLen     Opcode = "LEN"
	OpPrint   Opcode = "PRINT"
	OpInput   Opcode = "INPUT"
)

// ArithmeticOps holds the opcodes whose three operands are
// destination, op1, op2 over a single numeric family.
var ArithmeticOps = map[Opcode]bool{
	OpAdd: true,
	OpSub: true,
	OpMul: true,
	OpDiv: true,
	OpMod: true,
}

// RoundingOps take a FLOAT source and write an INT destination.
var RoundingOps = map[Opcode]bool{
	OpRound: true,
	OpFloor: true,
	OpCeil:  true,
}

// BooleanOps holds the binary BOOL opcodes. NOT is handled separately
// because of its optional trailing operand.
var BooleanOps = map[Opcode]bool{
	OpAnd: true,
	OpOr:  true,
	OpXor: true,
}

// CondJumpOps holds the conditional jumps: label, op1, op2.
var CondJumpOps = map[Opcode]bool{
	OpJeq: true,
	OpJne: true,
	OpJgt: true,
	OpJlt: true,
}

// TypeNames enumerates the keywords accepted by DECL.
var TypeNames = map[string]bool{
	"INT":    true,
	"FLOAT":  true,
	"BOOL":   true,
	"STRING": true,
	"ARRAY":  true,
}

type OperandKind int

const (
	// OperandLiteral carries a parsed literal in Lit.
	OperandLiteral OperandKind = iota
	// OperandVariable names a variable; resolved at execution time.
	OperandVariable
	// OperandLabel names a jump target; resolved at load time.
	OperandLabel
	// OperandType is a DECL type keyword, stored uppercased in Name.
	OperandType
	// OperandWord is a bare PRINT token: printed as the named variable's
	// value if one is live, otherwise as literal text.
	OperandWord
)

type LitKind int

const (
	LitInt LitKind = iota
	LitFloat
	LitBool
	LitString
	LitArray
)

// Literal is a parsed literal token. Exactly one payload field is
// meaningful, selected by Kind.
type Literal struct {
	Kind  LitKind
	Int   int64
	Float float64
	Bool  bool
	Str   string
	Elems []Literal
}

type Operand struct {
	Kind OperandKind
	Name string
	Lit  Literal
}

// Instruction is one parsed source line. Immutable once parsed.
type Instruction struct {
	Op       Opcode
	Operands []Operand
	Line     int
}

type slot int

const (
	slotVar slot = iota
	slotValue
	slotLit
	slotLabel
	slotType
	slotText
)

var signatures = map[Opcode][]slot{
	OpDecl: {slotVar, slotType},
	OpSet:  {slotVar, slotLit},
	OpFree: {slotVar},

	OpAdd: {slotVar, slotValue, slotValue},
	OpSub: {slotVar, slotValue, slotValue},
	OpMul: {slotVar, slotValue, slotValue},
	OpDiv: {slotVar, slotValue, slotValue},
	OpMod: {slotVar, slotValue, slotValue},

	OpRound: {slotVar, slotValue},
	OpFloor: {slotVar, slotValue},
	OpCeil:  {slotVar, slotValue},

	OpAnd: {slotVar, slotValue, slotValue},
	OpOr:  {slotVar, slotValue, slotValue},
	OpXor: {slotVar, slotValue, slotValue},
	OpNot: {slotVar, slotValue},

	OpLabel: {slotLabel},
	OpJmp:   {slotLabel},
	OpJeq:   {slotLabel, slotValue, slotValue},
	OpJne:   {slotLabel, slotValue, slotValue},
	OpJgt:   {slotLabel, slotValue, slotValue},
	OpJlt:   {slotLabel, slotValue, slotValue},

	OpConvert: {slotVar, slotVar},
	OpSlice:   {slotVar, slotVar, slotValue, slotValue},
	OpIndex:   {slotVar, slotVar, slotValue},
	OpLen:     {slotVar, slotVar},
	OpPrint:   {slotText},
	OpInput:   {slotVar},
}

// Parse turns whole-program source into an instruction sequence. It is a
// pure pass over every line; the first malformed line aborts with a
// ParseError and nothing executes.
func Parse(source string) ([]Instruction, error) {
	var instrs []Instruction
	for i, raw := range strings.Split(source, "\n") {
		ins, ok, err := parseLine(raw, i+1)
		if err != nil {
			return nil, err
		}
		if ok {
			instrs = append(instrs, ins)
		}
	}
	return instrs, nil
}

// parseLine parses one source line. ok is false for blank and comment
// lines, which occupy no program address.
func parseLine(raw string, lineNo int) (Instruction, bool, error) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return Instruction{}, false, nil
	}

	tokens, err := tokenize(line, lineNo)
	if err != nil {
		return Instruction{}, false, err
	}

	op := Opcode(strings.ToUpper(tokens[0]))
	sig, known := signatures[op]
	if !known {
		return Instruction{}, false, &ParseError{Line: lineNo, Token: tokens[0], Expected: "a known opcode"}
	}

	args := tokens[1:]
	// NOT is unary but the instruction table reserves a second source
	// slot; a trailing operand is accepted and ignored.
	if op == OpNot && len(args) == 3 {
		sig = []slot{slotVar, slotValue, slotValue}
	}
	if len(args) != len(sig) {
		return Instruction{}, false, &ParseError{
			Line:     lineNo,
			Token:    line,
			Expected: strconv.Itoa(len(sig)) + " operand(s) for " + string(op),
		}
	}

	ins := Instruction{Op: op, Line: lineNo}
	for i, tok := range args {
		operand, err := parseOperand(tok, sig[i], lineNo)
		if err != nil {
			return Instruction{}, false, err
		}
		ins.Operands = append(ins.Operands, operand)
	}
	return ins, true, nil
}

func parseOperand(tok string, s slot, lineNo int) (Operand, error) {
	switch s {
	case slotVar:
		if !isIdentifier(tok) {
			return Operand{}, &ParseError{Line: lineNo, Token: tok, Expected: "a variable name"}
		}
		return Operand{Kind: OperandVariable, Name: tok}, nil

	case slotLabel:
		if !isIdentifier(tok) {
			return Operand{}, &ParseError{Line: lineNo, Token: tok, Expected: "a label name"}
		}
		return Operand{Kind: OperandLabel, Name: tok}, nil

	case slotType:
		name := strings.ToUpper(tok)
		if !TypeNames[name] {
			return Operand{}, &ParseError{Line: lineNo, Token: tok, Expected: "a type (INT, FLOAT, BOOL, STRING or ARRAY)"}
		}
		return Operand{Kind: OperandType, Name: name}, nil

	case slotLit:
		lit, ok, err := parseLiteral(tok, lineNo)
		if err != nil {
			return Operand{}, err
		}
		if !ok {
			return Operand{}, &ParseError{Line: lineNo, Token: tok, Expected: "a literal"}
		}
		return Operand{Kind: OperandLiteral, Lit: lit}, nil

	case slotValue:
		lit, ok, err := parseLiteral(tok, lineNo)
		if err != nil {
			return Operand{}, err
		}
		if ok {
			return Operand{Kind: OperandLiteral, Lit: lit}, nil
		}
		if isIdentifier(tok) {
			return Operand{Kind: OperandVariable, Name: tok}, nil
		}
		return Operand{}, &ParseError{Line: lineNo, Token: tok, Expected: "a literal or variable name"}

	case slotText:
		lit, ok, err := parseLiteral(tok, lineNo)
		if err != nil {
			return Operand{}, err
		}
		if ok {
			return Operand{Kind: OperandLiteral, Lit: lit}, nil
		}
		return Operand{Kind: OperandWord, Name: tok}, nil
	}
	return Operand{}, &ParseError{Line: lineNo, Token: tok, Expected: "an operand"}
}

// parseLiteral recognizes a literal token: quoted string, boolean,
// numeric, or bracketed array. ok is false when the token is not
// literal-shaped at all (e.g. an identifier).
func parseLiteral(tok string, lineNo int) (Literal, bool, error) {
	if strings.HasPrefix(tok, `"`) {
		s, err := strconv.Unquote(tok)
		if err != nil {
			return Literal{}, false, &ParseError{Line: lineNo, Token: tok, Expected: "a closed string literal"}
		}
		return Literal{Kind: LitString, Str: s}, true, nil
	}

	if strings.HasPrefix(tok, "[") {
		lit, err := parseArrayLiteral(tok, lineNo)
		if err != nil {
			return Literal{}, false, err
		}
		return lit, true, nil
	}

	switch tok {
	case "true":
		return Literal{Kind: LitBool, Bool: true}, true, nil
	case "false":
		return Literal{Kind: LitBool, Bool: false}, true, nil
	}

	if !startsNumeric(tok) {
		return Literal{}, false, nil
	}
	if strings.ContainsAny(tok, ".eE") {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return Literal{}, false, &ParseError{Line: lineNo, Token: tok, Expected: "a float literal"}
		}
		return Literal{Kind: LitFloat, Float: f}, true, nil
	}
	n, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return Literal{}, false, &ParseError{Line: lineNo, Token: tok, Expected: "an integer literal"}
	}
	return Literal{Kind: LitInt, Int: n}, true, nil
}

// parseArrayLiteral parses a whitespace-free bracketed list such as
// [1,2,3] or []. Elements are scalar literals; arrays do not nest.
func parseArrayLiteral(tok string, lineNo int) (Literal, error) {
	if !strings.HasSuffix(tok, "]") {
		return Literal{}, &ParseError{Line: lineNo, Token: tok, Expected: "a closed array literal"}
	}
	inner := tok[1 : len(tok)-1]
	lit := Literal{Kind: LitArray}
	if inner == "" {
		return lit, nil
	}
	for _, part := range strings.Split(inner, ",") {
		if strings.HasPrefix(part, "[") {
			return Literal{}, &ParseError{Line: lineNo, Token: part, Expected: "a scalar array element"}
		}
		elem, ok, err := parseLiteral(part, lineNo)
		if err != nil {
			return Literal{}, err
		}
		if !ok {
			return Literal{}, &ParseError{Line: lineNo, Token: part, Expected: "a literal array element"}
		}
		lit.Elems = append(lit.Elems, elem)
	}
	return lit, nil
}

// tokenize splits a line on whitespace. A double-quoted token may contain
// spaces and backslash escapes; it is returned with its quotes intact so
// the literal parser can tell it apart from a bare word.
func tokenize(line string, lineNo int) ([]string, error) {
	var tokens []string
	i := 0
	for i < len(line) {
		if line[i] == ' ' || line[i] == '\t' {
			i++
			continue
		}
		if line[i] == '"' {
			j := i + 1
			for j < len(line) {
				if line[j] == '\\' {
					j += 2
					continue
				}
				if line[j] == '"' {
					break
				}
				j++
			}
			if j >= len(line) {
				return nil, &ParseError{Line: lineNo, Token: line[i:], Expected: "a closing quote"}
			}
			tokens = append(tokens, line[i:j+1])
			i = j + 1
			continue
		}
		j := i
		for j < len(line) && line[j] != ' ' && line[j] != '\t' {
			j++
		}
		tokens = append(tokens, line[i:j])
		i = j
	}
	return tokens, nil
}

func isIdentifier(tok string) bool {
	for i, r := range tok {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return len(tok) > 0
}

func startsNumeric(tok string) bool {
	if tok == "" {
		return false
	}
	if tok[0] == '-' || tok[0] == '+' {
		return len(tok) > 1 && tok[1] >= '0' && tok[1] <= '9'
	}
	return tok[0] >= '0' && tok[0] <= '9'
}
