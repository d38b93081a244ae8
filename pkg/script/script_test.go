package script

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, line string) Instruction {
	t.Helper()
	instrs, err := Parse(line)
	require.NoError(t, err)
	require.Len(t, instrs, 1)
	return instrs[0]
}

func TestParseDecl(t *testing.T) {
	ins := parseOne(t, "DECL count INT")
	assert.Equal(t, OpDecl, ins.Op)
	require.Len(t, ins.Operands, 2)
	assert.Equal(t, OperandVariable, ins.Operands[0].Kind)
	assert.Equal(t, "count", ins.Operands[0].Name)
	assert.Equal(t, OperandType, ins.Operands[1].Kind)
	assert.Equal(t, "INT", ins.Operands[1].Name)
}

func TestParseDeclLowercaseTypeKeyword(t *testing.T) {
	ins := parseOne(t, "decl x float")
	assert.Equal(t, OpDecl, ins.Op)
	assert.Equal(t, "FLOAT", ins.Operands[1].Name)
}

func TestParseSetLiterals(t *testing.T) {
	tests := []struct {
		line string
		want Literal
	}{
		{"SET x 42", Literal{Kind: LitInt, Int: 42}},
		{"SET x -7", Literal{Kind: LitInt, Int: -7}},
		{"SET x 1.5", Literal{Kind: LitFloat, Float: 1.5}},
		{"SET x -0.25", Literal{Kind: LitFloat, Float: -0.25}},
		{"SET x true", Literal{Kind: LitBool, Bool: true}},
		{"SET x false", Literal{Kind: LitBool, Bool: false}},
		{`SET x "hi there"`, Literal{Kind: LitString, Str: "hi there"}},
		{`SET x ""`, Literal{Kind: LitString, Str: ""}},
	}
	for _, tc := range tests {
		ins := parseOne(t, tc.line)
		require.Equal(t, OperandLiteral, ins.Operands[1].Kind, tc.line)
		assert.Equal(t, tc.want, ins.Operands[1].Lit, tc.line)
	}
}

func TestParseSetRejectsVariableOperand(t *testing.T) {
	_, err := Parse("SET x y")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Line)
	assert.Equal(t, "y", perr.Token)
}

func TestParseArrayLiteral(t *testing.T) {
	ins := parseOne(t, "SET xs [1,2,3]")
	lit := ins.Operands[1].Lit
	require.Equal(t, LitArray, lit.Kind)
	require.Len(t, lit.Elems, 3)
	assert.Equal(t, int64(2), lit.Elems[1].Int)

	ins = parseOne(t, "SET xs []")
	assert.Equal(t, LitArray, ins.Operands[1].Lit.Kind)
	assert.Empty(t, ins.Operands[1].Lit.Elems)

	ins = parseOne(t, `SET xs [1.5,true,"a"]`)
	lit = ins.Operands[1].Lit
	require.Len(t, lit.Elems, 3)
	assert.Equal(t, LitFloat, lit.Elems[0].Kind)
	assert.Equal(t, LitBool, lit.Elems[1].Kind)
	assert.Equal(t, LitString, lit.Elems[2].Kind)
}

func TestParseArrayLiteralErrors(t *testing.T) {
	for _, line := range []string{
		"SET xs [1,2",
		"SET xs [1,[2]]",
		"SET xs [1,,2]",
		"SET xs [oops]",
	} {
		_, err := Parse(line)
		var perr *ParseError
		assert.ErrorAs(t, err, &perr, line)
	}
}

func TestParseArithmeticOperands(t *testing.T) {
	ins := parseOne(t, "ADD z x 5")
	assert.Equal(t, OpAdd, ins.Op)
	assert.Equal(t, OperandVariable, ins.Operands[0].Kind)
	assert.Equal(t, OperandVariable, ins.Operands[1].Kind)
	assert.Equal(t, OperandLiteral, ins.Operands[2].Kind)
}

func TestParseNotArity(t *testing.T) {
	// NOT is unary but tolerates a trailing operand.
	ins := parseOne(t, "NOT a b")
	assert.Len(t, ins.Operands, 2)

	ins = parseOne(t, "NOT a b c")
	assert.Len(t, ins.Operands, 3)

	_, err := Parse("NOT a")
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
	_, err = Parse("NOT a b c d")
	assert.ErrorAs(t, err, &perr)
}

func TestParseJumps(t *testing.T) {
	ins := parseOne(t, "JEQ L x y")
	assert.Equal(t, OpJeq, ins.Op)
	assert.Equal(t, OperandLabel, ins.Operands[0].Kind)
	assert.Equal(t, "L", ins.Operands[0].Name)

	ins = parseOne(t, "JMP loop")
	assert.Equal(t, OperandLabel, ins.Operands[0].Kind)
}

func TestParsePrintOperands(t *testing.T) {
	ins := parseOne(t, `PRINT "hello world"`)
	assert.Equal(t, OperandLiteral, ins.Operands[0].Kind)
	assert.Equal(t, "hello world", ins.Operands[0].Lit.Str)

	ins = parseOne(t, "PRINT yes")
	assert.Equal(t, OperandWord, ins.Operands[0].Kind)
	assert.Equal(t, "yes", ins.Operands[0].Name)

	ins = parseOne(t, "PRINT 5")
	assert.Equal(t, OperandLiteral, ins.Operands[0].Kind)
	assert.Equal(t, int64(5), ins.Operands[0].Lit.Int)
}

func TestParseSkipsBlankAndCommentLines(t *testing.T) {
	instrs, err := Parse("\n# setup\nDECL x INT\n\n  # done\nSET x 1\n")
	require.NoError(t, err)
	require.Len(t, instrs, 2)
	// Addresses are dense but source lines are preserved.
	assert.Equal(t, 3, instrs[0].Line)
	assert.Equal(t, 6, instrs[1].Line)
}

func TestParseUnknownOpcode(t *testing.T) {
	_, err := Parse("DECL x INT\nBLORT x")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
	assert.Equal(t, "BLORT", perr.Token)
}

func TestParseArityMismatch(t *testing.T) {
	for _, line := range []string{
		"ADD z x",
		"ADD z x y w",
		"DECL x",
		"JMP",
		"FREE",
		"INPUT a b",
	} {
		_, err := Parse(line)
		var perr *ParseError
		assert.ErrorAs(t, err, &perr, line)
	}
}

func TestParseBadTokens(t *testing.T) {
	tests := []struct {
		line  string
		token string
	}{
		{"DECL 5x INT", "5x"},
		{"DECL x BLOB", "BLOB"},
		{`PRINT "unterminated`, `"unterminated`},
		{"SET x 1.2.3", "1.2.3"},
		{"SET x 99999999999999999999", "99999999999999999999"},
		{"ADD z x 1x2", "1x2"},
	}
	for _, tc := range tests {
		_, err := Parse(tc.line)
		var perr *ParseError
		require.ErrorAs(t, err, &perr, tc.line)
		assert.Equal(t, tc.token, perr.Token, tc.line)
	}
}

func TestParseQuotedStringEscapes(t *testing.T) {
	ins := parseOne(t, `PRINT "tab\there"`)
	assert.Equal(t, "tab\there", ins.Operands[0].Lit.Str)

	ins = parseOne(t, `PRINT "quote \" inside"`)
	assert.Equal(t, `quote " inside`, ins.Operands[0].Lit.Str)
}

func TestParseErrorIsFirstBadLine(t *testing.T) {
	_, err := Parse("DECL x INT\nSET x oops\nALSO bad")
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 2, perr.Line)
}
