package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goscript/pkg/script"
)

func TestCanonicalFormatting(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{IntValue(0), "0"},
		{IntValue(-42), "-42"},
		{FloatValue(1.5), "1.5"},
		{FloatValue(0), "0"},
		{FloatValue(-0.25), "-0.25"},
		{BoolValue(true), "true"},
		{BoolValue(false), "false"},
		{StringValue("hi"), "hi"},
		{ArrayValue{}, "[]"},
		{ArrayValue{IntValue(1), IntValue(2)}, "[1,2]"},
		{ArrayValue{StringValue("a"), BoolValue(true)}, "[a,true]"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.v.Format())
	}
}

func TestZeroValues(t *testing.T) {
	assert.Equal(t, IntValue(0), ZeroValue(KindInt))
	assert.Equal(t, FloatValue(0), ZeroValue(KindFloat))
	assert.Equal(t, BoolValue(false), ZeroValue(KindBool))
	assert.Equal(t, StringValue(""), ZeroValue(KindString))
	assert.Equal(t, ArrayValue{}, ZeroValue(KindArray))
}

func TestKindFromName(t *testing.T) {
	for name, want := range map[string]Kind{
		"INT":    KindInt,
		"FLOAT":  KindFloat,
		"BOOL":   KindBool,
		"STRING": KindString,
		"ARRAY":  KindArray,
	} {
		got, ok := KindFromName(name)
		require.True(t, ok, name)
		assert.Equal(t, want, got)
		assert.Equal(t, name, got.String())
	}
	_, ok := KindFromName("BLOB")
	assert.False(t, ok)
}

func TestFromLiteral(t *testing.T) {
	arr := FromLiteral(script.Literal{
		Kind: script.LitArray,
		Elems: []script.Literal{
			{Kind: script.LitInt, Int: 1},
			{Kind: script.LitString, Str: "x"},
		},
	})
	require.Equal(t, KindArray, arr.Kind())
	assert.Equal(t, ArrayValue{IntValue(1), StringValue("x")}, arr)

	assert.Equal(t, FloatValue(2.5), FromLiteral(script.Literal{Kind: script.LitFloat, Float: 2.5}))
	assert.Equal(t, BoolValue(true), FromLiteral(script.Literal{Kind: script.LitBool, Bool: true}))
}

func TestArrayCopyIsIndependent(t *testing.T) {
	orig := ArrayValue{IntValue(1), IntValue(2)}
	cp := orig.Copy()
	cp[0] = IntValue(99)
	assert.Equal(t, IntValue(1), orig[0])
}
