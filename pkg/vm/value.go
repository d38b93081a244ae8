// Package vm executes loaded script programs: a typed symbol table, an
// evaluator for the arithmetic/boolean/comparison/conversion semantics,
// and a strictly sequential fetch-decode-execute machine that talks to
// the host only through an I/O bridge.
package vm

import (
	"strconv"
	"strings"

	"goscript/pkg/script"
)

// Kind identifies one of the five language types.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindString
	KindArray
)

var kindNames = [...]string{"INT", "FLOAT", "BOOL", "STRING", "ARRAY"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// KindFromName maps a DECL type keyword to its Kind.
func KindFromName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// Value is the closed variant type for runtime values: exactly one
// concrete type per language type, switched over exhaustively in the
// evaluator. Format returns the canonical textual form used by PRINT
// and CONVERT-to-STRING.
type Value interface {
	Kind() Kind
	Format() string
}

type IntValue int64

func (IntValue) Kind() Kind       { return KindInt }
func (v IntValue) Format() string { return strconv.FormatInt(int64(v), 10) }

type FloatValue float64

func (FloatValue) Kind() Kind { return KindFloat }
func (v FloatValue) Format() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 64)
}

type BoolValue bool

func (BoolValue) Kind() Kind { return KindBool }
func (v BoolValue) Format() string {
	if v {
		return "true"
	}
	return "false"
}

type StringValue string

func (StringValue) Kind() Kind       { return KindString }
func (v StringValue) Format() string { return string(v) }

type ArrayValue []Value

func (ArrayValue) Kind() Kind { return KindArray }
func (v ArrayValue) Format() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, elem := range v {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(elem.Format())
	}
	sb.WriteByte(']')
	return sb.String()
}

// Copy returns an independent array; SLICE and same-type CONVERT use
// copy semantics, never aliasing.
func (v ArrayValue) Copy() ArrayValue {
	out := make(ArrayValue, len(v))
	copy(out, v)
	return out
}

// ZeroValue returns the value a freshly declared variable holds.
func ZeroValue(k Kind) Value {
	switch k {
	case KindInt:
		return IntValue(0)
	case KindFloat:
		return FloatValue(0)
	case KindBool:
		return BoolValue(false)
	case KindString:
		return StringValue("")
	case KindArray:
		return ArrayValue{}
	}
	return nil
}

// FromLiteral converts a parsed literal into a runtime value.
func FromLiteral(lit script.Literal) Value {
	switch lit.Kind {
	case script.LitInt:
		return IntValue(lit.Int)
	case script.LitFloat:
		return FloatValue(lit.Float)
	case script.LitBool:
		return BoolValue(lit.Bool)
	case script.LitString:
		return StringValue(lit.Str)
	case script.LitArray:
		arr := make(ArrayValue, 0, len(lit.Elems))
		for _, elem := range lit.Elems {
			arr = append(arr, FromLiteral(elem))
		}
		return arr
	}
	return nil
}
