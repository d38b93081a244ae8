package vm

import (
	"math"
	"strconv"

	"goscript/pkg/script"
)

// evalArithmetic applies ADD/SUB/MUL/DIV/MOD over one numeric family.
// Mixed INT/FLOAT operands are a type mismatch; CONVERT exists for that.
// DIV and MOD fault on a zero right operand for both families, and MOD
// truncates, so the result sign follows the dividend.
func evalArithmetic(op script.Opcode, a, b Value) (Value, error) {
	switch x := a.(type) {
	case IntValue:
		y, ok := b.(IntValue)
		if !ok {
			return nil, &TypeMismatchError{Expected: "INT", Actual: b.Kind().String()}
		}
		return intArithmetic(op, x, y)
	case FloatValue:
		y, ok := b.(FloatValue)
		if !ok {
			return nil, &TypeMismatchError{Expected: "FLOAT", Actual: b.Kind().String()}
		}
		return floatArithmetic(op, x, y)
	}
	return nil, &TypeMismatchError{Expected: "INT or FLOAT", Actual: a.Kind().String()}
}

func intArithmetic(op script.Opcode, a, b IntValue) (Value, error) {
	switch op {
	case script.OpAdd:
		return a + b, nil
	case script.OpSub:
		return a - b, nil
	case script.OpMul:
		return a * b, nil
	case script.OpDiv:
		if b == 0 {
			return nil, &DivisionByZeroError{}
		}
		return a / b, nil
	case script.OpMod:
		if b == 0 {
			return nil, &DivisionByZeroError{}
		}
		// Go's % already truncates toward zero.
		return a % b, nil
	}
	return nil, &TypeMismatchError{Expected: "an arithmetic opcode", Actual: string(op)}
}

func floatArithmetic(op script.Opcode, a, b FloatValue) (Value, error) {
	switch op {
	case script.OpAdd:
		return a + b, nil
	case script.OpSub:
		return a - b, nil
	case script.OpMul:
		return a * b, nil
	case script.OpDiv:
		if b == 0 {
			return nil, &DivisionByZeroError{}
		}
		return a / b, nil
	case script.OpMod:
		if b == 0 {
			return nil, &DivisionByZeroError{}
		}
		return FloatValue(math.Mod(float64(a), float64(b))), nil
	}
	return nil, &TypeMismatchError{Expected: "an arithmetic opcode", Actual: string(op)}
}

// evalRounding maps a FLOAT to an INT. ROUND rounds half away from zero
// for reproducible results; FLOOR and CEIL are the mathematical ones.
func evalRounding(op script.Opcode, v Value) (Value, error) {
	f, ok := v.(FloatValue)
	if !ok {
		return nil, &TypeMismatchError{Expected: "FLOAT", Actual: v.Kind().String()}
	}
	var r float64
	switch op {
	case script.OpRound:
		r = math.Round(float64(f))
	case script.OpFloor:
		r = math.Floor(float64(f))
	case script.OpCeil:
		r = math.Ceil(float64(f))
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil, &ConversionError{From: KindFloat, To: KindInt, Text: f.Format()}
	}
	return IntValue(int64(r)), nil
}

func evalBoolean(op script.Opcode, a, b Value) (Value, error) {
	x, ok := a.(BoolValue)
	if !ok {
		return nil, &TypeMismatchError{Expected: "BOOL", Actual: a.Kind().String()}
	}
	y, ok := b.(BoolValue)
	if !ok {
		return nil, &TypeMismatchError{Expected: "BOOL", Actual: b.Kind().String()}
	}
	switch op {
	case script.OpAnd:
		return x && y, nil
	case script.OpOr:
		return x || y, nil
	case script.OpXor:
		return BoolValue(x != y), nil
	}
	return nil, &TypeMismatchError{Expected: "a boolean opcode", Actual: string(op)}
}

func evalNot(v Value) (Value, error) {
	x, ok := v.(BoolValue)
	if !ok {
		return nil, &TypeMismatchError{Expected: "BOOL", Actual: v.Kind().String()}
	}
	return !x, nil
}

// compare decides whether a conditional jump is taken. Operands must
// share a type: numerics compare by value, STRING lexicographically,
// BOOL supports only equality and inequality. ARRAY has no defined
// comparison at all.
func compare(op script.Opcode, a, b Value) (bool, error) {
	if a.Kind() != b.Kind() {
		return false, &TypeMismatchError{Expected: a.Kind().String(), Actual: b.Kind().String()}
	}

	switch x := a.(type) {
	case IntValue:
		return ordered(op, int64(x), int64(b.(IntValue))), nil
	case FloatValue:
		return ordered(op, float64(x), float64(b.(FloatValue))), nil
	case StringValue:
		return ordered(op, string(x), string(b.(StringValue))), nil
	case BoolValue:
		switch op {
		case script.OpJeq:
			return x == b.(BoolValue), nil
		case script.OpJne:
			return x != b.(BoolValue), nil
		}
		return false, &TypeMismatchError{Expected: "an orderable type", Actual: "BOOL"}
	}
	return false, &TypeMismatchError{Expected: "a comparable type", Actual: a.Kind().String()}
}

func ordered[T int64 | float64 | string](op script.Opcode, a, b T) bool {
	switch op {
	case script.OpJeq:
		return a == b
	case script.OpJne:
		return a != b
	case script.OpJgt:
		return a > b
	case script.OpJlt:
		return a < b
	}
	return false
}

// convert reinterprets a value as another declared type. Numeric→STRING
// uses the canonical formatting, STRING→numeric parses, BOOL↔STRING uses
// the "true"/"false" literals, INT↔FLOAT converts numerically with
// FLOAT→INT truncating toward zero. Converting to the value's own kind
// copies it.
func convert(v Value, to Kind) (Value, error) {
	from := v.Kind()
	if from == to {
		if arr, ok := v.(ArrayValue); ok {
			return arr.Copy(), nil
		}
		return v, nil
	}

	switch x := v.(type) {
	case IntValue:
		switch to {
		case KindFloat:
			return FloatValue(x), nil
		case KindString:
			return StringValue(x.Format()), nil
		}

	case FloatValue:
		switch to {
		case KindInt:
			f := float64(x)
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, &ConversionError{From: from, To: to, Text: x.Format()}
			}
			return IntValue(math.Trunc(f)), nil
		case KindString:
			return StringValue(x.Format()), nil
		}

	case BoolValue:
		if to == KindString {
			return StringValue(x.Format()), nil
		}

	case StringValue:
		switch to {
		case KindInt:
			n, err := strconv.ParseInt(string(x), 10, 64)
			if err != nil {
				return nil, &ConversionError{From: from, To: to, Text: string(x)}
			}
			return IntValue(n), nil
		case KindFloat:
			f, err := strconv.ParseFloat(string(x), 64)
			if err != nil {
				return nil, &ConversionError{From: from, To: to, Text: string(x)}
			}
			return FloatValue(f), nil
		case KindBool:
			switch string(x) {
			case "true":
				return BoolValue(true), nil
			case "false":
				return BoolValue(false), nil
			}
			return nil, &ConversionError{From: from, To: to, Text: string(x)}
		}
	}

	return nil, &ConversionError{From: from, To: to}
}
