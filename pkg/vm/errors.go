package vm

import "fmt"

// Runtime errors carry just the facts; the machine wraps them in a
// FaultError with the failing instruction's address and source line.

type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable %q", e.Name)
}

type RedeclarationError struct {
	Name string
}

func (e *RedeclarationError) Error() string {
	return fmt.Sprintf("variable %q already declared", e.Name)
}

type TypeMismatchError struct {
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Actual)
}

type DivisionByZeroError struct{}

func (e *DivisionByZeroError) Error() string {
	return "division by zero"
}

type IndexOutOfBoundsError struct {
	Index  int
	Length int
}

func (e *IndexOutOfBoundsError) Error() string {
	return fmt.Sprintf("index %d out of bounds for length %d", e.Index, e.Length)
}

type ConversionError struct {
	From Kind
	To   Kind
	Text string
}

func (e *ConversionError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("cannot convert %s %q to %s", e.From, e.Text, e.To)
	}
	return fmt.Sprintf("cannot convert %s to %s", e.From, e.To)
}

// StepLimitError reports that a machine exhausted its configured step
// budget before halting.
type StepLimitError struct {
	Limit int
}

func (e *StepLimitError) Error() string {
	return fmt.Sprintf("step limit of %d exceeded", e.Limit)
}

// FaultError is the single terminal error a faulted machine reports:
// the underlying runtime error plus the failing instruction's address
// and source line.
type FaultError struct {
	Addr int
	Line int
	Err  error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("fault at address %d (line %d): %v", e.Addr, e.Line, e.Err)
}

func (e *FaultError) Unwrap() error { return e.Err }
