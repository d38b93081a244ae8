package vm

import (
	"errors"
	"os"

	"github.com/rs/zerolog"

	"goscript/pkg/script"
)

// State is the machine's lifecycle state.
type State int

const (
	Running State = iota
	Halted
	Faulted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Faulted:
		return "faulted"
	}
	return "unknown"
}

// Machine is the sequential fetch-decode-execute engine. It exclusively
// owns its symbol table and program counter; nothing else mutates them.
type Machine struct {
	prog   *script.Program
	syms   *SymbolTable
	bridge Bridge
	logger zerolog.Logger

	pc       int
	state    State
	fault    *FaultError
	steps    int
	maxSteps int
}

type Option func(*Machine)

// WithBridge sets the I/O bridge. The default bridges stdin/stdout.
func WithBridge(b Bridge) Option {
	return func(m *Machine) { m.bridge = b }
}

// WithLogger enables instruction tracing on the given logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Machine) { m.logger = logger }
}

// WithMaxSteps bounds the number of executed instructions; exceeding the
// bound faults the machine with a StepLimitError. 0 means unbounded.
func WithMaxSteps(n int) Option {
	return func(m *Machine) { m.maxSteps = n }
}

func New(prog *script.Program, opts ...Option) *Machine {
	m := &Machine{
		prog:   prog,
		syms:   NewSymbolTable(),
		logger: zerolog.Nop(),
		state:  Running,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.bridge == nil {
		m.bridge = NewStdioBridge(os.Stdin, os.Stdout)
	}
	if len(prog.Instructions) == 0 {
		m.state = Halted
	}
	return m
}

func (m *Machine) State() State          { return m.state }
func (m *Machine) PC() int               { return m.pc }
func (m *Machine) Symbols() *SymbolTable { return m.syms }

// Fault returns the terminal error of a faulted machine, nil otherwise.
func (m *Machine) Fault() error {
	if m.fault == nil {
		return nil
	}
	return m.fault
}

// Run steps until the machine leaves Running. It returns nil on a normal
// halt, ErrSuspended if a bridge suspended an INPUT, and the FaultError
// otherwise.
func (m *Machine) Run() error {
	for m.state == Running {
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step executes one instruction. Control-flow opcodes set the program
// counter to the resolved label address; everything else advances by
// one. Walking off the end of the program is the halt condition. The
// first handler error faults the machine permanently.
func (m *Machine) Step() error {
	if m.state == Faulted {
		return m.fault
	}
	if m.state == Halted {
		return nil
	}
	if m.pc >= len(m.prog.Instructions) {
		m.state = Halted
		m.logger.Debug().Int("steps", m.steps).Msg("halted")
		return nil
	}

	ins := m.prog.Instructions[m.pc]
	if m.maxSteps > 0 && m.steps >= m.maxSteps {
		return m.faultAt(ins, &StepLimitError{Limit: m.maxSteps})
	}
	m.logger.Trace().
		Int("addr", m.pc).
		Int("line", ins.Line).
		Str("op", string(ins.Op)).
		Msg("exec")

	next, err := m.dispatch(ins)
	if err != nil {
		if errors.Is(err, ErrSuspended) {
			// Still Running, still pointing at the INPUT instruction;
			// the machine can be snapshotted and resumed here.
			m.logger.Debug().Int("addr", m.pc).Msg("suspended")
			return ErrSuspended
		}
		return m.faultAt(ins, err)
	}
	m.pc = next
	m.steps++
	if m.pc >= len(m.prog.Instructions) {
		m.state = Halted
		m.logger.Debug().Int("steps", m.steps).Msg("halted")
	}
	return nil
}

func (m *Machine) faultAt(ins script.Instruction, err error) error {
	m.state = Faulted
	m.fault = &FaultError{Addr: m.pc, Line: ins.Line, Err: err}
	m.logger.Debug().Int("addr", m.pc).Err(err).Msg("faulted")
	return m.fault
}

// dispatch runs one instruction and returns the next program counter.
func (m *Machine) dispatch(ins script.Instruction) (int, error) {
	ops := ins.Operands

	switch {
	case ins.Op == script.OpDecl:
		kind, ok := KindFromName(ops[1].Name)
		if !ok {
			return 0, &TypeMismatchError{Expected: "a declarable type", Actual: ops[1].Name}
		}
		return m.pc + 1, m.syms.Declare(ops[0].Name, kind)

	case ins.Op == script.OpSet:
		return m.pc + 1, m.syms.Set(ops[0].Name, FromLiteral(ops[1].Lit))

	case ins.Op == script.OpFree:
		return m.pc + 1, m.syms.Free(ops[0].Name)

	case script.ArithmeticOps[ins.Op]:
		a, err := m.resolve(ops[1])
		if err != nil {
			return 0, err
		}
		b, err := m.resolve(ops[2])
		if err != nil {
			return 0, err
		}
		result, err := evalArithmetic(ins.Op, a, b)
		if err != nil {
			return 0, err
		}
		return m.pc + 1, m.syms.Set(ops[0].Name, result)

	case script.RoundingOps[ins.Op]:
		src, err := m.resolve(ops[1])
		if err != nil {
			return 0, err
		}
		result, err := evalRounding(ins.Op, src)
		if err != nil {
			return 0, err
		}
		return m.pc + 1, m.syms.Set(ops[0].Name, result)

	case script.BooleanOps[ins.Op]:
		a, err := m.resolve(ops[1])
		if err != nil {
			return 0, err
		}
		b, err := m.resolve(ops[2])
		if err != nil {
			return 0, err
		}
		result, err := evalBoolean(ins.Op, a, b)
		if err != nil {
			return 0, err
		}
		return m.pc + 1, m.syms.Set(ops[0].Name, result)

	case ins.Op == script.OpNot:
		// A third operand, if present, is ignored.
		src, err := m.resolve(ops[1])
		if err != nil {
			return 0, err
		}
		result, err := evalNot(src)
		if err != nil {
			return 0, err
		}
		return m.pc + 1, m.syms.Set(ops[0].Name, result)

	case ins.Op == script.OpLabel:
		// Pure jump-target marker.
		return m.pc + 1, nil

	case ins.Op == script.OpJmp:
		return m.prog.Labels[ops[0].Name], nil

	case script.CondJumpOps[ins.Op]:
		a, err := m.resolve(ops[1])
		if err != nil {
			return 0, err
		}
		b, err := m.resolve(ops[2])
		if err != nil {
			return 0, err
		}
		taken, err := compare(ins.Op, a, b)
		if err != nil {
			return 0, err
		}
		if taken {
			return m.prog.Labels[ops[0].Name], nil
		}
		return m.pc + 1, nil

	case ins.Op == script.OpConvert:
		to, err := m.syms.KindOf(ops[0].Name)
		if err != nil {
			return 0, err
		}
		src, err := m.syms.Get(ops[1].Name)
		if err != nil {
			return 0, err
		}
		result, err := convert(src, to)
		if err != nil {
			return 0, err
		}
		return m.pc + 1, m.syms.Set(ops[0].Name, result)

	case ins.Op == script.OpSlice:
		return m.pc + 1, m.execSlice(ops)

	case ins.Op == script.OpIndex:
		return m.pc + 1, m.execIndex(ops)

	case ins.Op == script.OpLen:
		return m.pc + 1, m.execLen(ops)

	case ins.Op == script.OpPrint:
		return m.pc + 1, m.execPrint(ops[0])

	case ins.Op == script.OpInput:
		return m.pc + 1, m.execInput(ops[0])
	}

	return 0, &TypeMismatchError{Expected: "an executable opcode", Actual: string(ins.Op)}
}

// resolve turns an operand into a value: literals directly, variable
// references through the symbol table.
func (m *Machine) resolve(op script.Operand) (Value, error) {
	if op.Kind == script.OperandLiteral {
		return FromLiteral(op.Lit), nil
	}
	return m.syms.Get(op.Name)
}

// resolveIndex resolves an operand that must be an INT, for SLICE and
// INDEX positions.
func (m *Machine) resolveIndex(op script.Operand) (int, error) {
	v, err := m.resolve(op)
	if err != nil {
		return 0, err
	}
	n, ok := v.(IntValue)
	if !ok {
		return 0, &TypeMismatchError{Expected: "INT", Actual: v.Kind().String()}
	}
	return int(n), nil
}

func (m *Machine) resolveArray(op script.Operand) (ArrayValue, error) {
	v, err := m.resolve(op)
	if err != nil {
		return nil, err
	}
	arr, ok := v.(ArrayValue)
	if !ok {
		return nil, &TypeMismatchError{Expected: "ARRAY", Actual: v.Kind().String()}
	}
	return arr, nil
}

// execSlice writes an independent copy of array[start:end] into the
// destination. Bounds: 0 <= start <= end <= len.
func (m *Machine) execSlice(ops []script.Operand) error {
	arr, err := m.resolveArray(ops[1])
	if err != nil {
		return err
	}
	start, err := m.resolveIndex(ops[2])
	if err != nil {
		return err
	}
	end, err := m.resolveIndex(ops[3])
	if err != nil {
		return err
	}
	if start < 0 || start > len(arr) {
		return &IndexOutOfBoundsError{Index: start, Length: len(arr)}
	}
	if end < start || end > len(arr) {
		return &IndexOutOfBoundsError{Index: end, Length: len(arr)}
	}
	return m.syms.Set(ops[0].Name, arr[start:end].Copy())
}

func (m *Machine) execIndex(ops []script.Operand) error {
	arr, err := m.resolveArray(ops[1])
	if err != nil {
		return err
	}
	idx, err := m.resolveIndex(ops[2])
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(arr) {
		return &IndexOutOfBoundsError{Index: idx, Length: len(arr)}
	}
	return m.syms.Set(ops[0].Name, arr[idx])
}

// execLen writes the element count of an ARRAY, or the rune count of a
// STRING, into an INT destination.
func (m *Machine) execLen(ops []script.Operand) error {
	v, err := m.resolve(ops[1])
	if err != nil {
		return err
	}
	switch x := v.(type) {
	case ArrayValue:
		return m.syms.Set(ops[0].Name, IntValue(len(x)))
	case StringValue:
		return m.syms.Set(ops[0].Name, IntValue(len([]rune(string(x)))))
	}
	return &TypeMismatchError{Expected: "ARRAY or STRING", Actual: v.Kind().String()}
}

// execPrint writes one line: a literal operand formats canonically, a
// bare word prints the named variable's value if one is live and the
// word itself otherwise.
func (m *Machine) execPrint(op script.Operand) error {
	var text string
	switch op.Kind {
	case script.OperandLiteral:
		text = FromLiteral(op.Lit).Format()
	case script.OperandWord:
		if v, err := m.syms.Get(op.Name); err == nil {
			text = v.Format()
		} else {
			text = op.Name
		}
	}
	return m.bridge.WriteLine(text)
}

// execInput blocks on the bridge for one line, then stores it; the
// symbol table rejects the store unless the destination is a live
// STRING variable.
func (m *Machine) execInput(op script.Operand) error {
	line, err := m.bridge.ReadLine()
	if err != nil {
		return err
	}
	return m.syms.Set(op.Name, StringValue(line))
}

// Execute is the host-facing entry: compile source and run it from
// address 0 until it halts or faults.
func Execute(source string, opts ...Option) error {
	prog, err := script.Compile(source)
	if err != nil {
		return err
	}
	return New(prog, opts...).Run()
}
