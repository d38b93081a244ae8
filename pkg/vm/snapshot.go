package vm

import (
	"encoding/gob"
	"fmt"
	"io"
	"sort"

	"goscript/pkg/script"
)

// A snapshot captures everything needed to resume a machine that is not
// mid-instruction: the loaded program, the program counter, and the live
// variable bindings. A faulted machine cannot be snapshotted; a fault is
// terminal.

func init() {
	gob.Register(IntValue(0))
	gob.Register(FloatValue(0))
	gob.Register(BoolValue(false))
	gob.Register(StringValue(""))
	gob.Register(ArrayValue{})
}

type machineState struct {
	Instructions []script.Instruction
	PC           int
	Steps        int
	Halted       bool
	Vars         []varState
}

type varState struct {
	Name  string
	Kind  Kind
	Value Value
}

// Snapshot serializes the machine with gob. The bridge and logger are
// host concerns and are not part of the state; Restore attaches fresh
// ones.
func (m *Machine) Snapshot(w io.Writer) error {
	if m.state == Faulted {
		return fmt.Errorf("cannot snapshot a faulted machine: %w", m.fault)
	}

	state := machineState{
		Instructions: m.prog.Instructions,
		PC:           m.pc,
		Steps:        m.steps,
		Halted:       m.state == Halted,
	}
	for name, b := range m.syms.vars {
		state.Vars = append(state.Vars, varState{Name: name, Kind: b.kind, Value: b.value})
	}
	// Deterministic output, mostly for tests.
	sort.Slice(state.Vars, func(i, j int) bool { return state.Vars[i].Name < state.Vars[j].Name })

	return gob.NewEncoder(w).Encode(state)
}

// Restore rebuilds a machine from a snapshot. The label map is rebuilt
// by reloading the instruction sequence, which re-runs the static
// checks; a snapshot that fails them is corrupt.
func Restore(r io.Reader, opts ...Option) (*Machine, error) {
	var state machineState
	if err := gob.NewDecoder(r).Decode(&state); err != nil {
		return nil, fmt.Errorf("corrupt snapshot: %w", err)
	}

	prog, err := script.Load(state.Instructions)
	if err != nil {
		return nil, fmt.Errorf("corrupt snapshot: %w", err)
	}

	m := New(prog, opts...)
	m.pc = state.PC
	m.steps = state.Steps
	if state.Halted || m.pc >= len(prog.Instructions) {
		m.state = Halted
	} else {
		m.state = Running
	}

	m.syms = NewSymbolTable()
	for _, v := range state.Vars {
		m.syms.vars[v.Name] = &binding{kind: v.Kind, value: v.Value}
	}
	return m, nil
}
