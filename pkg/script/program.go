package script

// Program is a loaded instruction sequence plus the label→address map
// built once at load time. Immutable after Load.
type Program struct {
	Instructions []Instruction
	Labels       map[string]int
}

// Load assigns each instruction its zero-based address, collects LABEL
// addresses, and verifies every jump target. Loading a program with a
// duplicate label or an unresolved jump fails before anything runs;
// forward references are fine because labels are collected first.
func Load(instrs []Instruction) (*Program, error) {
	labels := make(map[string]int)
	for addr, ins := range instrs {
		if ins.Op != OpLabel {
			continue
		}
		name := ins.Operands[0].Name
		if _, exists := labels[name]; exists {
			return nil, &DuplicateLabelError{Line: ins.Line, Label: name}
		}
		labels[name] = addr
	}

	for _, ins := range instrs {
		if ins.Op != OpJmp && !CondJumpOps[ins.Op] {
			continue
		}
		target := ins.Operands[0].Name
		if _, ok := labels[target]; !ok {
			return nil, &UnresolvedLabelError{Line: ins.Line, Label: target}
		}
	}

	return &Program{Instructions: instrs, Labels: labels}, nil
}

// Compile parses and loads whole-program source in one call.
func Compile(source string) (*Program, error) {
	instrs, err := Parse(source)
	if err != nil {
		return nil, err
	}
	return Load(instrs)
}
