package vm

// SymbolTable is the typed variable store. A binding exists from DECL
// until FREE; freed names are gone entirely, never stale.
type SymbolTable struct {
	vars map[string]*binding
}

type binding struct {
	kind  Kind
	value Value
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{vars: make(map[string]*binding)}
}

// Declare creates a binding holding the type's zero value.
func (s *SymbolTable) Declare(name string, kind Kind) error {
	if _, exists := s.vars[name]; exists {
		return &RedeclarationError{Name: name}
	}
	s.vars[name] = &binding{kind: kind, value: ZeroValue(kind)}
	return nil
}

// Set assigns a value to a live binding. The value's kind must match the
// declared kind exactly; there is no coercion.
func (s *SymbolTable) Set(name string, v Value) error {
	b, exists := s.vars[name]
	if !exists {
		return &UndefinedVariableError{Name: name}
	}
	if v.Kind() != b.kind {
		return &TypeMismatchError{Expected: b.kind.String(), Actual: v.Kind().String()}
	}
	b.value = v
	return nil
}

func (s *SymbolTable) Get(name string) (Value, error) {
	b, exists := s.vars[name]
	if !exists {
		return nil, &UndefinedVariableError{Name: name}
	}
	return b.value, nil
}

// KindOf reports the declared type of a live binding.
func (s *SymbolTable) KindOf(name string) (Kind, error) {
	b, exists := s.vars[name]
	if !exists {
		return 0, &UndefinedVariableError{Name: name}
	}
	return b.kind, nil
}

// Free removes the binding entirely.
func (s *SymbolTable) Free(name string) error {
	if _, exists := s.vars[name]; !exists {
		return &UndefinedVariableError{Name: name}
	}
	delete(s.vars, name)
	return nil
}

// Len reports the number of live bindings.
func (s *SymbolTable) Len() int {
	return len(s.vars)
}
