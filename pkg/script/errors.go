package script

import "fmt"

// ParseError reports a malformed line: the offending token, the source
// line number, and what the grammar expected there.
type ParseError struct {
	Line     int
	Token    string
	Expected string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: unexpected %q, expected %s", e.Line, e.Token, e.Expected)
}

// DuplicateLabelError reports a label name declared twice.
type DuplicateLabelError struct {
	Line  int
	Label string
}

func (e *DuplicateLabelError) Error() string {
	return fmt.Sprintf("line %d: duplicate label %q", e.Line, e.Label)
}

// UnresolvedLabelError reports a jump whose target label does not exist
// anywhere in the program.
type UnresolvedLabelError struct {
	Line  int
	Label string
}

func (e *UnresolvedLabelError) Error() string {
	return fmt.Sprintf("line %d: jump to unresolved label %q", e.Line, e.Label)
}
