package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBuildsLabelMap(t *testing.T) {
	prog, err := Compile(`
LABEL start
DECL x INT
LABEL middle
SET x 1
JMP start
`)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"start": 0, "middle": 2}, prog.Labels)
	assert.Len(t, prog.Instructions, 5)
}

func TestLoadForwardReference(t *testing.T) {
	// Jumping forward works because labels are collected in a first pass.
	prog, err := Compile(`
JMP end
PRINT skipped
LABEL end
`)
	require.NoError(t, err)
	assert.Equal(t, 2, prog.Labels["end"])
}

func TestLoadDuplicateLabel(t *testing.T) {
	_, err := Compile(`
LABEL here
SET x 1
LABEL here
`)
	var dup *DuplicateLabelError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "here", dup.Label)
	assert.Equal(t, 4, dup.Line)
}

func TestLoadUnresolvedJump(t *testing.T) {
	for _, src := range []string{
		"JMP nowhere",
		"DECL x INT\nJEQ missing x x",
		"DECL x INT\nJNE missing x x",
		"DECL x INT\nJGT missing x x",
		"DECL x INT\nJLT missing x x",
	} {
		_, err := Compile(src)
		var unresolved *UnresolvedLabelError
		require.ErrorAs(t, err, &unresolved, src)
	}
}

func TestLoadUnresolvedJumpReportsLineAndLabel(t *testing.T) {
	_, err := Compile("LABEL ok\nJMP ok\nJMP gone")
	var unresolved *UnresolvedLabelError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "gone", unresolved.Label)
	assert.Equal(t, 3, unresolved.Line)
}

func TestLoadEmptyProgram(t *testing.T) {
	prog, err := Compile("")
	require.NoError(t, err)
	assert.Empty(t, prog.Instructions)
}
