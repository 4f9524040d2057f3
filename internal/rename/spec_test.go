package rename

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecOperation(t *testing.T) {
	op, err := Spec{Type: TypeAddSuffix, Suffix: "_v2", BeforeExtension: true}.Operation()
	require.NoError(t, err)
	assert.Equal(t, AddSuffix{Suffix: "_v2", BeforeExtension: true}, op)

	spec, err := SpecOf(Remove{Text: "tmp", UseRegex: true})
	require.NoError(t, err)
	assert.Equal(t, Spec{Type: TypeRemove, Text: "tmp", UseRegex: true}, spec)

	_, err = Spec{Type: "shuffle"}.Operation()
	assert.True(t, errors.Is(err, ErrUnknownOperation))
}

func TestOperations(t *testing.T) {
	ops, err := Operations([]Spec{
		{Type: TypeAddPrefix, Prefix: "a"},
		{Type: TypeRegex, Pattern: `\s+`, Replacement: "_"},
	})
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, "ab_c.txt", Chain([]string{"b  c.txt"}, ops...)[0].Proposed)

	_, err = Operations([]Spec{{Type: TypeAddPrefix}, {Type: ""}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "operation 2")
}
