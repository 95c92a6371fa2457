package harness

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDv7Generator(t *testing.T) {
	gen := UUIDv7Generator{}
	a, b := gen.Generate(), gen.Generate()

	id, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
	assert.NotEqual(t, a, b)
}

func TestFixedGenerator(t *testing.T) {
	gen := NewFixedGenerator("run-1", "run-2")
	assert.Equal(t, "run-1", gen.Generate())
	assert.Equal(t, "run-2", gen.Generate())
	assert.Panics(t, func() { gen.Generate() })
}

func TestRunWith_ScenarioRunIDWins(t *testing.T) {
	gen := NewFixedGenerator("generated")

	fixed := mustParse(t, "name: a\nrun_id: pinned\nsteps:\n  - op: clear\n")
	result, err := RunWith(fixed, gen)
	require.NoError(t, err)
	assert.Equal(t, "pinned", result.RunID)

	open := mustParse(t, "name: b\nsteps:\n  - op: clear\n")
	result, err = RunWith(open, gen)
	require.NoError(t, err)
	assert.Equal(t, "generated", result.RunID)
}
