package harness

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_BasicOps(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/basic_ops.yaml")
	require.NoError(t, err)

	// To regenerate:
	//   go test ./internal/harness -run TestRunWithGolden_BasicOps -update
	result, err := RunWithGolden(t, scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass)
}

func TestMarshalSnapshot_IgnoresRunID(t *testing.T) {
	scenario := mustParse(t, "name: snap\nseed: {b: 1, a: 2}\nsteps:\n  - op: get\n    key: a\n")

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)
	require.NotEqual(t, first.RunID, second.RunID)

	a, err := MarshalSnapshot("snap", first)
	require.NoError(t, err)
	b, err := MarshalSnapshot("snap", second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
	assert.NotContains(t, string(a), first.RunID)
}

func TestMarshalSnapshot_FinalState(t *testing.T) {
	scenario := mustParse(t, "name: snap\nseed: {b: 1, a: 2}\nsteps:\n  - op: clear\n")
	result, err := Run(scenario)
	require.NoError(t, err)

	data, err := MarshalSnapshot("snap", result)
	require.NoError(t, err)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Equal(t, []string{}, snap.Final.Keys)
	assert.Empty(t, snap.Final.Values)
	assert.Equal(t, "Record()", snap.Final.Describe)
}
