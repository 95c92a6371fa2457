package harness

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ordrec/internal/record"
)

func mustParse(t *testing.T, content string) *Scenario {
	t.Helper()
	scenario, err := ParseScenario([]byte(content))
	require.NoError(t, err)
	return scenario
}

func TestRun_BasicOps(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/basic_ops.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, "basic-ops-run", result.RunID)
	require.Len(t, result.Trace, 8)

	slice := result.Trace[2]
	assert.Equal(t, "1:3", slice.Range)
	assert.Equal(t, []string{"b", "c"}, slice.Keys)
	assert.Equal(t, map[string]any{"b": int64(2), "c": int64(3)}, slice.Result)

	failed := result.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, 4, failed[0].Seq)
	assert.Equal(t, "key_not_found", failed[0].Error)
}

func TestRun_ShapedSeed(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/packet.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	assert.Equal(t, int64(0), result.Trace[0].Result)
	assert.Equal(t, []string{"pay_load"}, result.Trace[2].Keys)
	assert.Equal(t, 2, result.Trace[3].Result)
	assert.Equal(t, "Packet", result.Final.Shape())
}

func TestRun_GeneratesRunID(t *testing.T) {
	scenario := mustParse(t, "name: ids\nsteps:\n  - op: clear\n")

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	id, err := uuid.Parse(first.RunID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestRun_StepErrorsAreRecorded(t *testing.T) {
	scenario := mustParse(t, `
name: errors
seed: {a: 1, b: {c: 2}}
steps:
  - op: at
    index: 5
  - op: set_path
    path: a.x
    value: 1
  - op: pop
    key: missing
  - op: delete_path
    path: b.zz
  - op: delete_at
    index: -3
`)
	result, err := Run(scenario)
	require.NoError(t, err)

	codes := make([]string, len(result.Trace))
	for i, ev := range result.Trace {
		codes[i] = ev.Error
	}
	assert.Equal(t, []string{
		"index_out_of_range",
		"path_conflict",
		"key_not_found",
		"key_not_found",
		"index_out_of_range",
	}, codes)
	assert.Equal(t, []string{"a", "b"}, result.Final.KeyList())
}

func TestRun_SupplementedOps(t *testing.T) {
	scenario := mustParse(t, `
name: extras
seed: {a: 1}
steps:
  - op: set_default
    key: a
    value: 9
  - op: set_default
    key: z
    value: {q: 1}
  - op: get_or_default
    key: nope
    value: fallback
  - op: get
    key: vivified
  - op: pop_item
assertions:
  - type: final_keys
    keys: [a, z]
`)
	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	assert.Equal(t, int64(1), result.Trace[0].Result)
	assert.Equal(t, map[string]any{"q": int64(1)}, result.Trace[1].Result)
	assert.Equal(t, []string{"q"}, result.Trace[1].Keys)
	assert.Equal(t, "fallback", result.Trace[2].Result)
	assert.Nil(t, result.Trace[3].Result)
	assert.Equal(t, []string{"vivified"}, result.Trace[4].Keys)
	assert.Equal(t, map[string]any{"vivified": nil}, result.Trace[4].Result)
}
