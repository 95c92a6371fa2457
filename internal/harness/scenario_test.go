package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/basic_ops.yaml")
	require.NoError(t, err)

	assert.Equal(t, "basic_ops", scenario.Name)
	assert.Equal(t, "basic-ops-run", scenario.RunID)
	assert.Len(t, scenario.Steps, 8)
	assert.Len(t, scenario.Assertions, 4)
	assert.Equal(t, OpSet, scenario.Steps[0].Op)
	assert.Equal(t, "d", scenario.Steps[0].Key)
	require.NotNil(t, scenario.Steps[5].Index)
	assert.Equal(t, -1, *scenario.Steps[5].Index)
}

func TestLoadScenario_ResolvesShapeFile(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/packet.yaml")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("testdata", "shapes.cue"), scenario.ShapeFile)
	assert.Equal(t, "Packet", scenario.Shape)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_MissingShapeFile(t *testing.T) {
	path := writeScenario(t, t.TempDir(), `
name: shaped
shape_file: nowhere.cue
shape: Packet
steps:
  - op: clear
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shape file not found")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, t.TempDir(), `
name: typo
steps:
  - op: clear
assertion:
  - type: final_len
    len: 0
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing name",
			content: "steps:\n  - op: clear\n",
			wantErr: "name is required",
		},
		{
			name:    "no steps",
			content: "name: x\n",
			wantErr: "steps list is required",
		},
		{
			name:    "unknown op",
			content: "name: x\nsteps:\n  - op: frobnicate\n",
			wantErr: `unknown op "frobnicate"`,
		},
		{
			name:    "set without key",
			content: "name: x\nsteps:\n  - op: set\n    value: 1\n",
			wantErr: "key is required for set",
		},
		{
			name:    "at without index",
			content: "name: x\nsteps:\n  - op: at\n",
			wantErr: "index is required for at",
		},
		{
			name:    "join without mapping",
			content: "name: x\nsteps:\n  - op: join\n    other: [1]\n",
			wantErr: "other must be a mapping for join",
		},
		{
			name:    "set_path without path",
			content: "name: x\nsteps:\n  - op: set_path\n",
			wantErr: "path is required for set_path",
		},
		{
			name:    "shape without shape_file",
			content: "name: x\nshape: Packet\nsteps:\n  - op: clear\n",
			wantErr: "shape_file and shape must be given together",
		},
		{
			name:    "seed not a mapping",
			content: "name: x\nseed: [1, 2]\nsteps:\n  - op: clear\n",
			wantErr: "seed must be a mapping",
		},
		{
			name:    "step_error out of range",
			content: "name: x\nsteps:\n  - op: clear\nassertions:\n  - type: step_error\n    step: 2\n",
			wantErr: "step must name a step",
		},
		{
			name:    "final_len without len",
			content: "name: x\nsteps:\n  - op: clear\nassertions:\n  - type: final_len\n",
			wantErr: "len must be non-negative",
		},
		{
			name:    "unknown assertion",
			content: "name: x\nsteps:\n  - op: clear\nassertions:\n  - type: trace_order\n",
			wantErr: `unknown assertion type "trace_order"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseScenario_EmptyKeysAllowed(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: cleared
seed: {a: 1}
steps:
  - op: clear
assertions:
  - type: final_keys
    keys: []
`))
	require.NoError(t, err)
	assert.NotNil(t, scenario.Assertions[0].Keys)
}
