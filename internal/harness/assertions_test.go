package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runAssertions(t *testing.T, content string) *Result {
	t.Helper()
	result, err := Run(mustParse(t, content))
	require.NoError(t, err)
	return result
}

func TestAssertions_Pass(t *testing.T) {
	result := runAssertions(t, `
name: pass
seed: {x: 1, y: {z: [1, 2]}}
steps:
  - op: delete
    key: nope
assertions:
  - type: final_keys
    keys: [x, y]
  - type: final_len
    len: 2
  - type: final_equals
    equals: {y: {z: [1, 2.0]}, x: 1.0}
  - type: step_error
    step: 1
  - type: step_error
    step: 1
    code: key_not_found
`)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
}

func TestAssertions_Fail(t *testing.T) {
	tests := []struct {
		name      string
		assertion string
		wantErr   string
	}{
		{
			name:      "final_keys order",
			assertion: "  - type: final_keys\n    keys: [y, x]\n",
			wantErr:   "Assertion failed: final_keys",
		},
		{
			name:      "final_len",
			assertion: "  - type: final_len\n    len: 3\n",
			wantErr:   "Actual: 2 keys",
		},
		{
			name:      "final_equals",
			assertion: "  - type: final_equals\n    equals: {x: 2, y: 3}\n",
			wantErr:   "Expected: {x: 2, y: 3}",
		},
		{
			name:      "step_error on success",
			assertion: "  - type: step_error\n    step: 1\n",
			wantErr:   "Actual: succeeded",
		},
		{
			name:      "step_error wrong code",
			assertion: "  - type: step_error\n    step: 2\n    code: index_out_of_range\n",
			wantErr:   "Actual: key_not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := runAssertions(t, `
name: fail
seed: {x: 1, y: 2}
steps:
  - op: get
    key: x
  - op: delete
    key: nope
assertions:
`+tt.assertion)
			assert.False(t, result.Pass)
			require.Len(t, result.Errors, 1)
			assert.Contains(t, result.Errors[0], tt.wantErr)
			assert.Contains(t, result.Errors[0], "[2] delete nope -> key_not_found")
		})
	}
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "", ErrorCode(nil))
	assert.Equal(t, "error", ErrorCode(assert.AnError))
}
