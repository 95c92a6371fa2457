package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Snapshot is the golden-file form of a run. The run ID is left out so
// snapshots stay stable across runs.
type Snapshot struct {
	Scenario string       `json:"scenario"`
	Trace    []TraceEvent `json:"trace"`
	Final    FinalState   `json:"final"`
}

// FinalState captures the final record: its key order, its plain values and
// its shape-qualified rendering.
type FinalState struct {
	Keys     []string       `json:"keys"`
	Values   map[string]any `json:"values"`
	Describe string         `json:"describe"`
}

// MarshalSnapshot renders a result as indented JSON with a trailing newline.
// Map keys are sorted, so the output is deterministic.
func MarshalSnapshot(scenarioName string, result *Result) ([]byte, error) {
	keys := result.Final.KeyList()
	if keys == nil {
		keys = []string{}
	}
	snapshot := Snapshot{
		Scenario: scenarioName,
		Trace:    result.Trace,
		Final: FinalState{
			Keys:     keys,
			Values:   result.Final.ToPlain(),
			Describe: result.Final.Describe(),
		},
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := MarshalSnapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)
	return nil
}
