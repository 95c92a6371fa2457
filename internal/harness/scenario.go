package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of record operations plus assertions on
// the trace and the final record.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// ShapeFile is a CUE file declaring shapes. Relative paths resolve
	// against the scenario file's directory.
	ShapeFile string `yaml:"shape_file,omitempty"`

	// Shape names the schema the seed is built with. Required with ShapeFile.
	Shape string `yaml:"shape,omitempty"`

	// Seed is the starting mapping. Kept as a node so key order survives.
	Seed yaml.Node `yaml:"seed,omitempty"`

	Steps      []Step      `yaml:"steps"`
	Assertions []Assertion `yaml:"assertions,omitempty"`

	// RunID is an optional fixed run identifier. Defaults to a UUIDv7.
	RunID string `yaml:"run_id,omitempty"`
}

// Step is one operation on the record. Which fields apply depends on Op.
type Step struct {
	Op    string    `yaml:"op"`
	Key   string    `yaml:"key,omitempty"`
	Path  string    `yaml:"path,omitempty"`
	Index *int      `yaml:"index,omitempty"`
	From  *int      `yaml:"from,omitempty"`
	To    *int      `yaml:"to,omitempty"`
	Step  int       `yaml:"step,omitempty"`
	Value yaml.Node `yaml:"value,omitempty"`
	Other yaml.Node `yaml:"other,omitempty"`
}

// Step operations.
const (
	OpSet          = "set"
	OpGet          = "get"
	OpGetOrDefault = "get_or_default"
	OpSetDefault   = "set_default"
	OpDelete       = "delete"
	OpAt           = "at"
	OpSlice        = "slice"
	OpDeleteAt     = "delete_at"
	OpDeleteSlice  = "delete_slice"
	OpUpdate       = "update"
	OpJoin         = "join"
	OpPop          = "pop"
	OpPopItem      = "pop_item"
	OpSetPath      = "set_path"
	OpDeletePath   = "delete_path"
	OpClear        = "clear"
)

// Assertion checks the outcome of a run.
type Assertion struct {
	// Type is one of final_keys, final_len, final_equals, step_error.
	Type string `yaml:"type"`

	Keys   []string  `yaml:"keys,omitempty"`   // final_keys
	Len    *int      `yaml:"len,omitempty"`    // final_len
	Equals yaml.Node `yaml:"equals,omitempty"` // final_equals

	// Step is the seq (1-based) of the step expected to fail. Code, when set,
	// is the expected error code (see ErrorCode).
	Step int    `yaml:"step,omitempty"`
	Code string `yaml:"code,omitempty"`
}

// Assertion type constants.
const (
	AssertFinalKeys   = "final_keys"
	AssertFinalLen    = "final_len"
	AssertFinalEquals = "final_equals"
	AssertStepError   = "step_error"
)

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected and a relative shape_file is resolved against the file's
// directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := decodeScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.ShapeFile != "" && !filepath.IsAbs(scenario.ShapeFile) {
		scenario.ShapeFile = filepath.Join(filepath.Dir(path), scenario.ShapeFile)
	}

	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	if scenario.ShapeFile != "" {
		if _, err := os.Stat(scenario.ShapeFile); os.IsNotExist(err) {
			return nil, fmt.Errorf("invalid scenario: shape file not found: %s", scenario.ShapeFile)
		}
	}

	return scenario, nil
}

// ParseScenario parses scenario YAML without touching the filesystem.
func ParseScenario(data []byte) (*Scenario, error) {
	scenario, err := decodeScenario(data)
	if err != nil {
		return nil, err
	}
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return scenario, nil
}

func decodeScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks required fields and per-op arguments.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if (s.ShapeFile == "") != (s.Shape == "") {
		return fmt.Errorf("shape_file and shape must be given together")
	}

	if s.Seed.Kind != 0 && s.Seed.Kind != yaml.MappingNode && s.Seed.ShortTag() != "!!null" {
		return fmt.Errorf("seed must be a mapping")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion, len(s.Steps)); err != nil {
			return err
		}
	}

	return nil
}

func validateStep(index int, st *Step) error {
	switch st.Op {
	case OpSet, OpGet, OpGetOrDefault, OpSetDefault, OpDelete, OpPop:
		if st.Key == "" {
			return fmt.Errorf("steps[%d]: key is required for %s", index, st.Op)
		}
	case OpSetPath, OpDeletePath:
		if st.Path == "" {
			return fmt.Errorf("steps[%d]: path is required for %s", index, st.Op)
		}
	case OpAt, OpDeleteAt:
		if st.Index == nil {
			return fmt.Errorf("steps[%d]: index is required for %s", index, st.Op)
		}
	case OpUpdate, OpJoin:
		if st.Other.Kind != yaml.MappingNode {
			return fmt.Errorf("steps[%d]: other must be a mapping for %s", index, st.Op)
		}
	case OpSlice, OpDeleteSlice, OpPopItem, OpClear:
	case "":
		return fmt.Errorf("steps[%d]: op is required", index)
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, st.Op)
	}
	return nil
}

func validateAssertion(index int, a *Assertion, steps int) error {
	switch a.Type {
	case AssertFinalKeys:
		if a.Keys == nil {
			return fmt.Errorf("assertions[%d]: keys is required for final_keys", index)
		}
	case AssertFinalLen:
		if a.Len == nil || *a.Len < 0 {
			return fmt.Errorf("assertions[%d]: len must be non-negative for final_len", index)
		}
	case AssertFinalEquals:
		if a.Equals.Kind != yaml.MappingNode {
			return fmt.Errorf("assertions[%d]: equals must be a mapping for final_equals", index)
		}
	case AssertStepError:
		if a.Step < 1 || a.Step > steps {
			return fmt.Errorf("assertions[%d]: step must name a step (1..%d)", index, steps)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
