package harness

import (
	"errors"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/roach88/ordrec/internal/loader"
	"github.com/roach88/ordrec/internal/record"
)

// Run executes a scenario and returns its result.
//
// Execution flow:
// 1. Build the seed record, applying the shape when one is named
// 2. Execute each step, recording a trace event
// 3. Evaluate assertions against the trace and the final record
//
// Step failures are part of the trace, not errors. Run only fails when the
// scenario itself is invalid or its seed cannot be built.
func Run(scenario *Scenario) (*Result, error) {
	return RunWith(scenario, UUIDv7Generator{})
}

// RunWith is Run with a custom run ID generator. A scenario's own run_id
// takes precedence.
func RunWith(scenario *Scenario, ids RunIDGenerator) (*Result, error) {
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	runID := scenario.RunID
	if runID == "" {
		runID = ids.Generate()
	}

	rec, err := seedRecord(scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to build seed: %w", err)
	}

	result := NewResult(runID)
	for i, step := range scenario.Steps {
		ev := execute(rec, step)
		ev.Seq = i + 1
		result.Trace = append(result.Trace, ev)

		slog.Debug("step executed",
			"run_id", runID,
			"seq", ev.Seq,
			"op", step.Op,
			"error", ev.Error,
		)
	}
	result.Final = rec

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	slog.Debug("scenario finished",
		"scenario", scenario.Name,
		"run_id", runID,
		"steps", len(result.Trace),
		"pass", result.Pass,
	)
	return result, nil
}

func seedRecord(s *Scenario) (*record.Record, error) {
	seed := record.Empty()
	if s.Seed.Kind != 0 && s.Seed.ShortTag() != "!!null" {
		var err error
		if seed, err = loader.FromNode(&s.Seed); err != nil {
			return nil, err
		}
	}

	if s.ShapeFile == "" {
		return seed, nil
	}

	schemas, err := loader.LoadShapes(s.ShapeFile)
	if err != nil {
		return nil, err
	}
	schema, err := loader.FindShape(schemas, s.Shape)
	if err != nil {
		return nil, err
	}
	return loader.Apply(schema, seed)
}

// execute applies one step and describes it as a trace event.
func execute(rec *record.Record, st Step) TraceEvent {
	ev := TraceEvent{Op: st.Op, Key: st.Key, Index: st.Index}
	switch st.Op {
	case OpSetPath, OpDeletePath:
		ev.Key = st.Path
	case OpSlice, OpDeleteSlice:
		ev.Range = stepRange(st).String()
	}

	out, err := apply(rec, st)
	if err != nil {
		ev.Error = ErrorCode(err)
		return ev
	}

	switch v := out.(type) {
	case *record.Record:
		ev.Result = v.ToPlain()
		ev.Keys = v.KeyList()
	case record.Value:
		ev.Result = record.Plain(v)
	default:
		ev.Result = out
	}
	return ev
}

func apply(rec *record.Record, st Step) (any, error) {
	switch st.Op {
	case OpSet:
		v, err := loader.NodeValue(&st.Value)
		if err != nil {
			return nil, err
		}
		return nil, rec.Set(st.Key, v)

	case OpGet:
		return rec.Get(st.Key), nil

	case OpGetOrDefault:
		v, err := nodeRecordValue(&st.Value)
		if err != nil {
			return nil, err
		}
		return rec.GetOrDefault(st.Key, v), nil

	case OpSetDefault:
		v, err := loader.NodeValue(&st.Value)
		if err != nil {
			return nil, err
		}
		return rec.SetDefault(st.Key, v)

	case OpDelete:
		return nil, rec.Delete(st.Key)

	case OpAt:
		return rec.At(*st.Index)

	case OpSlice:
		return rec.Slice(stepRange(st)), nil

	case OpDeleteAt:
		return nil, rec.DeleteAt(*st.Index)

	case OpDeleteSlice:
		return rec.DeleteSlice(stepRange(st)), nil

	case OpUpdate:
		other, err := loader.FromNode(&st.Other)
		if err != nil {
			return nil, err
		}
		return nil, rec.Update(other)

	case OpJoin:
		other, err := loader.FromNode(&st.Other)
		if err != nil {
			return nil, err
		}
		rec.Join(other)
		return nil, nil

	case OpPop:
		v, ok := rec.Pop(st.Key)
		if !ok {
			return nil, &record.KeyError{Op: "pop", Key: st.Key, Err: record.ErrKeyNotFound}
		}
		return v, nil

	case OpPopItem:
		k, v, ok := rec.PopItem()
		if !ok {
			return nil, &record.KeyError{Op: "pop_item", Err: record.ErrKeyNotFound}
		}
		return record.MustNew(nil, record.P(k, v)), nil

	case OpSetPath:
		v, err := loader.NodeValue(&st.Value)
		if err != nil {
			return nil, err
		}
		return nil, rec.SetPath(st.Path, v)

	case OpDeletePath:
		return nil, rec.DeletePath(st.Path)

	case OpClear:
		rec.Clear()
		return nil, nil
	}
	return nil, fmt.Errorf("unknown op %q", st.Op)
}

func nodeRecordValue(n *yaml.Node) (record.Value, error) {
	v, err := loader.NodeValue(n)
	if err != nil {
		return nil, err
	}
	return record.ValueOf(v)
}

func stepRange(st Step) record.Range {
	rg := record.Span().Every(st.Step)
	if st.From != nil {
		rg = rg.From(*st.From)
	}
	if st.To != nil {
		rg = rg.To(*st.To)
	}
	return rg
}

// ErrorCode maps a record error to the short code used in traces and
// step_error assertions.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, record.ErrKeyNotFound):
		return "key_not_found"
	case errors.Is(err, record.ErrIndexOutOfRange):
		return "index_out_of_range"
	case errors.Is(err, record.ErrInvalidKey):
		return "invalid_key"
	case errors.Is(err, record.ErrUnsupportedValue):
		return "unsupported_value"
	case errors.Is(err, record.ErrPathConflict):
		return "path_conflict"
	case errors.Is(err, record.ErrNonFinite):
		return "non_finite"
	case errors.Is(err, loader.ErrNotMapping):
		return "not_mapping"
	default:
		return "error"
	}
}
