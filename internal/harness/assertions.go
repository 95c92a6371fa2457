package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/ordrec/internal/loader"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s", event.Seq, event.Op)
			if event.Key != "" {
				fmt.Fprintf(&buf, " %s", event.Key)
			}
			if event.Error != "" {
				fmt.Fprintf(&buf, " -> %s", event.Error)
			}
			buf.WriteByte('\n')
		}
	}

	return buf.String()
}

func assertFinalKeys(result *Result, assertion Assertion) error {
	keys := result.Final.KeyList()
	if slices.Equal(keys, assertion.Keys) {
		return nil
	}
	return &AssertionError{
		Type:     AssertFinalKeys,
		Expected: fmt.Sprintf("%v", assertion.Keys),
		Actual:   fmt.Sprintf("%v", keys),
		Trace:    result.Trace,
	}
}

func assertFinalLen(result *Result, assertion Assertion) error {
	if n := result.Final.Len(); n != *assertion.Len {
		return &AssertionError{
			Type:     AssertFinalLen,
			Expected: fmt.Sprintf("%d keys", *assertion.Len),
			Actual:   fmt.Sprintf("%d keys", n),
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertFinalEquals compares structurally; key order is not checked.
func assertFinalEquals(result *Result, assertion Assertion) error {
	want, err := loader.FromNode(&assertion.Equals)
	if err != nil {
		return fmt.Errorf("final_equals: %w", err)
	}
	if result.Final.Equals(want) {
		return nil
	}
	return &AssertionError{
		Type:     AssertFinalEquals,
		Expected: want.String(),
		Actual:   result.Final.String(),
		Trace:    result.Trace,
	}
}

func assertStepError(result *Result, assertion Assertion) error {
	idx := slices.IndexFunc(result.Trace, func(ev TraceEvent) bool {
		return ev.Seq == assertion.Step
	})
	if idx < 0 {
		return &AssertionError{
			Type:     AssertStepError,
			Expected: fmt.Sprintf("step %d in trace", assertion.Step),
			Actual:   "step not executed",
			Trace:    result.Trace,
		}
	}

	ev := result.Trace[idx]
	want := assertion.Code
	if want == "" {
		want = "any error"
	}
	if ev.Error == "" || (assertion.Code != "" && ev.Error != assertion.Code) {
		actual := ev.Error
		if actual == "" {
			actual = "succeeded"
		}
		return &AssertionError{
			Type:     AssertStepError,
			Expected: fmt.Sprintf("step %d (%s) fails with %s", ev.Seq, ev.Op, want),
			Actual:   actual,
			Trace:    result.Trace,
		}
	}
	return nil
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertFinalKeys:
			err = assertFinalKeys(result, assertion)
		case AssertFinalLen:
			err = assertFinalLen(result, assertion)
		case AssertFinalEquals:
			err = assertFinalEquals(result, assertion)
		case AssertStepError:
			err = assertStepError(result, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
