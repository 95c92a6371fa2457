// Package harness runs scripted record scenarios.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: join_then_slice
//	description: "Join appends unseen keys and slices keep order"
//	shape_file: shapes.cue   # optional, relative to the scenario file
//	shape: Packet            # required with shape_file
//	seed:
//	  a: 1
//	  b: 2
//	steps:
//	  - op: join
//	    other: { c: 3 }
//	  - op: slice
//	    from: 1
//	assertions:
//	  - type: final_keys
//	    keys: [a, b, c]
//	  - type: step_error
//	    step: 2
//	    code: key_not_found
//
// Every step runs against one record and leaves a TraceEvent. Failed steps
// do not stop the run; their error code is recorded in the trace so
// step_error assertions can check it.
//
// # Assertion Types
//
//   - final_keys: the final key order
//   - final_len: the final number of keys
//   - final_equals: the final record equals a mapping, order ignored
//   - step_error: the step with the given seq failed, optionally with a code
//
// # Golden Files
//
// RunWithGolden compares the trace and final record against
// testdata/golden/<name>.golden. Run IDs are not part of the snapshot, so a
// scenario without a run_id still produces a stable file.
package harness
