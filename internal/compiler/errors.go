package compiler

import (
	"fmt"

	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// CompileError is a shape compilation failure. Pos points into the CUE
// source when CUE reported one.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if !e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s",
		e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
		e.Field, e.Message)
}

// formatCUEError turns the first positioned CUE error into a CompileError.
// Anything else is returned unchanged.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	pos := errors.Positions(first)
	if len(pos) == 0 {
		return err
	}
	return &CompileError{Field: "cue", Message: first.Error(), Pos: pos[0]}
}
