package cli

import (
	"errors"
	"io/fs"

	"github.com/roach88/ordrec/internal/compiler"
	"github.com/roach88/ordrec/internal/loader"
	"github.com/roach88/ordrec/internal/record"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeReadFailed   = "E002" // File could not be read
	ErrCodeNotMapping   = "E003" // Document root is not a mapping
	ErrCodeShapeCompile = "E004" // CUE shapes failed to compile
	ErrCodeNotFound     = "E005" // Path not found
	ErrCodeBadArgument  = "E006" // Malformed index or range argument

	// Record operation errors
	ErrCodeKeyNotFound      = "E101"
	ErrCodeIndexOutOfRange  = "E102"
	ErrCodeInvalidKey       = "E103"
	ErrCodeUnsupportedValue = "E104"
	ErrCodePathConflict     = "E105"
	ErrCodeNonFinite        = "E106"

	// Scenario errors
	ErrCodeTestFailed = "E201"
)

// argumentError marks a malformed command argument.
type argumentError struct{ err error }

func (e *argumentError) Error() string { return e.err.Error() }
func (e *argumentError) Unwrap() error { return e.err }

// errorCode maps an error to its CLI code and exit code. Record operation
// errors are failures (1); everything that stops the command from running
// at all is a command error (2).
func errorCode(err error) (string, int) {
	var compileErr *compiler.CompileError
	var argErr *argumentError

	switch {
	case errors.Is(err, record.ErrKeyNotFound):
		return ErrCodeKeyNotFound, ExitFailure
	case errors.Is(err, record.ErrIndexOutOfRange):
		return ErrCodeIndexOutOfRange, ExitFailure
	case errors.Is(err, record.ErrInvalidKey):
		return ErrCodeInvalidKey, ExitFailure
	case errors.Is(err, record.ErrUnsupportedValue):
		return ErrCodeUnsupportedValue, ExitFailure
	case errors.Is(err, record.ErrPathConflict):
		return ErrCodePathConflict, ExitFailure
	case errors.Is(err, record.ErrNonFinite):
		return ErrCodeNonFinite, ExitFailure
	case errors.As(err, &argErr):
		return ErrCodeBadArgument, ExitCommandError
	case errors.Is(err, loader.ErrNotMapping):
		return ErrCodeNotMapping, ExitCommandError
	case errors.As(err, &compileErr):
		return ErrCodeShapeCompile, ExitCommandError
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, loader.ErrShapeNotFound):
		return ErrCodeNotFound, ExitCommandError
	case errors.Is(err, fs.ErrPermission):
		return ErrCodeReadFailed, ExitCommandError
	default:
		return ErrCodeGeneric, ExitCommandError
	}
}
