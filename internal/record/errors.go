package record

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (usually wrapped) by Record operations.
var (
	// ErrInvalidKey is returned when a key has no canonical string form,
	// or when a type is used as a key.
	ErrInvalidKey = errors.New("record: invalid key")

	// ErrKeyNotFound is returned by strict operations on an absent key.
	ErrKeyNotFound = errors.New("record: key not found")

	// ErrIndexOutOfRange is returned when a position is outside [-len, len).
	ErrIndexOutOfRange = errors.New("record: index out of range")

	// ErrUnsupportedValue is returned when a Go value has no Value form.
	ErrUnsupportedValue = errors.New("record: unsupported value")

	// ErrPathConflict is returned when a dot path runs into a non-record value.
	ErrPathConflict = errors.New("record: path conflict")

	// ErrNonFinite is returned when fingerprinting NaN or infinite floats.
	ErrNonFinite = errors.New("record: non-finite number")
)

// KeyError describes a failed key-addressed operation.
type KeyError struct {
	Op  string
	Key string
	Err error
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Key, e.Err)
}

func (e *KeyError) Unwrap() error {
	return e.Err
}

// IndexError describes a position that could not be resolved.
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s %d: %v (len %d)", e.Op, e.Index, ErrIndexOutOfRange, e.Len)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}
