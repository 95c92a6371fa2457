package record

import (
	"fmt"
	"strings"
)

// Dot paths address nested records: "payload.src" is the "src" entry of the
// record stored under "payload". Path reads never vivify.

// GetPath returns the value at a dot path and whether it exists.
func (r *Record) GetPath(path string) (Value, bool) {
	segments := strings.Split(path, ".")
	current := r
	for i, seg := range segments {
		v, ok := current.Lookup(seg)
		if !ok {
			return nil, false
		}
		if i == len(segments)-1 {
			return v, true
		}
		nested, ok := v.(*Record)
		if !ok {
			return nil, false
		}
		current = nested
	}
	return nil, false
}

// HasPath reports whether a value exists at a dot path.
func (r *Record) HasPath(path string) bool {
	_, ok := r.GetPath(path)
	return ok
}

// SetPath stores v at a dot path, creating intermediate records as needed.
// It fails with ErrPathConflict, without mutating, when an intermediate
// segment holds something other than a record.
func (r *Record) SetPath(path string, v any) error {
	segments := strings.Split(path, ".")
	last := segments[len(segments)-1]

	current := r
	i := 0
	for ; i < len(segments)-1; i++ {
		existing, ok := current.Lookup(segments[i])
		if !ok {
			break
		}
		nested, ok := existing.(*Record)
		if !ok {
			return &KeyError{Op: "set path", Key: path, Err: ErrPathConflict}
		}
		current = nested
	}

	val, err := r.normalize(last, v)
	if err != nil {
		return &KeyError{Op: "set path", Key: path, Err: err}
	}
	// current is reachable from every ancestor on the path.
	if contains(val, current) {
		return &KeyError{Op: "set path", Key: path, Err: fmt.Errorf("%w: record cannot contain itself", ErrUnsupportedValue)}
	}

	for ; i < len(segments)-1; i++ {
		child := &Record{shape: shapeName(segments[i])}
		current.put(segments[i], child)
		current = child
	}
	current.put(last, val)
	return nil
}

// DeletePath removes the entry at a dot path.
func (r *Record) DeletePath(path string) error {
	parent := r
	key := path
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		v, ok := r.GetPath(path[:i])
		nested, isRecord := v.(*Record)
		if !ok || !isRecord {
			return &KeyError{Op: "delete path", Key: path, Err: ErrKeyNotFound}
		}
		parent, key = nested, path[i+1:]
	}
	if !parent.Has(key) {
		return &KeyError{Op: "delete path", Key: path, Err: ErrKeyNotFound}
	}
	parent.remove(key)
	return nil
}
