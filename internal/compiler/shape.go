package compiler

import (
	"fmt"
	"strconv"

	"cuelang.org/go/cue"

	"github.com/roach88/ordrec/internal/record"
)

// CompileShapes compiles every shape declared under the top-level "shape"
// struct, in declaration order:
//
//	shape: Packet: {
//		a: int
//		b: float | *0.0
//	}
func CompileShapes(v cue.Value) ([]*record.Schema, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	shapesVal := v.LookupPath(cue.ParsePath("shape"))
	if !shapesVal.Exists() {
		return nil, &CompileError{
			Field:   "shape",
			Message: "no shapes declared",
			Pos:     v.Pos(),
		}
	}

	iter, err := shapesVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var schemas []*record.Schema
	for iter.Next() {
		schema, err := CompileShape(iter.Value())
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, schema)
	}
	return schemas, nil
}

// CompileShape compiles one CUE struct into a record schema.
//
// The shape name is the struct's label. Each regular or optional field becomes
// a declared key, in declaration order. A concrete value or a marked default
// (*value) becomes the field's default; fields without one default to Null.
// Definitions and hidden fields are skipped.
func CompileShape(v cue.Value) (*record.Schema, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	var name string
	if sels := v.Path().Selectors(); len(sels) > 0 {
		name = selectorName(sels[len(sels)-1])
	}

	if v.IncompleteKind() != cue.StructKind {
		return nil, &CompileError{
			Field:   "shape." + name,
			Message: fmt.Sprintf("shape must be a struct, got %v", v.IncompleteKind()),
			Pos:     v.Pos(),
		}
	}

	iter, err := v.Fields(cue.Optional(true))
	if err != nil {
		return nil, formatCUEError(err)
	}

	var fields []record.Field
	for iter.Next() {
		fieldName := iter.Label()
		def, ok, err := defaultOf(iter.Value())
		if err != nil {
			return nil, err
		}
		if ok {
			fields = append(fields, record.DeclareDefault(fieldName, def))
		} else {
			fields = append(fields, record.Declare(fieldName))
		}
	}

	schema, err := record.NewSchema(name, fields...)
	if err != nil {
		return nil, &CompileError{
			Field:   "shape." + name,
			Message: err.Error(),
			Pos:     v.Pos(),
		}
	}
	return schema, nil
}

// defaultOf extracts the default of a field: its marked default if it has
// one, otherwise the value itself when concrete. Structs recurse field by
// field so nested declaration order is kept.
func defaultOf(v cue.Value) (any, bool, error) {
	if err := v.Err(); err != nil {
		return nil, false, formatCUEError(err)
	}
	if d, ok := v.Default(); ok {
		v = d
	}

	switch v.Kind() {
	case cue.NullKind:
		return nil, true, nil
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return nil, false, formatCUEError(err)
		}
		return b, true, nil
	case cue.IntKind:
		n, err := v.Int64()
		if err != nil {
			return nil, false, formatCUEError(err)
		}
		return n, true, nil
	case cue.FloatKind, cue.NumberKind:
		f, err := v.Float64()
		if err != nil {
			return nil, false, formatCUEError(err)
		}
		return f, true, nil
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, false, formatCUEError(err)
		}
		return s, true, nil
	case cue.BytesKind:
		b, err := v.Bytes()
		if err != nil {
			return nil, false, formatCUEError(err)
		}
		return string(b), true, nil
	case cue.ListKind:
		return listDefault(v)
	case cue.StructKind:
		return structDefault(v)
	default:
		return nil, false, nil
	}
}

func listDefault(v cue.Value) (any, bool, error) {
	iter, err := v.List()
	if err != nil {
		return nil, false, formatCUEError(err)
	}
	out := []any{}
	for iter.Next() {
		elem, _, err := defaultOf(iter.Value())
		if err != nil {
			return nil, false, err
		}
		out = append(out, elem)
	}
	return out, true, nil
}

func structDefault(v cue.Value) (any, bool, error) {
	iter, err := v.Fields(cue.Optional(true))
	if err != nil {
		return nil, false, formatCUEError(err)
	}
	var pairs []record.Pair
	for iter.Next() {
		def, _, err := defaultOf(iter.Value())
		if err != nil {
			return nil, false, err
		}
		pairs = append(pairs, record.P(iter.Label(), def))
	}
	return pairs, true, nil
}

// selectorName strips the quotes CUE puts around non-identifier labels.
func selectorName(sel cue.Selector) string {
	s := sel.String()
	if unquoted, err := strconv.Unquote(s); err == nil {
		return unquoted
	}
	return s
}
