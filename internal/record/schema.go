package record

import (
	"fmt"
	"slices"
)

// Field declares one key of a Schema.
type Field struct {
	Name       string
	Default    any
	HasDefault bool
}

// Declare declares a key whose default is Null.
func Declare(name string) Field {
	return Field{Name: name}
}

// DeclareDefault declares a key with a default value.
func DeclareDefault(name string, def any) Field {
	return Field{Name: name, Default: def, HasDefault: true}
}

// Schema is a named record shape: a fixed list of declared keys with
// defaults. It only affects construction; records built from it can gain and
// lose keys freely afterwards.
type Schema struct {
	name     string
	fields   []Field
	defaults []Value
}

// NewSchema validates the declared fields and normalizes their defaults.
func NewSchema(name string, fields ...Field) (*Schema, error) {
	if name == "" {
		name = defaultShape
	}
	s := &Schema{
		name:     name,
		fields:   slices.Clone(fields),
		defaults: make([]Value, len(fields)),
	}
	seen := make(map[string]bool, len(fields))
	for i, f := range fields {
		if seen[f.Name] {
			return nil, fmt.Errorf("schema %s: duplicate field %q", name, f.Name)
		}
		seen[f.Name] = true

		if !f.HasDefault {
			s.defaults[i] = Null{}
			continue
		}
		v, err := valueOf(f.Default, f.Name)
		if err != nil {
			return nil, fmt.Errorf("schema %s: field %q default: %w", name, f.Name, err)
		}
		s.defaults[i] = v
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error.
func MustSchema(name string, fields ...Field) *Schema {
	s, err := NewSchema(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the shape name given to records built from s.
func (s *Schema) Name() string {
	return s.name
}

// Fields returns the declared fields in declaration order.
func (s *Schema) Fields() []Field {
	return slices.Clone(s.fields)
}

// New builds a record with every declared key present, in declaration order,
// holding its default (or Null). The seed and named pairs are then applied
// as in the package-level New.
func (s *Schema) New(seed any, named ...Pair) (*Record, error) {
	r := &Record{shape: s.name}
	for i, f := range s.fields {
		r.put(f.Name, copyValue(s.defaults[i]))
	}
	if err := r.Update(seed, named...); err != nil {
		return nil, fmt.Errorf("%s: %w", s.name, err)
	}
	return r, nil
}

// MustNew is like New but panics on error.
func (s *Schema) MustNew(seed any, named ...Pair) *Record {
	r, err := s.New(seed, named...)
	if err != nil {
		panic(err)
	}
	return r
}
