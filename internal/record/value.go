package record

import (
	"fmt"
	"math"
	"reflect"
)

// Value is a sealed interface over the values a Record can hold.
// Only Null, Bool, Int, Float, String, List and *Record implement it.
type Value interface {
	recordValue()
}

// Null is the explicit empty value. Declared-but-unset schema keys and
// vivified keys hold Null.
type Null struct{}

func (Null) recordValue() {}

// Bool is a boolean value.
type Bool bool

func (Bool) recordValue() {}

// Int is an integral number.
type Int int64

func (Int) recordValue() {}

// Float is a floating point number. Int and Float compare numerically.
type Float float64

func (Float) recordValue() {}

// String is a string value.
type String string

func (String) recordValue() {}

// List is an ordered sequence of values.
type List []Value

func (List) recordValue() {}

func (*Record) recordValue() {}

// ValueOf normalizes a Go value into a Value.
//
// Maps become child Records (keys through KeyOf, applied in RFC 8785 key
// order since Go maps are unordered), []Pair becomes a child Record in pair
// order, slices become List, and numbers become Int or Float. A *Record is
// adopted without copying; once stored, an unnamed one takes its shape name
// from its key.
func ValueOf(v any) (Value, error) {
	return valueOf(v, "")
}

// valueOf is ValueOf for a value stored under key. Records created here
// take their shape name from the key.
func valueOf(v any, key string) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case *Record:
		if val == nil {
			return Null{}, nil
		}
		return val, nil
	case List:
		out := make(List, len(val))
		for i, elem := range val {
			ev, err := valueOf(elem, key)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = ev
		}
		return out, nil
	case Value:
		return val, nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case int:
		return Int(val), nil
	case int8:
		return Int(val), nil
	case int16:
		return Int(val), nil
	case int32:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case uint:
		return uintValue(uint64(val)), nil
	case uint8:
		return Int(val), nil
	case uint16:
		return Int(val), nil
	case uint32:
		return Int(val), nil
	case uint64:
		return uintValue(val), nil
	case float32:
		return Float(val), nil
	case float64:
		return Float(val), nil
	case []any:
		out := make(List, len(val))
		for i, elem := range val {
			ev, err := valueOf(elem, key)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = ev
		}
		return out, nil
	case []Pair, map[string]any:
		entries, err := entriesOf(val)
		if err != nil {
			return nil, err
		}
		return buildRecord(shapeName(key), entries), nil
	}
	return reflectValueOf(reflect.ValueOf(v), key)
}

func uintValue(u uint64) Value {
	if u > math.MaxInt64 {
		return Float(u)
	}
	return Int(u)
}

// reflectValueOf handles named types and container types the fast path in
// valueOf does not list.
func reflectValueOf(rv reflect.Value, key string) (Value, error) {
	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return uintValue(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return Null{}, nil
		}
		out := make(List, rv.Len())
		for i := range out {
			ev, err := valueOf(rv.Index(i).Interface(), key)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = ev
		}
		return out, nil
	case reflect.Map:
		if rv.IsNil() {
			return Null{}, nil
		}
		entries, err := entriesOf(rv.Interface())
		if err != nil {
			return nil, err
		}
		return buildRecord(shapeName(key), entries), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null{}, nil
		}
		return valueOf(rv.Elem().Interface(), key)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedValue, rv.Type())
	}
}

// Plain converts v back into plain Go values: nil, bool, int64, float64,
// string, []any and map[string]any.
func Plain(v Value) any {
	switch val := v.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(val)
	case Int:
		return int64(val)
	case Float:
		return float64(val)
	case String:
		return string(val)
	case List:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = Plain(elem)
		}
		return out
	case *Record:
		return val.ToPlain()
	default:
		panic(fmt.Sprintf("record: unknown Value type %T", v))
	}
}

// Equal reports whether a and b are structurally equal. Records compare
// without regard to order, lists element by element, numbers numerically.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case nil, Null:
		switch b.(type) {
		case nil, Null:
			return true
		}
		return false
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case String:
		y, ok := b.(String)
		return ok && x == y
	case Int:
		switch y := b.(type) {
		case Int:
			return x == y
		case Float:
			return intEqualsFloat(int64(x), float64(y))
		}
		return false
	case Float:
		switch y := b.(type) {
		case Float:
			return x == y
		case Int:
			return intEqualsFloat(int64(y), float64(x))
		}
		return false
	case List:
		y, ok := b.(List)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case *Record:
		y, ok := b.(*Record)
		return ok && x.Equals(y)
	}
	return false
}

// copyValue deep-copies records and lists so the copy shares no children.
func copyValue(v Value) Value {
	switch val := v.(type) {
	case *Record:
		return val.Copy()
	case List:
		out := make(List, len(val))
		for i, elem := range val {
			out[i] = copyValue(elem)
		}
		return out
	case nil:
		return Null{}
	default:
		return val
	}
}

// contains reports whether target is v itself or nested anywhere inside it.
// intEqualsFloat compares exactly: f must be integral and within int64 range.
func intEqualsFloat(i int64, f float64) bool {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return false
	}
	return int64(f) == i
}

func contains(v Value, target *Record) bool {
	switch val := v.(type) {
	case *Record:
		if val == target {
			return true
		}
		for _, child := range val.entries {
			if contains(child, target) {
				return true
			}
		}
	case List:
		for _, elem := range val {
			if contains(elem, target) {
				return true
			}
		}
	}
	return false
}
