package record

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
)

const defaultShape = "Record"

// Record is an insertion-ordered map from string keys to Values.
//
// The zero value is an empty record ready to use.
type Record struct {
	shape   string
	order   []string
	entries map[string]Value
}

// Pair is one named key/value pair handed to New, Update and Schema.New.
type Pair struct {
	Key   string
	Value any
}

// P is a shorthand for Pair.
// Example: record.New(nil, record.P("a", 1), record.P("b", "B"))
func P(key string, value any) Pair {
	return Pair{Key: key, Value: value}
}

type entry struct {
	key   string
	value Value
}

// Empty returns a new empty record.
func Empty() *Record {
	return &Record{}
}

// New builds a record from a seed mapping and named pairs.
//
// The seed may be nil, a *Record (deep-copied), a []Pair, or any Go map whose
// keys have a canonical string form. Named pairs are applied after the seed
// and win on collision.
func New(seed any, named ...Pair) (*Record, error) {
	r := &Record{}
	if err := r.Update(seed, named...); err != nil {
		return nil, err
	}
	return r, nil
}

// MustNew is like New but panics on error.
func MustNew(seed any, named ...Pair) *Record {
	r, err := New(seed, named...)
	if err != nil {
		panic(err)
	}
	return r
}

// FromKeys returns a record with every key set to its own copy of v.
func FromKeys(keys []string, v any) (*Record, error) {
	r := &Record{}
	for _, k := range keys {
		val, err := valueOf(v, k)
		if err != nil {
			return nil, &KeyError{Op: "fromkeys", Key: k, Err: err}
		}
		r.put(k, copyValue(val))
	}
	return r, nil
}

// Shape returns the record's shape name: the schema name for records built
// from a Schema, a name derived from the parent key for nested records, and
// "Record" otherwise.
func (r *Record) Shape() string {
	if r == nil || r.shape == "" {
		return defaultShape
	}
	return r.shape
}

// Len returns the number of entries.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Get returns the value stored under key.
//
// Get is a vivifying read: when key is absent it is inserted with Null and
// Null is returned. Use Lookup or GetOrDefault to read without mutating.
// A nil record has nothing to vivify and returns Null.
func (r *Record) Get(key string) Value {
	if r == nil {
		return Null{}
	}
	if v, ok := r.entries[key]; ok {
		return v
	}
	r.put(key, Null{})
	return Null{}
}

// Lookup returns the value stored under key and whether it was present.
func (r *Record) Lookup(key string) (Value, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.entries[key]
	return v, ok
}

// GetOrDefault returns the value stored under key, or def when absent.
func (r *Record) GetOrDefault(key string, def Value) Value {
	if v, ok := r.Lookup(key); ok {
		return v
	}
	return def
}

// Has reports whether key is present.
func (r *Record) Has(key string) bool {
	_, ok := r.Lookup(key)
	return ok
}

// Set stores v under key. Nested maps are wrapped into child records. An
// existing key keeps its position; a new key is appended.
//
// A *Record value is adopted, not copied: the parent owns it from then on.
// Use Copy to place the same content under two parents.
func (r *Record) Set(key string, v any) error {
	val, err := r.normalize(key, v)
	if err != nil {
		return &KeyError{Op: "set", Key: key, Err: err}
	}
	r.put(key, val)
	return nil
}

// SetKey is Set for keys that are not strings. The key is converted with
// KeyOf before anything is stored.
func (r *Record) SetKey(k any, v any) error {
	key, err := KeyOf(k)
	if err != nil {
		return err
	}
	return r.Set(key, v)
}

// SetDefault returns the value under key, storing def first when absent.
func (r *Record) SetDefault(key string, def any) (Value, error) {
	if v, ok := r.Lookup(key); ok {
		return v, nil
	}
	if err := r.Set(key, def); err != nil {
		return nil, err
	}
	return r.entries[key], nil
}

// Delete removes key. It returns ErrKeyNotFound when key is absent.
func (r *Record) Delete(key string) error {
	if !r.Has(key) {
		return &KeyError{Op: "delete", Key: key, Err: ErrKeyNotFound}
	}
	r.remove(key)
	return nil
}

// Pop removes key and returns its value. It reports false when absent.
func (r *Record) Pop(key string) (Value, bool) {
	v, ok := r.Lookup(key)
	if !ok {
		return nil, false
	}
	r.remove(key)
	return v, true
}

// PopItem removes and returns the most recently inserted entry.
func (r *Record) PopItem() (string, Value, bool) {
	if r.Len() == 0 {
		return "", nil, false
	}
	key := r.order[len(r.order)-1]
	v := r.entries[key]
	r.remove(key)
	return key, v, true
}

// Clear removes every entry.
func (r *Record) Clear() {
	r.order = nil
	r.entries = nil
}

// Update applies the seed and then the named pairs, as New does, without
// touching unrelated keys. Nothing is applied if any value fails to convert.
func (r *Record) Update(seed any, named ...Pair) error {
	entries, err := entriesOf(seed)
	if err != nil {
		return err
	}
	for _, p := range named {
		v, err := valueOf(p.Value, p.Key)
		if err != nil {
			return &KeyError{Op: "update", Key: p.Key, Err: err}
		}
		entries = append(entries, entry{key: p.Key, value: v})
	}
	for _, e := range entries {
		if rec, ok := e.value.(*Record); ok && contains(rec, r) {
			return &KeyError{Op: "update", Key: e.key, Err: fmt.Errorf("%w: record cannot contain itself", ErrUnsupportedValue)}
		}
	}
	for _, e := range entries {
		r.put(e.key, e.value)
	}
	return nil
}

// Join sets every entry of other into r, overwriting on collision and
// appending new keys in other's order. Nested values are copied. It returns r.
func (r *Record) Join(other *Record) *Record {
	if other == nil || other == r {
		return r
	}
	for _, k := range other.order {
		r.put(k, copyValue(other.entries[k]))
	}
	return r
}

// MergeInto is Join with the bias reversed: it joins r into dst and returns dst.
func (r *Record) MergeInto(dst *Record) *Record {
	return dst.Join(r)
}

// Copy returns a deep copy. Order and shape names are kept; no nested record
// is shared with r.
func (r *Record) Copy() *Record {
	if r == nil {
		return nil
	}
	out := &Record{
		shape:   r.shape,
		order:   slices.Clone(r.order),
		entries: make(map[string]Value, len(r.entries)),
	}
	for k, v := range r.entries {
		out.entries[k] = copyValue(v)
	}
	return out
}

// ToPlain converts the record into nested plain maps. Child records become
// map[string]any; scalars and lists go through Plain.
func (r *Record) ToPlain() map[string]any {
	out := make(map[string]any, r.Len())
	if r == nil {
		return out
	}
	for k, v := range r.entries {
		out[k] = Plain(v)
	}
	return out
}

// Equals reports structural equality of entries. Order is ignored.
func (r *Record) Equals(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	if len(r.entries) != len(other.entries) {
		return false
	}
	for k, v := range r.entries {
		ov, ok := other.entries[k]
		if !ok || !Equal(v, ov) {
			return false
		}
	}
	return true
}

// Keys yields keys in insertion order. The record must not be modified
// while the sequence is being ranged over.
func (r *Record) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		if r == nil {
			return
		}
		for _, k := range r.order {
			if !yield(k) {
				return
			}
		}
	}
}

// KeyList returns a snapshot of the keys in insertion order.
func (r *Record) KeyList() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.order)
}

// All yields keys and stored values in insertion order.
func (r *Record) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if r == nil {
			return
		}
		for _, k := range r.order {
			if !yield(k, r.entries[k]) {
				return
			}
		}
	}
}

// Items yields keys and plain values (see ToPlain) in insertion order.
func (r *Record) Items() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for k, v := range r.All() {
			if !yield(k, Plain(v)) {
				return
			}
		}
	}
}

// Values yields plain values in insertion order.
func (r *Record) Values() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, v := range r.All() {
			if !yield(Plain(v)) {
				return
			}
		}
	}
}

// normalize converts v for storage under key and refuses self-containment.
func (r *Record) normalize(key string, v any) (Value, error) {
	val, err := valueOf(v, key)
	if err != nil {
		return nil, err
	}
	if contains(val, r) {
		return nil, fmt.Errorf("%w: record cannot contain itself", ErrUnsupportedValue)
	}
	return val, nil
}

func (r *Record) put(key string, v Value) {
	if child, ok := v.(*Record); ok && child.shape == "" {
		child.shape = shapeName(key)
	}
	if r.entries == nil {
		r.entries = make(map[string]Value)
	}
	if _, ok := r.entries[key]; !ok {
		r.order = append(r.order, key)
	}
	r.entries[key] = v
}

func (r *Record) remove(key string) {
	delete(r.entries, key)
	if i := slices.Index(r.order, key); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
}

func buildRecord(shape string, entries []entry) *Record {
	r := &Record{shape: shape}
	for _, e := range entries {
		r.put(e.key, e.value)
	}
	return r
}

// entriesOf normalizes a seed mapping into ordered entries.
func entriesOf(seed any) ([]entry, error) {
	switch src := seed.(type) {
	case nil:
		return nil, nil
	case *Record:
		if src == nil {
			return nil, nil
		}
		out := make([]entry, 0, src.Len())
		for k, v := range src.All() {
			out = append(out, entry{key: k, value: copyValue(v)})
		}
		return out, nil
	case []Pair:
		out := make([]entry, 0, len(src))
		for _, p := range src {
			v, err := valueOf(p.Value, p.Key)
			if err != nil {
				return nil, &KeyError{Op: "set", Key: p.Key, Err: err}
			}
			out = append(out, entry{key: p.Key, value: v})
		}
		return out, nil
	case map[string]any:
		out := make([]entry, 0, len(src))
		for _, k := range sortedKeys(mapKeys(src)) {
			v, err := valueOf(src[k], k)
			if err != nil {
				return nil, &KeyError{Op: "set", Key: k, Err: err}
			}
			out = append(out, entry{key: k, value: v})
		}
		return out, nil
	}

	rv := reflect.ValueOf(seed)
	if rv.Kind() != reflect.Map {
		return nil, fmt.Errorf("%w: seed must be a mapping, got %T", ErrUnsupportedValue, seed)
	}
	raw := make(map[string]any, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		key, err := KeyOf(it.Key().Interface())
		if err != nil {
			return nil, err
		}
		if _, dup := raw[key]; dup {
			return nil, &KeyError{Op: "set", Key: key, Err: fmt.Errorf("%w: distinct keys share the form %q", ErrInvalidKey, key)}
		}
		raw[key] = it.Value().Interface()
	}
	return entriesOf(raw)
}

func mapKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
