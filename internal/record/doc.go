// Package record provides Record, an ordered associative container with string
// keys and JSON-like values.
//
// A Record remembers the order in which keys were first inserted and can be
// addressed three ways: by key, by integer position (negative positions count
// from the end) and by position range. Nested plain maps are wrapped into child
// Records at the moment they are stored, and ToPlain reverses that wrapping.
//
// Values form a closed union: Null, Bool, Int, Float, String, List and *Record.
// Go values are normalized into that union by ValueOf.
//
// Key constraints:
//   - Re-assigning a key keeps its position; deleting removes it everywhere.
//   - Get is a vivifying read: an absent key is inserted with Null. Use Lookup
//     or GetOrDefault for side-effect free reads.
//   - Equality ignores order; iteration does not.
//   - A failed operation leaves the record unchanged.
//   - Records are not safe for concurrent use. Callers provide their own locking.
package record
