package record

import (
	"fmt"
	"strconv"
	"strings"
)

// Range selects positions the way a start:stop:step slice does. Omitted
// bounds cover the full extent in the direction of the step, negative bounds
// count from the end, and out-of-range bounds are clamped.
//
//	Span()                 // every key
//	Span().From(1)         // 1:
//	Span().To(2)           // :2
//	Span().From(-2)        // -2:
//	Span().Every(-1)       // ::-1
type Range struct {
	start *int
	stop  *int
	step  int
}

// Span returns the range covering every position.
func Span() Range {
	return Range{}
}

// From sets the inclusive start bound.
func (rg Range) From(start int) Range {
	rg.start = &start
	return rg
}

// To sets the exclusive stop bound.
func (rg Range) To(stop int) Range {
	rg.stop = &stop
	return rg
}

// Every sets the step. Zero means 1.
func (rg Range) Every(step int) Range {
	rg.step = step
	return rg
}

func (rg Range) String() string {
	s := ""
	if rg.start != nil {
		s += strconv.Itoa(*rg.start)
	}
	s += ":"
	if rg.stop != nil {
		s += strconv.Itoa(*rg.stop)
	}
	if rg.step != 0 {
		s += ":" + strconv.Itoa(rg.step)
	}
	return s
}

// ParseRange parses the start:stop[:step] form String produces. Empty
// parts are omitted bounds; a bare integer is not a range.
func ParseRange(s string) (Range, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Range{}, fmt.Errorf("range %q: want start:stop[:step]", s)
	}

	rg := Span()
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return Range{}, fmt.Errorf("range %q: %w", s, err)
		}
		switch i {
		case 0:
			rg = rg.From(n)
		case 1:
			rg = rg.To(n)
		case 2:
			rg = rg.Every(n)
		}
	}
	return rg, nil
}

// indices resolves the range against a sequence of length n.
func (rg Range) indices(n int) []int {
	step := rg.step
	if step == 0 {
		step = 1
	}

	start, stop := 0, n
	if step < 0 {
		start, stop = n-1, -1
	}
	if rg.start != nil {
		start = clampBound(*rg.start, n, step)
	}
	if rg.stop != nil {
		stop = clampBound(*rg.stop, n, step)
	}

	var out []int
	if step > 0 {
		for i := start; i < stop; i += step {
			out = append(out, i)
		}
	} else {
		for i := start; i > stop; i += step {
			out = append(out, i)
		}
	}
	return out
}

func clampBound(i, n, step int) int {
	if i < 0 {
		i += n
		if i < 0 {
			if step < 0 {
				return -1
			}
			return 0
		}
		return i
	}
	if i >= n {
		if step < 0 {
			return n - 1
		}
		return n
	}
	return i
}

// resolve maps a possibly negative index onto [0, len).
func (r *Record) resolve(op string, index int) (int, error) {
	n := r.Len()
	if index < -n || index >= n {
		return 0, &IndexError{Op: op, Index: index, Len: n}
	}
	if index < 0 {
		index += n
	}
	return index, nil
}

// At returns a single-entry record holding the entry at index. Negative
// indices count from the end.
func (r *Record) At(index int) (*Record, error) {
	i, err := r.resolve("at", index)
	if err != nil {
		return nil, err
	}
	key := r.order[i]
	out := &Record{}
	out.put(key, copyValue(r.entries[key]))
	return out, nil
}

// Slice returns a record holding the entries selected by rg, in selection
// order. An empty selection yields an empty record.
func (r *Record) Slice(rg Range) *Record {
	out := &Record{}
	for _, i := range rg.indices(r.Len()) {
		key := r.order[i]
		out.put(key, copyValue(r.entries[key]))
	}
	return out
}

// DeleteAt removes the entry at index.
func (r *Record) DeleteAt(index int) error {
	i, err := r.resolve("delete at", index)
	if err != nil {
		return err
	}
	r.remove(r.order[i])
	return nil
}

// DeleteSlice removes every entry selected by rg and returns how many were
// removed. An empty selection is a no-op.
func (r *Record) DeleteSlice(rg Range) int {
	idx := rg.indices(r.Len())
	if len(idx) == 0 {
		return 0
	}
	drop := make(map[int]bool, len(idx))
	for _, i := range idx {
		drop[i] = true
	}
	kept := r.order[:0:0]
	for i, key := range r.order {
		if drop[i] {
			delete(r.entries, key)
			continue
		}
		kept = append(kept, key)
	}
	r.order = kept
	return len(idx)
}
