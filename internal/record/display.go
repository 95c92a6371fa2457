package record

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// String renders the record as {k: v, ...}. Strings are unquoted. The output
// is for people, not for parsing.
func (r *Record) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range r.KeyList() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(formatValue(r.entries[k], false))
	}
	b.WriteByte('}')
	return b.String()
}

// Describe renders the record as a constructor call naming its shape,
// e.g. Packet(a = 2, pay_load = PayLoad(src = "n1")).
func (r *Record) Describe() string {
	var b strings.Builder
	b.WriteString(r.Shape())
	b.WriteByte('(')
	for i, k := range r.KeyList() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteString(" = ")
		b.WriteString(formatValue(r.entries[k], true))
	}
	b.WriteByte(')')
	return b.String()
}

// GoString makes %#v print Describe.
func (r *Record) GoString() string {
	return r.Describe()
}

// Format renders a single value the way String renders entries.
func Format(v Value) string {
	return formatValue(v, false)
}

func formatValue(v Value, describe bool) string {
	switch val := v.(type) {
	case nil, Null:
		return "null"
	case Bool:
		return strconv.FormatBool(bool(val))
	case Int:
		return strconv.FormatInt(int64(val), 10)
	case Float:
		return formatFloat(float64(val))
	case String:
		if describe {
			return strconv.Quote(string(val))
		}
		return string(val)
	case List:
		parts := make([]string, len(val))
		for i, elem := range val {
			parts[i] = formatValue(elem, describe)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *Record:
		if describe {
			return val.Describe()
		}
		return val.String()
	}
	return "?"
}

// formatFloat keeps a decimal point on integral floats so 2.0 and 2 read differently.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// shapeName derives a shape name from a key: pay_load -> PayLoad.
func shapeName(key string) string {
	if key == "" {
		return ""
	}
	caser := cases.Title(language.Und)
	var b strings.Builder
	for _, word := range strings.Split(key, "_") {
		b.WriteString(caser.String(word))
	}
	if b.Len() == 0 {
		return defaultShape
	}
	return b.String()
}
