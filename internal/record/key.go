package record

import (
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"unicode/utf16"
)

// KeyOf returns the canonical string form of k.
//
// Strings pass through. Stringers, errors and text marshalers use their own
// text; booleans and numbers use strconv formatting. Types, nil and values
// without a textual form are rejected with ErrInvalidKey.
func KeyOf(k any) (string, error) {
	switch key := k.(type) {
	case string:
		return key, nil
	case nil:
		return "", fmt.Errorf("%w: nil", ErrInvalidKey)
	case reflect.Type:
		return "", fmt.Errorf("%w: %v cannot be a type", ErrInvalidKey, key)
	case fmt.Stringer:
		return key.String(), nil
	case error:
		return key.Error(), nil
	case encoding.TextMarshaler:
		text, err := key.MarshalText()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidKey, err)
		}
		return string(text), nil
	}

	rv := reflect.ValueOf(k)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 32), nil
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64), nil
	default:
		return "", fmt.Errorf("%w: %T has no string form", ErrInvalidKey, k)
	}
}

// sortedKeys returns keys in RFC 8785 order (UTF-16 code units).
// Go's string comparison uses UTF-8 bytes, which orders some keys differently.
func sortedKeys(keys []string) []string {
	out := slices.Clone(keys)
	slices.SortFunc(out, compareKeysRFC8785)
	return out
}

func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	n := min(len(a16), len(b16))
	for i := 0; i < n; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	}
	return 0
}
