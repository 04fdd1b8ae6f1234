package rundesc

import (
	"math"

	"github.com/labkit-io/rundesc/pkg/errors"
)

// Mapping is the plain key-value representation of a run description.
// Values are restricted to primitive types: strings, ints, nested Mappings,
// []any and nil. Text codecs hand decoded data to the library in this shape
// and receive it back in this shape.
type Mapping = map[string]any

// Keys shared by every document version.
const (
	versionKey   = "version"
	interdepsKey = "interdependencies"
)

// MappingVersion extracts the integer version tag from a mapping.
// Decoded text yields different numeric types depending on the codec
// (float64 from JSON, int from YAML), so any integral numeric form is
// accepted.
func MappingVersion(m Mapping) (int, error) {
	raw, ok := m[versionKey]
	if !ok {
		return 0, errors.New(errors.ErrCodeInvalidMapping, "mapping has no %q field", versionKey)
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, errors.New(errors.ErrCodeInvalidMapping, "version %v is not an integer", v)
		}
		return int(v), nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidMapping, "version field has unsupported type %T", raw)
	}
}

// checkVersion verifies a mapping carries the version tag of the variant
// being constructed from it.
func checkVersion(m Mapping, want int) error {
	got, err := MappingVersion(m)
	if err != nil {
		return err
	}
	if got != want {
		return errors.New(errors.ErrCodeInvalidMapping, "mapping has version %d, want %d", got, want)
	}
	return nil
}

func asMapping(v any) (Mapping, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// stringsToAny converts a string slice to the []any form used in mappings.
// nil becomes an empty list so the wire shape never contains null lists.
func stringsToAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// stringsFromAny accepts the decoded forms a string list can take: nil,
// []string, or []any holding strings. Empty lists normalize to nil.
func stringsFromAny(v any) ([]string, bool) {
	switch s := v.(type) {
	case nil:
		return nil, true
	case []string:
		if len(s) == 0 {
			return nil, true
		}
		out := make([]string, len(s))
		copy(out, s)
		return out, true
	case []any:
		if len(s) == 0 {
			return nil, true
		}
		out := make([]string, len(s))
		for i, e := range s {
			str, ok := e.(string)
			if !ok {
				return nil, false
			}
			out[i] = str
		}
		return out, true
	default:
		return nil, false
	}
}

func intsToAny(ns []int) []any {
	out := make([]any, len(ns))
	for i, n := range ns {
		out[i] = n
	}
	return out
}

// intsFromAny accepts the decoded forms an integer list can take.
func intsFromAny(v any) ([]int, bool) {
	switch s := v.(type) {
	case nil:
		return nil, true
	case []int:
		if len(s) == 0 {
			return nil, true
		}
		out := make([]int, len(s))
		copy(out, s)
		return out, true
	case []any:
		if len(s) == 0 {
			return nil, true
		}
		out := make([]int, len(s))
		for i, e := range s {
			n, ok := anyToInt(e)
			if !ok {
				return nil, false
			}
			out[i] = n
		}
		return out, true
	default:
		return nil, false
	}
}

func anyToInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
