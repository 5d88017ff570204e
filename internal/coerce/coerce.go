// Package coerce converts loosely typed values (form fields, decoded JSON,
// LLM output) into Go primitives without failing.
package coerce

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Int returns v as an int, or def when v is missing or not numeric.
// Floats are truncated toward zero.
func Int(v any, def int) int {
	v, ok := normalize(v)
	if !ok {
		return def
	}
	if n, isNumber := v.(json.Number); isNumber {
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		f, err := n.Float64()
		if err != nil {
			return def
		}
		v = f
	}
	if f, isFloat := v.(float64); isFloat {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return def
		}
		return int(f)
	}
	var out int
	if err := mapstructure.WeakDecode(v, &out); err != nil {
		return def
	}
	return out
}

// Float returns v as a float64, or def when v is missing or not numeric.
func Float(v any, def float64) float64 {
	v, ok := normalize(v)
	if !ok {
		return def
	}
	var out float64
	if err := mapstructure.WeakDecode(v, &out); err != nil {
		return def
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return def
	}
	return out
}

// Bool returns v as a bool, or def when v is missing or unparseable.
func Bool(v any, def bool) bool {
	v, ok := normalize(v)
	if !ok {
		return def
	}
	var out bool
	if err := mapstructure.WeakDecode(v, &out); err != nil {
		return def
	}
	return out
}

// String renders v as text. nil becomes "".
func String(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	}
	var out string
	if err := mapstructure.WeakDecode(v, &out); err == nil {
		return out
	}
	return fmt.Sprint(v)
}

// Clamp bounds n to [lo, hi].
func Clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// normalize trims strings and reports whether v carries a value at all.
func normalize(v any) (any, bool) {
	switch s := v.(type) {
	case nil:
		return nil, false
	case string:
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, false
		}
		return s, true
	case []byte:
		return normalize(string(s))
	}
	return v, true
}
