// Package tax implements the derivation pipeline that turns a user's
// document collection into a tax summary, consistency report, gap
// analysis, insights feed, health score and ITR draft. Every component
// is a pure function over its inputs; the package performs no I/O and
// is safe to call concurrently across users.
package tax

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ToNumber coerces an arbitrary metadata value to a float64. Missing,
// null and non-numeric values become 0. The extraction pipeline is an
// untrusted producer, so every numeric read must go through here.
func ToNumber(value interface{}) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// ToText coerces an arbitrary metadata value to a string. Missing and
// non-string values become "".
func ToText(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}
