// pkg/adapter/values.go
package adapter

import (
	"fmt"
	"strconv"
	"strings"
)

// Coercion helpers for loosely typed raw input. Upstream exports mix
// numbers and numeric strings for the same field, so every numeric
// read goes through these.

func toString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func toInt(v interface{}) int {
	switch val := v.(type) {
	case nil:
		return 0
	case float64:
		return int(val)
	case int:
		return val
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// toPassageNumber accepts either a plain number or the "passage_3"
// form some exports use.
func toPassageNumber(v interface{}) int {
	if s, ok := v.(string); ok {
		if idx := strings.LastIndex(s, "_"); idx >= 0 {
			s = s[idx+1:]
		}
		return toInt(s)
	}
	return toInt(v)
}

func toStringSlice(v interface{}) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := toString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return val
	case string:
		// Comma-separated fallback seen in spreadsheet exports.
		parts := strings.Split(val, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
