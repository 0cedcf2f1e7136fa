package cdf

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Property bags decode into map[string]any, so numbers arrive as float64 and
// RAW columns may hold numbers as strings. These helpers coerce leniently.

func str(props map[string]any, key, fallback string) string {
	switch v := props[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	}
	return fallback
}

func num(props map[string]any, key string) float64 {
	f, _ := toFloat(props[key])
	return f
}

func integer(props map[string]any, key string) int {
	f, _ := toFloat(props[key])
	return int(math.Round(f))
}

func boolean(props map[string]any, key string) bool {
	switch v := props[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	case float64:
		return v != 0
	}
	return false
}

// relation returns the externalId of a direct relation property.
func relation(props map[string]any, key string) string {
	ref, ok := props[key].(map[string]any)
	if !ok {
		return ""
	}
	id, _ := ref["externalId"].(string)
	return id
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// trailingNumber parses the digits after the last occurrence of sep; anything
// non-numeric yields 0.
func trailingNumber(s, sep string) int {
	idx := strings.LastIndex(s, sep)
	if idx < 0 {
		return 0
	}
	tail := s[idx+len(sep):]
	if tail == "" {
		return 0
	}
	for _, r := range tail {
		if r < '0' || r > '9' {
			return 0
		}
	}
	n, err := strconv.Atoi(tail)
	if err != nil {
		return 0
	}
	return n
}
