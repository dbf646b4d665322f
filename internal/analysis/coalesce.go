package analysis

import (
	"math"
	"strconv"
	"strings"
)

// The helpers below are the only code that reads the untyped generative
// document. Each returns a zero value for anything of the wrong shape.

func str(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func object(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// objects returns the object elements of a JSON array, skipping anything else
func objects(v any) []map[string]any {
	items, _ := v.([]any)
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m := object(item); m != nil {
			out = append(out, m)
		}
	}
	return out
}

// number reads a finite JSON number, also accepting numeric strings
func number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// stringList returns up to limit non-blank string elements of a JSON array
func stringList(v any, limit int) []string {
	items, _ := v.([]any)
	var out []string
	for _, item := range items {
		if s := str(item); s != "" {
			out = append(out, s)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// orStrings returns generative unless it is empty
func orStrings(generative, fallback []string) []string {
	if len(generative) > 0 {
		return generative
	}
	return append([]string(nil), fallback...)
}

// enum returns v as T when valid reports it known, otherwise def
func enum[T ~string](v any, valid func(T) bool, def T) T {
	t := T(strings.ToLower(str(v)))
	if valid(t) {
		return t
	}
	return def
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func truncate[T any](items []T, limit int) []T {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
