package mux

import (
	"strconv"
	"strings"

	"github.com/grafana/regexp"
)

var (
	boolWord     = regexp.MustCompile(`(?i)^(true|false|on|off)$`)
	floatLiteral = regexp.MustCompile(`^[-+]?(?:[0-9]+\.[0-9]*|\.[0-9]+|[0-9]+(?:\.[0-9]*)?[eE][-+]?[0-9]+|\.[0-9]+[eE][-+]?[0-9]+)$`)
	intLiteral   = regexp.MustCompile(`^[-+]?[0-9]+$`)
)

// Coerce converts a raw request value into its most specific scalar type.
//
// Checks run in a fixed order and the first one that applies wins:
// non-string values are returned unchanged; true/false/on/off (any case)
// become bool; decimal literals with a fraction or exponent become
// float64; digit runs become int64 (float64 when they overflow); the null
// representation ("" or "null" in any case) becomes nil; anything else is
// returned as the original string.
func Coerce(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}

	if boolWord.MatchString(s) {
		lower := strings.ToLower(s)
		return lower == "true" || lower == "on"
	}

	if floatLiteral.MatchString(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	if intLiteral.MatchString(s) {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	if isNull(s) {
		return nil
	}

	return s
}

// CoerceAll coerces every value of raw, preserving order.
func CoerceAll(raw []string) []any {
	out := make([]any, len(raw))
	for i, s := range raw {
		out[i] = Coerce(s)
	}
	return out
}

func isNull(s string) bool {
	return s == "" || strings.EqualFold(s, "null")
}
