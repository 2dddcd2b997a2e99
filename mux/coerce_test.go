package mux

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected any
	}{
		{name: "integer", input: "42", expected: int64(42)},
		{name: "negative integer", input: "-7", expected: int64(-7)},
		{name: "one is integer", input: "1", expected: int64(1)},
		{name: "zero is integer", input: "0", expected: int64(0)},
		{name: "float", input: "3.14", expected: 3.14},
		{name: "float with zero fraction", input: "1.0", expected: 1.0},
		{name: "float with exponent", input: "1e3", expected: 1000.0},
		{name: "float leading dot", input: ".5", expected: 0.5},
		{name: "integer overflow becomes float", input: "99999999999999999999", expected: 1e20},
		{name: "true", input: "true", expected: true},
		{name: "false", input: "false", expected: false},
		{name: "on", input: "on", expected: true},
		{name: "off", input: "off", expected: false},
		{name: "mixed case boolean", input: "TrUe", expected: true},
		{name: "empty is null", input: "", expected: nil},
		{name: "null word", input: "null", expected: nil},
		{name: "null word upper case", input: "NULL", expected: nil},
		{name: "plain string", input: "hello", expected: "hello"},
		{name: "yes stays string", input: "yes", expected: "yes"},
		{name: "hex stays string", input: "0x1F", expected: "0x1F"},
		{name: "inf stays string", input: "inf", expected: "inf"},
		{name: "nan stays string", input: "NaN", expected: "NaN"},
		{name: "version stays string", input: "1.2.3", expected: "1.2.3"},
		{name: "non-string unchanged", input: 12, expected: 12},
		{name: "bool unchanged", input: false, expected: false},
		{name: "nil unchanged", input: nil, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Coerce(tt.input))
		})
	}
}

func TestCoerceAll(t *testing.T) {
	t.Run("preserves order", func(t *testing.T) {
		got := CoerceAll([]string{"7", "x", "off", "2.5"})
		assert.Equal(t, []any{int64(7), "x", false, 2.5}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, CoerceAll(nil))
	})
}

func BenchmarkCoerce(b *testing.B) {
	for b.Loop() {
		Coerce("12345")
	}
}
