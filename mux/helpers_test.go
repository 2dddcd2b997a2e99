package mux

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "", expected: "/"},
		{input: "/", expected: "/"},
		{input: "/users", expected: "/users"},
		{input: "/users/", expected: "/users/"},
		{input: "/users//list", expected: "/users/list"},
		{input: "/users/./list", expected: "/users/list"},
		{input: "/admin/../users/list.xml", expected: "/users/list.xml"},
		{input: "/../../etc", expected: "/etc"},
		{input: "users", expected: "/users"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanPath(tt.input))
		})
	}
}

func TestSplitSegments(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{input: "", expected: []string{}},
		{input: "/", expected: []string{}},
		{input: "/admin/users/list", expected: []string{"admin", "users", "list"}},
		{input: "//admin///users/", expected: []string{"admin", "users"}},
		{input: "admin", expected: []string{"admin"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitSegments(tt.input))
		})
	}
}

func TestCamelSegment(t *testing.T) {
	tests := map[string]string{
		"users":       "Users",
		"user_groups": "UserGroups",
		"user-groups": "UserGroups",
		"__x__":       "X",
		"élan":        "Élan",
		"":            "",
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, camelSegment(in))
		})
	}
}
