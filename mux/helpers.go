package mux

import (
	"path"
	"strings"
	"unicode"
	"unicode/utf8"
)

// cleanPath returns the canonical form of a request path before dispatch:
// a leading "/" is ensured and "." and ".." elements are removed per
// RFC 3986 Section 5.2.4. A trailing slash survives, so "/users/" still
// ends in an empty segment for declared routes.
func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if p[0] != '/' {
		p = "/" + p
	}

	np := path.Clean(p)
	if p[len(p)-1] == '/' && np != "/" {
		np += "/"
	}
	return np
}

// splitSegments splits path on "/" and drops empty segments.
func splitSegments(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
}

// camelSegment converts a path segment such as "user_groups" or
// "user-groups" into "UserGroups".
func camelSegment(seg string) string {
	var b strings.Builder
	b.Grow(len(seg))

	for _, tok := range strings.FieldsFunc(seg, func(r rune) bool { return r == '_' || r == '-' }) {
		r, size := utf8.DecodeRuneInString(tok)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(tok[size:])
	}

	return b.String()
}
