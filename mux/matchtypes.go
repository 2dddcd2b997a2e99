package mux

import (
	"fmt"
	"sort"
	"strings"

	"github.com/grafana/regexp"
)

// MatchType is a named regular expression fragment usable inside the
// bracket placeholders of a route pattern: [token:name].
type MatchType struct {
	Token    string
	Fragment string
}

// matchType holds a fragment and its pre-compiled anchored validator.
type matchType struct {
	fragment  string
	validator *regexp.Regexp
}

// matchTypes maps placeholder tokens to their compiled fragments.
// Read-only after package initialization.
var matchTypes = func() map[string]matchType {
	raw := map[string]string{
		"":    `[^/]+`,
		"aln": `[0-9A-Za-z]+`,
		"bln": `(?i:true|false|on|off|yes|no)`,
		"flt": `[-+]?[0-9]*\.?[0-9]+(?:[eE][-+]?[0-9]+)?`,
		"fmt": formatAlternation(),
		"int": `[0-9]+`,
		"h":   `[0-9A-Fa-f]+`,
		"*":   `.+?`,
		"**":  `.+`,
		".":   `[^/.]+`,

		// Fixed-shape identifiers.
		"lid":  `[A-Za-z][0-9]+`,
		"lref": `[A-Za-z][0-9]+-[A-Za-z][0-9]+`,
		"tel":  `\+?[0-9]{1,3}(?:[-.]?[0-9]{2,4}){2,4}`,
		"utc":  `[-+](?:0[0-9]|1[0-4]):?[0-5][0-9]`,

		"uuid":  `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`,
		"slug":  `[a-zA-Z0-9]+(?:-[a-zA-Z0-9]+)*`,
		"alpha": `[a-zA-Z]+`,
		"date":  `[0-9]{4}-[0-9]{2}-[0-9]{2}`,
	}

	m := make(map[string]matchType, len(raw))
	for token, fragment := range raw {
		m[token] = matchType{
			fragment:  fragment,
			validator: regexp.MustCompile(fmt.Sprintf("^(?:%s)$", fragment)),
		}
	}

	return m
}()

// ResolveMatchType returns the regular expression fragment registered for
// token. The second result is false for unknown tokens.
func ResolveMatchType(token string) (string, bool) {
	if mt, ok := matchTypes[token]; ok {
		return mt.fragment, true
	}

	return "", false
}

// MatchTypeValidator returns an anchored regexp that accepts exactly the
// values a placeholder of the given token would capture.
func MatchTypeValidator(token string) (*regexp.Regexp, bool) {
	if mt, ok := matchTypes[token]; ok {
		return mt.validator, true
	}

	return nil, false
}

// MatchTypes returns the registered match types sorted by token.
func MatchTypes() []MatchType {
	out := make([]MatchType, 0, len(matchTypes))
	for token, mt := range matchTypes {
		out = append(out, MatchType{Token: token, Fragment: mt.fragment})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Token < out[j].Token })

	return out
}

// formatAlternation builds the "fmt" fragment from the extension table so
// the placeholder and the format resolver never disagree. Longer
// extensions come first so that "jsonp" wins over "json".
func formatAlternation() string {
	exts := make([]string, 0, len(extensionFormats))
	for ext := range extensionFormats {
		exts = append(exts, regexp.QuoteMeta(ext))
	}

	sort.Slice(exts, func(i, j int) bool {
		if len(exts[i]) != len(exts[j]) {
			return len(exts[i]) > len(exts[j])
		}
		return exts[i] < exts[j]
	})

	return "(?:" + strings.Join(exts, "|") + ")"
}
