package mux

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/grafana/regexp"
)

// WildcardPattern matches every request path.
const WildcardPattern = "*"

// RawPatternPrefix marks a pattern as a ready-made regular expression.
const RawPatternPrefix = "@"

// placeholder finds [type], [type:name] and [type:name]? occurrences. The
// optional "/" or "." separator is written either in front of the bracket
// or as its first character, as in /report[.fmt:format]?.
var placeholder = regexp.MustCompile(`(/|\.|)\[(/|\.)?([^:\]]*)(?::([^:\]]*))?\](\?|)`)

// regexpMeta lists the characters that end the literal prefix of a
// pattern. Text outside placeholders is regular expression source.
const regexpMeta = `[](){}.?+*\^$|`

// CompiledPattern is the anchored regular expression derived from a route
// pattern, plus the literal prefix used to reject paths cheaply.
type CompiledPattern struct {
	source  string
	regexp  *regexp.Regexp
	names   []string
	prefix  string
	literal bool
	any     bool
}

// CompilePattern compiles a route pattern. Placeholders are replaced by
// their match type fragments; everything else is kept as regular
// expression source and the result is anchored at both ends.
//
// Compilation is a pure function of the pattern string and its result is
// memoized. Unknown match types, duplicate parameter names and unbalanced
// brackets are reported as *CompileError.
func CompilePattern(pattern string) (*CompiledPattern, error) {
	if strings.HasPrefix(pattern, RawPatternPrefix) {
		return CompileRawPattern(strings.TrimPrefix(pattern, RawPatternPrefix))
	}

	return cachedPattern(pattern, func() (*CompiledPattern, error) {
		return compilePattern(pattern)
	})
}

// CompileRawPattern compiles expr as written. Raw patterns are not
// anchored and have no literal prefix.
func CompileRawPattern(expr string) (*CompiledPattern, error) {
	return cachedPattern(RawPatternPrefix+expr, func() (*CompiledPattern, error) {
		re, err := compileRegexp(expr)
		if err != nil {
			return nil, &CompileError{Pattern: RawPatternPrefix + expr, Err: err}
		}

		return &CompiledPattern{
			source: RawPatternPrefix + expr,
			regexp: re,
			names:  subexpNames(re),
		}, nil
	})
}

func compilePattern(pattern string) (*CompiledPattern, error) {
	if pattern == WildcardPattern {
		return &CompiledPattern{source: pattern, any: true}, nil
	}

	prefix, literal := literalPrefix(pattern)
	if literal {
		return &CompiledPattern{source: pattern, prefix: prefix, literal: true}, nil
	}

	var (
		expr  bytes.Buffer
		names []string
		end   int
	)

	expr.WriteByte('^')

	for _, loc := range placeholder.FindAllStringSubmatchIndex(pattern, -1) {
		raw := pattern[end:loc[0]]
		if hasBareBracket(raw) {
			return nil, &CompileError{Pattern: pattern, Err: ErrMalformedPlaceholder}
		}
		expr.WriteString(raw)
		end = loc[1]

		sep := pattern[loc[2]:loc[3]]
		token := pattern[loc[6]:loc[7]]
		name := ""
		if loc[8] >= 0 {
			name = pattern[loc[8]:loc[9]]
		}
		optional := loc[11] > loc[10]

		if loc[4] >= 0 {
			inner := pattern[loc[4]:loc[5]]
			switch {
			case token == "":
				// [.] and [.:name] are the single-segment match type.
				token = inner
			case sep != "":
				expr.WriteString(regexp.QuoteMeta(sep))
				sep = inner
			default:
				sep = inner
			}
		}

		fragment, ok := ResolveMatchType(token)
		if !ok {
			return nil, &CompileError{Pattern: pattern, Token: token, Err: ErrUnknownMatchType}
		}

		if sep == "." {
			sep = `\.`
		}

		expr.WriteString("(?:")
		expr.WriteString(sep)
		expr.WriteByte('(')
		if name != "" {
			fmt.Fprintf(&expr, "?P<%s>", name)
			names = append(names, name)
		}
		expr.WriteString(fragment)
		expr.WriteString("))")
		if optional {
			expr.WriteByte('?')
		}
	}

	rest := pattern[end:]
	if hasBareBracket(rest) {
		return nil, &CompileError{Pattern: pattern, Err: ErrMalformedPlaceholder}
	}
	expr.WriteString(rest)
	expr.WriteByte('$')

	if err := checkDuplicateVars(names); err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	re, err := compileRegexp(expr.String())
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	return &CompiledPattern{
		source: pattern,
		regexp: re,
		names:  names,
		prefix: prefix,
	}, nil
}

// Match tests path against the pattern and returns the named captures
// that took part in the match. Optional placeholders that did not match
// are absent from the result.
func (p *CompiledPattern) Match(path string) (map[string]string, bool) {
	switch {
	case p.any:
		return nil, true
	case p.literal:
		return nil, path == p.prefix
	}

	if !strings.HasPrefix(path, p.prefix) {
		return nil, false
	}

	loc := p.regexp.FindStringSubmatchIndex(path)
	if loc == nil {
		return nil, false
	}

	keys := p.regexp.SubexpNames()

	var vars map[string]string
	for i := 1; i < len(keys); i++ {
		if keys[i] == "" || loc[i*2] < 0 {
			continue
		}
		if vars == nil {
			vars = make(map[string]string, len(p.names))
		}
		vars[keys[i]] = path[loc[i*2]:loc[i*2+1]]
	}

	return vars, true
}

// String returns the source pattern.
func (p *CompiledPattern) String() string {
	return p.source
}

// Expr returns the compiled regular expression source, or an empty string
// for wildcard and literal patterns.
func (p *CompiledPattern) Expr() string {
	if p.regexp == nil {
		return ""
	}
	return p.regexp.String()
}

// Names returns the parameter names declared by the pattern.
func (p *CompiledPattern) Names() []string {
	return p.names
}

// literalPrefix returns the leading part of pattern that contains no
// regular expression or placeholder syntax. complete is true when the
// whole pattern is literal.
func literalPrefix(pattern string) (prefix string, complete bool) {
	i := strings.IndexAny(pattern, regexpMeta)
	if i < 0 {
		return pattern, true
	}

	// Alternation can make any earlier text optional.
	if strings.Contains(pattern, "|") {
		return "", false
	}

	switch pattern[i] {
	case '[':
		// A "/" right before a placeholder belongs to the placeholder group.
		if i > 0 && pattern[i-1] == '/' {
			i--
		}
	case '?', '*', '{':
		// Quantifiers apply to the preceding character.
		if i > 0 {
			i--
		}
	}

	return pattern[:i], false
}

// hasBareBracket reports whether s contains an unescaped square bracket,
// which outside a placeholder means the bracket syntax is malformed.
func hasBareBracket(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '[', ']':
			return true
		}
	}
	return false
}

// checkDuplicateVars returns an error if any variable name is repeated.
func checkDuplicateVars(vars []string) error {
	seen := make(map[string]bool, len(vars))
	for _, v := range vars {
		if seen[v] {
			return fmt.Errorf("mux: duplicated route variable %q", v)
		}
		seen[v] = true
	}
	return nil
}

func subexpNames(re *regexp.Regexp) []string {
	var names []string
	for _, n := range re.SubexpNames() {
		if n != "" {
			names = append(names, n)
		}
	}
	return names
}
