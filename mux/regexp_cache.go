package mux

import (
	"sync"

	"github.com/grafana/regexp"
	"golang.org/x/sync/singleflight"
)

// regexpCache caches compiled regular expressions by expression string,
// and patternCache caches compiled route patterns by pattern string. Both
// are bounded by the number of registered routes, so they grow to a fixed
// size and stay there.
var (
	regexpCache  sync.Map // map[string]*regexp.Regexp
	patternCache sync.Map // map[string]*CompiledPattern

	compileGroup singleflight.Group
)

// compileRegexp returns a cached *regexp.Regexp for the given expression,
// compiling and caching it on first use. Concurrent first uses of the same
// expression share a single compilation.
func compileRegexp(expr string) (*regexp.Regexp, error) {
	if v, ok := regexpCache.Load(expr); ok {
		return v.(*regexp.Regexp), nil
	}

	v, err, _ := compileGroup.Do(expr, func() (any, error) {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, err
		}

		actual, _ := regexpCache.LoadOrStore(expr, re)

		return actual, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*regexp.Regexp), nil
}

// cachedPattern returns the memoized compiled form of key, building it
// with build on first use. Failed compilations are not cached.
func cachedPattern(key string, build func() (*CompiledPattern, error)) (*CompiledPattern, error) {
	if v, ok := patternCache.Load(key); ok {
		return v.(*CompiledPattern), nil
	}

	p, err := build()
	if err != nil {
		return nil, err
	}

	actual, _ := patternCache.LoadOrStore(key, p)

	return actual.(*CompiledPattern), nil
}
