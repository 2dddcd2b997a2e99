package muxhandlers

// endpointFilter limits a hook to a set of endpoint names. A nil filter
// applies to every endpoint.
type endpointFilter map[string]struct{}

func newEndpointFilter(names []string) endpointFilter {
	if len(names) == 0 {
		return nil
	}

	f := make(endpointFilter, len(names))
	for _, name := range names {
		f[name] = struct{}{}
	}
	return f
}

func (f endpointFilter) applies(endpoint string) bool {
	if f == nil {
		return true
	}
	_, ok := f[endpoint]
	return ok
}
