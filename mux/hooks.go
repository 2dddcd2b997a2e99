package mux

// Hook is implemented by HookBefore and HookAfter so both kinds can be
// passed to Router.Use.
type Hook interface {
	register(p *hookPipeline)
}

// HookBefore runs after an endpoint has been resolved and bootstrapped and
// before its Init and action are invoked. index is the position of the
// hook in registration order. A non-nil error aborts the dispatch.
type HookBefore func(req *Request, res *Response, endpoint, method string, index int) error

// HookAfter runs once per dispatch, after the outcome is known and the
// response has been serialized, immediately before it is emitted.
type HookAfter func(req *Request, res *Response, success bool, body string, index int)

func (h HookBefore) register(p *hookPipeline) {
	p.before = append(p.before, h)
}

func (h HookAfter) register(p *hookPipeline) {
	p.after = append(p.after, h)
}

// hookPipeline holds the ordered before and after hooks. Hooks are only
// ever appended.
type hookPipeline struct {
	before []HookBefore
	after  []HookAfter
}

// runBefore invokes every before hook in order. The first error stops the
// remaining hooks and is returned.
func (p *hookPipeline) runBefore(req *Request, res *Response, endpoint, method string) error {
	for i, h := range p.before {
		if err := h(req, res, endpoint, method, i); err != nil {
			return err
		}
	}
	return nil
}

// runAfter invokes every after hook in order. A panicking after hook is
// recovered so the remaining hooks still run; the first recovered value
// is returned as a *PanicError.
func (p *hookPipeline) runAfter(req *Request, res *Response, success bool, body string) error {
	var firstErr error
	for i, h := range p.after {
		if err := safeAfter(h, req, res, success, body, i); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func safeAfter(h HookAfter, req *Request, res *Response, success bool, body string, index int) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &PanicError{Value: v}
		}
	}()

	h(req, res, success, body, index)
	return nil
}
