package muxhandlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vitalvas/kroute/mux"
)

// newTestRouter returns a router serving App.Items with a "list" action
// that succeeds and a "fail" action that returns an error.
func newTestRouter(t *testing.T, hooks ...mux.Hook) *mux.Router {
	t.Helper()

	reg := mux.NewRegistry()
	reg.MustRegister(
		mux.NewEndpointType("App.Items", func() mux.Endpoint { return &mux.BaseEndpoint{} }).
			Action("list", func(ep mux.Endpoint, _ *mux.Args) error {
				ep.(*mux.BaseEndpoint).Response.Set([]string{"a", "b"})
				return nil
			}).
			Action("fail", func(mux.Endpoint, *mux.Args) error {
				return errors.New("failed")
			}),
	)

	return mux.NewRouter(reg).NameSpace("App").Use(hooks...)
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
