package mux

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFilesRouter(t *testing.T) *Router {
	t.Helper()

	reg := NewRegistry()
	reg.MustRegister(newUsersType("App.Files"), newUsersType("App.Users"))

	return NewRouter(reg).DoNotAutoRoute()
}

func TestRouteTableOrder(t *testing.T) {
	t.Run("first inserted match wins", func(t *testing.T) {
		r := newFilesRouter(t)
		require.NoError(t, r.AddRoute("any", "/files/[**:path]", "App.Files", "show"))
		require.NoError(t, r.AddRoute("byid", "/files/[int:id]", "App.Users", "show"))

		var m RouteMatch
		require.True(t, r.Match("/files/5", &m))
		assert.Equal(t, "any", m.Route.Name)
		assert.Equal(t, Params{"path": int64(5)}, m.Params)
	})

	t.Run("reversed insertion order", func(t *testing.T) {
		r := newFilesRouter(t)
		require.NoError(t, r.AddRoute("byid", "/files/[int:id]", "App.Users", "show"))
		require.NoError(t, r.AddRoute("any", "/files/[**:path]", "App.Files", "show"))

		var m RouteMatch
		require.True(t, r.Match("/files/5", &m))
		assert.Equal(t, "byid", m.Route.Name)

		require.True(t, r.Match("/files/a/b", &m))
		assert.Equal(t, "any", m.Route.Name)
	})

	t.Run("re-adding a name replaces in place", func(t *testing.T) {
		r := newFilesRouter(t)
		require.NoError(t, r.AddRoute("first", "/a", "App.Files", "list"))
		require.NoError(t, r.AddRoute("second", "/b", "App.Files", "list"))
		require.NoError(t, r.AddRoute("first", "/c", "App.Users", "list"))

		routes := r.Routes()
		require.Len(t, routes, 2)
		assert.Equal(t, "first", routes[0].Name)
		assert.Equal(t, "/c", routes[0].Pattern)
		assert.Equal(t, "App.Users", routes[0].Endpoint)
		assert.Equal(t, "second", routes[1].Name)

		var m RouteMatch
		assert.False(t, r.Match("/a", &m))
		assert.True(t, r.Match("/c", &m))
	})

	t.Run("no match", func(t *testing.T) {
		r := newFilesRouter(t)
		require.NoError(t, r.AddRoute("byid", "/files/[int:id]", "App.Users", "show"))

		var m RouteMatch
		assert.False(t, r.Match("/files/abc", &m))
		assert.Nil(t, m.Route)
	})
}

func TestAddRoute(t *testing.T) {
	t.Run("empty method selects default action", func(t *testing.T) {
		r := newFilesRouter(t)
		require.NoError(t, r.AddRoute("home", "/", "App.Users", ""))
		assert.Equal(t, DefaultAction, r.Get("home").Method)
	})

	t.Run("unknown match type fails at registration", func(t *testing.T) {
		r := newFilesRouter(t)
		err := r.AddRoute("bad", "/x/[zzz:id]", "App.Users", "show")
		assert.ErrorIs(t, err, ErrUnknownMatchType)
		assert.Nil(t, r.Get("bad"))
	})

	t.Run("unknown endpoint", func(t *testing.T) {
		r := newFilesRouter(t)
		err := r.AddRoute("bad", "/x", "App.Missing", "show")
		assert.ErrorIs(t, err, ErrUnknownEndpoint)
	})

	t.Run("unknown action", func(t *testing.T) {
		r := newFilesRouter(t)
		err := r.AddRoute("bad", "/x", "App.Users", "destroy")
		assert.ErrorIs(t, err, ErrNoAction)
	})

	t.Run("compiled pattern is exposed", func(t *testing.T) {
		r := newFilesRouter(t)
		require.NoError(t, r.AddRoute("user", "/users/[int:id]", "App.Users", "show"))
		assert.Equal(t, []string{"id"}, r.Get("user").Compiled().Names())
	})
}

func TestRouteMatchCoercesParams(t *testing.T) {
	p, err := CompilePattern("/flags/[bln:on]/[flt:ratio]/[:name]")
	require.NoError(t, err)

	route := &Route{Name: "flags", compiled: p}
	params, ok := route.Match("/flags/off/1.5/null")
	require.True(t, ok)
	assert.Equal(t, Params{"on": false, "ratio": 1.5, "name": nil}, params)
}
