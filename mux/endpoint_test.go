package mux

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type usersEndpoint struct {
	BaseEndpoint
	initialized bool
}

func (u *usersEndpoint) Init() error {
	u.initialized = true
	return nil
}

func (u *usersEndpoint) List(_ *Args) error {
	u.Response.Set([]string{"alice", "bob"})
	return nil
}

func (u *usersEndpoint) Show(args *Args) error {
	if !u.initialized {
		return errors.New("not initialized")
	}
	u.Response.Set(map[string]any{"id": args.Get("id"), "arg": args.Arg(0)})
	return nil
}

func (u *usersEndpoint) Default(_ *Args) error {
	u.Response.Set("users")
	return nil
}

func (u *usersEndpoint) Fail(_ *Args) error {
	return NewHTTPError(403, "")
}

// helper has the wrong signature and must not become an action.
func (u *usersEndpoint) Helper() string {
	return "helper"
}

func newUsersType(name string) *EndpointType {
	return MethodActions(NewEndpointType(name, func() Endpoint { return &usersEndpoint{} }))
}

func TestMethodActions(t *testing.T) {
	et := newUsersType("App.Users")

	t.Run("exported action methods", func(t *testing.T) {
		assert.ElementsMatch(t, []string{"Default", "Fail", "List", "Show"}, et.Actions())
	})

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		_, ok := et.Lookup("list")
		assert.True(t, ok)
		_, ok = et.Lookup("LIST")
		assert.True(t, ok)
		_, ok = et.Lookup("helper")
		assert.False(t, ok)
		_, ok = et.Lookup("Init")
		assert.False(t, ok)
	})

	t.Run("action calls the method on the instance", func(t *testing.T) {
		ep := et.New()
		res := NewResponse()
		ep.Bootstrap(NewRequest("GET", "/"), res)

		action, ok := et.Lookup("list")
		require.True(t, ok)
		require.NoError(t, action(ep, &Args{}))
		assert.Equal(t, []string{"alice", "bob"}, res.Data)
	})

	t.Run("action returns method error", func(t *testing.T) {
		ep := et.New()
		ep.Bootstrap(NewRequest("GET", "/"), NewResponse())

		action, _ := et.Lookup("fail")
		err := action(ep, &Args{})
		assert.Equal(t, 403, StatusCode(err))
	})
}

func TestEndpointTypeAction(t *testing.T) {
	et := NewEndpointType("App.Ping", func() Endpoint { return &BaseEndpoint{} }).
		Action("Ping", func(ep Endpoint, _ *Args) error {
			ep.(*BaseEndpoint).Response.Set("pong")
			return nil
		}).
		Action("ping", func(Endpoint, *Args) error { return nil })

	assert.Equal(t, "App.Ping", et.Name())
	assert.Equal(t, []string{"Ping"}, et.Actions())
}

func TestArgs(t *testing.T) {
	args := &Args{Positional: []any{int64(1), "x"}, Named: Params{"id": int64(5)}}

	assert.Equal(t, int64(1), args.Arg(0))
	assert.Equal(t, "x", args.Arg(1))
	assert.Nil(t, args.Arg(2))
	assert.Nil(t, args.Arg(-1))
	assert.Equal(t, int64(5), args.Get("id"))
	assert.Nil(t, args.Get("missing"))

	var nilArgs *Args
	assert.Nil(t, nilArgs.Arg(0))
	assert.Nil(t, nilArgs.Get("id"))
}

func TestRegistry(t *testing.T) {
	t.Run("register and lookup", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Register(newUsersType("App.Users"), newUsersType("App.Admin")))

		et, ok := reg.Lookup("App.Users")
		require.True(t, ok)
		assert.Equal(t, "App.Users", et.Name())

		_, ok = reg.Lookup("app.users")
		assert.False(t, ok)

		assert.Equal(t, []string{"App.Admin", "App.Users"}, reg.Names())
	})

	t.Run("duplicate name", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Register(newUsersType("App.Users")))
		err := reg.Register(newUsersType("App.Users"))
		assert.ErrorIs(t, err, ErrDuplicateEndpoint)
	})

	t.Run("nil factory", func(t *testing.T) {
		var et *EndpointType
		require.NotPanics(t, func() {
			et = MethodActions(NewEndpointType("App.Orphan", nil))
		})
		assert.Empty(t, et.Actions())

		err := NewRegistry().Register(et)
		assert.ErrorIs(t, err, ErrNoFactory)
	})

	t.Run("factory returning nil", func(t *testing.T) {
		et := MethodActions(NewEndpointType("App.Nothing", func() Endpoint { return nil }))
		assert.Empty(t, et.Actions())
	})

	t.Run("must register panics on duplicate", func(t *testing.T) {
		reg := NewRegistry()
		reg.MustRegister(newUsersType("App.Users"))
		assert.Panics(t, func() { reg.MustRegister(newUsersType("App.Users")) })
	})

	t.Run("nil registry lookup", func(t *testing.T) {
		var reg *Registry
		_, ok := reg.Lookup("App.Users")
		assert.False(t, ok)
	})
}
