package muxhandlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerHook(t *testing.T) {
	t.Run("default os hostname", func(t *testing.T) {
		expected, err := os.Hostname()
		require.NoError(t, err)

		hook, err := ServerHook(ServerConfig{})
		require.NoError(t, err)

		w := serve(newTestRouter(t, hook), httptest.NewRequest(http.MethodGet, "/items/list", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, expected, w.Header().Get("X-Server-Hostname"))
	})

	t.Run("custom hostname", func(t *testing.T) {
		hook, err := ServerHook(ServerConfig{Hostname: "web-01"})
		require.NoError(t, err)

		w := serve(newTestRouter(t, hook), httptest.NewRequest(http.MethodGet, "/items/list", nil))

		assert.Equal(t, "web-01", w.Header().Get("X-Server-Hostname"))
	})

	t.Run("hostname from environment variable", func(t *testing.T) {
		t.Setenv("TEST_POD_NAME", "pod-abc-123")

		hook, err := ServerHook(ServerConfig{HostnameEnv: []string{"TEST_UNSET_VAR", "TEST_POD_NAME"}})
		require.NoError(t, err)

		w := serve(newTestRouter(t, hook), httptest.NewRequest(http.MethodGet, "/items/list", nil))

		assert.Equal(t, "pod-abc-123", w.Header().Get("X-Server-Hostname"))
	})

	t.Run("hostname field wins over environment", func(t *testing.T) {
		t.Setenv("TEST_POD_NAME", "pod-abc-123")

		got, err := resolveHostname(ServerConfig{Hostname: "web-02", HostnameEnv: []string{"TEST_POD_NAME"}})
		require.NoError(t, err)
		assert.Equal(t, "web-02", got)
	})

	t.Run("empty environment value falls through", func(t *testing.T) {
		t.Setenv("TEST_EMPTY_VAR", "")
		expected, err := os.Hostname()
		require.NoError(t, err)

		got, err := resolveHostname(ServerConfig{HostnameEnv: []string{"TEST_EMPTY_VAR"}})
		require.NoError(t, err)
		assert.Equal(t, expected, got)
	})
}
