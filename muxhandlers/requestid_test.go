package muxhandlers

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalvas/kroute/mux"
)

var (
	uuidV4Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	uuidV7Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
)

func TestRequestIDHook(t *testing.T) {
	tests := []struct {
		name           string
		config         RequestIDConfig
		incomingHeader string
		wantHeader     string
		wantGenerated  bool
	}{
		{
			name:          "generates UUID v4 by default",
			config:        RequestIDConfig{},
			wantGenerated: true,
		},
		{
			name:           "does not trust incoming by default",
			config:         RequestIDConfig{},
			incomingHeader: "existing-id",
			wantGenerated:  true,
		},
		{
			name:           "trusts incoming when configured",
			config:         RequestIDConfig{TrustIncoming: true},
			incomingHeader: "existing-id",
			wantHeader:     "existing-id",
		},
		{
			name:          "generates when trust incoming but no header",
			config:        RequestIDConfig{TrustIncoming: true},
			wantGenerated: true,
		},
		{
			name:       "custom generate func",
			config:     RequestIDConfig{GenerateFunc: func(_ *mux.Request) string { return "custom-id" }},
			wantHeader: "custom-id",
		},
		{
			name:       "custom header name",
			config:     RequestIDConfig{HeaderName: "X-Trace-ID", GenerateFunc: func(_ *mux.Request) string { return "trace-123" }},
			wantHeader: "trace-123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headerName := tt.config.HeaderName
			if headerName == "" {
				headerName = "X-Request-ID"
			}

			var fromRequest, fromContext string
			r := newTestRouter(t,
				RequestIDHook(tt.config),
				mux.HookBefore(func(req *mux.Request, _ *mux.Response, _, _ string, _ int) error {
					fromRequest = RequestIDFromRequest(req)
					fromContext = RequestIDFromContext(req.Context())
					return nil
				}),
			)

			req := httptest.NewRequest(http.MethodGet, "/items/list", nil)
			if tt.incomingHeader != "" {
				req.Header.Set(headerName, tt.incomingHeader)
			}
			w := serve(r, req)

			require.Equal(t, http.StatusOK, w.Code)
			got := w.Header().Get(headerName)

			if tt.wantGenerated {
				assert.Regexp(t, uuidV4Regex, got)
				assert.NotEqual(t, tt.incomingHeader, got)
			} else {
				assert.Equal(t, tt.wantHeader, got)
			}

			assert.Equal(t, got, fromRequest)
			assert.Equal(t, got, fromContext)
		})
	}

	t.Run("empty generated id is not set", func(t *testing.T) {
		r := newTestRouter(t, RequestIDHook(RequestIDConfig{
			GenerateFunc: func(_ *mux.Request) string { return "" },
		}))

		w := serve(r, httptest.NewRequest(http.MethodGet, "/items/list", nil))
		assert.Empty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("no id when not found", func(t *testing.T) {
		r := newTestRouter(t, RequestIDHook(RequestIDConfig{})).DoNotAutoRoute()

		w := serve(r, httptest.NewRequest(http.MethodGet, "/items/list", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, w.Header().Get("X-Request-ID"))
	})
}

func TestRequestIDFromEmpty(t *testing.T) {
	req := mux.NewRequest(http.MethodGet, "/")
	assert.Empty(t, RequestIDFromRequest(req))
	assert.Empty(t, RequestIDFromContext(req.Context()))
}

func TestGenerateUUID(t *testing.T) {
	t.Run("v4", func(t *testing.T) {
		assert.Regexp(t, uuidV4Regex, GenerateUUIDv4(nil))
	})

	t.Run("v7 is time ordered", func(t *testing.T) {
		a := GenerateUUIDv7(nil)
		b := GenerateUUIDv7(nil)
		assert.Regexp(t, uuidV7Regex, a)
		assert.Less(t, a, b)
	})
}
