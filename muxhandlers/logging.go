package muxhandlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vitalvas/kroute/mux"
)

type loggingKey struct{}

// dispatchInfo is what a before hook records for its after hook.
type dispatchInfo struct {
	start    time.Time
	endpoint string
	method   string
}

// LoggingConfig configures the access logging hooks.
type LoggingConfig struct {
	// Logger receives one record per dispatch. Defaults to slog.Default().
	Logger *slog.Logger

	// Level is used for successful dispatches. Failed dispatches are
	// logged at Warn for 4xx statuses and at Error otherwise.
	Level slog.Level

	// SkipEndpoints lists endpoint names that are not logged.
	SkipEndpoints []string
}

// LoggingHooks returns a before hook that records the dispatch start and an
// after hook that writes one structured log record per dispatch, with the
// endpoint, action, status, duration and response size.
//
// Register both hooks; the after hook logs without timing information when
// the before hook did not run.
func LoggingHooks(cfg LoggingConfig) (mux.HookBefore, mux.HookAfter) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	skip := make(map[string]struct{}, len(cfg.SkipEndpoints))
	for _, name := range cfg.SkipEndpoints {
		skip[name] = struct{}{}
	}

	level := cfg.Level

	before := func(req *mux.Request, _ *mux.Response, endpoint, method string, _ int) error {
		req.SetValue(loggingKey{}, dispatchInfo{start: time.Now(), endpoint: endpoint, method: method})
		return nil
	}

	after := func(req *mux.Request, res *mux.Response, success bool, body string, _ int) {
		info, _ := req.Value(loggingKey{}).(dispatchInfo)
		if _, ok := skip[info.endpoint]; ok && info.endpoint != "" {
			return
		}

		attrs := []slog.Attr{
			slog.String("http_method", req.Method),
			slog.String("path", req.Path),
			slog.String("endpoint", info.endpoint),
			slog.String("action", info.method),
			slog.Int("status", res.Status),
			slog.String("format", res.Format.String()),
			slog.Bool("success", success),
			slog.Int("bytes", len(body)),
		}
		if !info.start.IsZero() {
			attrs = append(attrs, slog.Duration("duration", time.Since(info.start)))
		}
		if id := RequestIDFromRequest(req); id != "" {
			attrs = append(attrs, slog.String("request_id", id))
		}

		lvl := level
		switch {
		case success:
		case res.Status >= http.StatusBadRequest && res.Status < http.StatusInternalServerError:
			lvl = slog.LevelWarn
		default:
			lvl = slog.LevelError
		}

		logger.LogAttrs(req.Context(), lvl, "request dispatched", attrs...)
	}

	return before, after
}
