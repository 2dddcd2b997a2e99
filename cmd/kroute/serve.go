package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/vitalvas/kroute/mux"
	"github.com/vitalvas/kroute/muxhandlers"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(opts *options) *cobra.Command {
	var (
		addr         string
		metricsPath  string
		serverHeader bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the configuration with placeholder endpoints",
		Long: `serve starts an HTTP server that dispatches requests through the
configured router. Every endpoint action responds with the endpoint, the
action and the arguments it resolved, in the requested format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, r, err := loadRouter(opts)
			if err != nil {
				return err
			}

			registry := prometheus.NewRegistry()
			registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			useServeHooks(r, registry)

			if serverHeader {
				hook, err := muxhandlers.ServerHook(muxhandlers.ServerConfig{})
				if err != nil {
					return err
				}
				r.Use(hook)
			}

			handler := http.NewServeMux()
			handler.Handle(metricsPath, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
			handler.Handle("/", r)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return listenAndServe(ctx, &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&metricsPath, "metrics-path", "/metrics", "path of the Prometheus endpoint")
	cmd.Flags().BoolVar(&serverHeader, "server-header", false, "send the X-Server-Hostname response header")

	return cmd
}

// useServeHooks installs the request ID, tracing, metrics and access log
// hooks on r.
func useServeHooks(r *mux.Router, registry prometheus.Registerer) {
	traceBefore, traceAfter := muxhandlers.TracingHooks(muxhandlers.TracingConfig{})
	metricsBefore, metricsAfter := muxhandlers.MetricsHooks(muxhandlers.MetricsConfig{Registry: registry})
	logBefore, logAfter := muxhandlers.LoggingHooks(muxhandlers.LoggingConfig{Logger: slog.Default()})

	r.Use(
		muxhandlers.RequestIDHook(muxhandlers.RequestIDConfig{TrustIncoming: true}),
		traceBefore, metricsBefore, logBefore,
		logAfter, metricsAfter, traceAfter,
	)
}

// listenAndServe runs srv until ctx is cancelled, then shuts it down.
func listenAndServe(ctx context.Context, srv *http.Server) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		slog.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
