package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/vitalvas/kroute/mux"
	"github.com/vitalvas/kroute/muxconfig"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// options holds the persistent flags shared by every command.
type options struct {
	config   string
	envFiles []string
	verbose  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "kroute",
		Short: "Inspect and serve kroute route tables",
		Long: `kroute loads a router configuration file and shows how request
paths resolve: which format is selected, which endpoint action handles
the path and which parameters it receives.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			slog.SetDefault(newLogger(cmd.ErrOrStderr(), opts.verbose))
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.config, "config", "c", "routes.yaml", "router configuration file")
	flags.StringSliceVar(&opts.envFiles, "env", nil, "env files loaded before the configuration")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		routesCmd(opts),
		matchCmd(opts),
		serveCmd(opts),
		coerceCmd(),
		typesCmd(),
		versionCmd(),
	)

	return rootCmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadRouter reads the configuration and applies it to a router backed by
// placeholder endpoints.
func loadRouter(opts *options) (*muxconfig.Config, *mux.Router, error) {
	cfg, err := muxconfig.Load(opts.config, opts.envFiles...)
	if err != nil {
		return nil, nil, err
	}

	r := mux.NewRouter(cfg.InspectionRegistry()).SetLogger(slog.Default())
	if err := cfg.Apply(r); err != nil {
		return nil, nil, err
	}

	slog.Debug("configuration loaded",
		slog.String("path", opts.config),
		slog.Int("routes", len(cfg.Routes)),
	)

	return cfg, r, nil
}
