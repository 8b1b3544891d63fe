package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/lugondev/swapcpi/internal/common"
	"github.com/lugondev/swapcpi/internal/config"
	"github.com/lugondev/swapcpi/internal/metrics"
)

var (
	cfgFile     string
	logLevel    string
	logFormat   string
	metricsAddr string
)

// app holds what PersistentPreRunE builds for the subcommands.
var app struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics metrics.Metrics
	server  *http.Server
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "swapcpi",
	Short: "swapcpi - encode and invoke DEX swap instructions",
	Long: `swapcpi builds swap instructions for the supported Solana DEX programs.

It provides commands for:
- Listing supported protocols
- Encoding and decoding swap instruction data
- Invoking swaps in-process or against an RPC node`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.swapcpi.yaml or $HOME/.swapcpi.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format override (text, json)")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while the command runs")
}

func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}

	logger, err := common.NewLogger(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	app.cfg = cfg
	app.logger = logger
	app.metrics, err = newMetrics(cmd.Context(), cfg.Metrics, logger)
	if err != nil {
		return err
	}
	return nil
}

func teardown(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	var errs []error
	if app.metrics != nil {
		errs = append(errs, app.metrics.Flush(ctx), app.metrics.Shutdown(ctx))
	}
	if app.server != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		errs = append(errs, app.server.Shutdown(shutdownCtx))
	}
	return errors.Join(errs...)
}

func newMetrics(ctx context.Context, cfg config.MetricsConfig, logger *slog.Logger) (metrics.Metrics, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var m metrics.Metrics
	switch cfg.Backend {
	case config.MetricsBackendNoop:
		m = metrics.NewNoopMetrics()
	case config.MetricsBackendLog:
		m = metrics.NewLogMetrics(logger)
	case config.MetricsBackendPrometheus:
		prom := metrics.NewPrometheusMetrics(cfg.Namespace)
		if metricsAddr != "" {
			if err := serveMetrics(prom.Handler(), logger); err != nil {
				return nil, err
			}
		}
		m = prom
	default:
		return nil, fmt.Errorf("unknown metrics backend %q", cfg.Backend)
	}

	if err := m.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}
	return m, nil
}

func serveMetrics(handler http.Handler, logger *slog.Logger) error {
	ln, err := net.Listen("tcp", metricsAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", metricsAddr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	app.server = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := app.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", ln.Addr().String())
	return nil
}
