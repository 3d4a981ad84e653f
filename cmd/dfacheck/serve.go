package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/dfacheck/internal/cli"
	httpAdapter "github.com/aretw0/dfacheck/pkg/adapters/http"
	"github.com/aretw0/dfacheck/pkg/domain"
	"github.com/aretw0/dfacheck/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stateless HTTP server",
	Long: `Exposes POST /check and POST /validate as a JSON API. Every request carries
its own machine description; nothing is kept between requests except the
optional verdict cache.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		if cmd.Flags().Changed("addr") {
			cfg.Server.Address, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("cache") {
			cfg.Cache.Backend, _ = cmd.Flags().GetString("cache")
		}

		logger, err := cli.CreateLogger(os.Stderr, cfg.LogLevel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		cache, closeCache, err := cli.CreateCache(cfg.Cache)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing cache: %v\n", err)
			os.Exit(1)
		}
		defer closeCache()

		var hooks []domain.LifecycleHooks
		var opts []httpAdapter.HandlerOption
		opts = append(opts, httpAdapter.WithLogger(logger))
		if cfg.Server.Metrics {
			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			m, err := observability.NewMetrics(reg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error registering metrics: %v\n", err)
				os.Exit(1)
			}
			hooks = append(hooks, m.Hooks())
			opts = append(opts, httpAdapter.WithMetrics(reg))
		}

		checker := cli.CreateChecker(logger, cache, hooks...)
		srv := &http.Server{
			Addr:              cfg.Server.Address,
			Handler:           httpAdapter.NewHandler(checker, opts...),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("Starting dfacheck server", "address", srv.Addr, "cache", cfg.Cache.Backend, "metrics", cfg.Server.Metrics)
			serverErrors <- srv.ListenAndServe()
		}()

		sc := cli.NewSignalContext(context.Background())
		defer sc.Cancel()

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			logger.Error("Server error", "error", err)
			os.Exit(1)

		case <-sc.Done():
			logger.Info("Start shutdown", "signal", sc.Signal())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("Graceful shutdown did not complete", "timeout", 5*time.Second, "error", err)
				if err := srv.Close(); err != nil {
					logger.Error("Error killing server", "error", err)
				}
			}
			logger.Info("dfacheck server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().String("cache", "none", "Verdict cache backend: none, memory or redis")
}
