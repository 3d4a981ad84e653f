package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/aretw0/dfacheck/internal/cli"
	"github.com/aretw0/dfacheck/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the check_word and validate_machine tools to MCP clients.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
		if cmd.Flags().Changed("transport") {
			cfg.MCP.Transport, _ = cmd.Flags().GetString("transport")
		}
		if cmd.Flags().Changed("port") {
			cfg.MCP.Port, _ = cmd.Flags().GetInt("port")
		}

		// Logs never go to stdout: it carries JSON-RPC under stdio.
		logger, err := cli.CreateLogger(os.Stderr, cfg.LogLevel)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		slog.SetDefault(logger)
		log.SetOutput(os.Stderr)

		cache, closeCache, err := cli.CreateCache(cfg.Cache)
		if err != nil {
			log.Fatalf("Error initializing cache: %v", err)
		}
		defer closeCache()

		srv := mcp.NewServer(cli.CreateChecker(logger, cache))

		switch cfg.MCP.Transport {
		case "stdio":
			slog.Info("Starting dfacheck MCP Server (Stdio)...")
			if err := srv.ServeStdio(); err != nil {
				slog.Error("MCP Server execution failed", "error", err)
				os.Exit(1)
			}
		case "sse":
			slog.Info("Starting dfacheck MCP Server (SSE)", "port", cfg.MCP.Port)

			sc := cli.NewSignalContext(context.Background())
			defer sc.Cancel()

			if err := srv.ServeSSE(sc, cfg.MCP.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("MCP Server execution failed", "error", err)
				os.Exit(1)
			}
			slog.Info("MCP Server stopped gracefully")
		default:
			log.Fatalf("Unknown transport: %s. Supported: stdio, sse", cfg.MCP.Transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8081, "Port to listen on (only for SSE)")
}
