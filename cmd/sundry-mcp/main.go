// Command sundry-mcp exposes the Sundry personal-context API as an MCP tool
// server. By default it speaks the protocol over stdio; with --http it serves
// the streamable-HTTP transport instead.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/sundrylabs/sundry-mcp/internal/infra/config"
	"github.com/sundrylabs/sundry-mcp/internal/infra/sundry"
	"github.com/sundrylabs/sundry-mcp/internal/mcpserver"
	"github.com/sundrylabs/sundry-mcp/internal/server"
	"github.com/sundrylabs/sundry-mcp/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("sundry-mcp", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	showVersion := fs.Bool("version", false, "Show version information")
	showHelp := fs.Bool("help", false, "Show help")
	configPath := fs.String("config", "", "Path to an optional YAML configuration file")
	serveHTTP := fs.Bool("http", false, "Serve MCP over streamable HTTP instead of stdio")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(out, version.String()) //nolint:errcheck
		return 0
	}

	if *showHelp {
		printHelp(out)
		return 0
	}

	// Best-effort .env load; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sundry-mcp: %v\n", err)
		return 1
	}

	// stdout carries the MCP framing, so the logger writes to stderr.
	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	client := sundry.NewClientWithTimeout(cfg.BaseURL, cfg.UserAPIKey, cfg.ApplicationAPIKey, cfg.RequestTimeout)
	mcpSrv := mcpserver.New(client)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *serveHTTP {
		slog.Info("serving MCP over streamable HTTP", "addr", cfg.HTTPAddr, "base_url", cfg.BaseURL)
		httpSrv := server.New(mcpSrv, server.DefaultConfig(cfg.HTTPAddr))
		if err := httpSrv.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server terminated", "err", err)
			return 1
		}
		return 0
	}

	slog.Info("serving MCP over stdio", "base_url", cfg.BaseURL)
	if err := mcpSrv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server terminated", "err", err)
		return 1
	}
	return 0
}

// newLogger builds a text slog.Logger on stderr at the configured level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func printHelp(out io.Writer) {
	helpText := `sundry-mcp - MCP server for the Sundry personal-context API

Usage:
  sundry-mcp [options]

Options:
  --version        Show version information
  --help           Show this help message
  --config PATH    Load optional settings from a YAML file
  --http           Serve MCP over streamable HTTP instead of stdio

Environment:
  SUNDRY_USER_API_KEY         (required) user bearer token
  SUNDRY_APPLICATION_API_KEY  (required) application API key
  SUNDRY_BASE_URL             backend base URL (default http://127.0.0.1:3002/v1)
  SUNDRY_LOG_LEVEL            debug | info | warn | error (default info)
  SUNDRY_HTTP_ADDR            listen address for --http (default 127.0.0.1:8080)

Examples:
  sundry-mcp --version
  SUNDRY_USER_API_KEY=... SUNDRY_APPLICATION_API_KEY=... sundry-mcp
  sundry-mcp --http --config config.yaml`
	fmt.Fprintln(out, helpText) //nolint:errcheck
}
