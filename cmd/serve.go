package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/notevault/vaultmcp/internal/mcpserver"
	"github.com/notevault/vaultmcp/internal/store"
)

var flagServeLogLevel string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the vault's embedding index over MCP on stdin/stdout",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeLogLevel, "log-level", "info",
		"Log level: debug, info, warn or error")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	// stdout belongs to the protocol; all logging goes to stderr.
	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(flagServeLogLevel),
	}))

	cfg, err := resolveVault()
	if err != nil {
		return err
	}
	st, err := store.Load(cfg, log)
	if err != nil {
		return err
	}

	log.Info("serving vault over MCP",
		"root", cfg.CanonicalRoot,
		"documents", len(st.Index),
		"model", st.Descriptor.ModelKey,
	)

	srv := mcpserver.New(cfg, st, log, version)
	if err := srv.ServeStdio(); err != nil {
		return fmt.Errorf("MCP server stopped: %w", err)
	}
	return nil
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
