// Package mcpserver exposes the loaded embedding store over the Model
// Context Protocol (stdio JSON-RPC). It is a thin dispatcher: every tool
// handler validates its arguments, calls into the core packages, and returns
// either a JSON payload or a typed error string. No fault crosses the
// protocol boundary.
package mcpserver

import (
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/notevault/vaultmcp/internal/store"
	"github.com/notevault/vaultmcp/internal/vault"
)

const (
	defaultLimit     = 10
	defaultThreshold = 0.3
)

// Server holds the process-wide immutable state shared read-only by every
// request handler: the resolved vault config and the loaded store. Concurrent
// in-flight requests never race because nothing here mutates after New.
type Server struct {
	cfg   *vault.Config
	store *store.Store
	guard *vault.Guard
	log   *slog.Logger
	mcp   *server.MCPServer
}

// New wires the tool surface onto the loaded store.
func New(cfg *vault.Config, st *store.Store, log *slog.Logger, version string) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		cfg:   cfg,
		store: st,
		guard: vault.NewGuard(cfg, log),
		log:   log,
	}
	m := server.NewMCPServer("vaultmcp", version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	s.registerTools(m)
	s.mcp = m
	return s
}

// ServeStdio blocks serving requests on stdin/stdout until EOF.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// jsonResult marshals v as the tool's text payload.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError("cannot encode result"), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// clampLimit confines a caller-requested result count to [1, MaxResults]
// irrespective of what the caller asked for.
func (s *Server) clampLimit(limit int) int {
	if limit < 1 {
		limit = 1
	}
	if limit > s.cfg.Limits.MaxResults {
		limit = s.cfg.Limits.MaxResults
	}
	return limit
}

// clampThreshold confines a similarity threshold to [0, 1].
func clampThreshold(threshold float64) float64 {
	if threshold < 0 {
		return 0
	}
	if threshold > 1 {
		return 1
	}
	return threshold
}
