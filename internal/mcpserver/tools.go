package mcpserver

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/notevault/vaultmcp/internal/notes"
	"github.com/notevault/vaultmcp/internal/search"
	"github.com/notevault/vaultmcp/internal/vault"
)

// hitPayload is the wire shape of one similarity match.
type hitPayload struct {
	Path  string  `json:"path"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// listPayload is the wire shape of one indexed document listing.
type listPayload struct {
	Path  string `json:"path"`
	Title string `json:"title"`
}

func (s *Server) registerTools(m *server.MCPServer) {
	m.AddTool(mcp.NewTool("search_similar",
		mcp.WithDescription("Find notes semantically similar to an existing indexed note."),
		mcp.WithString("notePath",
			mcp.Required(),
			mcp.Description("Vault-relative path of an indexed note, e.g. projects/plan.md"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results"),
			mcp.DefaultNumber(defaultLimit),
			mcp.Min(1),
			mcp.Max(50),
		),
		mcp.WithNumber("threshold",
			mcp.Description("Minimum cosine similarity score to include"),
			mcp.DefaultNumber(defaultThreshold),
			mcp.Min(0),
			mcp.Max(1),
		),
	), s.handleSearchSimilar)

	m.AddTool(mcp.NewTool("search_by_vector",
		mcp.WithDescription("Find notes similar to a raw query embedding."),
		mcp.WithArray("embedding",
			mcp.Required(),
			mcp.Description("Query embedding; length must match the index model dimensionality"),
			mcp.Items(map[string]any{"type": "number"}),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results"),
			mcp.DefaultNumber(defaultLimit),
			mcp.Min(1),
			mcp.Max(50),
		),
		mcp.WithNumber("threshold",
			mcp.Description("Minimum cosine similarity score to include"),
			mcp.DefaultNumber(defaultThreshold),
			mcp.Min(0),
			mcp.Max(1),
		),
	), s.handleSearchByVector)

	m.AddTool(mcp.NewTool("get_note",
		mcp.WithDescription("Retrieve a note's content by vault-relative path."),
		mcp.WithString("notePath",
			mcp.Required(),
			mcp.Description("Vault-relative path of the note to read"),
		),
	), s.handleGetNote)

	m.AddTool(mcp.NewTool("list_indexed",
		mcp.WithDescription("List indexed note paths, optionally filtered by prefix."),
		mcp.WithString("pattern",
			mcp.Description("Optional case-insensitive path prefix filter"),
		),
	), s.handleListIndexed)

	m.AddTool(mcp.NewTool("get_model_info",
		mcp.WithDescription("Describe the embedding model backing the index."),
	), s.handleGetModelInfo)
}

// rankOptions reads and clamps the shared limit/threshold arguments.
func (s *Server) rankOptions(req mcp.CallToolRequest, exclude string) search.Options {
	return search.Options{
		Limit:     s.clampLimit(req.GetInt("limit", defaultLimit)),
		Threshold: clampThreshold(req.GetFloat("threshold", defaultThreshold)),
		Exclude:   exclude,
	}
}

// requireShortString fetches a required string argument and enforces the
// configured query length cap.
func (s *Server) requireShortString(req mcp.CallToolRequest, key string) (string, error) {
	v, err := req.RequireString(key)
	if err != nil {
		return "", err
	}
	v = strings.TrimSpace(v)
	if len(v) > s.cfg.Limits.MaxQueryLength {
		return "", fmt.Errorf("%s exceeds maximum length of %d", key, s.cfg.Limits.MaxQueryLength)
	}
	return v, nil
}

func (s *Server) hitsResult(hits []search.Hit) (*mcp.CallToolResult, error) {
	out := make([]hitPayload, 0, len(hits))
	for _, h := range hits {
		out = append(out, hitPayload{
			Path:  h.ID,
			Title: notes.DisplayTitle(h.ID),
			Score: search.Round3(h.Score),
		})
	}
	return jsonResult(out)
}

func (s *Server) handleSearchSimilar(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	notePath, err := s.requireShortString(req, "notePath")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Index membership is checked before any filesystem access; an
	// unindexed note has no vector to search from.
	id := path.Clean(filepath.ToSlash(notePath))
	entry, ok := s.store.Get(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("note is not indexed: %s", vault.SanitizeInput(id))), nil
	}

	hits, err := search.Rank(entry.Vector, s.store.Index, s.rankOptions(req, id))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.hitsResult(hits)
}

func (s *Server) handleSearchByVector(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, ok := req.GetArguments()["embedding"].([]any)
	if !ok {
		return mcp.NewToolResultError("embedding must be an array of numbers"), nil
	}
	query := make([]float32, len(raw))
	for i, v := range raw {
		f, ok := v.(float64)
		if !ok {
			return mcp.NewToolResultError("embedding must be an array of numbers"), nil
		}
		query[i] = float32(f)
	}
	if want := s.store.Descriptor.Dimensions; len(query) != want {
		return mcp.NewToolResultError(fmt.Sprintf("embedding has %d dimensions, index expects %d", len(query), want)), nil
	}

	hits, err := search.Rank(query, s.store.Index, s.rankOptions(req, ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.hitsResult(hits)
}

func (s *Server) handleGetNote(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	notePath, err := s.requireShortString(req, "notePath")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := s.guard.Validate(notePath)
	if !out.OK {
		return mcp.NewToolResultError(fmt.Sprintf("access denied (%s)", out.Reason)), nil
	}

	note, err := notes.Read(out.Path, out.Relative, s.cfg.Limits.MaxContentBytes)
	if err != nil {
		// Filesystem detail stays in the log; the caller gets a
		// generic denial.
		s.log.Warn("note read failed", "path", out.Relative, "error", err)
		return mcp.NewToolResultError("access denied"), nil
	}
	return jsonResult(note)
}

func (s *Server) handleListIndexed(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pattern := strings.TrimSpace(req.GetString("pattern", ""))
	if len(pattern) > s.cfg.Limits.MaxQueryLength {
		return mcp.NewToolResultError(fmt.Sprintf("pattern exceeds maximum length of %d", s.cfg.Limits.MaxQueryLength)), nil
	}

	ids := s.store.IDs()
	out := make([]listPayload, 0, len(ids))
	for _, id := range ids {
		if !notes.MatchesPattern(id, pattern) {
			continue
		}
		out = append(out, listPayload{Path: id, Title: notes.DisplayTitle(id)})
	}
	return jsonResult(out)
}

func (s *Server) handleGetModelInfo(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.store.Descriptor)
}
