package vault

import (
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DocumentExtension is the only file kind reachable through the guard.
const DocumentExtension = ".md"

// Reason identifies why the guard rejected a candidate path.
type Reason string

const (
	ReasonEmpty     Reason = "empty_input"
	ReasonAbsolute  Reason = "absolute_path"
	ReasonTraversal Reason = "path_traversal"
	ReasonHidden    Reason = "hidden_segment"
	ReasonExtension Reason = "bad_extension"
	ReasonNotFound  Reason = "not_found"
	ReasonResolve   Reason = "resolve_failed"
	ReasonEscape    Reason = "outside_root"
	ReasonNotFile   Reason = "not_regular_file"
)

// Outcome is the guard's tagged result. It is never partially valid: either
// OK is true and Path/Relative are set, or Reason is set.
type Outcome struct {
	OK bool
	// Path is the fully symlink-resolved absolute path, inside the
	// canonical root.
	Path string
	// Relative is the normalized root-relative slash path, usable as an
	// index document id.
	Relative string
	Reason   Reason
}

// Guard validates caller-supplied relative paths against a resolved vault.
// It is the single gate for every operation that touches the filesystem by
// caller-supplied name.
type Guard struct {
	cfg *Config
	log *slog.Logger
}

// NewGuard returns a Guard confined to cfg's canonical root. Rejections are
// logged to log as security events.
func NewGuard(cfg *Config, log *slog.Logger) *Guard {
	if log == nil {
		log = slog.Default()
	}
	return &Guard{cfg: cfg, log: log}
}

// guardState carries intermediate values between checks.
type guardState struct {
	input    string
	relative string
	joined   string
	resolved string
}

// guardChecks is the guard's policy as one ordered, short-circuiting list.
// Each check either advances the state or names the rejection reason. Any
// filesystem error along the way rejects; no branch falls back to "allow".
var guardChecks = []struct {
	reason Reason
	pass   func(g *Guard, s *guardState) bool
}{
	{ReasonEmpty, func(_ *Guard, s *guardState) bool {
		return strings.TrimSpace(s.input) != ""
	}},
	{ReasonAbsolute, func(_ *Guard, s *guardState) bool {
		return !filepath.IsAbs(s.input) && !path.IsAbs(filepath.ToSlash(s.input))
	}},
	{ReasonTraversal, func(_ *Guard, s *guardState) bool {
		// Lexical normalization collapses interior "x/.." pairs; any
		// surviving ".." segment means the input tried to climb out.
		s.relative = path.Clean(filepath.ToSlash(s.input))
		if s.relative == ".." || strings.HasPrefix(s.relative, "../") {
			return false
		}
		return !strings.Contains(s.relative, "/../") && !strings.HasSuffix(s.relative, "/..")
	}},
	{ReasonHidden, func(_ *Guard, s *guardState) bool {
		for _, seg := range strings.Split(s.relative, "/") {
			if seg != "." && strings.HasPrefix(seg, ".") {
				return false
			}
		}
		return true
	}},
	{ReasonExtension, func(_ *Guard, s *guardState) bool {
		return strings.EqualFold(path.Ext(s.relative), DocumentExtension)
	}},
	{ReasonNotFound, func(g *Guard, s *guardState) bool {
		s.joined = filepath.Join(g.cfg.CanonicalRoot, filepath.FromSlash(s.relative))
		_, err := os.Lstat(s.joined)
		return err == nil
	}},
	{ReasonResolve, func(_ *Guard, s *guardState) bool {
		resolved, err := filepath.EvalSymlinks(s.joined)
		if err != nil {
			return false
		}
		s.resolved = resolved
		return true
	}},
	{ReasonEscape, func(g *Guard, s *guardState) bool {
		// Only the resolved target's containment matters: a symlink
		// inside the root may point anywhere on disk.
		return strings.HasPrefix(s.resolved, g.cfg.CanonicalRoot+string(os.PathSeparator))
	}},
	{ReasonNotFile, func(_ *Guard, s *guardState) bool {
		info, err := os.Stat(s.resolved)
		return err == nil && info.Mode().IsRegular()
	}},
}

// Validate runs the candidate through the ordered policy checks and returns
// either the resolved in-root path or a rejection reason. Rejection is a
// normal, typed outcome; it never surfaces as a fault.
func (g *Guard) Validate(candidate string) Outcome {
	s := &guardState{input: candidate}
	for _, c := range guardChecks {
		if !c.pass(g, s) {
			g.logRejection(c.reason, candidate)
			return Outcome{Reason: c.reason}
		}
	}
	return Outcome{OK: true, Path: s.resolved, Relative: s.relative}
}
