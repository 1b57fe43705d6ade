package vault

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestGuard(t *testing.T) (*Guard, string) {
	t.Helper()
	root := newVaultDir(t)

	mustWrite := func(rel, body string) {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	mustWrite("hello.md", "# Hello")
	mustWrite("notes/daily_log.md", "log")
	mustWrite(".secret/x.md", "hidden")
	mustWrite("plain.txt", "text")

	cfg, err := Resolve(root, DefaultLimits())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewGuard(cfg, log), cfg.CanonicalRoot
}

func TestGuard_AcceptsInRootNote(t *testing.T) {
	g, root := newTestGuard(t)

	out := g.Validate("notes/daily_log.md")
	if !out.OK {
		t.Fatalf("expected accept, got reason %q", out.Reason)
	}
	if out.Relative != "notes/daily_log.md" {
		t.Fatalf("relative = %q", out.Relative)
	}
	if !strings.HasPrefix(out.Path, root+string(os.PathSeparator)) {
		t.Fatalf("resolved path %q escapes root %q", out.Path, root)
	}
}

func TestGuard_Rejections(t *testing.T) {
	g, _ := newTestGuard(t)

	cases := []struct {
		name  string
		input string
		want  Reason
	}{
		{"empty", "", ReasonEmpty},
		{"whitespace", "   ", ReasonEmpty},
		{"absolute", string(os.PathSeparator) + "etc/passwd", ReasonAbsolute},
		{"traversal", "../../etc/passwd", ReasonTraversal},
		{"traversal interior survives", "notes/../../escape.md", ReasonTraversal},
		{"hidden dir", ".secret/x.md", ReasonHidden},
		{"hidden file", "notes/.hidden.md", ReasonHidden},
		{"extension", "plain.txt", ReasonExtension},
		{"missing", "nope.md", ReasonNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := g.Validate(tc.input)
			if out.OK {
				t.Fatalf("expected rejection for %q", tc.input)
			}
			if out.Reason != tc.want {
				t.Fatalf("reason = %q, want %q", out.Reason, tc.want)
			}
		})
	}
}

func TestGuard_InteriorTraversalThatStaysInRoot(t *testing.T) {
	g, _ := newTestGuard(t)

	// "notes/../hello.md" normalizes to "hello.md" with no surviving
	// ".." segment, so it is in-root and accepted.
	out := g.Validate("notes/../hello.md")
	if !out.OK {
		t.Fatalf("expected accept, got reason %q", out.Reason)
	}
	if out.Relative != "hello.md" {
		t.Fatalf("relative = %q", out.Relative)
	}
}

func TestGuard_SymlinkEscapeRejected(t *testing.T) {
	g, root := newTestGuard(t)

	outside := filepath.Join(t.TempDir(), "outside.md")
	if err := os.WriteFile(outside, []byte("outside"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(outside, filepath.Join(root, "escape.md")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	out := g.Validate("escape.md")
	if out.OK {
		t.Fatal("symlink escape was accepted")
	}
	if out.Reason != ReasonEscape {
		t.Fatalf("reason = %q, want %q", out.Reason, ReasonEscape)
	}
}

func TestGuard_SymlinkInsideRootAccepted(t *testing.T) {
	g, root := newTestGuard(t)

	if err := os.Symlink(filepath.Join(root, "hello.md"), filepath.Join(root, "alias.md")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	out := g.Validate("alias.md")
	if !out.OK {
		t.Fatalf("expected accept, got reason %q", out.Reason)
	}
	if filepath.Base(out.Path) != "hello.md" {
		t.Fatalf("resolved path %q should point at the target", out.Path)
	}
}

func TestGuard_DirectoryRejected(t *testing.T) {
	g, root := newTestGuard(t)

	if err := os.MkdirAll(filepath.Join(root, "dir.md"), 0o755); err != nil {
		t.Fatal(err)
	}
	out := g.Validate("dir.md")
	if out.OK || out.Reason != ReasonNotFile {
		t.Fatalf("expected %q, got %+v", ReasonNotFile, out)
	}
}

func TestSanitizeInput(t *testing.T) {
	in := "a\x00b\nc" + strings.Repeat("x", 1000)
	got := SanitizeInput(in)
	if strings.ContainsAny(got, "\x00\n") {
		t.Fatalf("control characters survived: %q", got)
	}
	if len(got) > 256 {
		t.Fatalf("echo not capped: %d bytes", len(got))
	}
}
