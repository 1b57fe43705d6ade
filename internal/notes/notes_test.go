package notes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDisplayTitle(t *testing.T) {
	cases := []struct{ id, want string }{
		{"projects/weekly_status_report.md", "weekly status report"},
		{"hello.md", "hello"},
		{"a/b/c/Deep_Note.md", "Deep Note"},
	}
	for _, tc := range cases {
		if got := DisplayTitle(tc.id); got != tc.want {
			t.Fatalf("DisplayTitle(%q) = %q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestMatchesPattern(t *testing.T) {
	if !MatchesPattern("Projects/plan.md", "projects/") {
		t.Fatal("case-folded prefix should match")
	}
	if MatchesPattern("notes/plan.md", "projects/") {
		t.Fatal("non-prefix should not match")
	}
	if !MatchesPattern("anything.md", "") {
		t.Fatal("empty pattern must match everything")
	}
}

func writeNote(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "note.md")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRead_DerivedTitle(t *testing.T) {
	p := writeNote(t, "# Heading\nbody\n")
	n, err := Read(p, "daily_log.md", 0)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n.Title != "daily log" {
		t.Fatalf("title = %q", n.Title)
	}
	if n.Path != "daily_log.md" {
		t.Fatalf("path = %q", n.Path)
	}
}

func TestRead_FrontmatterTitleWins(t *testing.T) {
	p := writeNote(t, "---\ntitle: Quarterly Plan\n---\nbody\n")
	n, err := Read(p, "q_plan.md", 0)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n.Title != "Quarterly Plan" {
		t.Fatalf("title = %q", n.Title)
	}
}

func TestRead_TruncatesWithMarker(t *testing.T) {
	body := strings.Repeat("0123456789", 100)
	p := writeNote(t, body)
	n, err := Read(p, "big.md", 64)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !strings.HasSuffix(n.Content, TruncationMarker) {
		t.Fatalf("missing truncation marker: %q", n.Content[len(n.Content)-40:])
	}
	if len(n.Content) != 64+len(TruncationMarker) {
		t.Fatalf("content length = %d", len(n.Content))
	}
}

func TestRead_SmallContentUntouched(t *testing.T) {
	p := writeNote(t, "short")
	n, err := Read(p, "s.md", 64)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n.Content != "short" {
		t.Fatalf("content = %q", n.Content)
	}
}

func TestRead_TruncatesAtRuneBoundary(t *testing.T) {
	body := strings.Repeat("é", 40) // 2 bytes each
	p := writeNote(t, body)
	n, err := Read(p, "r.md", 33)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	cut := strings.TrimSuffix(n.Content, TruncationMarker)
	if !strings.HasSuffix(cut, "é") || len(cut) != 32 {
		t.Fatalf("bad rune boundary cut: %d bytes", len(cut))
	}
}

func TestFrontmatterTitle_Malformed(t *testing.T) {
	if got := titleFromFrontmatter("---\n[not yaml\n---\nbody"); got != "" {
		t.Fatalf("expected empty title, got %q", got)
	}
	if got := titleFromFrontmatter("no frontmatter"); got != "" {
		t.Fatalf("expected empty title, got %q", got)
	}
}
