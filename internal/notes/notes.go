package notes

import (
	"fmt"
	"os"
	"path"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// TruncationMarker is appended to note content cut at the configured byte cap.
const TruncationMarker = "\n\n[content truncated]"

// Note is the retrieval payload for one document.
type Note struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// DisplayTitle derives a human title from a document id: the filename without
// its extension, with underscores rendered as spaces.
func DisplayTitle(id string) string {
	base := path.Base(id)
	base = strings.TrimSuffix(base, path.Ext(base))
	return strings.ReplaceAll(base, "_", " ")
}

// MatchesPattern reports whether id starts with pattern, compared
// case-insensitively via Unicode case folding. An empty pattern matches
// everything.
func MatchesPattern(id, pattern string) bool {
	if pattern == "" {
		return true
	}
	folder := cases.Fold()
	return strings.HasPrefix(folder.String(id), folder.String(pattern))
}

// Read loads a validated note from resolved (an absolute path already vetted
// by the path guard). Content larger than maxBytes is cut at a rune boundary
// and marked. The title prefers a frontmatter title field over the derived
// display title.
func Read(resolved, id string, maxBytes int) (*Note, error) {
	b, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("cannot read note %s: %w", id, err)
	}

	content := string(b)
	title := titleFromFrontmatter(content)
	if title == "" {
		title = DisplayTitle(id)
	}

	if maxBytes > 0 && len(content) > maxBytes {
		cut := maxBytes
		for cut > 0 && !utf8.RuneStart(content[cut]) {
			cut--
		}
		content = content[:cut] + TruncationMarker
	}

	return &Note{Path: id, Title: title, Content: content}, nil
}
