package notes

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// titleFromFrontmatter returns the YAML frontmatter "title" value, or "" when
// the note has no frontmatter, the block does not parse, or the field is
// absent or not a string.
func titleFromFrontmatter(content string) string {
	s := strings.TrimPrefix(content, "\ufeff")
	if !strings.HasPrefix(s, "---") {
		return ""
	}

	parts := strings.SplitN(s, "---", 3)
	if len(parts) < 3 {
		return ""
	}

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(strings.TrimSpace(parts[1])), &raw); err != nil {
		return ""
	}
	for k, v := range raw {
		if strings.EqualFold(k, "title") {
			if sv, ok := v.(string); ok {
				return strings.TrimSpace(sv)
			}
		}
	}
	return ""
}
