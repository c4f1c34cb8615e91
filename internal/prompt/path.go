package prompt

import (
	"os"
	"path/filepath"
	"strings"
)

// CleanPath trims whitespace and surrounding quotes from a pasted path and
// expands a leading ~.
func CleanPath(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' && s[len(s)-1] == '"' || s[0] == '\'' && s[len(s)-1] == '\'') {
		s = s[1 : len(s)-1]
	}
	if s == "~" || strings.HasPrefix(s, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			s = filepath.Join(home, strings.TrimPrefix(s, "~"))
		}
	}
	if s == "" {
		return ""
	}
	return filepath.Clean(s)
}
