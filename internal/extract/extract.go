// Package extract pulls bulleted and numbered list items out of free-form text.
package extract

import (
	"regexp"
	"strings"
)

var (
	bulletLine   = regexp.MustCompile(`^[*-]\s+(.+)$`)
	numberedLine = regexp.MustCompile(`^\d+\.\s+(.+)$`)
)

// Items returns one entry per line that starts with "-", "*" or "N." followed
// by whitespace, in input order. Lines that do not match are skipped.
func Items(text string) []string {
	items := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		if item, ok := matchLine(line); ok {
			items = append(items, item)
		}
	}
	return items
}

// HasListMarkup reports whether Items would return at least one entry.
func HasListMarkup(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		if _, ok := matchLine(line); ok {
			return true
		}
	}
	return false
}

func matchLine(line string) (string, bool) {
	l := strings.TrimSpace(line)
	if l == "" {
		return "", false
	}
	if m := bulletLine.FindStringSubmatch(l); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	if m := numberedLine.FindStringSubmatch(l); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}
