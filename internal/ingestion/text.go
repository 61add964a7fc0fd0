// Package ingestion turns resume and job description files into clean plain text for analysis.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	spaceRunPattern   = regexp.MustCompile(`[ \t\f\v\x{00a0}]+`)
	blankRunPattern   = regexp.MustCompile(`\n\n\n+`)
	controlCharFilter = strings.NewReplacer("\x00", "", "\ufeff", "", "\u200b", "")
)

// CleanText normalizes extracted text while preserving its line structure, which section
// detection depends on.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = controlCharFilter.Replace(strings.ToValidUTF8(content, ""))
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	// At most one blank line between paragraphs
	result := blankRunPattern.ReplaceAllString(strings.Join(cleaned, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine trims a line and collapses inner whitespace. Bullet glyphs are rewritten to "- ".
func cleanLine(line string) string {
	line = strings.TrimSpace(spaceRunPattern.ReplaceAllString(line, " "))
	if line == "" {
		return ""
	}

	if isBulletLine(line) {
		_, rest, _ := strings.Cut(line, " ")
		return "- " + strings.TrimSpace(rest)
	}
	return line
}

func isBulletLine(line string) bool {
	for _, bullet := range []string{"- ", "* ", "• ", "· ", "▪ ", "◦ "} {
		if strings.HasPrefix(line, bullet) {
			return true
		}
	}
	return false
}
