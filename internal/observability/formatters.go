// Package observability provides formatted, human-readable output of analysis results for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-analyzer/internal/catalog"
	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// barWidth is the number of cells in a score bar
	barWidth = 20
)

// Printer handles formatted output for the analyze and catalog commands
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes, marking the cut with "..."
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// scoreBar renders a 0-100 score as a fixed-width bar
func scoreBar(score int) string {
	filled := min(max(score, 0), 100) * barWidth / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// PrintAnalysis outputs the scores, skills, recommendations and job match of a result.
func (p *Printer) PrintAnalysis(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:  %d/100  (%s)\n\n", result.OverallScore, result.ScoreLabel))
	for _, row := range []struct {
		name  string
		score int
	}{
		{"Content quality", result.ContentQuality},
		{"Keywords", result.KeywordOptimization},
		{"ATS compatibility", result.ATSCompatibility},
		{"Structure", result.StructureScore},
		{"Completeness", result.Completeness},
	} {
		sb.WriteString(fmt.Sprintf("%-18s %3d %s\n", row.name, row.score, scoreBar(row.score)))
	}
	sb.WriteString(fmt.Sprintf("\nWords: %d   Action verbs: %d   Quantified: %d",
		result.WordCount, result.ActionVerbsCount, result.QuantifiedCount))
	if result.ExperienceYears > 0 {
		sb.WriteString(fmt.Sprintf("\nExperience: %d years", result.ExperienceYears))
	}
	p.printBox("RESUME ANALYSIS", sb.String())

	p.printSkills(result)
	p.PrintJobMatch(result.JobAnalysis)
	p.PrintRecommendations(result.Recommendations)
}

func (p *Printer) printSkills(result *types.AnalysisResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Technical (%d): %s\n", len(result.TechnicalSkills), listOrNone(result.TechnicalSkills)))
	sb.WriteString(fmt.Sprintf("Soft (%d): %s\n", len(result.SoftSkills), listOrNone(result.SoftSkills)))
	sb.WriteString(fmt.Sprintf("Sections: %s", listOrNone(result.SectionsDetected)))
	p.printBox("SKILLS AND SECTIONS", sb.String())
}

// PrintJobMatch outputs the keyword overlap with a job description. Nil prints nothing.
func (p *Printer) PrintJobMatch(match *types.JobMatch) {
	if match == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Match: %d%%  %s\n", match.MatchPercentage, scoreBar(match.MatchPercentage)))
	sb.WriteString(fmt.Sprintf("Matched (%d): %s\n", len(match.MatchedKeywords), listOrNone(limit(match.MatchedKeywords))))
	sb.WriteString(fmt.Sprintf("Missing (%d): %s", len(match.MissingKeywords), listOrNone(limit(match.MissingKeywords))))
	if len(match.MissingKeywords) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n  ... and %d more", len(match.MissingKeywords)-maxItemsToShow))
	}
	p.printBox("JOB MATCH", sb.String())
}

// PrintRecommendations outputs each recommendation as a bullet, wrapping long ones.
func (p *Printer) PrintRecommendations(recs []string) {
	if len(recs) == 0 {
		return
	}

	var lines []string
	for _, rec := range recs {
		for i, line := range wrap(rec, boxWidth-6) {
			prefix := "  "
			if i == 0 {
				prefix = "• "
			}
			lines = append(lines, prefix+line)
		}
	}
	p.printBox("RECOMMENDATIONS", strings.Join(lines, "\n"))
}

// PrintCatalog outputs the categories and skill names of a catalog.
func (p *Printer) PrintCatalog(cat *catalog.Catalog) {
	if cat == nil {
		return
	}

	var sb strings.Builder
	if cat.Version != "" {
		sb.WriteString(fmt.Sprintf("Version: %s\n", cat.Version))
	}
	sb.WriteString(fmt.Sprintf("Skills:  %d", cat.SkillCount()))
	for _, category := range cat.Categories {
		names := make([]string, 0, len(category.Skills))
		for _, skill := range category.Skills {
			names = append(names, skill.Name)
		}
		sb.WriteString(fmt.Sprintf("\n\n%s (%d):", category.Name, len(names)))
		for _, line := range wrap(strings.Join(names, ", "), boxWidth-6) {
			sb.WriteString("\n  " + line)
		}
	}
	p.printBox("SKILL CATALOG", sb.String())
}

func limit(items []string) []string {
	if len(items) > maxItemsToShow {
		return items[:maxItemsToShow]
	}
	return items
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}

// wrap splits text into lines of at most width runes at word boundaries
func wrap(text string, width int) []string {
	var lines []string
	var current strings.Builder
	for _, word := range strings.Fields(text) {
		if current.Len() > 0 && utf8.RuneCountInString(current.String())+1+utf8.RuneCountInString(word) > width {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
