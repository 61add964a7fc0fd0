// Package structure detects resume sections and structural signals such as word count,
// action verbs and contact details.
package structure

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/jonathan/resume-analyzer/internal/keywords"
	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	// maxHeaderWords is the longest line still treated as a standalone section header
	maxHeaderWords = 5
	// maxExperienceYears caps implausible "N years of experience" matches
	maxExperienceYears = 60
	// headerMarks are stripped from the start of a line before header matching
	headerMarks = "#*-•·=>|_ \t"
)

var (
	emailPattern      = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern      = regexp.MustCompile(`(?:\+\d{1,3}[\s.-]?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`)
	linkedInPattern   = regexp.MustCompile(`(?i)linkedin\.com/`)
	yearPattern       = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	quantifiedPattern = regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s?%|\d+\+|\$\s?\d|\b\d+(?:\.\d+)?x\b|\b(?:increased|improved|reduced)\b`)
	experiencePattern = regexp.MustCompile(`(?i)\b(\d{1,2})\+?\s*(?:years?|yrs?)\s*(?:of\s+)?(?:experience|exp)\b`)
)

// Analyze computes the structural signals of a resume.
func Analyze(text string) types.SectionFlags {
	return types.SectionFlags{
		SectionsDetected: DetectSections(text),
		WordCount:        len(strings.Fields(text)),
		ActionVerbCount:  CountActionVerbs(text),
		QuantifiedCount:  len(quantifiedPattern.FindAllString(text, -1)),
		ExperienceYears:  ExperienceYears(text),
		HasDates:         yearPattern.MatchString(text),
		Contact: types.ContactInfo{
			HasEmail:    emailPattern.MatchString(text),
			HasPhone:    phonePattern.MatchString(text),
			HasLinkedIn: linkedInPattern.MatchString(text),
		},
	}
}

// DetectSections returns the fixed section names that have a header line in text,
// in section-list order. A line is a header when, after stripping leading list or
// markdown marks, it starts with a header spelling at a word boundary and is either
// short (at most maxHeaderWords words) or continues with a colon ("Skills: Go, SQL").
func DetectSections(text string) []string {
	found := make(map[string]bool)
	for _, line := range strings.Split(text, "\n") {
		line = strings.ToLower(strings.TrimLeft(strings.TrimSpace(line), headerMarks))
		if line == "" {
			continue
		}
		for _, section := range Sections {
			if found[section.Name] {
				continue
			}
			for _, header := range section.Headers {
				if isHeaderLine(line, header) {
					found[section.Name] = true
					break
				}
			}
		}
	}

	detected := make([]string, 0, len(found))
	for _, section := range Sections {
		if found[section.Name] {
			detected = append(detected, section.Name)
		}
	}
	return detected
}

func isHeaderLine(line, header string) bool {
	if !strings.HasPrefix(line, header) {
		return false
	}
	rest := line[len(header):]
	if rest == "" {
		return true
	}

	next := []rune(rest)[0]
	if isWordRune(next) {
		return false
	}
	if strings.HasPrefix(strings.TrimLeft(rest, " \t"), ":") {
		return true
	}
	return len(strings.Fields(strings.TrimRight(line, ": \t"))) <= maxHeaderWords
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// CountActionVerbs counts every occurrence of an action verb token, case-insensitively.
func CountActionVerbs(text string) int {
	count := 0
	for _, token := range keywords.Tokenize(text) {
		if actionVerbs[token] {
			count++
		}
	}
	return count
}

// ExperienceYears returns N from the first "N years of experience" phrase, or 0.
func ExperienceYears(text string) int {
	m := experiencePattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	years, err := strconv.Atoi(m[1])
	if err != nil || years > maxExperienceYears {
		return 0
	}
	return years
}
