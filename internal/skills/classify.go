// Package skills classifies resume text against the skill catalog.
package skills

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/catalog"
	"github.com/jonathan/resume-analyzer/internal/keywords"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// wordChars is the character class that separates whole tokens, matching the keyword tokenizer.
const wordChars = `\p{L}\p{N}_`

var whitespacePattern = regexp.MustCompile(`\s+`)

// termMatcher decides whether one catalog term occurs in a resume.
type termMatcher struct {
	term    string
	phrase  bool           // term contains whitespace: substring match on normalized text
	keyword bool           // term is a plain keyword: KeywordSet membership
	pattern *regexp.Regexp // anything else: boundary-anchored scan
}

func newTermMatcher(term string) termMatcher {
	m := termMatcher{term: term}
	switch {
	case strings.ContainsAny(term, " \t\n"):
		m.phrase = true
	case keywords.IsKeyword(term):
		m.keyword = true
	default:
		m.pattern = regexp.MustCompile(`(?:^|[^` + wordChars + `])` + regexp.QuoteMeta(term) + `(?:$|[^` + wordChars + `])`)
	}
	return m
}

func (m termMatcher) matches(normalized string, kws keywords.KeywordSet) bool {
	switch {
	case m.phrase:
		return strings.Contains(normalized, m.term)
	case m.keyword:
		return kws.Contains(m.term)
	default:
		return m.pattern.MatchString(normalized)
	}
}

type skillMatcher struct {
	name  string
	terms []termMatcher
}

type categoryMatcher struct {
	name   string
	skills []skillMatcher
}

// Classifier matches text against a catalog. All matchers are built once by NewClassifier;
// a Classifier holds no mutable state and is safe for concurrent use.
type Classifier struct {
	categories []categoryMatcher
}

// NewClassifier compiles a matcher for every skill name and alias in the catalog.
func NewClassifier(cat *catalog.Catalog) *Classifier {
	c := &Classifier{categories: make([]categoryMatcher, 0, len(cat.Categories))}
	for _, category := range cat.Categories {
		cm := categoryMatcher{name: category.Name, skills: make([]skillMatcher, 0, len(category.Skills))}
		for _, skill := range category.Skills {
			sm := skillMatcher{name: skill.Name}
			for _, term := range skill.Terms() {
				sm.terms = append(sm.terms, newTermMatcher(term))
			}
			cm.skills = append(cm.skills, sm)
		}
		c.categories = append(c.categories, cm)
	}
	return c
}

// Classify returns, per catalog category, the canonical names of skills present in text.
// kws must be the KeywordSet extracted from the same text. Single-token skills match whole
// tokens only; multi-word skills match as substrings of the lower-cased text with whitespace
// collapsed, so phrases broken across lines are still found. Output follows catalog order.
func (c *Classifier) Classify(text string, kws keywords.KeywordSet) types.SkillMatch {
	normalized := Normalize(text)

	match := types.SkillMatch{Categories: make([]types.CategorySkills, 0, len(c.categories))}
	for _, category := range c.categories {
		found := make([]string, 0)
		for _, skill := range category.skills {
			for _, term := range skill.terms {
				if term.matches(normalized, kws) {
					found = append(found, skill.name)
					break
				}
			}
		}
		match.Categories = append(match.Categories, types.CategorySkills{Category: category.name, Skills: found})
	}
	return match
}

// ClassifyText extracts keywords from text and classifies it.
func (c *Classifier) ClassifyText(text string) types.SkillMatch {
	return c.Classify(text, keywords.Extract(text))
}

// Normalize lower-cases text and collapses whitespace runs to a single space.
func Normalize(text string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(strings.ToLower(text), " "))
}
