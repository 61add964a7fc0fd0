// Package keywords tokenizes free text into normalized keyword sets.
package keywords

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// minKeywordLength is the shortest token (in runes) kept as a keyword; shorter tokens are noise.
const minKeywordLength = 3

// wordPattern matches maximal runs of letters, digits and underscores.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// stopwords are dropped from every KeywordSet
var stopwords = map[string]bool{
	"the": true, "and": true, "or": true, "is": true, "are": true, "was": true,
	"be": true, "have": true, "has": true, "do": true, "does": true, "in": true,
	"on": true, "at": true, "to": true, "for": true, "of": true, "with": true,
	"by": true, "from": true, "you": true, "your": true, "this": true, "that": true,
	"it": true, "a": true, "an": true,
}

// KeywordSet is a sorted, deduplicated set of lower-case keywords.
type KeywordSet []string

// Contains reports whether word is in the set. word must already be lower-case.
func (ks KeywordSet) Contains(word string) bool {
	i := sort.SearchStrings(ks, word)
	return i < len(ks) && ks[i] == word
}

// Len returns the number of keywords in the set.
func (ks KeywordSet) Len() int {
	return len(ks)
}

// Extract lower-cases text, splits it into word tokens and returns the distinct tokens that are
// longer than two runes and not stopwords. The result is sorted, so identical input always
// yields an identical set. Empty or whitespace-only text yields an empty set.
func Extract(text string) KeywordSet {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return KeywordSet{}
	}

	seen := make(map[string]bool, len(tokens))
	result := make(KeywordSet, 0, len(tokens))
	for _, token := range tokens {
		if utf8.RuneCountInString(token) < minKeywordLength || isStopword(token) {
			continue
		}
		if seen[token] {
			continue
		}
		seen[token] = true
		result = append(result, token)
	}

	sort.Strings(result)
	return result
}

// Tokenize returns every word token of the lower-cased text in order of appearance,
// including duplicates, short tokens and stopwords.
func Tokenize(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// isStopword reports whether the lower-case token is a stopword.
func isStopword(token string) bool {
	return stopwords[token]
}

// IsKeyword reports whether a lower-case token would survive extraction.
func IsKeyword(token string) bool {
	return utf8.RuneCountInString(token) >= minKeywordLength && !isStopword(token) &&
		wordPattern.FindString(token) == token
}
