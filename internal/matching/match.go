// Package matching compares resume keywords with the keywords of a job description.
package matching

import (
	"math"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/keywords"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Match computes the overlap between resume keywords and the keywords of jobText.
// It returns nil when jobText is empty or whitespace only.
//
// A job keyword counts as matched when it and some resume keyword contain one another
// in either direction, so "microservice" matches "microservices".
func Match(resume keywords.KeywordSet, jobText string) *types.JobMatch {
	if strings.TrimSpace(jobText) == "" {
		return nil
	}
	return MatchKeywords(resume, keywords.Extract(jobText))
}

// MatchKeywords partitions job into matched and missing keywords. Both lists are sorted and non-nil.
func MatchKeywords(resume, job keywords.KeywordSet) *types.JobMatch {
	result := &types.JobMatch{
		MatchedKeywords: []string{},
		MissingKeywords: []string{},
	}

	for _, k := range job {
		if resume.Contains(k) || containsEither(resume, k) {
			result.MatchedKeywords = append(result.MatchedKeywords, k)
		} else {
			result.MissingKeywords = append(result.MissingKeywords, k)
		}
	}

	if len(job) > 0 {
		result.MatchPercentage = int(math.Round(100 * float64(len(result.MatchedKeywords)) / float64(len(job))))
	}
	return result
}

func containsEither(resume keywords.KeywordSet, k string) bool {
	for _, r := range resume {
		if strings.Contains(r, k) || strings.Contains(k, r) {
			return true
		}
	}
	return false
}
