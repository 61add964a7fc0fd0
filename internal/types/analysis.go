// Package types provides type definitions for structured data used throughout the resume-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "slices"

// Document is the immutable input of one analysis. An empty JobDescription means no job was supplied.
type Document struct {
	RawText        string
	JobDescription string
}

// CategorySkills holds the skills matched for one catalog category, in catalog order.
type CategorySkills struct {
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
}

// SkillMatch is the result of classifying a resume against the skill catalog.
// Categories appear in catalog order.
type SkillMatch struct {
	Categories []CategorySkills `json:"categories"`
}

// Get returns the matched skills of a category, or an empty slice when the category is unknown.
func (m SkillMatch) Get(category string) []string {
	for _, c := range m.Categories {
		if c.Category == category {
			return c.Skills
		}
	}
	return []string{}
}

// Total returns the number of distinct skills matched across all categories.
func (m SkillMatch) Total() int {
	seen := make(map[string]bool)
	for _, c := range m.Categories {
		for _, s := range c.Skills {
			seen[s] = true
		}
	}
	return len(seen)
}

// ContactInfo records which contact details appear in the resume.
type ContactInfo struct {
	HasEmail    bool `json:"has_email"`
	HasPhone    bool `json:"has_phone"`
	HasLinkedIn bool `json:"has_linkedin"`
}

// SectionFlags holds the structural signals of a resume.
type SectionFlags struct {
	SectionsDetected []string    `json:"sections_detected"`
	WordCount        int         `json:"word_count"`
	ActionVerbCount  int         `json:"action_verbs_count"`
	QuantifiedCount  int         `json:"quantified_achievements"`
	ExperienceYears  int         `json:"experience_years"`
	HasDates         bool        `json:"has_dates"`
	Contact          ContactInfo `json:"contact_info"`
}

// HasSection reports whether the named section was detected.
func (f SectionFlags) HasSection(name string) bool {
	return slices.Contains(f.SectionsDetected, name)
}

// SubScores are the five independent score facets, each in [0,100].
type SubScores struct {
	ContentQuality      int `json:"content_quality"`
	KeywordOptimization int `json:"keyword_optimization"`
	ATSCompatibility    int `json:"ats_compatibility"`
	StructureScore      int `json:"structure_score"`
	Completeness        int `json:"completeness"`
}

// JobMatch is the overlap between resume keywords and job description keywords.
// MatchedKeywords and MissingKeywords are disjoint and together form the job's keyword set.
type JobMatch struct {
	MatchPercentage int      `json:"match_score"`
	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
}

// AnalysisResult is the structured output of one analysis.
// JobAnalysis is nil, and omitted from JSON, when no job description was supplied.
type AnalysisResult struct {
	OverallScore int    `json:"overall_score"`
	ScoreLabel   string `json:"score_label"`
	SubScores

	TechnicalSkills []string `json:"technical_skills"`
	SoftSkills      []string `json:"soft_skills"`

	SectionsDetected []string    `json:"sections_detected"`
	WordCount        int         `json:"word_count"`
	ActionVerbsCount int         `json:"action_verbs_count"`
	QuantifiedCount  int         `json:"quantified_achievements"`
	ExperienceYears  int         `json:"experience_years"`
	HasDates         bool        `json:"has_dates"`
	ContactInfo      ContactInfo `json:"contact_info"`

	Recommendations []string  `json:"recommendations"`
	JobAnalysis     *JobMatch `json:"job_analysis,omitempty"`
}
