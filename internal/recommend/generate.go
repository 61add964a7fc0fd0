// Package recommend turns scores and structural signals into ordered, human-readable advice.
package recommend

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/structure"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Thresholds below which a rule fires.
const (
	keywordThreshold      = 60
	structureThreshold    = 70
	contentThreshold      = 60
	completenessThreshold = 60
	jobMatchThreshold     = 60

	minQuantified      = 3
	minWordsForExpand  = 200
	maxMissingKeywords = 5
)

// Input carries everything the generator looks at.
type Input struct {
	Scores          types.SubScores
	Flags           types.SectionFlags
	TechnicalSkills []string
	SoftSkills      []string

	// Job is nil when no job description was supplied.
	Job *types.JobMatch
}

type rule func(in Input) []string

// rules run in priority order.
var rules = []rule{
	keywordRule,
	structureRule,
	contentRule,
	completenessRule,
	softSkillsRule,
	missingKeywordsRule,
	jobAlignmentRule,
}

// Generate returns recommendations in rule priority order. The result is never nil
// and is empty when no rule fires.
func Generate(in Input) []string {
	recs := []string{}
	for _, r := range rules {
		recs = append(recs, r(in)...)
	}
	return recs
}

func keywordRule(in Input) []string {
	if in.Scores.KeywordOptimization >= keywordThreshold {
		return nil
	}
	recognized := len(in.TechnicalSkills) + len(in.SoftSkills)
	return []string{fmt.Sprintf(
		"Add more role-relevant skills and tools: only %d recognized %s found.",
		recognized, plural(recognized, "skill was", "skills were"),
	)}
}

func structureRule(in Input) []string {
	if in.Scores.StructureScore >= structureThreshold {
		return nil
	}
	missing := MissingSections(in.Flags)
	if len(missing) == 0 {
		return nil
	}
	return []string{fmt.Sprintf("Add the missing sections: %s.", strings.Join(missing, ", "))}
}

func contentRule(in Input) []string {
	if in.Scores.ContentQuality >= contentThreshold {
		return nil
	}
	recs := []string{"Start bullet points with strong action verbs such as led, built or improved."}
	if in.Flags.QuantifiedCount < minQuantified {
		recs = append(recs, "Quantify achievements with numbers, percentages or dollar amounts.")
	}
	return recs
}

func completenessRule(in Input) []string {
	if in.Scores.Completeness >= completenessThreshold {
		return nil
	}
	var recs []string
	if in.Flags.WordCount < minWordsForExpand {
		recs = append(recs, fmt.Sprintf(
			"Expand the resume with more detail about your experience (currently %d words).", in.Flags.WordCount))
	}
	if missing := missingContact(in.Flags.Contact); len(missing) > 0 {
		recs = append(recs, fmt.Sprintf("Add contact details: %s.", strings.Join(missing, ", ")))
	}
	return recs
}

func softSkillsRule(in Input) []string {
	if len(in.SoftSkills) > 0 {
		return nil
	}
	return []string{"Highlight soft skills such as leadership, communication or teamwork."}
}

func missingKeywordsRule(in Input) []string {
	if in.Job == nil || len(in.Job.MissingKeywords) == 0 {
		return nil
	}
	missing := in.Job.MissingKeywords
	if len(missing) > maxMissingKeywords {
		missing = missing[:maxMissingKeywords]
	}
	return []string{fmt.Sprintf("Consider adding keywords from the job description: %s.", strings.Join(missing, ", "))}
}

func jobAlignmentRule(in Input) []string {
	if in.Job == nil || in.Job.MatchPercentage >= jobMatchThreshold {
		return nil
	}
	return []string{fmt.Sprintf(
		"Align your wording with the job description: only %d%% of its keywords appear in the resume.",
		in.Job.MatchPercentage)}
}

// MissingSections returns the standard sections not detected, in section-list order.
func MissingSections(flags types.SectionFlags) []string {
	var missing []string
	for _, s := range structure.Sections {
		if !flags.HasSection(s.Name) {
			missing = append(missing, s.Name)
		}
	}
	return missing
}

func missingContact(c types.ContactInfo) []string {
	var missing []string
	if !c.HasEmail {
		missing = append(missing, "email address")
	}
	if !c.HasPhone {
		missing = append(missing, "phone number")
	}
	if !c.HasLinkedIn {
		missing = append(missing, "LinkedIn profile")
	}
	return missing
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
