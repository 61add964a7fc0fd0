// Package scoring composes the sub-scores, overall score and score label of a resume
// from its recognized skills and structural signals.
package scoring

import (
	"math"

	"github.com/jonathan/resume-analyzer/internal/catalog"
	"github.com/jonathan/resume-analyzer/internal/structure"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Overall score weights
const (
	contentWeight      = 0.25
	keywordWeight      = 0.20
	atsWeight          = 0.25
	structureWeight    = 0.15
	completenessWeight = 0.15
)

// ATS compatibility weights
const (
	atsKeywordWeight   = 0.30
	atsContentWeight   = 0.25
	atsStructureWeight = 0.20
	atsSkillsWeight    = 0.25
)

const (
	// skillsForFullKeywordScore is the distinct skill count that earns a keyword score of 100
	skillsForFullKeywordScore = 15.0
	// targetVerbDensity is the action verb share of all words that earns full density points
	targetVerbDensity = 0.03
	maxDensityPoints  = 40
	pointsPerQuantity = 5
	maxQuantityPoints = 20
)

// Score labels, highest band first.
const (
	LabelExcellent        = "Excellent"
	LabelGood             = "Good"
	LabelNeedsImprovement = "Needs Improvement"
	LabelNeedsWork        = "Needs Significant Work"
)

// Compose computes the five sub-scores. Each is an integer in [0,100].
func Compose(skills types.SkillMatch, flags types.SectionFlags) types.SubScores {
	keyword := KeywordOptimization(skills.Total())
	content := ContentQuality(flags)
	structureScore := StructureScore(flags)

	return types.SubScores{
		ContentQuality:      content,
		KeywordOptimization: keyword,
		ATSCompatibility:    ATSCompatibility(keyword, content, structureScore, skillsPresence(skills, flags)),
		StructureScore:      structureScore,
		Completeness:        Completeness(flags),
	}
}

// Overall combines the sub-scores into the overall score.
func Overall(s types.SubScores) int {
	return clamp(contentWeight*float64(s.ContentQuality) +
		keywordWeight*float64(s.KeywordOptimization) +
		atsWeight*float64(s.ATSCompatibility) +
		structureWeight*float64(s.StructureScore) +
		completenessWeight*float64(s.Completeness))
}

// Label returns the band name for an overall score.
func Label(score int) string {
	switch {
	case score >= 80:
		return LabelExcellent
	case score >= 60:
		return LabelGood
	case score >= 40:
		return LabelNeedsImprovement
	default:
		return LabelNeedsWork
	}
}

// StructureScore is the share of the standard sections that were detected.
func StructureScore(flags types.SectionFlags) int {
	return clamp(100 * float64(len(flags.SectionsDetected)) / float64(len(structure.Sections)))
}

// KeywordOptimization grows with the number of distinct recognized skills and saturates at 100.
func KeywordOptimization(distinctSkills int) int {
	return clamp(100 * float64(distinctSkills) / skillsForFullKeywordScore)
}

// ContentQuality rewards a moderate length, dense action verbs and quantified achievements.
func ContentQuality(flags types.SectionFlags) int {
	points := lengthPoints(flags.WordCount)

	if flags.WordCount > 0 {
		density := float64(flags.ActionVerbCount) / float64(flags.WordCount)
		points += min(maxDensityPoints, int(math.Round(maxDensityPoints*density/targetVerbDensity)))
	}

	points += min(maxQuantityPoints, pointsPerQuantity*flags.QuantifiedCount)
	return clamp(float64(points))
}

func lengthPoints(words int) int {
	switch {
	case words >= 300 && words <= 800:
		return 40
	case (words >= 200 && words < 300) || (words > 800 && words <= 1000):
		return 30
	case (words >= 100 && words < 200) || (words > 1000 && words <= 1500):
		return 20
	default:
		return 10
	}
}

// Completeness rewards enough content plus the presence of a summary, contact details and history.
func Completeness(flags types.SectionFlags) int {
	points := 0
	switch {
	case flags.WordCount >= 300:
		points += 50
	case flags.WordCount >= 200:
		points += 40
	case flags.WordCount >= 100:
		points += 30
	case flags.WordCount >= 50:
		points += 15
	}

	if flags.HasSection("summary") {
		points += 15
	}
	if flags.Contact.HasEmail {
		points += 15
	}
	if flags.Contact.HasPhone {
		points += 10
	}
	if flags.HasSection("experience") || flags.HasSection("education") {
		points += 10
	}
	return clamp(float64(points))
}

// ATSCompatibility estimates how well an applicant tracking system can parse the resume.
func ATSCompatibility(keyword, content, structureScore, skillsPresence int) int {
	return clamp(atsKeywordWeight*float64(keyword) +
		atsContentWeight*float64(content) +
		atsStructureWeight*float64(structureScore) +
		atsSkillsWeight*float64(skillsPresence))
}

func skillsPresence(skills types.SkillMatch, flags types.SectionFlags) int {
	points := 0
	if flags.HasSection("skills") {
		points += 50
	}
	if len(skills.Get(catalog.CategoryTechnical)) > 0 {
		points += 25
	}
	if len(skills.Get(catalog.CategorySoft)) > 0 {
		points += 25
	}
	return points
}

// clamp rounds v half away from zero and bounds it to [0,100].
func clamp(v float64) int {
	r := int(math.Round(v))
	switch {
	case r < 0:
		return 0
	case r > 100:
		return 100
	default:
		return r
	}
}
