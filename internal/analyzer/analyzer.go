// Package analyzer scores a resume, optionally against a job description, and produces a
// complete AnalysisResult. It is the only entry point the CLI and HTTP layers use.
//
// Analysis is a pure function of its inputs and the catalog: it performs no I/O, does not
// log, and an Analyzer may be shared between goroutines.
package analyzer

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/catalog"
	"github.com/jonathan/resume-analyzer/internal/keywords"
	"github.com/jonathan/resume-analyzer/internal/matching"
	"github.com/jonathan/resume-analyzer/internal/recommend"
	"github.com/jonathan/resume-analyzer/internal/scoring"
	"github.com/jonathan/resume-analyzer/internal/skills"
	"github.com/jonathan/resume-analyzer/internal/structure"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Analyzer holds an immutable catalog and the matchers compiled from it.
type Analyzer struct {
	catalog    *catalog.Catalog
	classifier *skills.Classifier
}

// New creates an Analyzer over cat.
func New(cat *catalog.Catalog) (*Analyzer, error) {
	if cat == nil {
		return nil, &ComputationError{Message: "skill catalog is not loaded"}
	}
	if cat.SkillCount() == 0 {
		return nil, &ComputationError{Message: "skill catalog has no skills"}
	}
	return &Analyzer{catalog: cat, classifier: skills.NewClassifier(cat)}, nil
}

// NewDefault creates an Analyzer over the embedded catalog.
func NewDefault() (*Analyzer, error) {
	cat, err := catalog.Default()
	if err != nil {
		return nil, &ComputationError{Message: "failed to load default catalog", Cause: err}
	}
	return New(cat)
}

// Catalog returns the catalog the Analyzer was built with.
func (a *Analyzer) Catalog() *catalog.Catalog {
	return a.catalog
}

// Analyze scores resumeText. An empty or whitespace-only jobDescription means no job was
// supplied and the result carries no job analysis.
func (a *Analyzer) Analyze(resumeText, jobDescription string) (*types.AnalysisResult, error) {
	return a.AnalyzeDocument(types.Document{RawText: resumeText, JobDescription: jobDescription})
}

// AnalyzeDocument is Analyze over a Document.
func (a *Analyzer) AnalyzeDocument(doc types.Document) (*types.AnalysisResult, error) {
	if strings.TrimSpace(doc.RawText) == "" {
		return nil, &InvalidInputError{Field: "resume_text", Message: "resume text is empty"}
	}

	kws := keywords.Extract(doc.RawText)
	skillMatch := a.classifier.Classify(doc.RawText, kws)
	flags := structure.Analyze(doc.RawText)

	scores := scoring.Compose(skillMatch, flags)
	overall := scoring.Overall(scores)
	jobMatch := matching.Match(kws, doc.JobDescription)

	technical := skillMatch.Get(catalog.CategoryTechnical)
	soft := skillMatch.Get(catalog.CategorySoft)

	result := &types.AnalysisResult{
		OverallScore:     overall,
		ScoreLabel:       scoring.Label(overall),
		SubScores:        scores,
		TechnicalSkills:  technical,
		SoftSkills:       soft,
		SectionsDetected: flags.SectionsDetected,
		WordCount:        flags.WordCount,
		ActionVerbsCount: flags.ActionVerbCount,
		QuantifiedCount:  flags.QuantifiedCount,
		ExperienceYears:  flags.ExperienceYears,
		HasDates:         flags.HasDates,
		ContactInfo:      flags.Contact,
		Recommendations: recommend.Generate(recommend.Input{
			Scores:          scores,
			Flags:           flags,
			TechnicalSkills: technical,
			SoftSkills:      soft,
			Job:             jobMatch,
		}),
		JobAnalysis: jobMatch,
	}

	if err := checkBounds(result); err != nil {
		return nil, err
	}
	return result, nil
}

func checkBounds(r *types.AnalysisResult) error {
	scores := map[string]int{
		"overall_score":        r.OverallScore,
		"content_quality":      r.ContentQuality,
		"keyword_optimization": r.KeywordOptimization,
		"ats_compatibility":    r.ATSCompatibility,
		"structure_score":      r.StructureScore,
		"completeness":         r.Completeness,
	}
	if r.JobAnalysis != nil {
		scores["match_score"] = r.JobAnalysis.MatchPercentage
	}
	for name, v := range scores {
		if v < 0 || v > 100 {
			return &ComputationError{Message: fmt.Sprintf("%s out of range: %d", name, v)}
		}
	}
	return nil
}
