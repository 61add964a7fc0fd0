package matching

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/keywords"
)

const (
	sampleResume = "Led a team of 5 engineers. Built scalable APIs using Python and Docker."
	sampleJob    = "Required: Python, AWS, Docker. Nice to have: Kubernetes."
)

func TestMatch_RequiredSkills(t *testing.T) {
	m := Match(keywords.Extract(sampleResume), sampleJob)
	require.NotNil(t, m)

	assert.Equal(t, []string{"docker", "python"}, m.MatchedKeywords)
	assert.Equal(t, []string{"aws", "kubernetes", "nice", "required"}, m.MissingKeywords)
	assert.Equal(t, 33, m.MatchPercentage)
}

func TestMatch_AbsentJob(t *testing.T) {
	resume := keywords.Extract(sampleResume)

	assert.Nil(t, Match(resume, ""))
	assert.Nil(t, Match(resume, "  \n\t "))
}

func TestMatch_JobWithoutKeywords(t *testing.T) {
	m := Match(keywords.Extract(sampleResume), "the and of a")
	require.NotNil(t, m)

	assert.Zero(t, m.MatchPercentage)
	assert.NotNil(t, m.MatchedKeywords)
	assert.NotNil(t, m.MissingKeywords)
	assert.Empty(t, m.MatchedKeywords)
	assert.Empty(t, m.MissingKeywords)
}

func TestMatch_ContainmentEitherDirection(t *testing.T) {
	resume := keywords.KeywordSet{"kubernetes", "microservices"}
	job := keywords.KeywordSet{"kube", "microservice", "terraform"}

	m := MatchKeywords(resume, job)

	assert.Equal(t, []string{"kube", "microservice"}, m.MatchedKeywords)
	assert.Equal(t, []string{"terraform"}, m.MissingKeywords)
	assert.Equal(t, 67, m.MatchPercentage)
}

func TestMatch_FullOverlap(t *testing.T) {
	m := Match(keywords.Extract("python docker kubernetes"), "Kubernetes, Docker and Python")

	assert.Equal(t, 100, m.MatchPercentage)
	assert.Empty(t, m.MissingKeywords)
}

func TestMatch_PartitionsJobKeywords(t *testing.T) {
	jobs := []string{
		sampleJob,
		"Senior backend engineer: Go, PostgreSQL, gRPC, observability, on-call rotation.",
		"We need leadership, communication and data analysis skills.",
	}
	resume := keywords.Extract(sampleResume + " Go PostgreSQL communication")

	for _, job := range jobs {
		m := Match(resume, job)
		require.NotNil(t, m)

		union := append(append([]string{}, m.MatchedKeywords...), m.MissingKeywords...)
		sort.Strings(union)
		assert.Equal(t, []string(keywords.Extract(job)), union, "matched and missing must partition the job keywords")

		assert.True(t, sort.StringsAreSorted(m.MatchedKeywords))
		assert.True(t, sort.StringsAreSorted(m.MissingKeywords))
		assert.GreaterOrEqual(t, m.MatchPercentage, 0)
		assert.LessOrEqual(t, m.MatchPercentage, 100)
	}
}
