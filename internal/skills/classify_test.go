package skills

import (
	"testing"

	"github.com/jonathan/resume-analyzer/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultClassifier(t *testing.T) *Classifier {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return NewClassifier(cat)
}

func TestClassify_ScenarioTechnicalSkills(t *testing.T) {
	c := newDefaultClassifier(t)

	match := c.ClassifyText("Led a team of 5 engineers. Built scalable APIs using Python and Docker.")

	assert.Equal(t, []string{"python", "docker"}, match.Get(catalog.CategoryTechnical))
	assert.Empty(t, match.Get(catalog.CategorySoft))
}

func TestClassify_WholeWordForSingleTokens(t *testing.T) {
	c := newDefaultClassifier(t)

	match := c.ClassifyText("Frontend work in JavaScript and TypeScript")

	technical := match.Get(catalog.CategoryTechnical)
	assert.Contains(t, technical, "javascript")
	assert.Contains(t, technical, "typescript")
	assert.NotContains(t, technical, "java")
}

func TestClassify_MultiWordPhrases(t *testing.T) {
	c := newDefaultClassifier(t)

	match := c.ClassifyText("Applied Machine\nLearning to fraud detection; strong Problem Solving and attention to detail.")

	assert.Equal(t, []string{"machine learning"}, match.Get(catalog.CategoryTechnical))
	assert.Equal(t, []string{"problem solving", "attention to detail"}, match.Get(catalog.CategorySoft))
}

func TestClassify_SymbolAndShortSkills(t *testing.T) {
	c := newDefaultClassifier(t)

	match := c.ClassifyText("Languages: C++, C#, Golang. Runtime: Node.js. Pipelines: CI/CD.")

	assert.Equal(t, []string{"c++", "c#", "golang", "node.js", "ci/cd"}, match.Get(catalog.CategoryTechnical))
}

func TestClassify_AliasesMapToCanonicalName(t *testing.T) {
	c := newDefaultClassifier(t)

	match := c.ClassifyText("Go language services on k8s backed by Postgres")

	assert.Equal(t, []string{"golang", "postgresql", "kubernetes"}, match.Get(catalog.CategoryTechnical))
}

func TestClassify_CatalogOrderAndNoDuplicates(t *testing.T) {
	c := newDefaultClassifier(t)

	match := c.ClassifyText("docker Docker DOCKER python golang go")

	assert.Equal(t, []string{"python", "golang", "docker"}, match.Get(catalog.CategoryTechnical))
}

func TestClassify_EverydayWordsAreNotSkills(t *testing.T) {
	c := newDefaultClassifier(t)

	tests := []string{
		"Sales manager. Ready to go the extra mile. Will react quickly and swift to spring launches.",
		"Rust-proof angular frames shipped every spring; we go where customers go.",
	}

	for _, text := range tests {
		match := c.ClassifyText(text)
		assert.Empty(t, match.Get(catalog.CategoryTechnical), text)
	}
}

func TestClassify_QualifiedFrameworkNames(t *testing.T) {
	c := newDefaultClassifier(t)

	match := c.ClassifyText("Built SwiftUI apps, Spring Boot services, React Native clients and Rust programming tools.")

	assert.Equal(t, []string{"rust language", "swiftui", "react.js", "spring boot"}, match.Get(catalog.CategoryTechnical))
}

func TestClassify_EmptyText(t *testing.T) {
	c := newDefaultClassifier(t)

	match := c.ClassifyText("")

	require.Len(t, match.Categories, 2)
	assert.Equal(t, catalog.CategoryTechnical, match.Categories[0].Category)
	assert.NotNil(t, match.Categories[0].Skills)
	assert.Empty(t, match.Categories[0].Skills)
	assert.Equal(t, 0, match.Total())
}

func TestClassify_CustomCatalog(t *testing.T) {
	cat, err := catalog.Parse([]byte(`{"categories":[
		{"name":"technical","skills":[{"name":"cobol"},{"name":"mainframe systems"}]},
		{"name":"soft","skills":[{"name":"patience"}]}
	]}`))
	require.NoError(t, err)

	match := NewClassifier(cat).ClassifyText("Maintained COBOL on mainframe   systems with patience")

	assert.Equal(t, []string{"cobol", "mainframe systems"}, match.Get(catalog.CategoryTechnical))
	assert.Equal(t, []string{"patience"}, match.Get(catalog.CategorySoft))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "machine learning and go", Normalize("  Machine\n\tLearning   AND Go "))
	assert.Equal(t, "", Normalize("   "))
}
