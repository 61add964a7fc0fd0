// Package catalog loads the read-only skill catalog used to classify resume skills.
// The default catalog is embedded at compile time; a custom catalog file may replace it.
// A Catalog is never mutated after loading and is safe for concurrent reads.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jonathan/resume-analyzer/internal/schemas"
)

// Required category names.
const (
	CategoryTechnical = "technical"
	CategorySoft      = "soft"
)

//go:embed skill_catalog.json
var defaultCatalog []byte

// Skill is a canonical skill name plus alternative spellings that count as the same skill.
type Skill struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
}

// Terms returns the canonical name followed by its aliases.
func (s Skill) Terms() []string {
	terms := make([]string, 0, len(s.Aliases)+1)
	terms = append(terms, s.Name)
	return append(terms, s.Aliases...)
}

// Category is an ordered list of skills. Order is significant: classification output follows it.
type Category struct {
	Name   string  `json:"name"`
	Skills []Skill `json:"skills"`
}

// Catalog maps category names to their skills.
type Catalog struct {
	Version    string     `json:"version,omitempty"`
	Categories []Category `json:"categories"`
}

// Category returns the category with the given name.
func (c *Catalog) Category(name string) (Category, bool) {
	for _, cat := range c.Categories {
		if cat.Name == name {
			return cat, true
		}
	}
	return Category{}, false
}

// SkillCount returns the number of canonical skills across all categories.
func (c *Catalog) SkillCount() int {
	total := 0
	for _, cat := range c.Categories {
		total += len(cat.Skills)
	}
	return total
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	cat, err := Parse(defaultCatalog)
	if err != nil {
		return nil, &ConfigError{Path: "(embedded)", Message: "default catalog is invalid", Cause: err}
	}
	return cat, nil
})

// Default returns the embedded catalog. It is parsed and validated once per process.
func Default() (*Catalog, error) {
	return loadDefault()
}

// Load reads and validates a catalog file. An empty path returns the embedded default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Message: "failed to read catalog file", Cause: err}
	}

	cat, err := Parse(data)
	if err != nil {
		return nil, &ConfigError{Path: path, Message: "catalog is invalid", Cause: err}
	}
	return cat, nil
}

// Parse validates raw catalog JSON against the skill catalog schema and checks the
// invariants the schema cannot express: both required categories exist and no term
// appears twice within a category.
func Parse(data []byte) (*Catalog, error) {
	if err := schemas.ValidateDocument(schemas.SkillCatalog, data); err != nil {
		return nil, err
	}

	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}

	if err := cat.validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Catalog) validate() error {
	seenCategories := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		if seenCategories[cat.Name] {
			return &ValidationError{Category: cat.Name, Message: "duplicate category"}
		}
		seenCategories[cat.Name] = true

		seenTerms := make(map[string]string)
		for _, skill := range cat.Skills {
			for _, term := range skill.Terms() {
				if owner, exists := seenTerms[term]; exists {
					return &ValidationError{
						Category: cat.Name,
						Message:  fmt.Sprintf("term %q is defined by both %q and %q", term, owner, skill.Name),
					}
				}
				seenTerms[term] = skill.Name
			}
		}
	}

	for _, required := range []string{CategoryTechnical, CategorySoft} {
		if !seenCategories[required] {
			return &ValidationError{Category: required, Message: "required category is missing"}
		}
	}
	return nil
}
