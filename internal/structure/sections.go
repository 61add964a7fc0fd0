package structure

// Section is a standard resume section and the header spellings that introduce it.
type Section struct {
	Name    string
	Headers []string
}

// Sections is the fixed section list. Its order is the order of SectionsDetected.
var Sections = []Section{
	{Name: "summary", Headers: []string{
		"summary", "professional summary", "career summary", "profile", "professional profile",
		"objective", "career objective", "about me",
	}},
	{Name: "experience", Headers: []string{
		"experience", "work experience", "professional experience", "employment history",
		"employment", "work history", "career history",
	}},
	{Name: "education", Headers: []string{
		"education", "academic background", "academic history",
	}},
	{Name: "skills", Headers: []string{
		"skills", "technical skills", "core competencies", "competencies", "key skills",
	}},
	{Name: "projects", Headers: []string{
		"projects", "personal projects", "key projects",
	}},
	{Name: "certifications", Headers: []string{
		"certifications", "certification", "certificates", "licenses", "licenses and certifications",
	}},
}

// SectionNames returns the names of the fixed sections in order.
func SectionNames() []string {
	names := make([]string, len(Sections))
	for i, s := range Sections {
		names[i] = s.Name
	}
	return names
}

// actionVerbs are counted wherever they occur; every occurrence counts.
var actionVerbs = map[string]bool{
	"achieved": true, "analyzed": true, "architected": true, "built": true,
	"collaborated": true, "coordinated": true, "created": true, "delivered": true,
	"designed": true, "developed": true, "engineered": true, "established": true,
	"founded": true, "implemented": true, "improved": true, "increased": true,
	"launched": true, "led": true, "managed": true, "mentored": true,
	"optimized": true, "presented": true, "reduced": true, "scaled": true,
	"shipped": true, "spearheaded": true, "streamlined": true, "supervised": true,
	"trained": true, "transformed": true,
}

// IsActionVerb reports whether the lower-case token is a counted action verb.
func IsActionVerb(token string) bool {
	return actionVerbs[token]
}
