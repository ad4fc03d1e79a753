package parser

import "strings"

// skillTaxonomy assigns well-known skills to a category. Lookup happens on
// the lowercased skill name; skills outside the table stay uncategorized,
// which the scoring side treats as a coverage gap rather than an error.
var skillTaxonomy = map[string]string{
	// Programming languages
	"python": "programming", "java": "programming", "javascript": "programming",
	"typescript": "programming", "go": "programming", "golang": "programming",
	"c": "programming", "c++": "programming", "c#": "programming",
	"ruby": "programming", "php": "programming", "swift": "programming",
	"kotlin": "programming", "rust": "programming", "scala": "programming",
	"r": "programming", "matlab": "programming", "perl": "programming",
	"objective-c": "programming", "dart": "programming",

	// Web
	"html": "web", "css": "web", "react": "web", "angular": "web",
	"vue": "web", "vue.js": "web", "node.js": "web", "nodejs": "web",
	"express": "web", "django": "web", "flask": "web", "fastapi": "web",
	"spring": "web", "spring boot": "web", "rails": "web",
	"next.js": "web", "graphql": "web", "rest": "web", "rest api": "web",

	// Databases
	"sql": "databases", "mysql": "databases", "postgresql": "databases",
	"postgres": "databases", "mongodb": "databases", "redis": "databases",
	"sqlite": "databases", "oracle": "databases", "cassandra": "databases",
	"elasticsearch": "databases", "dynamodb": "databases",

	// Cloud & infrastructure
	"aws": "cloud", "azure": "cloud", "gcp": "cloud",
	"google cloud": "cloud", "docker": "cloud", "kubernetes": "cloud",
	"terraform": "cloud", "ansible": "cloud", "jenkins": "cloud",
	"ci/cd": "cloud", "linux": "cloud", "git": "cloud",
	"github actions": "cloud", "serverless": "cloud",

	// Data & analytics
	"machine learning": "data", "deep learning": "data", "pandas": "data",
	"numpy": "data", "tensorflow": "data", "pytorch": "data",
	"scikit-learn": "data", "spark": "data", "hadoop": "data",
	"tableau": "data", "power bi": "data", "excel": "data",
	"data analysis": "data", "statistics": "data", "etl": "data",

	// Soft skills
	"leadership": "soft", "communication": "soft", "teamwork": "soft",
	"problem solving": "soft", "project management": "soft",
	"time management": "soft", "critical thinking": "soft",
	"collaboration": "soft", "mentoring": "soft", "agile": "soft",
	"scrum": "soft", "negotiation": "soft", "public speaking": "soft",
}

// categorizeSkill returns the taxonomy category for a skill, or "" when the
// skill is unknown.
func categorizeSkill(name string) string {
	return skillTaxonomy[strings.ToLower(strings.TrimSpace(name))]
}
