package scoring

// IndustryProfile carries the keyword sets used for industry-aware
// scoring bonuses.
type IndustryProfile struct {
	TechnicalSkills []string
	Certifications  []string
	ActionVerbs     []string
}

// industryProfiles is the supported industry catalog. Keys are the values
// accepted by the scan request's industry field.
var industryProfiles = map[string]IndustryProfile{
	"engineering": {
		TechnicalSkills: []string{
			"cad", "solidworks", "autocad", "matlab", "finite element", "fea",
			"design", "prototype", "testing", "quality assurance", "iso",
			"lean manufacturing", "six sigma", "process improvement", "r&d",
			"mechanical", "electrical", "civil", "chemical", "industrial",
		},
		Certifications: []string{
			"pe", "professional engineer", "eit", "pmp", "six sigma",
			"leed", "autocad certification", "solidworks certification",
		},
		ActionVerbs: []string{
			"designed", "engineered", "optimized", "analyzed", "tested",
			"prototyped", "developed", "improved", "automated",
		},
	},
	"it-software": {
		TechnicalSkills: []string{
			"python", "java", "javascript", "react", "node", "angular", "vue",
			"sql", "mongodb", "postgresql", "aws", "azure", "gcp", "docker",
			"kubernetes", "ci/cd", "git", "agile", "scrum", "devops",
			"machine learning", "ai", "data science", "api", "microservices",
		},
		Certifications: []string{
			"aws certified", "azure certified", "gcp certified", "cissp",
			"comptia", "certified scrum", "pmp", "ckad", "cka",
		},
		ActionVerbs: []string{
			"developed", "built", "deployed", "architected", "implemented",
			"optimized", "automated", "integrated", "migrated", "scaled",
		},
	},
	"finance": {
		TechnicalSkills: []string{
			"financial modeling", "excel", "bloomberg", "financial analysis",
			"budgeting", "forecasting", "valuation", "risk management",
			"portfolio management", "gaap", "ifrs", "sox", "compliance",
			"audit", "tax", "accounting", "quickbooks", "sap", "oracle",
		},
		Certifications: []string{
			"cpa", "cfa", "frm", "cma", "cia", "cfp", "series 7",
			"series 63", "series 65", "prm",
		},
		ActionVerbs: []string{
			"analyzed", "forecasted", "budgeted", "audited", "reconciled",
			"managed", "optimized", "evaluated", "assessed", "reported",
		},
	},
	"healthcare": {
		TechnicalSkills: []string{
			"patient care", "clinical", "diagnosis", "treatment", "emr", "ehr",
			"epic", "cerner", "meditech", "hipaa", "medical coding", "icd-10",
			"cpt", "nursing", "pharmacy", "laboratory", "radiology",
			"case management", "quality improvement", "infection control",
		},
		Certifications: []string{
			"rn", "lpn", "md", "do", "np", "pa", "cna", "cma", "rrt",
			"bls", "acls", "pals", "ccrn", "cnor", "rnfa", "cnp",
		},
		ActionVerbs: []string{
			"treated", "diagnosed", "assessed", "administered", "monitored",
			"coordinated", "educated", "documented", "evaluated", "managed",
		},
	},
}

// IndustryProfileFor returns the profile for a known industry key.
func IndustryProfileFor(industry string) (IndustryProfile, bool) {
	p, ok := industryProfiles[industry]
	return p, ok
}

// SupportedIndustries lists the accepted industry keys.
func SupportedIndustries() []string {
	return []string{"engineering", "finance", "healthcare", "it-software"}
}
