// Package skills normalizes resume skill names so variants of the same skill
// compare equal.
package skills

import (
	"strings"
)

// aliases maps common skill name variants to canonical names
var aliases = map[string]string{
	"golang":                   "Go",
	"go lang":                  "Go",
	"javascript":               "JavaScript",
	"js":                       "JavaScript",
	"typescript":               "TypeScript",
	"ts":                       "TypeScript",
	"k8s":                      "Kubernetes",
	"kubernetes":               "Kubernetes",
	"react.js":                 "React",
	"reactjs":                  "React",
	"node.js":                  "Node.js",
	"nodejs":                   "Node.js",
	"ci/cd":                    "CI/CD",
	"cicd":                     "CI/CD",
	"ci cd":                    "CI/CD",
	"continuous integration":   "CI/CD",
	"aws":                      "Cloud Architecture",
	"azure":                    "Cloud Architecture",
	"gcp":                      "Cloud Architecture",
	"cloud computing":          "Cloud Architecture",
	"unit testing":             "Automated Testing",
	"test automation":          "Automated Testing",
	"tdd":                      "Automated Testing",
	"system architecture":      "System Design",
	"software architecture":    "System Design",
	"team management":          "People Management",
	"team leadership":          "People Management",
	"okr":                      "OKRs",
	"budget management":        "Budgeting",
	"recruiting":               "Hiring",
	"recruitment":              "Hiring",
	"data analytics":           "Data Analysis",
	"compliance":               "Regulatory Compliance",
	"project management":       "Project Coordination",
	"gtm":                      "Go-to-Market",
	"go to market":             "Go-to-Market",
	"business dev":             "Business Development",
	"bizdev":                   "Business Development",
	"إدارة المشاريع":           "Project Coordination",
	"تحليل البيانات":           "Data Analysis",
	"إدارة الفرق":              "People Management",
	"الحوسبة السحابية":         "Cloud Architecture",
	"continuous delivery":      "CI/CD",
	"stakeholder management":   "Stakeholder Communication",
	"financial modelling":      "Financial Modeling",
	"performance tuning":       "Performance Optimization",
	"application security":     "Security Best Practices",
	"mentoring":                "Technical Mentoring",
	"process optimization":     "Process Improvement",
	"customer development":     "Customer Discovery",
}

// Normalize returns the canonical form of a skill name. Known aliases map to
// their canonical name; single lowercase words are capitalized; anything else
// is returned trimmed with inner whitespace collapsed.
func Normalize(skill string) string {
	normalized := strings.Join(strings.Fields(skill), " ")
	if normalized == "" {
		return ""
	}

	lower := strings.ToLower(normalized)
	if canonical, ok := aliases[lower]; ok {
		return canonical
	}
	if strings.Contains(normalized, " ") {
		return normalized
	}

	// Acronyms and mixed case are kept as written
	if normalized != lower {
		return normalized
	}
	runes := []rune(lower)
	return strings.ToUpper(string(runes[:1])) + string(runes[1:])
}

// Key returns the comparison key of a skill: its canonical name, lowercased
func Key(skill string) string {
	return strings.ToLower(Normalize(skill))
}

// Dedupe returns the normalized, non-blank skills in their original order
// with later duplicates removed.
func Dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		canonical := Normalize(v)
		if canonical == "" {
			continue
		}
		key := strings.ToLower(canonical)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, canonical)
	}
	return out
}
