package analysis

import (
	"fmt"
	"strings"

	"github.com/jonathan/career-navigator/internal/profile"
	"github.com/jonathan/career-navigator/internal/prompts"
	"github.com/jonathan/career-navigator/internal/skills"
	"github.com/jonathan/career-navigator/internal/types"
)

const (
	promptFile          = "career.json"
	promptHighlights    = 3
	promptBulletsPerJob = 3
	promptMaxSkills     = 30
	notProvided         = "not provided"
)

// promptInput is the derived context the user prompt is rendered from
type promptInput struct {
	locale   types.Locale
	role     string
	track    types.Track
	years    float64
	level    types.Level
	industry string
}

// buildPrompts renders the system and user prompts for one analysis
func buildPrompts(p *types.CareerProfile, in promptInput) (system, user string, err error) {
	system, err = prompts.GetLocalized(promptFile, "career-analysis-system", string(in.locale))
	if err != nil {
		return "", "", fmt.Errorf("failed to load system prompt: %w", err)
	}

	template, err := prompts.Get(promptFile, "career-analysis-user")
	if err != nil {
		return "", "", fmt.Errorf("failed to load user prompt: %w", err)
	}

	user = prompts.Format(template, map[string]string{
		"Role":           in.role,
		"Track":          string(in.track),
		"Years":          fmt.Sprintf("%.1f", in.years),
		"Level":          string(in.level),
		"Industry":       firstNonEmpty(in.industry, notProvided),
		"Skills":         joinOrNone(truncate(skills.Dedupe(p.Skills), promptMaxSkills)),
		"Education":      joinOrNone(educationLines(p.Education)),
		"Certifications": joinOrNone(certificationNames(p.Certifications)),
		"Projects":       joinOrNone(projectNames(p.Projects)),
		"Summary":        firstNonEmpty(p.Summary, notProvided),
		"Experience":     experienceHighlights(p.Experience),
	})
	return system, user, nil
}

func experienceHighlights(experience []types.Experience) string {
	recent := profile.RecentHighlights(experience, promptHighlights)
	if len(recent) == 0 {
		return notProvided
	}

	var sb strings.Builder
	for _, exp := range recent {
		end := firstNonEmpty(exp.EndDate, "present")
		if exp.Current {
			end = "present"
		}
		sb.WriteString(fmt.Sprintf("- %s at %s (%s to %s)\n",
			firstNonEmpty(exp.Position, "Unknown role"),
			firstNonEmpty(exp.Company, "unknown company"),
			firstNonEmpty(exp.StartDate, "unknown start"),
			end))
		for _, bullet := range truncate(nonBlank(exp.Bullets), promptBulletsPerJob) {
			sb.WriteString(fmt.Sprintf("  • %s\n", bullet))
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func educationLines(education []types.Education) []string {
	var out []string
	for _, edu := range education {
		degree, field := strings.TrimSpace(edu.Degree), strings.TrimSpace(edu.Field)
		switch {
		case degree != "" && field != "":
			out = append(out, degree+" in "+field)
		case degree != "" || field != "":
			out = append(out, degree+field)
		}
	}
	return out
}

func certificationNames(certs []types.Certification) []string {
	names := make([]string, 0, len(certs))
	for _, c := range certs {
		names = append(names, c.Name)
	}
	return nonBlank(names)
}

func projectNames(projects []types.Project) []string {
	names := make([]string, 0, len(projects))
	for _, p := range projects {
		names = append(names, p.Name)
	}
	return nonBlank(names)
}

func nonBlank(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return notProvided
	}
	return strings.Join(values, ", ")
}
