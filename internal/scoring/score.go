// Package scoring computes the deterministic 0-100 career readiness score.
package scoring

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/career-navigator/internal/types"
)

// Score weights and caps
const (
	maxExperiencePoints = 25.0
	pointsPerYear       = 3.0
	maxSkillPoints      = 25.0
	pointsPerSkill      = 2.0
	educationPoints     = 10.0
	advancedDegreeBonus = 5.0
	maxCertPoints       = 10.0
	pointsPerCert       = 3.0
	maxCriticalPenalty  = 15.0
	penaltyPerCritical  = 5.0
	summaryPoints       = 8.0
	summaryMinLength    = 100
	linkedInPoints      = 5.0
	experiencePoints    = 7.0
	experienceMinCount  = 3
	projectPoints       = 5.0
)

// Breakdown holds the contribution of each score component before clamping
type Breakdown struct {
	Experience     float64 `json:"experience"`
	Skills         float64 `json:"skills"`
	Education      float64 `json:"education"`
	Certifications float64 `json:"certifications"`
	CriticalGaps   float64 `json:"critical_gaps"`
	Summary        float64 `json:"summary"`
	LinkedIn       float64 `json:"linkedin"`
	ExperienceList float64 `json:"experience_list"`
	Projects       float64 `json:"projects"`
}

// Total is the unclamped sum of all components
func (b Breakdown) Total() float64 {
	return b.Experience + b.Skills + b.Education + b.Certifications - b.CriticalGaps +
		b.Summary + b.LinkedIn + b.ExperienceList + b.Projects
}

// Score returns the career readiness score in [0, 100]
func Score(p *types.CareerProfile, gaps []types.SkillGap, years float64) int {
	return Clamp(Compute(p, gaps, years).Total())
}

// Compute returns the per-component contributions for a profile
func Compute(p *types.CareerProfile, gaps []types.SkillGap, years float64) Breakdown {
	if p == nil {
		p = &types.CareerProfile{}
	}
	if math.IsNaN(years) || years < 0 {
		years = 0
	}

	var b Breakdown
	b.Experience = math.Min(maxExperiencePoints, years*pointsPerYear)
	b.Skills = math.Min(maxSkillPoints, float64(countNonBlank(p.Skills))*pointsPerSkill)

	if len(p.Education) > 0 {
		b.Education = educationPoints
		if hasAdvancedDegree(p.Education) {
			b.Education += advancedDegreeBonus
		}
	}

	b.Certifications = math.Min(maxCertPoints, float64(len(p.Certifications))*pointsPerCert)

	critical := 0
	for _, gap := range gaps {
		if gap.Priority == types.PriorityCritical {
			critical++
		}
	}
	b.CriticalGaps = math.Min(maxCriticalPenalty, float64(critical)*penaltyPerCritical)

	if utf8.RuneCountInString(strings.TrimSpace(p.Summary)) > summaryMinLength {
		b.Summary = summaryPoints
	}
	if strings.TrimSpace(p.Contact.LinkedIn) != "" {
		b.LinkedIn = linkedInPoints
	}
	if len(p.Experience) >= experienceMinCount {
		b.ExperienceList = experiencePoints
	}
	if len(p.Projects) > 0 {
		b.Projects = projectPoints
	}

	return b
}

// Clamp rounds a raw total and bounds it to [0, 100]
func Clamp(total float64) int {
	if math.IsNaN(total) {
		return 0
	}
	return int(math.Max(0, math.Min(100, math.Round(total))))
}

func hasAdvancedDegree(education []types.Education) bool {
	for _, edu := range education {
		degree := strings.ToLower(edu.Degree)
		if strings.Contains(degree, "master") || strings.Contains(degree, "mba") {
			return true
		}
	}
	return false
}

func countNonBlank(values []string) int {
	n := 0
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			n++
		}
	}
	return n
}
