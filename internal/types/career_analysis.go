// Package types provides type definitions for structured data used throughout the career-navigator system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// CurrencySAR is the only currency salary ranges are expressed in
const CurrencySAR = "SAR"

// SalaryRange is a monthly compensation band
type SalaryRange struct {
	Min      float64 `json:"min" validate:"gte=0,ltefield=Max"`
	Max      float64 `json:"max" validate:"gte=0"`
	Currency string  `json:"currency" validate:"eq=SAR"`
}

// CareerMilestone is one step on a career path timeline
type CareerMilestone struct {
	Title        string      `json:"title" validate:"required"`
	YearsFromNow int         `json:"yearsFromNow" validate:"gte=0"`
	SalaryRange  SalaryRange `json:"salaryRange"`
	KeySkills    []string    `json:"keySkills"`
	Description  string      `json:"description"`
}

// CareerPath is a multi-year trajectory with salary progression
type CareerPath struct {
	ID                string            `json:"id" validate:"required"`
	Name              string            `json:"name" validate:"required"`
	Description       string            `json:"description"`
	Track             Track             `json:"track" validate:"oneof=technical management specialist entrepreneurial"`
	Timeline          []CareerMilestone `json:"timeline" validate:"min=1,dive"`
	SalaryProgression []float64         `json:"salaryProgression"`
	Probability       int               `json:"probability" validate:"gte=0,lte=100"`
	Requirements      []string          `json:"requirements"`
}

// LearningResource points at something that closes a skill gap
type LearningResource struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type"`
}

// SkillGap is a skill the candidate should acquire or deepen
type SkillGap struct {
	Skill                  string             `json:"skill" validate:"required"`
	CurrentLevel           SkillLevel         `json:"currentLevel" validate:"oneof=none beginner intermediate advanced expert"`
	RequiredLevel          SkillLevel         `json:"requiredLevel" validate:"oneof=beginner intermediate advanced expert"`
	Priority               Priority           `json:"priority" validate:"oneof=critical high medium low"`
	Resources              []LearningResource `json:"resources" validate:"dive"`
	EstimatedTimeToAcquire string             `json:"estimatedTimeToAcquire"`
}

// WeeklyAction is a short-term action plan item
type WeeklyAction struct {
	ID             string         `json:"id" validate:"required"`
	Title          string         `json:"title" validate:"required"`
	Description    string         `json:"description"`
	Category       ActionCategory `json:"category" validate:"oneof=skill network project learning application"`
	Priority       Priority       `json:"priority" validate:"oneof=high medium low"`
	EstimatedHours float64        `json:"estimatedHours" validate:"gte=0"`
	Completed      bool           `json:"completed"`
}

// CurrentPosition summarizes where the candidate stands today
type CurrentPosition struct {
	Title           string      `json:"title"`
	Level           Level       `json:"level" validate:"oneof=entry junior mid senior lead director executive"`
	YearsExperience float64     `json:"yearsExperience" validate:"gte=0"`
	SalaryRange     SalaryRange `json:"salaryRange"`
	MarketDemand    string      `json:"marketDemand"`
}

// IndustryInsights is market context for the candidate's focus role
type IndustryInsights struct {
	Trends         []string `json:"trends"`
	InDemandSkills []string `json:"inDemandSkills"`
	Outlook        string   `json:"outlook"`
}

// CareerAnalysis is the complete reconciled result of one analysis request
type CareerAnalysis struct {
	CurrentPosition  CurrentPosition  `json:"currentPosition"`
	CareerPaths      []CareerPath     `json:"careerPaths" validate:"min=1,dive"`
	SkillGaps        []SkillGap       `json:"skillGaps" validate:"dive"`
	Strengths        []string         `json:"strengths"`
	WeeklyActions    []WeeklyAction   `json:"weeklyActions" validate:"dive"`
	CareerScore      int              `json:"careerScore" validate:"gte=0,lte=100"`
	IndustryInsights IndustryInsights `json:"industryInsights"`
}

// Validate checks the structural invariants of a CareerAnalysis.
func (a *CareerAnalysis) Validate() error {
	validate := validator.New()
	if err := validate.Struct(a); err != nil {
		return err
	}

	for i, path := range a.CareerPaths {
		if len(path.SalaryProgression) != len(path.Timeline) {
			return fmt.Errorf("career path %d (%s): salary progression has %d entries for %d milestones",
				i, path.ID, len(path.SalaryProgression), len(path.Timeline))
		}
	}

	seen := make(map[string]bool, len(a.WeeklyActions))
	for _, action := range a.WeeklyActions {
		if seen[action.ID] {
			return fmt.Errorf("duplicate weekly action id %q", action.ID)
		}
		seen[action.ID] = true
	}

	return nil
}
