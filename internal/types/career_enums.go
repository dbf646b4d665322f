// Package types provides type definitions for structured data used throughout the career-navigator system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// Track is a broad career direction used to select fallback content
type Track string

// Track constants
const (
	TrackTechnical       Track = "technical"
	TrackManagement      Track = "management"
	TrackSpecialist      Track = "specialist"
	TrackEntrepreneurial Track = "entrepreneurial"
)

// Valid reports whether t is one of the four known tracks
func (t Track) Valid() bool {
	switch t {
	case TrackTechnical, TrackManagement, TrackSpecialist, TrackEntrepreneurial:
		return true
	}
	return false
}

// Level is a seniority level derived from years of experience
type Level string

// Level constants, ordered from least to most senior
const (
	LevelEntry     Level = "entry"
	LevelJunior    Level = "junior"
	LevelMid       Level = "mid"
	LevelSenior    Level = "senior"
	LevelLead      Level = "lead"
	LevelDirector  Level = "director"
	LevelExecutive Level = "executive"
)

// Levels lists every Level in ascending seniority
var Levels = []Level{LevelEntry, LevelJunior, LevelMid, LevelSenior, LevelLead, LevelDirector, LevelExecutive}

// Locale selects between the two supported label sets
type Locale string

// Locale constants
const (
	LocaleEnglish Locale = "en"
	LocaleArabic  Locale = "ar"
)

// ParseLocale maps a free-form locale string to a supported Locale.
// Anything that is not Arabic resolves to English.
func ParseLocale(s string) Locale {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == string(LocaleArabic) || strings.HasPrefix(s, "ar-") || strings.HasPrefix(s, "ar_") {
		return LocaleArabic
	}
	return LocaleEnglish
}

// SkillLevel is a proficiency level on a skill gap
type SkillLevel string

// SkillLevel constants
const (
	SkillLevelNone         SkillLevel = "none"
	SkillLevelBeginner     SkillLevel = "beginner"
	SkillLevelIntermediate SkillLevel = "intermediate"
	SkillLevelAdvanced     SkillLevel = "advanced"
	SkillLevelExpert       SkillLevel = "expert"
)

// Valid reports whether l is a known proficiency level
func (l SkillLevel) Valid() bool {
	switch l {
	case SkillLevelNone, SkillLevelBeginner, SkillLevelIntermediate, SkillLevelAdvanced, SkillLevelExpert:
		return true
	}
	return false
}

// Priority ranks skill gaps and weekly actions
type Priority string

// Priority constants
const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Valid reports whether p is a known priority
func (p Priority) Valid() bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ActionCategory groups weekly actions
type ActionCategory string

// ActionCategory constants
const (
	CategorySkill       ActionCategory = "skill"
	CategoryNetwork     ActionCategory = "network"
	CategoryProject     ActionCategory = "project"
	CategoryLearning    ActionCategory = "learning"
	CategoryApplication ActionCategory = "application"
)

// Valid reports whether c is a known action category
func (c ActionCategory) Valid() bool {
	switch c {
	case CategorySkill, CategoryNetwork, CategoryProject, CategoryLearning, CategoryApplication:
		return true
	}
	return false
}
