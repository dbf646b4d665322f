// Package types provides type definitions for structured data used throughout the career-navigator system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CareerProfile is the normalized resume shape an analysis is computed from.
// Every field is optional; dates are free-form strings and are parsed leniently.
type CareerProfile struct {
	TargetRole     string          `json:"targetRole,omitempty"`
	Summary        string          `json:"summary,omitempty"`
	Skills         []string        `json:"skills"`
	Education      []Education     `json:"education"`
	Certifications []Certification `json:"certifications"`
	Projects       []Project       `json:"projects"`
	Experience     []Experience    `json:"experience"`
	Contact        Contact         `json:"contact"`
}

// Education is a single degree entry
type Education struct {
	Degree string `json:"degree"`
	Field  string `json:"field"`
}

// Certification is a named professional certification
type Certification struct {
	Name string `json:"name"`
}

// Project is a named portfolio project
type Project struct {
	Name string `json:"name"`
}

// Experience is one employment interval
type Experience struct {
	Position  string   `json:"position"`
	Company   string   `json:"company"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate,omitempty"`
	Current   bool     `json:"current"`
	Bullets   []string `json:"bullets"`
}

// Contact holds the profile's public links
type Contact struct {
	LinkedIn string `json:"linkedin,omitempty"`
}
