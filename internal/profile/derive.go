// Package profile derives experience length, seniority level and current role
// from a CareerProfile's employment history.
package profile

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/jonathan/career-navigator/internal/types"
)

// layouts tried before falling back to dateparse
var layouts = []string{
	"2006-01-02",
	"2006-01",
	"2006",
	"01/2006",
	"Jan 2006",
	"January 2006",
	time.RFC3339,
}

// openEnded are end-date values that mean "still employed"
var openEnded = map[string]bool{
	"present":  true,
	"current":  true,
	"now":      true,
	"ongoing":  true,
	"الآن":     true,
	"حتى الآن": true,
	"حاليا":    true,
}

// ParseDate parses a resume date. It returns false for empty, open-ended or
// unparseable values; callers treat those as absent.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || openEnded[strings.ToLower(s)] {
		return time.Time{}, false
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// YearsExperience sums the month span of every entry with a parseable start
// date. An entry marked current, or without a parseable end date, runs until
// now. The result is rounded to one decimal.
func YearsExperience(experience []types.Experience, now time.Time) float64 {
	months := 0
	for _, exp := range experience {
		start, ok := ParseDate(exp.StartDate)
		if !ok {
			continue
		}
		end := now
		if !exp.Current {
			if parsed, ok := ParseDate(exp.EndDate); ok {
				end = parsed
			}
		}
		months += monthsBetween(start, end)
	}
	return math.Round(float64(months)/12*10) / 10
}

func monthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if months < 0 {
		return 0
	}
	return months
}

// LevelForYears maps years of experience to a seniority level.
func LevelForYears(years float64) types.Level {
	switch {
	case years < 1:
		return types.LevelEntry
	case years < 2:
		return types.LevelJunior
	case years < 5:
		return types.LevelMid
	case years < 8:
		return types.LevelSenior
	case years < 12:
		return types.LevelLead
	case years < 18:
		return types.LevelDirector
	default:
		return types.LevelExecutive
	}
}

// CurrentRole picks the role the candidate holds today: a current entry with a
// position, else the most recently started entry, else the first entry with a
// position, else the target role, else genericLabel.
func CurrentRole(p *types.CareerProfile, genericLabel string) string {
	if p == nil {
		return genericLabel
	}

	for _, exp := range p.Experience {
		if exp.Current && strings.TrimSpace(exp.Position) != "" {
			return strings.TrimSpace(exp.Position)
		}
	}

	var latest string
	var latestStart time.Time
	for _, exp := range p.Experience {
		position := strings.TrimSpace(exp.Position)
		if position == "" {
			continue
		}
		if start, ok := ParseDate(exp.StartDate); ok && (latest == "" || start.After(latestStart)) {
			latest, latestStart = position, start
		}
	}
	if latest != "" {
		return latest
	}

	for _, exp := range p.Experience {
		if position := strings.TrimSpace(exp.Position); position != "" {
			return position
		}
	}

	if target := strings.TrimSpace(p.TargetRole); target != "" {
		return target
	}
	return genericLabel
}

// RecentHighlights returns up to n entries, newest first: current entries lead,
// then entries by start date descending, with unparseable dates last.
// The input slice is not modified.
func RecentHighlights(experience []types.Experience, n int) []types.Experience {
	type dated struct {
		exp   types.Experience
		start time.Time
		ok    bool
	}

	entries := make([]dated, len(experience))
	for i, exp := range experience {
		start, ok := ParseDate(exp.StartDate)
		entries[i] = dated{exp: exp, start: start, ok: ok}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.exp.Current != b.exp.Current {
			return a.exp.Current
		}
		if a.ok != b.ok {
			return a.ok
		}
		return a.start.After(b.start)
	})

	if n < 0 {
		n = 0
	}
	if len(entries) > n {
		entries = entries[:n]
	}

	out := make([]types.Experience, len(entries))
	for i, e := range entries {
		out[i] = e.exp
	}
	return out
}
