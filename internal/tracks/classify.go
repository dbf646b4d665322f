// Package tracks infers a career track from a role title.
package tracks

import (
	"regexp"
	"strings"

	"github.com/jonathan/career-navigator/internal/types"
)

// rules are checked in order; the first match wins.
var rules = []struct {
	track   types.Track
	pattern *regexp.Regexp
}{
	{types.TrackManagement, regexp.MustCompile(`manager|lead|director|head|chief|مدير|قائد|رئيس`)},
	{types.TrackEntrepreneurial, regexp.MustCompile(`founder|startup|مؤسس|ريادي`)},
	{types.TrackTechnical, regexp.MustCompile(`engineer|developer|data|analyst|devops|security|مهندس|مطور|محلل|بيانات`)},
}

// Infer returns the track whose keywords appear in roleTitle, or
// TrackSpecialist when none do.
func Infer(roleTitle string) types.Track {
	title := strings.ToLower(roleTitle)
	for _, rule := range rules {
		if rule.pattern.MatchString(title) {
			return rule.track
		}
	}
	return types.TrackSpecialist
}
