// Package fallback produces deterministic career content from a profile alone.
// Everything it returns is complete and valid on its own, so the analysis
// engine can fall back to it field by field when generative output is missing.
package fallback

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/career-navigator/internal/prompts"
	"github.com/jonathan/career-navigator/internal/salary"
	"github.com/jonathan/career-navigator/internal/skills"
	"github.com/jonathan/career-navigator/internal/types"
)

const (
	maxSkillGaps    = 3
	actionCount     = 3
	inDemandSkills  = 5
	milestoneSkills = 3
)

//go:embed taxonomy.json
var taxonomyJSON []byte

//go:embed templates.json
var templatesJSON []byte

type trackTaxonomy struct {
	Skills       []string `json:"skills"`
	Requirements []string `json:"requirements"`
}

type milestoneTemplate struct {
	Title        string `json:"title"`
	YearsFromNow int    `json:"years_from_now"`
	Description  string `json:"description"`
}

type pathTemplate struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Probability int                 `json:"probability"`
	Milestones  []milestoneTemplate `json:"milestones"`
}

type actionTemplate struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Category    types.ActionCategory `json:"category"`
}

type localeTemplates struct {
	GenericRole     string                    `json:"generic_role"`
	DefaultIndustry string                    `json:"default_industry"`
	TrackNames      map[types.Track]string    `json:"track_names"`
	GrowthPath      pathTemplate              `json:"growth_path"`
	LeadershipPath  pathTemplate              `json:"leadership_path"`
	AdvisoryPath    pathTemplate              `json:"advisory_path"`
	Strengths       []string                  `json:"strengths"`
	GapResources    []types.LearningResource  `json:"gap_resources"`
	GapTime         map[types.Priority]string `json:"gap_time"`
	Actions         []actionTemplate          `json:"actions"`
	Insights        insightTemplate           `json:"insights"`
}

type insightTemplate struct {
	Trends  map[types.Track][]string `json:"trends"`
	Outlook string                   `json:"outlook"`
}

var (
	taxonomy  = mustDecode[map[types.Track]trackTaxonomy]("taxonomy.json", taxonomyJSON)
	templates = mustDecode[map[types.Locale]*localeTemplates]("templates.json", templatesJSON)
)

func mustDecode[T any](name string, data []byte) T {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		panic(fmt.Sprintf("failed to parse %s: %v", name, err))
	}
	return v
}

// seniorityPrefixes are stripped from a role before it is placed in a template
var seniorityPrefixes = []string{"senior ", "sr. ", "sr ", "junior ", "jr. ", "jr ", "lead ", "principal ", "staff "}

// Generator builds fallback content for one locale. It holds no per-request
// state and is safe for concurrent use.
type Generator struct {
	locale types.Locale
	tpl    *localeTemplates
	table  *salary.Table
}

// New returns a generator for locale. Unsupported locales use English.
// A nil table prices milestones with the embedded salary table.
func New(locale types.Locale, table *salary.Table) *Generator {
	tpl, ok := templates[locale]
	if !ok {
		locale = types.LocaleEnglish
		tpl = templates[locale]
	}
	if table == nil {
		table = salary.Default()
	}
	return &Generator{locale: locale, tpl: tpl, table: table}
}

// Locale returns the locale whose templates the generator uses
func (g *Generator) Locale() types.Locale {
	return g.locale
}

// GenericRole is the label used when a profile names no role at all
func (g *Generator) GenericRole() string {
	return g.tpl.GenericRole
}

// Skills returns the canonical skills of a track
func Skills(track types.Track) []string {
	return append([]string(nil), taxonomyFor(track).Skills...)
}

// Paths returns two career paths for role. The first deepens the inferred
// track; the second moves into management, or into specialist advisory work
// when the role is already on the management track.
func (g *Generator) Paths(role string, track types.Track) []types.CareerPath {
	if !track.Valid() {
		track = types.TrackSpecialist
	}
	base := g.roleLabel(role)

	paths := []types.CareerPath{g.path(g.tpl.GrowthPath, base, track)}
	if track == types.TrackManagement {
		paths = append(paths, g.path(g.tpl.AdvisoryPath, base, types.TrackSpecialist))
	} else {
		paths = append(paths, g.path(g.tpl.LeadershipPath, base, types.TrackManagement))
	}
	return paths
}

func (g *Generator) path(tpl pathTemplate, role string, track types.Track) types.CareerPath {
	vars := map[string]string{
		"Role":      role,
		"TrackName": g.trackName(track),
	}
	canonical := taxonomyFor(track).Skills

	timeline := make([]types.CareerMilestone, len(tpl.Milestones))
	progression := make([]float64, len(tpl.Milestones))
	for j, m := range tpl.Milestones {
		title := prompts.Format(m.Title, vars)
		rng := g.table.Lookup(title, salary.LevelForIndex(j))
		timeline[j] = types.CareerMilestone{
			Title:        title,
			YearsFromNow: m.YearsFromNow,
			SalaryRange:  rng,
			KeySkills:    window(canonical, j*milestoneSkills, milestoneSkills),
			Description:  prompts.Format(m.Description, vars),
		}
		progression[j] = salary.Midpoint(rng)
	}

	return types.CareerPath{
		ID:                tpl.ID + "-" + string(track),
		Name:              prompts.Format(tpl.Name, vars),
		Description:       prompts.Format(tpl.Description, vars),
		Track:             track,
		Timeline:          timeline,
		SalaryProgression: progression,
		Probability:       tpl.Probability,
		Requirements:      append([]string(nil), taxonomyFor(track).Requirements...),
	}
}

// SkillGaps returns up to three canonical track skills missing from the
// resume, compared by canonical skill name. The first gap is high priority. When
// the resume already covers every canonical skill, a single mastery gap on the
// track's first skill is returned instead.
func (g *Generator) SkillGaps(resumeSkills []string, track types.Track) []types.SkillGap {
	have := make(map[string]bool, len(resumeSkills))
	for _, s := range resumeSkills {
		if key := skills.Key(s); key != "" {
			have[key] = true
		}
	}

	canonical := taxonomyFor(track).Skills
	var gaps []types.SkillGap
	for _, skill := range canonical {
		if have[skills.Key(skill)] {
			continue
		}
		if len(gaps) == 0 {
			gaps = append(gaps, g.gap(skill, types.PriorityHigh, types.SkillLevelNone, types.SkillLevelAdvanced))
		} else {
			gaps = append(gaps, g.gap(skill, types.PriorityMedium, types.SkillLevelNone, types.SkillLevelIntermediate))
		}
		if len(gaps) == maxSkillGaps {
			break
		}
	}

	if len(gaps) == 0 {
		gaps = append(gaps, g.gap(canonical[0], types.PriorityHigh, types.SkillLevelIntermediate, types.SkillLevelExpert))
	}
	return gaps
}

func (g *Generator) gap(skill string, priority types.Priority, current, required types.SkillLevel) types.SkillGap {
	vars := map[string]string{"Skill": skill}
	resources := make([]types.LearningResource, len(g.tpl.GapResources))
	for i, r := range g.tpl.GapResources {
		resources[i] = types.LearningResource{Name: prompts.Format(r.Name, vars), Type: r.Type}
	}
	return types.SkillGap{
		Skill:                  skill,
		CurrentLevel:           current,
		RequiredLevel:          required,
		Priority:               priority,
		Resources:              resources,
		EstimatedTimeToAcquire: g.GapTime(priority),
	}
}

// GapTime returns the estimated time to close a gap of the given priority.
// Priorities without their own estimate use the medium one.
func (g *Generator) GapTime(priority types.Priority) string {
	if t, ok := g.tpl.GapTime[priority]; ok {
		return t
	}
	return g.tpl.GapTime[types.PriorityMedium]
}

// Strengths returns the first three resume skills, or the locale's default
// triad when the resume lists fewer than three.
func (g *Generator) Strengths(resumeSkills []string) []string {
	var top []string
	for _, s := range resumeSkills {
		if s = strings.TrimSpace(s); s != "" {
			top = append(top, s)
		}
		if len(top) == 3 {
			return top
		}
	}
	return append([]string(nil), g.tpl.Strengths...)
}

// WeeklyActions returns the three template actions for role. skill is the
// skill the first action focuses on; an empty skill uses the role itself.
func (g *Generator) WeeklyActions(role, skill string) []types.WeeklyAction {
	role = g.roleLabel(role)
	if strings.TrimSpace(skill) == "" {
		skill = role
	}
	vars := map[string]string{"Role": role, "Skill": skill}

	actions := make([]types.WeeklyAction, 0, actionCount)
	for i, tpl := range g.tpl.Actions[:actionCount] {
		priority, hours := types.PriorityMedium, 1.0
		if i == 0 {
			priority, hours = types.PriorityHigh, 2.0
		}
		actions = append(actions, types.WeeklyAction{
			ID:             ActionID(i + 1),
			Title:          prompts.Format(tpl.Title, vars),
			Description:    prompts.Format(tpl.Description, vars),
			Category:       tpl.Category,
			Priority:       priority,
			EstimatedHours: hours,
		})
	}
	return actions
}

// ActionID formats the n-th weekly action id
func ActionID(n int) string {
	return "action-" + strconv.Itoa(n)
}

// Insights returns market context for role on track. An empty industry uses
// the locale's generic wording.
func (g *Generator) Insights(role, industry string, track types.Track) types.IndustryInsights {
	if strings.TrimSpace(industry) == "" {
		industry = g.tpl.DefaultIndustry
	}
	if !track.Valid() {
		track = types.TrackSpecialist
	}

	canonical := taxonomyFor(track).Skills
	if len(canonical) > inDemandSkills {
		canonical = canonical[:inDemandSkills]
	}

	return types.IndustryInsights{
		Trends:         append([]string(nil), g.tpl.Insights.Trends[track]...),
		InDemandSkills: append([]string(nil), canonical...),
		Outlook: prompts.Format(g.tpl.Insights.Outlook, map[string]string{
			"Role":     g.roleLabel(role),
			"Industry": strings.TrimSpace(industry),
		}),
	}
}

// roleLabel is role without its seniority prefix, or the generic label
func (g *Generator) roleLabel(role string) string {
	if base := baseRole(role); base != "" {
		return base
	}
	return g.tpl.GenericRole
}

func (g *Generator) trackName(track types.Track) string {
	if name, ok := g.tpl.TrackNames[track]; ok {
		return name
	}
	return string(track)
}

func taxonomyFor(track types.Track) trackTaxonomy {
	if t, ok := taxonomy[track]; ok {
		return t
	}
	return taxonomy[types.TrackSpecialist]
}

// window returns n items of list starting at offset, wrapping around
func window(list []string, offset, n int) []string {
	if len(list) == 0 {
		return []string{}
	}
	if n > len(list) {
		n = len(list)
	}
	out := make([]string, n)
	for i := range out {
		out[i] = list[(offset+i)%len(list)]
	}
	return out
}

// baseRole strips a leading seniority word so templates can add their own
func baseRole(role string) string {
	role = strings.Join(strings.Fields(role), " ")
	lower := strings.ToLower(role)
	for _, prefix := range seniorityPrefixes {
		if strings.HasPrefix(lower, prefix) && len(role) > len(prefix) {
			return role[len(prefix):]
		}
	}
	return role
}

