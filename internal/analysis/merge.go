package analysis

import (
	"math"
	"strconv"

	"github.com/jonathan/career-navigator/internal/fallback"
	"github.com/jonathan/career-navigator/internal/salary"
	"github.com/jonathan/career-navigator/internal/types"
)

// Output bounds applied to generative arrays
const (
	maxPaths      = 4
	maxMilestones = 6
	maxListItems  = 8
	maxSkillGaps  = 8
	maxResources  = 5
	maxStrengths  = 8
	maxActions    = 7
)

const (
	defaultProbability  = 60
	defaultYearsFromNow = 1
	defaultActionHours  = 1.0
)

// reconciler merges one generative document with fallback content. It
// records every field that fell back so callers can log and count them.
type reconciler struct {
	gen       *fallback.Generator
	table     *salary.Table
	focusRole string
	fellBack  []string
}

func (r *reconciler) note(field string) {
	r.fellBack = append(r.fellBack, field)
}

// careerPaths merges generative paths with fb by position. With no usable
// generative paths, the fallback paths are used as they are.
func (r *reconciler) careerPaths(raw any, fb []types.CareerPath) []types.CareerPath {
	docs := truncate(objects(raw), maxPaths)
	if len(docs) == 0 {
		r.note("careerPaths")
		docs = make([]map[string]any, len(fb))
	}

	paths := make([]types.CareerPath, len(docs))
	seen := make(map[string]bool, len(docs))
	for i, doc := range docs {
		base := fb[0]
		if i < len(fb) {
			base = fb[i]
		}
		path := r.careerPath(doc, base)
		path.ID = uniqueID(seen, path.ID, i+1)
		seen[path.ID] = true
		paths[i] = path
	}
	return paths
}

func (r *reconciler) careerPath(doc map[string]any, fb types.CareerPath) types.CareerPath {
	path := types.CareerPath{
		ID:           firstNonEmpty(str(doc["id"]), fb.ID),
		Name:         firstNonEmpty(str(doc["name"]), fb.Name),
		Description:  firstNonEmpty(str(doc["description"]), fb.Description),
		Track:        enum(doc["track"], types.Track.Valid, fb.Track),
		Timeline:     r.timeline(doc["timeline"], fb.Timeline),
		Probability:  probability(doc["probability"], fb.Probability),
		Requirements: orStrings(stringList(doc["requirements"], maxListItems), fb.Requirements),
	}

	// Salaries are always priced from the table, never taken from the document
	path.SalaryProgression = make([]float64, len(path.Timeline))
	for j := range path.Timeline {
		m := &path.Timeline[j]
		m.SalaryRange = r.table.Lookup(firstNonEmpty(m.Title, r.focusRole), salary.LevelForIndex(j))
		path.SalaryProgression[j] = salary.Midpoint(m.SalaryRange)
	}
	return path
}

func (r *reconciler) timeline(raw any, fb []types.CareerMilestone) []types.CareerMilestone {
	docs := truncate(objects(raw), maxMilestones)
	if len(docs) == 0 {
		out := make([]types.CareerMilestone, len(fb))
		for j, m := range fb {
			m.KeySkills = append([]string(nil), m.KeySkills...)
			out[j] = m
		}
		return out
	}

	out := make([]types.CareerMilestone, len(docs))
	for j, doc := range docs {
		base := fb[0]
		years := defaultYearsFromNow
		if j < len(fb) {
			base = fb[j]
			years = fb[j].YearsFromNow
		}
		if y, ok := number(doc["yearsFromNow"]); ok && y >= 0 {
			years = int(math.Round(y))
		}
		out[j] = types.CareerMilestone{
			Title:        firstNonEmpty(str(doc["title"]), base.Title),
			YearsFromNow: years,
			KeySkills:    orStrings(stringList(doc["keySkills"], maxListItems), base.KeySkills),
			Description:  firstNonEmpty(str(doc["description"]), base.Description),
		}
	}
	return out
}

// probability reads a percentage clamped to [0, 100]
func probability(v any, fb int) int {
	if p, ok := number(v); ok {
		return int(math.Round(clamp(p, 0, 100)))
	}
	if fb > 0 {
		return fb
	}
	return defaultProbability
}

// skillGaps uses the generative gaps when at least one names a skill,
// normalizing missing levels, priority and resources.
func (r *reconciler) skillGaps(raw any, fb []types.SkillGap) []types.SkillGap {
	var gaps []types.SkillGap
	for _, doc := range objects(raw) {
		skill := str(doc["skill"])
		if skill == "" {
			continue
		}
		priority := enum(doc["priority"], types.Priority.Valid, types.PriorityMedium)
		gaps = append(gaps, types.SkillGap{
			Skill:                  skill,
			CurrentLevel:           enum(doc["currentLevel"], types.SkillLevel.Valid, types.SkillLevelBeginner),
			RequiredLevel:          enum(doc["requiredLevel"], validRequiredLevel, types.SkillLevelAdvanced),
			Priority:               priority,
			Resources:              resources(doc["resources"]),
			EstimatedTimeToAcquire: firstNonEmpty(str(doc["estimatedTimeToAcquire"]), r.gen.GapTime(priority)),
		})
		if len(gaps) == maxSkillGaps {
			break
		}
	}

	if len(gaps) == 0 {
		r.note("skillGaps")
		return fb
	}
	return gaps
}

func validRequiredLevel(l types.SkillLevel) bool {
	return l != types.SkillLevelNone && l.Valid()
}

// resources accepts {name, type} objects or bare strings
func resources(raw any) []types.LearningResource {
	items, _ := raw.([]any)
	out := []types.LearningResource{}
	for _, item := range items {
		var res types.LearningResource
		if name := str(item); name != "" {
			res = types.LearningResource{Name: name, Type: "resource"}
		} else if doc := object(item); doc != nil && str(doc["name"]) != "" {
			res = types.LearningResource{Name: str(doc["name"]), Type: firstNonEmpty(str(doc["type"]), "resource")}
		} else {
			continue
		}
		out = append(out, res)
		if len(out) == maxResources {
			break
		}
	}
	return out
}

func (r *reconciler) strengths(raw any, fb []string) []string {
	strengths := stringList(raw, maxStrengths)
	if len(strengths) == 0 {
		r.note("strengths")
		return fb
	}
	return strengths
}

// weeklyActions uses the generative actions that have a title. Every action
// gets a unique id and starts incomplete.
func (r *reconciler) weeklyActions(raw any, fb []types.WeeklyAction) []types.WeeklyAction {
	var actions []types.WeeklyAction
	used := make(map[string]bool)
	for _, doc := range objects(raw) {
		title := str(doc["title"])
		if title == "" {
			continue
		}

		id := str(doc["id"])
		if id == "" || used[id] {
			id = nextActionID(used, len(actions)+1)
		}
		used[id] = true

		hours := defaultActionHours
		if h, ok := number(doc["estimatedHours"]); ok && h >= 0 {
			hours = h
		}

		actions = append(actions, types.WeeklyAction{
			ID:             id,
			Title:          title,
			Description:    str(doc["description"]),
			Category:       enum(doc["category"], types.ActionCategory.Valid, types.CategorySkill),
			Priority:       actionPriority(doc["priority"]),
			EstimatedHours: hours,
			Completed:      false,
		})
		if len(actions) == maxActions {
			break
		}
	}

	if len(actions) == 0 {
		r.note("weeklyActions")
		return fb
	}
	return actions
}

// uniqueID returns id, or id suffixed with the first free number from n on
func uniqueID(used map[string]bool, id string, n int) string {
	if !used[id] {
		return id
	}
	for ; ; n++ {
		candidate := id + "-" + strconv.Itoa(n)
		if !used[candidate] {
			return candidate
		}
	}
}

func nextActionID(used map[string]bool, n int) string {
	for {
		id := fallback.ActionID(n)
		if !used[id] {
			return id
		}
		n++
	}
}

// actionPriority maps onto the three action priorities; critical counts as high
func actionPriority(v any) types.Priority {
	p := enum(v, types.Priority.Valid, types.PriorityMedium)
	if p == types.PriorityCritical {
		return types.PriorityHigh
	}
	return p
}

func (r *reconciler) insights(raw any, fb types.IndustryInsights) types.IndustryInsights {
	doc := object(raw)
	out := types.IndustryInsights{
		Trends:         orStrings(stringList(doc["trends"], maxListItems), fb.Trends),
		InDemandSkills: orStrings(stringList(doc["inDemandSkills"], maxListItems), fb.InDemandSkills),
		Outlook:        firstNonEmpty(str(doc["outlook"]), fb.Outlook),
	}
	if len(doc) == 0 {
		r.note("industryInsights")
	}
	return out
}
