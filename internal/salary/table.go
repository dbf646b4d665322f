// Package salary provides the static role/level compensation table used to
// price current positions and career milestones.
package salary

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/career-navigator/internal/types"
)

// DefaultRole is the row used when a role has no entry of its own
const DefaultRole = "default"

//go:embed salary_table.json
var defaultTableJSON []byte

var defaultTable = MustLoad(defaultTableJSON)

// milestoneLevels maps milestone position to the level used for its salary.
var milestoneLevels = []types.Level{
	types.LevelMid,
	types.LevelSenior,
	types.LevelLead,
	types.LevelDirector,
	types.LevelExecutive,
}

type band struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Table is an immutable role -> level -> monthly SAR range lookup.
// It is safe for concurrent use.
type Table struct {
	rows  map[string]map[types.Level]types.SalaryRange
	roles []string
}

// seniorityWords are title qualifiers dropped before the second lookup
var seniorityWords = map[string]bool{
	"senior": true, "sr": true, "sr.": true, "junior": true, "jr": true, "jr.": true,
	"lead": true, "principal": true, "staff": true, "associate": true,
	"intern": true, "trainee": true, "i": true, "ii": true, "iii": true, "iv": true,
}

// Default returns the embedded salary table
func Default() *Table {
	return defaultTable
}

// Load parses a table from JSON of the form {"role": {"level": {"min": n, "max": n}}}.
// Role keys are matched case-insensitively. The table must contain a "default"
// role and every role must define a "mid" level.
func Load(data []byte) (*Table, error) {
	var raw map[string]map[string]band
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse salary table: %w", err)
	}

	t := &Table{rows: make(map[string]map[types.Level]types.SalaryRange, len(raw))}
	for role, levels := range raw {
		key := normalizeRole(role)
		if key == "" {
			continue
		}
		row := make(map[types.Level]types.SalaryRange, len(levels))
		for level, b := range levels {
			row[types.Level(strings.ToLower(strings.TrimSpace(level)))] = normalizeBand(b)
		}
		if _, ok := row[types.LevelMid]; !ok {
			return nil, fmt.Errorf("salary table role %q has no %q level", role, types.LevelMid)
		}
		t.rows[key] = row
		if key != DefaultRole {
			t.roles = append(t.roles, key)
		}
	}

	if _, ok := t.rows[DefaultRole]; !ok {
		return nil, fmt.Errorf("salary table has no %q role", DefaultRole)
	}

	sort.Strings(t.roles)

	return t, nil
}

// MustLoad is Load that panics on error. Use it for embedded tables.
func MustLoad(data []byte) *Table {
	t, err := Load(data)
	if err != nil {
		panic(fmt.Sprintf("failed to load salary table: %v", err))
	}
	return t
}

// Lookup returns the monthly range for a role and level. An exact role match
// wins, then an exact match once seniority qualifiers are dropped from the
// title, then the default row. An unknown level resolves to the row's mid level. Lookup never fails.
func (t *Table) Lookup(role string, level types.Level) types.SalaryRange {
	row := t.row(role)
	if r, ok := row[level]; ok {
		return r
	}
	return row[types.LevelMid]
}

// Roles returns the known role keys, excluding the default row
func (t *Table) Roles() []string {
	out := make([]string, len(t.roles))
	copy(out, t.roles)
	return out
}

func (t *Table) row(role string) map[types.Level]types.SalaryRange {
	key := normalizeRole(role)
	if row, ok := t.rows[key]; ok {
		return row
	}
	if bare := stripSeniority(key); bare != "" && bare != key {
		if row, ok := t.rows[bare]; ok {
			return row
		}
	}
	return t.rows[DefaultRole]
}

func stripSeniority(key string) string {
	words := strings.Fields(key)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if !seniorityWords[w] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// LevelForIndex maps a milestone's position in a timeline to the level used
// to price it. Positions past the end stay at the most senior level.
func LevelForIndex(i int) types.Level {
	if i < 0 {
		i = 0
	}
	if i >= len(milestoneLevels) {
		i = len(milestoneLevels) - 1
	}
	return milestoneLevels[i]
}

// Midpoint returns the center of a range
func Midpoint(r types.SalaryRange) float64 {
	return (r.Min + r.Max) / 2
}

func normalizeRole(role string) string {
	return strings.Join(strings.Fields(strings.ToLower(role)), " ")
}

func normalizeBand(b band) types.SalaryRange {
	lo, hi := b.Min, b.Max
	if lo < 0 {
		lo = 0
	}
	if hi < 0 {
		hi = 0
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return types.SalaryRange{Min: lo, Max: hi, Currency: types.CurrencySAR}
}
