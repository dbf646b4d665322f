// Package observability provides logging, metrics and formatted output
// utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/career-navigator/internal/scoring"
	"github.com/jonathan/career-navigator/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to n runes, marking the cut with "..."
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// PrintAnalysis outputs a human-readable summary of a career analysis.
func (p *Printer) PrintAnalysis(a *types.CareerAnalysis) {
	if a == nil {
		return
	}

	var sb strings.Builder
	pos := a.CurrentPosition
	sb.WriteString(fmt.Sprintf("Role:     %s\n", pos.Title))
	sb.WriteString(fmt.Sprintf("Level:    %s (%.1f years)\n", pos.Level, pos.YearsExperience))
	sb.WriteString(fmt.Sprintf("Salary:   %s\n", formatRange(pos.SalaryRange)))
	sb.WriteString(fmt.Sprintf("Score:    %d/100\n", a.CareerScore))
	p.printBox("CURRENT POSITION", strings.TrimSuffix(sb.String(), "\n"))

	p.printPaths(a.CareerPaths)
	p.printSkillGaps(a.SkillGaps)
	p.printActions(a.WeeklyActions)
}

func (p *Printer) printPaths(paths []types.CareerPath) {
	if len(paths) == 0 {
		return
	}

	var sb strings.Builder
	for i, path := range paths {
		sb.WriteString(fmt.Sprintf("#%d  %s [%s, %d%%]\n", i+1, path.Name, path.Track, path.Probability))
		for _, m := range path.Timeline {
			sb.WriteString(fmt.Sprintf("    +%dy %s\n", m.YearsFromNow, m.Title))
			sb.WriteString(fmt.Sprintf("        %s\n", formatRange(m.SalaryRange)))
		}
		if i < len(paths)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("CAREER PATHS", strings.TrimSuffix(sb.String(), "\n"))
}

func (p *Printer) printSkillGaps(gaps []types.SkillGap) {
	if len(gaps) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(gaps), maxItemsToShow)
	for i := 0; i < count; i++ {
		gap := gaps[i]
		sb.WriteString(fmt.Sprintf("• %s (%s → %s, %s)\n", gap.Skill, gap.CurrentLevel, gap.RequiredLevel, gap.Priority))
	}
	if len(gaps) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(gaps)-maxItemsToShow))
	}

	p.printBox("SKILL GAPS", strings.TrimSuffix(sb.String(), "\n"))
}

func (p *Printer) printActions(actions []types.WeeklyAction) {
	if len(actions) == 0 {
		return
	}

	var sb strings.Builder
	for _, action := range actions {
		sb.WriteString(fmt.Sprintf("[%s] %s (%s, %.1fh)\n", action.Priority, action.Title, action.Category, action.EstimatedHours))
	}

	p.printBox("THIS WEEK", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScoreBreakdown outputs each career score component.
func (p *Printer) PrintScoreBreakdown(b scoring.Breakdown) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Experience:      %+5.1f\n", b.Experience))
	sb.WriteString(fmt.Sprintf("Skills:          %+5.1f\n", b.Skills))
	sb.WriteString(fmt.Sprintf("Education:       %+5.1f\n", b.Education))
	sb.WriteString(fmt.Sprintf("Certifications:  %+5.1f\n", b.Certifications))
	sb.WriteString(fmt.Sprintf("Critical gaps:   %+5.1f\n", -b.CriticalGaps))
	sb.WriteString(fmt.Sprintf("Summary:         %+5.1f\n", b.Summary))
	sb.WriteString(fmt.Sprintf("LinkedIn:        %+5.1f\n", b.LinkedIn))
	sb.WriteString(fmt.Sprintf("Experience list: %+5.1f\n", b.ExperienceList))
	sb.WriteString(fmt.Sprintf("Projects:        %+5.1f\n", b.Projects))
	sb.WriteString(fmt.Sprintf("Total:           %d", scoring.Clamp(b.Total())))

	p.printBox("CAREER SCORE", sb.String())
}

// PrintBatchSummary outputs the result of a batch run. failures maps input
// names to their error message.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintBatchSummary(succeeded int, failures map[string]string) {
	if len(failures) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, fmt.Sprintf("✅ %d PROFILES ANALYZED", succeeded))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	names := make([]string, 0, len(failures))
	for name := range failures {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Analyzed %d, failed %d:\n\n", succeeded, len(failures)))
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", name))
		sb.WriteString(fmt.Sprintf("  %s\n", failures[name]))
	}

	p.printBox("BATCH SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFallbackFields outputs how often each analysis field was filled from
// fallback content. Nothing is printed when counts is empty.
func (p *Printer) PrintFallbackFields(counts map[string]float64) {
	if len(counts) == 0 {
		return
	}

	fields := make([]string, 0, len(counts))
	for field := range counts {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	lines := make([]string, 0, len(fields))
	for _, field := range fields {
		lines = append(lines, fmt.Sprintf("%-20s %4.0f", field, counts[field]))
	}
	p.printBox("FALLBACK FIELDS", strings.Join(lines, "\n"))
}

func formatRange(r types.SalaryRange) string {
	return fmt.Sprintf("%s %.0f - %.0f / month", r.Currency, r.Min, r.Max)
}
