package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-navigator/internal/profile"
	"github.com/jonathan/career-navigator/internal/salary"
	"github.com/jonathan/career-navigator/internal/types"
)

var salaryCmd = &cobra.Command{
	Use:   "salary",
	Short: "Look up the SAR salary band for a role",
	Long:  "Look up the monthly SAR salary band for a role at a seniority level, or at the level implied by years of experience.",
	RunE:  runSalary,
}

var (
	salaryRole  string
	salaryLevel string
	salaryYears float64
	salaryList  bool
)

func init() {
	salaryCmd.Flags().StringVar(&salaryRole, "role", "", "Role title")
	salaryCmd.Flags().StringVar(&salaryLevel, "level", "", "Seniority level: entry, junior, mid, senior, lead, director, executive")
	salaryCmd.Flags().Float64Var(&salaryYears, "years", 0, "Years of experience, used when --level is not set")
	salaryCmd.Flags().BoolVar(&salaryList, "list", false, "List the roles in the salary table")

	rootCmd.AddCommand(salaryCmd)
}

// salaryResult is the JSON printed by the salary command
type salaryResult struct {
	Role        string            `json:"role"`
	Level       types.Level       `json:"level"`
	SalaryRange types.SalaryRange `json:"salaryRange"`
	Midpoint    float64           `json:"midpoint"`
}

func runSalary(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(configPath)
	if err != nil {
		return err
	}
	table, err := loadSalaryTable(cfg.SalaryTable)
	if err != nil {
		return err
	}
	if salaryList {
		return printRoles(cmd.OutOrStdout(), table)
	}
	if strings.TrimSpace(salaryRole) == "" {
		return fmt.Errorf("--role is required unless --list is set")
	}

	result, err := lookupSalary(table, salaryRole, salaryLevel, salaryYears)
	if err != nil {
		return err
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
	return nil
}

// lookupSalary resolves the level from level or years and prices role
func lookupSalary(table *salary.Table, role, level string, years float64) (*salaryResult, error) {
	lvl := profile.LevelForYears(years)
	if level != "" {
		parsed, err := parseLevel(level)
		if err != nil {
			return nil, err
		}
		lvl = parsed
	}

	rng := table.Lookup(role, lvl)
	return &salaryResult{
		Role:        strings.TrimSpace(role),
		Level:       lvl,
		SalaryRange: rng,
		Midpoint:    salary.Midpoint(rng),
	}, nil
}

func parseLevel(s string) (types.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, l := range types.Levels {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown level %q", s)
}

func printRoles(w io.Writer, table *salary.Table) error {
	for _, role := range table.Roles() {
		if _, err := fmt.Fprintln(w, role); err != nil {
			return err
		}
	}
	return nil
}
