package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-navigator/internal/analysis"
	"github.com/jonathan/career-navigator/internal/observability"
	"github.com/jonathan/career-navigator/internal/schemas"
	"github.com/jonathan/career-navigator/internal/scoring"
	"github.com/jonathan/career-navigator/internal/types"
	contracts "github.com/jonathan/career-navigator/schemas"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one candidate profile",
	Long:  "Analyze a CareerProfile JSON file and write a CareerAnalysis JSON document that validates against the career_analysis schema.",
	RunE:  runAnalyze,
}

var (
	analyzeProfileFile string
	analyzeOutputFile  string
	analyzeIndustry    string
	analyzeUserID      string
	analyzeTargetRole  string
	analyzeVerbose     bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeProfileFile, "profile", "p", "", "Path to CareerProfile JSON file (required)")
	analyzeCmd.Flags().StringVarP(&analyzeOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	analyzeCmd.Flags().StringVar(&analyzeIndustry, "industry", "", "Target industry (overrides config)")
	analyzeCmd.Flags().StringVar(&analyzeUserID, "user-id", "", "User ID attached to usage records (overrides config)")
	analyzeCmd.Flags().StringVar(&analyzeTargetRole, "target-role", "", "Target role (overrides the profile's targetRole)")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print a readable summary to stderr")

	_ = analyzeCmd.MarkFlagRequired("profile")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(configPath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	svc, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	p, err := readProfile(analyzeProfileFile)
	if err != nil {
		return err
	}
	if analyzeTargetRole != "" {
		p.TargetRole = analyzeTargetRole
	}

	opts := analysis.Options{
		Locale:         cfg.Locale,
		TargetIndustry: firstSet(analyzeIndustry, cfg.TargetIndustry),
		UserID:         firstSet(analyzeUserID, cfg.UserID),
	}
	result, err := svc.engine.Analyze(ctx, p, opts)
	if err != nil {
		return fmt.Errorf("failed to analyze profile: %w", err)
	}

	out := cmd.OutOrStdout()
	if analyzeOutputFile != "" {
		f, err := os.Create(analyzeOutputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}
	if err := writeAnalysis(out, result); err != nil {
		return err
	}

	if analyzeVerbose || cfg.Verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintAnalysis(result)
		printer.PrintScoreBreakdown(scoring.Compute(p, result.SkillGaps, result.CurrentPosition.YearsExperience))
	}
	if analyzeOutputFile != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Output: %s\n", analyzeOutputFile)
	}
	return nil
}

// readProfile loads a CareerProfile JSON file
func readProfile(path string) (*types.CareerProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}
	var p types.CareerProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return &p, nil
}

// writeAnalysis checks an analysis against the output schema and writes it
// as indented JSON.
func writeAnalysis(w io.Writer, a *types.CareerAnalysis) error {
	if err := schemas.ValidateDocument(contracts.CareerAnalysis, a); err != nil {
		// Distinguish between validation errors (data doesn't match schema) and schema load errors
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("analysis does not validate against schema: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate output against schema: %v\n", err)
	}

	jsonBytes, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if _, err := w.Write(append(jsonBytes, '\n')); err != nil {
		return fmt.Errorf("failed to write analysis: %w", err)
	}
	return nil
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
