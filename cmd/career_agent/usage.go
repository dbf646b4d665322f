package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-navigator/internal/db"
	"github.com/jonathan/career-navigator/internal/usage"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Report persisted generative usage",
	Long:  "Summarize a user's generative usage records and list the most recent ones. Requires a usage database (DATABASE_URL or database_url).",
	RunE:  runUsage,
}

var (
	usageUserID    string
	usageOperation string
	usageSince     time.Duration
	usageLimit     int
)

func init() {
	usageCmd.Flags().StringVar(&usageUserID, "user-id", "", "User whose usage to report (overrides config)")
	usageCmd.Flags().StringVar(&usageOperation, "operation", "", "Only list records of this operation")
	usageCmd.Flags().DurationVar(&usageSince, "since", 30*24*time.Hour, "Report usage recorded within this window")
	usageCmd.Flags().IntVar(&usageLimit, "limit", 20, "Maximum records to list")

	rootCmd.AddCommand(usageCmd)
}

// usageReport is the JSON printed by the usage command
type usageReport struct {
	Summary *db.UsageSummary `json:"summary"`
	Records []usage.Record   `json:"records"`
}

func runUsage(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(configPath)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("no usage database configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	filters := db.UsageFilters{
		UserID:    firstSet(usageUserID, cfg.UserID),
		Operation: usageOperation,
		Since:     time.Now().Add(-usageSince),
		Limit:     usageLimit,
	}
	report, err := buildUsageReport(ctx, database, filters)
	if err != nil {
		return err
	}
	return printUsageReport(cmd.OutOrStdout(), report)
}

// usageStore is the part of the usage database the report reads
type usageStore interface {
	UsageSummary(ctx context.Context, userID string, since time.Time) (*db.UsageSummary, error)
	ListUsage(ctx context.Context, filters db.UsageFilters) ([]usage.Record, error)
}

func buildUsageReport(ctx context.Context, store usageStore, filters db.UsageFilters) (*usageReport, error) {
	summary, err := store.UsageSummary(ctx, filters.UserID, filters.Since)
	if err != nil {
		return nil, err
	}
	records, err := store.ListUsage(ctx, filters)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []usage.Record{}
	}
	return &usageReport{Summary: summary, Records: records}, nil
}

func printUsageReport(w io.Writer, report *usageReport) error {
	jsonBytes, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonBytes))
	return err
}
