// Package main provides the career_agent CLI for career analyses.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "career_agent",
	Short: "Career analysis from a candidate profile",
	Long: "career_agent turns a structured candidate profile into a career analysis: current position, " +
		"multi-year career paths with SAR salary progression, skill gaps, strengths and a weekly action plan.",
	SilenceUsage: true,
}

var (
	configPath string
	localeFlag string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&localeFlag, "locale", "", "Output locale: en or ar (overrides config)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
