package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-navigator/internal/tracks"
)

var trackCmd = &cobra.Command{
	Use:   "track <role title>",
	Short: "Infer the career track of a role title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), tracks.Infer(strings.Join(args, " ")))
		return err
	},
}

func init() {
	rootCmd.AddCommand(trackCmd)
}
