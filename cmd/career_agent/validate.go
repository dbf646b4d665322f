package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-navigator/internal/schemas"
	contracts "github.com/jonathan/career-navigator/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate <analysis.json>...",
	Short: "Check CareerAnalysis files against the output schema",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateFiles(cmd.OutOrStdout(), args)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// validateFiles reports each file's result and fails when any file does not
// validate.
func validateFiles(w io.Writer, paths []string) error {
	invalid := 0
	for _, path := range paths {
		err := schemas.ValidateFile(contracts.CareerAnalysis, path)
		if err == nil {
			_, _ = fmt.Fprintf(w, "OK       %s\n", path)
			continue
		}

		invalid++
		var validationErr *schemas.ValidationError
		if !errors.As(err, &validationErr) {
			_, _ = fmt.Fprintf(w, "ERROR    %s: %v\n", path, err)
			continue
		}
		_, _ = fmt.Fprintf(w, "INVALID  %s\n", path)
		for _, fe := range validationErr.Errors {
			_, _ = fmt.Fprintf(w, "         %s: %s\n", fe.Field, fe.Message)
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d files failed validation", invalid, len(paths))
	}
	return nil
}
