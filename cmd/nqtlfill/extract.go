package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill"
	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/output"
	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/report"
)

func newExtractCmd() *cobra.Command {
	var (
		format string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "extract WORKBOOK",
		Short: "Print the figures found in a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reportFormat, err := output.ParseFormat(format)
			if err != nil {
				return err
			}

			result, err := nqtlfill.Extract(args[0], pipelineOptions())
			var warnings []error
			if err != nil {
				// Unreadable sheets are reported, a missing or broken workbook is not.
				if errors.Is(err, nqtlfill.ErrFileNotFound) || errors.Is(err, nqtlfill.ErrInvalidFormat) {
					return fmt.Errorf("extraction failed: %w", err)
				}
				warnings = append(warnings, err)
			}

			rep := report.Build(result, 0, warnings)
			return output.Write(cmd.OutOrStdout(), &rep, reportFormat, pretty)
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format: json, yaml")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}
