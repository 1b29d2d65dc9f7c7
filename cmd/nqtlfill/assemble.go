package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill"
	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/output"
)

func newAssembleCmd() *cobra.Command {
	var (
		outputPath string
		reportPath string
		format     string
		pretty     bool
	)

	cmd := &cobra.Command{
		Use:   "assemble WORKBOOK TEMPLATE",
		Short: "Fill a .docx template with figures from a workbook",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reportFormat, err := output.ParseFormat(format)
			if err != nil {
				return err
			}

			outcome, err := nqtlfill.AssembleFiles(args[0], args[1], outputPath, pipelineOptions())
			if err != nil {
				return fmt.Errorf("assembly failed: %w", err)
			}

			for _, w := range outcome.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", w)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d rows updated, wrote %s\n", outcome.RowsUpdated, outputPath)

			if reportPath == "" {
				return nil
			}
			if reportPath == "-" {
				return output.Write(cmd.OutOrStdout(), &outcome.Report, reportFormat, pretty)
			}
			f, err := os.Create(reportPath)
			if err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			defer f.Close()
			return output.Write(f, &outcome.Report, reportFormat, pretty)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output .docx path")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write the diagnostics report to this file (- for stdout)")
	cmd.Flags().StringVar(&format, "format", "json", "Report format: json, yaml")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
