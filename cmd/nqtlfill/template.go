package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill"
)

func newTemplateCmd() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write a blank .docx laid out for every cataloged metric",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var buf bytes.Buffer
			if err := nqtlfill.WriteSkeleton(&buf, pipelineOptions()); err != nil {
				return err
			}
			if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output .docx path")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
