package main

import (
	"github.com/spf13/cobra"

	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/catalog"
	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/models"
	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/output"
)

// catalogView is the printed form of the catalog in effect.
type catalogView struct {
	Metrics []models.Metric `json:"metrics" yaml:"metrics"`
	Labels  []models.Metric `json:"labels" yaml:"labels"`
}

func newCatalogCmd() *cobra.Command {
	var (
		format string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the metrics and labels nqtlfill recognises",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := output.ParseFormat(format)
			if err != nil {
				return err
			}

			view := catalogView{Metrics: catalog.Metrics(pipelineOptions().Metrics())}
			for _, e := range catalog.DefaultLabels().Entries() {
				view.Labels = append(view.Labels, models.Metric{
					Name:      e.ID.String(),
					Fragments: e.Fragments,
				})
			}
			return output.Encode(cmd.OutOrStdout(), view, f, pretty)
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: json, yaml")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}
