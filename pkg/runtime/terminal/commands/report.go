package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/commerce-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/commerce-atlas/pkg/services/dataset"
	"github.com/de-tools/commerce-atlas/pkg/services/filter"
	"github.com/de-tools/commerce-atlas/pkg/services/metrics"
)

func NewReportCmd(registry metrics.Registry, reporter *export.Reporter) *cobra.Command {
	var (
		dataDir  string
		question string
		year     int
		state    string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Answer a business question for the selected year and state",
		RunE: func(cmd *cobra.Command, args []string) error {
			calculator, err := registry.Get(question)
			if err != nil {
				return err
			}

			provider := dataset.LocalFiles{Dir: dataDir}
			ds, err := provider.Load()
			if err != nil {
				return fmt.Errorf("failed to load dataset from %q: %w", dataDir, err)
			}

			filtered, err := filter.Apply(ds, year, state)
			if err != nil {
				return err
			}

			report := calculator(ds, filtered)
			return reporter.Handle(report)
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", ".", "Directory containing the dataset CSV files")
	cmd.Flags().StringVar(&question, "question", "", "Business question to answer (see 'questions')")
	cmd.Flags().IntVar(&year, "year", 0, "Order year to analyze")
	cmd.Flags().StringVar(&state, "state", "", "Customer state filter, empty for all states")

	_ = cmd.MarkFlagRequired("question")
	_ = cmd.MarkFlagRequired("year")

	return cmd
}
