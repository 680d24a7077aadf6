package commands

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/de-tools/commerce-atlas/pkg/services/dataset"
)

func NewFiltersCmd() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "filters",
		Short: "Show the years and states present in a local dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := dataset.LocalFiles{Dir: dataDir}
			ds, err := provider.Load()
			if err != nil {
				return fmt.Errorf("failed to load dataset from %q: %w", dataDir, err)
			}

			years := lo.Map(ds.Years, func(year int, _ int) string {
				return fmt.Sprintf("%d", year)
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Years:  %s\n", strings.Join(years, ", "))
			fmt.Fprintf(cmd.OutOrStdout(), "States: %s\n", strings.Join(ds.States, ", "))
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", ".", "Directory containing the dataset CSV files")

	return cmd
}
