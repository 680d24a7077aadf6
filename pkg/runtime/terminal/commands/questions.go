package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/commerce-atlas/pkg/services/insights"
	"github.com/de-tools/commerce-atlas/pkg/services/metrics"
)

func NewQuestionsCmd(registry metrics.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "questions",
		Short: "List the business questions this tool can answer",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, question := range registry.ListQuestions() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n", question, insights.Title(question))
			}
			return nil
		},
	}
}
