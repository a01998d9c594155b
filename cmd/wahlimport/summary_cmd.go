package main

import (
	"github.com/spf13/cobra"
)

func newSummaryCmd() *cobra.Command {
	var wahl, stimmart string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print turnout and party shares of an imported election as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openContainer(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Shutdown(cmd.Context())

			if err := c.Migrate(cmd.Context()); err != nil {
				return err
			}
			summary, err := c.Summaries.Summarize(cmd.Context(), wahl, stimmart)
			if err != nil {
				return err
			}
			return writeJSONLine(cmd.OutOrStdout(), summary)
		},
	}
	cmd.Flags().StringVar(&wahl, "wahl", "", "Election identifier (required)")
	cmd.Flags().StringVar(&stimmart, "stimmart", "2", "Vote category: 1 or 2")
	_ = cmd.MarkFlagRequired("wahl")
	return cmd
}
