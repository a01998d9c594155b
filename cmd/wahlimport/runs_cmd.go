package main

import (
	"github.com/spf13/cobra"
)

func newRunsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent imports, newest first, one JSON object per line",
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
			runs, err := c.ImportRunRepo.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, run := range runs {
				if err := writeJSONLine(cmd.OutOrStdout(), run); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Number of runs to list")
	return cmd
}
