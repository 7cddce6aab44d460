package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mapsmith/overlay-cli/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded pipeline runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		ctx := cmd.Context()
		if err := s.Migrate(ctx); err != nil {
			return err
		}

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := s.ListRuns(ctx, limit)
		if err != nil {
			return err
		}

		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no runs recorded")
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tCREATED\tLEFT\tRIGHT\tGROUP BY\tPAIRS\tGROUPS\tMS")
		for _, r := range runs {
			flag := ""
			if r.EmptyOverlay {
				flag = " (empty)"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d%s\t%d\t%d\n",
				r.ID[:8],
				r.CreatedAt.Format("2006-01-02 15:04:05"),
				r.LeftPath, r.RightPath, r.GroupBy,
				r.OverlayCount, flag, r.GroupCount, r.ElapsedMS,
			)
		}
		return tw.Flush()
	},
}

func init() {
	runsCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	rootCmd.AddCommand(runsCmd)
}
