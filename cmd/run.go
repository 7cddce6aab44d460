package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mapsmith/overlay-cli/internal/overlay"
	"github.com/mapsmith/overlay-cli/internal/store"
	"github.com/mapsmith/overlay-cli/internal/vector"
)

var runCmd = &cobra.Command{
	Use:   "run <left> <right>",
	Short: "Overlay two vector files, aggregate by key, and rank by area",
	Long: `Intersects every feature of <left> with every feature of <right>,
dissolves the intersections by the group-by key, ranks groups by planar
area descending, and left-merges the aggregates back onto <left>.

Inputs may be shapefiles (.shp) or GeoJSON (.geojson, .json). Both must
carry the same CRS tag unless --crs-check=off.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		leftPath, rightPath := args[0], args[1]

		left, right, err := loadInputs(leftPath, rightPath)
		if err != nil {
			return err
		}

		pc := pipelineConfig(cmd)
		res, err := overlay.Run(pc, left, right)
		if err != nil {
			return err
		}

		metricName := pc.MetricName
		if metricName == "" {
			metricName = overlay.DefaultMetricName
		}
		printGroupSummary(cmd.OutOrStdout(), res, pc.GroupBy, metricName)

		if outPath, _ := cmd.Flags().GetString("out"); outPath != "" {
			if err := vector.WriteGeoJSON(outPath, res.Merged); err != nil {
				return eris.Wrapf(err, "write merged output %s", outPath)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d merged records to %s\n", res.Merged.Len(), outPath)
		}

		if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
			if err := recordRun(cmd, leftPath, rightPath, pc, res, left.Len(), right.Len()); err != nil {
				// History is bookkeeping; a failed insert should not fail the run.
				zap.L().Warn("record run history", zap.Error(err))
			}
		}

		return nil
	},
}

// recordRun persists the run summary to the history store.
func recordRun(cmd *cobra.Command, leftPath, rightPath string, pc overlay.Config, res *overlay.Result, leftN, rightN int) error {
	s, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	ctx := cmd.Context()
	if err := s.Migrate(ctx); err != nil {
		return err
	}

	red, _ := overlay.ParseReduction(string(pc.Reduction))
	_, err = s.RecordRun(ctx, store.Run{
		LeftPath:     leftPath,
		RightPath:    rightPath,
		GroupBy:      pc.GroupBy,
		Reduction:    string(red),
		LeftCount:    leftN,
		RightCount:   rightN,
		OverlayCount: res.OverlayCount,
		GroupCount:   res.Groups.Len(),
		EmptyOverlay: res.HasWarning(overlay.WarningEmptyOverlay),
		ElapsedMS:    res.Elapsed.Milliseconds(),
	})
	return err
}

func init() {
	addPipelineFlags(runCmd)
	runCmd.Flags().String("out", "", "write the merged collection as GeoJSON")
	runCmd.Flags().Bool("no-history", false, "skip recording the run in the history store")
	rootCmd.AddCommand(runCmd)
}
