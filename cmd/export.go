package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/mapsmith/overlay-cli/internal/exporter"
	"github.com/mapsmith/overlay-cli/internal/model"
	"github.com/mapsmith/overlay-cli/internal/overlay"
)

var exportCmd = &cobra.Command{
	Use:   "export <left> <right>",
	Short: "Run the pipeline and export a result table to CSV or XLSX",
	Long: `Runs the overlay pipeline and writes either the ranked group table
or the merged left collection as a flat attribute table. Geometry is
not exported; use 'run --out' for GeoJSON output.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		left, right, err := loadInputs(args[0], args[1])
		if err != nil {
			return err
		}

		pc := pipelineConfig(cmd)
		res, err := overlay.Run(pc, left, right)
		if err != nil {
			return err
		}

		table, _ := cmd.Flags().GetString("table")
		var fc *model.FeatureCollection
		switch table {
		case "groups":
			fc = res.Groups
		case "merged":
			fc = res.Merged
		default:
			return eris.Errorf("export: unknown table %q (want groups or merged)", table)
		}

		outPath, _ := cmd.Flags().GetString("out")
		if outPath == "" {
			return eris.New("export: --out is required")
		}

		format, _ := cmd.Flags().GetString("format")
		if format == "" {
			format = strings.TrimPrefix(filepath.Ext(outPath), ".")
		}
		switch strings.ToLower(format) {
		case "csv":
			err = exporter.WriteCSV(outPath, fc)
		case "xlsx":
			err = exporter.WriteXLSX(outPath, fc, table)
		default:
			return eris.Errorf("export: unknown format %q (want csv or xlsx)", format)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d %s rows to %s\n", fc.Len(), table, outPath)
		return nil
	},
}

func init() {
	addPipelineFlags(exportCmd)
	exportCmd.Flags().String("out", "", "output file path (required)")
	exportCmd.Flags().String("format", "", "output format: csv or xlsx (default from extension)")
	exportCmd.Flags().String("table", "groups", "which table to export: groups or merged")
	rootCmd.AddCommand(exportCmd)
}
