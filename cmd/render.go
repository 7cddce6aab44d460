package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mapsmith/overlay-cli/internal/model"
	"github.com/mapsmith/overlay-cli/internal/overlay"
	"github.com/mapsmith/overlay-cli/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render <left> <right>",
	Short: "Run the pipeline and render a choropleth of the merged result",
	Long: `Runs the overlay pipeline and renders the merged left collection as
a choropleth image, colored by the derived metric (or another numeric
column via --column). Output format follows the file extension: .png
or .webp.`,
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

		column, _ := cmd.Flags().GetString("column")
		if column == "" {
			column = pc.MetricName
			if column == "" {
				column = overlay.DefaultMetricName
			}
		}
		slot, _ := cmd.Flags().GetString("geometry")
		if slot == "" {
			slot = model.DefaultGeometrySlot
		}

		pres, err := overlay.Present(res.Merged, slot, column)
		if err != nil {
			return err
		}

		opts, err := renderOptions(cmd)
		if err != nil {
			return err
		}
		img, err := render.Choropleth(pres, opts)
		if err != nil {
			return err
		}

		outPath, _ := cmd.Flags().GetString("out")
		if err := render.WriteImage(outPath, img); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "rendered %d features to %s\n", res.Merged.Len(), outPath)
		return nil
	},
}

// renderOptions merges config defaults with render flags.
func renderOptions(cmd *cobra.Command) (render.Options, error) {
	opts := render.DefaultOptions()
	if cfg.Render.Width > 0 {
		opts.Width = cfg.Render.Width
	}
	if cfg.Render.Height > 0 {
		opts.Height = cfg.Render.Height
	}
	if cfg.Render.Classes > 0 {
		opts.Classes = cfg.Render.Classes
	}

	if v, _ := cmd.Flags().GetInt("width"); v > 0 {
		opts.Width = v
	}
	if v, _ := cmd.Flags().GetInt("height"); v > 0 {
		opts.Height = v
	}
	if v, _ := cmd.Flags().GetInt("classes"); v > 0 {
		opts.Classes = v
	}

	schemeName := cfg.Render.Scheme
	if v, _ := cmd.Flags().GetString("scheme"); v != "" {
		schemeName = v
	}
	scheme, err := render.ParseScheme(schemeName)
	if err != nil {
		return opts, err
	}
	opts.Scheme = scheme

	style := render.DefaultStyle()
	stylePath := cfg.Render.StyleFile
	if v, _ := cmd.Flags().GetString("style"); v != "" {
		stylePath = v
	}
	if stylePath != "" {
		style, err = render.LoadStyle(stylePath)
		if err != nil {
			return opts, err
		}
	}

	rampName := cfg.Render.Ramp
	if v, _ := cmd.Flags().GetString("ramp"); v != "" {
		rampName = v
	}
	if rampName == "" {
		rampName = render.DefaultRamp
	}
	ramp, err := style.Ramp(rampName)
	if err != nil {
		return opts, err
	}
	opts.Ramp = ramp

	noLegend, _ := cmd.Flags().GetBool("no-legend")
	opts.Legend = !noLegend
	return opts, nil
}

func init() {
	addPipelineFlags(renderCmd)
	renderCmd.Flags().String("out", "map.png", "output image path (.png or .webp)")
	renderCmd.Flags().String("column", "", "numeric column to color by (default the derived metric)")
	renderCmd.Flags().String("geometry", "", "geometry slot to draw")
	renderCmd.Flags().Int("width", 0, "image width in pixels")
	renderCmd.Flags().Int("height", 0, "image height in pixels")
	renderCmd.Flags().Int("classes", 0, "number of color classes")
	renderCmd.Flags().String("scheme", "", "classification scheme: quantile or equal")
	renderCmd.Flags().String("ramp", "", "color ramp name")
	renderCmd.Flags().String("style", "", "YAML style file with extra ramps")
	renderCmd.Flags().Bool("no-legend", false, "omit the legend")
	rootCmd.AddCommand(renderCmd)
}
