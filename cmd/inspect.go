package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mapsmith/overlay-cli/internal/model"
	"github.com/mapsmith/overlay-cli/internal/render"
	"github.com/mapsmith/overlay-cli/internal/vector"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Describe a vector file: CRS, feature count, geometry and columns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fc, err := vector.ReadFile(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "file:     %s\n", args[0])
		fmt.Fprintf(out, "crs:      %s\n", fc.CRS)
		fmt.Fprintf(out, "features: %d\n", fc.Len())

		if min, max, ok := render.CollectionBounds(fc); ok {
			fmt.Fprintf(out, "bbox:     %g %g %g %g\n", min.X, min.Y, max.X, max.Y)
		}

		geomTypes := make(map[string]int)
		columns := make([]string, 0)
		kinds := make(map[string]model.Kind)
		for _, f := range fc.Features {
			geomTypes[f.Geom().Type().String()]++
			for _, name := range f.Attrs.Keys() {
				v, _ := f.Attrs.Get(name)
				if _, seen := kinds[name]; !seen {
					columns = append(columns, name)
					kinds[name] = v.Kind()
				} else if kinds[name] == model.KindNull {
					// A concrete value later in the file settles the column kind.
					kinds[name] = v.Kind()
				}
			}
		}

		types := make([]string, 0, len(geomTypes))
		for t := range geomTypes {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			fmt.Fprintf(out, "geometry: %s (%d)\n", t, geomTypes[t])
		}

		if len(columns) == 0 {
			return nil
		}
		fmt.Fprintln(out)
		tw := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "COLUMN\tKIND")
		for _, name := range columns {
			fmt.Fprintf(tw, "%s\t%s\n", name, kindName(kinds[name]))
		}
		return tw.Flush()
	},
}

func kindName(k model.Kind) string {
	switch k {
	case model.KindNumber:
		return "number"
	case model.KindString:
		return "string"
	default:
		return "null"
	}
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
