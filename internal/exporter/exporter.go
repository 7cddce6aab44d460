// Package exporter writes feature-collection attribute tables to CSV
// and XLSX for use outside the pipeline. Geometry is not exported.
package exporter

import (
	"encoding/csv"
	"os"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/mapsmith/overlay-cli/internal/model"
)

// Columns returns the union of attribute names across all features, in
// first-appearance order.
func Columns(fc *model.FeatureCollection) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, f := range fc.Features {
		for _, k := range f.Attrs.Keys() {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	return cols
}

// WriteCSV writes the attribute table with an id column first. Null and
// missing values render as empty cells.
func WriteCSV(path string, fc *model.FeatureCollection) error {
	out, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "exporter: create %s", path)
	}
	defer func() { _ = out.Close() }()

	w := csv.NewWriter(out)
	cols := Columns(fc)

	header := append([]string{"id"}, cols...)
	if err := w.Write(header); err != nil {
		return eris.Wrap(err, "exporter: write csv header")
	}

	for _, f := range fc.Features {
		row := make([]string, 0, len(header))
		row = append(row, f.ID)
		for _, c := range cols {
			v, _ := f.Attrs.Get(c)
			row = append(row, v.String())
		}
		if err := w.Write(row); err != nil {
			return eris.Wrapf(err, "exporter: write csv row %s", f.ID)
		}
	}

	w.Flush()
	return eris.Wrap(w.Error(), "exporter: flush csv")
}

// WriteXLSX writes the attribute table to a single-sheet workbook.
// Numbers stay numeric cells so spreadsheet formulas work on them.
func WriteXLSX(path string, fc *model.FeatureCollection, sheetName string) error {
	if sheetName == "" {
		sheetName = "ranked"
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet(sheetName)
	if err != nil {
		return eris.Wrap(err, "exporter: add sheet")
	}

	cols := Columns(fc)

	header := sheet.AddRow()
	header.AddCell().Value = "id"
	for _, c := range cols {
		header.AddCell().Value = c
	}

	for _, f := range fc.Features {
		row := sheet.AddRow()
		row.AddCell().Value = f.ID
		for _, c := range cols {
			cell := row.AddCell()
			v, ok := f.Attrs.Get(c)
			if !ok || v.IsNull() {
				continue
			}
			if num, isNum := v.Float(); isNum {
				cell.SetFloat(num)
			} else {
				cell.Value = v.String()
			}
		}
	}

	return eris.Wrapf(file.Save(path), "exporter: save %s", path)
}
