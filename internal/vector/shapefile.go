package vector

import (
	"os"
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"
	"go.uber.org/zap"

	"github.com/mapsmith/overlay-cli/internal/model"
)

// ReadShapefile reads a .shp/.dbf pair into a FeatureCollection. The
// CRS tag is taken from the .prj sidecar when present, "unknown"
// otherwise. Numeric DBF columns (types N and F) become number values,
// everything else becomes strings; blank cells become null.
func ReadShapefile(path string) (*model.FeatureCollection, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, &model.FormatError{Source: path, Record: -1, Err: err}
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	names := make([]string, len(fields))
	numeric := make([]bool, len(fields))
	for i, f := range fields {
		names[i] = strings.TrimRight(f.String(), "\x00")
		numeric[i] = f.Fieldtype == 'N' || f.Fieldtype == 'F'
	}

	fc := model.NewFeatureCollection(crsTag(path))

	var skipped int
	idx := 0
	for reader.Next() {
		_, shape := reader.Shape()

		g, ok, convErr := ShapeToGeometry(shape)
		if convErr != nil {
			return nil, &model.FormatError{Source: path, Record: idx, Err: convErr}
		}
		if !ok {
			// Null shapes are legal in shapefiles; skip quietly.
			skipped++
			idx++
			continue
		}

		f := model.NewFeature(strconv.Itoa(idx), g)
		for i, name := range names {
			raw := strings.TrimSpace(strings.TrimRight(reader.Attribute(i), "\x00"))
			f.Attrs.Set(name, parseAttr(raw, numeric[i]))
		}
		fc.Append(f)
		idx++
	}

	if skipped > 0 {
		zap.L().Debug("vector: skipped null shapefile records",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}

	return fc, nil
}

// parseAttr converts a raw DBF cell into a tagged value.
func parseAttr(raw string, numeric bool) model.Value {
	if raw == "" {
		return model.Null()
	}
	if numeric {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return model.Str(raw)
		}
		return model.Num(f)
	}
	return model.Str(raw)
}

// crsTag derives the collection CRS tag from the .prj sidecar.
func crsTag(shpPath string) string {
	prjPath := strings.TrimSuffix(shpPath, ".shp") + ".prj"
	data, err := os.ReadFile(prjPath)
	if err != nil {
		return "unknown"
	}
	return crsNameFromWKT(string(data))
}

// crsNameFromWKT extracts the coordinate system name from projection WKT.
func crsNameFromWKT(wkt string) string {
	for _, prefix := range []string{`PROJCS["`, `GEOGCS["`, `PROJCRS["`, `GEOGCRS["`} {
		if i := strings.Index(wkt, prefix); i >= 0 {
			rest := wkt[i+len(prefix):]
			if j := strings.Index(rest, `"`); j >= 0 && rest[:j] != "" {
				return rest[:j]
			}
		}
	}
	return "unknown"
}
