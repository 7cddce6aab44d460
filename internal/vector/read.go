package vector

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/mapsmith/overlay-cli/internal/model"
)

// ReadFile loads a vector file into a FeatureCollection, picking the
// reader by extension (.shp, .geojson, .json).
func ReadFile(path string) (*model.FeatureCollection, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".shp":
		return ReadShapefile(path)
	case ".geojson", ".json":
		return ReadGeoJSON(path)
	default:
		return nil, eris.Errorf("vector: unsupported file type %q", filepath.Ext(path))
	}
}
