package overlay

import (
	"github.com/mapsmith/overlay-cli/internal/model"
)

// DefaultMetricName is the attribute the derived metric is stored under.
const DefaultMetricName = "metric"

// DeriveAreaMetric attaches the planar area of each feature's geometry
// as a numeric attribute. Area is computed in the working CRS's units
// with no geodetic correction, so a geographic CRS yields square
// degrees.
func DeriveAreaMetric(fc *model.FeatureCollection, name string) {
	if name == "" {
		name = DefaultMetricName
	}
	for _, f := range fc.Features {
		f.Attrs.Set(name, model.Num(f.Geom().Area()))
	}
}
