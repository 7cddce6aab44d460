package vector

import (
	"github.com/jonas-p/go-shp"
	"github.com/peterstace/simplefeatures/geom"
	"github.com/rotisserie/eris"
	gogeom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
	"go.uber.org/zap"
)

// ShapeToGeometry converts a go-shp shape into an engine geometry by
// way of go-geom and WKB. Returns an empty geometry and false for nil
// or unsupported shapes.
func ShapeToGeometry(shape shp.Shape) (geom.Geometry, bool, error) {
	if shape == nil {
		return geom.Geometry{}, false, nil
	}

	var g gogeom.T

	switch s := shape.(type) {
	case *shp.Point:
		g = gogeom.NewPointFlat(gogeom.XY, []float64{s.X, s.Y})

	case *shp.PolyLine:
		g = polyLineToMultiLineString(s)

	case *shp.Polygon:
		g = polygonToMultiPolygon(s)

	default:
		return geom.Geometry{}, false, nil
	}

	if g == nil {
		return geom.Geometry{}, false, nil
	}

	data, err := wkb.Marshal(g, wkb.NDR)
	if err != nil {
		return geom.Geometry{}, false, eris.Wrap(err, "vector: encode WKB")
	}

	sg, err := geom.UnmarshalWKB(data)
	if err != nil {
		return geom.Geometry{}, false, eris.Wrap(err, "vector: decode WKB")
	}

	return sg, true, nil
}

// polyLineToMultiLineString converts a shapefile PolyLine to a MultiLineString.
func polyLineToMultiLineString(pl *shp.PolyLine) gogeom.T {
	if pl == nil || pl.NumParts == 0 || len(pl.Points) == 0 {
		return nil
	}

	mls := gogeom.NewMultiLineString(gogeom.XY)

	for i := int32(0); i < pl.NumParts; i++ {
		start := pl.Parts[i]
		var end int32
		if i+1 < pl.NumParts {
			end = pl.Parts[i+1]
		} else {
			end = int32(len(pl.Points))
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, pl.Points[j].X, pl.Points[j].Y)
		}

		ls := gogeom.NewLineStringFlat(gogeom.XY, flat)
		if err := mls.Push(ls); err != nil {
			zap.L().Debug("vector: skipping malformed linestring part", zap.Int32("part", i), zap.Error(err))
			continue
		}
	}

	if mls.NumLineStrings() == 0 {
		return nil
	}
	return mls
}

// polygonToMultiPolygon converts a shapefile Polygon to a MultiPolygon.
// Shapefile ring nesting (holes vs shells) is not reconstructed; each
// part becomes its own single-ring polygon.
func polygonToMultiPolygon(p *shp.Polygon) gogeom.T {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	mp := gogeom.NewMultiPolygon(gogeom.XY)

	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		var end int32
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		} else {
			end = int32(len(p.Points))
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, p.Points[j].X, p.Points[j].Y)
		}

		ring := gogeom.NewLinearRingFlat(gogeom.XY, flat)
		poly := gogeom.NewPolygon(gogeom.XY)
		if err := poly.Push(ring); err != nil {
			zap.L().Debug("vector: skipping malformed polygon ring", zap.Int32("part", i), zap.Error(err))
			continue
		}

		if err := mp.Push(poly); err != nil {
			zap.L().Debug("vector: skipping malformed polygon part", zap.Int32("part", i), zap.Error(err))
			continue
		}
	}

	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}
