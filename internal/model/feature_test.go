package model

import (
	"testing"

	"github.com/peterstace/simplefeatures/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWKT(t *testing.T, wkt string) geom.Geometry {
	t.Helper()
	g, err := geom.UnmarshalWKT(wkt)
	require.NoError(t, err)
	return g
}

func TestFeature_GeometrySlots(t *testing.T) {
	poly := mustWKT(t, "POLYGON((0 0,0 1,1 1,1 0,0 0))")
	pt := mustWKT(t, "POINT(0.5 0.5)")

	f := NewFeature("f1", poly)
	f.SetGeometry("centroid", pt)

	assert.Equal(t, []string{DefaultGeometrySlot, "centroid"}, f.GeometrySlots())

	g, ok := f.Geometry("centroid")
	require.True(t, ok)
	assert.Equal(t, "POINT(0.5 0.5)", g.AsText())
}

func TestFeatureCollection_ActiveSlot(t *testing.T) {
	poly := mustWKT(t, "POLYGON((0 0,0 1,1 1,1 0,0 0))")
	pt := mustWKT(t, "POINT(0.5 0.5)")

	f := NewFeature("f1", poly)
	f.SetGeometry("centroid", pt)

	fc := NewFeatureCollection("EPSG:4326")
	fc.Append(f)

	g, ok := fc.ActiveGeometry(f)
	require.True(t, ok)
	assert.Equal(t, poly.AsText(), g.AsText())

	fc.SetActiveSlot("centroid")
	g, ok = fc.ActiveGeometry(f)
	require.True(t, ok)
	assert.Equal(t, pt.AsText(), g.AsText())
}

func TestFeature_Clone(t *testing.T) {
	f := NewFeature("f1", mustWKT(t, "POINT(1 2)"))
	f.Attrs.Set("name", Str("a"))

	c := f.Clone()
	c.Attrs.Set("name", Str("b"))

	v, _ := f.Attrs.Get("name")
	assert.Equal(t, Str("a"), v)
}
