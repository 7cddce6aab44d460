package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapsmith/overlay-cli/internal/model"
)

func TestPresent_SwitchesActiveSlot(t *testing.T) {
	f := model.NewFeature("f0", square(t, 0, 0, 2))
	f.SetGeometry("centroid", mustWKT(t, "POINT(1 1)"))
	f.Attrs.Set("metric", model.Num(4))
	fc := collection("EPSG:4326", f)

	pres, err := Present(fc, "centroid", "metric")
	require.NoError(t, err)

	assert.Equal(t, "centroid", pres.Collection.ActiveSlot())
	assert.Equal(t, "metric", pres.Column)

	g, ok := fc.ActiveGeometry(f)
	require.True(t, ok)
	assert.Equal(t, "POINT(1 1)", g.AsText())
}

func TestPresent_DefaultSlot(t *testing.T) {
	f := model.NewFeature("f0", square(t, 0, 0, 2))
	f.Attrs.Set("metric", model.Num(4))

	pres, err := Present(collection("c", f), "", "metric")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultGeometrySlot, pres.GeometrySlot)
}

func TestPresent_MissingSlot(t *testing.T) {
	f := model.NewFeature("f0", square(t, 0, 0, 2))
	f.Attrs.Set("metric", model.Num(4))

	_, err := Present(collection("c", f), "centroid", "metric")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "f0")
}

func TestPresent_NonNumericColumn(t *testing.T) {
	f := model.NewFeature("f0", square(t, 0, 0, 2))
	f.Attrs.Set("name", model.Str("x"))

	_, err := Present(collection("c", f), "", "name")
	require.Error(t, err)
}

func TestPresent_NullValuesTolerated(t *testing.T) {
	f1 := model.NewFeature("f0", square(t, 0, 0, 2))
	f1.Attrs.Set("metric", model.Num(4))
	f2 := model.NewFeature("f1", square(t, 3, 0, 2))
	f2.Attrs.Set("metric", model.Null())

	_, err := Present(collection("c", f1, f2), "", "metric")
	require.NoError(t, err)
}
