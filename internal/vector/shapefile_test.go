package vector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapsmith/overlay-cli/internal/model"
)

const testPRJ = `GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137.0,298.257223563]],PRIMEM["Greenwich",0.0],UNIT["Degree",0.0174532925199433]]`

// writeTestShapefile creates a two-polygon shapefile with NAME and VAL
// columns plus a .prj sidecar, and returns the .shp path.
func writeTestShapefile(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "zones.shp")

	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)

	w.SetFields([]shp.Field{
		shp.StringField("NAME", 25),
		shp.FloatField("VAL", 16, 4),
	})

	square := func(x, y, size float64) *shp.Polygon {
		pl := shp.NewPolyLine([][]shp.Point{{
			{X: x, Y: y},
			{X: x, Y: y + size},
			{X: x + size, Y: y + size},
			{X: x + size, Y: y},
			{X: x, Y: y},
		}})
		p := shp.Polygon(*pl)
		return &p
	}

	row := w.Write(square(0, 0, 2))
	require.NoError(t, w.WriteAttribute(int(row), 0, "alpha"))
	require.NoError(t, w.WriteAttribute(int(row), 1, 12.5))

	row = w.Write(square(5, 5, 1))
	require.NoError(t, w.WriteAttribute(int(row), 0, "beta"))
	require.NoError(t, w.WriteAttribute(int(row), 1, 3.0))

	w.Close()

	prjPath := filepath.Join(dir, "zones.prj")
	require.NoError(t, os.WriteFile(prjPath, []byte(testPRJ), 0o644))

	return path
}

func TestReadShapefile(t *testing.T) {
	path := writeTestShapefile(t)

	fc, err := ReadShapefile(path)
	require.NoError(t, err)

	assert.Equal(t, "GCS_WGS_1984", fc.CRS)
	require.Equal(t, 2, fc.Len())

	f := fc.Features[0]
	name, ok := f.Attrs.Get("NAME")
	require.True(t, ok)
	assert.Equal(t, model.Str("alpha"), name)

	val, ok := f.Attrs.Float("VAL")
	require.True(t, ok)
	assert.InDelta(t, 12.5, val, 1e-9)

	assert.InDelta(t, 4.0, f.Geom().Area(), 1e-9)
}

func TestReadShapefile_MissingFile(t *testing.T) {
	_, err := ReadShapefile(filepath.Join(t.TempDir(), "nope.shp"))
	require.Error(t, err)

	var fe *model.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, -1, fe.Record)
}

func TestReadShapefile_NoPRJ(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bare.shp")

	w, err := shp.Create(path, shp.POINT)
	require.NoError(t, err)
	w.SetFields([]shp.Field{shp.StringField("NAME", 10)})
	row := w.Write(&shp.Point{X: 1, Y: 2})
	require.NoError(t, w.WriteAttribute(int(row), 0, "pt"))
	w.Close()

	fc, err := ReadShapefile(path)
	require.NoError(t, err)
	assert.Equal(t, "unknown", fc.CRS)
	assert.Equal(t, 1, fc.Len())
}

func TestCRSNameFromWKT(t *testing.T) {
	assert.Equal(t, "GCS_WGS_1984", crsNameFromWKT(testPRJ))
	assert.Equal(t, "NAD83 / UTM zone 17N", crsNameFromWKT(`PROJCS["NAD83 / UTM zone 17N",GEOGCS["NAD83"]]`))
	assert.Equal(t, "unknown", crsNameFromWKT("not wkt at all"))
}
