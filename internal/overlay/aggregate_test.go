package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapsmith/overlay-cli/internal/model"
)

// fragment builds a square feature with a group key and a numeric value.
func fragment(t *testing.T, id string, x, y, size float64, key, group string, val float64) *model.Feature {
	t.Helper()
	f := model.NewFeature(id, square(t, x, y, size))
	f.Attrs.Set(key, model.Str(group))
	f.Attrs.Set("val", model.Num(val))
	return f
}

func TestAggregate_SumPreservesTotals(t *testing.T) {
	fc := collection("EPSG:4326",
		fragment(t, "0", 0, 0, 1, "grp", "east", 3),
		fragment(t, "1", 2, 0, 1, "grp", "west", 5),
		fragment(t, "2", 4, 0, 1, "grp", "east", 7),
		fragment(t, "3", 6, 0, 1, "grp", "west", 11),
	)

	out, err := Aggregate(fc, "grp", ReductionSum)
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())

	var total float64
	for _, g := range out.Features {
		v, ok := g.Attrs.Float("val")
		require.True(t, ok)
		total += v
	}
	assert.InDelta(t, 3+5+7+11, total, 1e-9)

	east, _ := out.Features[0].Attrs.Float("val")
	assert.InDelta(t, 10, east, 1e-9)
}

func TestAggregate_FirstAppearanceOrder(t *testing.T) {
	fc := collection("EPSG:4326",
		fragment(t, "0", 0, 0, 1, "grp", "c", 1),
		fragment(t, "1", 2, 0, 1, "grp", "a", 1),
		fragment(t, "2", 4, 0, 1, "grp", "c", 1),
		fragment(t, "3", 6, 0, 1, "grp", "b", 1),
	)

	out, err := Aggregate(fc, "grp", ReductionSum)
	require.NoError(t, err)

	var order []string
	for _, g := range out.Features {
		order = append(order, g.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, order)
}

func TestAggregate_UnionGeometry(t *testing.T) {
	// Two disjoint unit squares in one group union to area 2.
	fc := collection("EPSG:4326",
		fragment(t, "0", 0, 0, 1, "grp", "g", 1),
		fragment(t, "1", 5, 5, 1, "grp", "g", 1),
	)

	out, err := Aggregate(fc, "grp", ReductionSum)
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	assert.InDelta(t, 2.0, out.Features[0].Geom().Area(), 1e-9)
}

func TestAggregate_Reductions(t *testing.T) {
	fc := collection("EPSG:4326",
		fragment(t, "0", 0, 0, 1, "grp", "g", 4),
		fragment(t, "1", 2, 0, 1, "grp", "g", 10),
	)

	cases := []struct {
		red  Reduction
		want float64
	}{
		{ReductionSum, 14},
		{ReductionCount, 2},
		{ReductionMin, 4},
		{ReductionMax, 10},
		{ReductionMean, 7},
	}
	for _, tc := range cases {
		out, err := Aggregate(fc, "grp", tc.red)
		require.NoError(t, err)
		v, ok := out.Features[0].Attrs.Float("val")
		require.True(t, ok, string(tc.red))
		assert.InDelta(t, tc.want, v, 1e-9, string(tc.red))
	}
}

func TestAggregate_NullAndMissingSkipped(t *testing.T) {
	f1 := fragment(t, "0", 0, 0, 1, "grp", "g", 4)
	f2 := model.NewFeature("1", square(t, 2, 0, 1))
	f2.Attrs.Set("grp", model.Str("g"))
	f2.Attrs.Set("val", model.Null())
	f3 := model.NewFeature("2", square(t, 4, 0, 1))
	f3.Attrs.Set("grp", model.Str("g"))

	out, err := Aggregate(collection("c", f1, f2, f3), "grp", ReductionSum)
	require.NoError(t, err)

	v, ok := out.Features[0].Attrs.Float("val")
	require.True(t, ok)
	assert.InDelta(t, 4, v, 1e-9)

	members, _ := out.Features[0].Attrs.Float("member_count")
	assert.InDelta(t, 3, members, 1e-9)
}

func TestAggregate_MissingKeyExcluded(t *testing.T) {
	f1 := fragment(t, "0", 0, 0, 1, "grp", "g", 4)
	f2 := model.NewFeature("1", square(t, 2, 0, 1))
	f2.Attrs.Set("val", model.Num(100))

	out, err := Aggregate(collection("c", f1, f2), "grp", ReductionSum)
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())

	v, _ := out.Features[0].Attrs.Float("val")
	assert.InDelta(t, 4, v, 1e-9)
}

func TestAggregate_EmptyInput(t *testing.T) {
	out, err := Aggregate(collection("c"), "grp", ReductionSum)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Len())
}

func TestParseReduction(t *testing.T) {
	r, err := ParseReduction("")
	require.NoError(t, err)
	assert.Equal(t, ReductionSum, r)

	_, err = ParseReduction("median")
	require.Error(t, err)
}
