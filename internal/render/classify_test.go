package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreaks_EqualInterval(t *testing.T) {
	breaks, err := Breaks([]float64{0, 10, 20, 30, 40}, 4, SchemeEqualInterval)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{10, 20, 30}, breaks, 1e-9)
}

func TestBreaks_Quantile(t *testing.T) {
	breaks, err := Breaks([]float64{1, 2, 3, 4}, 2, SchemeQuantile)
	require.NoError(t, err)
	require.Len(t, breaks, 1)
	assert.InDelta(t, 2.5, breaks[0], 1e-9)
}

func TestBreaks_UnsortedInput(t *testing.T) {
	vals := []float64{40, 0, 20, 30, 10}
	breaks, err := Breaks(vals, 4, SchemeEqualInterval)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{10, 20, 30}, breaks, 1e-9)
	// Input untouched.
	assert.Equal(t, []float64{40, 0, 20, 30, 10}, vals)
}

func TestBreaks_Errors(t *testing.T) {
	_, err := Breaks(nil, 4, SchemeQuantile)
	require.Error(t, err)

	_, err = Breaks([]float64{1}, 1, SchemeQuantile)
	require.Error(t, err)
}

func TestClassIndex(t *testing.T) {
	breaks := []float64{10, 20, 30}
	assert.Equal(t, 0, ClassIndex(5, breaks))
	assert.Equal(t, 0, ClassIndex(10, breaks))
	assert.Equal(t, 1, ClassIndex(15, breaks))
	assert.Equal(t, 3, ClassIndex(99, breaks))
}

func TestParseScheme(t *testing.T) {
	s, err := ParseScheme("")
	require.NoError(t, err)
	assert.Equal(t, SchemeQuantile, s)

	_, err = ParseScheme("jenks")
	require.Error(t, err)
}
