package render

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStyle_Ramps(t *testing.T) {
	s := DefaultStyle()

	ramp, err := s.Ramp(DefaultRamp)
	require.NoError(t, err)
	assert.Len(t, ramp, 5)

	_, err = s.Ramp("nope")
	require.Error(t, err)
}

func TestLoadStyle_MergesOverBuiltins(t *testing.T) {
	doc := `
ramps:
  custom: ["#000000", "#ffffff"]
  ylorrd: ["#111111", "#222222"]
`
	path := filepath.Join(t.TempDir(), "style.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	s, err := LoadStyle(path)
	require.NoError(t, err)

	custom, err := s.Ramp("custom")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{A: 0xff}, custom[0])

	// File overrides the builtin ramp of the same name.
	overridden, err := s.Ramp("ylorrd")
	require.NoError(t, err)
	require.Len(t, overridden, 2)
	assert.Equal(t, color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}, overridden[0])

	// Untouched builtins survive the merge.
	_, err = s.Ramp("blues")
	require.NoError(t, err)
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#fd8d3c")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xfd, G: 0x8d, B: 0x3c, A: 0xff}, c)

	c, err = ParseHexColor("#f00")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, c)

	_, err = ParseHexColor("red")
	require.Error(t, err)
}
