package render

import (
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// builtinRamps are the color ramps available without a style file.
// Colors run from low to high class.
var builtinRamps = map[string][]string{
	"ylorrd":  {"#ffffb2", "#fecc5c", "#fd8d3c", "#f03b20", "#bd0026"},
	"blues":   {"#eff3ff", "#bdd7e7", "#6baed6", "#3182bd", "#08519c"},
	"greens":  {"#edf8e9", "#bae4b3", "#74c476", "#31a354", "#006d2c"},
	"viridis": {"#440154", "#3b528b", "#21918c", "#5ec962", "#fde725"},
}

// DefaultRamp is used when no ramp is configured.
const DefaultRamp = "ylorrd"

// Style holds named color ramps, merged from the builtins and an
// optional YAML style file.
type Style struct {
	Ramps map[string][]string `yaml:"ramps"`
}

// DefaultStyle returns the builtin ramps only.
func DefaultStyle() *Style {
	ramps := make(map[string][]string, len(builtinRamps))
	for k, v := range builtinRamps {
		ramps[k] = v
	}
	return &Style{Ramps: ramps}
}

// LoadStyle reads a YAML style file and merges its ramps over the
// builtins. File entries win on name collision.
func LoadStyle(path string) (*Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "render: read style %s", path)
	}

	var fileStyle Style
	if err := yaml.Unmarshal(data, &fileStyle); err != nil {
		return nil, eris.Wrap(err, "render: parse style")
	}

	s := DefaultStyle()
	for name, colors := range fileStyle.Ramps {
		s.Ramps[name] = colors
	}
	return s, nil
}

// Ramp resolves a ramp name into colors.
func (s *Style) Ramp(name string) ([]color.RGBA, error) {
	if name == "" {
		name = DefaultRamp
	}
	hexes, ok := s.Ramps[name]
	if !ok {
		return nil, eris.Errorf("render: unknown ramp %q", name)
	}
	if len(hexes) == 0 {
		return nil, eris.Errorf("render: ramp %q has no colors", name)
	}

	out := make([]color.RGBA, len(hexes))
	for i, h := range hexes {
		c, err := ParseHexColor(h)
		if err != nil {
			return nil, eris.Wrapf(err, "render: ramp %q color %d", name, i)
		}
		out[i] = c
	}
	return out, nil
}

// ParseHexColor parses #rgb or #rrggbb notation.
func ParseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")

	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6:
	default:
		return color.RGBA{}, eris.Errorf("render: bad hex color %q", s)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, eris.Errorf("render: bad hex color %q", s)
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}
