// Package render draws choropleth maps from a pipeline presentation:
// polygons filled by classed column values, with a legend. It is the
// plotting collaborator of the overlay pipeline, not part of it.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/fogleman/gg"
	"github.com/peterstace/simplefeatures/geom"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"

	"github.com/mapsmith/overlay-cli/internal/model"
	"github.com/mapsmith/overlay-cli/internal/overlay"
)

// Options configures a choropleth rendering.
type Options struct {
	Width   int
	Height  int
	Classes int
	Scheme  Scheme
	Ramp    []color.RGBA
	Legend  bool
}

// DefaultOptions are sensible choropleth defaults.
func DefaultOptions() Options {
	return Options{
		Width:   1024,
		Height:  768,
		Classes: 5,
		Scheme:  SchemeQuantile,
		Legend:  true,
	}
}

var (
	backgroundColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	strokeColor     = color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}
	noDataColor     = color.RGBA{R: 0xd9, G: 0xd9, B: 0xd9, A: 0xff}
)

const margin = 20.0

// Choropleth renders the presentation's collection, coloring each
// feature by its column value's class. Features with a null or missing
// column value are drawn in the no-data color.
func Choropleth(pres *overlay.Presentation, opts Options) (image.Image, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, eris.New("render: width and height must be positive")
	}
	if len(opts.Ramp) == 0 {
		ramp, err := DefaultStyle().Ramp(DefaultRamp)
		if err != nil {
			return nil, err
		}
		opts.Ramp = ramp
	}
	if opts.Classes < 2 {
		opts.Classes = 2
	}
	if opts.Classes > len(opts.Ramp) {
		opts.Classes = len(opts.Ramp)
	}

	fc := pres.Collection

	var values []float64
	for _, f := range fc.Features {
		if v, ok := f.Attrs.Float(pres.Column); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return nil, eris.Errorf("render: column %q has no numeric values", pres.Column)
	}

	breaks, err := Breaks(values, opts.Classes, opts.Scheme)
	if err != nil {
		return nil, err
	}

	bbox, ok := collectionBounds(fc)
	if !ok {
		return nil, eris.New("render: no drawable geometry")
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetColor(backgroundColor)
	dc.Clear()
	dc.SetFillRule(gg.FillRuleEvenOdd)

	proj := newProjection(bbox, float64(opts.Width), float64(opts.Height))

	for _, f := range fc.Features {
		g, has := fc.ActiveGeometry(f)
		if !has {
			continue
		}

		fill := noDataColor
		if v, numeric := f.Attrs.Float(pres.Column); numeric {
			fill = opts.Ramp[ClassIndex(v, breaks)]
		}

		drawGeometry(dc, g, proj, fill)
	}

	if opts.Legend {
		drawLegend(dc, opts.Ramp[:opts.Classes], breaks, pres.Column)
	}

	zap.L().Debug("rendered choropleth",
		zap.String("column", pres.Column),
		zap.Int("features", fc.Len()),
		zap.Int("classes", opts.Classes),
	)
	return dc.Image(), nil
}

// WriteImage encodes the image by output extension: .png or .webp.
func WriteImage(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "render: create %s", path)
	}
	defer func() { _ = out.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		if err := png.Encode(out, img); err != nil {
			return eris.Wrap(err, "render: encode png")
		}
	case ".webp":
		if err := webp.Encode(out, img, &webp.Options{Lossless: true}); err != nil {
			return eris.Wrap(err, "render: encode webp")
		}
	default:
		return eris.Errorf("render: unsupported image format %q", filepath.Ext(path))
	}
	return nil
}

// bounds is a planar bounding box in data coordinates.
type bounds struct {
	minX, minY, maxX, maxY float64
	set                    bool
}

func (b *bounds) extend(xy geom.XY) {
	if !b.set {
		b.minX, b.maxX = xy.X, xy.X
		b.minY, b.maxY = xy.Y, xy.Y
		b.set = true
		return
	}
	if xy.X < b.minX {
		b.minX = xy.X
	}
	if xy.X > b.maxX {
		b.maxX = xy.X
	}
	if xy.Y < b.minY {
		b.minY = xy.Y
	}
	if xy.Y > b.maxY {
		b.maxY = xy.Y
	}
}

// CollectionBounds reports the planar bounding box of the collection's
// active geometries.
func CollectionBounds(fc *model.FeatureCollection) (min, max geom.XY, ok bool) {
	b, ok := collectionBounds(fc)
	if !ok {
		return geom.XY{}, geom.XY{}, false
	}
	return geom.XY{X: b.minX, Y: b.minY}, geom.XY{X: b.maxX, Y: b.maxY}, true
}

func collectionBounds(fc *model.FeatureCollection) (bounds, bool) {
	var b bounds
	for _, f := range fc.Features {
		g, ok := fc.ActiveGeometry(f)
		if !ok {
			continue
		}
		walkCoords(g, b.extend)
	}
	return b, b.set
}

// projection maps data coordinates to pixel coordinates, preserving
// aspect ratio and flipping Y (image origin is top-left).
type projection struct {
	scale      float64
	offX, offY float64
}

func newProjection(b bounds, w, h float64) projection {
	spanX := b.maxX - b.minX
	spanY := b.maxY - b.minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}

	scale := (w - 2*margin) / spanX
	if s := (h - 2*margin) / spanY; s < scale {
		scale = s
	}

	return projection{
		scale: scale,
		offX:  margin - b.minX*scale,
		offY:  margin + b.maxY*scale,
	}
}

func (p projection) apply(xy geom.XY) (float64, float64) {
	return xy.X*p.scale + p.offX, p.offY - xy.Y*p.scale
}

// drawGeometry renders one geometry: polygons filled and stroked,
// lines stroked, points as small dots.
func drawGeometry(dc *gg.Context, g geom.Geometry, proj projection, fill color.Color) {
	switch g.Type() {
	case geom.TypePolygon:
		drawPolygon(dc, g.MustAsPolygon(), proj, fill)
	case geom.TypeMultiPolygon:
		mp := g.MustAsMultiPolygon()
		for i := 0; i < mp.NumPolygons(); i++ {
			drawPolygon(dc, mp.PolygonN(i), proj, fill)
		}
	case geom.TypeLineString:
		strokeLine(dc, g.MustAsLineString(), proj, fill)
	case geom.TypeMultiLineString:
		mls := g.MustAsMultiLineString()
		for i := 0; i < mls.NumLineStrings(); i++ {
			strokeLine(dc, mls.LineStringN(i), proj, fill)
		}
	case geom.TypePoint:
		if xy, ok := g.MustAsPoint().XY(); ok {
			x, y := proj.apply(xy)
			dc.SetColor(fill)
			dc.DrawCircle(x, y, 3)
			dc.Fill()
		}
	case geom.TypeMultiPoint:
		mpt := g.MustAsMultiPoint()
		for i := 0; i < mpt.NumPoints(); i++ {
			if xy, ok := mpt.PointN(i).XY(); ok {
				x, y := proj.apply(xy)
				dc.SetColor(fill)
				dc.DrawCircle(x, y, 3)
				dc.Fill()
			}
		}
	case geom.TypeGeometryCollection:
		gc := g.MustAsGeometryCollection()
		for i := 0; i < gc.NumGeometries(); i++ {
			drawGeometry(dc, gc.GeometryN(i), proj, fill)
		}
	}
}

func drawPolygon(dc *gg.Context, poly geom.Polygon, proj projection, fill color.Color) {
	tracePath := func(ls geom.LineString) {
		seq := ls.Coordinates()
		dc.NewSubPath()
		for i := 0; i < seq.Length(); i++ {
			x, y := proj.apply(seq.GetXY(i))
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
	}

	tracePath(poly.ExteriorRing())
	for i := 0; i < poly.NumInteriorRings(); i++ {
		tracePath(poly.InteriorRingN(i))
	}

	dc.SetColor(fill)
	dc.FillPreserve()
	dc.SetColor(strokeColor)
	dc.SetLineWidth(1)
	dc.Stroke()
}

func strokeLine(dc *gg.Context, ls geom.LineString, proj projection, c color.Color) {
	seq := ls.Coordinates()
	for i := 0; i < seq.Length(); i++ {
		x, y := proj.apply(seq.GetXY(i))
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.SetColor(c)
	dc.SetLineWidth(2)
	dc.Stroke()
}

func drawLegend(dc *gg.Context, ramp []color.RGBA, breaks []float64, column string) {
	const (
		swatch  = 16.0
		pad     = 6.0
		labelDX = 24.0
	)

	dc.SetFontFace(basicfont.Face7x13)

	x := margin
	y := float64(dc.Height()) - margin - float64(len(ramp))*(swatch+pad)

	dc.SetColor(strokeColor)
	dc.DrawString(column, x, y-pad)

	for i, c := range ramp {
		sy := y + float64(i)*(swatch+pad)
		dc.SetColor(c)
		dc.DrawRectangle(x, sy, swatch, swatch)
		dc.Fill()
		dc.SetColor(strokeColor)
		dc.DrawString(legendLabel(i, breaks), x+labelDX, sy+swatch-3)
	}
}

// legendLabel renders the class range for legend row i.
func legendLabel(i int, breaks []float64) string {
	switch {
	case len(breaks) == 0:
		return "all"
	case i == 0:
		return fmt.Sprintf("<= %.4g", breaks[0])
	case i >= len(breaks):
		return fmt.Sprintf("> %.4g", breaks[len(breaks)-1])
	default:
		return fmt.Sprintf("%.4g - %.4g", breaks[i-1], breaks[i])
	}
}

// walkCoords visits every coordinate of a geometry.
func walkCoords(g geom.Geometry, visit func(geom.XY)) {
	walkSeq := func(seq geom.Sequence) {
		for i := 0; i < seq.Length(); i++ {
			visit(seq.GetXY(i))
		}
	}

	switch g.Type() {
	case geom.TypePoint:
		if xy, ok := g.MustAsPoint().XY(); ok {
			visit(xy)
		}
	case geom.TypeMultiPoint:
		mpt := g.MustAsMultiPoint()
		for i := 0; i < mpt.NumPoints(); i++ {
			if xy, ok := mpt.PointN(i).XY(); ok {
				visit(xy)
			}
		}
	case geom.TypeLineString:
		walkSeq(g.MustAsLineString().Coordinates())
	case geom.TypeMultiLineString:
		mls := g.MustAsMultiLineString()
		for i := 0; i < mls.NumLineStrings(); i++ {
			walkSeq(mls.LineStringN(i).Coordinates())
		}
	case geom.TypePolygon:
		poly := g.MustAsPolygon()
		walkSeq(poly.ExteriorRing().Coordinates())
		for i := 0; i < poly.NumInteriorRings(); i++ {
			walkSeq(poly.InteriorRingN(i).Coordinates())
		}
	case geom.TypeMultiPolygon:
		mp := g.MustAsMultiPolygon()
		for i := 0; i < mp.NumPolygons(); i++ {
			poly := mp.PolygonN(i)
			walkSeq(poly.ExteriorRing().Coordinates())
			for j := 0; j < poly.NumInteriorRings(); j++ {
				walkSeq(poly.InteriorRingN(j).Coordinates())
			}
		}
	case geom.TypeGeometryCollection:
		gc := g.MustAsGeometryCollection()
		for i := 0; i < gc.NumGeometries(); i++ {
			walkCoords(gc.GeometryN(i), visit)
		}
	}
}
