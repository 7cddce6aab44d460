// Package overlay implements the vector overlay-aggregate pipeline:
// intersect two feature collections, dissolve the result by a grouping
// key, derive a scalar metric per group, and rank-merge the groups back
// onto the first collection.
package overlay

import (
	"fmt"

	"github.com/peterstace/simplefeatures/geom"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/mapsmith/overlay-cli/internal/model"
)

// Suffixes applied to colliding attribute names in overlay output:
// left (A) parents get SuffixLeft, right (B) parents get SuffixRight.
const (
	SuffixLeft  = "_1"
	SuffixRight = "_2"
)

// Overlay intersects every ordered pair (a, b) with a from left and b
// from right, keeping pairs with a non-empty intersection. Attributes
// of both parents are carried forward; names present on both sides are
// suffixed. An envelope pre-filter skips pairs whose bounding boxes are
// disjoint; which pairs survive is defined by the geometric predicate
// alone, so the filter does not change output.
//
// Callers are responsible for CRS agreement; the pipeline checks it
// before calling.
func Overlay(left, right *model.FeatureCollection) (*model.FeatureCollection, error) {
	out := model.NewFeatureCollection(left.CRS)

	for i, fa := range left.Features {
		ga := fa.Geom()
		envA := ga.Envelope()

		for j, fb := range right.Features {
			gb := fb.Geom()
			if !envA.Intersects(gb.Envelope()) {
				continue
			}

			inter, err := geom.Intersection(ga, gb)
			if err != nil {
				return nil, eris.Wrapf(err, "overlay: intersect left[%d] with right[%d]", i, j)
			}
			if inter.IsEmpty() {
				continue
			}

			f := model.NewFeature(fmt.Sprintf("%s:%s", fa.ID, fb.ID), inter)
			mergeAttrs(f.Attrs, fa.Attrs, fb.Attrs, SuffixLeft)
			mergeAttrs(f.Attrs, fb.Attrs, fa.Attrs, SuffixRight)
			out.Append(f)
		}
	}

	zap.L().Debug("overlay complete",
		zap.Int("left", left.Len()),
		zap.Int("right", right.Len()),
		zap.Int("pairs", out.Len()),
	)
	return out, nil
}

// mergeAttrs copies src attributes into dst, suffixing names that also
// appear in other.
func mergeAttrs(dst, src, other *model.Attrs, suffix string) {
	for _, k := range src.Keys() {
		v, _ := src.Get(k)
		name := k
		if other.Has(k) {
			name = k + suffix
		}
		dst.Set(name, v)
	}
}
