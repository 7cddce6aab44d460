package overlay

import (
	"github.com/peterstace/simplefeatures/geom"
	"github.com/rotisserie/eris"

	"github.com/mapsmith/overlay-cli/internal/model"
)

// Reduction names how numeric attributes are combined within a group.
type Reduction string

const (
	ReductionSum   Reduction = "sum"
	ReductionCount Reduction = "count"
	ReductionMin   Reduction = "min"
	ReductionMax   Reduction = "max"
	ReductionMean  Reduction = "mean"
)

// ParseReduction validates a reduction name.
func ParseReduction(s string) (Reduction, error) {
	switch Reduction(s) {
	case ReductionSum, ReductionCount, ReductionMin, ReductionMax, ReductionMean:
		return Reduction(s), nil
	case "":
		return ReductionSum, nil
	default:
		return "", eris.Errorf("overlay: unknown reduction %q", s)
	}
}

// Aggregate dissolves the collection by the given attribute key. Each
// group's geometry is the union of its members and each numeric
// attribute is reduced; null and missing values are skipped. Groups
// appear in first-appearance order of the key. Features missing the key
// entirely, or carrying a null key, are excluded from every group.
func Aggregate(fc *model.FeatureCollection, key string, red Reduction) (*model.FeatureCollection, error) {
	type group struct {
		geometry geom.Geometry
		members  int
		sums     map[string]float64
		mins     map[string]float64
		maxs     map[string]float64
		counts   map[string]int
		attrKeys []string
		keyVal   model.Value
	}

	order := make([]string, 0)
	groups := make(map[string]*group)

	for i, f := range fc.Features {
		kv, ok := f.Attrs.Get(key)
		if !ok || kv.IsNull() {
			continue
		}
		gk := kv.String()

		g, seen := groups[gk]
		if !seen {
			g = &group{
				geometry: f.Geom(),
				sums:     make(map[string]float64),
				mins:     make(map[string]float64),
				maxs:     make(map[string]float64),
				counts:   make(map[string]int),
				keyVal:   kv,
			}
			groups[gk] = g
			order = append(order, gk)
		} else {
			union, err := geom.Union(g.geometry, f.Geom())
			if err != nil {
				return nil, eris.Wrapf(err, "overlay: union group %q at record %d", gk, i)
			}
			g.geometry = union
		}
		g.members++

		for _, name := range f.Attrs.Keys() {
			if name == key {
				continue
			}
			fv, isNum := f.Attrs.Float(name)
			if !isNum {
				continue
			}
			if g.counts[name] == 0 {
				g.attrKeys = append(g.attrKeys, name)
				g.mins[name] = fv
				g.maxs[name] = fv
			} else {
				if fv < g.mins[name] {
					g.mins[name] = fv
				}
				if fv > g.maxs[name] {
					g.maxs[name] = fv
				}
			}
			g.sums[name] += fv
			g.counts[name]++
		}
	}

	out := model.NewFeatureCollection(fc.CRS)
	for _, gk := range order {
		g := groups[gk]
		f := model.NewFeature(gk, g.geometry)
		f.Attrs.Set(key, g.keyVal)

		for _, name := range g.attrKeys {
			var reduced float64
			switch red {
			case ReductionSum:
				reduced = g.sums[name]
			case ReductionCount:
				reduced = float64(g.counts[name])
			case ReductionMin:
				reduced = g.mins[name]
			case ReductionMax:
				reduced = g.maxs[name]
			case ReductionMean:
				reduced = g.sums[name] / float64(g.counts[name])
			default:
				return nil, eris.Errorf("overlay: unknown reduction %q", red)
			}
			f.Attrs.Set(name, model.Num(reduced))
		}

		f.Attrs.Set("member_count", model.Num(float64(g.members)))
		out.Append(f)
	}

	return out, nil
}
