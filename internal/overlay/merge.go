package overlay

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/mapsmith/overlay-cli/internal/model"
)

// aggSuffix disambiguates aggregated attribute names that collide with
// names already present on the left collection during merge.
const aggSuffix = "_agg"

// RankAttr is the 1-based rank attached to matched records by Merge.
const RankAttr = "rank"

// SortGroups returns the groups in descending order of the metric
// attribute. The sort is stable: ties keep their first-appearance
// order. Groups lacking the metric sort last.
func SortGroups(groups *model.FeatureCollection, metricName string) *model.FeatureCollection {
	out := model.NewFeatureCollection(groups.CRS)
	out.Features = make([]*model.Feature, len(groups.Features))
	copy(out.Features, groups.Features)

	sort.SliceStable(out.Features, func(i, j int) bool {
		mi, iOK := out.Features[i].Attrs.Float(metricName)
		mj, jOK := out.Features[j].Attrs.Float(metricName)
		if iOK != jOK {
			return iOK
		}
		return mi > mj
	})
	return out
}

// Merge left-joins sorted group attributes onto the original left
// collection by the grouping key. The output has exactly one record per
// left feature, in the left collection's order; unmatched features get
// a null metric and null rank. Aggregated names colliding with existing
// left attributes are suffixed.
func Merge(left, sortedGroups *model.FeatureCollection, key, metricName string) (*model.FeatureCollection, error) {
	if metricName == "" {
		metricName = DefaultMetricName
	}

	type ranked struct {
		feature *model.Feature
		rank    int
	}
	byKey := make(map[string]ranked, sortedGroups.Len())
	for i, g := range sortedGroups.Features {
		kv, ok := g.Attrs.Get(key)
		if !ok {
			return nil, eris.Errorf("overlay: group %q missing key %q", g.ID, key)
		}
		byKey[kv.String()] = ranked{feature: g, rank: i + 1}
	}

	// Overlay suffixes colliding names, so a group key like "label_1"
	// corresponds to plain "label" on the original left collection.
	leftKey := strings.TrimSuffix(key, SuffixLeft)

	out := model.NewFeatureCollection(left.CRS)
	for _, f := range left.Features {
		merged := f.Clone()

		kv, hasKey := f.Attrs.Get(key)
		if !hasKey && leftKey != key {
			kv, hasKey = f.Attrs.Get(leftKey)
		}
		match, matched := ranked{}, false
		if hasKey && !kv.IsNull() {
			match, matched = byKey[kv.String()]
		}

		if matched {
			for _, name := range match.feature.Attrs.Keys() {
				if name == key {
					continue
				}
				v, _ := match.feature.Attrs.Get(name)
				merged.Attrs.Set(mergedName(f.Attrs, name), v)
			}
			merged.Attrs.Set(mergedName(f.Attrs, RankAttr), model.Num(float64(match.rank)))
		} else {
			merged.Attrs.Set(mergedName(f.Attrs, metricName), model.Null())
			merged.Attrs.Set(mergedName(f.Attrs, RankAttr), model.Null())
		}

		out.Append(merged)
	}
	return out, nil
}

// mergedName suffixes an aggregate attribute name when the original
// feature already carries it.
func mergedName(original *model.Attrs, name string) string {
	if original.Has(name) {
		return name + aggSuffix
	}
	return name
}
