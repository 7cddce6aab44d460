package model

import (
	"github.com/peterstace/simplefeatures/geom"
)

// DefaultGeometrySlot is the geometry slot populated by the vector readers.
const DefaultGeometrySlot = "geometry"

// Feature is one record of a collection: an identifier, one or more
// named geometry slots, and an ordered attribute mapping. Geometries
// are treated as immutable once set; transforms produce new Features.
type Feature struct {
	ID    string
	Attrs *Attrs

	geoms     map[string]geom.Geometry
	slotOrder []string
}

// NewFeature creates a Feature with the given id and geometry stored
// under the default slot.
func NewFeature(id string, g geom.Geometry) *Feature {
	f := &Feature{ID: id, Attrs: NewAttrs()}
	f.SetGeometry(DefaultGeometrySlot, g)
	return f
}

// SetGeometry stores a geometry under a named slot.
func (f *Feature) SetGeometry(slot string, g geom.Geometry) {
	if f.geoms == nil {
		f.geoms = make(map[string]geom.Geometry)
	}
	if _, ok := f.geoms[slot]; !ok {
		f.slotOrder = append(f.slotOrder, slot)
	}
	f.geoms[slot] = g
}

// Geometry returns the geometry in the named slot.
func (f *Feature) Geometry(slot string) (geom.Geometry, bool) {
	g, ok := f.geoms[slot]
	return g, ok
}

// Geom returns the default-slot geometry, or an empty geometry when unset.
func (f *Feature) Geom() geom.Geometry {
	return f.geoms[DefaultGeometrySlot]
}

// GeometrySlots returns slot names in insertion order.
func (f *Feature) GeometrySlots() []string {
	out := make([]string, len(f.slotOrder))
	copy(out, f.slotOrder)
	return out
}

// Clone returns a copy of the feature. Geometries are shared, which is
// safe because they are never mutated.
func (f *Feature) Clone() *Feature {
	c := &Feature{ID: f.ID, Attrs: f.Attrs.Clone()}
	for _, slot := range f.slotOrder {
		c.SetGeometry(slot, f.geoms[slot])
	}
	return c
}

// FeatureCollection is an ordered sequence of Features sharing one CRS
// tag. The active geometry slot names which per-feature geometry
// downstream consumers (rendering, export) should read; it defaults to
// the slot the readers populate.
type FeatureCollection struct {
	CRS      string
	Features []*Feature

	activeSlot string
}

// NewFeatureCollection creates an empty collection with the given CRS tag.
func NewFeatureCollection(crs string) *FeatureCollection {
	return &FeatureCollection{CRS: crs, activeSlot: DefaultGeometrySlot}
}

// Append adds a feature to the end of the collection.
func (fc *FeatureCollection) Append(f *Feature) {
	fc.Features = append(fc.Features, f)
}

// Len returns the number of features.
func (fc *FeatureCollection) Len() int {
	return len(fc.Features)
}

// ActiveSlot returns the name of the active geometry slot.
func (fc *FeatureCollection) ActiveSlot() string {
	if fc.activeSlot == "" {
		return DefaultGeometrySlot
	}
	return fc.activeSlot
}

// SetActiveSlot switches the active geometry slot. Features without the
// slot are tolerated here; consumers decide how to handle them.
func (fc *FeatureCollection) SetActiveSlot(slot string) {
	fc.activeSlot = slot
}

// ActiveGeometry returns the feature's geometry in the collection's
// active slot.
func (fc *FeatureCollection) ActiveGeometry(f *Feature) (geom.Geometry, bool) {
	return f.Geometry(fc.ActiveSlot())
}
