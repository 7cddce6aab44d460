package overlay

import (
	"github.com/rotisserie/eris"

	"github.com/mapsmith/overlay-cli/internal/model"
)

// Presentation is the handoff to a rendering collaborator: a collection
// with its active geometry slot switched, and the numeric column whose
// values drive the color mapping. The pipeline does not render.
type Presentation struct {
	Collection   *model.FeatureCollection
	GeometrySlot string
	Column       string
}

// Present switches the collection's active geometry slot and selects
// the display column. The slot must exist on every feature and the
// column must be numeric on at least one; null column values are fine
// and render as the no-data class.
func Present(fc *model.FeatureCollection, slot, column string) (*Presentation, error) {
	if slot == "" {
		slot = model.DefaultGeometrySlot
	}

	for _, f := range fc.Features {
		if _, ok := f.Geometry(slot); !ok {
			return nil, eris.Errorf("overlay: feature %q has no geometry slot %q", f.ID, slot)
		}
	}

	numeric := false
	for _, f := range fc.Features {
		if _, ok := f.Attrs.Float(column); ok {
			numeric = true
			break
		}
	}
	if !numeric {
		return nil, eris.Errorf("overlay: column %q has no numeric values", column)
	}

	fc.SetActiveSlot(slot)
	return &Presentation{Collection: fc, GeometrySlot: slot, Column: column}, nil
}
