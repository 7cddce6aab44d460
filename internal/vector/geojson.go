package vector

import (
	"bytes"
	"encoding/json"
	"os"
	"sort"
	"strconv"

	"github.com/peterstace/simplefeatures/geom"

	"github.com/mapsmith/overlay-cli/internal/model"
)

// defaultGeoJSONCRS is the tag assumed for GeoJSON input without a
// legacy crs member (RFC 7946 mandates WGS84).
const defaultGeoJSONCRS = "EPSG:4326"

type geojsonCRS struct {
	Type       string `json:"type"`
	Properties struct {
		Name string `json:"name"`
	} `json:"properties"`
}

type geojsonFeature struct {
	Type       string          `json:"type"`
	ID         any             `json:"id,omitempty"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties map[string]any  `json:"properties"`
}

type geojsonCollection struct {
	Type     string           `json:"type"`
	CRS      *geojsonCRS      `json:"crs,omitempty"`
	Features []geojsonFeature `json:"features"`
}

// ReadGeoJSON reads a GeoJSON FeatureCollection file. Property order is
// not preserved by JSON decoding, so attributes are stored in sorted
// key order for determinism.
func ReadGeoJSON(path string) (*model.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &model.FormatError{Source: path, Record: -1, Err: err}
	}

	var wire geojsonCollection
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, &model.FormatError{Source: path, Record: -1, Err: err}
	}

	crs := defaultGeoJSONCRS
	if wire.CRS != nil && wire.CRS.Properties.Name != "" {
		crs = wire.CRS.Properties.Name
	}

	fc := model.NewFeatureCollection(crs)
	for i, wf := range wire.Features {
		g, err := geom.UnmarshalGeoJSON(wf.Geometry)
		if err != nil {
			return nil, &model.FormatError{Source: path, Record: i, Err: err}
		}

		id := strconv.Itoa(i)
		if wf.ID != nil {
			switch t := wf.ID.(type) {
			case string:
				id = t
			case float64:
				id = strconv.FormatFloat(t, 'g', -1, 64)
			}
		}

		f := model.NewFeature(id, g)
		keys := make([]string, 0, len(wf.Properties))
		for k := range wf.Properties {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			f.Attrs.Set(k, model.FromInterface(wf.Properties[k]))
		}
		fc.Append(f)
	}

	return fc, nil
}

// WriteGeoJSON writes the collection's active geometry slot and all
// attributes to a GeoJSON file. Properties keep attribute insertion
// order.
func WriteGeoJSON(path string, fc *model.FeatureCollection) error {
	var buf bytes.Buffer
	buf.WriteString(`{"type":"FeatureCollection"`)

	if fc.CRS != "" && fc.CRS != "unknown" {
		crsJSON, err := json.Marshal(fc.CRS)
		if err != nil {
			return err
		}
		buf.WriteString(`,"crs":{"type":"name","properties":{"name":`)
		buf.Write(crsJSON)
		buf.WriteString(`}}`)
	}

	buf.WriteString(`,"features":[`)
	for i, f := range fc.Features {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeFeatureJSON(&buf, fc, f); err != nil {
			return err
		}
	}
	buf.WriteString(`]}`)
	buf.WriteByte('\n')

	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func writeFeatureJSON(buf *bytes.Buffer, fc *model.FeatureCollection, f *model.Feature) error {
	buf.WriteString(`{"type":"Feature","id":`)
	idJSON, err := json.Marshal(f.ID)
	if err != nil {
		return err
	}
	buf.Write(idJSON)

	buf.WriteString(`,"geometry":`)
	if g, ok := fc.ActiveGeometry(f); ok {
		gJSON, err := json.Marshal(g)
		if err != nil {
			return err
		}
		buf.Write(gJSON)
	} else {
		buf.WriteString("null")
	}

	buf.WriteString(`,"properties":{`)
	for j, k := range f.Attrs.Keys() {
		if j > 0 {
			buf.WriteByte(',')
		}
		kJSON, err := json.Marshal(k)
		if err != nil {
			return err
		}
		buf.Write(kJSON)
		buf.WriteByte(':')
		v, _ := f.Attrs.Get(k)
		vJSON, err := json.Marshal(v.Interface())
		if err != nil {
			return err
		}
		buf.Write(vJSON)
	}
	buf.WriteString(`}}`)
	return nil
}
