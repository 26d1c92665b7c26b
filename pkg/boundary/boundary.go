// Package boundary loads the geographic boundary dataset: one GeoJSON
// feature per territory. Geometry is carried through untouched.
package boundary

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/tidwall/gjson"

	"github.com/agentstation/inetmap/pkg/constants"
	"github.com/agentstation/inetmap/pkg/errors"
)

// Record is one territory of the boundary dataset.
type Record struct {
	ISOA3     string       `json:"iso_a3" yaml:"iso_a3"`
	AdminName string       `json:"admin_name" yaml:"admin_name"`
	Geometry  orb.Geometry `json:"-" yaml:"-"`
}

// Collection is the full, unfiltered boundary set in file order.
type Collection []Record

// Bound returns the bounding box of every geometry in the collection.
// Empty geometries are skipped. The zero Bound is returned when no record
// carries a non-empty geometry.
func (c Collection) Bound() orb.Bound {
	var (
		bound orb.Bound
		set   bool
	)
	for _, rec := range c {
		if rec.Geometry == nil {
			continue
		}
		b := rec.Geometry.Bound()
		if b.IsEmpty() {
			continue
		}
		if !set {
			bound, set = b, true
			continue
		}
		bound = bound.Union(b)
	}
	return bound
}

// Load reads a GeoJSON FeatureCollection from path.
func Load(path string) (Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	c, err := Decode(data)
	if err != nil {
		var parseErr *errors.ParseError
		if errors.As(err, &parseErr) {
			parseErr.File = path
		}
		return nil, err
	}
	return c, nil
}

// Read decodes a GeoJSON FeatureCollection from r.
func Read(r io.Reader) (Collection, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, errors.WrapIO("read", "", err)
	}
	return Decode(buf.Bytes())
}

// Decode parses GeoJSON bytes. ISO_A3 and ADMIN are looked up
// case-insensitively; NAME is used when ADMIN is absent.
func Decode(data []byte) (Collection, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.NewParseError("geojson", "", "invalid JSON", nil)
	}
	if typ := gjson.GetBytes(data, "type").String(); typ != "FeatureCollection" {
		return nil, errors.NewParseError("geojson", "", fmt.Sprintf("expected a FeatureCollection, got %q", typ), nil)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.WrapParse("geojson", "", err)
	}

	out := make(Collection, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f == nil {
			continue
		}
		name := property(f.Properties, constants.BoundaryAdminProperty)
		if name == "" {
			name = property(f.Properties, constants.BoundaryNameProperty)
		}
		out = append(out, Record{
			ISOA3:     property(f.Properties, constants.BoundaryISOProperty),
			AdminName: name,
			Geometry:  f.Geometry,
		})
	}
	return out, nil
}

// property returns the trimmed string form of key, matched case-insensitively.
func property(props geojson.Properties, key string) string {
	v, ok := props[key]
	if !ok {
		for k, candidate := range props {
			if strings.EqualFold(k, key) {
				v, ok = candidate, true
				break
			}
		}
	}
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	default:
		return strings.TrimSpace(fmt.Sprint(s))
	}
}
