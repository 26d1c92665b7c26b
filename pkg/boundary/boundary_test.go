package boundary_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/inetmap/pkg/boundary"
	"github.com/agentstation/inetmap/pkg/errors"
)

const sampleGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"ISO_A3": "FRA", "ADMIN": "France"},
      "geometry": {"type": "Polygon", "coordinates": [[[0,40],[10,40],[10,50],[0,50],[0,40]]]}
    },
    {
      "type": "Feature",
      "properties": {"iso_a3": "usa", "name": "United States of America"},
      "geometry": {"type": "MultiPolygon", "coordinates": [[[[-120,30],[-70,30],[-70,50],[-120,50],[-120,30]]]]}
    },
    {
      "type": "Feature",
      "properties": {"ISO_A3": -99, "ADMIN": "Kosovo"},
      "geometry": null
    }
  ]
}`

func TestDecode(t *testing.T) {
	c, err := boundary.Decode([]byte(sampleGeoJSON))
	require.NoError(t, err)
	require.Len(t, c, 3)

	assert.Equal(t, "FRA", c[0].ISOA3)
	assert.Equal(t, "France", c[0].AdminName)
	assert.IsType(t, orb.Polygon{}, c[0].Geometry)

	assert.Equal(t, "usa", c[1].ISOA3, "identifiers keep their case; the reconciler normalizes")
	assert.Equal(t, "United States of America", c[1].AdminName, "NAME is the display name fallback")
	assert.IsType(t, orb.MultiPolygon{}, c[1].Geometry)

	assert.Equal(t, "-99", c[2].ISOA3)
	assert.Nil(t, c[2].Geometry)
}

func TestCollectionBound(t *testing.T) {
	c, err := boundary.Decode([]byte(sampleGeoJSON))
	require.NoError(t, err)

	b := c.Bound()
	assert.Equal(t, orb.Point{-120, 30}, b.Min)
	assert.Equal(t, orb.Point{10, 50}, b.Max)

	assert.Equal(t, orb.Bound{}, boundary.Collection{}.Bound())
}

func TestCollectionBoundSkipsEmptyGeometry(t *testing.T) {
	c := boundary.Collection{
		{ISOA3: "AAA", Geometry: orb.MultiPolygon{}},
		{ISOA3: "BBB", Geometry: orb.Polygon{}},
		{ISOA3: "USA", Geometry: orb.Polygon{orb.Ring{{10, 0}, {11, 0}, {11, 1}, {10, 1}, {10, 0}}}},
	}

	b := c.Bound()
	assert.Equal(t, orb.Point{10, 0}, b.Min)
	assert.Equal(t, orb.Point{11, 1}, b.Max)

	only := boundary.Collection{{ISOA3: "AAA", Geometry: orb.MultiPolygon{}}}
	assert.Equal(t, orb.Bound{}, only.Bound())
}

func TestRead(t *testing.T) {
	c, err := boundary.Read(strings.NewReader(sampleGeoJSON))
	require.NoError(t, err)
	assert.Len(t, c, 3)
}

func TestDecodeInvalid(t *testing.T) {
	_, err := boundary.Decode([]byte(`{"type": "FeatureCollection", "features": [`))
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestDecodeRejectsSingleFeature(t *testing.T) {
	feature := `{"type":"Feature","properties":{"ISO_A3":"FRA"},"geometry":null}`
	_, err := boundary.Decode([]byte(feature))

	var parseErr *errors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Message, `got "Feature"`)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.geojson")
	require.NoError(t, os.WriteFile(path, []byte(sampleGeoJSON), 0o644))

	c, err := boundary.Load(path)
	require.NoError(t, err)
	assert.Len(t, c, 3)

	bad := filepath.Join(dir, "bad.geojson")
	require.NoError(t, os.WriteFile(bad, []byte("not json"), 0o644))
	_, err = boundary.Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)

	_, err = boundary.Load(filepath.Join(dir, "missing.geojson"))
	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}
