package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopsRoundTrip(t *testing.T) {
	stops := []Point{{Lat: -23.0, Lon: -47.2}, {Lat: -23.1, Lon: -47.3}}

	wkbBytes, err := MarshalStops(stops)
	require.NoError(t, err)
	require.NotEmpty(t, wkbBytes)

	back, err := UnmarshalPoints(wkbBytes)
	require.NoError(t, err)
	assert.Equal(t, stops, back)

	js, err := WKBToGeoJSON(wkbBytes)
	require.NoError(t, err)
	assert.Contains(t, js, "MultiPoint")
}

func TestPathNeedsTwoPoints(t *testing.T) {
	wkbBytes, err := MarshalPath([]Point{{Lat: 1, Lon: 2}})
	require.NoError(t, err)
	assert.Nil(t, wkbBytes)

	wkbBytes, err = MarshalPath(nil)
	require.NoError(t, err)
	assert.Nil(t, wkbBytes)
}

func TestPathRoundTrip(t *testing.T) {
	path := []Point{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}, {Lat: 5, Lon: 6}}

	wkbBytes, err := MarshalPath(path)
	require.NoError(t, err)

	back, err := UnmarshalPoints(wkbBytes)
	require.NoError(t, err)
	assert.Equal(t, path, back)

	js, err := WKBToGeoJSON(wkbBytes)
	require.NoError(t, err)
	assert.Contains(t, js, "LineString")
}

func TestCorruptWKBReportsError(t *testing.T) {
	junk := []byte{0xde, 0xad, 0xbe, 0xef}

	js, err := WKBToGeoJSON(junk)
	assert.Error(t, err)
	assert.Empty(t, js)

	_, err = UnmarshalPoints(junk)
	assert.Error(t, err)
}

func TestEmptyGeometry(t *testing.T) {
	js, err := WKBToGeoJSON(nil)
	require.NoError(t, err)
	assert.Empty(t, js)

	pts, err := UnmarshalPoints(nil)
	require.NoError(t, err)
	assert.Empty(t, pts)

	wkbBytes, err := MarshalStops(nil)
	require.NoError(t, err)
	assert.Nil(t, wkbBytes)
}
