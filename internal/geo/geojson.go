package geo

import (
	"encoding/binary"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// Geometry round-trips: points come out of the enrichment pipeline as
// ordered lat/lon pairs, live in the database as WKB, and leave the API
// as GeoJSON strings. WKB and GeoJSON both use X=lon, Y=lat.

// MarshalStops encodes resolved stops as a WKB MultiPoint, preserving
// order. Returns nil for an empty list.
func MarshalStops(stops []Point) ([]byte, error) {
	if len(stops) == 0 {
		return nil, nil
	}
	coords := make([]geom.Coord, 0, len(stops))
	for _, s := range stops {
		coords = append(coords, geom.Coord{s.Lon, s.Lat})
	}
	mp, err := geom.NewMultiPoint(geom.XY).SetCoords(coords)
	if err != nil {
		return nil, err
	}
	return wkb.Marshal(mp, binary.LittleEndian)
}

// MarshalPath encodes a routed path as a WKB LineString. Returns nil for
// paths with fewer than two points, which cannot form a line.
func MarshalPath(path []Point) ([]byte, error) {
	if len(path) < 2 {
		return nil, nil
	}
	coords := make([]geom.Coord, 0, len(path))
	for _, p := range path {
		coords = append(coords, geom.Coord{p.Lon, p.Lat})
	}
	ls, err := geom.NewLineString(geom.XY).SetCoords(coords)
	if err != nil {
		return nil, err
	}
	return wkb.Marshal(ls, binary.LittleEndian)
}

// WKBToGeoJSON converts stored WKB bytes into a GeoJSON string for API
// responses. Empty input yields an empty string.
func WKBToGeoJSON(wkbBytes []byte) (string, error) {
	if len(wkbBytes) == 0 {
		return "", nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return "", err
	}
	b, err := gjson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// UnmarshalPoints decodes WKB back into ordered lat/lon pairs. Accepts
// the two geometry kinds routes store (MultiPoint and LineString).
func UnmarshalPoints(wkbBytes []byte) ([]Point, error) {
	if len(wkbBytes) == 0 {
		return nil, nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return nil, err
	}
	var coords []geom.Coord
	switch t := g.(type) {
	case *geom.MultiPoint:
		coords = t.Coords()
	case *geom.LineString:
		coords = t.Coords()
	default:
		coords = nil
	}
	pts := make([]Point, 0, len(coords))
	for _, c := range coords {
		pts = append(pts, Point{Lat: c.Y(), Lon: c.X()})
	}
	return pts, nil
}
