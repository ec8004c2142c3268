package geo

import "context"

// Point is a geographic coordinate in latitude/longitude order, the order
// route records expose. External services that want longitude first get
// the swap done inside their client.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Geocoder resolves a free-text address to at most one coordinate.
// A nil point with a nil error means the address produced no result.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*Point, error)
}

// Router connects an ordered list of stops with a drivable path.
type Router interface {
	Route(ctx context.Context, stops []Point) ([]Point, error)
}
