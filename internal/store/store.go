package store

import (
	"errors"

	"infobus/internal/geo"
	"infobus/internal/models"
)

// ErrNotFound is returned when a route ID matches no stored record. The
// mutate calls report it too, so a lost load-then-mutate race surfaces
// the same way as a plain missing ID.
var ErrNotFound = errors.New("route not found")

// RouteStore is the persistence contract for route records. Keys in the
// UpdateByID field map are column names ("operating_city", "fare", ...).
type RouteStore interface {
	FindAll() ([]models.Route, error)
	FindByID(id uint) (*models.Route, error)
	FindByNumber(number string) ([]models.Route, error)
	// FindByFilter returns records matching the predicate, in natural
	// scan order. No ordering is guaranteed.
	FindByFilter(pred func(*models.Route) bool) ([]models.Route, error)
	Insert(route *models.Route) error
	// UpdateByID applies a partial update and returns the updated record,
	// or ErrNotFound when no record matched.
	UpdateByID(id uint, fields map[string]any) (*models.Route, error)
	// DeleteByID removes the record and returns its prior state, or
	// ErrNotFound when no record matched.
	DeleteByID(id uint) (*models.Route, error)
}

// PlaceCache remembers geocoder answers per address. Lookup reports
// hit=false on a cache miss; found=false marks an address the geocoder
// answered but could not resolve.
type PlaceCache interface {
	Lookup(address string) (pt *geo.Point, found bool, hit bool)
	Store(address string, pt *geo.Point)
}
