package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Route represents a single bus line: the identifying attributes riders
// search by, the ordered list of streets it serves, per-day departure
// times, and the geometry derived from geocoding those streets.
type Route struct {
	gorm.Model

	OperatingCity string `json:"operating_city" binding:"required"`
	OperatorName  string `json:"operator_name"`
	// RouteNumber is not unique; different cities reuse the same number.
	RouteNumber string  `json:"route_number" gorm:"index"`
	Fare        float64 `json:"fare"`
	Notes       string  `json:"notes"`

	// Streets is ordered: it is the stop sequence, not a set.
	Streets pq.StringArray `json:"streets" gorm:"type:text[]"`

	// Departure times per service day, "HH:MM" 24-hour strings.
	WeekdaySchedule  pq.StringArray `json:"weekday_schedule" gorm:"type:text[]"`
	SaturdaySchedule pq.StringArray `json:"saturday_schedule" gorm:"type:text[]"`
	SundaySchedule   pq.StringArray `json:"sunday_schedule" gorm:"type:text[]"`

	// Geometry stored as WKB: a MultiPoint with the resolved stops (one per
	// street that geocoded, so possibly fewer than len(Streets)) and a
	// LineString with the drivable path connecting them.
	// Controllers render both as GeoJSON strings.
	GeocodedStops []byte `json:"-" gorm:"type:bytea"`
	RoutedPath    []byte `json:"-" gorm:"type:bytea"`

	// OwnerID is the operator account that created the route. Set once at
	// creation from the authenticated identity, never from a request body.
	OwnerID uint `json:"owner_id" gorm:"index"`
}
