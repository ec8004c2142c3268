package services

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"infobus/internal/geo"
	"infobus/internal/models"
	"infobus/internal/store"
)

// ErrForbidden is returned when a mutation comes from an operator that
// does not own the route.
var ErrForbidden = errors.New("route belongs to another operator")

// CreateRouteInput carries the fields an operator supplies when
// registering a route. OwnerID is never part of it.
type CreateRouteInput struct {
	OperatingCity    string   `json:"operating_city" binding:"required"`
	OperatorName     string   `json:"operator_name" binding:"required"`
	RouteNumber      string   `json:"route_number" binding:"required"`
	Fare             float64  `json:"fare"`
	Notes            string   `json:"notes"`
	Streets          []string `json:"streets"`
	WeekdaySchedule  []string `json:"weekday_schedule"`
	SaturdaySchedule []string `json:"saturday_schedule"`
	SundaySchedule   []string `json:"sunday_schedule"`
}

// UpdateRouteInput is the partial-update shape: nil pointers and nil
// slices mean "leave the field alone".
type UpdateRouteInput struct {
	OperatingCity    *string  `json:"operating_city"`
	OperatorName     *string  `json:"operator_name"`
	RouteNumber      *string  `json:"route_number"`
	Fare             *float64 `json:"fare"`
	Notes            *string  `json:"notes"`
	Streets          []string `json:"streets"`
	WeekdaySchedule  []string `json:"weekday_schedule"`
	SaturdaySchedule []string `json:"saturday_schedule"`
	SundaySchedule   []string `json:"sunday_schedule"`
}

// RouteService owns route reads, searches and the ownership-guarded
// mutations. Ownership is always checked against the stored record, not
// the request, so a forged owner field in a body buys nothing.
type RouteService struct {
	store    store.RouteStore
	enricher *Enricher
}

func NewRouteService(s store.RouteStore, e *Enricher) *RouteService {
	return &RouteService{store: s, enricher: e}
}

// All returns every stored route.
func (s *RouteService) All() ([]models.Route, error) {
	return s.store.FindAll()
}

// Get returns one route or store.ErrNotFound.
func (s *RouteService) Get(id uint) (*models.Route, error) {
	return s.store.FindByID(id)
}

// ByNumber returns the routes sharing a route number. An empty result is
// not-found: riders ask for numbers they saw on a bus, so nothing
// matching means the number is wrong.
func (s *RouteService) ByNumber(number string) ([]models.Route, error) {
	routes, err := s.store.FindByNumber(number)
	if err != nil {
		return nil, err
	}
	if len(routes) == 0 {
		return nil, store.ErrNotFound
	}
	return routes, nil
}

// ByOwner returns the routes created by one operator.
func (s *RouteService) ByOwner(ownerID uint) ([]models.Route, error) {
	return s.store.FindByFilter(func(r *models.Route) bool {
		return r.OwnerID == ownerID
	})
}

// Enrich exposes the geocoding pipeline directly (geocode preview).
func (s *RouteService) Enrich(ctx context.Context, streets []string) ([]geo.Point, []geo.Point) {
	return s.enricher.Resolve(ctx, streets)
}

// Create enriches the street list and persists a new route owned by the
// calling operator. Enrichment failures degrade to partial or empty
// geometry; they never fail the create.
func (s *RouteService) Create(ctx context.Context, in CreateRouteInput, ownerID uint) (*models.Route, error) {
	stops, path := s.enricher.Resolve(ctx, in.Streets)

	route := &models.Route{
		OperatingCity:    in.OperatingCity,
		OperatorName:     in.OperatorName,
		RouteNumber:      in.RouteNumber,
		Fare:             in.Fare,
		Notes:            in.Notes,
		Streets:          pq.StringArray(in.Streets),
		WeekdaySchedule:  pq.StringArray(in.WeekdaySchedule),
		SaturdaySchedule: pq.StringArray(in.SaturdaySchedule),
		SundaySchedule:   pq.StringArray(in.SundaySchedule),
		OwnerID:          ownerID,
	}
	route.GeocodedStops, route.RoutedPath = encodeGeometry(stops, path)

	if err := s.store.Insert(route); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"route_id": route.ID,
		"owner_id": ownerID,
		"stops":    len(stops),
	}).Info("route created")
	return route, nil
}

// Update applies a partial update after checking that the caller owns
// the stored route. Supplying a non-empty street list re-runs
// enrichment and overwrites the geometry; leaving it out keeps both.
func (s *RouteService) Update(ctx context.Context, id uint, in UpdateRouteInput, ownerID uint) (*models.Route, error) {
	existing, err := s.store.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	fields := make(map[string]any)
	if in.OperatingCity != nil {
		fields["operating_city"] = *in.OperatingCity
	}
	if in.OperatorName != nil {
		fields["operator_name"] = *in.OperatorName
	}
	if in.RouteNumber != nil {
		fields["route_number"] = *in.RouteNumber
	}
	if in.Fare != nil {
		fields["fare"] = *in.Fare
	}
	if in.Notes != nil {
		fields["notes"] = *in.Notes
	}
	if in.WeekdaySchedule != nil {
		fields["weekday_schedule"] = pq.StringArray(in.WeekdaySchedule)
	}
	if in.SaturdaySchedule != nil {
		fields["saturday_schedule"] = pq.StringArray(in.SaturdaySchedule)
	}
	if in.SundaySchedule != nil {
		fields["sunday_schedule"] = pq.StringArray(in.SundaySchedule)
	}

	if len(in.Streets) > 0 {
		stops, path := s.enricher.Resolve(ctx, in.Streets)
		fields["streets"] = pq.StringArray(in.Streets)
		fields["geocoded_stops"], fields["routed_path"] = encodeGeometry(stops, path)
	}

	// The store reports not-found here too, covering a delete that won
	// the race since the ownership check above.
	return s.store.UpdateByID(id, fields)
}

// Remove deletes a route after the same existence and ownership checks
// as Update, returning the record's prior state. A second Remove of the
// same ID fails with store.ErrNotFound.
func (s *RouteService) Remove(id uint, ownerID uint) (*models.Route, error) {
	existing, err := s.store.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	deleted, err := s.store.DeleteByID(id)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"route_id": id,
		"owner_id": ownerID,
	}).Info("route deleted")
	return deleted, nil
}

// encodeGeometry converts pipeline output to the stored WKB form.
// Encoding errors follow the enrichment degradation policy: log and
// store empty geometry.
func encodeGeometry(stops, path []geo.Point) ([]byte, []byte) {
	stopsWKB, err := geo.MarshalStops(stops)
	if err != nil {
		logrus.WithError(err).Warn("encoding geocoded stops failed")
		stopsWKB = nil
	}
	pathWKB, err := geo.MarshalPath(path)
	if err != nil {
		logrus.WithError(err).Warn("encoding routed path failed")
		pathWKB = nil
	}
	return stopsWKB, pathWKB
}
