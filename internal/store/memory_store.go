package store

import (
	"sync"
	"time"

	"github.com/lib/pq"

	"infobus/internal/geo"
	"infobus/internal/models"
)

// MemoryRouteStore is a map-backed RouteStore used by tests and local
// experiments. It mirrors the GormRouteStore contract, including the
// column-name keys of UpdateByID.
type MemoryRouteStore struct {
	mu     sync.Mutex
	nextID uint
	routes map[uint]*models.Route
}

func NewMemoryRouteStore() *MemoryRouteStore {
	return &MemoryRouteStore{nextID: 1, routes: make(map[uint]*models.Route)}
}

func (s *MemoryRouteStore) FindAll() ([]models.Route, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Route, 0, len(s.routes))
	for _, r := range s.routes {
		out = append(out, *r)
	}
	return out, nil
}

func (s *MemoryRouteStore) FindByID(id uint) (*models.Route, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.routes[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *MemoryRouteStore) FindByNumber(number string) ([]models.Route, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Route, 0)
	for _, r := range s.routes {
		if r.RouteNumber == number {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *MemoryRouteStore) FindByFilter(pred func(*models.Route) bool) ([]models.Route, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Route, 0)
	for _, r := range s.routes {
		cp := *r
		if pred(&cp) {
			out = append(out, cp)
		}
	}
	return out, nil
}

func (s *MemoryRouteStore) Insert(route *models.Route) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	route.ID = s.nextID
	route.CreatedAt = time.Now()
	route.UpdatedAt = route.CreatedAt
	s.nextID++
	cp := *route
	s.routes[route.ID] = &cp
	return nil
}

func (s *MemoryRouteStore) UpdateByID(id uint, fields map[string]any) (*models.Route, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.routes[id]
	if !ok {
		return nil, ErrNotFound
	}
	for k, v := range fields {
		applyField(r, k, v)
	}
	r.UpdatedAt = time.Now()
	cp := *r
	return &cp, nil
}

func (s *MemoryRouteStore) DeleteByID(id uint) (*models.Route, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.routes[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(s.routes, id)
	return r, nil
}

func applyField(r *models.Route, column string, value any) {
	switch column {
	case "operating_city":
		r.OperatingCity = value.(string)
	case "operator_name":
		r.OperatorName = value.(string)
	case "route_number":
		r.RouteNumber = value.(string)
	case "fare":
		r.Fare = value.(float64)
	case "notes":
		r.Notes = value.(string)
	case "streets":
		r.Streets = value.(pq.StringArray)
	case "weekday_schedule":
		r.WeekdaySchedule = value.(pq.StringArray)
	case "saturday_schedule":
		r.SaturdaySchedule = value.(pq.StringArray)
	case "sunday_schedule":
		r.SundaySchedule = value.(pq.StringArray)
	case "geocoded_stops":
		r.GeocodedStops = value.([]byte)
	case "routed_path":
		r.RoutedPath = value.([]byte)
	}
}

// MemoryPlaceCache is the in-process PlaceCache counterpart.
type MemoryPlaceCache struct {
	mu     sync.Mutex
	places map[string]*geo.Point
}

func NewMemoryPlaceCache() *MemoryPlaceCache {
	return &MemoryPlaceCache{places: make(map[string]*geo.Point)}
}

func (c *MemoryPlaceCache) Lookup(address string) (*geo.Point, bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	pt, hit := c.places[address]
	if !hit {
		return nil, false, false
	}
	if pt == nil {
		return nil, false, true
	}
	cp := *pt
	return &cp, true, true
}

func (c *MemoryPlaceCache) Store(address string, pt *geo.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if pt == nil {
		c.places[address] = nil
		return
	}
	cp := *pt
	c.places[address] = &cp
}
