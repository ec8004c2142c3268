package store

import (
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"infobus/internal/geo"
	"infobus/internal/models"
)

// GormRouteStore persists route records through the shared GORM handle.
type GormRouteStore struct {
	db *gorm.DB
}

func NewGormRouteStore(db *gorm.DB) *GormRouteStore {
	return &GormRouteStore{db: db}
}

func (s *GormRouteStore) FindAll() ([]models.Route, error) {
	var routes []models.Route
	if err := s.db.Find(&routes).Error; err != nil {
		return nil, err
	}
	return routes, nil
}

func (s *GormRouteStore) FindByID(id uint) (*models.Route, error) {
	var route models.Route
	if err := s.db.First(&route, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &route, nil
}

func (s *GormRouteStore) FindByNumber(number string) ([]models.Route, error) {
	var routes []models.Route
	if err := s.db.Where("route_number = ?", number).Find(&routes).Error; err != nil {
		return nil, err
	}
	return routes, nil
}

// FindByFilter loads all records and filters in process. The search
// predicates need case folding and per-element substring checks over
// array columns, which don't map onto simple Where clauses; at this
// dataset size a scan is the simpler contract.
func (s *GormRouteStore) FindByFilter(pred func(*models.Route) bool) ([]models.Route, error) {
	all, err := s.FindAll()
	if err != nil {
		return nil, err
	}
	matched := make([]models.Route, 0)
	for i := range all {
		if pred(&all[i]) {
			matched = append(matched, all[i])
		}
	}
	return matched, nil
}

func (s *GormRouteStore) Insert(route *models.Route) error {
	return s.db.Create(route).Error
}

func (s *GormRouteStore) UpdateByID(id uint, fields map[string]any) (*models.Route, error) {
	if len(fields) > 0 {
		res := s.db.Model(&models.Route{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return s.FindByID(id)
}

func (s *GormRouteStore) DeleteByID(id uint) (*models.Route, error) {
	prior, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	res := s.db.Where("id = ?", id).Delete(&models.Route{})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return prior, nil
}

// GormPlaceCache stores geocoder answers in the geocode_places table.
// Cache failures degrade to misses; enrichment never depends on it.
type GormPlaceCache struct {
	db *gorm.DB
}

func NewGormPlaceCache(db *gorm.DB) *GormPlaceCache {
	return &GormPlaceCache{db: db}
}

func (c *GormPlaceCache) Lookup(address string) (*geo.Point, bool, bool) {
	var place models.GeocodePlace
	if err := c.db.Where("address = ?", address).First(&place).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithError(err).Warn("geocode cache lookup failed")
		}
		return nil, false, false
	}
	if !place.Found {
		return nil, false, true
	}
	return &geo.Point{Lat: place.Lat, Lon: place.Lon}, true, true
}

func (c *GormPlaceCache) Store(address string, pt *geo.Point) {
	place := models.GeocodePlace{Address: address, Found: pt != nil}
	if pt != nil {
		place.Lat = pt.Lat
		place.Lon = pt.Lon
	}
	if err := c.db.Create(&place).Error; err != nil {
		logrus.WithError(err).Warn("geocode cache store failed")
	}
}
