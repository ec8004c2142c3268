package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"infobus/internal/geo"
	"infobus/internal/models"
	"infobus/internal/services"
	"infobus/internal/store"
)

var routeService *services.RouteService

// Setup wires the shared route service into the handler package.
func Setup(svc *services.RouteService) {
	routeService = svc
}

// RouteResponse mirrors models.Route but carries the stored WKB geometry
// as GeoJSON strings for API output.
type RouteResponse struct {
	ID               uint           `json:"ID"`
	CreatedAt        time.Time      `json:"CreatedAt"`
	UpdatedAt        time.Time      `json:"UpdatedAt"`
	DeletedAt        gorm.DeletedAt `json:"DeletedAt,omitempty"`
	OperatingCity    string         `json:"operating_city"`
	OperatorName     string         `json:"operator_name"`
	RouteNumber      string         `json:"route_number"`
	Fare             float64        `json:"fare"`
	Notes            string         `json:"notes"`
	Streets          []string       `json:"streets"`
	WeekdaySchedule  []string       `json:"weekday_schedule"`
	SaturdaySchedule []string       `json:"saturday_schedule"`
	SundaySchedule   []string       `json:"sunday_schedule"`
	GeocodedStops    string         `json:"geocoded_stops"` // GeoJSON MultiPoint
	RoutedPath       string         `json:"routed_path"`    // GeoJSON LineString
	OwnerID          uint           `json:"owner_id"`
}

// toRouteResponse converts a models.Route to a RouteResponse. Geometry
// that fails to convert degrades to an empty string, logged like every
// other enrichment degradation.
func toRouteResponse(route models.Route) RouteResponse {
	stopsJSON, err := geo.WKBToGeoJSON(route.GeocodedStops)
	if err != nil {
		logrus.WithError(err).WithField("route_id", route.ID).Error("converting stored stops to GeoJSON failed")
	}
	pathJSON, err := geo.WKBToGeoJSON(route.RoutedPath)
	if err != nil {
		logrus.WithError(err).WithField("route_id", route.ID).Error("converting stored path to GeoJSON failed")
	}
	return RouteResponse{
		ID:               route.ID,
		CreatedAt:        route.CreatedAt,
		UpdatedAt:        route.UpdatedAt,
		DeletedAt:        route.DeletedAt,
		OperatingCity:    route.OperatingCity,
		OperatorName:     route.OperatorName,
		RouteNumber:      route.RouteNumber,
		Fare:             route.Fare,
		Notes:            route.Notes,
		Streets:          route.Streets,
		WeekdaySchedule:  route.WeekdaySchedule,
		SaturdaySchedule: route.SaturdaySchedule,
		SundaySchedule:   route.SundaySchedule,
		GeocodedStops:    stopsJSON,
		RoutedPath:       pathJSON,
		OwnerID:          route.OwnerID,
	}
}

func toRouteResponses(routes []models.Route) []RouteResponse {
	out := make([]RouteResponse, 0, len(routes))
	for _, r := range routes {
		out = append(out, toRouteResponse(r))
	}
	return out
}

// ListAllRoutes returns every route (public).
func ListAllRoutes(c *gin.Context) {
	routes, err := routeService.All()
	if err != nil {
		logrus.WithError(err).Error("ListAllRoutes: listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": toRouteResponses(routes)})
}

// GetRoute returns a single route by ID (public).
func GetRoute(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	route, err := routeService.Get(uint(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		} else {
			logrus.WithError(err).Error("GetRoute: lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": toRouteResponse(*route)})
}

// GetRoutesByNumber returns all routes carrying a route number (public).
// Numbers are reused across cities, so this can return several records.
func GetRoutesByNumber(c *gin.Context) {
	routes, err := routeService.ByNumber(c.Param("number"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No route with number " + c.Param("number")})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": toRouteResponses(routes)})
}

// SearchRoutes runs one of the two set-intersection searches, selected
// by the :type path segment ("any" or "or").
func SearchRoutes(c *gin.Context) {
	var filter services.SearchFilter
	if err := c.ShouldBindJSON(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		routes []models.Route
		err    error
	)
	switch c.Param("type") {
	case "any":
		routes, err = routeService.SearchAny(filter)
	case "or":
		routes, err = routeService.SearchOr(filter)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid search type: " + c.Param("type")})
		return
	}
	if err != nil {
		logrus.WithError(err).Error("SearchRoutes: search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": toRouteResponses(routes)})
}

// SearchRoutesAdvanced runs the combinable-predicate search.
func SearchRoutesAdvanced(c *gin.Context) {
	var filter services.AdvancedSearchFilter
	if err := c.ShouldBindJSON(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	routes, err := routeService.SearchAdvanced(filter)
	if err != nil {
		if errors.Is(err, services.ErrBadDayFilter) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logrus.WithError(err).Error("SearchRoutesAdvanced: search failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": toRouteResponses(routes)})
}

// CreateRoute registers a new route owned by the authenticated operator.
// Enrichment runs synchronously; a geocoder outage still yields a
// created route, just without geometry.
func CreateRoute(c *gin.Context) {
	var input services.CreateRouteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateRoute: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	ownerID := c.MustGet("account_id").(uint)
	route, err := routeService.Create(c.Request.Context(), input, ownerID)
	if err != nil {
		logrus.WithError(err).Error("CreateRoute: create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create route failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"route": toRouteResponse(*route)})
}

// UpdateRoute applies a partial update to a route the caller owns.
func UpdateRoute(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logrus.WithError(err).Warn("UpdateRoute: invalid route ID in parameter")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	var input services.UpdateRouteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("UpdateRoute: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ownerID := c.MustGet("account_id").(uint)
	route, err := routeService.Update(c.Request.Context(), uint(id), input, ownerID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the owning operator can modify this route"})
		default:
			logrus.WithError(err).Error("UpdateRoute: update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": toRouteResponse(*route)})
}

// DeleteRoute removes a route the caller owns and echoes its prior state.
func DeleteRoute(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	ownerID := c.MustGet("account_id").(uint)
	route, err := routeService.Remove(uint(id), ownerID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the owning operator can delete this route"})
		default:
			logrus.WithError(err).Error("DeleteRoute: delete failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Delete failed: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Route deleted successfully", "route": toRouteResponse(*route)})
}

// GeocodeStreets previews enrichment for a street list without
// persisting anything.
func GeocodeStreets(c *gin.Context) {
	var input struct {
		Streets []string `json:"streets" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stops, path := routeService.Enrich(c.Request.Context(), input.Streets)
	c.JSON(http.StatusOK, gin.H{"geocoded_stops": stops, "routed_path": path})
}
