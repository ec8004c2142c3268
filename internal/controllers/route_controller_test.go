package controllers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infobus/internal/controllers"
	"infobus/internal/geo"
	"infobus/internal/middleware"
	"infobus/internal/models"
	"infobus/internal/routes"
	"infobus/internal/services"
	"infobus/internal/store"
)

// Stub collaborators: every street resolves, routing always succeeds.
type stubGeocoder struct{}

func (stubGeocoder) Geocode(_ context.Context, _ string) (*geo.Point, error) {
	return &geo.Point{Lat: 1, Lon: 2}, nil
}

type stubRouter struct{}

func (stubRouter) Route(_ context.Context, stops []geo.Point) ([]geo.Point, error) {
	return stops, nil
}

func newTestRouter() (*gin.Engine, *store.MemoryRouteStore) {
	gin.SetMode(gin.TestMode)
	st := store.NewMemoryRouteStore()
	enricher := services.NewEnricher(stubGeocoder{}, stubRouter{}, store.NewMemoryPlaceCache(), "Testville, TS")
	controllers.Setup(services.NewRouteService(st, enricher))
	return routes.SetupRouter(), st
}

func postRoute(r *gin.Engine, token string) *httptest.ResponseRecorder {
	body := `{"operating_city":"Testville","operator_name":"Urban Lines","route_number":"101","streets":["Rua A"]}`
	req := httptest.NewRequest(http.MethodPost, "/operator/routes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOperatorRoutesRejectRiderToken(t *testing.T) {
	r, st := newTestRouter()

	token, err := middleware.GenerateToken(42, middleware.AccountTypeUser)
	require.NoError(t, err)

	w := postRoute(r, token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	all, err := st.FindAll()
	require.NoError(t, err)
	assert.Empty(t, all, "a rider token must not create routes")
}

func TestGetRouteToleratesCorruptGeometry(t *testing.T) {
	r, st := newTestRouter()
	require.NoError(t, st.Insert(&models.Route{
		OperatingCity: "Testville",
		RouteNumber:   "101",
		GeocodedStops: []byte{0xde, 0xad, 0xbe, 0xef},
		OwnerID:       1,
	}))

	req := httptest.NewRequest(http.MethodGet, "/routes/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"geocoded_stops":""`)
}

func TestOperatorRoutesAcceptOperatorToken(t *testing.T) {
	r, st := newTestRouter()

	token, err := middleware.GenerateToken(42, middleware.AccountTypeOperator)
	require.NoError(t, err)

	w := postRoute(r, token)
	assert.Equal(t, http.StatusCreated, w.Code)

	all, err := st.FindAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, uint(42), all[0].OwnerID)
}
