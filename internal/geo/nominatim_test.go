package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNominatimGeocode(t *testing.T) {
	var gotQuery, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotUA = r.Header.Get("User-Agent")
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		w.Write([]byte(`[{"lat":"-23.0896","lon":"-47.2181"}]`))
	}))
	defer srv.Close()

	pt, err := NewNominatimClient(srv.URL).Geocode(context.Background(), "Avenida Central, Indaiatuba, SP")
	require.NoError(t, err)
	require.NotNil(t, pt)
	assert.Equal(t, -23.0896, pt.Lat)
	assert.Equal(t, -47.2181, pt.Lon)
	assert.Equal(t, "Avenida Central, Indaiatuba, SP", gotQuery)
	assert.NotEmpty(t, gotUA)
}

func TestNominatimGeocodeNoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	pt, err := NewNominatimClient(srv.URL).Geocode(context.Background(), "Rua Fantasma")
	require.NoError(t, err)
	assert.Nil(t, pt)
}

func TestNominatimGeocodeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewNominatimClient(srv.URL).Geocode(context.Background(), "Rua A")
	assert.Error(t, err)
}

func TestNominatimGeocodeMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	_, err := NewNominatimClient(srv.URL).Geocode(context.Background(), "Rua A")
	assert.Error(t, err)
}
