package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infobus/internal/geo"
	"infobus/internal/store"
)

type stubGeocoder struct {
	points map[string]*geo.Point
	errs   map[string]error
	calls  []string
}

func (g *stubGeocoder) Geocode(_ context.Context, address string) (*geo.Point, error) {
	g.calls = append(g.calls, address)
	if err, ok := g.errs[address]; ok {
		return nil, err
	}
	return g.points[address], nil
}

type stubRouter struct {
	path  []geo.Point
	err   error
	calls [][]geo.Point
}

func (r *stubRouter) Route(_ context.Context, stops []geo.Point) ([]geo.Point, error) {
	r.calls = append(r.calls, stops)
	if r.err != nil {
		return nil, r.err
	}
	return r.path, nil
}

func newTestEnricher(g *stubGeocoder, r *stubRouter) (*Enricher, *[]time.Duration) {
	e := NewEnricher(g, r, store.NewMemoryPlaceCache(), "Testville, TS")
	sleeps := &[]time.Duration{}
	e.sleep = func(d time.Duration) { *sleeps = append(*sleeps, d) }
	return e, sleeps
}

func TestResolvePartialFailureKeepsGoing(t *testing.T) {
	g := &stubGeocoder{
		points: map[string]*geo.Point{"Rua A, Testville, TS": {Lat: 1, Lon: 2}},
		errs:   map[string]error{"Rua B, Testville, TS": errors.New("429 too many requests")},
	}
	r := &stubRouter{}
	e, _ := newTestEnricher(g, r)

	stops, path := e.Resolve(context.Background(), []string{"Rua A", "Rua B"})

	assert.Equal(t, []geo.Point{{Lat: 1, Lon: 2}}, stops)
	assert.Empty(t, path)
	assert.Empty(t, r.calls, "routing must not run with fewer than two stops")
}

func TestResolveUnresolvedStreetIsDropped(t *testing.T) {
	g := &stubGeocoder{points: map[string]*geo.Point{
		"Rua A, Testville, TS": {Lat: 1, Lon: 2},
		// Rua B resolves to nil: geocoder answered but found nothing
	}}
	e, _ := newTestEnricher(g, &stubRouter{})

	stops, path := e.Resolve(context.Background(), []string{"Rua A", "Rua B"})

	assert.Equal(t, []geo.Point{{Lat: 1, Lon: 2}}, stops)
	assert.Empty(t, path)
}

func TestResolveOrderPreserved(t *testing.T) {
	g := &stubGeocoder{points: map[string]*geo.Point{
		"Rua A, Testville, TS": {Lat: 1, Lon: 1},
		"Rua C, Testville, TS": {Lat: 3, Lon: 3},
	}}
	r := &stubRouter{path: []geo.Point{{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}, {Lat: 3, Lon: 3}}}
	e, _ := newTestEnricher(g, r)

	stops, path := e.Resolve(context.Background(), []string{"Rua A", "Rua B", "Rua C"})

	assert.Equal(t, []geo.Point{{Lat: 1, Lon: 1}, {Lat: 3, Lon: 3}}, stops)
	assert.Len(t, path, 3)
	require.Len(t, r.calls, 1)
	assert.Equal(t, stops, r.calls[0])
}

func TestResolveRoutingFailureTolerated(t *testing.T) {
	g := &stubGeocoder{points: map[string]*geo.Point{
		"Rua A, Testville, TS": {Lat: 1, Lon: 1},
		"Rua B, Testville, TS": {Lat: 2, Lon: 2},
	}}
	r := &stubRouter{err: errors.New("router down")}
	e, _ := newTestEnricher(g, r)

	stops, path := e.Resolve(context.Background(), []string{"Rua A", "Rua B"})

	assert.Len(t, stops, 2)
	assert.Empty(t, path)
}

func TestResolveWaitsBetweenLiveLookups(t *testing.T) {
	g := &stubGeocoder{points: map[string]*geo.Point{
		"Rua A, Testville, TS": {Lat: 1, Lon: 1},
		"Rua B, Testville, TS": {Lat: 2, Lon: 2},
		"Rua C, Testville, TS": {Lat: 3, Lon: 3},
	}}
	e, sleeps := newTestEnricher(g, &stubRouter{})

	e.Resolve(context.Background(), []string{"Rua A", "Rua B", "Rua C"})

	// n live lookups -> n-1 waits, each the full interval
	require.Len(t, *sleeps, 2)
	for _, d := range *sleeps {
		assert.Equal(t, geocodeInterval, d)
	}
}

func TestResolveCacheHitSkipsLookupAndWait(t *testing.T) {
	g := &stubGeocoder{points: map[string]*geo.Point{
		"Rua A, Testville, TS": {Lat: 1, Lon: 1},
		"Rua B, Testville, TS": {Lat: 2, Lon: 2},
	}}
	e, sleeps := newTestEnricher(g, &stubRouter{path: []geo.Point{{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}}})

	e.Resolve(context.Background(), []string{"Rua A", "Rua B"})
	require.Len(t, g.calls, 2)
	require.Len(t, *sleeps, 1)

	// Second resolve of the same streets is served from cache
	stops, _ := e.Resolve(context.Background(), []string{"Rua A", "Rua B"})
	assert.Len(t, g.calls, 2, "cached addresses must not hit the geocoder again")
	assert.Len(t, *sleeps, 1, "cache hits skip the rate-limit wait")
	assert.Equal(t, []geo.Point{{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}}, stops)
}

func TestResolveNegativeResultIsCached(t *testing.T) {
	g := &stubGeocoder{points: map[string]*geo.Point{}}
	e, _ := newTestEnricher(g, &stubRouter{})

	e.Resolve(context.Background(), []string{"Rua X"})
	e.Resolve(context.Background(), []string{"Rua X"})

	assert.Len(t, g.calls, 1, "a known miss must not be retried")
}

func TestResolveTransportErrorNotCached(t *testing.T) {
	g := &stubGeocoder{
		points: map[string]*geo.Point{},
		errs:   map[string]error{"Rua A, Testville, TS": errors.New("timeout")},
	}
	e, _ := newTestEnricher(g, &stubRouter{})

	e.Resolve(context.Background(), []string{"Rua A"})
	delete(g.errs, "Rua A, Testville, TS")
	g.points["Rua A, Testville, TS"] = &geo.Point{Lat: 5, Lon: 6}

	stops, _ := e.Resolve(context.Background(), []string{"Rua A"})
	assert.Equal(t, []geo.Point{{Lat: 5, Lon: 6}}, stops, "transient failures must stay retryable")
}
