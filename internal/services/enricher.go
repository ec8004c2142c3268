package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"infobus/internal/geo"
	"infobus/internal/store"
)

// geocodeInterval is the minimum spacing between consecutive live
// geocoder calls. The public Nominatim instance allows one request per
// second; 1.1s keeps us under it.
const geocodeInterval = 1100 * time.Millisecond

// Enricher turns a route's street list into resolved stop coordinates
// and a drivable path. Enrichment is best-effort by policy: every
// failure mode narrows the result instead of surfacing an error, so a
// route is never blocked from persisting because an external service
// had a bad day.
type Enricher struct {
	geocoder geo.Geocoder
	router   geo.Router
	cache    store.PlaceCache
	locality string
	interval time.Duration
	sleep    func(time.Duration)
}

// NewEnricher builds an enricher that appends the given locality suffix
// ("Indaiatuba, SP") to every street before geocoding it.
func NewEnricher(geocoder geo.Geocoder, router geo.Router, cache store.PlaceCache, locality string) *Enricher {
	return &Enricher{
		geocoder: geocoder,
		router:   router,
		cache:    cache,
		locality: locality,
		interval: geocodeInterval,
		sleep:    time.Sleep,
	}
}

// Resolve geocodes each street in order, dropping the ones that fail,
// then asks the router for a path when at least two stops resolved.
//
// Lookups run strictly one at a time with a fixed wait between live
// calls; the external rate policy makes parallelizing this a bug, not an
// optimization. Cache hits skip both the network and the wait. The wait
// sits on the caller's critical path on purpose.
func (e *Enricher) Resolve(ctx context.Context, streets []string) ([]geo.Point, []geo.Point) {
	stops := make([]geo.Point, 0, len(streets))

	throttle := false
	for _, street := range streets {
		address := street + ", " + e.locality

		if pt, found, hit := e.cache.Lookup(address); hit {
			if found {
				stops = append(stops, *pt)
			}
			continue
		}

		if throttle {
			e.sleep(e.interval)
		}
		throttle = true

		logrus.WithField("street", street).Debug("geocoding street")
		pt, err := e.geocoder.Geocode(ctx, address)
		if err != nil {
			// Transient transport failure: skip the street, don't poison
			// the cache, keep going.
			logrus.WithError(err).WithField("street", street).Warn("geocoding failed, skipping street")
			continue
		}

		e.cache.Store(address, pt)
		if pt == nil {
			logrus.WithField("street", street).Info("street did not geocode")
			continue
		}
		stops = append(stops, *pt)
	}

	var path []geo.Point
	if len(stops) >= 2 {
		routed, err := e.router.Route(ctx, stops)
		if err != nil {
			logrus.WithError(err).Warn("routing failed, keeping route without path")
		} else {
			path = routed
		}
	}

	return stops, path
}
