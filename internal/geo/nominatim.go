package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultUserAgent = "InfoBus/1.0 (infobus-backend)"

// NominatimClient geocodes addresses against a Nominatim instance.
// The public instance enforces a strict request-rate policy; pacing
// between calls is the caller's job (see services.Enricher).
type NominatimClient struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

func NewNominatimClient(baseURL string) *NominatimClient {
	return &NominatimClient{
		baseURL:   baseURL,
		userAgent: defaultUserAgent,
		// The source service pinned no timeout; bound it explicitly here.
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Nominatim returns lat/lon as JSON strings, not numbers.
type nominatimPlace struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode looks up a single address and returns its best candidate, or
// nil when the service knows no such place.
func (n *NominatimClient) Geocode(ctx context.Context, address string) (*Point, error) {
	endpoint := fmt.Sprintf("%s/search?format=json&q=%s&limit=1", n.baseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create geocode request: %w", err)
	}
	// Nominatim requires an identifying User-Agent
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(places) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parse latitude %q: %w", places[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parse longitude %q: %w", places[0].Lon, err)
	}

	return &Point{Lat: lat, Lon: lon}, nil
}
