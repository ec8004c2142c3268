package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// OSRMClient requests drivable paths from an OSRM routing server.
type OSRMClient struct {
	baseURL string
	client  *http.Client
}

func NewOSRMClient(baseURL string) *OSRMClient {
	return &OSRMClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// Route asks OSRM for a full-geometry driving path through the given
// stops, in order. OSRM speaks lon,lat; the translation both ways
// happens here so callers only ever see lat/lon.
func (o *OSRMClient) Route(ctx context.Context, stops []Point) ([]Point, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("routing needs at least 2 stops, got %d", len(stops))
	}

	pairs := make([]string, 0, len(stops))
	for _, s := range stops {
		pairs = append(pairs, fmt.Sprintf("%f,%f", s.Lon, s.Lat))
	}
	endpoint := fmt.Sprintf("%s/route/v1/driving/%s?overview=full&geometries=geojson",
		o.baseURL, strings.Join(pairs, ";"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create routing request: %w", err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute routing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("router returned status %d", resp.StatusCode)
	}

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode routing response: %w", err)
	}
	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		return nil, fmt.Errorf("router rejected request: code %q", decoded.Code)
	}

	coords := decoded.Routes[0].Geometry.Coordinates
	path := make([]Point, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			return nil, fmt.Errorf("invalid coordinate pair in routing response")
		}
		path = append(path, Point{Lat: c[1], Lon: c[0]})
	}
	return path, nil
}
