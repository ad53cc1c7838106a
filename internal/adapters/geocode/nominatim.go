// Package geocode resolves administrative area names to boundary polygons
// using the Nominatim search API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Client is a Nominatim geocoding client. Calls are synchronous and carry no
// internal retry: an unreachable service aborts the caller's run.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client against the given Nominatim base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type searchResult struct {
	DisplayName string          `json:"display_name"`
	GeoJSON     json.RawMessage `json:"geojson"`
}

// StateBoundary fetches the boundary polygon for "<state>, USA", taking the
// first result as the original system does.
func (c *Client) StateBoundary(ctx context.Context, state string) (orb.MultiPolygon, error) {
	q := url.Values{}
	q.Set("q", state+", USA")
	q.Set("format", "jsonv2")
	q.Set("polygon_geojson", "1")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "aptel/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode nominatim response: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no geocoding result for %q", state)
	}

	geom, err := geojson.UnmarshalGeometry(results[0].GeoJSON)
	if err != nil {
		return nil, fmt.Errorf("decode boundary geometry for %q: %w", state, err)
	}

	switch g := geom.Geometry().(type) {
	case orb.Polygon:
		return orb.MultiPolygon{g}, nil
	case orb.MultiPolygon:
		return g, nil
	default:
		return nil, fmt.Errorf("unexpected boundary geometry %T for %q", g, state)
	}
}
