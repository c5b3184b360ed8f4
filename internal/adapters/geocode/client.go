package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"dancemeet/internal/domain"
)

// searchResult is one entry of a Nominatim-style search response.
// Coordinates come back as strings.
type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

type httpGeocoder struct {
	client  *http.Client
	baseURL string
}

// NewHTTPGeocoder returns a Geocoder that calls a Nominatim-compatible
// search endpoint under baseURL.
func NewHTTPGeocoder(client *http.Client, baseURL string) domain.Geocoder {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpGeocoder{client: client, baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (g *httpGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	u := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", g.baseURL, url.QueryEscape(address))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("failed to fetch from geocoder: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinates{}, fmt.Errorf("geocoder returned status: %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Coordinates{}, fmt.Errorf("failed to decode geocoder response: %w", err)
	}
	if len(results) == 0 {
		return domain.Coordinates{}, domain.ErrUnresolved
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("failed to parse latitude %q: %w", results[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("failed to parse longitude %q: %w", results[0].Lon, err)
	}
	return domain.Coordinates{Latitude: lat, Longitude: lng}, nil
}
