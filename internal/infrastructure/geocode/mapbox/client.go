package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.mapbox.com"

// Client resolves coordinates to place names via the Mapbox geocoding API.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// New creates a Client. baseURL falls back to the public API when empty.
func New(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpc: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type geocodeResp struct {
	Features []struct {
		PlaceName string `json:"place_name"`
	} `json:"features"`
}

// ReverseGeocode returns the place name of the first feature matching the
// coordinates. Callers treat any error as non-fatal and fall back to raw
// coordinates.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	u.Path = fmt.Sprintf("/geocoding/v5/mapbox.places/%f,%f.json", lng, lat)

	q := u.Query()
	q.Set("access_token", c.token)
	q.Set("limit", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("mapbox http %d", resp.StatusCode)
	}

	var r geocodeResp
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(r.Features) == 0 {
		return "", fmt.Errorf("no features for %f,%f", lat, lng)
	}
	return r.Features[0].PlaceName, nil
}
