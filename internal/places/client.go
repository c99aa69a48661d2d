package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"halfway.meetspot.org/internal/models"
)

const defaultBaseURL = "https://maps.googleapis.com"

// Provider response statuses that do not indicate a failed call.
const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

// StatusError is a non-OK status returned in the provider's response body.
type StatusError struct {
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("provider returned status %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("provider returned status %s", e.Status)
}

// Client implements Provider against the Google Places and Geocoding web
// services. Credentials are resolved through the settings func on every
// request, so a rotated API key or base URL takes effect without a restart;
// nothing is read from ambient global state.
type Client struct {
	settings   func() (apiKey, baseURL string)
	httpClient *http.Client
}

// NewClient creates a places client with fixed credentials. An empty baseURL
// selects the production endpoint; a nil httpClient gets a default with a
// 10 second timeout.
func NewClient(apiKey, baseURL string, httpClient *http.Client) *Client {
	return NewClientFunc(func() (string, string) { return apiKey, baseURL }, httpClient)
}

// NewClientFunc creates a places client that re-reads its API key and base
// URL from the given func on each request. Long-running services pass a
// getter backed by their refreshable configuration here.
func NewClientFunc(settings func() (apiKey, baseURL string), httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		settings:   settings,
		httpClient: httpClient,
	}
}

// resolve returns the current credentials, substituting the production
// endpoint for an empty base URL.
func (c *Client) resolve() (apiKey, baseURL string) {
	apiKey, baseURL = c.settings()
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return apiKey, baseURL
}

type nearbyResponse struct {
	Results      []RawVenue `json:"results"`
	Status       string     `json:"status"`
	ErrorMessage string     `json:"error_message,omitempty"`
}

// SearchNearby fetches one page of venue records for a single category tag.
// A ZERO_RESULTS status is an empty list, not an error.
func (c *Client) SearchNearby(ctx context.Context, center models.Coordinate, radiusMeters int, category string) ([]RawVenue, error) {
	q := url.Values{}
	q.Set("location", formatLatLng(center))
	q.Set("radius", strconv.Itoa(radiusMeters))
	q.Set("type", category)

	var resp nearbyResponse
	if err := c.getJSON(ctx, "/maps/api/place/nearbysearch/json", q, &resp); err != nil {
		return nil, err
	}

	switch resp.Status {
	case statusOK, statusZeroResults:
		return resp.Results, nil
	default:
		return nil, &StatusError{Status: resp.Status, Message: resp.ErrorMessage}
	}
}

type autocompleteResponse struct {
	Predictions []struct {
		Description string `json:"description"`
		PlaceID     string `json:"place_id"`
	} `json:"predictions"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// Autocomplete returns place suggestions for partial query text.
func (c *Client) Autocomplete(ctx context.Context, query string) ([]Suggestion, error) {
	q := url.Values{}
	q.Set("input", query)

	var resp autocompleteResponse
	if err := c.getJSON(ctx, "/maps/api/place/autocomplete/json", q, &resp); err != nil {
		return nil, err
	}

	if resp.Status != statusOK && resp.Status != statusZeroResults {
		return nil, &StatusError{Status: resp.Status, Message: resp.ErrorMessage}
	}

	suggestions := make([]Suggestion, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		suggestions = append(suggestions, Suggestion{
			Description: p.Description,
			PlaceID:     p.PlaceID,
		})
	}
	return suggestions, nil
}

type geocodeResponse struct {
	Results []struct {
		PlaceID          string   `json:"place_id"`
		FormattedAddress string   `json:"formatted_address"`
		Geometry         Geometry `json:"geometry"`
	} `json:"results"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// Geocode resolves a free-form address into a Location.
func (c *Client) Geocode(ctx context.Context, address string) (models.Location, error) {
	q := url.Values{}
	q.Set("address", address)
	return c.geocode(ctx, q, address)
}

// ReverseGeocode resolves a coordinate into an addressed Location.
func (c *Client) ReverseGeocode(ctx context.Context, coord models.Coordinate) (models.Location, error) {
	q := url.Values{}
	q.Set("latlng", formatLatLng(coord))
	return c.geocode(ctx, q, formatLatLng(coord))
}

func (c *Client) geocode(ctx context.Context, q url.Values, query string) (models.Location, error) {
	var resp geocodeResponse
	if err := c.getJSON(ctx, "/maps/api/geocode/json", q, &resp); err != nil {
		return models.Location{}, err
	}

	if resp.Status != statusOK {
		return models.Location{}, &StatusError{Status: resp.Status, Message: resp.ErrorMessage}
	}
	if len(resp.Results) == 0 {
		return models.Location{}, fmt.Errorf("no geocoding results for %q", query)
	}

	top := resp.Results[0]
	return models.Location{
		ID:      top.PlaceID,
		Name:    top.FormattedAddress,
		Address: top.FormattedAddress,
		Coordinate: models.Coordinate{
			Latitude:  top.Geometry.Location.Lat,
			Longitude: top.Geometry.Location.Lng,
		},
	}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out interface{}) error {
	apiKey, baseURL := c.resolve()
	q.Set("key", apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request for %s: %v", path, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code from %s: %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %v", path, err)
	}
	return nil
}

func formatLatLng(c models.Coordinate) string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}
