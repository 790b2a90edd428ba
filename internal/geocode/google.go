package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"store-locator/internal/models"
)

const defaultBaseURL = "https://maps.googleapis.com"

// GoogleClient resolves free-form addresses to canonical addresses and
// coordinates via the Google Geocode API.
type GoogleClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// Option customizes a GoogleClient.
type Option func(*GoogleClient)

// WithBaseURL overrides the API base URL (used by tests).
func WithBaseURL(u string) Option {
	return func(c *GoogleClient) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *GoogleClient) { c.httpClient = hc }
}

// NewGoogleClient creates a geocoding client for the given API key.
func NewGoogleClient(apiKey string, opts ...Option) (*GoogleClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("geocode: api key is empty")
	}

	c := &GoogleClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Result is one forward-geocoding resolution.
type Result struct {
	FormattedAddress string
	Latitude         float64
	Longitude        float64
}

// Geocode resolves a single address. The first candidate returned by the
// service wins.
func (c *GoogleClient) Geocode(ctx context.Context, address string) (Result, error) {
	if strings.TrimSpace(address) == "" {
		return Result{}, errors.New("geocode: address is empty")
	}

	q := url.Values{}
	q.Set("address", address)
	q.Set("key", c.apiKey)

	endpoint := c.baseURL + "/maps/api/geocode/json?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Result{}, fmt.Errorf("geocode: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("geocode: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("geocode: unexpected status: %d", resp.StatusCode)
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Result{}, fmt.Errorf("geocode: decode response: %w", err)
	}

	if decoded.Status != "OK" || len(decoded.Results) == 0 {
		return Result{}, fmt.Errorf("geocode: no results for %q (status %q)", address, decoded.Status)
	}

	first := decoded.Results[0]
	return Result{
		FormattedAddress: first.FormattedAddress,
		Latitude:         first.Geometry.Location.Lat,
		Longitude:        first.Geometry.Location.Lng,
	}, nil
}

// Resolve geocodes a raw store record into a full Location, deriving the
// region code from the composed input address.
func (c *GoogleClient) Resolve(ctx context.Context, siteID, name, address string) (models.Location, error) {
	res, err := c.Geocode(ctx, address)
	if err != nil {
		return models.Location{}, err
	}

	return models.Location{
		SiteID:           siteID,
		Name:             name,
		InputAddress:     address,
		FormattedAddress: res.FormattedAddress,
		RegionCode:       models.RegionOf(address),
		Latitude:         res.Latitude,
		Longitude:        res.Longitude,
	}, nil
}
