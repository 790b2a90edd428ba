package distance

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

// GoogleClient fetches full-mesh distance matrices from the Google Distance
// Matrix API. The API key is injected at construction and never embedded in
// calling code.
type GoogleClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	units      string
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

// NewGoogleClient creates a distance matrix client for the given API key.
func NewGoogleClient(apiKey string, opts ...Option) (*GoogleClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("distance: api key is empty")
	}

	c := &GoogleClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		units:      "imperial",
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

type matrixResponse struct {
	Status               string   `json:"status"`
	DestinationAddresses []string `json:"destination_addresses"`
	Rows                 []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Text string `json:"text"`
			} `json:"distance"`
			Duration struct {
				Text string `json:"text"`
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

// FetchMatrix requests one full origin x destination matrix for the batch,
// supplying every location's formatted address as both origin and
// destination (self-distances included).
func (c *GoogleClient) FetchMatrix(ctx context.Context, batch models.Batch) (Matrix, error) {
	if batch.Size() == 0 {
		return Matrix{}, errors.New("distance: batch is empty")
	}

	addresses := strings.Join(batch.Addresses(), "|")

	q := url.Values{}
	q.Set("origins", addresses)
	q.Set("destinations", addresses)
	q.Set("units", c.units)
	q.Set("key", c.apiKey)

	endpoint := c.baseURL + "/maps/api/distancematrix/json?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Matrix{}, fmt.Errorf("distance: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Matrix{}, fmt.Errorf("distance: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Matrix{}, fmt.Errorf("distance: unexpected status: %d", resp.StatusCode)
	}

	var decoded matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Matrix{}, fmt.Errorf("distance: decode response: %w", err)
	}

	if decoded.Status != "OK" {
		return Matrix{}, fmt.Errorf("distance: service returned status %q", decoded.Status)
	}

	if len(decoded.Rows) != len(decoded.DestinationAddresses) {
		return Matrix{}, fmt.Errorf(
			"distance: row count %d does not match destination count %d",
			len(decoded.Rows), len(decoded.DestinationAddresses),
		)
	}

	matrix := Matrix{
		DestinationAddresses: decoded.DestinationAddresses,
		Rows:                 make([][]Element, 0, len(decoded.Rows)),
	}

	for i, row := range decoded.Rows {
		if len(row.Elements) != len(decoded.DestinationAddresses) {
			return Matrix{}, fmt.Errorf(
				"distance: row %d has %d elements, want %d",
				i, len(row.Elements), len(decoded.DestinationAddresses),
			)
		}

		elements := make([]Element, 0, len(row.Elements))
		for _, el := range row.Elements {
			elements = append(elements, Element{
				Distance: el.Distance.Text,
				Duration: el.Duration.Text,
			})
		}
		matrix.Rows = append(matrix.Rows, elements)
	}

	return matrix, nil
}
