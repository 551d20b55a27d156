// Package digitransit provides a client for the Digitransit geocoding API.
package digitransit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/kone-app/route-planner/internal/geocode"
	"github.com/kone-app/route-planner/internal/provider/resilience"
)

const (
	// ProviderName identifies this geocoding provider.
	ProviderName = "geocoding"

	// DefaultBaseURL is the Digitransit geocoding search endpoint.
	DefaultBaseURL = "https://api.digitransit.fi/geocoding/v1/search"
)

// ClientConfig holds configuration for the geocoding client.
type ClientConfig struct {
	// APIKey is the Digitransit subscription key (required).
	APIKey string

	// BaseURL is the search endpoint (optional, defaults to Digitransit).
	BaseURL string

	// HTTPClient is the transport to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a Digitransit geocoding API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new geocoding client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Resolve geocodes the origin and then the destination place name.
// Each place takes the first feature of its response; a response with
// zero features fails with geocode.ErrNoMatch.
func (c *Client) Resolve(ctx context.Context, origin, destination string) (geocode.Coordinate, geocode.Coordinate, error) {
	originCoord, err := c.lookup(ctx, origin)
	if err != nil {
		return geocode.Coordinate{}, geocode.Coordinate{}, fmt.Errorf("geocoding origin: %w", err)
	}

	destCoord, err := c.lookup(ctx, destination)
	if err != nil {
		return geocode.Coordinate{}, geocode.Coordinate{}, fmt.Errorf("geocoding destination: %w", err)
	}

	return originCoord, destCoord, nil
}

func (c *Client) lookup(ctx context.Context, text string) (geocode.Coordinate, error) {
	query := url.Values{}
	query.Set("text", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), http.NoBody)
	if err != nil {
		return geocode.Coordinate{}, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return geocode.Coordinate{}, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return geocode.Coordinate{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var result featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return geocode.Coordinate{}, fmt.Errorf("decoding response: %w", err)
	}

	if len(result.Features) == 0 {
		return geocode.Coordinate{}, fmt.Errorf("%q: %w", text, geocode.ErrNoMatch)
	}

	coords := result.Features[0].Geometry.Coordinates
	if len(coords) < 2 {
		return geocode.Coordinate{}, fmt.Errorf("%q: malformed geometry in first feature", text)
	}

	// GeoJSON order is [lon, lat]
	coord := geocode.Coordinate{Lon: coords[0], Lat: coords[1]}
	if err := coord.Validate(); err != nil {
		return geocode.Coordinate{}, fmt.Errorf("%q: %w", text, err)
	}

	c.logger.Debug().
		Str("place", text).
		Float64("lat", coord.Lat).
		Float64("lon", coord.Lon).
		Msg("resolved place")

	return coord, nil
}

// setHeaders sets common request headers.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("digitransit-subscription-key", c.apiKey)
	req.Header.Set("Accept", "application/json")
}

// Digitransit geocoding response structures (GeoJSON subset).

type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	Geometry struct {
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
}
