// Package digitransit provides a client for the Digitransit GraphQL routing API.
package digitransit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/kone-app/route-planner/internal/geocode"
	"github.com/kone-app/route-planner/internal/planner"
	"github.com/kone-app/route-planner/internal/provider/resilience"
)

const (
	// ProviderName identifies this routing provider.
	ProviderName = "routing"

	// DefaultBaseURL is the Digitransit HSL GTFS routing endpoint.
	DefaultBaseURL = "https://api.digitransit.fi/routing/v2/hsl/gtfs/v1"

	// maxItineraries is the upper bound requested from the planner.
	maxItineraries = 10

	// localOffset is the fixed UTC offset of the service area, applied
	// to the latestArrival instant in the query.
	localOffset = "+03:00"
)

// ClientConfig holds configuration for the routing client.
type ClientConfig struct {
	// APIKey is the Digitransit subscription key (required).
	APIKey string

	// BaseURL is the GraphQL endpoint (optional, defaults to HSL).
	BaseURL string

	// HTTPClient is the transport to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a Digitransit routing API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new routing client.
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

// PlanTrips queries itineraries from origin to destination arriving no
// later than latestArrival (YYYYMMDDHHMMSS). The call is all-or-nothing:
// a non-success upstream response fails with planner.ErrUpstream carrying
// the status and body.
func (c *Client) PlanTrips(ctx context.Context, origin, destination geocode.Coordinate, latestArrival string) ([]planner.Itinerary, error) {
	query, err := buildQuery(origin, destination, latestArrival)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("marshaling query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("digitransit-subscription-key", c.apiKey)

	c.logger.Debug().
		Str("latest_arrival", latestArrival).
		Float64("origin_lat", origin.Lat).
		Float64("origin_lon", origin.Lon).
		Float64("dest_lat", destination.Lat).
		Float64("dest_lon", destination.Lon).
		Msg("requesting itineraries")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", planner.ErrUpstream, resp.StatusCode, string(respBody))
	}

	var result planResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", planner.ErrUpstream, result.Errors[0].Message)
	}

	itineraries := make([]planner.Itinerary, 0, len(result.Data.PlanConnection.Edges))
	for i := range result.Data.PlanConnection.Edges {
		itineraries = append(itineraries, toItinerary(&result.Data.PlanConnection.Edges[i].Node))
	}

	c.logger.Debug().
		Int("itinerary_count", len(itineraries)).
		Msg("received itineraries")

	return itineraries, nil
}

// buildQuery renders the planConnection GraphQL query. latestArrival is
// converted from YYYYMMDDHHMMSS to an ISO-8601 instant in the service's
// local offset.
func buildQuery(origin, destination geocode.Coordinate, latestArrival string) (string, error) {
	parsed, err := time.Parse("20060102150405", latestArrival)
	if err != nil {
		return "", fmt.Errorf("parsing latest arrival %q: %w", latestArrival, err)
	}
	instant := parsed.Format("2006-01-02T15:04:05") + localOffset

	return fmt.Sprintf(`{
  planConnection(
    origin: { location: { coordinate: { latitude: %f, longitude: %f } } }
    destination: { location: { coordinate: { latitude: %f, longitude: %f } } }
    first: %d
    dateTime: { latestArrival: %q }
  ) {
    edges {
      node {
        start
        end
        legs {
          from { name }
          to { name }
          start { scheduledTime }
          end { scheduledTime }
          mode
          duration
          realtimeState
        }
      }
    }
  }
}`, origin.Lat, origin.Lon, destination.Lat, destination.Lon, maxItineraries, instant), nil
}

// toItinerary converts a planConnection node to the domain model.
func toItinerary(node *planNode) planner.Itinerary {
	itinerary := planner.Itinerary{
		Start: node.Start,
		End:   node.End,
		Legs:  make([]planner.Leg, 0, len(node.Legs)),
	}
	for _, leg := range node.Legs {
		itinerary.Legs = append(itinerary.Legs, planner.Leg{
			From:          leg.From.Name,
			To:            leg.To.Name,
			Start:         leg.Start.ScheduledTime,
			End:           leg.End.ScheduledTime,
			Mode:          leg.Mode,
			Duration:      int(leg.Duration),
			RealtimeState: leg.RealtimeState,
		})
	}
	return itinerary
}

// Digitransit GraphQL response structures.

type planResponse struct {
	Data struct {
		PlanConnection struct {
			Edges []planEdge `json:"edges"`
		} `json:"planConnection"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type planEdge struct {
	Node planNode `json:"node"`
}

type planNode struct {
	Start string    `json:"start"`
	End   string    `json:"end"`
	Legs  []planLeg `json:"legs"`
}

type planLeg struct {
	From          place   `json:"from"`
	To            place   `json:"to"`
	Start         timing  `json:"start"`
	End           timing  `json:"end"`
	Mode          string  `json:"mode"`
	Duration      float64 `json:"duration"`
	RealtimeState string  `json:"realtimeState"`
}

type place struct {
	Name string `json:"name"`
}

type timing struct {
	ScheduledTime string `json:"scheduledTime"`
}
