// Package directions fetches driving routes from a Google-style
// directions endpoint and maps them onto route values.
package directions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"drivelapse/route"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/directions/json"

// ErrNoRoute is returned when the provider cannot find a route between
// the given endpoints.
var ErrNoRoute = errors.New("directions: no route found")

// Client queries a directions endpoint. BaseURL exists so tests can
// point it at a local server.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a client for the public endpoint.
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Provider JSON shapes, reduced to the fields the pipeline consumes.
type response struct {
	Status       string      `json:"status"`
	ErrorMessage string      `json:"error_message"`
	Routes       []routeJSON `json:"routes"`
}

type routeJSON struct {
	Summary          string       `json:"summary"`
	OverviewPolyline polylineJSON `json:"overview_polyline"`
	Legs             []legJSON    `json:"legs"`
}

type polylineJSON struct {
	Points string `json:"points"`
}

type legJSON struct {
	Distance valueJSON  `json:"distance"`
	Duration valueJSON  `json:"duration"`
	Steps    []stepJSON `json:"steps"`
}

type valueJSON struct {
	Value float64 `json:"value"`
	Text  string  `json:"text"`
}

type stepJSON struct {
	Polyline         polylineJSON `json:"polyline"`
	Distance         valueJSON    `json:"distance"`
	Duration         valueJSON    `json:"duration"`
	HTMLInstructions string       `json:"html_instructions"`
}

// Route fetches the first driving route from origin to destination.
// Origin and destination take anything the provider accepts, an address
// or a "lat,lng" pair.
func (c *Client) Route(ctx context.Context, origin, destination string) (route.Route, error) {
	query := url.Values{}
	query.Set("origin", origin)
	query.Set("destination", destination)
	query.Set("mode", "driving")
	if c.APIKey != "" {
		query.Set("key", c.APIKey)
	}

	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+query.Encode(), nil)
	if err != nil {
		return route.Route{}, fmt.Errorf("directions: build request: %w", err)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return route.Route{}, fmt.Errorf("directions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return route.Route{}, fmt.Errorf("directions: unexpected status %s", resp.Status)
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return route.Route{}, fmt.Errorf("directions: decode response: %w", err)
	}

	switch payload.Status {
	case "OK":
	case "ZERO_RESULTS":
		return route.Route{}, ErrNoRoute
	default:
		if payload.ErrorMessage != "" {
			return route.Route{}, fmt.Errorf("directions: %s: %s", payload.Status, payload.ErrorMessage)
		}
		return route.Route{}, fmt.Errorf("directions: %s", payload.Status)
	}
	if len(payload.Routes) == 0 {
		return route.Route{}, ErrNoRoute
	}

	return mapRoute(payload.Routes[0]), nil
}

func mapRoute(r routeJSON) route.Route {
	out := route.Route{
		Summary:  r.Summary,
		Overview: r.OverviewPolyline.Points,
	}
	for _, leg := range r.Legs {
		out.Distance += leg.Distance.Value
		out.Duration += time.Duration(leg.Duration.Value) * time.Second
		for _, step := range leg.Steps {
			out.Steps = append(out.Steps, route.Step{
				Polyline:    step.Polyline.Points,
				Distance:    step.Distance.Value,
				Duration:    time.Duration(step.Duration.Value) * time.Second,
				Instruction: step.HTMLInstructions,
			})
		}
	}
	return out
}
