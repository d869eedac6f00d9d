package digitransit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultURL is the HSL router of the public Digitransit API.
const DefaultURL = "https://api.digitransit.fi/routing/v1/routers/hsl/index/graphql"

// Client queries the Digitransit GraphQL API for route metadata.
type Client struct {
	httpClient      *http.Client
	url             string
	subscriptionKey string

	names map[string]string // route number -> long name
}

// NewClient creates a Digitransit client. The subscription key may be empty
// for endpoints that do not require one.
func NewClient(url, subscriptionKey string, timeout time.Duration) *Client {
	return &Client{
		httpClient:      &http.Client{Timeout: timeout},
		url:             url,
		subscriptionKey: subscriptionKey,
		names:           map[string]string{},
	}
}

type routesResponse struct {
	Data struct {
		Routes []struct {
			GtfsID    string `json:"gtfsId"`
			ShortName string `json:"shortName"`
			LongName  string `json:"longName"`
		} `json:"routes"`
	} `json:"data"`
}

// RouteName returns the route's long name, e.g. "Mellunmäki - Tikkurila" for
// route 570. An empty name with a nil error means the API knows no such bus
// route. Results are memoized for the life of the client.
func (c *Client) RouteName(ctx context.Context, routeNumber string) (string, error) {
	if name, ok := c.names[routeNumber]; ok {
		return name, nil
	}

	query := fmt.Sprintf(`{ routes(name: %q, transportModes: BUS) { gtfsId shortName longName } }`, routeNumber)
	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return "", fmt.Errorf("building query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.subscriptionKey != "" {
		req.Header.Set("digitransit-subscription-key", c.subscriptionKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", c.url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d from %s", resp.StatusCode, c.url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	var parsed routesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}

	// the name filter matches loosely; pick the exact route
	name := ""
	for _, r := range parsed.Data.Routes {
		if r.ShortName == routeNumber {
			name = r.LongName
			break
		}
	}
	c.names[routeNumber] = name
	return name, nil
}
