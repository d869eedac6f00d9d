package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// hfpPayload is the wire form of one high-frequency positioning message.
// Speeds are meters per second. hdg is degrees from north.
type hfpPayload struct {
	Desi  string   `json:"desi"`
	Dir   string   `json:"dir"`
	Oper  int      `json:"oper"`
	Veh   int      `json:"veh"`
	Tst   string   `json:"tst"`
	Tsi   int64    `json:"tsi"`
	Spd   *float64 `json:"spd"`
	Hdg   *float64 `json:"hdg"`
	Lat   *float64 `json:"lat"`
	Long  *float64 `json:"long"`
	Oday  string   `json:"oday"`
	Start string   `json:"start"`
}

// hfpMessage accepts both feed shapes: the MQTT-style {"VP": {...}} envelope
// and already unwrapped payload objects.
type hfpMessage struct {
	hfpPayload
	VP *hfpPayload `json:"VP"`
}

func (m *hfpMessage) payload() hfpPayload {
	if m.VP != nil {
		return *m.VP
	}
	return m.hfpPayload
}

func (p hfpPayload) normalize() VehiclePosition {
	ts := p.Tsi
	if ts == 0 && p.Tst != "" {
		if t, err := time.Parse(time.RFC3339Nano, p.Tst); err == nil {
			ts = t.Unix()
		}
	}
	return VehiclePosition{
		Route:        p.Desi,
		Direction:    p.Dir,
		VehicleID:    fmt.Sprintf("%d/%d", p.Oper, p.Veh),
		Lat:          p.Lat,
		Lon:          p.Long,
		Speed:        p.Spd,
		Heading:      p.Hdg,
		Timestamp:    ts,
		OperatingDay: p.Oday,
		StartTime:    p.Start,
	}
}

// Client polls an HFP-style JSON position feed over HTTP.
type Client struct {
	httpClient *http.Client
	url        string
}

// NewClient creates a new HFP feed client
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
	}
}

// Positions fetches the feed once and returns the normalized snapshots.
func (c *Client) Positions(ctx context.Context) ([]VehiclePosition, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", c.url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, c.url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", c.url, err)
	}
	return parsePositions(body)
}

func parsePositions(data []byte) ([]VehiclePosition, error) {
	var msgs []hfpMessage
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil, fmt.Errorf("parsing positions: %w", err)
	}
	out := make([]VehiclePosition, 0, len(msgs))
	for i := range msgs {
		out = append(out, msgs[i].payload().normalize())
	}
	return out, nil
}
