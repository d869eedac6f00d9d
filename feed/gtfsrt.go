package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// GTFSRTClient polls a GTFS-Realtime VehiclePositions protobuf feed.
// Route ids are passed through as published by the feed, so tracked routes
// must be configured in the feed's own vocabulary.
type GTFSRTClient struct {
	httpClient *http.Client
	url        string
}

// NewGTFSRTClient creates a new GTFS-RT VehiclePositions client
func NewGTFSRTClient(url string, timeout time.Duration) *GTFSRTClient {
	return &GTFSRTClient{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
	}
}

// Positions fetches the feed once and returns the normalized snapshots.
func (c *GTFSRTClient) Positions(ctx context.Context) ([]VehiclePosition, error) {
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

	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(body, &fm); err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	var headerTS int64
	if fm.Header != nil && fm.Header.Timestamp != nil {
		headerTS = int64(*fm.Header.Timestamp)
	}

	out := make([]VehiclePosition, 0, len(fm.Entity))
	for _, e := range fm.Entity {
		v := e.Vehicle
		if v == nil {
			continue
		}

		var p VehiclePosition
		if v.Vehicle != nil && v.Vehicle.Id != nil {
			p.VehicleID = *v.Vehicle.Id
		}
		if v.Trip != nil {
			if v.Trip.RouteId != nil {
				p.Route = *v.Trip.RouteId
			}
			if v.Trip.DirectionId != nil {
				// GTFS direction_id is 0-based; HFP directions are 1-based.
				p.Direction = fmt.Sprintf("%d", *v.Trip.DirectionId+1)
			}
			if v.Trip.StartDate != nil {
				p.OperatingDay = isoDate(*v.Trip.StartDate)
			}
			if v.Trip.StartTime != nil {
				p.StartTime = clockMinutes(*v.Trip.StartTime)
			}
		}
		if v.Position != nil {
			if v.Position.Latitude != nil {
				lat := float64(*v.Position.Latitude)
				p.Lat = &lat
			}
			if v.Position.Longitude != nil {
				lon := float64(*v.Position.Longitude)
				p.Lon = &lon
			}
			if v.Position.Speed != nil {
				spd := float64(*v.Position.Speed)
				p.Speed = &spd
			}
			if v.Position.Bearing != nil {
				hdg := float64(*v.Position.Bearing)
				p.Heading = &hdg
			}
		}
		if v.Timestamp != nil {
			p.Timestamp = int64(*v.Timestamp)
		} else {
			p.Timestamp = headerTS
		}

		out = append(out, p)
	}
	return out, nil
}

// isoDate converts a GTFS YYYYMMDD start date to YYYY-MM-DD.
func isoDate(d string) string {
	if len(d) != 8 {
		return d
	}
	return d[0:4] + "-" + d[4:6] + "-" + d[6:8]
}

// clockMinutes trims a GTFS HH:MM:SS start time to HH:MM.
func clockMinutes(t string) string {
	if len(t) < 5 {
		return t
	}
	return t[0:5]
}
