package records

import (
	"strconv"
)

// Violation is one logged speeding event. Speed is km/h, the timestamp is
// epoch seconds.
type Violation struct {
	VehicleID string
	RouteID   string
	Latitude  float64
	Longitude float64
	SpeedKMH  float64
	Timestamp int64
}

// CSV column order. The speed column carries km/h.
var header = []string{"vehicle_id", "route_id", "latitude", "longitude", "speed", "timestamp"}

func (v Violation) row() []string {
	return []string{
		v.VehicleID,
		v.RouteID,
		strconv.FormatFloat(v.Latitude, 'f', -1, 64),
		strconv.FormatFloat(v.Longitude, 'f', -1, 64),
		strconv.FormatFloat(v.SpeedKMH, 'f', -1, 64),
		strconv.FormatInt(v.Timestamp, 10),
	}
}
