package feed

import (
	"github.com/nopeusbotti/nopeusbotti/utils"
)

// VehiclePosition is a single vehicle position snapshot, normalized from
// either wire format.
//
// Lat, Lon and Speed are pointers because feeds drop them now and then
// (GPS outages, doors-only updates). A snapshot with any of them missing
// cannot be judged against the speed limit and is skipped downstream.
type VehiclePosition struct {
	Route     string // route number as displayed on the vehicle, e.g. "570"
	Direction string // "1" or "2"
	VehicleID string // stable vehicle identity, "operator/number" for HFP

	Lat     *float64
	Lon     *float64
	Speed   *float64 // meters per second, as reported by both feeds
	Heading *float64 // degrees from north, clockwise

	Timestamp    int64  // epoch seconds
	OperatingDay string // YYYY-MM-DD
	StartTime    string // journey departure HH:MM
}

// HasFix reports whether the snapshot carries everything needed to judge it
// against a speed limit.
func (p VehiclePosition) HasFix() bool {
	return p.Lat != nil && p.Lon != nil && p.Speed != nil
}

// SpeedKMH returns the speed in km/h. Only meaningful when HasFix is true.
func (p VehiclePosition) SpeedKMH() float64 {
	if p.Speed == nil {
		return 0
	}
	return utils.MPSToKMH(*p.Speed)
}
