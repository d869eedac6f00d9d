package detector

import (
	"github.com/nopeusbotti/nopeusbotti/config"
	"github.com/nopeusbotti/nopeusbotti/feed"
)

// Active is the set of vehicles speeding inside the monitored area as of the
// last poll, keyed by vehicle id. The caller carries it between polls and
// hands it back to Detect.
type Active map[string]struct{}

// Report is one newly detected speeding event.
type Report struct {
	Position feed.VehiclePosition
	SpeedKMH float64 // measured speed in km/h
	OverKMH  float64 // amount over the limit in km/h
}

// Detector judges position snapshots for one monitored area.
type Detector struct {
	area   config.Area
	routes map[string]struct{}
}

// New creates a Detector for the given area and tracked routes.
func New(area config.Area, routes []string) *Detector {
	set := make(map[string]struct{}, len(routes))
	for _, r := range routes {
		set[r] = struct{}{}
	}
	return &Detector{area: area, routes: set}
}

// Detect judges one poll's snapshots. It returns the new violations to
// report, in input order, and the violation set to carry into the next poll.
//
// The next set is rebuilt from this poll alone: a vehicle that slows down,
// leaves the box or disappears from the feed drops out, and is reported
// again if it reoffends later. A vehicle already in the incoming set is
// never reported twice for the same continuous violation.
func (d *Detector) Detect(positions []feed.VehiclePosition, active Active) ([]Report, Active) {
	next := make(Active)
	var reports []Report

	for _, p := range positions {
		if _, tracked := d.routes[p.Route]; !tracked {
			continue
		}
		if !p.HasFix() {
			// unjudgeable snapshot; an active violation it may have had
			// ends here because the vehicle does not make it into next
			continue
		}
		if !d.area.Contains(*p.Lat, *p.Lon) {
			continue
		}
		kmh := p.SpeedKMH()
		if kmh <= d.area.SpeedLimit {
			continue
		}
		if _, dup := next[p.VehicleID]; dup {
			continue
		}
		next[p.VehicleID] = struct{}{}
		if _, known := active[p.VehicleID]; known {
			continue
		}
		reports = append(reports, Report{
			Position: p,
			SpeedKMH: kmh,
			OverKMH:  kmh - d.area.SpeedLimit,
		})
	}
	return reports, next
}
