package stats

import (
	"sort"
	"time"

	"github.com/nopeusbotti/nopeusbotti/records"
	"github.com/nopeusbotti/nopeusbotti/utils"
)

// Statistics summarizes violations over a reporting period.
type Statistics struct {
	Total          int            // number of violations
	Notable        int            // violations at least utils.NotableSpeedingKMH over the limit
	MaxKMH         float64        // fastest measured speed
	LimitKMH       float64        // the limit the records were judged against
	PerRoute       map[string]int // violations per route
	PerHour        [24]int        // violations per local hour of day
	PerHourNotable [24]int        // the notable share of PerHour
	Speeds         []float64      // all measured speeds, for the histogram
}

// Routes returns the route ids in deterministic order.
func (s Statistics) Routes() []string {
	routes := make([]string, 0, len(s.PerRoute))
	for r := range s.PerRoute {
		routes = append(routes, r)
	}
	sort.Strings(routes)
	return routes
}

// Aggregate summarizes the records against the speed limit.
func Aggregate(recs []records.Violation, limitKMH float64) Statistics {
	s := Statistics{
		LimitKMH: limitKMH,
		PerRoute: make(map[string]int),
	}
	for _, r := range recs {
		hour := utils.LocalHourFromUnixSeconds(r.Timestamp)
		s.Total++
		s.PerRoute[r.RouteID]++
		s.PerHour[hour]++
		s.Speeds = append(s.Speeds, r.SpeedKMH)
		if r.SpeedKMH > s.MaxKMH {
			s.MaxKMH = r.SpeedKMH
		}
		if r.SpeedKMH-limitKMH >= utils.NotableSpeedingKMH {
			s.Notable++
			s.PerHourNotable[hour]++
		}
	}
	return s
}

// WeekRange returns the previous full week relative to now: its Monday and
// its Sunday, both at local midnight.
func WeekRange(now time.Time) (time.Time, time.Time) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	daysSinceMonday := (int(midnight.Weekday()) + 6) % 7
	start := midnight.AddDate(0, 0, -daysSinceMonday-7)
	return start, start.AddDate(0, 0, 6)
}
