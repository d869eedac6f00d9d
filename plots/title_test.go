package plots_test

import (
	"testing"
	"time"

	"github.com/nopeusbotti/nopeusbotti/detector"
	"github.com/nopeusbotti/nopeusbotti/feed"
	"github.com/nopeusbotti/nopeusbotti/plots"
	"github.com/nopeusbotti/nopeusbotti/stats"
)

func report(speedKMH, overKMH float64) detector.Report {
	return detector.Report{
		Position: feed.VehiclePosition{
			Route:        "570",
			Direction:    "1",
			VehicleID:    "12/423",
			OperatingDay: "2026-08-20",
			StartTime:    "08:04",
		},
		SpeedKMH: speedKMH,
		OverKMH:  overKMH,
	}
}

// TestViolationTitle tests the caption wording for every speeding bracket
func TestViolationTitle(t *testing.T) {
	cases := []struct {
		name      string
		rep       detector.Report
		routeName string
		want      string
	}{
		{
			name:      "notable speeding",
			rep:       report(37.5, 7.5),
			routeName: "Mellunmäki - Tikkurila",
			want:      "Linja 570 (Mellunmäki - Tikkurila) - lähtö 2026-08-20 08:04. Suurin ylinopeus 7.5 km/h (25%).",
		},
		{
			name:      "minor speeding",
			rep:       report(32.5, 2.5),
			routeName: "Mellunmäki - Tikkurila",
			want:      "Linja 570 (Mellunmäki - Tikkurila) - lähtö 2026-08-20 08:04. Ei huomattavaa ylinopeutta.",
		},
		{
			name:      "no speeding",
			rep:       report(30, 0),
			routeName: "Mellunmäki - Tikkurila",
			want:      "Linja 570 (Mellunmäki - Tikkurila) - lähtö 2026-08-20 08:04. Ei ylinopeutta.",
		},
		{
			name:      "unknown route name",
			rep:       report(37.5, 7.5),
			routeName: "",
			want:      "Linja 570 - lähtö 2026-08-20 08:04. Suurin ylinopeus 7.5 km/h (25%).",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := plots.ViolationTitle(tc.rep, tc.routeName); got != tc.want {
				t.Errorf("Got %q, want %q", got, tc.want)
			}
		})
	}

	t.Log("✓ Violation captions match for all speeding brackets")
}

// TestStatisticsTitle tests the weekly report caption
func TestStatisticsTitle(t *testing.T) {
	from := time.Date(2026, 8, 10, 0, 0, 0, 0, time.Local)
	to := time.Date(2026, 8, 16, 0, 0, 0, 0, time.Local)

	s := stats.Statistics{Total: 12, Notable: 5, MaxKMH: 41.7, LimitKMH: 30}
	want := "Ylinopeudet 2026-08-10 - 2026-08-16: 12 havaintoa, joista 5 huomattavaa. Suurin nopeus 41.7 km/h (rajoitus 30 km/h)."
	if got := plots.StatisticsTitle(s, from, to); got != want {
		t.Errorf("Got %q, want %q", got, want)
	}

	empty := stats.Statistics{LimitKMH: 30}
	want = "Ylinopeudet 2026-08-10 - 2026-08-16: ei havaintoja."
	if got := plots.StatisticsTitle(empty, from, to); got != want {
		t.Errorf("Got %q, want %q", got, want)
	}

	t.Log("✓ Statistics captions match")
}

// TestStatisticsHashtag tests the tag weekly reports are browsable under
func TestStatisticsHashtag(t *testing.T) {
	if got := plots.StatisticsHashtag("nopeusbotti"); got != "#tilastot_nopeusbotti" {
		t.Errorf("Got %q, want #tilastot_nopeusbotti", got)
	}
}
