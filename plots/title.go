package plots

import (
	"fmt"
	"time"

	"github.com/nopeusbotti/nopeusbotti/detector"
	"github.com/nopeusbotti/nopeusbotti/stats"
	"github.com/nopeusbotti/nopeusbotti/utils"
)

// ViolationTitle builds the caption for one violation. routeName may be
// blank when the lookup failed; the caption then carries the number alone.
func ViolationTitle(rep detector.Report, routeName string) string {
	pos := rep.Position

	name := ""
	if routeName != "" {
		name = fmt.Sprintf(" (%s)", routeName)
	}
	title := fmt.Sprintf("Linja %s%s - lähtö %s %s. ", pos.Route, name, pos.OperatingDay, pos.StartTime)

	limit := rep.SpeedKMH - rep.OverKMH
	switch {
	case rep.OverKMH >= utils.NotableSpeedingKMH:
		title += fmt.Sprintf("Suurin ylinopeus %.1f km/h (%.0f%%).", rep.OverKMH, 100*rep.OverKMH/limit)
	case rep.OverKMH > 0:
		title += "Ei huomattavaa ylinopeutta."
	default:
		title += "Ei ylinopeutta."
	}
	return title
}

// StatisticsTitle builds the caption for a weekly report.
func StatisticsTitle(s stats.Statistics, from, to time.Time) string {
	period := fmt.Sprintf("%s - %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	if s.Total == 0 {
		return fmt.Sprintf("Ylinopeudet %s: ei havaintoja.", period)
	}
	return fmt.Sprintf(
		"Ylinopeudet %s: %d havaintoa, joista %d huomattavaa. Suurin nopeus %.1f km/h (rajoitus %.0f km/h).",
		period, s.Total, s.Notable, s.MaxKMH, s.LimitKMH,
	)
}

// StatisticsHashtag is the tag weekly reports are posted under, so older
// statistics stay browsable.
func StatisticsHashtag(username string) string {
	return "#tilastot_" + username
}
