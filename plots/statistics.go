package plots

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"time"

	"github.com/nopeusbotti/nopeusbotti/stats"
	"github.com/nopeusbotti/nopeusbotti/utils"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	statisticsWidth  vg.Length = 1500
	statisticsHeight vg.Length = 450
	histogramBins              = 20
)

// RenderStatistics draws the weekly report figure: a histogram of measured
// speeds, violations per hour of day and violations per route. It returns
// the file path and the caption. Rendering an empty period is an error; the
// caller decides whether an empty week is worth reporting at all.
func (r *Renderer) RenderStatistics(s stats.Statistics, from, to time.Time) (string, string, error) {
	if s.Total == 0 {
		return "", "", errors.New("no violations to plot")
	}
	title := StatisticsTitle(s, from, to)

	histogram, err := speedHistogram(s)
	if err != nil {
		return "", "", err
	}
	hourly, err := hourlyPanel(s)
	if err != nil {
		return "", "", err
	}
	routes, err := routePanel(s)
	if err != nil {
		return "", "", err
	}

	img := vgimg.New(statisticsWidth, statisticsHeight)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 1, Cols: 3,
		PadX: vg.Millimeter * 5, PadY: vg.Millimeter * 2,
		PadTop: vg.Millimeter * 2, PadBottom: vg.Millimeter * 2,
		PadLeft: vg.Millimeter * 2, PadRight: vg.Millimeter * 2,
	}
	row := []*plot.Plot{histogram, hourly, routes}
	canvases := plot.Align([][]*plot.Plot{row}, tiles, dc)
	for i, p := range row {
		p.Draw(canvases[0][i])
	}

	path, err := r.writeFigure(img)
	if err != nil {
		return "", "", err
	}
	return path, title, nil
}

func speedHistogram(s stats.Statistics) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Ylinopeudet %.0f km/h rajoitusalueella", s.LimitKMH)
	p.X.Label.Text = "Nopeus (km/h)"
	p.Y.Label.Text = "Lukumäärä"

	h, err := plotter.NewHist(plotter.Values(s.Speeds), histogramBins)
	if err != nil {
		return nil, fmt.Errorf("building speed histogram: %w", err)
	}
	h.FillColor = barColor
	p.Add(h)

	// Dashed marker at the limit, spanning the tallest bin.
	top := 0.0
	for _, bin := range h.Bins {
		if bin.Weight > top {
			top = bin.Weight
		}
	}
	limit, err := plotter.NewLine(plotter.XYs{
		{X: s.LimitKMH, Y: 0},
		{X: s.LimitKMH, Y: top},
	})
	if err != nil {
		return nil, fmt.Errorf("building limit line: %w", err)
	}
	limit.Color = color.Black
	limit.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
	p.Add(limit)
	p.Legend.Add(fmt.Sprintf("Rajoitus %.0f km/h", s.LimitKMH), limit)
	p.Legend.Top = true

	return p, nil
}

func hourlyPanel(s stats.Statistics) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Ylinopeudet tunneittain"
	p.X.Label.Text = "Tunti"
	p.Y.Label.Text = "Lukumäärä"

	notable := make(plotter.Values, len(s.PerHour))
	minor := make(plotter.Values, len(s.PerHour))
	names := make([]string, len(s.PerHour))
	for hour := range s.PerHour {
		notable[hour] = float64(s.PerHourNotable[hour])
		minor[hour] = float64(s.PerHour[hour] - s.PerHourNotable[hour])
		names[hour] = strconv.Itoa(hour)
	}

	notableBars, err := plotter.NewBarChart(notable, vg.Points(8))
	if err != nil {
		return nil, fmt.Errorf("building hourly bars: %w", err)
	}
	notableBars.Color = speedingColor
	notableBars.LineStyle.Width = 0

	minorBars, err := plotter.NewBarChart(minor, vg.Points(8))
	if err != nil {
		return nil, fmt.Errorf("building hourly bars: %w", err)
	}
	minorBars.Color = minorColor
	minorBars.LineStyle.Width = 0
	minorBars.StackOn(notableBars)

	p.Add(notableBars, minorBars)
	p.Legend.Add(fmt.Sprintf("Ylinopeus >= %.0f km/h", utils.NotableSpeedingKMH), notableBars)
	p.Legend.Add("Lievä ylinopeus", minorBars)
	p.Legend.Top = true
	p.NominalX(names...)

	return p, nil
}

func routePanel(s stats.Statistics) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Ylinopeudet linjoittain"
	p.X.Label.Text = "Linja"
	p.Y.Label.Text = "Lukumäärä"

	routes := s.Routes()
	counts := make(plotter.Values, len(routes))
	for i, route := range routes {
		counts[i] = float64(s.PerRoute[route])
	}

	bars, err := plotter.NewBarChart(counts, vg.Points(24))
	if err != nil {
		return nil, fmt.Errorf("building route bars: %w", err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(routes...)

	return p, nil
}
