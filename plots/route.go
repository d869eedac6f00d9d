package plots

import (
	"fmt"
	"math"

	"github.com/nopeusbotti/nopeusbotti/detector"
	"github.com/nopeusbotti/nopeusbotti/utils"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	violationWidth  vg.Length = 900
	violationHeight vg.Length = 300
)

// RenderViolation draws the figure for one violation: the measured speed
// against the limit on the left, the position inside the monitored area on
// the right. It returns the file path and the caption the figure should be
// posted with.
func (r *Renderer) RenderViolation(rep detector.Report, routeName string) (string, string, error) {
	title := ViolationTitle(rep, routeName)

	speed, err := r.speedPanel(rep, title)
	if err != nil {
		return "", "", err
	}
	area, err := r.mapPanel(rep)
	if err != nil {
		return "", "", err
	}

	// Two tiles on one canvas, the speed panel twice as wide as the map.
	img := vgimg.New(violationWidth, violationHeight)
	dc := draw.New(img)
	speed.Draw(draw.Crop(dc, 0, -violationWidth/3, 0, 0))
	area.Draw(draw.Crop(dc, 2*violationWidth/3, 0, 0, 0))

	path, err := r.writeFigure(img)
	if err != nil {
		return "", "", err
	}
	return path, title, nil
}

func (r *Renderer) speedPanel(rep detector.Report, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Aika"
	p.Y.Label.Text = "Nopeus (km/h)"
	p.Y.Min = 0
	p.Y.Max = math.Max(r.area.SpeedLimit+10, rep.SpeedKMH+5)

	bar, err := plotter.NewBarChart(plotter.Values{rep.SpeedKMH}, vg.Points(40))
	if err != nil {
		return nil, fmt.Errorf("building speed bar: %w", err)
	}
	bar.Color = speedingColor
	bar.LineStyle.Width = 0
	p.Add(bar)

	limit, err := plotter.NewLine(plotter.XYs{
		{X: -0.5, Y: r.area.SpeedLimit},
		{X: 0.5, Y: r.area.SpeedLimit},
	})
	if err != nil {
		return nil, fmt.Errorf("building limit line: %w", err)
	}
	limit.Color = limitColor
	limit.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
	p.Add(limit)
	p.Legend.Add(fmt.Sprintf("Rajoitus %.0f km/h", r.area.SpeedLimit), limit)
	p.Legend.Top = true

	p.NominalX(utils.LocalClockFromUnixSeconds(rep.Position.Timestamp))
	return p, nil
}

func (r *Renderer) mapPanel(rep detector.Report) (*plot.Plot, error) {
	p := plot.New()
	p.HideAxes()

	// Pad the view so the outline does not hug the panel edges.
	a := r.area
	padLon := (a.East - a.West) * 0.15
	padLat := (a.North - a.South) * 0.15
	p.X.Min = a.West - padLon
	p.X.Max = a.East + padLon
	p.Y.Min = a.South - padLat
	p.Y.Max = a.North + padLat

	outline, err := plotter.NewLine(plotter.XYs{
		{X: a.West, Y: a.South},
		{X: a.East, Y: a.South},
		{X: a.East, Y: a.North},
		{X: a.West, Y: a.North},
		{X: a.West, Y: a.South},
	})
	if err != nil {
		return nil, fmt.Errorf("building area outline: %w", err)
	}
	outline.Color = outlineColor
	outline.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(outline)

	pos := rep.Position
	point, err := plotter.NewScatter(plotter.XYs{{X: *pos.Lon, Y: *pos.Lat}})
	if err != nil {
		return nil, fmt.Errorf("building position marker: %w", err)
	}
	point.Color = speedingColor
	point.Radius = vg.Points(4)
	point.Shape = draw.CircleGlyph{}
	p.Add(point)

	// Heading is degrees clockwise from north; draw a short line the way
	// the vehicle was going.
	if pos.Heading != nil {
		rad := *pos.Heading * math.Pi / 180
		reach := math.Min(a.East-a.West, a.North-a.South) * 0.2
		arrow, err := plotter.NewLine(plotter.XYs{
			{X: *pos.Lon, Y: *pos.Lat},
			{X: *pos.Lon + reach*math.Sin(rad), Y: *pos.Lat + reach*math.Cos(rad)},
		})
		if err != nil {
			return nil, fmt.Errorf("building heading arrow: %w", err)
		}
		arrow.Color = speedingColor
		arrow.Width = vg.Points(2)
		p.Add(arrow)
	}

	return p, nil
}
