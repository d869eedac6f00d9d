package plots

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/nopeusbotti/nopeusbotti/config"
	"gonum.org/v1/plot/vg/vgimg"
)

// Figure colors, matching the bot's established look.
var (
	speedingColor = color.RGBA{R: 0xff, G: 0x69, B: 0x61, A: 0xff} // #FF6961
	minorColor    = color.RGBA{R: 0x33, G: 0xff, B: 0x98, A: 0xff} // #33ff98
	barColor      = color.RGBA{R: 0x33, G: 0x88, B: 0xff, A: 0xff} // #3388ff
	limitColor    = color.RGBA{R: 0xff, A: 0xff}
	outlineColor  = color.Gray{Y: 0x80}
)

// Renderer draws figures for one monitored area into one directory.
type Renderer struct {
	area config.Area
	dir  string
}

// NewRenderer creates a Renderer writing PNGs under dir.
func NewRenderer(area config.Area, dir string) *Renderer {
	return &Renderer{area: area, dir: dir}
}

// writeFigure saves the canvas as a randomly named PNG and returns its path.
func (r *Renderer) writeFigure(img *vgimg.Canvas) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating plot directory: %w", err)
	}

	path := filepath.Join(r.dir, uuid.New().String()+".png")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}
