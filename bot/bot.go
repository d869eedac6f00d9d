package bot

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/nopeusbotti/nopeusbotti/detector"
	"github.com/nopeusbotti/nopeusbotti/feed"
	"github.com/nopeusbotti/nopeusbotti/records"
)

// PositionSource fetches the current vehicle position snapshots.
type PositionSource interface {
	Positions(ctx context.Context) ([]feed.VehiclePosition, error)
}

// Renderer draws the figure for a violation and returns its path and caption.
type Renderer interface {
	RenderViolation(rep detector.Report, routeName string) (string, string, error)
}

// Publisher posts a message with an attached image.
type Publisher interface {
	SendTweet(ctx context.Context, text, imagePath string) (string, error)
}

// RecordWriter appends a violation to the daily log.
type RecordWriter interface {
	Append(v records.Violation) error
}

// NameResolver resolves a route number to its long name.
type NameResolver interface {
	RouteName(ctx context.Context, route string) (string, error)
}

// Options wires a Bot together. Source, Detector and Renderer are required.
// Records, Names and Publisher may be nil; a nil collaborator disables the
// corresponding step.
type Options struct {
	Source    PositionSource
	Detector  *detector.Detector
	Renderer  Renderer
	Records   RecordWriter
	Names     NameResolver
	Publisher Publisher
	Interval  time.Duration
}

// Bot is the polling loop.
type Bot struct {
	source    PositionSource
	detector  *detector.Detector
	renderer  Renderer
	records   RecordWriter
	names     NameResolver
	publisher Publisher
	interval  time.Duration
}

// New creates a Bot from the wired collaborators.
func New(opts Options) *Bot {
	if opts.Interval <= 0 {
		opts.Interval = 10 * time.Second
	}
	return &Bot{
		source:    opts.Source,
		detector:  opts.Detector,
		renderer:  opts.Renderer,
		records:   opts.Records,
		names:     opts.Names,
		publisher: opts.Publisher,
		interval:  opts.Interval,
	}
}

// Run polls the position source until ctx is done: once immediately, then at
// the configured interval. Collaborator failures are logged and the loop
// keeps going; only ctx ends it.
func (b *Bot) Run(ctx context.Context) error {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	active := make(detector.Active)
	for {
		active = b.poll(ctx, active)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// poll runs one fetch-detect-report round and returns the violation set to
// carry into the next round. A failed fetch keeps the current set, so a
// vehicle speeding across a transient feed error is not reported twice.
func (b *Bot) poll(ctx context.Context, active detector.Active) detector.Active {
	positions, err := b.source.Positions(ctx)
	if err != nil {
		log.Printf("fetching positions failed: %v", err)
		return active
	}

	reports, next := b.detector.Detect(positions, active)
	for _, rep := range reports {
		b.report(ctx, rep)
	}
	return next
}

// report handles one new violation: CSV row first, then the figure, then the
// post. The row is written before anything that can fail further down.
func (b *Bot) report(ctx context.Context, rep detector.Report) {
	pos := rep.Position
	log.Printf("vehicle %s on route %s going %.1f km/h (%.1f km/h over the limit)",
		pos.VehicleID, pos.Route, rep.SpeedKMH, rep.OverKMH)

	if b.records != nil {
		rec := records.Violation{
			VehicleID: pos.VehicleID,
			RouteID:   pos.Route,
			Latitude:  *pos.Lat,
			Longitude: *pos.Lon,
			SpeedKMH:  rep.SpeedKMH,
			Timestamp: pos.Timestamp,
		}
		if err := b.records.Append(rec); err != nil {
			log.Printf("writing violation record failed: %v", err)
		}
	}

	routeName := ""
	if b.names != nil {
		name, err := b.names.RouteName(ctx, pos.Route)
		if err != nil {
			log.Printf("resolving name for route %s failed: %v", pos.Route, err)
		} else {
			routeName = name
		}
	}

	path, title, err := b.renderer.RenderViolation(rep, routeName)
	if err != nil {
		log.Printf("rendering violation figure failed: %v", err)
		return
	}

	if b.publisher == nil {
		log.Printf("posting disabled, keeping %s", path)
		return
	}

	id, err := b.publisher.SendTweet(ctx, title, path)
	if err != nil {
		log.Printf("posting violation failed: %v", err)
		return
	}
	log.Printf("posted tweet %s", id)

	if err := os.Remove(path); err != nil {
		log.Printf("removing %s failed: %v", path, err)
	}
}
