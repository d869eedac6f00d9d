package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nopeusbotti/nopeusbotti/bot"
	"github.com/nopeusbotti/nopeusbotti/config"
	"github.com/nopeusbotti/nopeusbotti/detector"
	"github.com/nopeusbotti/nopeusbotti/digitransit"
	"github.com/nopeusbotti/nopeusbotti/feed"
	"github.com/nopeusbotti/nopeusbotti/plots"
	"github.com/nopeusbotti/nopeusbotti/records"
	"github.com/nopeusbotti/nopeusbotti/twitter"
	"github.com/spf13/cobra"
)

// watchCmd polls vehicle positions and reports speeding buses until
// interrupted.
func watchCmd() *cobra.Command {
	var (
		configPath string
		north      float64
		south      float64
		east       float64
		west       float64
		speedLimit float64
		routes     []string
		noPost     bool
		feedURL    string
		feedKind   string
		interval   int
		csvDir     string
		plotDir    string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll vehicle positions and report speeding buses",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			// Flags override the file.
			flags := cmd.Flags()
			if flags.Changed("north") {
				cfg.Area.North = north
			}
			if flags.Changed("south") {
				cfg.Area.South = south
			}
			if flags.Changed("east") {
				cfg.Area.East = east
			}
			if flags.Changed("west") {
				cfg.Area.West = west
			}
			if flags.Changed("speed-limit") {
				cfg.Area.SpeedLimit = speedLimit
			}
			if flags.Changed("route") {
				cfg.Routes = routes
			}
			if flags.Changed("feed-url") {
				cfg.Feed.URL = feedURL
			}
			if flags.Changed("feed-kind") {
				cfg.Feed.Kind = feedKind
			}
			if flags.Changed("interval") {
				cfg.Feed.PollIntervalMS = interval
			}
			if flags.Changed("csv-dir") {
				cfg.CSV.Enabled = true
				cfg.CSV.Directory = csvDir
			}
			if flags.Changed("plot-dir") {
				cfg.Plot.Directory = plotDir
			}
			if noPost {
				cfg.Twitter.Enabled = false
			}

			if err := cfg.Validate(); err != nil {
				return err
			}
			return watch(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Configuration file (default config.yml if present)")
	cmd.Flags().Float64Var(&north, "north", 0, "Northernmost latitude (WGS84) of the monitored area")
	cmd.Flags().Float64Var(&south, "south", 0, "Southernmost latitude (WGS84) of the monitored area")
	cmd.Flags().Float64Var(&east, "east", 0, "Easternmost longitude (WGS84) of the monitored area")
	cmd.Flags().Float64Var(&west, "west", 0, "Westernmost longitude (WGS84) of the monitored area")
	cmd.Flags().Float64Var(&speedLimit, "speed-limit", 0, "Speed limit within the monitored area (km/h)")
	cmd.Flags().StringArrayVar(&routes, "route", nil, "Route to track, repeatable")
	cmd.Flags().BoolVar(&noPost, "no-post", false, "Only produce figures, do not post them")
	cmd.Flags().StringVar(&feedURL, "feed-url", "", "Vehicle position feed URL")
	cmd.Flags().StringVar(&feedKind, "feed-kind", "", "Feed wire format: hfp or gtfsrt")
	cmd.Flags().IntVar(&interval, "interval", 0, "Poll interval in milliseconds")
	cmd.Flags().StringVar(&csvDir, "csv-dir", "", "Directory for daily violation logs (enables logging)")
	cmd.Flags().StringVar(&plotDir, "plot-dir", "", "Directory for rendered figures")
	return cmd
}

func watch(ctx context.Context, cfg config.AppConfig) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	timeout := time.Duration(cfg.Feed.TimeoutMS) * time.Millisecond

	var source bot.PositionSource
	switch cfg.Feed.Kind {
	case "gtfsrt":
		source = feed.NewGTFSRTClient(cfg.Feed.URL, timeout)
	default:
		source = feed.NewClient(cfg.Feed.URL, timeout)
	}

	opts := bot.Options{
		Source:   source,
		Detector: detector.New(cfg.Area, cfg.Routes),
		Renderer: plots.NewRenderer(cfg.Area, cfg.Plot.Directory),
		Interval: time.Duration(cfg.Feed.PollIntervalMS) * time.Millisecond,
	}
	if cfg.CSV.Enabled {
		opts.Records = records.NewWriter(cfg.CSV.Directory)
	}
	// A subscription key alone implies the public Digitransit router.
	if cfg.Digitransit.URL == "" && cfg.Digitransit.SubscriptionKey != "" {
		cfg.Digitransit.URL = digitransit.DefaultURL
	}
	if cfg.Digitransit.URL != "" {
		opts.Names = digitransit.NewClient(cfg.Digitransit.URL, cfg.Digitransit.SubscriptionKey, timeout)
	}
	if cfg.Twitter.Enabled {
		creds, err := twitter.FromEnvironment()
		if err != nil {
			return err
		}
		opts.Publisher = twitter.NewClient(creds)
	} else {
		log.Printf("posting is disabled, figures are kept on disk")
	}

	log.Printf("watching routes %v inside (%v, %v)-(%v, %v), speed limit %.0f km/h",
		cfg.Routes, cfg.Area.South, cfg.Area.West, cfg.Area.North, cfg.Area.East, cfg.Area.SpeedLimit)

	if err := bot.New(opts).Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}
	log.Printf("shutdown signal received")
	return nil
}
