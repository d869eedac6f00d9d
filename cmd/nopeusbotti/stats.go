package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/nopeusbotti/nopeusbotti/config"
	"github.com/nopeusbotti/nopeusbotti/plots"
	"github.com/nopeusbotti/nopeusbotti/records"
	"github.com/nopeusbotti/nopeusbotti/stats"
	"github.com/nopeusbotti/nopeusbotti/twitter"
	"github.com/spf13/cobra"
)

// statsCmd renders and posts the periodic violation statistics, by default
// for last week.
func statsCmd() *cobra.Command {
	var (
		configPath string
		start      string
		end        string
		speedLimit float64
		csvDir     string
		plotDir    string
		noPost     bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize logged violations and post the statistics figure",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("speed-limit") {
				cfg.Area.SpeedLimit = speedLimit
			}
			if flags.Changed("csv-dir") {
				cfg.CSV.Directory = csvDir
			}
			if flags.Changed("plot-dir") {
				cfg.Plot.Directory = plotDir
			}
			if noPost {
				cfg.Twitter.Enabled = false
			}
			if cfg.Area.SpeedLimit <= 0 {
				return errors.New("a positive --speed-limit is required")
			}
			if cfg.CSV.Directory == "" {
				return errors.New("--csv-dir is required")
			}

			from, to := stats.WeekRange(time.Now())
			if start != "" {
				if from, err = time.ParseInLocation("2006-01-02", start, time.Local); err != nil {
					return fmt.Errorf("invalid --start (use YYYY-MM-DD): %w", err)
				}
			}
			if end != "" {
				if to, err = time.ParseInLocation("2006-01-02", end, time.Local); err != nil {
					return fmt.Errorf("invalid --end (use YYYY-MM-DD): %w", err)
				}
			}
			if to.Before(from) {
				return errors.New("--end is before --start")
			}

			return report(cmd, cfg, from, to)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Configuration file (default config.yml if present)")
	cmd.Flags().StringVar(&start, "start", "", "First day of the period (YYYY-MM-DD, default last week's Monday)")
	cmd.Flags().StringVar(&end, "end", "", "Last day of the period (YYYY-MM-DD, default last week's Sunday)")
	cmd.Flags().Float64Var(&speedLimit, "speed-limit", 0, "Speed limit the violations were recorded against (km/h)")
	cmd.Flags().StringVar(&csvDir, "csv-dir", "", "Directory holding the daily violation logs")
	cmd.Flags().StringVar(&plotDir, "plot-dir", "", "Directory for the statistics figure")
	cmd.Flags().BoolVar(&noPost, "no-post", false, "Only produce the figure, do not post it")
	return cmd
}

func report(cmd *cobra.Command, cfg config.AppConfig, from, to time.Time) error {
	ctx := cmd.Context()

	recs, err := records.ReadRange(cfg.CSV.Directory, from, to)
	if err != nil {
		return err
	}
	summary := stats.Aggregate(recs, cfg.Area.SpeedLimit)
	log.Printf("found %d violations between %s and %s",
		summary.Total, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if summary.Total == 0 {
		log.Printf("nothing to report")
		return nil
	}

	renderer := plots.NewRenderer(cfg.Area, cfg.Plot.Directory)
	path, title, err := renderer.RenderStatistics(summary, from, to)
	if err != nil {
		return err
	}
	log.Printf("statistics figure written to %s", path)

	if !cfg.Twitter.Enabled {
		log.Printf("posting is disabled, keeping %s", path)
		return nil
	}

	creds, err := twitter.FromEnvironment()
	if err != nil {
		return err
	}
	client := twitter.NewClient(creds)

	username, err := client.Username(ctx)
	if err != nil {
		return fmt.Errorf("resolving username: %w", err)
	}
	text := fmt.Sprintf("%s Aiempia tilastoja voi selata tunnisteella %s.",
		title, plots.StatisticsHashtag(username))

	id, err := client.SendTweet(ctx, text, path)
	if err != nil {
		return err
	}
	log.Printf("posted tweet %s", id)

	return os.Remove(path)
}
