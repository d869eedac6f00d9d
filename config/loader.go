package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	defaultFeedKind       = "hfp"
	defaultPollIntervalMS = 10000
	defaultTimeoutMS      = 10000
	defaultCSVDirectory   = "csv"
	defaultPlotDirectory  = "plots"
)

// Default returns a configuration with all defaults applied and nothing else
// set. Used when the bot is configured from flags alone.
func Default() AppConfig {
	var cfg AppConfig
	applyDefaults(&cfg)
	return cfg
}

// Load reads the configuration from the given YAML file and applies defaults.
// With an empty path the conventional config.yml is used if present, otherwise
// the defaults alone. Validation is separate so that flag overrides can be
// applied in between.
func Load(path string) (AppConfig, error) {
	if path == "" {
		if _, err := os.Stat("config.yml"); err != nil {
			return Default(), nil
		}
		path = "config.yml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parsing config: %w", err)
	}
	applyDefaults(&cfg)
	return cfg, nil
}

// Validate checks the configuration invariants. The bot refuses to start on
// any violation: the box must have north > south and east > west, the speed
// limit must be positive and at least one route must be tracked.
func (c *AppConfig) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Feed.Kind == "" {
		cfg.Feed.Kind = defaultFeedKind
	}
	if cfg.Feed.PollIntervalMS == 0 {
		cfg.Feed.PollIntervalMS = defaultPollIntervalMS
	}
	if cfg.Feed.TimeoutMS == 0 {
		cfg.Feed.TimeoutMS = defaultTimeoutMS
	}
	if cfg.CSV.Enabled && cfg.CSV.Directory == "" {
		cfg.CSV.Directory = defaultCSVDirectory
	}
	if cfg.Plot.Directory == "" {
		cfg.Plot.Directory = defaultPlotDirectory
	}
}
