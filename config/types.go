package config

// Area is the monitored area: a WGS84 bounding box plus the speed limit
// that applies inside it.
type Area struct {
	North      float64 `yaml:"north" validate:"required,gtfield=South"`
	South      float64 `yaml:"south" validate:"required"`
	East       float64 `yaml:"east" validate:"required,gtfield=West"`
	West       float64 `yaml:"west" validate:"required"`
	SpeedLimit float64 `yaml:"speedLimit" validate:"required,gt=0"`
}

// Contains reports whether the coordinate lies inside the bounding box.
// Boundary points count as inside.
func (a Area) Contains(lat, lon float64) bool {
	return lat >= a.South && lat <= a.North && lon >= a.West && lon <= a.East
}

// FeedConfig selects and configures the vehicle position source.
type FeedConfig struct {
	// Kind chooses the wire format: "hfp" polls a JSON array of
	// high-frequency positioning payloads, "gtfsrt" polls a GTFS-Realtime
	// VehiclePositions protobuf feed.
	Kind           string `yaml:"kind" validate:"required,oneof=hfp gtfsrt"`
	URL            string `yaml:"url" validate:"required,url"`
	PollIntervalMS int    `yaml:"pollIntervalMS" validate:"gte=0"`
	TimeoutMS      int    `yaml:"timeoutMS" validate:"gte=0"`
}

// CSVConfig controls the violation log.
type CSVConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Directory string `yaml:"directory"`
}

// PlotConfig controls where violation figures are written.
type PlotConfig struct {
	Directory string `yaml:"directory"`
}

// TwitterConfig controls posting. Credentials are never read from the
// configuration file; they come from the environment.
type TwitterConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DigitransitConfig configures route name lookups. Optional; with an empty
// URL route names are left blank in captions.
type DigitransitConfig struct {
	URL             string `yaml:"url" validate:"omitempty,url"`
	SubscriptionKey string `yaml:"subscriptionKey"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Area        Area              `yaml:"area"`
	Routes      []string          `yaml:"routes" validate:"min=1,dive,required"`
	Feed        FeedConfig        `yaml:"feed"`
	CSV         CSVConfig         `yaml:"csv"`
	Plot        PlotConfig        `yaml:"plot"`
	Twitter     TwitterConfig     `yaml:"twitter"`
	Digitransit DigitransitConfig `yaml:"digitransit"`
}
