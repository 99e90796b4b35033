// Package config holds the command-line and environment configuration.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/lox/barocast/internal/forecast"
	"github.com/lox/barocast/internal/ingest"
	"github.com/lox/barocast/internal/models"
)

const (
	SourcePWS    = "pws"
	SourceBOM    = "bom"
	SourceStatic = "static"
)

var validate = validator.New()

// Config is shared by every command. Field tags drive kong (flags, env vars,
// defaults) and validator.
type Config struct {
	DB   string `help:"Path to SQLite database." env:"BAROCAST_DB" default:"data/barocast.db" validate:"required"`
	Port string `help:"HTTP server port." env:"PORT" default:"8080" validate:"required,numeric"`

	Station  StationConfig  `embed:"" prefix:"station-" envprefix:"STATION_"`
	Forecast ForecastConfig `embed:""`
	Source   SourceConfig   `embed:""`
	Redis    RedisConfig    `embed:"" prefix:"redis-" envprefix:"REDIS_"`

	Interval  time.Duration `help:"Refresh interval (clamped to 30s..1h)." env:"BAROCAST_INTERVAL" default:"5m"`
	Retention time.Duration `help:"How long readings, snapshots and payloads are kept." env:"BAROCAST_RETENTION" default:"720h" validate:"gte=1h"`
}

type StationConfig struct {
	ID        string  `help:"Station identifier (defaults to the source's station)." env:"ID"`
	Name      string  `help:"Station display name." env:"NAME" default:"Home"`
	Latitude  float64 `help:"Station latitude." env:"LAT" validate:"gte=-90,lte=90"`
	Longitude float64 `help:"Station longitude." env:"LON" validate:"gte=-180,lte=180"`
	Altitude  float64 `help:"Station altitude in metres." env:"ALTITUDE" validate:"gte=-500,lte=9000"`
}

type ForecastConfig struct {
	Hemisphere string `help:"Hemisphere: auto (from latitude), north or south." env:"BAROCAST_HEMISPHERE" enum:"auto,north,south" default:"auto" validate:"oneof=auto north south"`
	Language   string `help:"Forecast language (de, en, el, it, fr or a BCP 47 tag)." env:"BAROCAST_LANGUAGE" default:"en" validate:"required,bcp47_language_tag"`
	SeaLevel   bool   `help:"Static source pressure is already reduced to sea level." env:"BAROCAST_SEA_LEVEL" negatable:""`
}

type SourceConfig struct {
	Kind string `name:"source" help:"Reading source: pws, bom or static." env:"BAROCAST_SOURCE" enum:"pws,bom,static" default:"pws" validate:"oneof=pws bom static"`

	PWSAPIKey  string `name:"pws-api-key" help:"Weather Underground API key." env:"PWS_API_KEY" validate:"required_if=Kind pws"`
	PWSStation string `name:"pws-station" help:"Weather Underground station ID." env:"PWS_STATION_ID" validate:"required_if=Kind pws"`

	BOMWMOID string `name:"bom-wmo" help:"BOM station WMO id." env:"BOM_WMO_ID" default:"94866"`
	BOMFile  string `name:"bom-file" help:"BOM observation product path." env:"BOM_FILE" default:"/anon/gen/fwo/IDV60920.xml"`

	StaticPressure      string `name:"static-pressure" help:"Pressure for the static source (hPa)." env:"STATIC_PRESSURE" validate:"required_if=Kind static"`
	StaticTemperature   string `name:"static-temperature" help:"Temperature for the static source (C)." env:"STATIC_TEMPERATURE"`
	StaticWindSpeed     string `name:"static-wind-speed" help:"Wind speed for the static source (km/h)." env:"STATIC_WIND_SPEED"`
	StaticWindDirection string `name:"static-wind-direction" help:"Wind direction for the static source (degrees)." env:"STATIC_WIND_DIRECTION"`

	BreakerFailures uint32        `name:"breaker-failures" help:"Consecutive failed fetches before the source is paused." env:"BAROCAST_BREAKER_FAILURES" default:"5" validate:"gte=1"`
	BreakerTimeout  time.Duration `name:"breaker-timeout" help:"How long a paused source stays paused." env:"BAROCAST_BREAKER_TIMEOUT" default:"2m" validate:"gte=1s"`
}

type RedisConfig struct {
	Addr     string `help:"Redis address for snapshot publishing (disabled when empty)." env:"ADDR" validate:"omitempty,hostname_port"`
	Password string `help:"Redis password." env:"PASSWORD"`
	DB       int    `help:"Redis database." env:"DB" validate:"gte=0"`
	Prefix   string `help:"Redis key prefix." env:"PREFIX" default:"barocast"`
}

// Validate checks everything except the reading source.
func (c *Config) Validate() error {
	if err := validate.StructExcept(c, "Source"); err != nil {
		return formatErrors(err)
	}
	return nil
}

func (s *SourceConfig) Validate() error {
	if err := validate.Struct(s); err != nil {
		return formatErrors(err)
	}
	return nil
}

func formatErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Northern reports the hemisphere, deriving it from the latitude when set to
// auto.
func (c *Config) Northern() bool {
	switch c.Forecast.Hemisphere {
	case "north":
		return true
	case "south":
		return false
	}
	return c.PrimaryStation().Northern()
}

// PressureIsSeaLevel is true when configured, and always for the network
// sources: BOM publishes mean sea-level pressure and Weather Underground
// reports PWS pressure already reduced to sea level.
func (c *Config) PressureIsSeaLevel() bool {
	switch c.Source.Kind {
	case SourcePWS, SourceBOM:
		return true
	}
	return c.Forecast.SeaLevel
}

func (c *Config) Options() forecast.Options {
	return forecast.Options{
		PressureIsSeaLevel: c.PressureIsSeaLevel(),
		Altitude:           c.Station.Altitude,
		Northern:           c.Northern(),
		Language:           forecast.ParseLanguage(c.Forecast.Language),
	}
}

func (c *Config) RefreshInterval() time.Duration {
	return ingest.ClampInterval(c.Interval)
}

// StationID is the configured id, or the source's own station id.
func (c *Config) StationID() string {
	if c.Station.ID != "" {
		return c.Station.ID
	}
	switch c.Source.Kind {
	case SourcePWS:
		return c.Source.PWSStation
	case SourceBOM:
		return c.Source.BOMWMOID
	}
	return "static"
}

func (c *Config) PrimaryStation() models.Station {
	return models.Station{
		StationID: c.StationID(),
		Name:      c.Station.Name,
		Source:    c.Source.Kind,
		Latitude:  c.Station.Latitude,
		Longitude: c.Station.Longitude,
		Elevation: c.Station.Altitude,
		IsPrimary: true,
		Active:    true,
	}
}

// NewSource builds the configured reading source behind a circuit breaker.
func (c *Config) NewSource() (ingest.Source, error) {
	if err := c.Source.Validate(); err != nil {
		return nil, err
	}

	var src ingest.Source
	switch c.Source.Kind {
	case SourcePWS:
		src = ingest.NewPWS(c.Source.PWSAPIKey, c.Source.PWSStation)
	case SourceBOM:
		src = ingest.NewBOMClient(c.Source.BOMWMOID, c.Source.BOMFile)
	case SourceStatic:
		src = ingest.NewStatic(c.StationID(), c.StaticValues())
	default:
		return nil, fmt.Errorf("unknown source %q", c.Source.Kind)
	}
	return ingest.WithCircuitBreaker(src, c.Source.BreakerFailures, c.Source.BreakerTimeout), nil
}

func (c *Config) StaticValues() ingest.StaticValues {
	return ingest.StaticValues{
		Pressure:      c.Source.StaticPressure,
		Temperature:   c.Source.StaticTemperature,
		WindSpeed:     c.Source.StaticWindSpeed,
		WindDirection: c.Source.StaticWindDirection,
	}
}
