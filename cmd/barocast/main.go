package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"
	_ "modernc.org/sqlite"

	"github.com/lox/barocast/internal/api"
	"github.com/lox/barocast/internal/config"
	"github.com/lox/barocast/internal/forecast"
	"github.com/lox/barocast/internal/ingest"
	"github.com/lox/barocast/internal/publish"
	"github.com/lox/barocast/internal/store"
)

type CLI struct {
	EnvFile kongdotenv.ENVFileConfig `kong:"optional,name=env-file,default='.env',help='Path to a .env file.'"`

	Config config.Config `embed:""`

	Serve   ServeCmd   `cmd:"" default:"1" help:"Poll the source, publish forecasts and serve HTTP (default)."`
	Once    OnceCmd    `cmd:"" help:"Run one refresh and print the snapshot as JSON."`
	Compute ComputeCmd `cmd:"" help:"Compute a forecast from values on the command line."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("barocast"),
		kong.Description("Barometric weather forecasts (Zambretti and Negretti-Zambra) for a personal weather station."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run(&cli.Config))
}

func openStore(path string) (*store.Store, *sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	st := store.New(db)
	if err := st.Migrate(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return st, db, nil
}

// newScheduler opens the database, seeds the station and wires the source and
// engine into a scheduler.
func newScheduler(cfg *config.Config) (*ingest.Scheduler, *store.Store, *sql.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}
	src, err := cfg.NewSource()
	if err != nil {
		return nil, nil, nil, err
	}

	st, db, err := openStore(cfg.DB)
	if err != nil {
		return nil, nil, nil, err
	}
	if version, err := st.MigrationVersion(); err == nil {
		log.Printf("database at schema version %d", version)
	}

	station := cfg.PrimaryStation()
	prev, err := st.GetPrimaryStation()
	if err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("get primary station: %w", err)
	}
	if err := st.UpsertStation(station); err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("upsert station %s: %w", station.StationID, err)
	}
	if prev != nil && prev.StationID != station.StationID {
		log.Printf("primary station changed from %s (%s) to %s (%s)", prev.StationID, prev.Source, station.StationID, station.Source)
	} else {
		log.Printf("station %s (%s) seeded", station.StationID, station.Source)
	}

	engine := forecast.NewEngine(cfg.Options())
	opts := engine.Options()
	log.Printf("forecast: language %s, northern %v, sea-level %v, altitude %.0fm",
		opts.Language.Code(), opts.Northern, opts.PressureIsSeaLevel, opts.Altitude)

	sched := ingest.NewScheduler(st, src, engine, station)
	sched.SetInterval(cfg.RefreshInterval())
	sched.SetRetention(cfg.Retention)
	return sched, st, db, nil
}

type ServeCmd struct {
	NoPoll bool `help:"Disable polling (server only, for local dev)."`
}

func (c *ServeCmd) Run(cfg *config.Config) error {
	sched, st, db, err := newScheduler(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Redis.Addr != "" {
		client, err := publish.Dial(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer client.Close()
		pub := publish.NewRedisPublisher(client, cfg.Redis.Prefix, 3*sched.Interval())
		sched.AddPublisher(pub)
		log.Printf("publishing snapshots to redis %s (%s)", cfg.Redis.Addr, pub.SnapshotKey())
	}

	if !c.NoPoll {
		log.Printf("polling %s every %s", sched.Station().StationID, sched.Interval())
		go sched.Run(ctx)
	} else {
		log.Println("polling disabled (--no-poll)")
	}

	server := api.NewServer(sched, st, cfg.Port)
	log.Printf("starting server on :%s", cfg.Port)
	if err := server.Run(ctx); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

type OnceCmd struct{}

func (c *OnceCmd) Run(cfg *config.Config) error {
	sched, _, db, err := newScheduler(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	snap, err := sched.Refresh(ctx)
	if err != nil {
		return err
	}
	return printJSON(snap)
}

type ComputeCmd struct {
	Pressure         string    `arg:"" help:"Pressure in hPa."`
	Temperature      string    `help:"Temperature in C."`
	WindSpeed        string    `help:"Wind speed in km/h."`
	WindDirection    string    `help:"Wind direction in degrees."`
	PreviousPressure string    `help:"Pressure three hours ago, to give the engine a trend."`
	At               time.Time `help:"Observation time (RFC 3339, default now)."`
	Night            bool      `help:"Use night icons instead of working it out from the station position."`
}

func (c *ComputeCmd) Run(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	now := c.At
	if now.IsZero() {
		now = time.Now()
	}
	stationID := cfg.StationID()
	engine := forecast.NewEngine(cfg.Options())

	if c.PreviousPressure != "" {
		prev, err := ingest.ParseReading(stationID, now.Add(-forecast.PressureWindow), ingest.StaticValues{Pressure: c.PreviousPressure})
		if err != nil {
			return fmt.Errorf("previous pressure: %w", err)
		}
		if _, err := engine.Refresh(prev.ObservedAt, *prev, false); err != nil {
			return err
		}
	}

	reading, err := ingest.ParseReading(stationID, now, ingest.StaticValues{
		Pressure:      c.Pressure,
		Temperature:   c.Temperature,
		WindSpeed:     c.WindSpeed,
		WindDirection: c.WindDirection,
	})
	if err != nil {
		return err
	}

	isNight := c.Night || forecast.IsNight(now, cfg.Station.Latitude, cfg.Station.Longitude)
	snap, err := engine.Refresh(now, *reading, isNight)
	if err != nil {
		return err
	}
	return printJSON(snap)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
