package api

import (
	"context"
	"html/template"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lox/barocast/internal/card"
	"github.com/lox/barocast/internal/forecast"
	"github.com/lox/barocast/internal/ingest"
	"github.com/lox/barocast/internal/models"
	"github.com/lox/barocast/internal/store"
)

// SnapshotProvider is the source of the published forecast, normally the
// ingest scheduler.
type SnapshotProvider interface {
	Latest() *forecast.Snapshot
	Status() ingest.Status
	Station() models.Station
	Interval() time.Duration
}

type Server struct {
	provider SnapshotProvider
	store    *store.Store
	port     string
	tmpl     *template.Template
	cards    *card.Cache
	now      func() time.Time
}

// NewServer creates the HTTP server. st may be nil, in which case the
// history endpoints report 503.
func NewServer(provider SnapshotProvider, st *store.Store, port string) *Server {
	return &Server{
		provider: provider,
		store:    st,
		port:     port,
		tmpl:     newTemplates(),
		cards:    card.NewCache(time.Minute),
		now:      time.Now,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/card.png", s.handleCard)
	mux.HandleFunc("/chart", s.handleChart)
	mux.HandleFunc("/api/forecast", s.handleAPIForecast)
	mux.HandleFunc("/api/forecast/zambretti", s.handleAPIZambretti)
	mux.HandleFunc("/api/forecast/negzam", s.handleAPINegZam)
	mux.HandleFunc("/api/readings", s.handleAPIReadings)
	mux.HandleFunc("/api/ingest", s.handleAPIIngest)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              ":" + s.port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
