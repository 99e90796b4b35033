package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SourceCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barocast_source_calls_total",
			Help: "Total reading source fetches",
		},
		[]string{"source", "status"},
	)

	SourceLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "barocast_source_latency_seconds",
			Help:    "Reading source fetch latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	ReadingsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barocast_readings_ingested_total",
			Help: "Total readings stored",
		},
		[]string{"station"},
	)

	ReadingQualityFlags = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barocast_reading_quality_flags_total",
			Help: "Quality flags raised on incoming readings",
		},
		[]string{"flag"},
	)

	RefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barocast_refresh_total",
			Help: "Forecast refresh cycles by outcome (ok or the failure class)",
		},
		[]string{"status"},
	)

	PayloadsDeduplicated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barocast_payloads_deduplicated_total",
			Help: "Source responses identical to one already stored",
		},
		[]string{"source"},
	)

	RefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "barocast_refresh_duration_seconds",
			Help:    "Duration of a forecast refresh cycle",
			Buckets: prometheus.DefBuckets,
		},
	)

	LastRefreshTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "barocast_last_refresh_timestamp_seconds",
			Help: "Unix time of the last successful refresh",
		},
	)

	SeaLevelPressure = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "barocast_sea_level_pressure_hpa",
			Help: "Sea-level pressure used by the last forecast",
		},
	)

	PressureChange3h = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "barocast_pressure_change_3h_hpa",
			Help: "Pressure change over the 3-hour window",
		},
	)

	PressureTrend = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "barocast_pressure_trend",
			Help: "Pressure trend: -1 falling, 0 steady, 1 rising",
		},
	)

	ForecastCode = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "barocast_forecast_code",
			Help: "Latest forecast code by method (Zambretti severity type, Negretti-Zambra number)",
		},
		[]string{"method"},
	)

	CardRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barocast_card_renders_total",
			Help: "Forecast card renders",
		},
		[]string{"cache"},
	)

	DBPruned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barocast_db_pruned_rows_total",
			Help: "Rows deleted by retention pruning",
		},
		[]string{"table"},
	)
)
