package ingest

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/lox/barocast/internal/httputil"
	"github.com/lox/barocast/internal/metrics"
	"github.com/lox/barocast/internal/models"
)

const (
	defaultPWSBaseURL = "https://api.weather.com/v2/pws"
	pwsEndpoint       = "observations/current"
)

// PWS fetches current observations for a Weather Underground personal
// weather station.
type PWS struct {
	apiKey         string
	stationID      string
	baseURL        string
	client         *http.Client
	maxElapsedTime time.Duration
}

func NewPWS(apiKey, stationID string) *PWS {
	return &PWS{
		apiKey:         apiKey,
		stationID:      stationID,
		baseURL:        defaultPWSBaseURL,
		client:         httputil.NewClient(),
		maxElapsedTime: 2 * time.Minute,
	}
}

func (p *PWS) Name() string      { return "pws" }
func (p *PWS) Endpoint() string  { return pwsEndpoint }
func (p *PWS) StationID() string { return p.stationID }

type currentResponse struct {
	Observations []currentObservation `json:"observations"`
}

type currentObservation struct {
	StationID  string   `json:"stationID"`
	ObsTimeUtc string   `json:"obsTimeUtc"`
	Lat        float64  `json:"lat"`
	Lon        float64  `json:"lon"`
	WindDir    *float64 `json:"winddir"`
	QCStatus   int      `json:"qcStatus"`
	Metric     *struct {
		Temp      *float64 `json:"temp"`
		WindSpeed *float64 `json:"windSpeed"`
		Pressure  *float64 `json:"pressure"`
		Elev      *float64 `json:"elev"`
	} `json:"metric"`
}

func (p *PWS) Fetch(ctx context.Context) (*models.Reading, []byte, error) {
	q := url.Values{}
	q.Set("stationId", p.stationID)
	q.Set("format", "json")
	q.Set("units", "m")
	q.Set("apiKey", p.apiKey)
	u := p.baseURL + "/" + pwsEndpoint + "?" + q.Encode()

	start := time.Now()
	var body []byte
	var status int
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("build request: %w", err))
		}
		resp, err := p.client.Do(req)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("fetch current: %w", err))
		}
		defer resp.Body.Close()
		status = resp.StatusCode

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("rate limited: status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			return backoff.Permanent(fmt.Errorf("fetch current: status %d: %s", resp.StatusCode, string(b)))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("read body: %w", err))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = p.maxElapsedTime
	err := backoff.Retry(operation, backoff.WithContext(bo, ctx))
	metrics.SourceLatency.WithLabelValues(p.Name()).Observe(time.Since(start).Seconds())
	metrics.SourceCallsTotal.WithLabelValues(p.Name(), strconv.Itoa(status)).Inc()
	if err != nil {
		return nil, body, err
	}

	reading, err := parsePWSCurrent(body)
	if err != nil {
		return nil, body, err
	}
	return reading, body, nil
}

func parsePWSCurrent(body []byte) (*models.Reading, error) {
	var data currentResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if len(data.Observations) == 0 {
		return nil, fmt.Errorf("no observations returned")
	}

	obs := data.Observations[0]
	observedAt, err := time.Parse(time.RFC3339, obs.ObsTimeUtc)
	if err != nil {
		return nil, fmt.Errorf("parse time: %w", err)
	}

	r := &models.Reading{
		StationID:  obs.StationID,
		ObservedAt: observedAt.UTC(),
	}
	if obs.WindDir != nil {
		r.WindDirection = sql.NullFloat64{Float64: *obs.WindDir, Valid: true}
	}
	if obs.Metric != nil {
		if obs.Metric.Pressure != nil {
			r.Pressure = sql.NullFloat64{Float64: *obs.Metric.Pressure, Valid: true}
		}
		if obs.Metric.Temp != nil {
			r.Temperature = sql.NullFloat64{Float64: *obs.Metric.Temp, Valid: true}
		}
		if obs.Metric.WindSpeed != nil {
			r.WindSpeed = sql.NullFloat64{Float64: *obs.Metric.WindSpeed, Valid: true}
		}
	}
	return r, nil
}
