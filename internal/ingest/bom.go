package ingest

import (
	"context"
	"database/sql"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/lox/barocast/internal/metrics"
	"github.com/lox/barocast/internal/models"
)

const (
	bomFTPHost = "ftp.bom.gov.au:21"
	// Victorian observations; other states publish IDN60920 (NSW), IDQ60920
	// (QLD) and so on.
	defaultBOMObservationsFile = "/anon/gen/fwo/IDV60920.xml"
	melbourneAirportWMO        = "94866"
)

// BOMClient reads one station from a Bureau of Meteorology observation
// product over anonymous FTP.
type BOMClient struct {
	host  string
	file  string
	wmoID string
}

func NewBOMClient(wmoID, file string) *BOMClient {
	if wmoID == "" {
		wmoID = melbourneAirportWMO
	}
	if file == "" {
		file = defaultBOMObservationsFile
	}
	return &BOMClient{host: bomFTPHost, file: file, wmoID: wmoID}
}

func (b *BOMClient) Name() string      { return "bom" }
func (b *BOMClient) Endpoint() string  { return "ftp:" + b.file }
func (b *BOMClient) StationID() string { return b.wmoID }

type bomObsProduct struct {
	XMLName      xml.Name   `xml:"product"`
	Observations bomObsList `xml:"observations"`
}

type bomObsList struct {
	Stations []bomStation `xml:"station"`
}

type bomStation struct {
	WMOID   string      `xml:"wmo-id,attr"`
	Name    string      `xml:"stn-name,attr"`
	Lat     float64     `xml:"lat,attr"`
	Lon     float64     `xml:"lon,attr"`
	Height  float64     `xml:"stn-height,attr"`
	Periods []bomPeriod `xml:"period"`
}

type bomPeriod struct {
	Index   int        `xml:"index,attr"`
	TimeUTC string     `xml:"time-utc,attr"`
	Levels  []bomLevel `xml:"level"`
}

type bomLevel struct {
	Type     string       `xml:"type,attr"`
	Elements []bomElement `xml:"element"`
}

type bomElement struct {
	Type  string `xml:"type,attr"`
	Units string `xml:"units,attr"`
	Value string `xml:",chardata"`
}

func (b *BOMClient) Fetch(ctx context.Context) (*models.Reading, []byte, error) {
	start := time.Now()
	body, err := b.retrieve(ctx)
	metrics.SourceLatency.WithLabelValues(b.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SourceCallsTotal.WithLabelValues(b.Name(), "error").Inc()
		return nil, nil, err
	}
	metrics.SourceCallsTotal.WithLabelValues(b.Name(), "ok").Inc()

	reading, err := parseBOMObservations(body, b.wmoID)
	if err != nil {
		return nil, body, err
	}
	return reading, body, nil
}

func (b *BOMClient) retrieve(ctx context.Context) ([]byte, error) {
	conn, err := ftp.Dial(b.host, ftp.DialWithTimeout(30*time.Second), ftp.DialWithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("ftp dial: %w", err)
	}
	defer conn.Quit()

	if err := conn.Login("anonymous", "anonymous"); err != nil {
		return nil, fmt.Errorf("ftp login: %w", err)
	}

	resp, err := conn.Retr(b.file)
	if err != nil {
		return nil, fmt.Errorf("ftp retr: %w", err)
	}
	defer resp.Close()

	body, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func parseBOMObservations(body []byte, wmoID string) (*models.Reading, error) {
	var product bomObsProduct
	if err := xml.Unmarshal(body, &product); err != nil {
		return nil, fmt.Errorf("unmarshal xml: %w", err)
	}

	var station *bomStation
	for i := range product.Observations.Stations {
		if product.Observations.Stations[i].WMOID == wmoID {
			station = &product.Observations.Stations[i]
			break
		}
	}
	if station == nil {
		return nil, fmt.Errorf("station %s not found in observations", wmoID)
	}

	// Period 0 is the latest observation.
	var latest *bomPeriod
	for i := range station.Periods {
		if station.Periods[i].Index == 0 {
			latest = &station.Periods[i]
			break
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("station %s has no current period", wmoID)
	}

	observedAt, err := time.Parse(time.RFC3339, latest.TimeUTC)
	if err != nil {
		return nil, fmt.Errorf("parse time: %w", err)
	}

	r := &models.Reading{
		StationID:  wmoID,
		ObservedAt: observedAt.UTC(),
	}
	for _, level := range latest.Levels {
		if level.Type != "surface" {
			continue
		}
		for _, elem := range level.Elements {
			v, err := strconv.ParseFloat(strings.TrimSpace(elem.Value), 64)
			if err != nil {
				continue
			}
			switch elem.Type {
			case "msl_pres":
				r.Pressure = sql.NullFloat64{Float64: v, Valid: true}
			case "air_temperature":
				r.Temperature = sql.NullFloat64{Float64: v, Valid: true}
			case "wind_spd_kmh":
				r.WindSpeed = sql.NullFloat64{Float64: v, Valid: true}
			case "wind_dir_deg":
				r.WindDirection = sql.NullFloat64{Float64: v, Valid: true}
			}
		}
	}
	return r, nil
}
