package api

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/lox/barocast/internal/store"
)

// renderPressureChart draws sea-level pressure and its 3h change from stored
// snapshots as an HTML page.
func renderPressureChart(w io.Writer, station string, records []store.SnapshotRecord) error {
	labels := make([]string, 0, len(records))
	pressure := make([]opts.LineData, 0, len(records))
	change := make([]opts.LineData, 0, len(records))
	for _, rec := range records {
		labels = append(labels, rec.ComputedAt.Format("02 Jan 15:04"))
		pressure = append(pressure, opts.LineData{Value: rec.P0})
		change = append(change, opts.LineData{Value: rec.PressureChange3h})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Pressure history",
			Width:     "1000px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Sea-level pressure",
			Subtitle: station,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "hPa", Scale: opts.Bool(true)}),
	)
	line.ExtendYAxis(opts.YAxis{Name: "3h change"})

	line.SetXAxis(labels).
		AddSeries("Pressure", pressure).
		AddSeries("3h change", change, charts.WithLineChartOpts(opts.LineChart{YAxisIndex: 1}))

	return line.Render(w)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "no database", http.StatusServiceUnavailable)
		return
	}

	end := s.now()
	start := end.Add(-time.Duration(parseHours(r)) * time.Hour)
	records, err := s.store.GetSnapshots(start, end)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	station := s.provider.Station()
	title := station.Name
	if title == "" {
		title = station.StationID
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderPressureChart(w, fmt.Sprintf("%s, last %s", title, end.Sub(start)), records); err != nil {
		log.Printf("chart: %v", err)
	}
}
