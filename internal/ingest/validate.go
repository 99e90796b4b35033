package ingest

import (
	"encoding/json"

	"github.com/lox/barocast/internal/models"
)

const (
	FlagPressureOutOfRange = "pressure_out_of_range"
	FlagTempOutOfRange     = "temp_out_of_range"
	FlagWindSpeedUnlikely  = "wind_speed_unlikely"
	FlagWindDirInvalid     = "wind_dir_invalid"
)

// ValidateReading returns quality flags for implausible values. Flags are
// recorded with the reading; they never reject it.
func ValidateReading(r *models.Reading) []string {
	var flags []string

	if r.Pressure.Valid {
		if r.Pressure.Float64 < 850 || r.Pressure.Float64 > 1100 {
			flags = append(flags, FlagPressureOutOfRange)
		}
	}

	if r.Temperature.Valid {
		if r.Temperature.Float64 < -60 || r.Temperature.Float64 > 60 {
			flags = append(flags, FlagTempOutOfRange)
		}
	}

	if r.WindSpeed.Valid {
		if r.WindSpeed.Float64 < 0 || r.WindSpeed.Float64 > 300 {
			flags = append(flags, FlagWindSpeedUnlikely)
		}
	}

	if r.WindDirection.Valid {
		if r.WindDirection.Float64 < 0 || r.WindDirection.Float64 > 360 {
			flags = append(flags, FlagWindDirInvalid)
		}
	}

	return flags
}

func QualityFlagsToJSON(flags []string) string {
	if len(flags) == 0 {
		return ""
	}
	b, _ := json.Marshal(flags)
	return string(b)
}
