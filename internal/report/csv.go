package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"cooling_control/internal/models"
)

// CSVHeader is the column layout of exported series.
var CSVHeader = []string{"Time (min)", "Temperature (°C)", "Compressor State", "Error (°C)", "Perturbation (°C)"}

// WriteCSV writes samples as a flat table; the compressor column is 1/0.
func WriteCSV(w io.Writer, samples []models.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, s := range samples {
		state := "0"
		if s.CompressorOn {
			state = "1"
		}
		rec := []string{
			strconv.Itoa(s.Minute),
			formatFloat(s.Temperature),
			state,
			formatFloat(s.Error),
			formatFloat(s.Disturbance),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row %d: %w", s.Minute, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
