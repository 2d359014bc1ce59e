package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"cooling_control/internal/models"
)

const (
	dataFileName    = "simulation_data.csv"
	summaryFileName = "simulation_summary.txt"
	dirTimeLayout   = "20060102_150405"
)

// WriteSummary renders the plain-text run summary.
func WriteSummary(w io.Writer, cfg models.SimulationConfig, s Summary) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Target temperature: %.2f °C\n", cfg.TargetTemperature)
	fmt.Fprintf(bw, "Initial temperature: %.2f °C\n", cfg.InitialTemperature)
	fmt.Fprintf(bw, "Simulation duration: %d minutes\n", cfg.Duration)
	fmt.Fprintf(bw, "Disturbance mode: %s\n", cfg.Mode)
	if s.Fault.Aborted && s.Fault.FaultMinute != nil {
		fmt.Fprintf(bw, "Fault: run aborted at minute %d\n", *s.Fault.FaultMinute)
	} else {
		fmt.Fprintln(bw, "Fault: none")
	}
	fmt.Fprintf(bw, "Compressor ON: %d minutes (duty cycle %.1f%%, %d switches)\n",
		s.CompressorMinutes, s.DutyCycle*100, s.Switches)
	fmt.Fprintf(bw, "Max |error|: %.3f °C\n\n", s.MaxAbsError)

	fmt.Fprintln(bw, "Simulation statistics:")
	fmt.Fprintf(bw, "%-6s %14s %14s\n", "", "Temperature", "Error")
	rows := []struct {
		name string
		t, e float64
	}{
		{"count", float64(s.Temperature.Count), float64(s.Error.Count)},
		{"mean", s.Temperature.Mean, s.Error.Mean},
		{"std", s.Temperature.Std, s.Error.Std},
		{"min", s.Temperature.Min, s.Error.Min},
		{"25%", s.Temperature.Q1, s.Error.Q1},
		{"50%", s.Temperature.Median, s.Error.Median},
		{"75%", s.Temperature.Q3, s.Error.Q3},
		{"max", s.Temperature.Max, s.Error.Max},
	}
	for _, r := range rows {
		fmt.Fprintf(bw, "%-6s %14.6f %14.6f\n", r.name, r.t, r.e)
	}
	return bw.Flush()
}

// ExportDir writes the series, summary and plot into a fresh
// simulation_YYYYMMDD_HHMMSS directory under base and returns its path.
func ExportDir(base string, now time.Time, cfg models.SimulationConfig, res models.SimulationResult) (string, error) {
	dir := filepath.Join(base, "simulation_"+now.Format(dirTimeLayout))
	if err := os.MkdirAll(base, 0o755); err != nil {
		return "", fmt.Errorf("create results dir %q: %w", base, err)
	}
	if err := os.Mkdir(dir, 0o755); err != nil {
		return "", fmt.Errorf("create simulation dir %q: %w", dir, err)
	}

	if err := writeFile(filepath.Join(dir, dataFileName), func(w io.Writer) error {
		return WriteCSV(w, res.Samples)
	}); err != nil {
		return "", err
	}
	if err := writeFile(filepath.Join(dir, summaryFileName), func(w io.Writer) error {
		return WriteSummary(w, cfg, Summarize(res))
	}); err != nil {
		return "", err
	}
	if err := writeFile(filepath.Join(dir, plotFileName), func(w io.Writer) error {
		return WritePlot(w, cfg, res.Samples)
	}); err != nil {
		return "", err
	}
	return dir, nil
}

func writeFile(path string, fill func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	if err := fill(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %q: %w", path, err)
	}
	return nil
}
