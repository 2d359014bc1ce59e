package main

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"cooling_control/internal/models"
	"cooling_control/internal/report"
	"cooling_control/internal/service"
	"cooling_control/internal/simulation"

	"github.com/spf13/cobra"
)

// runOutput is the --json form of a finished run.
type runOutput struct {
	Seed    uint64                  `json:"seed"`
	Config  models.SimulationConfig `json:"config"`
	Fault   models.FaultStatus      `json:"fault"`
	Summary report.Summary          `json:"summary"`
	Samples []models.Sample         `json:"samples,omitempty"`
	Dir     string                  `json:"dir,omitempty"`
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation",
		Long: `Run a simulation configured by flags or by a YAML scenario file.

Custom disturbances are given as repeated --event START:DURATION:INTENSITY
flags, e.g. --mode custom --event 10:5:2 --dynamics plateau --allow-faults.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			configDir, _ := cmd.Flags().GetString("config")
			scenarioPath, _ := cmd.Flags().GetString("scenario")
			outDir, _ := cmd.Flags().GetString("out")
			withSamples, _ := cmd.Flags().GetBool("samples")

			limits, err := loadLimits(configDir)
			if err != nil {
				return err
			}

			var sc scenario
			if scenarioPath != "" {
				if sc, err = loadScenario(scenarioPath); err != nil {
					return err
				}
			} else if sc, err = scenarioFromFlags(cmd); err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				seed, _ := cmd.Flags().GetUint64("seed")
				sc.Seed = &seed
			}

			cfg, err := service.PrepareConfig(sc.SimulationConfig, limits)
			if err != nil {
				return err
			}

			seed := rand.Uint64()
			if sc.Seed != nil {
				seed = *sc.Seed
			}
			res, err := simulation.RunContext(cmd.Context(), cfg, simulation.NewSeededSource(seed))
			if err != nil {
				return fmt.Errorf("simulation failed: %w", err)
			}
			sum := report.Summarize(res)

			var dir string
			if outDir != "" {
				if dir, err = report.ExportDir(outDir, time.Now(), cfg, res); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				o := runOutput{Seed: seed, Config: cfg, Fault: res.Fault, Summary: sum, Dir: dir}
				if withSamples {
					o.Samples = res.Samples
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(o)
			}

			fmt.Fprintf(out, "Seed: %d\n", seed)
			if err := report.WriteSummary(out, cfg, sum); err != nil {
				return err
			}
			if dir != "" {
				fmt.Fprintf(out, "\nResults saved to %s\n", dir)
			}
			return nil
		},
	}

	cmd.Flags().String("scenario", "", "YAML scenario file (replaces the run flags)")
	cmd.Flags().String("out", "", "Export CSV and summary into a timestamped directory under this path")
	cmd.Flags().Uint64("seed", 0, "Seed for the random generator (default: random)")
	cmd.Flags().Bool("samples", false, "Include the full series in --json output")

	cmd.Flags().Int("duration", 1000, "Simulated minutes")
	cmd.Flags().Float64("target", 22, "Target temperature (°C)")
	cmd.Flags().Float64("initial", 26, "Initial temperature (°C)")
	cmd.Flags().String("mode", string(models.ModeRandom), "Disturbance mode: random or custom")
	cmd.Flags().String("dynamics", string(models.DynamicsAdditive), "Disturbance dynamics: additive or plateau")
	cmd.Flags().Bool("allow-faults", false, "Abort the run on a long plateau disturbance")
	cmd.Flags().Float64("probability", 0.005, "Per-minute disturbance probability (random mode)")
	cmd.Flags().Float64("min-intensity", 0.6, "Minimum disturbance intensity (°C)")
	cmd.Flags().Float64("max-intensity", 1.2, "Maximum disturbance intensity (°C)")
	cmd.Flags().Int("min-minutes", 0, "Minimum plateau length for random disturbances")
	cmd.Flags().Int("max-minutes", 0, "Maximum plateau length for random disturbances")
	cmd.Flags().StringArray("event", nil, "Custom disturbance START:DURATION:INTENSITY (repeatable)")

	return cmd
}

func scenarioFromFlags(cmd *cobra.Command) (scenario, error) {
	f := cmd.Flags()
	duration, _ := f.GetInt("duration")
	target, _ := f.GetFloat64("target")
	initial, _ := f.GetFloat64("initial")
	mode, _ := f.GetString("mode")
	dynamics, _ := f.GetString("dynamics")
	allowFaults, _ := f.GetBool("allow-faults")

	cfg := models.SimulationConfig{
		Duration:           duration,
		TargetTemperature:  target,
		InitialTemperature: initial,
		Mode:               models.DisturbanceMode(strings.ToUpper(mode)),
		Dynamics:           models.Dynamics(strings.ToUpper(dynamics)),
		AllowFaults:        allowFaults,
	}

	switch cfg.Mode {
	case models.ModeRandom:
		p := &models.RandomDisturbanceParams{}
		p.Probability, _ = f.GetFloat64("probability")
		p.MinIntensity, _ = f.GetFloat64("min-intensity")
		p.MaxIntensity, _ = f.GetFloat64("max-intensity")
		p.MinDurationMinutes, _ = f.GetInt("min-minutes")
		p.MaxDurationMinutes, _ = f.GetInt("max-minutes")
		cfg.Random = p
	case models.ModeCustom:
		raw, _ := f.GetStringArray("event")
		for _, s := range raw {
			ev, err := parseEvent(s)
			if err != nil {
				return scenario{}, err
			}
			cfg.Events = append(cfg.Events, ev)
		}
	}
	return scenario{SimulationConfig: cfg}, nil
}
