package service

import (
	"fmt"

	"cooling_control/internal/config"
	"cooling_control/internal/models"
	"cooling_control/internal/simulation"
)

// PrepareConfig turns a run request into the configuration the engine runs:
// dynamics default to ADDITIVE and the controller tuning always comes from
// limits. The result is checked against the engine rules, the duration cap
// and the comfort range; a zero range disables the comfort check.
func PrepareConfig(cfg models.SimulationConfig, limits config.Simulation) (models.SimulationConfig, error) {
	if cfg.Dynamics == "" {
		cfg.Dynamics = models.DynamicsAdditive
	}
	if cfg.Control != (models.ControlParams{}) {
		return cfg, &simulation.ConfigError{Field: "control", Reason: "is set in the service configuration, not per run"}
	}
	cfg.Control = models.ControlParams{
		HysteresisBand: limits.HysteresisBand,
		CoolingPower:   limits.CoolingPower,
	}

	if err := simulation.Validate(cfg); err != nil {
		return cfg, err
	}
	if limits.MaxDuration > 0 && cfg.Duration > limits.MaxDuration {
		return cfg, &simulation.ConfigError{
			Field:  "duration",
			Reason: fmt.Sprintf("must not exceed %d minutes, got %d", limits.MaxDuration, cfg.Duration),
		}
	}
	if limits.ComfortMin != 0 || limits.ComfortMax != 0 {
		comfort := simulation.ComfortRange{Min: limits.ComfortMin, Max: limits.ComfortMax}
		if err := comfort.Check(cfg); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}
