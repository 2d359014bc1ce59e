package simulation

import (
	"fmt"
	"math"

	"cooling_control/internal/models"
)

// ComfortRange bounds target and initial temperatures. The engine itself does
// not enforce it; callers that collect user input do.
type ComfortRange struct {
	Min float64 // °C
	Max float64 // °C
}

// Check rejects temperatures outside the range.
func (r ComfortRange) Check(cfg models.SimulationConfig) error {
	if cfg.TargetTemperature < r.Min || cfg.TargetTemperature > r.Max {
		return invalid("target_temperature", "%.1f outside comfort range [%.1f, %.1f]", cfg.TargetTemperature, r.Min, r.Max)
	}
	if cfg.InitialTemperature < r.Min || cfg.InitialTemperature > r.Max {
		return invalid("initial_temperature", "%.1f outside comfort range [%.1f, %.1f]", cfg.InitialTemperature, r.Min, r.Max)
	}
	return nil
}

// Validate checks the rules every run needs before its first tick.
func Validate(cfg models.SimulationConfig) error {
	if cfg.Duration < 1 {
		return invalid("duration", "must be at least 1 minute, got %d", cfg.Duration)
	}
	if !finite(cfg.TargetTemperature) {
		return invalid("target_temperature", "must be a finite number")
	}
	if !finite(cfg.InitialTemperature) {
		return invalid("initial_temperature", "must be a finite number")
	}

	switch cfg.Dynamics {
	case "", models.DynamicsAdditive, models.DynamicsPlateau:
	default:
		return invalid("dynamics", "unknown value %q", cfg.Dynamics)
	}

	switch cfg.Mode {
	case models.ModeRandom:
		if cfg.Random == nil {
			return invalid("random", "parameters are required in %s mode", models.ModeRandom)
		}
		if err := validateRandom(*cfg.Random); err != nil {
			return err
		}
	case models.ModeCustom:
		if err := validateEvents(cfg.Events); err != nil {
			return err
		}
	default:
		return invalid("mode", "unknown value %q", cfg.Mode)
	}

	return validateControl(cfg.Control)
}

func validateRandom(p models.RandomDisturbanceParams) error {
	if !(p.Probability >= 0 && p.Probability <= 1) {
		return invalid("random.probability", "must be within [0, 1], got %v", p.Probability)
	}
	if !finite(p.MinIntensity) || p.MinIntensity < 0 {
		return invalid("random.min_intensity", "must be >= 0, got %v", p.MinIntensity)
	}
	if !finite(p.MaxIntensity) || p.MaxIntensity < p.MinIntensity {
		return invalid("random.max_intensity", "must be >= min_intensity (%v), got %v", p.MinIntensity, p.MaxIntensity)
	}
	if p.MinDurationMinutes < 0 || p.MaxDurationMinutes < 0 {
		return invalid("random.duration_minutes", "must not be negative")
	}
	if lo, hi := durationRange(p); hi < lo {
		return invalid("random.max_duration_minutes", "must be >= min_duration_minutes (%d), got %d", lo, hi)
	}
	return nil
}

func validateEvents(events []models.CustomDisturbanceEvent) error {
	for i, ev := range events {
		if ev.Start < 0 {
			return invalid(eventField(i, "start"), "must be >= 0, got %d", ev.Start)
		}
		if ev.DurationMinutes < 1 {
			return invalid(eventField(i, "duration_minutes"), "must be >= 1, got %d", ev.DurationMinutes)
		}
		if !finite(ev.Intensity) {
			return invalid(eventField(i, "intensity"), "must be a finite number")
		}
	}
	return nil
}

func validateControl(c models.ControlParams) error {
	if !finite(c.HysteresisBand) || c.HysteresisBand < 0 {
		return invalid("control.hysteresis_band", "must be >= 0, got %v", c.HysteresisBand)
	}
	if !finite(c.CoolingPower) || c.CoolingPower < 0 {
		return invalid("control.cooling_power", "must be >= 0, got %v", c.CoolingPower)
	}
	return nil
}

func eventField(i int, name string) string {
	return fmt.Sprintf("events[%d].%s", i, name)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
