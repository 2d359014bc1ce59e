package simulation

import "cooling_control/internal/models"

// scriptedSource replays a fixed list of uniform draws, cycling when exhausted.
type scriptedSource struct {
	draws []float64
	calls int
}

func (s *scriptedSource) Float64() float64 {
	v := s.draws[s.calls%len(s.draws)]
	s.calls++
	return v
}

func (s *scriptedSource) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*s.Float64()
}

func customConfig(duration int, target, initial float64, events ...models.CustomDisturbanceEvent) models.SimulationConfig {
	return models.SimulationConfig{
		Duration:           duration,
		TargetTemperature:  target,
		InitialTemperature: initial,
		Mode:               models.ModeCustom,
		Events:             events,
	}
}

func randomConfig(duration int, p models.RandomDisturbanceParams) models.SimulationConfig {
	return models.SimulationConfig{
		Duration:           duration,
		TargetTemperature:  22,
		InitialTemperature: 26,
		Mode:               models.ModeRandom,
		Random:             &p,
	}
}
