package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"cooling_control/internal/config"
	"cooling_control/internal/models"

	"gopkg.in/yaml.v3"
)

// scenario is the YAML form of a run.
type scenario struct {
	models.SimulationConfig `yaml:",inline"`
	Seed                    *uint64 `yaml:"seed"`
}

func loadScenario(path string) (scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return scenario{}, fmt.Errorf("read scenario: %w", err)
	}
	return parseScenario(data)
}

// parseScenario rejects unknown keys so typos do not silently fall back to zero values.
func parseScenario(data []byte) (scenario, error) {
	var sc scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return scenario{}, errors.New("parse scenario: empty document")
		}
		return scenario{}, fmt.Errorf("parse scenario: %w", err)
	}
	sc.Mode = models.DisturbanceMode(strings.ToUpper(string(sc.Mode)))
	sc.Dynamics = models.Dynamics(strings.ToUpper(string(sc.Dynamics)))
	return sc, nil
}

// parseEvent reads START:DURATION:INTENSITY.
func parseEvent(s string) (models.CustomDisturbanceEvent, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return models.CustomDisturbanceEvent{}, fmt.Errorf("event %q: want START:DURATION:INTENSITY", s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return models.CustomDisturbanceEvent{}, fmt.Errorf("event %q: start: %w", s, err)
	}
	dur, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return models.CustomDisturbanceEvent{}, fmt.Errorf("event %q: duration: %w", s, err)
	}
	intensity, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return models.CustomDisturbanceEvent{}, fmt.Errorf("event %q: intensity: %w", s, err)
	}
	return models.CustomDisturbanceEvent{Start: start, DurationMinutes: dur, Intensity: intensity}, nil
}

func loadLimits(dir string) (config.Simulation, error) {
	cfg, err := config.Load(dir)
	if err != nil {
		return config.Simulation{}, err
	}
	return cfg.Simulation, nil
}
