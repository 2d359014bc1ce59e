package simulation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cooling_control/internal/models"
)

func TestValidate(t *testing.T) {
	valid := func() models.SimulationConfig {
		return randomConfig(100, models.RandomDisturbanceParams{Probability: 0.005, MinIntensity: 0.6, MaxIntensity: 1.2})
	}

	tests := []struct {
		name      string
		mutate    func(*models.SimulationConfig)
		wantField string
	}{
		{name: "valid random", mutate: func(*models.SimulationConfig) {}},
		{name: "valid custom", mutate: func(c *models.SimulationConfig) {
			c.Mode = models.ModeCustom
			c.Random = nil
			c.Events = []models.CustomDisturbanceEvent{{Start: 0, DurationMinutes: 1, Intensity: 1}}
		}},
		{name: "zero duration", mutate: func(c *models.SimulationConfig) { c.Duration = 0 }, wantField: "duration"},
		{name: "negative duration", mutate: func(c *models.SimulationConfig) { c.Duration = -5 }, wantField: "duration"},
		{name: "NaN target", mutate: func(c *models.SimulationConfig) { c.TargetTemperature = math.NaN() }, wantField: "target_temperature"},
		{name: "infinite initial", mutate: func(c *models.SimulationConfig) { c.InitialTemperature = math.Inf(1) }, wantField: "initial_temperature"},
		{name: "unknown mode", mutate: func(c *models.SimulationConfig) { c.Mode = "SOMETIMES" }, wantField: "mode"},
		{name: "unknown dynamics", mutate: func(c *models.SimulationConfig) { c.Dynamics = "WAVY" }, wantField: "dynamics"},
		{name: "missing random params", mutate: func(c *models.SimulationConfig) { c.Random = nil }, wantField: "random"},
		{name: "probability above one", mutate: func(c *models.SimulationConfig) { c.Random.Probability = 1.5 }, wantField: "random.probability"},
		{name: "probability NaN", mutate: func(c *models.SimulationConfig) { c.Random.Probability = math.NaN() }, wantField: "random.probability"},
		{name: "negative min intensity", mutate: func(c *models.SimulationConfig) { c.Random.MinIntensity = -1 }, wantField: "random.min_intensity"},
		{name: "min above max", mutate: func(c *models.SimulationConfig) { c.Random.MinIntensity = 2 }, wantField: "random.max_intensity"},
		{name: "inverted durations", mutate: func(c *models.SimulationConfig) {
			c.Random.MinDurationMinutes = 5
			c.Random.MaxDurationMinutes = 2
		}, wantField: "random.max_duration_minutes"},
		{name: "negative event start", mutate: func(c *models.SimulationConfig) {
			c.Mode = models.ModeCustom
			c.Events = []models.CustomDisturbanceEvent{{Start: -1, DurationMinutes: 1}}
		}, wantField: "events[0].start"},
		{name: "zero event duration", mutate: func(c *models.SimulationConfig) {
			c.Mode = models.ModeCustom
			c.Events = []models.CustomDisturbanceEvent{{Start: 0, DurationMinutes: 1}, {Start: 3, DurationMinutes: 0}}
		}, wantField: "events[1].duration_minutes"},
		{name: "negative cooling power", mutate: func(c *models.SimulationConfig) { c.Control.CoolingPower = -0.2 }, wantField: "control.cooling_power"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantField, cfgErr.Field)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}

func TestComfortRange_Check(t *testing.T) {
	r := ComfortRange{Min: 17, Max: 30}

	assert.NoError(t, r.Check(models.SimulationConfig{TargetTemperature: 22, InitialTemperature: 26}))
	assert.NoError(t, r.Check(models.SimulationConfig{TargetTemperature: 17, InitialTemperature: 30}))

	err := r.Check(models.SimulationConfig{TargetTemperature: 16.9, InitialTemperature: 26})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	err = r.Check(models.SimulationConfig{TargetTemperature: 22, InitialTemperature: 31})
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "initial_temperature", cfgErr.Field)
}
