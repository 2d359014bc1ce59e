package models

// DisturbanceMode selects how disturbances are produced during a run.
type DisturbanceMode string

const (
	ModeRandom DisturbanceMode = "RANDOM"
	ModeCustom DisturbanceMode = "CUSTOM"
)

// Dynamics selects how a detected disturbance affects the temperature.
type Dynamics string

const (
	// DynamicsAdditive adds each tick's disturbance to the temperature.
	DynamicsAdditive Dynamics = "ADDITIVE"
	// DynamicsPlateau holds the temperature at current+intensity for the whole
	// disturbance and applies the long-disturbance fault rule.
	DynamicsPlateau Dynamics = "PLATEAU"
)

// ControlParams tunes the hysteresis controller. Zero fields fall back to the
// engine defaults.
type ControlParams struct {
	HysteresisBand float64 `json:"hysteresis_band,omitempty" yaml:"hysteresis_band"` // °C
	CoolingPower   float64 `json:"cooling_power,omitempty" yaml:"cooling_power"`     // °C per minute
}

// RandomDisturbanceParams drives the per-minute random generator.
type RandomDisturbanceParams struct {
	Probability  float64 `json:"probability" yaml:"probability"`     // [0,1]
	MinIntensity float64 `json:"min_intensity" yaml:"min_intensity"` // °C
	MaxIntensity float64 `json:"max_intensity" yaml:"max_intensity"` // °C

	// Plateau dynamics only; 0 means 1 minute.
	MinDurationMinutes int `json:"min_duration_minutes,omitempty" yaml:"min_duration_minutes"`
	MaxDurationMinutes int `json:"max_duration_minutes,omitempty" yaml:"max_duration_minutes"`
}

// CustomDisturbanceEvent is a scheduled disturbance.
type CustomDisturbanceEvent struct {
	Start           int     `json:"start" yaml:"start"`                       // minute
	DurationMinutes int     `json:"duration_minutes" yaml:"duration_minutes"` // >= 1
	Intensity       float64 `json:"intensity" yaml:"intensity"`               // °C, additive
}

// SimulationConfig is the immutable per-run configuration.
type SimulationConfig struct {
	Duration           int                      `json:"duration" yaml:"duration"`                       // minutes
	TargetTemperature  float64                  `json:"target_temperature" yaml:"target_temperature"`   // °C
	InitialTemperature float64                  `json:"initial_temperature" yaml:"initial_temperature"` // °C
	Mode               DisturbanceMode          `json:"mode" yaml:"mode"`
	Dynamics           Dynamics                 `json:"dynamics,omitempty" yaml:"dynamics"`
	AllowFaults        bool                     `json:"allow_faults,omitempty" yaml:"allow_faults"`
	Random             *RandomDisturbanceParams `json:"random,omitempty" yaml:"random"`
	Events             []CustomDisturbanceEvent `json:"events,omitempty" yaml:"events"`
	Control            ControlParams            `json:"control,omitempty" yaml:"control"`
}

// Sample is one per-minute record of a run.
type Sample struct {
	Minute       int     `json:"minute"`
	Temperature  float64 `json:"temperature"`
	CompressorOn bool    `json:"compressor_on"`
	Error        float64 `json:"error"` // temperature - target
	Disturbance  float64 `json:"disturbance"`
}

// FaultStatus records whether a run was cut short by the fault rule.
type FaultStatus struct {
	Aborted     bool `json:"aborted"`
	FaultMinute *int `json:"fault_minute,omitempty"`
}

// SimulationResult is the ordered series produced by one run.
type SimulationResult struct {
	Samples []Sample    `json:"samples"`
	Fault   FaultStatus `json:"fault"`
}
