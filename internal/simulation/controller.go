package simulation

import "cooling_control/internal/models"

// ----------- Control constants -----------
const (
	DefaultHysteresisBand = 0.5 // °C either side of target
	DefaultCoolingPower   = 0.2 // °C removed per minute while ON
)

// NextCompressorState applies the hysteresis law. The compressor switches ON
// only once temp reaches target+band and OFF only once it falls to
// target-band; inside the dead band the state is kept.
func NextCompressorState(temp, target float64, on bool, band float64) bool {
	switch {
	case !on && temp >= target+band:
		return true
	case on && temp <= target-band:
		return false
	default:
		return on
	}
}

// EffectiveControl fills zero fields with the defaults.
func EffectiveControl(c models.ControlParams) models.ControlParams {
	if c.HysteresisBand == 0 {
		c.HysteresisBand = DefaultHysteresisBand
	}
	if c.CoolingPower == 0 {
		c.CoolingPower = DefaultCoolingPower
	}
	return c
}
