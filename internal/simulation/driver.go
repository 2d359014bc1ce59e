// Package simulation is the discrete-time engine of the cooling unit: the
// disturbance models, the plateau/fault scheduler, the hysteresis controller
// and the driver that advances them one simulated minute at a time.
// It performs no I/O; randomness is injected through RandomSource.
package simulation

import (
	"context"
	"fmt"

	"cooling_control/internal/models"
)

// Run executes one simulation. A fault is reported in the result, not as an
// error; the only errors are configuration errors.
func Run(cfg models.SimulationConfig, src RandomSource) (models.SimulationResult, error) {
	return RunContext(context.Background(), cfg, src)
}

// RunContext is Run with cooperative cancellation: ctx is consulted once per
// tick, before the tick starts. On cancellation the samples produced so far are
// returned together with the context error.
func RunContext(ctx context.Context, cfg models.SimulationConfig, src RandomSource) (models.SimulationResult, error) {
	if err := Validate(cfg); err != nil {
		return models.SimulationResult{}, err
	}
	if cfg.Mode == models.ModeRandom && src == nil {
		return models.SimulationResult{}, invalid("random_source", "is required in %s mode", models.ModeRandom)
	}

	d := newDriver(cfg, src)
	samples := make([]models.Sample, 0, cfg.Duration+1)
	samples = append(samples, d.sample(0, 0))

	for t := 1; t <= cfg.Duration; t++ {
		if err := ctx.Err(); err != nil {
			return models.SimulationResult{Samples: samples}, fmt.Errorf("simulation stopped before minute %d: %w", t, err)
		}
		s, faulted := d.step(t)
		samples = append(samples, s)
		if faulted {
			minute := t
			return models.SimulationResult{
				Samples: samples,
				Fault:   models.FaultStatus{Aborted: true, FaultMinute: &minute},
			}, nil
		}
	}

	return models.SimulationResult{Samples: samples}, nil
}

// driver owns the mutable state of a single run.
type driver struct {
	cfg     models.SimulationConfig
	control models.ControlParams
	random  *RandomGenerator
	sched   *schedule

	temperature  float64
	compressorOn bool
	plateau      plateau
}

func newDriver(cfg models.SimulationConfig, src RandomSource) *driver {
	d := &driver{
		cfg:         cfg,
		control:     EffectiveControl(cfg.Control),
		temperature: cfg.InitialTemperature,
	}
	switch cfg.Mode {
	case models.ModeRandom:
		d.random = NewRandomGenerator(*cfg.Random, src)
	case models.ModeCustom:
		d.sched = newSchedule(cfg.Events, cfg.Duration)
	}
	return d
}

// disturbance is what the active generator produced for one tick.
type disturbance struct {
	value   float64
	present bool
	minutes int // plateau length
	nominal int // nominal disturbance length used by the fault rule
}

// step advances the state by one minute and reports whether the fault rule
// tripped on it.
func (d *driver) step(t int) (models.Sample, bool) {
	if !d.plateau.active {
		dist := d.next(t)
		if !dist.present || !d.plateauDynamics() {
			d.temperature += dist.value
			d.compressorOn = NextCompressorState(d.temperature, d.cfg.TargetTemperature, d.compressorOn, d.control.HysteresisBand)
			if d.compressorOn {
				d.temperature -= d.control.CoolingPower
			}
			return d.sample(t, dist.value), false
		}
		d.plateau.begin(d.temperature, dist.value, dist.minutes, dist.nominal)
	}

	// Inside a plateau the controller is bypassed and the compressor held OFF.
	d.temperature = d.plateau.tick()
	d.compressorOn = false
	s := d.sample(t, d.plateau.intensity)
	faulted := d.cfg.AllowFaults && d.plateau.longFault()
	d.plateau.release()
	return s, faulted
}

func (d *driver) next(t int) disturbance {
	switch d.cfg.Mode {
	case models.ModeRandom:
		v, ok := d.random.Next()
		if !ok {
			return disturbance{}
		}
		dist := disturbance{value: v, present: true}
		if d.plateauDynamics() {
			dist.minutes = d.random.NextDuration()
			dist.nominal = dist.minutes
		}
		return dist
	case models.ModeCustom:
		m := t - 1
		dist := disturbance{value: d.sched.values[m]}
		dist.minutes, dist.nominal, dist.present = d.sched.plateauAt(m)
		return dist
	}
	return disturbance{}
}

func (d *driver) plateauDynamics() bool {
	return d.cfg.Dynamics == models.DynamicsPlateau
}

func (d *driver) sample(t int, value float64) models.Sample {
	return models.Sample{
		Minute:       t,
		Temperature:  d.temperature,
		CompressorOn: d.compressorOn,
		Error:        d.temperature - d.cfg.TargetTemperature,
		Disturbance:  value,
	}
}
