package simulation

import (
	"cmp"
	"slices"

	"cooling_control/internal/models"
)

// RandomGenerator draws memoryless per-minute disturbances.
type RandomGenerator struct {
	params models.RandomDisturbanceParams
	src    RandomSource
}

// NewRandomGenerator binds params to a randomness source.
func NewRandomGenerator(params models.RandomDisturbanceParams, src RandomSource) *RandomGenerator {
	return &RandomGenerator{params: params, src: src}
}

// Next reports whether a disturbance fires this minute and its magnitude.
func (g *RandomGenerator) Next() (float64, bool) {
	if g.src.Float64() < g.params.Probability {
		return g.src.Uniform(g.params.MinIntensity, g.params.MaxIntensity), true
	}
	return 0, false
}

// NextDuration draws a plateau length in whole minutes from
// [MinDurationMinutes, MaxDurationMinutes]. No draw is made when the range is a
// single value.
func (g *RandomGenerator) NextDuration() int {
	lo, hi := durationRange(g.params)
	if lo == hi {
		return lo
	}
	d := int(g.src.Uniform(float64(lo), float64(hi+1)))
	return min(max(d, lo), hi)
}

func durationRange(p models.RandomDisturbanceParams) (int, int) {
	lo, hi := p.MinDurationMinutes, p.MaxDurationMinutes
	if lo == 0 {
		lo = 1
	}
	if hi == 0 {
		hi = lo
	}
	return lo, hi
}

// BuildCustomDisturbances returns the summed intensity of every event for each
// minute 0..duration. Events are clipped to the horizon; overlapping events
// accumulate. The result does not depend on the order of events.
func BuildCustomDisturbances(events []models.CustomDisturbanceEvent, duration int) []float64 {
	out := make([]float64, duration+1)
	for _, ev := range canonicalOrder(events) {
		for m, end := max(ev.Start, 0), clippedEnd(ev, duration); m < end; m++ {
			out[m] += ev.Intensity
		}
	}
	return out
}

// clippedEnd is the exclusive end minute of ev, clipped to the horizon before
// adding so huge durations cannot overflow.
func clippedEnd(ev models.CustomDisturbanceEvent, duration int) int {
	return ev.Start + min(ev.DurationMinutes, max(duration-ev.Start, 0))
}

// canonicalOrder sorts a copy so floating-point sums are identical for any
// permutation of the input.
func canonicalOrder(events []models.CustomDisturbanceEvent) []models.CustomDisturbanceEvent {
	sorted := slices.Clone(events)
	slices.SortFunc(sorted, func(a, b models.CustomDisturbanceEvent) int {
		return cmp.Or(
			cmp.Compare(a.Start, b.Start),
			cmp.Compare(a.DurationMinutes, b.DurationMinutes),
			cmp.Compare(a.Intensity, b.Intensity),
		)
	})
	return sorted
}

// schedule is the precomputed custom-mode timeline.
type schedule struct {
	values   []float64
	events   []models.CustomDisturbanceEvent
	duration int
}

func newSchedule(events []models.CustomDisturbanceEvent, duration int) *schedule {
	return &schedule{
		values:   BuildCustomDisturbances(events, duration),
		events:   canonicalOrder(events),
		duration: duration,
	}
}

// plateauAt describes the plateau a custom schedule starts at minute m: the
// minutes until the latest active event ends (clipped to the horizon) and that
// event's nominal length.
func (s *schedule) plateauAt(m int) (minutes, nominal int, ok bool) {
	end := -1
	for _, ev := range s.events {
		evEnd := clippedEnd(ev, s.duration)
		if m < ev.Start || m >= evEnd {
			continue
		}
		ok = true
		if evEnd > end || (evEnd == end && ev.DurationMinutes > nominal) {
			end = evEnd
			nominal = ev.DurationMinutes
		}
	}
	if !ok {
		return 0, 0, false
	}
	return end - m, nominal, true
}
