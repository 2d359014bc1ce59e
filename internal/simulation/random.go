package simulation

import "math/rand/v2"

// RandomSource supplies uniform randomness to the engine. Tests substitute a
// scripted implementation; production code uses NewSeededSource.
type RandomSource interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Uniform returns a value in [lo, hi).
	Uniform(lo, hi float64) float64
}

type pcgSource struct {
	r *rand.Rand
}

// NewSeededSource returns a PCG-backed source; equal seeds give equal streams.
func NewSeededSource(seed uint64) RandomSource {
	return &pcgSource{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *pcgSource) Float64() float64 {
	return s.r.Float64()
}

func (s *pcgSource) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*s.r.Float64()
}
