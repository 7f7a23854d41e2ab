package swarm

import "math/rand/v2"

// Rand draws uniformly from [min, max).
type Rand interface {
	Next(min, max float64) float64
}

type uniformRand struct{}

// NewRand returns a Rand backed by the runtime's concurrency-safe source.
func NewRand() Rand {
	return uniformRand{}
}

func (uniformRand) Next(min, max float64) float64 {
	return min + rand.Float64()*(max-min)
}
