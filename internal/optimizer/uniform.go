// Package optimizer holds built-in implementations of the search.Optimizer
// capability. They stand in for an external Bayesian optimization engine
// behind the same propose/register contract.
package optimizer

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"resource_search/internal/search"
)

// Uniform proposes configurations uniformly at random inside the bounds. It
// ignores the observation history entirely.
type Uniform struct {
	src rand.Source
}

func NewUniform(seed uint64) *Uniform {
	return &Uniform{src: rand.NewSource(seed)}
}

func (u *Uniform) Propose(bounds search.SearchBounds, _ search.ObservationLog) (search.ResourceConfiguration, error) {
	return sampleUniform(bounds, u.src), nil
}

func (u *Uniform) Register(_ search.ResourceConfiguration, _ float64) error {
	return nil
}

func sampleUniform(bounds search.SearchBounds, src rand.Source) search.ResourceConfiguration {
	cpu := distuv.Uniform{Min: bounds.MinCPU, Max: bounds.MaxCPU, Src: src}.Rand()
	memory := distuv.Uniform{Min: float64(bounds.MinMemory), Max: float64(bounds.MaxMemory), Src: src}.Rand()

	return search.ResourceConfiguration{
		CPU:    cpu,
		Memory: int64(memory),
	}
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}
