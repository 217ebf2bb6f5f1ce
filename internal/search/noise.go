package search

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultNoiseSigma emulates roughly ±10% of measurement jitter per run,
// standing in for real cloud infrastructure variance.
const DefaultNoiseSigma float64 = 10.0

// NoiseSource supplies one simulated measurement-noise sample per call,
// expressed as a percentage perturbation.
type NoiseSource interface {
	Sample() float64
}

// GaussianNoise draws independent samples from N(0, sigma^2).
type GaussianNoise struct {
	dist distuv.Normal
}

func NewGaussianNoise(sigma float64, seed uint64) *GaussianNoise {
	if sigma <= 0 {
		sigma = DefaultNoiseSigma
	}

	return &GaussianNoise{
		dist: distuv.Normal{
			Mu:    0.0,
			Sigma: sigma,
			Src:   rand.NewSource(seed),
		},
	}
}

func (g *GaussianNoise) Sample() float64 {
	return g.dist.Rand()
}
