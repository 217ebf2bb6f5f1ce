package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGaussianNoiseDeterministicUnderSeed(t *testing.T) {
	first := NewGaussianNoise(10.0, 42)
	second := NewGaussianNoise(10.0, 42)

	for i := 0; i < 100; i++ {
		assert.Equal(t, first.Sample(), second.Sample(), "Equal seeds must produce equal noise sequences")
	}
}

func TestGaussianNoiseZeroMean(t *testing.T) {
	noise := NewGaussianNoise(10.0, 1)

	sum := 0.0
	samples := 10000

	for i := 0; i < samples; i++ {
		sum += noise.Sample()
	}

	assert.InDelta(t, 0.0, sum/float64(samples), 1.0, "Noise must be centered around zero")
}

func TestGaussianNoiseDefaultSigma(t *testing.T) {
	noise := NewGaussianNoise(0, 7)

	assert.Equal(t, DefaultNoiseSigma, noise.dist.Sigma)
}
