package optimizer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resource_search/internal/search"
)

var testBounds = search.SearchBounds{
	MinCPU:    0.1,
	MaxCPU:    2.0,
	MinMemory: 60_000_000,
	MaxMemory: 500_000_000,
}

func TestUniformProposesWithinBounds(t *testing.T) {
	uniform := NewUniform(42)

	for i := 0; i < 1000; i++ {
		cfg, err := uniform.Propose(testBounds, nil)
		require.NoError(t, err)

		assert.True(t, testBounds.Contains(cfg), "Proposal %s escaped the bounds", cfg)
	}
}

func TestUniformDeterministicUnderSeed(t *testing.T) {
	first := NewUniform(7)
	second := NewUniform(7)

	for i := 0; i < 100; i++ {
		firstCfg, err := first.Propose(testBounds, nil)
		require.NoError(t, err)

		secondCfg, err := second.Propose(testBounds, nil)
		require.NoError(t, err)

		assert.Equal(t, firstCfg, secondCfg)
	}
}

func TestRefiningExploresUniformlyFirst(t *testing.T) {
	refining := NewRefining(3, 42)

	for i := 0; i < 3; i++ {
		cfg, err := refining.Propose(testBounds, nil)
		require.NoError(t, err)

		assert.True(t, testBounds.Contains(cfg))
		require.NoError(t, refining.Register(cfg, float64(100+i)))
	}
}

func TestRefiningConcentratesAroundIncumbent(t *testing.T) {
	refining := NewRefining(2, 42)

	incumbent := search.ResourceConfiguration{CPU: 0.5, Memory: 120_000_000}

	require.NoError(t, refining.Register(search.ResourceConfiguration{CPU: 1.8, Memory: 450_000_000}, 9000.0))
	require.NoError(t, refining.Register(incumbent, 1000.0))

	cpuRange := testBounds.MaxCPU - testBounds.MinCPU
	nearby := 0
	proposals := 200

	for i := 0; i < proposals; i++ {
		cfg, err := refining.Propose(testBounds, nil)
		require.NoError(t, err)

		assert.True(t, testBounds.Contains(cfg), "Refined proposal %s escaped the bounds", cfg)

		if math.Abs(cfg.CPU-incumbent.CPU) <= 3.0*refinementScale*cpuRange {
			nearby++
		}
	}

	assert.Greater(t, nearby, proposals*8/10, "Guided proposals must concentrate around the cheapest configuration")
}

func TestRefiningIncumbentOnlyImproves(t *testing.T) {
	refining := NewRefining(1, 1)

	cheap := search.ResourceConfiguration{CPU: 0.3, Memory: 70_000_000}

	require.NoError(t, refining.Register(cheap, 500.0))
	require.NoError(t, refining.Register(search.ResourceConfiguration{CPU: 1.9, Memory: 490_000_000}, 720500.0))

	assert.Equal(t, cheap, refining.bestCfg, "A penalized run must not displace the incumbent")
	assert.Equal(t, 500.0, refining.bestCost)
}
