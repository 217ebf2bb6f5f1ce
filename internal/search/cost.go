package search

import (
	"math"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"resource_search/pkg/config"
)

// Pricing defaults: CPU costs 100 price units per whole core per second,
// RAM costs 10 price units per whole MiB per second.
const (
	DefaultCpuPrice float64 = 100.0
	DefaultRamPrice float64 = 10.0

	cpuPricingUnit float64 = 1.0
	ramPricingUnit float64 = 1024.0 * 1024.0

	// Failed and timed-out runs are costed as base plus uniform jitter. The
	// jitter keeps two infeasible runs from tying exactly, which would
	// flatten the surrogate model's view of the infeasible region.
	DefaultPenaltyBase   float64 = 720000.0
	DefaultPenaltyJitter float64 = 1000.0
)

// CostModel turns measured resource usage and elapsed time into a monetary
// cost scalar, perturbed by simulated measurement noise.
type CostModel struct {
	cpuPrice float64
	ramPrice float64

	penaltyBase float64
	jitter      distuv.Uniform

	noise NoiseSource
	log   *logrus.Entry
}

func NewCostModel(pricing config.PricingConfig, penalty config.PenaltyConfig, noise NoiseSource, seed uint64, log *logrus.Entry) *CostModel {
	if pricing.CpuPrice <= 0 {
		pricing.CpuPrice = DefaultCpuPrice
	}
	if pricing.RamPrice <= 0 {
		pricing.RamPrice = DefaultRamPrice
	}
	if penalty.Base <= 0 {
		penalty.Base = DefaultPenaltyBase
	}
	if penalty.Jitter <= 0 {
		penalty.Jitter = DefaultPenaltyJitter
	}

	return &CostModel{
		cpuPrice:    pricing.CpuPrice,
		ramPrice:    pricing.RamPrice,
		penaltyBase: penalty.Base,
		jitter: distuv.Uniform{
			Min: 0.0,
			Max: penalty.Jitter,
			Src: rand.NewSource(seed),
		},
		noise: noise,
		log:   log,
	}
}

// Cost prices one execution. A negative elapsed time is the sentinel for a
// failed or timed-out run and short-circuits to the penalty without sampling
// any measurement noise.
func (m *CostModel) Cost(cpuUsed float64, memoryUsedBytes int64, elapsedSeconds float64) float64 {
	if elapsedSeconds < 0 {
		penalty := m.penaltyBase + m.jitter.Rand()
		m.log.Debugf("Infeasible run penalized with cost %.3f", penalty)

		return penalty
	}

	cpuEpsilon := m.noise.Sample()
	ramEpsilon := m.noise.Sample()

	measuredCpu := cpuUsed + cpuUsed*cpuEpsilon/100.0
	measuredRam := float64(memoryUsedBytes) + float64(memoryUsedBytes)*ramEpsilon/100.0

	// Truncate toward zero to whole pricing units, flooring at zero so an
	// extreme negative noise draw cannot produce a negative cost.
	effectiveCpu := math.Max(0.0, math.Trunc(measuredCpu/cpuPricingUnit))
	effectiveRam := math.Max(0.0, math.Trunc(measuredRam/ramPricingUnit))

	return (effectiveCpu*m.cpuPrice + effectiveRam*m.ramPrice) * elapsedSeconds
}
