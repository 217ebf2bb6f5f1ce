package optimizer

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"resource_search/internal/search"
)

// refinementScale is the standard deviation of guided proposals, expressed
// as a fraction of each bound's range.
const refinementScale float64 = 0.15

// Refining explores uniformly for the first initPoints proposals, then
// refines around the cheapest configuration registered so far by Gaussian
// perturbation, clamped to the bounds. Registered costs drive the incumbent,
// so penalized runs steer proposals away from infeasible regions on their
// own.
type Refining struct {
	initPoints int
	src        rand.Source

	registered int
	bestCost   float64
	bestCfg    search.ResourceConfiguration
}

func NewRefining(initPoints int, seed uint64) *Refining {
	return &Refining{
		initPoints: initPoints,
		src:        rand.NewSource(seed),
	}
}

func (r *Refining) Propose(bounds search.SearchBounds, _ search.ObservationLog) (search.ResourceConfiguration, error) {
	if r.registered < r.initPoints || r.registered == 0 {
		return sampleUniform(bounds, r.src), nil
	}

	cpuSigma := refinementScale * (bounds.MaxCPU - bounds.MinCPU)
	memorySigma := refinementScale * float64(bounds.MaxMemory-bounds.MinMemory)

	cpu := r.bestCfg.CPU
	if cpuSigma > 0 {
		cpu = distuv.Normal{Mu: r.bestCfg.CPU, Sigma: cpuSigma, Src: r.src}.Rand()
	}

	memory := float64(r.bestCfg.Memory)
	if memorySigma > 0 {
		memory = distuv.Normal{Mu: float64(r.bestCfg.Memory), Sigma: memorySigma, Src: r.src}.Rand()
	}

	return search.ResourceConfiguration{
		CPU:    clamp(cpu, bounds.MinCPU, bounds.MaxCPU),
		Memory: int64(clamp(memory, float64(bounds.MinMemory), float64(bounds.MaxMemory))),
	}, nil
}

func (r *Refining) Register(cfg search.ResourceConfiguration, cost float64) error {
	if r.registered == 0 || cost < r.bestCost {
		r.bestCost = cost
		r.bestCfg = cfg
	}

	r.registered++

	return nil
}
