package utils

import "time"

const (
	DefaultPollInterval = 500 * time.Millisecond

	// Hard caps enforced on user-supplied limits before a session starts.
	MaxWorkloadRuntime = 3600 * time.Second
	MinIterations      = 1
	MaxIterations      = 100

	// Lower bounds of the search space when the user limit allows it.
	MinCPUShare    float64 = 0.1
	MinMemoryBytes int64   = 60 * 1000 * 1000

	// Kept free on the host so a memory-greedy run cannot trigger the OOM
	// killer against the search controller itself.
	MemoryHeadroomBytes uint64 = 100 * 1024 * 1024
)
