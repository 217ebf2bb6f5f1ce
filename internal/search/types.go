package search

import (
	"errors"
	"fmt"
)

// SentinelElapsed marks a run whose wall-clock duration carries no economic
// meaning (timeout, nonzero exit, failed launch). The cost model maps it to
// the penalty.
const SentinelElapsed float64 = -1.0

var (
	ErrInvalidBounds      = errors.New("invalid search bounds")
	ErrRuntimeUnavailable = errors.New("container runtime unavailable")
	ErrOptimizerFailure   = errors.New("optimizer failure")
)

// ResourceConfiguration is a candidate (CPU, memory) assignment for one
// workload execution. Immutable once proposed.
type ResourceConfiguration struct {
	CPU    float64 // cores
	Memory int64   // bytes
}

func (c ResourceConfiguration) String() string {
	return fmt.Sprintf("cpu=%.2f memory=%d", c.CPU, c.Memory)
}

// SearchBounds is the inclusive search space the optimizer may propose
// within. Established once per session and never mutated afterwards.
type SearchBounds struct {
	MinCPU    float64
	MaxCPU    float64
	MinMemory int64
	MaxMemory int64
}

func (b SearchBounds) Validate() error {
	if b.MinCPU <= 0 || b.MinMemory <= 0 {
		return fmt.Errorf("%w: bounds must be positive", ErrInvalidBounds)
	}

	if b.MinCPU > b.MaxCPU {
		return fmt.Errorf("%w: min CPU %.2f exceeds max CPU %.2f", ErrInvalidBounds, b.MinCPU, b.MaxCPU)
	}

	if b.MinMemory > b.MaxMemory {
		return fmt.Errorf("%w: min memory %d exceeds max memory %d", ErrInvalidBounds, b.MinMemory, b.MaxMemory)
	}

	return nil
}

func (b SearchBounds) Contains(cfg ResourceConfiguration) bool {
	return cfg.CPU >= b.MinCPU && cfg.CPU <= b.MaxCPU &&
		cfg.Memory >= b.MinMemory && cfg.Memory <= b.MaxMemory
}

type TerminationReason int

const (
	CompletedOK TerminationReason = iota
	CompletedError
	TimedOut
	LaunchFailed
)

func (r TerminationReason) String() string {
	switch r {
	case CompletedOK:
		return "COMPLETED_OK"
	case CompletedError:
		return "COMPLETED_ERROR"
	case TimedOut:
		return "TIMED_OUT"
	case LaunchFailed:
		return "LAUNCH_FAILED"
	default:
		return "UNKNOWN"
	}
}

// ExecutionOutcome describes one supervised workload execution. Created once
// per evaluation and read-only afterwards.
type ExecutionOutcome struct {
	ElapsedSeconds float64
	TerminatedBy   TerminationReason
	ExitCode       *int64 // nil unless the run reached an exit status
	LogLines       []string
}

// CostObservation ties a configuration to the cost derived from running it.
type CostObservation struct {
	Configuration ResourceConfiguration
	Cost          float64
	Outcome       ExecutionOutcome
}

// ObservationLog is the append-only history of a session. The session owns
// it exclusively; the optimizer only ever receives a read view.
type ObservationLog []CostObservation
