package search

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Optimizer is the external capability that proposes the next configuration
// to try. It receives a read view of the observation history on every
// proposal and is told the cost of each configuration it proposed. The
// actual optimization math lives behind this contract.
type Optimizer interface {
	Propose(bounds SearchBounds, log ObservationLog) (ResourceConfiguration, error)
	Register(cfg ResourceConfiguration, cost float64) error
}

// Evaluator abstracts the workload evaluator so the loop can be exercised
// without a container runtime.
type Evaluator interface {
	Evaluate(ctx context.Context, cfg ResourceConfiguration, maxTime time.Duration) (ExecutionOutcome, error)
}

type sessionState int

const (
	stateInitializing sessionState = iota
	stateExploring
	stateOptimizing
	stateDone
)

type SessionParams struct {
	Bounds        SearchBounds
	MaxTimePerRun time.Duration
	// InitPoints and Iterations are separate counts by contract, even though
	// the optimizer may internally manage its own explore/exploit split.
	InitPoints int
	Iterations int
}

// SearchSession owns the observation log and drives the evaluate-register
// loop. Every iteration is fully synchronous; a run monopolizes the measured
// resource window, so there is never more than one evaluation in flight.
type SearchSession struct {
	params SessionParams

	evaluator Evaluator
	cost      *CostModel
	optimizer Optimizer

	log *logrus.Entry

	state        sessionState
	observations ObservationLog
}

func NewSession(params SessionParams, evaluator Evaluator, cost *CostModel, optimizer Optimizer, log *logrus.Entry) (*SearchSession, error) {
	if err := params.Bounds.Validate(); err != nil {
		return nil, err
	}

	if params.InitPoints < 0 {
		return nil, fmt.Errorf("%w: negative number of initialization points", ErrInvalidBounds)
	}

	if params.Iterations < 1 {
		return nil, fmt.Errorf("%w: at least one optimization iteration is required", ErrInvalidBounds)
	}

	return &SearchSession{
		params:    params,
		evaluator: evaluator,
		cost:      cost,
		optimizer: optimizer,
		log:       log,
		state:     stateInitializing,
	}, nil
}

// Run executes the full search. Workload failures are folded into the cost
// signal and never abort the loop; only optimizer or runtime capability
// failures surface as errors. The observation log collected so far stays
// inspectable even after an abort.
func (s *SearchSession) Run(ctx context.Context) error {
	total := s.params.InitPoints + s.params.Iterations

	for i := 0; i < total; i++ {
		if i < s.params.InitPoints {
			s.state = stateExploring
			s.log.Infof("Exploration step %d/%d", i+1, s.params.InitPoints)
		} else {
			s.state = stateOptimizing
			s.log.Infof("Optimization step %d/%d", i-s.params.InitPoints+1, s.params.Iterations)
		}

		cfg, err := s.optimizer.Propose(s.params.Bounds, s.observations)
		if err != nil {
			return fmt.Errorf("%w: could not propose a configuration - %v", ErrOptimizerFailure, err)
		}

		if !s.params.Bounds.Contains(cfg) {
			return fmt.Errorf("%w: proposed configuration %s outside bounds", ErrOptimizerFailure, cfg)
		}

		outcome, err := s.evaluator.Evaluate(ctx, cfg, s.params.MaxTimePerRun)
		if err != nil {
			return err
		}

		cost := s.cost.Cost(cfg.CPU, cfg.Memory, outcome.ElapsedSeconds)

		s.observations = append(s.observations, CostObservation{
			Configuration: cfg,
			Cost:          cost,
			Outcome:       outcome,
		})

		if err := s.optimizer.Register(cfg, cost); err != nil {
			return fmt.Errorf("%w: could not register observation - %v", ErrOptimizerFailure, err)
		}

		s.log.Infof("Observed %s with cost %.3f (%s)", cfg, cost, outcome.TerminatedBy)
	}

	s.state = stateDone

	return nil
}

// Best reports the minimum-cost observation seen so far. The second return
// value is false while the log is empty.
func (s *SearchSession) Best() (CostObservation, bool) {
	if len(s.observations) == 0 {
		return CostObservation{}, false
	}

	best := s.observations[0]
	for _, observation := range s.observations[1:] {
		if observation.Cost < best.Cost {
			best = observation
		}
	}

	return best, true
}

// Observations returns a copy of the observation log; the session keeps
// exclusive ownership of the underlying slice.
func (s *SearchSession) Observations() ObservationLog {
	return append(ObservationLog(nil), s.observations...)
}
