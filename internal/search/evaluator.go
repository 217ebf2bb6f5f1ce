package search

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"resource_search/pkg/utils"
)

// RunHandle identifies one isolated workload execution owned by the runtime.
type RunHandle string

// ContainerRuntime is the capability that creates, monitors, signals and
// destroys isolated workload executions. All operations are synchronous.
type ContainerRuntime interface {
	Launch(ctx context.Context, image string, cfg ResourceConfiguration, scriptPath string, runName string) (RunHandle, error)
	IsActive(ctx context.Context, handle RunHandle) (bool, error)
	// ExitCode is only meaningful once the run is inactive.
	ExitCode(ctx context.Context, handle RunHandle) (int64, error)
	Logs(ctx context.Context, handle RunHandle) ([]string, error)
	// Terminate forcefully kills a run, best-effort.
	Terminate(ctx context.Context, handle RunHandle) error
	// StopAndRemove is the unconditional cleanup called once per run.
	StopAndRemove(ctx context.Context, handle RunHandle) error
}

// WorkloadEvaluator drives one supervised, time-bounded workload execution
// per Evaluate call and reports its outcome. The run it supervises is owned
// exclusively by the evaluator until cleanup.
type WorkloadEvaluator struct {
	runtime ContainerRuntime

	image        string
	scriptPath   string
	pollInterval time.Duration

	log *logrus.Entry

	// Injectable so tests can simulate elapsed time without real delays.
	now   func() time.Time
	sleep func(time.Duration)
}

func NewWorkloadEvaluator(runtime ContainerRuntime, image string, scriptPath string, pollInterval time.Duration, log *logrus.Entry) *WorkloadEvaluator {
	if pollInterval <= 0 {
		pollInterval = utils.DefaultPollInterval
	}

	return &WorkloadEvaluator{
		runtime:      runtime,
		image:        image,
		scriptPath:   scriptPath,
		pollInterval: pollInterval,
		log:          log,
		now:          time.Now,
		sleep:        time.Sleep,
	}
}

// Evaluate launches the workload under the given configuration and blocks
// until it finishes or maxTime elapses. Workload-level failures (launch
// failure, timeout, nonzero exit) are absorbed into the outcome; a non-nil
// error means the runtime capability itself failed and the session must
// abort.
func (e *WorkloadEvaluator) Evaluate(ctx context.Context, cfg ResourceConfiguration, maxTime time.Duration) (ExecutionOutcome, error) {
	runName := "search-" + uuid.New().String()

	e.log.Debugf("Attempting to start workload run %s (%s)", runName, cfg)

	handle, err := e.runtime.Launch(ctx, e.image, cfg, e.scriptPath, runName)
	if err != nil {
		e.log.Errorf("Failed to launch workload run %s - %v", runName, err)

		return ExecutionOutcome{
			ElapsedSeconds: SentinelElapsed,
			TerminatedBy:   LaunchFailed,
		}, nil
	}

	e.log.Infof("Running workload with %s until it completes or %v passes", cfg, maxTime)

	// The run must be stopped and removed on every exit path, including
	// runtime failures below, so no live execution leaks past this call.
	defer func() {
		if cleanupErr := e.runtime.StopAndRemove(ctx, handle); cleanupErr != nil {
			e.log.Errorf("Failed to clean up run %s - %v", runName, cleanupErr)
		}
	}()

	start := e.now()

	inTime, err := e.waitUntilInactive(ctx, handle, maxTime)
	if err != nil {
		return ExecutionOutcome{ElapsedSeconds: SentinelElapsed, TerminatedBy: TimedOut},
			fmt.Errorf("%w: status query for run %s failed - %v", ErrRuntimeUnavailable, runName, err)
	}

	outcome := ExecutionOutcome{}

	if !inTime {
		if killErr := e.runtime.Terminate(ctx, handle); killErr != nil {
			e.log.Errorf("Couldn't kill run %s due to %v. Please manually verify it is not still running.", runName, killErr)
		}

		e.log.Warn("Workload execution timed out")

		outcome.TerminatedBy = TimedOut
		outcome.ElapsedSeconds = SentinelElapsed
	} else {
		exitCode, codeErr := e.runtime.ExitCode(ctx, handle)
		if codeErr != nil {
			return ExecutionOutcome{ElapsedSeconds: SentinelElapsed, TerminatedBy: CompletedError},
				fmt.Errorf("%w: exit status query for run %s failed - %v", ErrRuntimeUnavailable, runName, codeErr)
		}

		outcome.ExitCode = &exitCode

		if exitCode == 0 {
			outcome.TerminatedBy = CompletedOK
			outcome.ElapsedSeconds = e.now().Sub(start).Seconds()

			e.log.Info("Workload execution finished on time")
		} else {
			// Economically identical to a timeout; only the termination
			// reason keeps the two distinguishable for diagnostics.
			outcome.TerminatedBy = CompletedError
			outcome.ElapsedSeconds = SentinelElapsed

			e.log.Infof("Workload execution finished unsuccessfully with exit code %d", exitCode)
		}
	}

	// Capture logs before the deferred teardown destroys the run.
	logLines, logsErr := e.runtime.Logs(ctx, handle)
	if logsErr != nil {
		e.log.Warnf("Could not retrieve logs of run %s - %v", runName, logsErr)
	} else {
		outcome.LogLines = logLines

		for _, line := range logLines {
			e.log.Debugf("    %s", line)
		}
	}

	return outcome, nil
}

// waitUntilInactive is the core scheduling primitive of the evaluator: an
// explicit condition poll at a fixed interval. It returns false when maxTime
// elapsed while the run was still active.
func (e *WorkloadEvaluator) waitUntilInactive(ctx context.Context, handle RunHandle, maxTime time.Duration) (bool, error) {
	start := e.now()

	for {
		active, err := e.runtime.IsActive(ctx, handle)
		if err != nil {
			return false, err
		}

		if !active {
			return true, nil
		}

		if e.now().Sub(start) >= maxTime {
			return false, nil
		}

		e.sleep(e.pollInterval)
	}
}
