package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"resource_search/internal/optimizer"
	"resource_search/internal/sandbox"
	"resource_search/internal/search"
	"resource_search/pkg/config"
	"resource_search/pkg/hardware"
	"resource_search/pkg/logger"
	"resource_search/pkg/utils"
)

var (
	configPath  = flag.String("config", "cmd/search_controller/config.yaml", "Path to the configuration file")
	cpuLimit    = flag.Float64("c", 0, "Max number of CPUs to give to the workload container. Mandatory.")
	memoryLimit = flag.Int64("m", 0, "Max bytes of RAM to give to the workload container. Mandatory.")
	timeLimit   = flag.Int64("t", 0, "Max seconds of running time to give to the workload container. Mandatory.")
	sqlScript   = flag.String("s", "", "SQL queries script file to run against the database. Mandatory.")
	iterations  = flag.Int("i", 5, "Number of optimization steps to perform.")
	debug       = flag.Bool("d", false, "Enable debug logging.")
)

func exitUsage(message string) {
	fmt.Fprintln(os.Stderr, message)
	os.Exit(1)
}

// validateArgs enforces the host and sanity limits on the user-supplied
// flags and returns the workload script resolved to an absolute path, as
// Docker requires for bind mounts.
func validateArgs() string {
	if *cpuLimit < 0 || *memoryLimit < 0 || *timeLimit < 0 {
		exitUsage("Negative parameters not allowed.")
	}

	info, err := os.Stat(*sqlScript)
	if err != nil || info.IsDir() {
		exitUsage(fmt.Sprintf("Bad command or file name: %s", *sqlScript))
	}

	maxCpu := hardware.GetNumberCpus()
	if *cpuLimit > float64(maxCpu) {
		exitUsage(fmt.Sprintf("A maximum of %d CPUs are allowed.", maxCpu))
	}

	availableMemory := hardware.GetAvailableMemory()
	if availableMemory <= utils.MemoryHeadroomBytes {
		fmt.Fprintln(os.Stderr, "Could not detect available memory. If you ask too much, the system might hang or the OOM killer engaged.")
	} else {
		allowedMemory := availableMemory - utils.MemoryHeadroomBytes
		if uint64(*memoryLimit) > allowedMemory {
			exitUsage(fmt.Sprintf("A maximum of %s of RAM are allowed.", utils.BytesToHuman(float64(allowedMemory))))
		}
	}

	if time.Duration(*timeLimit)*time.Second > utils.MaxWorkloadRuntime {
		exitUsage("A maximum of one hour is allowed for container time limit.")
	}

	if *iterations < utils.MinIterations || *iterations > utils.MaxIterations {
		exitUsage(fmt.Sprintf("Iterations must be between %d and %d", utils.MinIterations, utils.MaxIterations))
	}

	scriptPath, err := filepath.Abs(*sqlScript)
	if err != nil {
		exitUsage(fmt.Sprintf("Could not resolve script path: %v", err))
	}

	return scriptPath
}

func main() {
	flag.Parse()

	scriptPath := validateArgs()

	cfg, err := config.ReadSearchConfiguration(*configPath)
	if err != nil {
		logrus.Fatalf("Failed to read configuration file (error : %s)", err.Error())
	}

	verbosity := cfg.Verbosity
	if *debug {
		verbosity = "debug"
	}

	log := logger.Setup(verbosity)

	log.Info("Initializing...")
	log.Infof("Detected CPU: %s", hardware.GetCpuModel())
	log.Infof("Total / Available Memory: %s / %s",
		utils.BytesToHuman(float64(hardware.GetTotalMemory())),
		utils.BytesToHuman(float64(hardware.GetAvailableMemory())))

	runtime, err := sandbox.NewRuntime(log.WithField("component", "sandbox"))
	if err != nil {
		log.Fatalf("Failed to connect to the container runtime (error : %s)", err.Error())
	}

	log.Info("Connection to docker daemon established")

	seed := uint64(time.Now().UnixNano())

	noise := search.NewGaussianNoise(cfg.NoiseSigma, seed)
	costModel := search.NewCostModel(cfg.Pricing, cfg.Penalty, noise, seed+1, log.WithField("component", "cost"))

	evaluator := search.NewWorkloadEvaluator(
		runtime,
		cfg.Image,
		scriptPath,
		time.Duration(cfg.PollIntervalMs)*time.Millisecond,
		log.WithField("component", "evaluator"),
	)

	var proposer search.Optimizer
	switch cfg.Optimizer {
	case "uniform":
		proposer = optimizer.NewUniform(seed + 2)
	default:
		proposer = optimizer.NewRefining(cfg.InitPoints, seed+2)
	}

	params := search.SessionParams{
		Bounds: search.SearchBounds{
			MinCPU:    min(*cpuLimit, utils.MinCPUShare),
			MaxCPU:    *cpuLimit,
			MinMemory: min(*memoryLimit, utils.MinMemoryBytes),
			MaxMemory: *memoryLimit,
		},
		MaxTimePerRun: time.Duration(*timeLimit) * time.Second,
		InitPoints:    cfg.InitPoints,
		Iterations:    *iterations,
	}

	session, err := search.NewSession(params, evaluator, costModel, proposer, log.WithField("component", "search"))
	if err != nil {
		log.Fatalf("Failed to create the search session (error : %s)", err.Error())
	}

	log.Info("Starting cost optimization search")

	start := time.Now()
	runErr := session.Run(context.Background())

	log.Infof("Finished optimization after %.2f secs", time.Since(start).Seconds())

	report(log, session)

	if runErr != nil {
		log.Fatalf("Search session aborted (error : %s)", runErr.Error())
	}

	log.Info("Exiting successfully")
}

// report prints the best observation and the full per-iteration log; it also
// runs after an aborted session so partial progress stays inspectable.
func report(log *logrus.Logger, session *search.SearchSession) {
	best, ok := session.Best()
	if ok {
		log.Infof("Best values: CPU: %.2f RAM: %s cost: %.3f (%s)",
			best.Configuration.CPU,
			utils.BytesToHuman(float64(best.Configuration.Memory)),
			best.Cost,
			best.Outcome.TerminatedBy)

		if best.Outcome.TerminatedBy != search.CompletedOK {
			log.Warn("No valid parameters found due to the given constraints.")
		}
	}

	log.Info("Full optimization log:")

	for i, observation := range session.Observations() {
		log.Infof("Iteration %d: cpu %.2f ram %s cost: %.3f (%s)",
			i,
			observation.Configuration.CPU,
			utils.BytesToHuman(float64(observation.Configuration.Memory)),
			observation.Cost,
			observation.Outcome.TerminatedBy)
	}
}
