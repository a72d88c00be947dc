package cmd

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aqt-sim/aqt-sim/sim"
	"github.com/aqt-sim/aqt-sim/sim/adversary"
	"github.com/aqt-sim/aqt-sim/sim/record"
)

var (
	// CLI flags for experiment files
	configPath string // Path to a YAML experiment config (overrides the quick-run flags)
	logLevel   string // Log verbosity level

	// CLI flags for quick single runs on a path network
	numBuffers   int    // Number of buffers in the path network
	numRds       int    // Number of rounds to simulate
	protocolName string // Forwarding protocol: greedy_fifo, greedy_lis, oed_with_swap
	capacity     int    // Per-edge capacity for the greedy protocols
	seed         string // RNG stream name for the stochastic adversary
	outputPath   string // Directory for recorder output
	debugPrint   bool   // Also dump the network to the log every observation
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "aqt-sim",
	Short: "Adversarial queueing theory simulator",
}

// runCmd executes one or more simulations using parameters from CLI flags
// or a YAML experiment config
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run AQT simulations",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		startTime := time.Now()

		if configPath != "" {
			experiment, err := LoadExperiment(configPath)
			if err != nil {
				logrus.Fatalf("unable to read experiment config: %v", err)
			}
			runExperiment(experiment)
		} else {
			simulation, err := quickRunSimulation()
			if err != nil {
				logrus.Fatalf("invalid run parameters: %v", err)
			}
			simulation.Run()
		}

		logrus.Infof("Done in %v", time.Since(startTime))
	},
}

// runExperiment runs every simulation in the experiment, concurrently when
// the config asks for it. Simulations share no mutable state, so the fan-out
// needs no locking.
func runExperiment(experiment *sim.ExperimentConfig) {
	simulations := make([]*sim.Simulation, 0, len(experiment.Simulations))
	for i, cfg := range experiment.Simulations {
		simulation, err := BuildSimulation(cfg)
		if err != nil {
			logrus.Fatalf("simulation %d: %v", i, err)
		}
		simulations = append(simulations, simulation)
	}

	if experiment.Parallel {
		var wg sync.WaitGroup
		for _, simulation := range simulations {
			wg.Add(1)
			go func(s *sim.Simulation) {
				defer wg.Done()
				s.Run()
			}(simulation)
		}
		wg.Wait()
	} else {
		for _, simulation := range simulations {
			simulation.Run()
		}
	}
}

// quickRunSimulation assembles a single path-network simulation from the
// quick-run flags.
func quickRunSimulation() (*sim.Simulation, error) {
	cfg := sim.SimConfig{
		Protocol:   sim.ProtocolConfig{Name: protocolName, Capacity: capacity},
		Adversary:  sim.AdversaryConfig{Name: string(adversary.KindSDPathRandom), Seed: seed},
		Threshold:  sim.ThresholdConfig{Name: string(sim.KindTimed), MaxRds: numRds},
		Recorders: []sim.RecorderConfig{
			{Name: string(record.KindBufferLoadCSV)},
			{Name: string(record.KindAbsorptionCSV)},
		},
		OutputPath: outputPath,
	}
	if debugPrint {
		cfg.Recorders = append(cfg.Recorders, sim.RecorderConfig{Name: string(record.KindDebugPrint)})
	}
	network := sim.ConstructPath(numBuffers)
	cfg.GraphAdjacency = network.Adjacency()
	return BuildSimulation(cfg)
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML experiment config")
	runCmd.Flags().StringVar(&logLevel, "loglevel", "info", "Log level: debug, info, warn, error")

	runCmd.Flags().IntVar(&numBuffers, "buffers", 10, "Number of buffers in the path network")
	runCmd.Flags().IntVar(&numRds, "rds", 100, "Number of rounds to simulate")
	runCmd.Flags().StringVar(&protocolName, "protocol", string(sim.KindOEDWithSwap),
		"Forwarding protocol: greedy_fifo, greedy_lis, oed_with_swap")
	runCmd.Flags().IntVar(&capacity, "capacity", 1, "Per-edge capacity for the greedy protocols")
	runCmd.Flags().StringVar(&seed, "seed", "aqt-sim", "RNG stream name for the stochastic adversary")
	runCmd.Flags().StringVar(&outputPath, "output", "output", "Directory for recorder output")
	runCmd.Flags().BoolVar(&debugPrint, "debug-print", false, "Dump the network to the log every observation")

	rootCmd.AddCommand(runCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}
