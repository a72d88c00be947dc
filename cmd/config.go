// Loading and assembly of experiment configs: a YAML file names the
// topology, protocol, adversary, threshold, and recorders for each
// simulation; BuildSimulation turns one such entry into a runnable
// sim.Simulation and saves the resolved config next to the results.

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/aqt-sim/aqt-sim/sim"
	"github.com/aqt-sim/aqt-sim/sim/adversary"
	"github.com/aqt-sim/aqt-sim/sim/record"
)

const simConfigFilename = "sim_config.yaml"

// LoadExperiment reads and parses a YAML experiment config.
func LoadExperiment(path string) (*sim.ExperimentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var experiment sim.ExperimentConfig
	if err := yaml.Unmarshal(data, &experiment); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(experiment.Simulations) == 0 {
		return nil, fmt.Errorf("%s contains no simulations", path)
	}
	return &experiment, nil
}

// BuildSimulation assembles one simulation from its config and writes the
// resolved config into the output directory so a run is always reproducible
// from its own results.
func BuildSimulation(cfg sim.SimConfig) (*sim.Simulation, error) {
	network, err := sim.NetworkFromAdjacency(cfg.GraphAdjacency)
	if err != nil {
		return nil, err
	}
	protocol, err := sim.ProtocolFromConfig(cfg.Protocol)
	if err != nil {
		return nil, err
	}
	adv, err := adversary.FromConfig(cfg.Adversary)
	if err != nil {
		return nil, err
	}
	threshold, err := sim.ThresholdFromConfig(cfg.Threshold)
	if err != nil {
		return nil, err
	}
	recorders := make([]sim.Recorder, 0, len(cfg.Recorders))
	for _, rcfg := range cfg.Recorders {
		recorder, err := record.FromConfig(rcfg, cfg.OutputPath)
		if err != nil {
			return nil, err
		}
		recorders = append(recorders, recorder)
	}

	if cfg.OutputPath != "" {
		if err := saveConfig(cfg); err != nil {
			logrus.Errorf("failed to save simulation config: %v", err)
		}
	}

	return sim.NewSimulation(network, protocol, adv, threshold, recorders), nil
}

func saveConfig(cfg sim.SimConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutputPath, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(cfg.OutputPath, simConfigFilename), data, 0o644)
}
