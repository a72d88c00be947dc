// Experiment configuration structs, loadable from YAML. The core never
// interprets these beyond constructing already-validated networks,
// protocols, and thresholds; adversary and recorder configs are consumed by
// sim/adversary and sim/record.

package sim

import (
	"fmt"
)

// ExperimentConfig is a whole experiment file: one or more simulations plus
// a flag to run them concurrently. Simulations share no state, so parallel
// execution needs no locking.
type ExperimentConfig struct {
	Parallel    bool        `yaml:"parallel"`
	Simulations []SimConfig `yaml:"simulations"`
}

// SimConfig describes a single simulation run.
type SimConfig struct {
	// GraphAdjacency maps each node index to the node indices it has an edge
	// to, in edge-addition order.
	GraphAdjacency [][]NodeID       `yaml:"graph_adjacency"`
	Protocol       ProtocolConfig   `yaml:"protocol"`
	Adversary      AdversaryConfig  `yaml:"adversary"`
	Threshold      ThresholdConfig  `yaml:"threshold"`
	Recorders      []RecorderConfig `yaml:"recorders"`
	OutputPath     string           `yaml:"output_path"`
}

// ProtocolConfig is the tagged record {name, capacity?}.
type ProtocolConfig struct {
	Name     string `yaml:"name"`
	Capacity int    `yaml:"capacity,omitempty"`
}

// ThresholdConfig selects and parameterizes a termination predicate.
type ThresholdConfig struct {
	Name    string `yaml:"name"`
	MaxRds  int    `yaml:"max_rds,omitempty"`
	MaxLoad int    `yaml:"max_load,omitempty"`
}

// AdversaryConfig selects and parameterizes an injection policy.
type AdversaryConfig struct {
	Name string `yaml:"name"`
	// Seed names the RNG stream for stochastic adversaries. Streams come out
	// of a deterministic package-level sequence, so rerunning the experiment
	// replays the same injections.
	Seed string `yaml:"seed,omitempty"`
	// Injections scripts the preset adversary: one batch of packet specs per
	// round, consumed in order.
	Injections [][]InjectionConfig `yaml:"injections,omitempty"`
}

// InjectionConfig specifies one scripted packet: its route and initial
// cursor.
type InjectionConfig struct {
	Path    []NodeID `yaml:"path"`
	PathIdx int      `yaml:"path_idx"`
}

// RecorderConfig selects a result sink.
type RecorderConfig struct {
	Name string `yaml:"name"`
}

// ProtocolFromConfig constructs the protocol a config names.
func ProtocolFromConfig(cfg ProtocolConfig) (*Protocol, error) {
	switch ProtocolKind(cfg.Name) {
	case KindGreedyFIFO:
		return NewGreedyFIFO(capacityOrDefault(cfg.Capacity)), nil
	case KindGreedyLIS:
		return NewGreedyLIS(capacityOrDefault(cfg.Capacity)), nil
	case KindOEDWithSwap:
		return NewOEDWithSwap(), nil
	default:
		return nil, fmt.Errorf("unknown protocol name: %q", cfg.Name)
	}
}

// Greedy protocols default to capacity 1 when the config omits it.
func capacityOrDefault(capacity int) int {
	if capacity == 0 {
		return 1
	}
	return capacity
}

// ThresholdFromConfig constructs the threshold a config names.
func ThresholdFromConfig(cfg ThresholdConfig) (*Threshold, error) {
	switch ThresholdKind(cfg.Name) {
	case KindTimed:
		if cfg.MaxRds <= 0 {
			return nil, fmt.Errorf("timed threshold needs max_rds > 0, got %d", cfg.MaxRds)
		}
		return NewTimedThreshold(cfg.MaxRds), nil
	case KindTotalLoad:
		if cfg.MaxLoad <= 0 {
			return nil, fmt.Errorf("total_load threshold needs max_load > 0, got %d", cfg.MaxLoad)
		}
		return NewTotalLoadThreshold(cfg.MaxLoad), nil
	default:
		return nil, fmt.Errorf("unknown threshold name: %q", cfg.Name)
	}
}

// ProtocolToConfig dumps a protocol back to its config record.
func ProtocolToConfig(pr *Protocol) ProtocolConfig {
	return ProtocolConfig{Name: string(pr.Kind()), Capacity: pr.Capacity()}
}
