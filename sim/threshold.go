// Termination predicates. Like Protocol, Threshold is a closed tagged union:
// the simulation polls it after injection and after forwarding, and stops on
// the first true.

package sim

import (
	"fmt"
)

// ThresholdKind tags a Threshold variant.
type ThresholdKind string

const (
	// KindTimed stops once a maximum round number is reached.
	KindTimed ThresholdKind = "timed"
	// KindTotalLoad stops once the aggregate load across all buffers
	// reaches a maximum.
	KindTotalLoad ThresholdKind = "total_load"
)

// Threshold decides when a simulation stops. ShouldStop is a pure function
// of the round number and current network state.
type Threshold struct {
	kind    ThresholdKind
	maxRds  int
	maxLoad int
}

// NewTimedThreshold stops the simulation once rd reaches maxRds.
func NewTimedThreshold(maxRds int) *Threshold {
	return &Threshold{kind: KindTimed, maxRds: maxRds}
}

// NewTotalLoadThreshold stops the simulation once the total number of queued
// packets reaches maxLoad.
func NewTotalLoadThreshold(maxLoad int) *Threshold {
	return &Threshold{kind: KindTotalLoad, maxLoad: maxLoad}
}

// Kind returns the variant tag.
func (t *Threshold) Kind() ThresholdKind {
	return t.kind
}

// ShouldStop reports whether the simulation should terminate.
func (t *Threshold) ShouldStop(rd int, network *BufferNetwork) bool {
	switch t.kind {
	case KindTimed:
		return rd >= t.maxRds
	case KindTotalLoad:
		return network.TotalLoad() >= t.maxLoad
	default:
		panic(fmt.Sprintf("unknown threshold kind: %s", t.kind))
	}
}
