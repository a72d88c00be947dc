// The preset adversary replays a scripted sequence of injections, one batch
// per round. Used by tests and by experiments that need exact, repeatable
// traffic.

package adversary

import (
	"github.com/aqt-sim/aqt-sim/sim"
)

// presetState holds the scripted batches. Packets are minted up front so
// their ids follow script order regardless of when rounds execute.
type presetState struct {
	toInject [][]*sim.Packet
}

// NewPreset builds a preset adversary from per-round injection configs:
// injections[r] is the batch for round r+1. Rounds beyond the script inject
// nothing.
func NewPreset(injections [][]sim.InjectionConfig) *Adversary {
	factory := sim.NewPacketFactory()
	toInject := make([][]*sim.Packet, len(injections))
	for rd, batch := range injections {
		packets := make([]*sim.Packet, 0, len(batch))
		for _, cfg := range batch {
			packets = append(packets, factory.Create(cfg.Path, rd+1, cfg.PathIdx))
		}
		toInject[rd] = packets
	}
	return &Adversary{kind: KindPreset, preset: &presetState{toInject: toInject}}
}

// Rounds returns the number of scripted rounds.
func (a *Adversary) Rounds() int {
	if a.preset == nil {
		return 0
	}
	return len(a.preset.toInject)
}

func (ps *presetState) nextPackets(rd int) []*sim.Packet {
	if rd < 1 || rd > len(ps.toInject) {
		return nil
	}
	return ps.toInject[rd-1]
}
