// Package adversary implements the injection policies that decide where
// packets enter the network each round. Adversary is a closed tagged union
// over the known policies, dispatched by switch; every variant satisfies
// sim.Adversary.
package adversary

import (
	"fmt"

	"github.com/aqt-sim/aqt-sim/sim"
)

// Kind tags an Adversary variant.
type Kind string

const (
	// KindSDPathRandom injects one packet per round into a uniformly random
	// buffer on a path network, routed to the path's last node.
	KindSDPathRandom Kind = "sd_path_random"
	// KindRouteRandom injects one packet per round between random distinct
	// nodes of an arbitrary network, along a shortest path.
	KindRouteRandom Kind = "route_random"
	// KindPreset replays a scripted sequence of per-round injections.
	KindPreset Kind = "preset"
)

// Adversary is one injection policy instance. Each adversary owns its own
// PacketFactory, so packet ids are unique within its stream and independent
// streams stay independently reproducible.
type Adversary struct {
	kind   Kind
	random *randomState
	preset *presetState
}

// Kind returns the variant tag.
func (a *Adversary) Kind() Kind {
	return a.kind
}

// NextPackets creates the packets to inject for round rd.
func (a *Adversary) NextPackets(network *sim.BufferNetwork, rd int) []*sim.Packet {
	switch a.kind {
	case KindSDPathRandom:
		return a.random.nextPathPackets(network, rd)
	case KindRouteRandom:
		return a.random.nextRoutePackets(network, rd)
	case KindPreset:
		return a.preset.nextPackets(rd)
	default:
		panic(fmt.Sprintf("unknown adversary kind: %s", a.kind))
	}
}

// FromConfig constructs the adversary a config names.
func FromConfig(cfg sim.AdversaryConfig) (*Adversary, error) {
	switch Kind(cfg.Name) {
	case KindSDPathRandom:
		return NewSDPathRandom(seedOrDefault(cfg.Seed)), nil
	case KindRouteRandom:
		return NewRouteRandom(seedOrDefault(cfg.Seed)), nil
	case KindPreset:
		return NewPreset(cfg.Injections), nil
	default:
		return nil, fmt.Errorf("unknown adversary name: %q", cfg.Name)
	}
}

func seedOrDefault(seed string) string {
	if seed == "" {
		return "adversary"
	}
	return seed
}
