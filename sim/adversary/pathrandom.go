// Stochastic adversaries. Randomness comes from a named rngstream stream.
// Streams are drawn from the package's deterministic seed sequence in
// creation order, so rerunning the same experiment replays the same
// injections; the name labels the stream for logs and diagnostics.

package adversary

import (
	"github.com/iti/rngstream"
	"github.com/sirupsen/logrus"

	"github.com/aqt-sim/aqt-sim/sim"
)

// randomState backs the stochastic adversary variants: a private packet
// factory and a private RNG stream.
type randomState struct {
	factory *sim.PacketFactory
	rngstrm *rngstream.RngStream
	routes  *routeTable // lazily built, route-random only
}

// NewSDPathRandom returns a single-destination path-random adversary: every
// round it injects one packet into a uniformly random buffer of a path
// network, routed to the last node. streamName labels the RNG stream.
func NewSDPathRandom(streamName string) *Adversary {
	return &Adversary{
		kind: KindSDPathRandom,
		random: &randomState{
			factory: sim.NewPacketFactory(),
			rngstrm: rngstream.New(streamName),
		},
	}
}

// nextPathPackets injects one packet with the full path 0..dest, positioned
// at a random source buffer. The destination is the path's last node.
func (rs *randomState) nextPathPackets(network *sim.BufferNetwork, rd int) []*sim.Packet {
	destID := sim.NodeID(network.NumNodes() - 1)
	srcID := sim.NodeID(rs.randInt(int(destID)))

	path := make(sim.PacketPath, 0, int(destID)+1)
	for id := sim.NodeID(0); id <= destID; id++ {
		path = append(path, id)
	}
	p := rs.factory.Create(path, rd, int(srcID))
	logrus.Debugf("[rd %05d] path-random injection at node %d", rd, srcID)
	return []*sim.Packet{p}
}

// randInt returns a uniform int in [0, max). max must be >= 1.
func (rs *randomState) randInt(max int) int {
	u01 := rs.rngstrm.RandU01()
	idx := int(u01 * float64(max))
	if idx >= max {
		idx = max - 1
	}
	return idx
}
