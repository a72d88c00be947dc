// OED-with-Swap forwarding. Per round, each buffer on the path may forward
// its oldest packet and, independently, send its youngest packet backward one
// hop when the load profile is unbalanced. All (forward, backward) flags are
// computed from a single snapshot of loads and extremal packets taken before
// any buffer is mutated; applying moves edge by edge afterwards cannot leak
// one edge's move into another edge's decision, which keeps results
// independent of edge-iteration order.

package sim

import (
	"fmt"
)

// oedMove is one edge's decision for the round.
type oedMove struct {
	forward  bool
	backward bool
}

// forwardOED implements one round of OED-with-Swap. Requires a path network:
// nodes 0..n-1 with an edge from i to i+1 for every i.
func (pr *Protocol) forwardOED(network *BufferNetwork) []*Packet {
	numNodes := network.NumNodes()
	if numNodes < 2 {
		return []*Packet{}
	}
	buffers := pathBuffers(network)
	moves := oedMoves(buffers)

	var pending []*Packet
	for i, eb := range buffers {
		if eb.Len() == 0 {
			continue
		}
		if moves[i].forward {
			_, idx := OldestIn(eb)
			p := eb.Remove(idx)
			p.Advance()
			pending = append(pending, p)
		}
		if moves[i].backward {
			_, idx := YoungestIn(eb)
			p := eb.Remove(idx)
			p.Retreat()
			pending = append(pending, p)
		}
	}

	absorbed := make([]*Packet, 0)
	for _, p := range pending {
		if p.ShouldAbsorb() {
			absorbed = append(absorbed, p)
		} else {
			pr.AddPacket(p, network)
		}
	}
	return absorbed
}

// oedCriterion is the local load-comparison rule between two consecutive
// buffers: true iff this buffer is strictly more loaded than the next, or
// the loads tie at an odd value.
func oedCriterion(thisLoad, nextLoad int) bool {
	return thisLoad > nextLoad || (thisLoad == nextLoad && thisLoad%2 == 1)
}

// oedMoves computes every edge's (forward, backward) decision from the
// buffers' start-of-round state.
//
// Edge i forwards if it is the last edge (a non-empty last buffer always
// drains), or the OED criterion holds against edge i+1, or its oldest packet
// outranks edge i+1's youngest. Edge i sends its youngest packet backward if
// edge i-1 is non-empty, fails the OED criterion against edge i, and holds an
// oldest packet that outranks edge i's youngest -- the retreating packet is
// the worst on its edge and still younger than everything the previous edge
// will forward ahead of it.
func oedMoves(buffers []*EdgeBuffer) []oedMove {
	n := len(buffers)

	oed := make([]bool, n)
	for i := 0; i < n-1; i++ {
		oed[i] = oedCriterion(buffers[i].Len(), buffers[i+1].Len())
	}
	oed[n-1] = buffers[n-1].Len() > 0

	oldest := make([]*Packet, n)
	youngest := make([]*Packet, n)
	for i, eb := range buffers {
		oldest[i], _ = OldestIn(eb)
		youngest[i], _ = YoungestIn(eb)
	}

	moves := make([]oedMove, n)
	for i := range buffers {
		if buffers[i].Len() == 0 {
			continue
		}
		if i == n-1 {
			moves[i].forward = true
		} else {
			// A non-empty buffer ahead of an empty one always satisfies the
			// criterion, so youngest[i+1] is never nil when it is read.
			moves[i].forward = oed[i] || HigherPriority(oldest[i], youngest[i+1])
		}
		if i > 0 && oldest[i-1] != nil && !oed[i-1] && HigherPriority(oldest[i-1], youngest[i]) {
			moves[i].backward = true
		}
	}
	return moves
}

// pathBuffers collects the buffers of a path network in edge order, panicking
// if the topology is not a path. OED-with-Swap's criterion compares
// consecutive edges and is undefined on any other shape.
func pathBuffers(network *BufferNetwork) []*EdgeBuffer {
	numNodes := network.NumNodes()
	buffers := make([]*EdgeBuffer, numNodes-1)
	for i := 0; i < numNodes-1; i++ {
		eb, ok := network.Buffer(NodeID(i), NodeID(i+1))
		if !ok {
			panic(fmt.Sprintf("OED-with-Swap requires a path network: missing edge %d -> %d", i, i+1))
		}
		buffers[i] = eb
	}
	return buffers
}
