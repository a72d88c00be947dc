// Defines the Protocol type, the closed set of forwarding disciplines that
// decide, every round, which packets move, in which direction, and which are
// absorbed. The variant set is fixed, so Protocol is a tagged union with
// switch dispatch rather than an open interface: adding a protocol means
// adding a variant, and the compiler keeps dispatch exhaustive.

package sim

import (
	"fmt"
)

// ProtocolKind tags a Protocol variant.
type ProtocolKind string

const (
	// KindGreedyFIFO forwards up to capacity packets per edge per round in
	// buffer-insertion order.
	KindGreedyFIFO ProtocolKind = "greedy_fifo"
	// KindGreedyLIS forwards up to capacity packets per edge per round,
	// always serving the packet longest in system by injection round.
	KindGreedyLIS ProtocolKind = "greedy_lis"
	// KindOEDWithSwap forwards at most one packet per edge per round and may
	// additionally push a buffer's youngest packet backward one hop to
	// relieve localized overload. Requires a path network.
	KindOEDWithSwap ProtocolKind = "oed_with_swap"
)

// Protocol is one forwarding discipline instance. Within one round every
// variant decides all moves from the network state as it stood at the start
// of ForwardPackets, then applies them; no edge's decision observes another
// edge's already-applied move.
type Protocol struct {
	kind     ProtocolKind
	capacity int
}

// NewGreedyFIFO returns a greedy FIFO protocol with the given per-edge
// capacity. Panics if capacity < 1.
func NewGreedyFIFO(capacity int) *Protocol {
	checkCapacity(capacity)
	return &Protocol{kind: KindGreedyFIFO, capacity: capacity}
}

// NewGreedyLIS returns a greedy longest-in-system protocol with the given
// per-edge capacity. Panics if capacity < 1.
func NewGreedyLIS(capacity int) *Protocol {
	checkCapacity(capacity)
	return &Protocol{kind: KindGreedyLIS, capacity: capacity}
}

// NewOEDWithSwap returns an OED-with-Swap protocol. Its edge capacity is
// fixed at 1.
func NewOEDWithSwap() *Protocol {
	return &Protocol{kind: KindOEDWithSwap, capacity: 1}
}

func checkCapacity(capacity int) {
	if capacity < 1 {
		panic(fmt.Sprintf("protocol capacity must be >= 1, got %d", capacity))
	}
}

// Kind returns the variant tag.
func (pr *Protocol) Kind() ProtocolKind {
	return pr.kind
}

// Capacity returns the per-edge capacity this protocol respects.
func (pr *Protocol) Capacity() int {
	return pr.capacity
}

// AddPacket inserts a packet into the buffer between its current and next
// node. Packets are pushed to the back; the protocols depend on that.
// Panics if the packet has no next edge to sit on, i.e. it is absorbed or
// already at its destination -- the driver never injects such packets and a
// protocol never re-inserts them.
func (pr *Protocol) AddPacket(p *Packet, network *BufferNetwork) {
	cur, ok := p.CurrentNode()
	if !ok {
		panic(fmt.Sprintf("cannot add absorbed packet %d to the network", p.ID()))
	}
	next, ok := p.NextNode()
	if !ok {
		panic(fmt.Sprintf("packet %d has no next edge to occupy", p.ID()))
	}
	network.Push(p, cur, next)
}

// ForwardPackets runs one round of this protocol over the whole network and
// returns the packets absorbed in that round. Moved, non-absorbed packets are
// re-inserted via AddPacket; absorbed packets leave the network and ownership
// passes to the caller.
func (pr *Protocol) ForwardPackets(network *BufferNetwork) []*Packet {
	switch pr.kind {
	case KindGreedyFIFO, KindGreedyLIS:
		return pr.forwardGreedy(network)
	case KindOEDWithSwap:
		return pr.forwardOED(network)
	default:
		panic(fmt.Sprintf("unknown protocol kind: %s", pr.kind))
	}
}
