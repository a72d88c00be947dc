// Implements the BufferNetwork, the directed graph of bounded buffers that
// packets move through. Nodes are referenced by dense integer index and edge
// buffers by ordered (from, to) index pairs; there are no pointers between
// nodes, so the edge structure may contain cycles while storage ownership
// stays strictly with the network.

package sim

import (
	"fmt"
	"strings"
)

// NodeID indexes a node in a BufferNetwork. IDs are dense, assigned in
// creation order starting at 0. Pairs of NodeIDs identify edge buffers.
type NodeID int

// Edge names a directed edge by its endpoint node ids.
type Edge struct {
	From NodeID
	To   NodeID
}

// EdgeBuffer is the ordered packet queue owned by one directed edge.
// Index 0 is the front, the oldest-inserted packet. The network does not
// enforce any capacity; respecting a capacity bound is the forwarding
// protocol's job.
type EdgeBuffer struct {
	queue []*Packet
}

// Len returns the buffer's load, the number of packets queued on this edge.
func (eb *EdgeBuffer) Len() int {
	return len(eb.queue)
}

// Packets returns the queue contents for iteration, front first.
// The returned slice is the buffer's internal storage -- callers may iterate
// over it but MUST NOT append to or reslice it.
func (eb *EdgeBuffer) Packets() []*Packet {
	return eb.queue
}

// Push appends a packet to the back of the buffer. Protocols depend on
// back-insertion for their FIFO semantics.
func (eb *EdgeBuffer) Push(p *Packet) {
	eb.queue = append(eb.queue, p)
}

// PopFront removes and returns the packet at the front of the buffer.
// Returns nil if the buffer is empty.
func (eb *EdgeBuffer) PopFront() *Packet {
	if len(eb.queue) == 0 {
		return nil
	}
	p := eb.queue[0]
	eb.queue = eb.queue[1:]
	return p
}

// Remove deletes and returns the packet at position i, preserving the order
// of the remaining packets. Panics if i is out of range.
func (eb *EdgeBuffer) Remove(i int) *Packet {
	if i < 0 || i >= len(eb.queue) {
		panic(fmt.Sprintf("buffer index %d out of range for load %d", i, len(eb.queue)))
	}
	p := eb.queue[i]
	eb.queue = append(eb.queue[:i], eb.queue[i+1:]...)
	return p
}

func (eb *EdgeBuffer) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, p := range eb.queue {
		sb.WriteString(p.String())
		if i < len(eb.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// node holds one node's outgoing edges. neighbors preserves edge-insertion
// order; buffers indexes the same EdgeBuffers by destination for lookups.
type node struct {
	neighbors []NodeID
	buffers   map[NodeID]*EdgeBuffer
}

// BufferNetwork owns all nodes and edge buffers of the simulated network.
// Topology is fixed before a simulation starts: AddNode and AddEdge are
// construction-time operations and violations of the construction invariants
// (unknown node id, duplicate ordered pair) panic rather than return an
// error, since a malformed topology makes all subsequent results meaningless.
type BufferNetwork struct {
	nodes []node
}

// NewBufferNetwork creates an empty network.
func NewBufferNetwork() *BufferNetwork {
	return &BufferNetwork{}
}

// AddNode appends a node and returns its dense index.
func (n *BufferNetwork) AddNode() NodeID {
	id := NodeID(len(n.nodes))
	n.nodes = append(n.nodes, node{buffers: make(map[NodeID]*EdgeBuffer)})
	return id
}

// AddEdge creates an empty buffer on the directed edge from -> to. Panics if
// either id is out of range or the ordered pair already has a buffer.
func (n *BufferNetwork) AddEdge(from, to NodeID) {
	n.checkNodeID(from)
	n.checkNodeID(to)
	if _, exists := n.nodes[from].buffers[to]; exists {
		panic(fmt.Sprintf("there is already an edge buffer between nodes %d and %d", from, to))
	}
	eb := &EdgeBuffer{}
	n.nodes[from].buffers[to] = eb
	n.nodes[from].neighbors = append(n.nodes[from].neighbors, to)
}

// NumNodes returns the number of nodes in the network.
func (n *BufferNetwork) NumNodes() int {
	return len(n.nodes)
}

// Nodes returns all node ids in ascending order.
func (n *BufferNetwork) Nodes() []NodeID {
	ids := make([]NodeID, len(n.nodes))
	for i := range n.nodes {
		ids[i] = NodeID(i)
	}
	return ids
}

// Neighbors returns the nodes reachable by one outgoing edge from id, in the
// order the edges were added. Panics if id is out of range.
func (n *BufferNetwork) Neighbors(id NodeID) []NodeID {
	n.checkNodeID(id)
	out := make([]NodeID, len(n.nodes[id].neighbors))
	copy(out, n.nodes[id].neighbors)
	return out
}

// Edges returns every edge, grouped by from-node in ascending id order and
// then by edge-insertion order within each from-node. Protocols iterate edges
// in this order, so it is load-bearing for determinism: the same topology
// always yields the same sequence.
func (n *BufferNetwork) Edges() []Edge {
	var edges []Edge
	for from := range n.nodes {
		for _, to := range n.nodes[from].neighbors {
			edges = append(edges, Edge{From: NodeID(from), To: to})
		}
	}
	return edges
}

// HasEdge reports whether a buffer exists on the directed edge from -> to.
func (n *BufferNetwork) HasEdge(from, to NodeID) bool {
	if int(from) < 0 || int(from) >= len(n.nodes) {
		return false
	}
	_, ok := n.nodes[from].buffers[to]
	return ok
}

// Push appends a packet to the back of the named buffer. Panics if no such
// edge exists; protocols only push along edges on a packet's path, so a miss
// here is a routing bug, not a recoverable condition.
func (n *BufferNetwork) Push(p *Packet, from, to NodeID) {
	eb, ok := n.Buffer(from, to)
	if !ok {
		panic(fmt.Sprintf("no edge buffer between nodes %d and %d", from, to))
	}
	eb.Push(p)
}

// Buffer returns the queue on the directed edge from -> to. The second
// return value is false if no such edge exists, which callers (e.g. a
// protocol probing a graph with gaps) may treat as an ordinary absent
// result. An existing but empty buffer returns (buffer, true) with Len 0.
func (n *BufferNetwork) Buffer(from, to NodeID) (*EdgeBuffer, bool) {
	if int(from) < 0 || int(from) >= len(n.nodes) {
		return nil, false
	}
	eb, ok := n.nodes[from].buffers[to]
	return eb, ok
}

// Load returns the number of packets queued on the edge from -> to, or 0 if
// no such edge exists.
func (n *BufferNetwork) Load(from, to NodeID) int {
	eb, ok := n.Buffer(from, to)
	if !ok {
		return 0
	}
	return eb.Len()
}

// TotalLoad returns the number of packets queued across all buffers.
func (n *BufferNetwork) TotalLoad() int {
	total := 0
	for from := range n.nodes {
		for _, eb := range n.nodes[from].buffers {
			total += eb.Len()
		}
	}
	return total
}

// Drain atomically removes and returns all packets in the named buffer,
// leaving it empty. The second return value is false if no such edge exists.
// Used when an external owner needs exclusive ownership of a buffer's
// contents, e.g. bulk re-injection.
func (n *BufferNetwork) Drain(from, to NodeID) ([]*Packet, bool) {
	eb, ok := n.Buffer(from, to)
	if !ok {
		return nil, false
	}
	drained := eb.queue
	eb.queue = nil
	return drained, true
}

// Adjacency returns the topology as an adjacency structure mapping each node
// index to the nodes it has an edge to, in edge-addition order. This is the
// shape the config layer persists.
func (n *BufferNetwork) Adjacency() [][]NodeID {
	adj := make([][]NodeID, len(n.nodes))
	for from := range n.nodes {
		adj[from] = n.Neighbors(NodeID(from))
	}
	return adj
}

// This method returns a human-readable dump of every buffer, one per line in
// canonical edge order.
func (n *BufferNetwork) String() string {
	var sb strings.Builder
	for _, e := range n.Edges() {
		eb, _ := n.Buffer(e.From, e.To)
		sb.WriteString(fmt.Sprintf("%d, %d: %s\n", e.From, e.To, eb))
	}
	return sb.String()
}

func (n *BufferNetwork) checkNodeID(id NodeID) {
	if int(id) < 0 || int(id) >= len(n.nodes) {
		panic(fmt.Sprintf("no node with id %d in this network", id))
	}
}
