// The route-random adversary works on arbitrary topologies: it picks random
// distinct source and destination nodes and routes the packet along a
// shortest path. The network is converted once into a gonum graph and routes
// come out of cached Dijkstra shortest-path trees, one per source node.

package adversary

import (
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/aqt-sim/aqt-sim/sim"
)

// NewRouteRandom returns a route-random adversary. streamName labels the RNG
// stream, as for NewSDPathRandom.
func NewRouteRandom(streamName string) *Adversary {
	a := NewSDPathRandom(streamName)
	a.kind = KindRouteRandom
	return a
}

// nextRoutePackets injects one packet between a random ordered pair of
// distinct nodes, along a shortest path. Rounds where the chosen pair has no
// route inject nothing.
func (rs *randomState) nextRoutePackets(network *sim.BufferNetwork, rd int) []*sim.Packet {
	numNodes := network.NumNodes()
	if numNodes < 2 {
		return nil
	}
	if rs.routes == nil {
		rs.routes = newRouteTable(network)
	}

	srcID := sim.NodeID(rs.randInt(numNodes))
	dstID := sim.NodeID(rs.randInt(numNodes - 1))
	if dstID >= srcID {
		dstID++
	}

	route := rs.routes.shortestPath(srcID, dstID)
	if route == nil {
		logrus.Debugf("[rd %05d] no route from %d to %d, skipping injection", rd, srcID, dstID)
		return nil
	}
	p := rs.factory.Create(route, rd, 0)
	logrus.Debugf("[rd %05d] route-random injection %d -> %d (%d hops)", rd, srcID, dstID, len(route)-1)
	return []*sim.Packet{p}
}

// routeTable caches shortest-path trees over the gonum representation of a
// network. The topology is fixed before the simulation starts, so the graph
// is built once and trees are computed lazily per source.
type routeTable struct {
	connGraph graph.Graph
	trees     map[sim.NodeID]path.Shortest
}

func newRouteTable(network *sim.BufferNetwork) *routeTable {
	// Every edge carries weight 1, so a shortest path minimizes hops.
	connGraph := simple.NewWeightedDirectedGraph(0, math.Inf(1))
	for _, id := range network.Nodes() {
		connGraph.AddNode(simple.Node(id))
	}
	for _, e := range network.Edges() {
		connGraph.SetWeightedEdge(simple.WeightedEdge{
			F: simple.Node(e.From),
			T: simple.Node(e.To),
			W: 1.0,
		})
	}
	return &routeTable{
		connGraph: connGraph,
		trees:     make(map[sim.NodeID]path.Shortest),
	}
}

// shortestPath returns the node sequence from src to dst inclusive, or nil
// if dst is unreachable.
func (rt *routeTable) shortestPath(src, dst sim.NodeID) sim.PacketPath {
	tree, ok := rt.trees[src]
	if !ok {
		tree = path.DijkstraFrom(simple.Node(src), rt.connGraph)
		rt.trees[src] = tree
	}

	nodeSeq, weight := tree.To(int64(dst))
	if len(nodeSeq) == 0 || math.IsInf(weight, 1) {
		return nil
	}
	route := make(sim.PacketPath, 0, len(nodeSeq))
	for _, n := range nodeSeq {
		route = append(route, sim.NodeID(n.ID()))
	}
	return route
}
