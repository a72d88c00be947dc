// Preset topologies and construction from persisted adjacency structures.

package sim

import (
	"fmt"
)

// ConstructPath builds a path network with the given number of buffers:
// numBuffers+1 nodes and an edge from node i to node i+1 for each buffer i.
// This is the topology the OED-with-Swap protocol operates on.
func ConstructPath(numBuffers int) *BufferNetwork {
	network := NewBufferNetwork()
	for i := 0; i < numBuffers+1; i++ {
		network.AddNode()
	}
	for i := 0; i < numBuffers; i++ {
		network.AddEdge(NodeID(i), NodeID(i+1))
	}
	return network
}

// NetworkFromAdjacency reconstructs a network from an adjacency structure as
// produced by BufferNetwork.Adjacency: one out-neighbor list per node, in
// edge-addition order. Returns an error for references to nodes outside the
// structure; duplicate pairs still panic, as in direct construction.
func NetworkFromAdjacency(adjacency [][]NodeID) (*BufferNetwork, error) {
	network := NewBufferNetwork()
	for range adjacency {
		network.AddNode()
	}
	for from, neighbors := range adjacency {
		for _, to := range neighbors {
			if int(to) < 0 || int(to) >= len(adjacency) {
				return nil, fmt.Errorf("adjacency references unknown node %d", to)
			}
			network.AddEdge(NodeID(from), to)
		}
	}
	return network, nil
}
