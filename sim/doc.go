// Package sim provides the core engine for adversarial queueing theory (AQT)
// simulations: packets injected into a directed graph of buffers advance
// hop-by-hop along preassigned routes under a forwarding protocol, so that
// queue growth and stability can be measured empirically.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - network.go: the BufferNetwork of dense-indexed nodes and per-edge packet queues
//   - packet.go: Packet identity, route cursor, and the PacketFactory
//   - simulation.go: the round loop (inject, record, check, forward, record, check)
//
// The forwarding disciplines are closed tagged unions with switch dispatch
// (protocol.go, greedy.go, oed.go), as are the termination thresholds
// (threshold.go). The variant sets are fixed; extension means adding a
// variant, not subclassing.
//
// # Sub-packages
//
// The sim package defines the Adversary and Recorder interfaces the driver
// consumes; implementations live in sub-packages:
//   - sim/adversary: injection policies (scripted, seeded path-random, route-random)
//   - sim/record: result sinks (console, CSV, SQLite)
package sim
